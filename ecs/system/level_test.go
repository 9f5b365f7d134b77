package system

import (
	"errors"
	"testing"

	"github.com/milk9111/cityrun/ecs"
	"github.com/milk9111/cityrun/ecs/component"
	"github.com/milk9111/cityrun/ecs/entity"
	"github.com/milk9111/cityrun/game"
)

func TestLevelSystemAppliesAndSnapshots(t *testing.T) {
	w := ecs.NewWorld()
	stage := entity.NewStage(w, nil)
	state := game.NewState()
	clock := &game.Clock{}
	lc := game.NewLifecycle(state, clock, nil)
	if err := lc.Start(stage, game.Level1); err != nil {
		t.Fatalf("start: %v", err)
	}
	sys := NewLevelSystem(lc, stage, nil)

	hud := sys.HUD()
	if hud.Level != game.Level1 || hud.GroundEnemies != 4 || hud.Health != component.MaxHealth {
		t.Fatalf("unexpected initial hud %+v", hud)
	}

	sys.Update(w)
	if clock.Ticks() != 1 {
		t.Fatalf("expected one tick, got %d", clock.Ticks())
	}
	if n := len(w.Events().DrainType(ecs.EventLevelChanged)); n != 0 {
		t.Fatalf("expected level change events drained, got %d", n)
	}

	stage.SetPlayerVitals(2, 1)
	state.CompleteLevel()
	if err := lc.RequestAdvance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	sys.Update(w)
	hud = sys.HUD()
	if hud.Level != game.Level2 || hud.GroundEnemies != 3 || hud.Health != 2 || hud.Armor != 1 || hud.LevelWon {
		t.Fatalf("unexpected hud after advance %+v", hud)
	}

	if err := lc.RequestWin(); err != nil {
		t.Fatalf("win: %v", err)
	}
	sys.Update(w)
	hud = sys.HUD()
	if !hud.GameWon || hud.Level != game.Won {
		t.Fatalf("expected won hud, got %+v", hud)
	}
	if hud.Health != 2 || hud.Armor != 1 {
		t.Fatalf("expected last known stats after the player is gone, got %+v", hud)
	}

	// The clock is stopped; further updates do not count.
	ticks := clock.Ticks()
	sys.Update(w)
	if clock.Ticks() != ticks {
		t.Fatalf("expected frozen clock")
	}
	if sys.Err() != nil {
		t.Fatalf("unexpected error %v", sys.Err())
	}
}

type brokenWorld struct {
	built int
}

func (b *brokenWorld) DestroyLevelObjects() {}
func (b *brokenWorld) DestroyBaseObjects()  {}
func (b *brokenWorld) BuildLevel(game.LevelID) (game.Population, error) {
	b.built++
	if b.built > 1 {
		return nil, errors.New("missing level")
	}
	return game.Population{component.KindGroundEnemy: 1}, nil
}
func (b *brokenWorld) PlayerStats() (component.Stats, bool) { return component.Stats{}, false }
func (b *brokenWorld) SetPlayerVitals(int, int)            {}
func (b *brokenWorld) SetPlayerWeapon(bool)                {}

func TestLevelSystemKeepsTransitionError(t *testing.T) {
	world := &brokenWorld{}
	state := game.NewState()
	lc := game.NewLifecycle(state, &game.Clock{}, nil)
	if err := lc.Start(world, game.Level1); err != nil {
		t.Fatalf("start: %v", err)
	}
	sys := NewLevelSystem(lc, world, nil)
	if sys.HUD().Health != component.MaxHealth {
		t.Fatalf("expected default stats without a player")
	}

	state.CompleteLevel()
	if err := lc.RequestAdvance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	sys.Update(nil)
	if sys.Err() == nil {
		t.Fatalf("expected the failed build to be kept")
	}
}
