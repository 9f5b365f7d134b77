package system

import (
	"math"
	"testing"

	"github.com/milk9111/cityrun/common"
	"github.com/milk9111/cityrun/config"
	"github.com/milk9111/cityrun/ecs"
	"github.com/milk9111/cityrun/ecs/component"
	"github.com/milk9111/cityrun/ecs/entity"
)

func newPhysics() *PhysicsSystem {
	return NewPhysicsSystem(config.PhysicsConfig{Gravity: common.Gravity}, nil)
}

func TestPhysicsPlayerLandsOnGround(t *testing.T) {
	w := ecs.NewWorld()
	if _, err := entity.NewGeometry(w, component.KindGround, 0, -11.5, 0, 0); err != nil {
		t.Fatalf("ground: %v", err)
	}
	player, err := entity.NewPlayerAt(w, 0, -8)
	if err != nil {
		t.Fatalf("player: %v", err)
	}
	ps := newPhysics()
	for i := 0; i < 120; i++ {
		ps.Update(w)
	}

	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	// ground top is -11, the player is 4 tall
	if math.Abs(tr.Y-(-9)) > 0.25 {
		t.Fatalf("expected the player resting near y=-9, got %v", tr.Y)
	}
	pc, _ := ecs.Get(w, player, component.PlayerCollisionComponent.Kind())
	if !pc.Grounded || pc.GroundGrace == 0 {
		t.Fatalf("expected grounded with grace, got %+v", *pc)
	}
	if ps.Bodies() != 2 {
		t.Fatalf("expected 2 bodies, got %d", ps.Bodies())
	}
}

func TestPhysicsQueuesContactsAndDropsBodies(t *testing.T) {
	w := ecs.NewWorld()
	player, err := entity.NewPlayerAt(w, 0, 0)
	if err != nil {
		t.Fatalf("player: %v", err)
	}
	armor, err := entity.NewPickup(w, component.KindArmor, 0, 0)
	if err != nil {
		t.Fatalf("armor: %v", err)
	}
	ps := newPhysics()
	ps.Update(w)

	events := w.Events().DrainType(ecs.EventContact)
	if len(events) != 1 {
		t.Fatalf("expected one contact, got %d", len(events))
	}
	c := events[0].Data.(ecs.ContactEvent)
	if !(c.A == player && c.B == armor) && !(c.A == armor && c.B == player) {
		t.Fatalf("unexpected contact %+v", c)
	}

	// Still touching: no new contact.
	ps.Update(w)
	if n := len(w.Events().DrainType(ecs.EventContact)); n != 0 {
		t.Fatalf("expected contact only when touching starts, got %d", n)
	}

	ecs.DestroyEntity(w, armor)
	if ps.Bodies() != 1 {
		t.Fatalf("expected the body removed on destroy, got %d", ps.Bodies())
	}
}

func TestPhysicsGravityScale(t *testing.T) {
	w := ecs.NewWorld()
	flyer, err := entity.NewFlyingEnemy(w, 0, 0)
	if err != nil {
		t.Fatalf("flyer: %v", err)
	}
	ps := newPhysics()
	for i := 0; i < 30; i++ {
		ps.Update(w)
	}
	tr, _ := ecs.Get(w, flyer, component.TransformComponent.Kind())
	if tr.Y != 0 {
		t.Fatalf("expected a flyer to ignore gravity, got y=%v", tr.Y)
	}
}
