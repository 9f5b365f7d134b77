package game

import "github.com/milk9111/cityrun/ecs/component"

// HUD is the read-only view handed to the renderer each frame.
type HUD struct {
	Level         LevelID
	Health        int
	Armor         int
	HasWeapon     bool
	GroundEnemies int
	FlyingEnemies int
	GameOver      bool
	LevelWon      bool
	GameWon       bool
}

func Snapshot(state *State, stats component.Stats, level LevelID) HUD {
	return HUD{
		Level:         level,
		Health:        stats.Health,
		Armor:         stats.Armor,
		HasWeapon:     stats.HasWeapon,
		GroundEnemies: state.Remaining(component.KindGroundEnemy),
		FlyingEnemies: state.Remaining(component.KindFlyingEnemy),
		GameOver:      state.GameOver(),
		LevelWon:      state.LevelWon(),
		GameWon:       state.GameWon(),
	}
}
