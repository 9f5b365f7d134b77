package system

import (
	"github.com/milk9111/cityrun/ecs"
	"go.uber.org/zap"
)

// CuePlayer plays a named sound cue.
type CuePlayer interface {
	Play(cue string) error
}

// AudioSystem plays the cues queued by spawns and gameplay destroys. With no
// player the cues are drained and dropped.
type AudioSystem struct {
	player CuePlayer
	log    *zap.Logger
}

func NewAudioSystem(player CuePlayer, log *zap.Logger) *AudioSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &AudioSystem{player: player, log: log}
}

func (a *AudioSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	var cues []string
	for _, evt := range w.Events().DrainType(ecs.EventSpawned) {
		if spawned, ok := evt.Data.(ecs.SpawnedEvent); ok && spawned.Cue != "" {
			cues = append(cues, spawned.Cue)
		}
	}
	for _, evt := range w.Events().DrainType(ecs.EventDestroyed) {
		if destroyed, ok := evt.Data.(ecs.DestroyedEvent); ok && destroyed.Cue != "" {
			cues = append(cues, destroyed.Cue)
		}
	}
	if a.player == nil {
		return
	}
	for _, cue := range cues {
		if err := a.player.Play(cue); err != nil {
			a.log.Warn("play cue", zap.String("cue", cue), zap.Error(err))
		}
	}
}
