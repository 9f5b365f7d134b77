package system

import (
	"errors"
	"reflect"
	"testing"

	"github.com/milk9111/cityrun/ecs"
)

type recordingPlayer struct {
	played []string
	fail   map[string]bool
}

func (p *recordingPlayer) Play(cue string) error {
	if p.fail[cue] {
		return errors.New("boom")
	}
	p.played = append(p.played, cue)
	return nil
}

func queueCues(w *ecs.World) {
	w.Events().Push(ecs.Event{Type: ecs.EventDestroyed, Data: ecs.DestroyedEvent{Cue: "enemy_death"}})
	w.Events().Push(ecs.Event{Type: ecs.EventSpawned, Data: ecs.SpawnedEvent{Cue: "shoot"}})
	w.Events().Push(ecs.Event{Type: ecs.EventDestroyed, Data: ecs.DestroyedEvent{Cue: ""}})
	w.Events().Push(ecs.Event{Type: ecs.EventContact, Data: ecs.ContactEvent{}})
	w.Events().Push(ecs.Event{Type: ecs.EventDestroyed, Data: ecs.DestroyedEvent{Cue: "key"}})
}

func TestAudioSystemPlaysQueuedCues(t *testing.T) {
	w := ecs.NewWorld()
	player := &recordingPlayer{fail: map[string]bool{"enemy_death": true}}
	sys := NewAudioSystem(player, nil)

	queueCues(w)
	sys.Update(w)

	want := []string{"shoot", "key"}
	if !reflect.DeepEqual(player.played, want) {
		t.Fatalf("expected %v, got %v", want, player.played)
	}
	if n := w.Events().Len(); n != 1 {
		t.Fatalf("expected only the contact left queued, got %d", n)
	}
}

func TestAudioSystemWithoutPlayerDrops(t *testing.T) {
	w := ecs.NewWorld()
	sys := NewAudioSystem(nil, nil)
	queueCues(w)
	sys.Update(w)
	if n := w.Events().Len(); n != 1 {
		t.Fatalf("expected cues drained, %d events left", n)
	}
}
