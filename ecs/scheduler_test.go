package ecs

import "testing"

type recordSystem struct {
	name string
	log  *[]string
}

func (r recordSystem) Update(*World) {
	*r.log = append(*r.log, r.name)
}

func TestSchedulerPhaseOrder(t *testing.T) {
	var log []string
	s := NewScheduler()
	s.Add(PhaseLifecycle, recordSystem{"lifecycle", &log})
	s.Add(PhaseInput, recordSystem{"input", &log})
	s.Add(PhaseBehavior, recordSystem{"patrol", &log})
	s.Add(PhasePhysics, recordSystem{"physics", &log})
	s.Add(PhaseBehavior, recordSystem{"oscillate", &log})

	s.Update(NewWorld())

	want := []string{"input", "physics", "patrol", "oscillate", "lifecycle"}
	if len(log) != len(want) {
		t.Fatalf("expected %v, got %v", want, log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, log)
		}
	}
}

func TestSchedulerGate(t *testing.T) {
	var log []string
	s := NewScheduler()
	s.Add(PhaseInput, recordSystem{"input", &log})
	s.Add(PhasePhysics, recordSystem{"physics", &log})
	s.Add(PhaseLifecycle, recordSystem{"lifecycle", &log})
	s.SetGate(func(p Phase) bool { return p != PhasePhysics })

	s.Update(NewWorld())

	if len(log) != 2 || log[0] != "input" || log[1] != "lifecycle" {
		t.Fatalf("expected physics to be gated, got %v", log)
	}
}

func TestEventQueueDrainType(t *testing.T) {
	var q EventQueue
	q.Push(Event{Type: EventContact, Data: ContactEvent{A: 1, B: 2}})
	q.Push(Event{Type: EventDestroyed, Data: DestroyedEvent{Entity: 3, Cue: "gun"}})
	q.Push(Event{Type: EventContact, Data: ContactEvent{A: 4, B: 5}})

	contacts := q.DrainType(EventContact)
	if len(contacts) != 2 {
		t.Fatalf("expected 2 contacts, got %d", len(contacts))
	}
	if c := contacts[1].Data.(ContactEvent); c.A != 4 {
		t.Fatalf("expected contacts in push order, got %+v", c)
	}
	if q.Len() != 1 {
		t.Fatalf("expected the destroyed event to remain, got %d", q.Len())
	}
	rest := q.Drain()
	if rest[0].Type != EventDestroyed {
		t.Fatalf("unexpected remaining event %+v", rest[0])
	}
}
