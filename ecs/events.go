package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	// EventContact carries a ContactEvent queued by the physics step.
	EventContact = "contact"
	// EventLevelChanged carries the name of the level that was just built.
	EventLevelChanged = "level_changed"
	// EventDestroyed carries a DestroyedEvent for entities that play a cue.
	EventDestroyed = "destroyed"
	// EventSpawned carries a SpawnedEvent for entities built with a spawn cue.
	EventSpawned = "spawned"
)

// ContactEvent records the start of contact between two bodies. It is
// delivered after the physics step so handlers may destroy freely.
type ContactEvent struct {
	A Entity
	B Entity
}

// DestroyedEvent names what went away so audio and logging can react.
type DestroyedEvent struct {
	Entity Entity
	Cue    string
}

type SpawnedEvent struct {
	Entity Entity
	Cue    string
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// DrainType removes and returns the events of one type, keeping the rest
// queued in order.
func (q *EventQueue) DrainType(typ string) []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	var out []Event
	kept := q.items[:0]
	for _, evt := range q.items {
		if evt.Type == typ {
			out = append(out, evt)
			continue
		}
		kept = append(kept, evt)
	}
	for i := len(kept); i < len(q.items); i++ {
		q.items[i] = Event{}
	}
	q.items = kept
	return out
}

// Len reports how many events are pending.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
