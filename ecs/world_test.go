package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/cityrun/ecs/component"
)

func spawnAt(t *testing.T, w *World, x float64) Entity {
	t.Helper()
	e := CreateEntity(w)
	if err := Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x}); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	return e
}

func TestDestroyEntityRunsHooksFirst(t *testing.T) {
	w := NewWorld()
	e := spawnAt(t, w, 3)

	calls := 0
	w.OnDestroy(func(hw *World, he Entity) {
		calls++
		if he != e {
			t.Fatalf("hook got %s, want %s", he, e)
		}
		if !IsAlive(hw, he) {
			t.Fatalf("expected entity alive inside the hook")
		}
		tr, ok := Get(hw, he, component.TransformComponent.Kind())
		if !ok || tr.X != 3 {
			t.Fatalf("expected components readable inside the hook, got %+v %v", tr, ok)
		}
	})
	w.OnDestroy(nil)

	if !DestroyEntity(w, e) {
		t.Fatalf("expected first destroy to succeed")
	}
	if DestroyEntity(w, e) {
		t.Fatalf("expected second destroy to report false")
	}
	if calls != 1 {
		t.Fatalf("expected hook to run once, ran %d times", calls)
	}
	if Has(w, e, component.TransformComponent.Kind()) {
		t.Fatalf("expected components removed")
	}
	if n := len(Entities(w)); n != 0 {
		t.Fatalf("expected no entities, got %d", n)
	}
}

func TestStaleHandleReadsDead(t *testing.T) {
	w := NewWorld()
	old := spawnAt(t, w, 1)
	DestroyEntity(w, old)

	fresh := spawnAt(t, w, 2)
	if fresh.id() != old.id() {
		t.Fatalf("expected id %d to be reused, got %d", old.id(), fresh.id())
	}
	if fresh.generation() == old.generation() || fresh == old {
		t.Fatalf("expected a new generation, got %s and %s", old, fresh)
	}

	if IsAlive(w, old) {
		t.Fatalf("expected stale handle to read dead")
	}
	if _, ok := Get(w, old, component.TransformComponent.Kind()); ok {
		t.Fatalf("expected no component through a stale handle")
	}
	if DestroyEntity(w, old) {
		t.Fatalf("expected stale destroy to be a no-op")
	}
	err := Add(w, old, component.VelocityComponent.Kind(), &component.Velocity{})
	if !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}

	tr, ok := Get(w, fresh, component.TransformComponent.Kind())
	if !IsAlive(w, fresh) || !ok || tr.X != 2 {
		t.Fatalf("expected fresh entity untouched, got %+v %v", tr, ok)
	}
}

func TestZeroAndUnknownEntities(t *testing.T) {
	w := NewWorld()
	spawnAt(t, w, 0)

	for _, e := range []Entity{0, Entity(9999)} {
		if IsAlive(w, e) {
			t.Fatalf("expected %s dead", e)
		}
		if DestroyEntity(w, e) {
			t.Fatalf("expected destroy of %s to fail", e)
		}
	}
	if Entity(0).Valid() {
		t.Fatalf("expected zero entity invalid")
	}
	if IsAlive(nil, 1) || DestroyEntity(nil, 1) || Entities(nil) != nil {
		t.Fatalf("expected nil world to be empty")
	}
}

func TestAddRejectsBadInput(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)

	tests := []struct {
		name string
		add  func() error
		want error
	}{
		{"nil value", func() error { return Add[component.Transform](w, e, component.TransformComponent.Kind(), nil) }, component.ErrNilComponent},
		{"zero kind", func() error { return Add(w, e, component.ComponentKind[int]{}, new(int)) }, component.ErrInvalidComponentKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.add(); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestComponentPointersSurviveRemovals(t *testing.T) {
	w := NewWorld()
	a := spawnAt(t, w, 1)
	b := spawnAt(t, w, 2)
	c := spawnAt(t, w, 3)

	tr, _ := Get(w, c, component.TransformComponent.Kind())
	DestroyEntity(w, a)
	if !Remove(w, b, component.TransformComponent.Kind()) {
		t.Fatalf("expected remove to succeed")
	}
	if Remove(w, b, component.TransformComponent.Kind()) {
		t.Fatalf("expected second remove to report false")
	}

	tr.X = 30
	got, ok := Get(w, c, component.TransformComponent.Kind())
	if !ok || got != tr || got.X != 30 {
		t.Fatalf("expected the same pointer after swaps, got %+v", got)
	}
}

func TestForEachSurvivesDestroyMidPass(t *testing.T) {
	tests := []struct {
		name    string
		destroy func(ents []Entity, i int) Entity
		visits  int
	}{
		{"destroy self", func(ents []Entity, i int) Entity { return ents[i] }, 5},
		{"destroy next", func(ents []Entity, i int) Entity {
			if i+1 < len(ents) {
				return ents[i+1]
			}
			return 0
		}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 5)
			index := map[Entity]int{}
			for i := range ents {
				ents[i] = spawnAt(t, w, float64(i))
				index[ents[i]] = i
			}

			visits := 0
			ForEach(w, component.TransformComponent.Kind(), func(e Entity, _ *component.Transform) {
				visits++
				DestroyEntity(w, tt.destroy(ents, index[e]))
			})
			if visits != tt.visits {
				t.Fatalf("expected %d visits, got %d", tt.visits, visits)
			}
		})
	}
}

func TestForEach2DestroyScope(t *testing.T) {
	w := NewWorld()
	for i := 0; i < 6; i++ {
		e := spawnAt(t, w, float64(i))
		scope := component.ScopeLevel
		if i%3 == 0 {
			scope = component.ScopeBase
		}
		if err := Add(w, e, component.OwnerComponent.Kind(), &component.Owner{Scope: scope}); err != nil {
			t.Fatalf("add owner: %v", err)
		}
	}
	// no owner, never visited
	spawnAt(t, w, 99)

	destroyed := 0
	ForEach2(w, component.OwnerComponent.Kind(), component.TransformComponent.Kind(), func(e Entity, o *component.Owner, _ *component.Transform) {
		if o.Scope == component.ScopeLevel && DestroyEntity(w, e) {
			destroyed++
		}
	})

	if destroyed != 4 {
		t.Fatalf("expected 4 level entities destroyed, got %d", destroyed)
	}
	if n := Count(w, component.OwnerComponent.Kind()); n != 2 {
		t.Fatalf("expected 2 owners left, got %d", n)
	}
	if n := Count(w, component.TransformComponent.Kind()); n != 3 {
		t.Fatalf("expected 3 transforms left, got %d", n)
	}
}

func TestFirstAndCountAfterDestroy(t *testing.T) {
	w := NewWorld()
	kind := component.TransformComponent.Kind()
	if _, ok := First(w, kind); ok {
		t.Fatalf("expected no entity in an empty world")
	}

	a := spawnAt(t, w, 1)
	b := spawnAt(t, w, 2)
	if e, ok := First(w, kind); !ok || e != a {
		t.Fatalf("expected first %s, got %s", a, e)
	}

	DestroyEntity(w, a)
	if e, ok := First(w, kind); !ok || e != b {
		t.Fatalf("expected first %s after destroy, got %s", b, e)
	}
	if n := Count(w, kind); n != 1 {
		t.Fatalf("expected count 1, got %d", n)
	}

	DestroyEntity(w, b)
	if _, ok := First(w, kind); ok {
		t.Fatalf("expected no entity left")
	}
	if n := Count(w, kind); n != 0 {
		t.Fatalf("expected count 0, got %d", n)
	}
}

func TestEventQueue(t *testing.T) {
	w := NewWorld()
	q := w.Events()
	q.Push(Event{Type: EventContact, Data: ContactEvent{A: 1, B: 2}})
	q.Push(Event{Type: EventLevelChanged, Data: "level1"})
	q.Push(Event{Type: EventContact, Data: ContactEvent{A: 3, B: 4}})
	q.Push(Event{Type: EventSpawned, Data: SpawnedEvent{Cue: "shoot"}})

	contacts := q.DrainType(EventContact)
	if len(contacts) != 2 || contacts[1].Data.(ContactEvent).A != 3 {
		t.Fatalf("unexpected contacts %+v", contacts)
	}
	rest := q.Drain()
	if len(rest) != 2 || rest[0].Type != EventLevelChanged || rest[1].Type != EventSpawned {
		t.Fatalf("expected the other events kept in order, got %+v", rest)
	}
	if q.Drain() != nil {
		t.Fatalf("expected empty drain")
	}

	q.Push(Event{Type: EventDestroyed})
	w.FlushEvents()
	if q.Len() != 0 {
		t.Fatalf("expected flush to empty the queue, got %d", q.Len())
	}
}
