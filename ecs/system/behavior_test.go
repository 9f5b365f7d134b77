package system

import (
	"math"
	"testing"

	"github.com/milk9111/cityrun/common"
	"github.com/milk9111/cityrun/ecs"
	"github.com/milk9111/cityrun/ecs/component"
)

func addAll(t *testing.T, w *ecs.World, e ecs.Entity, add ...func(*ecs.World, ecs.Entity) error) {
	t.Helper()
	for _, fn := range add {
		if err := fn(w, e); err != nil {
			t.Fatalf("add component: %v", err)
		}
	}
}

func with[T any](kind component.ComponentKind[T], v T) func(*ecs.World, ecs.Entity) error {
	return func(w *ecs.World, e ecs.Entity) error {
		return ecs.Add(w, e, kind, &v)
	}
}

func newPlayerAt(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	addAll(t, w, e,
		with(component.PlayerComponent.Kind(), component.Player{}),
		with(component.TransformComponent.Kind(), component.Transform{X: x, Y: y}),
	)
	return e
}

func TestPatrolTurnsPastBounds(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	addAll(t, w, e,
		with(component.PatrolComponent.Kind(), component.Patrol{Speed: 1, Left: 0, Right: 2}),
		with(component.TransformComponent.Kind(), component.Transform{X: 1}),
		with(component.FacingComponent.Kind(), component.Facing{}),
	)
	sys := NewPatrolSystem()

	want := []struct {
		x    float64
		left bool
	}{
		{2, false}, // on the bound, not past it
		{3, true},
		{2, true},
		{1, true},
		{0, true},
		{-1, false},
		{0, false},
	}
	for i, step := range want {
		sys.Update(w)
		tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		f, _ := ecs.Get(w, e, component.FacingComponent.Kind())
		if tr.X != step.x || f.Left != step.left {
			t.Fatalf("step %d: expected x=%v left=%v, got x=%v left=%v", i, step.x, step.left, tr.X, f.Left)
		}
	}
}

func TestPatrolStartingLeftKeepsFacing(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	addAll(t, w, e,
		with(component.PatrolComponent.Kind(), component.Patrol{Speed: -0.3, Left: -3, Right: 20}),
		with(component.TransformComponent.Kind(), component.Transform{X: 8}),
		with(component.FacingComponent.Kind(), component.Facing{}),
	)
	NewPatrolSystem().Update(w)
	f, _ := ecs.Get(w, e, component.FacingComponent.Kind())
	if f.Left {
		t.Fatalf("facing should only change at a bound")
	}
}

func TestOscillateBoundaryPolicies(t *testing.T) {
	tests := []struct {
		name   string
		strict bool
		y      float64
		want   float64
	}{
		{"loose turns on touching upper", false, 0.5, -0.5},
		{"strict keeps going on touching upper", true, 0.5, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := ecs.CreateEntity(w)
			addAll(t, w, e,
				with(component.OscillateComponent.Kind(), component.Oscillate{Speed: 0.5, Upper: 1, Lower: -1, Strict: tt.strict}),
				with(component.TransformComponent.Kind(), component.Transform{Y: tt.y}),
			)
			NewOscillateSystem().Update(w)
			o, _ := ecs.Get(w, e, component.OscillateComponent.Kind())
			if o.Speed != tt.want {
				t.Fatalf("expected speed %v, got %v", tt.want, o.Speed)
			}
		})
	}
}

func TestOscillateStaysNearBand(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	addAll(t, w, e,
		with(component.OscillateComponent.Kind(), component.Oscillate{Speed: -0.25, Upper: 15, Lower: 13}),
		with(component.TransformComponent.Kind(), component.Transform{Y: 16}),
	)
	sys := NewOscillateSystem()
	for i := 0; i < 200; i++ {
		sys.Update(w)
		tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		if tr.Y < 13-0.25 || tr.Y > 16 {
			t.Fatalf("step %d: y=%v left the band", i, tr.Y)
		}
	}
}

func TestChaseUsesSignOnly(t *testing.T) {
	w := ecs.NewWorld()
	newPlayerAt(t, w, -10, 5)
	e := ecs.CreateEntity(w)
	addAll(t, w, e,
		with(component.ChaseComponent.Kind(), component.Chase{Speed: 8}),
		with(component.TransformComponent.Kind(), component.Transform{X: 23, Y: -10}),
		with(component.VelocityComponent.Kind(), component.Velocity{Y: -3}),
		with(component.FacingComponent.Kind(), component.Facing{}),
	)
	NewChaseSystem().Update(w)

	v, _ := ecs.Get(w, e, component.VelocityComponent.Kind())
	if v.X != -8 || v.Y != 0 {
		t.Fatalf("expected (-8, 0), got (%v, %v)", v.X, v.Y)
	}
	f, _ := ecs.Get(w, e, component.FacingComponent.Kind())
	if !f.Left {
		t.Fatalf("expected chaser to face the player")
	}
}

func TestChaseFacingWhenLevelWithPlayer(t *testing.T) {
	tests := []struct {
		name     string
		enemyX   float64
		wantVX   float64
		wantLeft bool
	}{
		{"player right", -4, 8, false},
		{"player left", 4, -8, true},
		{"same x", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			newPlayerAt(t, w, 0, 0)
			e := ecs.CreateEntity(w)
			addAll(t, w, e,
				with(component.ChaseComponent.Kind(), component.Chase{Speed: 8}),
				with(component.TransformComponent.Kind(), component.Transform{X: tt.enemyX}),
				with(component.VelocityComponent.Kind(), component.Velocity{}),
				with(component.FacingComponent.Kind(), component.Facing{}),
			)
			NewChaseSystem().Update(w)

			v, _ := ecs.Get(w, e, component.VelocityComponent.Kind())
			f, _ := ecs.Get(w, e, component.FacingComponent.Kind())
			if v.X != tt.wantVX || f.Left != tt.wantLeft {
				t.Fatalf("expected vx %v left %v, got vx %v left %v", tt.wantVX, tt.wantLeft, v.X, f.Left)
			}
		})
	}
}

func TestPursueFliesStraight(t *testing.T) {
	w := ecs.NewWorld()
	newPlayerAt(t, w, 3, 4)
	e := ecs.CreateEntity(w)
	addAll(t, w, e,
		with(component.PursueComponent.Kind(), component.Pursue{Speed: 10}),
		with(component.TransformComponent.Kind(), component.Transform{}),
		with(component.VelocityComponent.Kind(), component.Velocity{}),
	)
	NewPursueSystem().Update(w)

	v, _ := ecs.Get(w, e, component.VelocityComponent.Kind())
	if !common.Approx(v.X, 6) || !common.Approx(v.Y, 8) {
		t.Fatalf("expected (6, 8), got (%v, %v)", v.X, v.Y)
	}
}

func TestBehavioursWithoutPlayer(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	addAll(t, w, e,
		with(component.PursueComponent.Kind(), component.Pursue{Speed: 10}),
		with(component.ChaseComponent.Kind(), component.Chase{Speed: 10}),
		with(component.TransformComponent.Kind(), component.Transform{}),
		with(component.VelocityComponent.Kind(), component.Velocity{X: 1, Y: 2}),
	)
	NewChaseSystem().Update(w)
	NewPursueSystem().Update(w)
	v, _ := ecs.Get(w, e, component.VelocityComponent.Kind())
	if v.X != 1 || v.Y != 2 {
		t.Fatalf("expected velocity untouched, got %+v", *v)
	}
}

func TestPlatformReversesBeforeBound(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	addAll(t, w, e,
		with(component.PlatformPathComponent.Kind(), component.PlatformPath{Axis: component.AxisX, Speed: 1, Forward: 2, Back: -2, Min: 8, Max: 12}),
		with(component.TransformComponent.Kind(), component.Transform{X: 10}),
	)
	sys := NewPlatformSystem()

	sys.Update(w)
	p, _ := ecs.Get(w, e, component.PlatformPathComponent.Kind())
	v, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
	if !ok || v.X != common.PerSecond(1) || v.Y != 0 {
		t.Fatalf("expected velocity along x, got %+v", v)
	}

	// Physics would move it; emulate that.
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	tr.X = 11
	sys.Update(w)
	if p.Speed != -1 {
		t.Fatalf("expected reversal before reaching 12, got speed %v", p.Speed)
	}
	if v.X != common.PerSecond(-1) {
		t.Fatalf("expected reversed velocity, got %v", v.X)
	}

	// Bounds never follow the platform.
	tr.X = 9
	sys.Update(w)
	if p.Min != 8 || p.Max != 12 {
		t.Fatalf("bounds moved: %+v", *p)
	}
	if p.Speed != 1 {
		t.Fatalf("expected reversal before reaching 8, got speed %v", p.Speed)
	}
}

func TestPlatformAnchor(t *testing.T) {
	tests := []struct {
		name     string
		path     component.PlatformPath
		min, max float64
	}{
		{"x", component.PlatformPath{Axis: component.AxisX, Forward: 4, Back: -8}, 14, 26},
		{"y", component.PlatformPath{Axis: component.AxisY, Forward: 5, Back: -5}, -3, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.path
			p.Anchor(22, 2)
			if p.Min != tt.min || p.Max != tt.max {
				t.Fatalf("expected [%v, %v], got [%v, %v]", tt.min, tt.max, p.Min, p.Max)
			}
		})
	}
}

func TestPlatformAlongY(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	addAll(t, w, e,
		with(component.PlatformPathComponent.Kind(), component.PlatformPath{Axis: component.AxisY, Speed: 0.05, Forward: 5, Back: -5, Min: -3, Max: 7}),
		with(component.TransformComponent.Kind(), component.Transform{X: 15, Y: 2}),
		with(component.VelocityComponent.Kind(), component.Velocity{X: 4}),
	)
	NewPlatformSystem().Update(w)
	v, _ := ecs.Get(w, e, component.VelocityComponent.Kind())
	if v.X != 0 || math.Abs(v.Y-common.PerSecond(0.05)) > 1e-9 {
		t.Fatalf("expected vertical velocity, got %+v", *v)
	}
}
