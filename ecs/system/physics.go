package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/cityrun/common"
	"github.com/milk9111/cityrun/config"
	"github.com/milk9111/cityrun/ecs"
	"github.com/milk9111/cityrun/ecs/component"
	"go.uber.org/zap"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeSensor
	collisionTypePlayer
	collisionTypePlayerFeet
	collisionTypeBullet
)

const groundGraceFrames = 6

// PhysicsSystem owns the cp space. Each tick it pushes transforms and
// velocities into bodies, steps once, pulls the results back and queues an
// EventContact for every pair involving the player or a bullet that started
// touching during the step.
type PhysicsSystem struct {
	space         *cp.Space
	log           *zap.Logger
	handlersReady bool
	bound         *ecs.World

	entities   map[ecs.Entity]*bodyInfo
	shapes     map[*cp.Shape]ecs.Entity
	feetShapes map[*cp.Shape]ecs.Entity
	grounded   map[ecs.Entity]bool

	contacts []contactPair
	seen     map[contactPair]struct{}
}

type bodyInfo struct {
	kind      component.Kind
	body      *cp.Body
	mainShape *cp.Shape
	shapes    []*cp.Shape
	static    bool
}

type contactPair struct {
	a, b ecs.Entity
}

func orderedPair(a, b ecs.Entity) contactPair {
	if b < a {
		a, b = b, a
	}
	return contactPair{a: a, b: b}
}

func NewPhysicsSystem(cfg config.PhysicsConfig, log *zap.Logger) *PhysicsSystem {
	if log == nil {
		log = zap.NewNop()
	}
	iterations := cfg.Iterations
	if iterations <= 0 {
		iterations = 10
	}
	space := cp.NewSpace()
	space.Iterations = uint(iterations)
	space.SetGravity(cp.Vector{X: 0, Y: cfg.Gravity})
	return &PhysicsSystem{
		space:      space,
		log:        log,
		entities:   make(map[ecs.Entity]*bodyInfo),
		shapes:     make(map[*cp.Shape]ecs.Entity),
		feetShapes: make(map[*cp.Shape]ecs.Entity),
		grounded:   make(map[ecs.Entity]bool),
		seen:       make(map[contactPair]struct{}),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.bind(w)
	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.pushState(w)

	clear(ps.grounded)
	ps.space.Step(common.StepDT)

	ps.pullState(w)
	ps.flushPlayerContacts(w)
	ps.flushContacts(w)
}

// bind removes bodies the moment their entity is destroyed, so nothing
// destroyed during collision delivery is stepped again.
func (ps *PhysicsSystem) bind(w *ecs.World) {
	if ps.bound == w {
		return
	}
	ps.bound = w
	w.OnDestroy(func(_ *ecs.World, e ecs.Entity) {
		ps.removeEntity(e)
	})
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}

	begin := func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		a, okA := sys.shapes[shapeA]
		b, okB := sys.shapes[shapeB]
		if !okA || !okB || a == b {
			return true
		}
		// bullets pass through each other
		if sys.kindOf(a) == component.KindBullet && sys.kindOf(b) == component.KindBullet {
			return false
		}
		pair := orderedPair(a, b)
		if _, dup := sys.seen[pair]; dup {
			return true
		}
		sys.seen[pair] = struct{}{}
		sys.contacts = append(sys.contacts, pair)
		return true
	}

	for _, typ := range []cp.CollisionType{collisionTypePlayer, collisionTypeBullet} {
		h := ps.space.NewWildcardCollisionHandler(typ)
		h.UserData = ps
		h.BeginFunc = begin
	}

	feet := ps.space.NewWildcardCollisionHandler(collisionTypePlayerFeet)
	feet.UserData = ps
	feet.PreSolveFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		player, okA := sys.feetShapes[shapeA]
		other := shapeB
		if !okA {
			var okB bool
			player, okB = sys.feetShapes[shapeB]
			if !okB {
				return true
			}
			other = shapeA
		}
		if other.Sensor() {
			return true
		}
		if e, ok := sys.shapes[other]; ok && sys.kindOf(e) == component.KindBullet {
			return true
		}
		sys.grounded[player] = true
		return true
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if _, ok := ps.entities[e]; ok {
			return
		}
		kind := component.KindNone
		if k, ok := ecs.Get(w, e, component.EntityKindComponent.Kind()); ok {
			kind = k.Kind
		}
		scale := 1.0
		if gs, ok := ecs.Get(w, e, component.GravityScaleComponent.Kind()); ok {
			scale = gs.Scale
		}

		info := ps.createBodyInfo(e, kind, *transform, *bodyComp, scale)
		if info == nil {
			return
		}
		ps.entities[e] = info
		bodyComp.Body = info.body
		bodyComp.Shape = info.mainShape
	})
}

func (ps *PhysicsSystem) createBodyInfo(e ecs.Entity, kind component.Kind, transform component.Transform, bodyComp component.PhysicsBody, gravityScale float64) *bodyInfo {
	width, height, radius := bodyComp.Width, bodyComp.Height, bodyComp.Radius
	if radius <= 0 && (width <= 0 || height <= 0) {
		ps.log.Warn("physics body without size", zap.Stringer("entity", e), zap.Stringer("kind", kind))
		return nil
	}

	newShape := func(body *cp.Body, center cp.Vector) *cp.Shape {
		if radius > 0 {
			return cp.NewCircle(body, radius, center)
		}
		bb := cp.BB{
			L: center.X - width/2,
			B: center.Y - height/2,
			R: center.X + width/2,
			T: center.Y + height/2,
		}
		return cp.NewBox2(body, bb, 0)
	}

	info := &bodyInfo{kind: kind, static: bodyComp.Static}
	pos := cp.Vector{X: transform.X, Y: transform.Y}

	var shape *cp.Shape
	switch {
	case bodyComp.Static:
		info.body = ps.space.StaticBody
		shape = newShape(ps.space.StaticBody, pos)
	case bodyComp.Kinematic:
		body := cp.NewKinematicBody()
		body.SetPosition(pos)
		ps.space.AddBody(body)
		info.body = body
		shape = newShape(body, cp.Vector{})
	default:
		mass := bodyComp.Mass
		if mass <= 0 {
			mass = 1
		}
		moment := math.Inf(1)
		if !bodyComp.FixedRotation {
			if radius > 0 {
				moment = cp.MomentForCircle(mass, 0, radius, cp.Vector{})
			} else {
				moment = cp.MomentForBox(mass, width, height)
			}
		}
		body := cp.NewBody(mass, moment)
		body.SetPosition(pos)
		body.SetAngle(transform.Rotation)
		if gravityScale != 1 {
			scale := gravityScale
			body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping, dt float64) {
				cp.BodyUpdateVelocity(b, gravity.Mult(scale), damping, dt)
			})
		}
		ps.space.AddBody(body)
		info.body = body
		shape = newShape(body, cp.Vector{})
	}

	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetSensor(bodyComp.Sensor)
	shape.SetCollisionType(collisionTypeFor(kind, bodyComp.Sensor))
	ps.space.AddShape(shape)
	ps.shapes[shape] = e

	info.mainShape = shape
	info.shapes = []*cp.Shape{shape}

	if kind == component.KindPlayer && !bodyComp.Static && !bodyComp.Kinematic {
		if feet := createFeetSensor(info.body, bodyComp); feet != nil {
			ps.space.AddShape(feet)
			ps.feetShapes[feet] = e
			info.shapes = append(info.shapes, feet)
		}
	}

	return info
}

func (ps *PhysicsSystem) kindOf(e ecs.Entity) component.Kind {
	if info, ok := ps.entities[e]; ok {
		return info.kind
	}
	return component.KindNone
}

func collisionTypeFor(kind component.Kind, sensor bool) cp.CollisionType {
	switch {
	case kind == component.KindPlayer:
		return collisionTypePlayer
	case kind == component.KindBullet:
		return collisionTypeBullet
	case sensor:
		return collisionTypeSensor
	default:
		return collisionTypeSolid
	}
}

// createFeetSensor is a thin box just below the body; Y is up.
func createFeetSensor(body *cp.Body, bodyComp component.PhysicsBody) *cp.Shape {
	width, height := bodyComp.Width, bodyComp.Height
	if bodyComp.Radius > 0 {
		width, height = bodyComp.Radius*2, bodyComp.Radius*2
	}
	if width <= 0 || height <= 0 {
		return nil
	}
	bb := cp.BB{
		L: -width * 0.45,
		B: -height/2 - 0.2,
		R: width * 0.45,
		T: -height/2 + 0.1,
	}
	feet := cp.NewBox2(body, bb, 0)
	feet.SetSensor(true)
	feet.SetCollisionType(collisionTypePlayerFeet)
	return feet
}

func (ps *PhysicsSystem) pushState(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		info, ok := ps.entities[e]
		if !ok || info.static {
			return
		}
		body := info.body
		pos := body.Position()
		if pos.X != transform.X || pos.Y != transform.Y {
			body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
		}
		if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			body.SetVelocity(vel.X, vel.Y)
		}
		if bodyComp.FixedRotation {
			body.SetAngle(0)
			body.SetAngularVelocity(0)
		}
	})
}

func (ps *PhysicsSystem) pullState(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.PhysicsBody, transform *component.Transform) {
		info, ok := ps.entities[e]
		if !ok || info.static {
			return
		}
		pos := info.body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
		transform.Rotation = info.body.Angle()
		if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			v := info.body.Velocity()
			vel.X = v.X
			vel.Y = v.Y
		}
	})
}

func (ps *PhysicsSystem) flushPlayerContacts(w *ecs.World) {
	ecs.ForEach(w, component.PlayerCollisionComponent.Kind(), func(e ecs.Entity, pc *component.PlayerCollision) {
		if ps.grounded[e] {
			pc.Grounded = true
			pc.GroundGrace = groundGraceFrames
			return
		}
		pc.Grounded = false
		if pc.GroundGrace > 0 {
			pc.GroundGrace--
		}
	})
}

func (ps *PhysicsSystem) flushContacts(w *ecs.World) {
	for _, pair := range ps.contacts {
		w.Events().Push(ecs.Event{Type: ecs.EventContact, Data: ecs.ContactEvent{A: pair.a, B: pair.b}})
	}
	ps.contacts = ps.contacts[:0]
	clear(ps.seen)
}

// cleanupEntities drops bodies whose entity died or lost its PhysicsBody.
func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e := range ps.entities {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		ps.removeEntity(e)
	}
}

func (ps *PhysicsSystem) removeEntity(e ecs.Entity) {
	info, ok := ps.entities[e]
	if !ok {
		return
	}
	for _, shape := range info.shapes {
		if shape == nil {
			continue
		}
		ps.space.RemoveShape(shape)
		delete(ps.shapes, shape)
		delete(ps.feetShapes, shape)
	}
	if info.body != nil && !info.static {
		ps.space.RemoveBody(info.body)
	}
	delete(ps.entities, e)
	delete(ps.grounded, e)
}

// Bodies reports how many entities currently have a body in the space.
func (ps *PhysicsSystem) Bodies() int {
	return len(ps.entities)
}
