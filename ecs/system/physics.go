package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypePlayer
	collisionTypeEnemy
	collisionTypeHazard
	collisionTypeProjectile
	collisionTypeDeathPlane
)

// PhysicsSystem mirrors PhysicsBody components into the Chipmunk space,
// steps it once per fixed tick and turns player contacts into
// ecs.ContactEvents.
type PhysicsSystem struct {
	physics       *ecs.PhysicsWorld
	handlersReady bool

	// world is only set for the duration of Update so contact handlers
	// can push events.
	world  *ecs.World
	bodies map[ecs.Entity]*bodyInfo
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
}

func NewPhysicsSystem(physics *ecs.PhysicsWorld) *PhysicsSystem {
	return &PhysicsSystem{
		physics: physics,
		bodies:  make(map[ecs.Entity]*bodyInfo),
	}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil || ps.physics == nil {
		return
	}

	ps.world = w
	defer func() { ps.world = nil }()

	ps.ensureHandlers()
	ps.cleanupEntities(w)
	ps.syncEntities(w)

	ps.physics.Step()

	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}
	space := ps.physics.Space()

	// Solid contact with an enemy keeps reporting every step while the
	// shapes touch.
	enemy := space.NewCollisionHandler(collisionTypePlayer, collisionTypeEnemy)
	enemy.UserData = ps
	enemy.PreSolveFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
		if sys, ok := userData.(*PhysicsSystem); ok {
			sys.pushContact(arb, ecs.ContactCollision)
		}
		return true
	}

	for _, other := range []cp.CollisionType{collisionTypeHazard, collisionTypeProjectile, collisionTypeDeathPlane} {
		trigger := space.NewCollisionHandler(collisionTypePlayer, other)
		trigger.UserData = ps
		trigger.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
			if sys, ok := userData.(*PhysicsSystem); ok {
				sys.pushContact(arb, ecs.ContactTrigger)
			}
			return true
		}
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) pushContact(arb *cp.Arbiter, kind ecs.ContactKind) {
	if ps.world == nil {
		return
	}
	shapeA, shapeB := arb.Shapes()
	a, okA := ps.physics.EntityFor(shapeA)
	b, okB := ps.physics.EntityFor(shapeB)
	if !okA || !okB {
		return
	}
	ps.world.Contacts().Push(ecs.ContactEvent{Entity: a, Other: b, Kind: kind})
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody, t *component.Transform) {
		if info := ps.bodies[e]; info != nil {
			if body.Shape == info.shape {
				return
			}
			// The component was replaced (a pooled projectile came back).
			ps.removeInfo(info)
			delete(ps.bodies, e)
		}

		info := ps.createBodyInfo(w, e, body, t)
		if info == nil {
			return
		}
		ps.bodies[e] = info
		body.Body = info.body
		body.Shape = info.shape
	})
}

func (ps *PhysicsSystem) createBodyInfo(w *ecs.World, e ecs.Entity, bodyComp *component.PhysicsBody, t *component.Transform) *bodyInfo {
	space := ps.physics.Space()

	width := bodyComp.Width
	height := bodyComp.Height
	radius := bodyComp.Radius
	if radius <= 0 && (width <= 0 || height <= 0) {
		width = 32
		height = 32
	}

	info := &bodyInfo{static: bodyComp.Static}

	var shape *cp.Shape
	if bodyComp.Static {
		if radius > 0 {
			shape = cp.NewCircle(space.StaticBody, radius, cp.Vector{X: t.X, Y: t.Y})
		} else {
			bb := cp.BB{L: t.X - width/2, B: t.Y - height/2, R: t.X + width/2, T: t.Y + height/2}
			shape = cp.NewBox2(space.StaticBody, bb, 0)
		}
		info.body = space.StaticBody
	} else {
		mass := bodyComp.Mass
		if mass <= 0 {
			mass = 1
		}
		var moment float64
		switch {
		case bodyComp.FixedRotation:
			moment = math.Inf(1)
		case radius > 0:
			moment = cp.MomentForCircle(mass, 0, radius, cp.Vector{})
		default:
			moment = cp.MomentForBox(mass, width, height)
		}

		body := cp.NewBody(mass, moment)
		body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
		body.SetAngle(t.Rotation)
		if bodyComp.NoGravity {
			body.SetVelocityUpdateFunc(func(body *cp.Body, _ cp.Vector, damping float64, dt float64) {
				cp.BodyUpdateVelocity(body, cp.Vector{}, damping, dt)
			})
		}
		body.SetVelocity(bodyComp.VelocityX, bodyComp.VelocityY)
		space.AddBody(body)

		if radius > 0 {
			shape = cp.NewCircle(body, radius, cp.Vector{})
		} else {
			shape = cp.NewBox(body, width, height, 0)
		}
		info.body = body
	}

	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetSensor(bodyComp.Sensor)
	shape.SetCollisionType(collisionTypeFor(w, e))
	shape.SetFilter(shapeFilterFor(w, e))
	space.AddShape(shape)
	ps.physics.Register(shape, e)

	info.shape = shape
	return info
}

func collisionTypeFor(w *ecs.World, e ecs.Entity) cp.CollisionType {
	if ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
		return collisionTypePlayer
	}
	if ecs.Has(w, e, component.DeathPlaneTagComponent.Kind()) {
		return collisionTypeDeathPlane
	}
	if src, ok := ecs.Get(w, e, component.DamageSourceComponent.Kind()); ok {
		switch src.Kind {
		case component.SourceEnemy:
			return collisionTypeEnemy
		case component.SourceHazard:
			return collisionTypeHazard
		case component.SourceProjectile:
			return collisionTypeProjectile
		}
	}
	return collisionTypeSolid
}

func shapeFilterFor(w *ecs.World, e ecs.Entity) cp.ShapeFilter {
	layer, ok := ecs.Get(w, e, component.CollisionLayerComponent.Kind())
	if !ok || layer.Category == 0 {
		return cp.ShapeFilter{Group: cp.NO_GROUP, Categories: component.LayerGround, Mask: cp.ALL_CATEGORIES}
	}
	mask := layer.Mask
	if mask == 0 {
		mask = cp.ALL_CATEGORIES
	}
	return cp.ShapeFilter{Group: cp.NO_GROUP, Categories: layer.Category, Mask: mask}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, body *component.PhysicsBody, t *component.Transform) {
		if body.Static || body.Body == nil {
			return
		}
		pos := body.Body.Position()
		t.X = pos.X
		t.Y = pos.Y
		t.Rotation = body.Body.Angle()
	})
}

// cleanupEntities drops bodies whose entity died or lost its PhysicsBody,
// e.g. a projectile returned to its pool.
func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.bodies {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		ps.removeInfo(info)
		delete(ps.bodies, e)
	}
}

func (ps *PhysicsSystem) removeInfo(info *bodyInfo) {
	space := ps.physics.Space()
	ps.physics.Unregister(info.shape)
	if !info.static && info.body != nil && space.ContainsBody(info.body) {
		space.RemoveBody(info.body)
	}
}
