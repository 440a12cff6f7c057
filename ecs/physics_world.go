package ecs

import (
	"time"

	"github.com/jakecoffman/cp"
)

// ForceMode selects how AddForce changes a body's velocity.
type ForceMode int

const (
	// ForceModeForce integrates the force over one fixed step.
	ForceModeForce ForceMode = iota
	// ForceModeImpulse changes momentum instantly.
	ForceModeImpulse
)

const defaultSpaceIterations = 20

// PhysicsWorld owns the Chipmunk space and maps shapes back to entities.
type PhysicsWorld struct {
	space *cp.Space
	step  float64

	shapeToEntity map[*cp.Shape]Entity
}

// NewPhysicsWorld creates a space with the given gravity (screen
// coordinates, +Y is down) advanced in steps of step.
func NewPhysicsWorld(gravity float64, step time.Duration) *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = defaultSpaceIterations
	space.SetGravity(cp.Vector{X: 0, Y: gravity})
	if step <= 0 {
		step = time.Second / 60
	}
	return &PhysicsWorld{
		space:         space,
		step:          step.Seconds(),
		shapeToEntity: make(map[*cp.Shape]Entity),
	}
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// StepSeconds returns the fixed step in seconds.
func (pw *PhysicsWorld) StepSeconds() float64 {
	if pw == nil {
		return 0
	}
	return pw.step
}

// Step advances the simulation by one fixed step.
func (pw *PhysicsWorld) Step() {
	if pw == nil || pw.space == nil {
		return
	}
	pw.space.Step(pw.step)
}

// Register associates shape with e so contact handlers can resolve it.
func (pw *PhysicsWorld) Register(shape *cp.Shape, e Entity) {
	if pw == nil || shape == nil {
		return
	}
	pw.shapeToEntity[shape] = e
}

// Unregister removes shape from the space and the entity map.
func (pw *PhysicsWorld) Unregister(shape *cp.Shape) {
	if pw == nil || shape == nil {
		return
	}
	if pw.space.ContainsShape(shape) {
		pw.space.RemoveShape(shape)
	}
	delete(pw.shapeToEntity, shape)
}

// EntityFor returns the entity owning shape.
func (pw *PhysicsWorld) EntityFor(shape *cp.Shape) (Entity, bool) {
	if pw == nil || shape == nil {
		return 0, false
	}
	e, ok := pw.shapeToEntity[shape]
	return e, ok
}

// OverlapCircle reports whether any solid shape whose category is in mask
// lies within radius of center.
func (pw *PhysicsWorld) OverlapCircle(center cp.Vector, radius float64, mask uint) bool {
	if pw == nil || pw.space == nil || radius <= 0 {
		return false
	}
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, mask)
	info := pw.space.PointQueryNearest(center, radius, filter)
	return info != nil && info.Shape != nil
}

// AddForce applies f to body. Both modes change the velocity immediately so
// callers can clamp the result in the same tick.
func (pw *PhysicsWorld) AddForce(body *cp.Body, f cp.Vector, mode ForceMode) {
	if pw == nil || body == nil {
		return
	}
	impulse := f
	if mode == ForceModeForce {
		impulse = f.Mult(pw.step)
	}
	body.ApplyImpulseAtWorldPoint(impulse, body.Position())
}
