package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// GroundSensorSystem probes below each sensor-carrying body once per
// physics tick. It must run before MovementSystem.
type GroundSensorSystem struct {
	physics *ecs.PhysicsWorld
}

func NewGroundSensorSystem(physics *ecs.PhysicsWorld) *GroundSensorSystem {
	return &GroundSensorSystem{physics: physics}
}

func (g *GroundSensorSystem) Update(w *ecs.World) {
	if w == nil || g.physics == nil {
		return
	}

	ecs.ForEach2(w, component.GroundSensorComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(_ ecs.Entity, sensor *component.GroundSensor, body *component.PhysicsBody) {
		if body.Body == nil {
			sensor.Grounded = false
			return
		}
		foot := body.Body.Position().Add(cp.Vector{X: sensor.OffsetX, Y: sensor.OffsetY})
		sensor.Grounded = g.physics.OverlapCircle(foot, sensor.Radius, sensor.Mask)
	})
}
