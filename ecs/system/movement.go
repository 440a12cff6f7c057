package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// MovementSystem turns input into forces, facing and animation state for
// every controllable actor. Per tick it runs move, jump, then the airborne
// check, so JUMP always wins while the actor is off the ground.
type MovementSystem struct {
	physics *ecs.PhysicsWorld
}

func NewMovementSystem(physics *ecs.PhysicsWorld) *MovementSystem {
	return &MovementSystem{physics: physics}
}

func (m *MovementSystem) Update(w *ecs.World) {
	if w == nil || m.physics == nil {
		return
	}

	ecs.ForEach4(w,
		component.InputComponent.Kind(),
		component.MovementComponent.Kind(),
		component.GroundSensorComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, input *component.Input, mv *component.Movement, sensor *component.GroundSensor, body *component.PhysicsBody) {
			if body.Body == nil {
				return
			}
			anim, _ := ecs.Get(w, e, component.AnimationComponent.Kind())
			m.move(w, e, input.Horizontal, mv, sensor, body.Body, anim)
			m.jump(w, e, input.Vertical, mv, sensor, body.Body)
			if !sensor.Grounded && anim != nil {
				anim.State = component.AnimJump
			}
		})
}

func (m *MovementSystem) move(w *ecs.World, e ecs.Entity, x float64, mv *component.Movement, sensor *component.GroundSensor, body *cp.Body, anim *component.Animation) {
	if x != 0 {
		sign := 1.0
		if x < 0 {
			sign = -1.0
		}
		if facing, ok := ecs.Get(w, e, component.FacingComponent.Kind()); ok {
			facing.Sign = sign
		}

		factor := 1.0
		if !sensor.Grounded {
			factor = mv.AirFactor
		}
		m.physics.AddForce(body, cp.Vector{X: sign * mv.HorizontalForce * factor}, ecs.ForceModeForce)

		vel := body.Velocity()
		vel.X = clamp(vel.X, -mv.HorizontalSpeed, mv.HorizontalSpeed)
		body.SetVelocityVector(vel)

		if anim != nil {
			anim.State = component.AnimRun
		}
		if sensor.Grounded {
			foot := body.Position().Add(cp.Vector{X: sensor.OffsetX, Y: sensor.OffsetY})
			if err := ecs.Add(w, e, component.DustTrailRequestComponent.Kind(), &component.DustTrailRequest{X: foot.X, Y: foot.Y}); err != nil {
				panic("movement system: add dust trail request: " + err.Error())
			}
		}
		return
	}

	if sensor.Grounded && anim != nil {
		anim.State = component.AnimIdle
	}
}

func (m *MovementSystem) jump(w *ecs.World, e ecs.Entity, y float64, mv *component.Movement, sensor *component.GroundSensor, body *cp.Body) {
	if !sensor.Grounded || y <= mv.VerticalThreshold {
		return
	}
	// Screen coordinates: up is -Y.
	m.physics.AddForce(body, cp.Vector{Y: -mv.VerticalForce}, ecs.ForceModeImpulse)
	if cues, ok := ecs.Get(w, e, component.AudioCuesComponent.Kind()); ok {
		cues.Push(component.ChannelMovementFX, component.CueJump)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
