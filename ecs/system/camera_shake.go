package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// CameraShakeSystem starts shakes on request and stops them when the timer
// runs out. A request during a running shake restarts the timer.
type CameraShakeSystem struct {
	driver ShakeDriver
	step   float64
}

// NewCameraShakeSystem ticks shake timers by step seconds per update.
func NewCameraShakeSystem(driver ShakeDriver, step float64) *CameraShakeSystem {
	return &CameraShakeSystem{driver: driver, step: step}
}

func (c *CameraShakeSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.CameraShakeComponent.Kind(), func(e ecs.Entity, shake *component.CameraShake) {
		if req, ok := ecs.Get(w, e, component.CameraShakeRequestComponent.Kind()); ok {
			pulses := max(req.Count, 1)
			ecs.Remove(w, e, component.CameraShakeRequestComponent.Kind())
			shake.Shaking = true
			for range pulses {
				shake.Timer = shake.Duration
				if c.driver != nil {
					c.driver.Pulse(shake.Intensity, shake.Duration)
				}
			}
			return
		}

		if !shake.Shaking {
			return
		}
		shake.Timer -= c.step
		if shake.Timer <= 0 {
			shake.Shaking = false
			shake.Timer = shake.Duration
			if c.driver != nil {
				c.driver.Settle()
			}
		}
	})
}
