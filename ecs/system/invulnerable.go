package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// InvulnerabilitySystem counts hit cooldowns down. It runs before
// DamageSystem so an entity hit on tick t is immune for the next Frames
// ticks.
type InvulnerabilitySystem struct{}

func NewInvulnerabilitySystem() *InvulnerabilitySystem {
	return &InvulnerabilitySystem{}
}

func (s *InvulnerabilitySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.InvulnerableComponent.Kind(), func(e ecs.Entity, inv *component.Invulnerable) {
		if inv.Frames <= 0 {
			_ = ecs.Remove(w, e, component.InvulnerableComponent.Kind())
			return
		}
		inv.Frames--
	})
}
