package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// AnimationSystem publishes the actor's animation state to the animator
// every frame.
type AnimationSystem struct {
	animator Animator
}

func NewAnimationSystem(animator Animator) *AnimationSystem {
	return &AnimationSystem{animator: animator}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	if w == nil || a.animator == nil {
		return
	}

	ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.AnimationComponent.Kind(), func(_ ecs.Entity, _ *component.PlayerTag, anim *component.Animation) {
		a.animator.SetState(int(anim.State))
	})
}
