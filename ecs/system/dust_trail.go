package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

type DustTrailSystem struct {
	emitter DustEmitter
}

func NewDustTrailSystem(emitter DustEmitter) *DustTrailSystem {
	return &DustTrailSystem{emitter: emitter}
}

func (d *DustTrailSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.DustTrailRequestComponent.Kind(), func(e ecs.Entity, req *component.DustTrailRequest) {
		if d.emitter != nil {
			d.emitter.Play(req.X, req.Y)
		}
		_ = ecs.Remove(w, e, component.DustTrailRequestComponent.Kind())
	})
}
