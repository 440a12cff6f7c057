package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

type InputSystem struct {
	sources []AxisSource
}

func NewInputSystem(sources ...AxisSource) *InputSystem {
	s := &InputSystem{}
	for _, src := range sources {
		if src != nil {
			s.sources = append(s.sources, src)
		}
	}
	return s
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var horizontal, vertical float64
	for _, src := range i.sources {
		x, y := src.Axes()
		horizontal += x
		vertical += y
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		input.Horizontal = horizontal
		input.Vertical = vertical
	})
}
