package entity

import (
	"fmt"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

// PlayerConfig ties a player prefab to its run and checkpoint.
type PlayerConfig struct {
	Spec       *prefabs.PlayerSpec
	Run        ecs.Entity
	Checkpoint ecs.Entity
	Shake      prefabs.ShakeSpec
	X, Y       float64
}

// BuildPlayer creates the controllable actor. The checkpoint must exist
// before the player does.
func BuildPlayer(w *ecs.World, cfg PlayerConfig) (ecs.Entity, error) {
	spec := cfg.Spec
	if spec == nil {
		return 0, fmt.Errorf("player: %w", ErrNilSpec)
	}
	if !ecs.Has(w, cfg.Checkpoint, component.CheckpointComponent.Kind()) {
		return 0, fmt.Errorf("player: %w", ErrNoCheckpoint)
	}
	if !ecs.Has(w, cfg.Run, component.LivesComponent.Kind()) {
		return 0, fmt.Errorf("player: %w", ErrNoRunEntity)
	}

	e := ecs.CreateEntity(w)
	add := func(name string, err error) error {
		if err != nil {
			return fmt.Errorf("player: add %s: %w", name, err)
		}
		return nil
	}

	steps := []struct {
		name string
		err  error
	}{
		{"tag", ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})},
		{"transform", ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: cfg.X, Y: cfg.Y})},
		{"physics body", ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Width:         spec.Collider.Width,
			Height:        spec.Collider.Height,
			Radius:        spec.Collider.Radius,
			Mass:          spec.Collider.Mass,
			Friction:      spec.Collider.Friction,
			FixedRotation: true,
		})},
		{"collision layer", ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
			Category: component.LayerPlayer,
			Mask:     component.LayerGround | component.LayerEnemy | component.LayerHazard | component.LayerProjectile | component.LayerDeathPlane,
		})},
		{"health", ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{Current: spec.Health, Max: spec.Health})},
		{"movement", ecs.Add(w, e, component.MovementComponent.Kind(), MovementFromSpec(spec.Movement))},
		{"ground sensor", ecs.Add(w, e, component.GroundSensorComponent.Kind(), &component.GroundSensor{
			OffsetX: spec.GroundProbe.OffsetX,
			OffsetY: spec.GroundProbe.OffsetY,
			Radius:  spec.GroundProbe.Radius,
			Mask:    component.LayerGround,
		})},
		{"input", ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})},
		{"facing", ecs.Add(w, e, component.FacingComponent.Kind(), &component.Facing{Sign: 1})},
		{"animation", ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{State: component.AnimIdle})},
		{"audio cues", ecs.Add(w, e, component.AudioCuesComponent.Kind(), &component.AudioCues{})},
		{"camera shake", ecs.Add(w, e, component.CameraShakeComponent.Kind(), &component.CameraShake{
			Intensity: cfg.Shake.Intensity,
			Duration:  cfg.Shake.Duration,
			Timer:     cfg.Shake.Duration,
		})},
		{"links", ecs.Add(w, e, component.ActorLinksComponent.Kind(), &component.ActorLinks{
			Run:        uint64(cfg.Run),
			Checkpoint: uint64(cfg.Checkpoint),
		})},
	}
	for _, s := range steps {
		if err := add(s.name, s.err); err != nil {
			return 0, err
		}
	}
	return e, nil
}

// MovementFromSpec converts prefab tuning into the runtime component.
func MovementFromSpec(spec prefabs.MovementSpec) *component.Movement {
	return &component.Movement{
		HorizontalForce:   spec.HorizontalForce,
		HorizontalSpeed:   spec.HorizontalSpeed,
		VerticalForce:     spec.VerticalForce,
		AirFactor:         spec.AirFactor,
		VerticalThreshold: spec.VerticalThreshold,
	}
}

// ApplyMovementSpec replaces the tuning of every actor with movement.
func ApplyMovementSpec(w *ecs.World, spec prefabs.MovementSpec) int {
	n := 0
	ecs.ForEach(w, component.MovementComponent.Kind(), func(_ ecs.Entity, m *component.Movement) {
		*m = *MovementFromSpec(spec)
		n++
	})
	return n
}
