package entity

import (
	"fmt"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

// BuildLevel creates the static arena, its hazards, patrolling enemies,
// turrets and the death plane. Blocks are given by their top-left corner.
func BuildLevel(w *ecs.World, spec *prefabs.LevelSpec) error {
	if spec == nil {
		return fmt.Errorf("level: %w", ErrNilSpec)
	}

	for i, b := range spec.Ground {
		e := ecs.CreateEntity(w)
		if err := addBlock(w, e, b, false, component.LayerGround, 0); err != nil {
			return fmt.Errorf("level: ground %d: %w", i, err)
		}
		if err := ecs.Add(w, e, component.GroundTagComponent.Kind(), &component.GroundTag{}); err != nil {
			return fmt.Errorf("level: ground %d: %w", i, err)
		}
	}

	for i, b := range spec.Hazards {
		e := ecs.CreateEntity(w)
		if err := addBlock(w, e, b, true, component.LayerHazard, component.LayerPlayer); err != nil {
			return fmt.Errorf("level: hazard %d: %w", i, err)
		}
		if err := ecs.Add(w, e, component.DamageSourceComponent.Kind(), &component.DamageSource{Kind: component.SourceHazard}); err != nil {
			return fmt.Errorf("level: hazard %d: %w", i, err)
		}
	}

	death := ecs.CreateEntity(w)
	if err := addBlock(w, death, spec.DeathPlane, true, component.LayerDeathPlane, component.LayerPlayer); err != nil {
		return fmt.Errorf("level: death plane: %w", err)
	}
	if err := ecs.Add(w, death, component.DeathPlaneTagComponent.Kind(), &component.DeathPlaneTag{}); err != nil {
		return fmt.Errorf("level: death plane: %w", err)
	}

	for i, en := range spec.Enemies {
		if _, err := BuildEnemy(w, en); err != nil {
			return fmt.Errorf("level: enemy %d: %w", i, err)
		}
	}
	for i, t := range spec.Turrets {
		if _, err := BuildTurret(w, t); err != nil {
			return fmt.Errorf("level: turret %d: %w", i, err)
		}
	}
	return nil
}

func addBlock(w *ecs.World, e ecs.Entity, b prefabs.BlockSpec, sensor bool, category, mask uint) error {
	t := &component.Transform{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), t); err != nil {
		return err
	}
	body := &component.PhysicsBody{Width: b.Width, Height: b.Height, Static: true, Sensor: sensor, Friction: 1}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body); err != nil {
		return err
	}
	return ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{Category: category, Mask: mask})
}

// BuildEnemy creates a patrolling enemy centred at (spec.X, spec.Y).
func BuildEnemy(w *ecs.World, spec prefabs.EnemySpec) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: spec.X, Y: spec.Y}); err != nil {
		return 0, err
	}
	body := &component.PhysicsBody{Width: spec.Width, Height: spec.Height, Mass: 1, FixedRotation: true}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body); err != nil {
		return 0, err
	}
	layer := &component.CollisionLayer{Category: component.LayerEnemy, Mask: component.LayerGround | component.LayerPlayer}
	if err := ecs.Add(w, e, component.CollisionLayerComponent.Kind(), layer); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.DamageSourceComponent.Kind(), &component.DamageSource{Kind: component.SourceEnemy}); err != nil {
		return 0, err
	}
	patrol := &component.Patrol{Script: spec.Script, OriginX: spec.X, Range: spec.Range, Speed: spec.Speed, Dir: 1}
	if err := ecs.Add(w, e, component.PatrolComponent.Kind(), patrol); err != nil {
		return 0, err
	}
	return e, nil
}

// BuildTurret creates a turret that fires pooled projectiles.
func BuildTurret(w *ecs.World, spec prefabs.TurretSpec) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: spec.X, Y: spec.Y}); err != nil {
		return 0, err
	}
	dir := spec.Dir
	if dir == 0 {
		dir = -1
	}
	turret := &component.Turret{
		Interval: spec.Interval,
		Cooldown: spec.Interval,
		DirX:     dir,
		Speed:    spec.Speed,
		TTL:      spec.TTL,
		Radius:   spec.Radius,
	}
	if err := ecs.Add(w, e, component.TurretComponent.Kind(), turret); err != nil {
		return 0, err
	}
	return e, nil
}
