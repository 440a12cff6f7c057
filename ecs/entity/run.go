package entity

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

var (
	ErrNilSpec      = errors.New("entity: nil spec")
	ErrNoCheckpoint = errors.New("entity: checkpoint entity has no Checkpoint")
	ErrNoRunEntity  = errors.New("entity: run entity has no Lives")
)

// BuildRun creates the run-scoped entity holding lives and run state.
func BuildRun(w *ecs.World, spec *prefabs.RunSpec, runID string) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("run: %w", ErrNilSpec)
	}
	e := ecs.CreateEntity(w)
	lives := &component.Lives{Current: spec.Lives, Max: spec.Lives}
	if err := ecs.Add(w, e, component.LivesComponent.Kind(), lives); err != nil {
		return 0, fmt.Errorf("run: add lives: %w", err)
	}
	if err := ecs.Add(w, e, component.RunStateComponent.Kind(), &component.RunState{ID: runID}); err != nil {
		return 0, fmt.Errorf("run: add run state: %w", err)
	}
	return e, nil
}

// BuildCheckpoint creates a checkpoint at (x, y).
func BuildCheckpoint(w *ecs.World, x, y float64) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.CheckpointComponent.Kind(), &component.Checkpoint{X: x, Y: y}); err != nil {
		return 0, fmt.Errorf("checkpoint: add checkpoint: %w", err)
	}
	return e, nil
}

// ResetRun restores a finished run for another attempt under a new id.
// The player gets full health and goes back to its checkpoint.
func ResetRun(w *ecs.World, run, player ecs.Entity, runID string) error {
	lives, ok := ecs.Get(w, run, component.LivesComponent.Kind())
	if !ok {
		return ErrNoRunEntity
	}
	lives.Reset()
	if state, ok := ecs.Get(w, run, component.RunStateComponent.Kind()); ok {
		*state = component.RunState{ID: runID}
	}
	if health, ok := ecs.Get(w, player, component.HealthComponent.Kind()); ok {
		health.Reset()
	}
	if links, ok := ecs.Get(w, player, component.ActorLinksComponent.Kind()); ok {
		checkpoint, ok := ecs.Get(w, ecs.Entity(links.Checkpoint), component.CheckpointComponent.Kind())
		if !ok {
			return ErrNoCheckpoint
		}
		if t, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
			t.X, t.Y = checkpoint.X, checkpoint.Y
		}
		if body, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
			body.Body.SetPosition(cp.Vector{X: checkpoint.X, Y: checkpoint.Y})
			body.Body.SetVelocity(0, 0)
		}
	}
	_ = ecs.Remove(w, player, component.InvulnerableComponent.Kind())
	return nil
}
