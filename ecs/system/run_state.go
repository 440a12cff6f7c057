package system

import (
	"fmt"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"go.uber.org/zap"
)

// RunStateConfig wires the run-state system to the outside world. Both
// Transition and Projectiles are required.
type RunStateConfig struct {
	Transition  RunTransition
	Projectiles ProjectileTeardown
	Logger      *zap.Logger
}

// RunStateSystem decides once per frame whether the run continues, the
// actor respawns, or the run ends.
type RunStateSystem struct {
	transition  RunTransition
	projectiles ProjectileTeardown
	logger      *zap.Logger
}

func NewRunStateSystem(cfg RunStateConfig) (*RunStateSystem, error) {
	if cfg.Transition == nil {
		return nil, fmt.Errorf("run state system: transition: %w", ErrMissingCollaborator)
	}
	if cfg.Projectiles == nil {
		return nil, fmt.Errorf("run state system: projectile pool: %w", ErrMissingCollaborator)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RunStateSystem{
		transition:  cfg.Transition,
		projectiles: cfg.Projectiles,
		logger:      logger,
	}, nil
}

func (r *RunStateSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.ActorLinksComponent.Kind(), func(actor ecs.Entity, _ *component.PlayerTag, links *component.ActorLinks) {
		run := ecs.Entity(links.Run)
		lives, ok := ecs.Get(w, run, component.LivesComponent.Kind())
		if !ok {
			return
		}
		state, ok := ecs.Get(w, run, component.RunStateComponent.Kind())
		if !ok || state.Ended {
			return
		}

		if health, ok := ecs.Get(w, actor, component.HealthComponent.Kind()); ok && health.Depleted() {
			outcome, err := ApplyDeath(w, actor, true)
			if err != nil {
				r.logger.Error("apply death", runIDField(state.ID), zap.Stringer("actor", actor), zap.Error(err))
			} else {
				r.logger.Info("actor died",
					runIDField(state.ID),
					zap.Stringer("outcome", outcome),
					zap.Int("lives", lives.Current),
				)
			}
		}

		// Checked every frame, not only after a death this frame.
		if lives.Exhausted() {
			state.Ended = true
			r.projectiles.Teardown()
			r.transition.EndRun()
			r.logger.Info("run ended", runIDField(state.ID), zap.Int("deaths", state.Deaths))
		}
	})
}

// runIDField tags a log line with the run it belongs to. The id is read
// from RunState at the call site so lines after a restart carry the new id.
func runIDField(id string) zap.Field {
	return zap.String("run_id", id)
}

// runIDOf returns the id of the run actor is linked to.
func runIDOf(w *ecs.World, actor ecs.Entity) string {
	links, ok := ecs.Get(w, actor, component.ActorLinksComponent.Kind())
	if !ok {
		return ""
	}
	if state, ok := ecs.Get(w, ecs.Entity(links.Run), component.RunStateComponent.Kind()); ok {
		return state.ID
	}
	return ""
}

// currentRunID returns the id of the first run in w.
func currentRunID(w *ecs.World) string {
	if _, state, ok := ecs.First(w, component.RunStateComponent.Kind()); ok {
		return state.ID
	}
	return ""
}
