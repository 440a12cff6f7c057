package system

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// DeathOutcome reports what ApplyDeath did.
type DeathOutcome int

const (
	// DeathIgnored means the run had no lives left to lose.
	DeathIgnored DeathOutcome = iota
	// DeathRespawned means a life was lost and the actor is back at its
	// checkpoint with full health.
	DeathRespawned
	// DeathRunOver means the last life was lost; the run-state system ends
	// the run.
	DeathRunOver
)

func (o DeathOutcome) String() string {
	switch o {
	case DeathIgnored:
		return "ignored"
	case DeathRespawned:
		return "respawned"
	case DeathRunOver:
		return "run_over"
	default:
		return "unknown"
	}
}

// ApplyDeath is the single death consequence shared by health depletion
// and falling out of the world: lose a life, then, if any remain, restore
// health, respawn at the checkpoint and optionally queue the death cue.
func ApplyDeath(w *ecs.World, actor ecs.Entity, playCue bool) (DeathOutcome, error) {
	links, ok := ecs.Get(w, actor, component.ActorLinksComponent.Kind())
	if !ok {
		return DeathIgnored, fmt.Errorf("apply death to %s: %w", actor, ErrNoRun)
	}
	run := ecs.Entity(links.Run)
	lives, ok := ecs.Get(w, run, component.LivesComponent.Kind())
	if !ok {
		return DeathIgnored, fmt.Errorf("apply death to %s: %w", actor, ErrNoRun)
	}
	if lives.Exhausted() {
		return DeathIgnored, nil
	}

	lives.LoseLife()
	if state, ok := ecs.Get(w, run, component.RunStateComponent.Kind()); ok {
		state.Deaths++
	}
	if lives.Exhausted() {
		return DeathRunOver, nil
	}

	if health, ok := ecs.Get(w, actor, component.HealthComponent.Kind()); ok {
		health.Reset()
	}
	if err := Respawn(w, actor); err != nil {
		return DeathRespawned, err
	}
	if playCue {
		if cues, ok := ecs.Get(w, actor, component.AudioCuesComponent.Kind()); ok {
			cues.Push(component.ChannelDeathFX, component.CueDeath)
		}
	}
	return DeathRespawned, nil
}

// Respawn moves actor to its checkpoint. Velocity is left as it was.
func Respawn(w *ecs.World, actor ecs.Entity) error {
	links, ok := ecs.Get(w, actor, component.ActorLinksComponent.Kind())
	if !ok {
		return fmt.Errorf("respawn %s: %w", actor, ErrNoCheckpoint)
	}
	checkpoint, ok := ecs.Get(w, ecs.Entity(links.Checkpoint), component.CheckpointComponent.Kind())
	if !ok {
		return fmt.Errorf("respawn %s: %w", actor, ErrNoCheckpoint)
	}

	if t, ok := ecs.Get(w, actor, component.TransformComponent.Kind()); ok {
		t.X = checkpoint.X
		t.Y = checkpoint.Y
	}
	if body, ok := ecs.Get(w, actor, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
		body.Body.SetPosition(cp.Vector{X: checkpoint.X, Y: checkpoint.Y})
	}
	return nil
}
