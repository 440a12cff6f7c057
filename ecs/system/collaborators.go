package system

import (
	"errors"

	"github.com/milk9111/platformer/ecs/component"
)

var (
	ErrMissingCollaborator = errors.New("system: missing collaborator")
	ErrNoCheckpoint        = errors.New("system: actor has no checkpoint")
	ErrNoRun               = errors.New("system: actor has no run")
)

// AxisSource is one input device. Sources are summed, so a keyboard and a
// stick held the same way add up.
type AxisSource interface {
	Axes() (horizontal, vertical float64)
}

// Animator receives the actor's animation state every frame.
type Animator interface {
	SetState(state int)
}

// CuePlayer plays a cue on a fixed channel.
type CuePlayer interface {
	Play(channel component.Channel, cue component.Cue)
}

// ShakeDriver moves the camera. Pulse starts or restarts a shake; Settle
// stops it once the shake timer runs out.
type ShakeDriver interface {
	Pulse(intensity, duration float64)
	Settle()
}

// RunTransition leaves gameplay for the end screen.
type RunTransition interface {
	EndRun()
}

// ProjectileTeardown releases every pooled projectile before the run ends.
type ProjectileTeardown interface {
	Teardown()
}

// DustEmitter plays the cosmetic dust trail.
type DustEmitter interface {
	Play(x, y float64)
}
