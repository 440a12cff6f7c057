package component

// AnimationState values are shared with the animator as plain ints.
type AnimationState int

const (
	AnimIdle AnimationState = iota
	AnimRun
	AnimJump
)

func (s AnimationState) String() string {
	switch s {
	case AnimIdle:
		return "idle"
	case AnimRun:
		return "run"
	case AnimJump:
		return "jump"
	default:
		return "unknown"
	}
}

type Animation struct {
	State AnimationState
}

var AnimationComponent = NewComponent[Animation]()
