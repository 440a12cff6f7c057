package component

// RunState lives on the run entity next to Lives.
type RunState struct {
	ID    string
	Ended bool
	// Deaths counts applied death consequences, for logging and the HUD.
	Deaths int
}

var RunStateComponent = NewComponent[RunState]()
