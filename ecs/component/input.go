package component

// Input stores per-tick axes for an entity. Horizontal is in [-1, 1] per
// source but sources are summed, so it may exceed that range.
type Input struct {
	Horizontal float64
	Vertical   float64
}

var InputComponent = NewComponent[Input]()
