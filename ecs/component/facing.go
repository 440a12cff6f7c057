package component

// Facing is +1 for right and -1 for left.
type Facing struct {
	Sign float64
}

var FacingComponent = NewComponent[Facing]()
