package component

// Movement holds the controller tuning for an actor.
type Movement struct {
	HorizontalForce float64
	HorizontalSpeed float64
	VerticalForce   float64
	// AirFactor scales horizontal force while airborne.
	AirFactor float64
	// VerticalThreshold is the jump axis value that must be exceeded.
	VerticalThreshold float64
}

var MovementComponent = NewComponent[Movement]()
