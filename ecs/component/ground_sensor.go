package component

// GroundSensor is a circular probe below the actor. Offset is relative to
// the body position; Mask selects the collision categories that count as
// ground. Grounded is rewritten every physics tick.
type GroundSensor struct {
	OffsetX  float64
	OffsetY  float64
	Radius   float64
	Mask     uint
	Grounded bool
}

var GroundSensorComponent = NewComponent[GroundSensor]()
