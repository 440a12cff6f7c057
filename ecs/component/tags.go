package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// DeathPlaneTag marks the fall-through-world sensor.
type DeathPlaneTag struct{}

var DeathPlaneTagComponent = NewComponent[DeathPlaneTag]()

type GroundTag struct{}

var GroundTagComponent = NewComponent[GroundTag]()
