package component

// Patrol drives an enemy back and forth around OriginX with a tengo script.
type Patrol struct {
	Script  string
	OriginX float64
	Range   float64
	Speed   float64
	Dir     float64
}

var PatrolComponent = NewComponent[Patrol]()
