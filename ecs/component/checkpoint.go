package component

// Checkpoint is the active respawn location. Level triggers move it; the
// respawn flow only reads it.
type Checkpoint struct {
	X float64
	Y float64
}

var CheckpointComponent = NewComponent[Checkpoint]()
