package component

// Invulnerable marks an entity as temporarily immune to damage. The
// invulnerability system counts Frames down each physics tick and removes
// the component at zero.
type Invulnerable struct {
	Frames int
}

var InvulnerableComponent = NewComponent[Invulnerable]()
