package component

// SourceKind classifies things that hurt an actor on contact.
type SourceKind int

const (
	SourceEnemy SourceKind = iota + 1
	SourceHazard
	SourceProjectile
)

func (k SourceKind) String() string {
	switch k {
	case SourceEnemy:
		return "enemy"
	case SourceHazard:
		return "hazard"
	case SourceProjectile:
		return "projectile"
	default:
		return "unknown"
	}
}

var sourceDamage = map[SourceKind]int{
	SourceEnemy:      20,
	SourceHazard:     30,
	SourceProjectile: 10,
}

// Damage returns the fixed damage dealt by kind, or 0 for unknown kinds.
func (k SourceKind) Damage() int {
	return sourceDamage[k]
}

// DamageSource tags an entity as a damage source.
type DamageSource struct {
	Kind SourceKind
}

var DamageSourceComponent = NewComponent[DamageSource]()
