package component

// Projectile is a pooled bullet. TTL counts physics ticks left.
type Projectile struct {
	TTL    int
	Active bool
}

var ProjectileComponent = NewComponent[Projectile]()

// ProjectileSpent marks a projectile that hit something and should return
// to its pool.
type ProjectileSpent struct{}

var ProjectileSpentComponent = NewComponent[ProjectileSpent]()

// Turret fires projectiles horizontally every Interval ticks.
type Turret struct {
	Interval int
	Cooldown int
	DirX     float64
	Speed    float64
	TTL      int
	Radius   float64
}

var TurretComponent = NewComponent[Turret]()
