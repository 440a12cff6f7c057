package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// ProjectilePool recycles projectile entities. Released projectiles keep
// their entity but lose their PhysicsBody, so the physics system drops the
// Chipmunk body until the projectile is acquired again.
type ProjectilePool struct {
	w    *ecs.World
	free []ecs.Entity
	live map[ecs.Entity]struct{}
}

func NewProjectilePool(w *ecs.World) *ProjectilePool {
	return &ProjectilePool{w: w, live: make(map[ecs.Entity]struct{})}
}

// Acquire activates a projectile at (x, y) moving at vx.
func (p *ProjectilePool) Acquire(x, y, vx, radius float64, ttl int) ecs.Entity {
	var e ecs.Entity
	for len(p.free) > 0 && !e.Valid() {
		candidate := p.free[len(p.free)-1]
		p.free = p.free[:len(p.free)-1]
		if p.w.IsAlive(candidate) {
			e = candidate
		}
	}
	if !e.Valid() {
		e = p.w.CreateEntity()
	}

	add := func(err error) {
		if err != nil {
			panic("projectile pool: acquire: " + err.Error())
		}
	}
	add(ecs.Add(p.w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}))
	add(ecs.Add(p.w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Radius:    radius,
		Mass:      0.1,
		Sensor:    true,
		NoGravity: true,
		VelocityX: vx,
	}))
	add(ecs.Add(p.w, e, component.DamageSourceComponent.Kind(), &component.DamageSource{Kind: component.SourceProjectile}))
	add(ecs.Add(p.w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
		Category: component.LayerProjectile,
		Mask:     component.LayerPlayer | component.LayerGround,
	}))
	add(ecs.Add(p.w, e, component.ProjectileComponent.Kind(), &component.Projectile{TTL: ttl, Active: true}))

	p.live[e] = struct{}{}
	return e
}

// Release deactivates e and returns it to the pool.
func (p *ProjectilePool) Release(e ecs.Entity) {
	if _, ok := p.live[e]; !ok {
		return
	}
	delete(p.live, e)
	_ = ecs.Remove(p.w, e, component.PhysicsBodyComponent.Kind())
	_ = ecs.Remove(p.w, e, component.ProjectileSpentComponent.Kind())
	if proj, ok := ecs.Get(p.w, e, component.ProjectileComponent.Kind()); ok {
		proj.Active = false
		proj.TTL = 0
	}
	p.free = append(p.free, e)
}

// Teardown destroys every pooled entity, live or free.
func (p *ProjectilePool) Teardown() {
	for e := range p.live {
		p.w.DestroyEntity(e)
	}
	for _, e := range p.free {
		p.w.DestroyEntity(e)
	}
	p.live = make(map[ecs.Entity]struct{})
	p.free = nil
}

// Live returns the number of active projectiles.
func (p *ProjectilePool) Live() int {
	return len(p.live)
}

// ProjectileSystem fires turrets and returns expired or spent projectiles
// to the pool. It runs after DamageSystem.
type ProjectileSystem struct {
	pool *ProjectilePool
}

func NewProjectileSystem(pool *ProjectilePool) *ProjectileSystem {
	return &ProjectileSystem{pool: pool}
}

func (s *ProjectileSystem) Update(w *ecs.World) {
	if w == nil || s.pool == nil {
		return
	}

	ecs.ForEach(w, component.ProjectileComponent.Kind(), func(e ecs.Entity, proj *component.Projectile) {
		if !proj.Active {
			return
		}
		proj.TTL--
		if proj.TTL <= 0 || ecs.Has(w, e, component.ProjectileSpentComponent.Kind()) {
			s.pool.Release(e)
		}
	})

	ecs.ForEach2(w, component.TurretComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, turret *component.Turret, t *component.Transform) {
		if turret.Cooldown > 0 {
			turret.Cooldown--
			return
		}
		turret.Cooldown = turret.Interval
		spawnX := t.X + turret.DirX*(turret.Radius*2+1)
		s.pool.Acquire(spawnX, t.Y, turret.DirX*turret.Speed, turret.Radius, turret.TTL)
	})
}
