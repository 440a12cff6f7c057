package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"go.uber.org/zap"
)

// DamageConfig tunes how contacts hurt an actor.
type DamageConfig struct {
	// HitCooldownFrames grants that many physics ticks of invulnerability
	// after a hit. Zero disables it, so a touching enemy hurts every tick.
	HitCooldownFrames int
	// FallPlaysDeathCue controls the death cue on the fall-through path.
	FallPlaysDeathCue bool
	Logger            *zap.Logger
}

// DamageSystem resolves the contacts queued by the physics step. It must
// run after PhysicsSystem in the fixed phase so damage lands before the
// frame's run-state check.
type DamageSystem struct {
	cfg    DamageConfig
	logger *zap.Logger
}

func NewDamageSystem(cfg DamageConfig) *DamageSystem {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DamageSystem{cfg: cfg, logger: logger}
}

func (d *DamageSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, evt := range w.Contacts().Drain() {
		actor, other := evt.Entity, evt.Other
		if !ecs.Has(w, actor, component.PlayerTagComponent.Kind()) {
			actor, other = other, actor
		}
		if !ecs.Has(w, actor, component.PlayerTagComponent.Kind()) {
			continue
		}

		if ecs.Has(w, other, component.DeathPlaneTagComponent.Kind()) {
			d.fall(w, actor)
			continue
		}

		src, ok := ecs.Get(w, other, component.DamageSourceComponent.Kind())
		if !ok {
			continue
		}
		if src.Kind == component.SourceProjectile {
			if err := ecs.Add(w, other, component.ProjectileSpentComponent.Kind(), &component.ProjectileSpent{}); err != nil {
				panic("damage system: mark projectile spent: " + err.Error())
			}
		}
		if ecs.Has(w, actor, component.InvulnerableComponent.Kind()) {
			continue
		}
		d.hit(w, actor, src.Kind)
	}
}

func (d *DamageSystem) hit(w *ecs.World, actor ecs.Entity, kind component.SourceKind) {
	health, ok := ecs.Get(w, actor, component.HealthComponent.Kind())
	if !ok {
		return
	}
	health.TakeDamage(kind.Damage())

	if cues, ok := ecs.Get(w, actor, component.AudioCuesComponent.Kind()); ok {
		cues.Push(component.ChannelHurtFX, component.CueHurt)
	}
	if req, ok := ecs.Get(w, actor, component.CameraShakeRequestComponent.Kind()); ok {
		req.Count++
	} else if err := ecs.Add(w, actor, component.CameraShakeRequestComponent.Kind(), &component.CameraShakeRequest{Count: 1}); err != nil {
		panic("damage system: add camera shake request: " + err.Error())
	}
	if d.cfg.HitCooldownFrames > 0 {
		if err := ecs.Add(w, actor, component.InvulnerableComponent.Kind(), &component.Invulnerable{Frames: d.cfg.HitCooldownFrames}); err != nil {
			panic("damage system: add invulnerable: " + err.Error())
		}
	}

	d.logger.Debug("actor hit",
		runIDField(runIDOf(w, actor)),
		zap.Stringer("actor", actor),
		zap.Stringer("source", kind),
		zap.Int("damage", kind.Damage()),
		zap.Int("health", health.Current),
	)
}

func (d *DamageSystem) fall(w *ecs.World, actor ecs.Entity) {
	outcome, err := ApplyDeath(w, actor, d.cfg.FallPlaysDeathCue)
	if err != nil {
		d.logger.Error("fall through world", runIDField(runIDOf(w, actor)), zap.Stringer("actor", actor), zap.Error(err))
		return
	}
	// Falling always restores health, even when it cost the last life.
	if outcome == DeathRunOver {
		if health, ok := ecs.Get(w, actor, component.HealthComponent.Kind()); ok {
			health.Reset()
		}
	}
	d.logger.Info("fell through world", runIDField(runIDOf(w, actor)), zap.Stringer("actor", actor), zap.Stringer("outcome", outcome))
}
