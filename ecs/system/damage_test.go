package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

func TestDamageTablePerSource(t *testing.T) {
	cases := []struct {
		name    string
		kind    component.SourceKind
		contact ecs.ContactKind
		want    int
	}{
		{"enemy_contact", component.SourceEnemy, ecs.ContactCollision, 80},
		{"hazard_overlap", component.SourceHazard, ecs.ContactTrigger, 70},
		{"projectile_overlap", component.SourceProjectile, ecs.ContactTrigger, 90},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t, 3, 100)
			src := f.source(c.kind)
			f.w.Contacts().Push(ecs.ContactEvent{Entity: f.player, Other: src, Kind: c.contact})

			NewDamageSystem(DamageConfig{}).Update(f.w)

			assert.Equal(t, c.want, f.health().Current)
			assert.Equal(t, []component.CueRequest{{Channel: component.ChannelHurtFX, Cue: component.CueHurt}}, f.cues())
			assert.True(t, ecs.Has(f.w, f.player, component.CameraShakeRequestComponent.Kind()))
		})
	}
}

func TestDamageEachEventTriggersOneShakePulse(t *testing.T) {
	f := newFixture(t, 3, 100)
	shake := &recordingShake{}
	damage := NewDamageSystem(DamageConfig{})
	shaker := NewCameraShakeSystem(shake, testStep.Seconds())

	for i, kind := range []component.SourceKind{component.SourceEnemy, component.SourceHazard, component.SourceProjectile} {
		f.w.Contacts().Push(ecs.ContactEvent{Entity: f.player, Other: f.source(kind), Kind: ecs.ContactTrigger})
		damage.Update(f.w)
		shaker.Update(f.w)
		assert.Equal(t, i+1, shake.pulses)
	}
	assert.Equal(t, 40, f.health().Current)
	assert.Len(t, f.cues(), 3)
}

func TestDamageSimultaneousHitsPulseEach(t *testing.T) {
	f := newFixture(t, 3, 100)
	shake := &recordingShake{}
	f.w.Contacts().Push(ecs.ContactEvent{Entity: f.player, Other: f.source(component.SourceHazard), Kind: ecs.ContactTrigger})
	f.w.Contacts().Push(ecs.ContactEvent{Entity: f.player, Other: f.source(component.SourceProjectile), Kind: ecs.ContactTrigger})

	NewDamageSystem(DamageConfig{}).Update(f.w)
	req, ok := ecs.Get(f.w, f.player, component.CameraShakeRequestComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 2, req.Count)

	NewCameraShakeSystem(shake, testStep.Seconds()).Update(f.w)

	assert.Equal(t, 60, f.health().Current)
	assert.Len(t, f.cues(), 2)
	assert.Equal(t, 2, shake.pulses)
	assert.False(t, ecs.Has(f.w, f.player, component.CameraShakeRequestComponent.Kind()))
}

func TestDamageAcceptsEitherContactOrder(t *testing.T) {
	f := newFixture(t, 3, 100)
	src := f.source(component.SourceHazard)
	f.w.Contacts().Push(ecs.ContactEvent{Entity: src, Other: f.player, Kind: ecs.ContactTrigger})

	NewDamageSystem(DamageConfig{}).Update(f.w)
	assert.Equal(t, 70, f.health().Current)
}

func TestDamageIgnoresContactsWithoutPlayer(t *testing.T) {
	f := newFixture(t, 3, 100)
	a, b := f.source(component.SourceEnemy), f.source(component.SourceHazard)
	f.w.Contacts().Push(ecs.ContactEvent{Entity: a, Other: b, Kind: ecs.ContactCollision})

	NewDamageSystem(DamageConfig{}).Update(f.w)
	assert.Equal(t, 100, f.health().Current)
	assert.Empty(t, f.cues())
	assert.Equal(t, 0, f.w.Contacts().Len())
}

func TestDamageWithoutCooldownHitsEveryContact(t *testing.T) {
	f := newFixture(t, 3, 100)
	enemy := f.source(component.SourceEnemy)
	damage := NewDamageSystem(DamageConfig{})

	for i := 0; i < 3; i++ {
		f.w.Contacts().Push(ecs.ContactEvent{Entity: f.player, Other: enemy, Kind: ecs.ContactCollision})
		damage.Update(f.w)
	}
	assert.Equal(t, 40, f.health().Current)
	assert.False(t, ecs.Has(f.w, f.player, component.InvulnerableComponent.Kind()))
}

func TestDamageCooldownGrantsInvulnerability(t *testing.T) {
	f := newFixture(t, 3, 100)
	enemy := f.source(component.SourceEnemy)
	inv := NewInvulnerabilitySystem()
	damage := NewDamageSystem(DamageConfig{HitCooldownFrames: 2})

	tick := func() {
		f.w.Contacts().Push(ecs.ContactEvent{Entity: f.player, Other: enemy, Kind: ecs.ContactCollision})
		inv.Update(f.w)
		damage.Update(f.w)
	}

	tick()
	assert.Equal(t, 80, f.health().Current)
	tick() // Frames 2 -> 1
	tick() // Frames 1 -> 0
	assert.Equal(t, 80, f.health().Current, "contacts during the cooldown do nothing")
	tick() // cooldown removed, hit lands
	assert.Equal(t, 60, f.health().Current)
}

func TestDamageMarksProjectileSpentEvenWhenInvulnerable(t *testing.T) {
	f := newFixture(t, 3, 100)
	require.NoError(t, ecs.Add(f.w, f.player, component.InvulnerableComponent.Kind(), &component.Invulnerable{Frames: 10}))
	proj := f.source(component.SourceProjectile)
	f.w.Contacts().Push(ecs.ContactEvent{Entity: f.player, Other: proj, Kind: ecs.ContactTrigger})

	NewDamageSystem(DamageConfig{}).Update(f.w)

	assert.True(t, ecs.Has(f.w, proj, component.ProjectileSpentComponent.Kind()))
	assert.Equal(t, 100, f.health().Current)
}

func TestDamageFallThroughWorld(t *testing.T) {
	cases := []struct {
		name     string
		playsCue bool
		want     []component.CueRequest
	}{
		{"with_death_cue", true, []component.CueRequest{{Channel: component.ChannelDeathFX, Cue: component.CueDeath}}},
		{"without_death_cue", false, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t, 3, 60)
			core, logs := observer.New(zapcore.InfoLevel)
			plane := f.deathPlane()
			f.w.Contacts().Push(ecs.ContactEvent{Entity: f.player, Other: plane, Kind: ecs.ContactTrigger})

			NewDamageSystem(DamageConfig{FallPlaysDeathCue: c.playsCue, Logger: zap.New(core)}).Update(f.w)

			assert.Equal(t, 2, f.lives().Current)
			assert.Equal(t, 100, f.health().Current)
			pos := f.body().Body.Position()
			assert.Equal(t, 200.0, pos.X)
			assert.Equal(t, -100.0, pos.Y)
			if c.want == nil {
				assert.Empty(t, f.cues())
			} else {
				assert.Equal(t, c.want, f.cues())
			}
			assert.Equal(t, 1, logs.FilterMessage("fell through world").Len())
		})
	}
}

func TestDamageFallOnLastLifeRestoresHealth(t *testing.T) {
	f := newFixture(t, 1, 60)
	f.w.Contacts().Push(ecs.ContactEvent{Entity: f.player, Other: f.deathPlane(), Kind: ecs.ContactTrigger})

	NewDamageSystem(DamageConfig{FallPlaysDeathCue: true}).Update(f.w)

	assert.Zero(t, f.lives().Current)
	assert.Equal(t, 100, f.health().Current)
	assert.Empty(t, f.cues(), "no respawn and no death cue once the run is over")
}

func TestDamageLogsCarryCurrentRunID(t *testing.T) {
	f := newFixture(t, 3, 100)
	core, logs := observer.New(zapcore.DebugLevel)
	damage := NewDamageSystem(DamageConfig{Logger: zap.New(core)})
	state, _ := ecs.Get(f.w, f.run, component.RunStateComponent.Kind())

	f.w.Contacts().Push(ecs.ContactEvent{Entity: f.player, Other: f.source(component.SourceHazard), Kind: ecs.ContactTrigger})
	damage.Update(f.w)
	state.ID = "second-run"
	f.w.Contacts().Push(ecs.ContactEvent{Entity: f.player, Other: f.source(component.SourceHazard), Kind: ecs.ContactTrigger})
	damage.Update(f.w)

	hits := logs.FilterMessage("actor hit").All()
	require.Len(t, hits, 2)
	assert.Equal(t, "test-run", hits[0].ContextMap()["run_id"])
	assert.Equal(t, "second-run", hits[1].ContextMap()["run_id"])
}
