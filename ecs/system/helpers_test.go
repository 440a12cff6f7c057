package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

const testStep = time.Second / 60

type fixture struct {
	t       *testing.T
	w       *ecs.World
	pw      *ecs.PhysicsWorld
	physics *PhysicsSystem

	run        ecs.Entity
	checkpoint ecs.Entity
	player     ecs.Entity
}

// newFixture builds a gravity-free world with a run, a checkpoint at
// (200, -100) and a player at the origin whose body already exists.
func newFixture(t *testing.T, lives, health int) *fixture {
	t.Helper()
	return newFixtureWithGravity(t, lives, health, 0)
}

func newFixtureWithGravity(t *testing.T, lives, health int, gravity float64) *fixture {
	t.Helper()
	f := &fixture{t: t, w: ecs.NewWorld(), pw: ecs.NewPhysicsWorld(gravity, testStep)}
	f.physics = NewPhysicsSystem(f.pw)

	f.run = f.w.CreateEntity()
	f.add(f.run, ecs.Add(f.w, f.run, component.LivesComponent.Kind(), &component.Lives{Current: lives, Max: 3}))
	f.add(f.run, ecs.Add(f.w, f.run, component.RunStateComponent.Kind(), &component.RunState{ID: "test-run"}))

	f.checkpoint = f.w.CreateEntity()
	f.add(f.checkpoint, ecs.Add(f.w, f.checkpoint, component.CheckpointComponent.Kind(), &component.Checkpoint{X: 200, Y: -100}))

	p := f.w.CreateEntity()
	f.player = p
	f.add(p, ecs.Add(f.w, p, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	f.add(p, ecs.Add(f.w, p, component.TransformComponent.Kind(), &component.Transform{}))
	f.add(p, ecs.Add(f.w, p, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: 20, Height: 20, Mass: 1, FixedRotation: true}))
	f.add(p, ecs.Add(f.w, p, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
		Category: component.LayerPlayer,
		Mask:     component.LayerGround | component.LayerEnemy | component.LayerHazard | component.LayerProjectile | component.LayerDeathPlane,
	}))
	f.add(p, ecs.Add(f.w, p, component.HealthComponent.Kind(), &component.Health{Current: health, Max: 100}))
	f.add(p, ecs.Add(f.w, p, component.MovementComponent.Kind(), &component.Movement{
		HorizontalForce:   600,
		HorizontalSpeed:   200,
		VerticalForce:     300,
		AirFactor:         0.5,
		VerticalThreshold: 0.5,
	}))
	f.add(p, ecs.Add(f.w, p, component.GroundSensorComponent.Kind(), &component.GroundSensor{OffsetY: 12, Radius: 4, Mask: component.LayerGround}))
	f.add(p, ecs.Add(f.w, p, component.InputComponent.Kind(), &component.Input{}))
	f.add(p, ecs.Add(f.w, p, component.FacingComponent.Kind(), &component.Facing{Sign: 1}))
	f.add(p, ecs.Add(f.w, p, component.AnimationComponent.Kind(), &component.Animation{}))
	f.add(p, ecs.Add(f.w, p, component.AudioCuesComponent.Kind(), &component.AudioCues{}))
	f.add(p, ecs.Add(f.w, p, component.CameraShakeComponent.Kind(), &component.CameraShake{Intensity: 4, Duration: 0.25}))
	f.add(p, ecs.Add(f.w, p, component.ActorLinksComponent.Kind(), &component.ActorLinks{Run: uint64(f.run), Checkpoint: uint64(f.checkpoint)}))

	f.physics.Update(f.w)
	require.NotNil(t, f.body().Body, "physics system should create the player body")
	return f
}

func (f *fixture) add(_ ecs.Entity, err error) {
	f.t.Helper()
	require.NoError(f.t, err)
}

func (f *fixture) body() *component.PhysicsBody {
	b, ok := ecs.Get(f.w, f.player, component.PhysicsBodyComponent.Kind())
	require.True(f.t, ok)
	return b
}

func (f *fixture) health() *component.Health {
	h, ok := ecs.Get(f.w, f.player, component.HealthComponent.Kind())
	require.True(f.t, ok)
	return h
}

func (f *fixture) lives() *component.Lives {
	l, ok := ecs.Get(f.w, f.run, component.LivesComponent.Kind())
	require.True(f.t, ok)
	return l
}

func (f *fixture) sensor() *component.GroundSensor {
	s, ok := ecs.Get(f.w, f.player, component.GroundSensorComponent.Kind())
	require.True(f.t, ok)
	return s
}

func (f *fixture) input() *component.Input {
	in, ok := ecs.Get(f.w, f.player, component.InputComponent.Kind())
	require.True(f.t, ok)
	return in
}

func (f *fixture) anim() component.AnimationState {
	a, ok := ecs.Get(f.w, f.player, component.AnimationComponent.Kind())
	require.True(f.t, ok)
	return a.State
}

func (f *fixture) cues() []component.CueRequest {
	c, ok := ecs.Get(f.w, f.player, component.AudioCuesComponent.Kind())
	require.True(f.t, ok)
	return c.Pending
}

func (f *fixture) transform() *component.Transform {
	tr, ok := ecs.Get(f.w, f.player, component.TransformComponent.Kind())
	require.True(f.t, ok)
	return tr
}

// source creates a static entity tagged as a damage source of kind.
func (f *fixture) source(kind component.SourceKind) ecs.Entity {
	e := f.w.CreateEntity()
	f.add(e, ecs.Add(f.w, e, component.DamageSourceComponent.Kind(), &component.DamageSource{Kind: kind}))
	return e
}

func (f *fixture) deathPlane() ecs.Entity {
	e := f.w.CreateEntity()
	f.add(e, ecs.Add(f.w, e, component.DeathPlaneTagComponent.Kind(), &component.DeathPlaneTag{}))
	return e
}

type recordingCues struct {
	played []component.CueRequest
}

func (r *recordingCues) Play(ch component.Channel, cue component.Cue) {
	r.played = append(r.played, component.CueRequest{Channel: ch, Cue: cue})
}

type recordingShake struct {
	pulses  int
	settles int
	last    [2]float64
}

func (r *recordingShake) Pulse(intensity, duration float64) {
	r.pulses++
	r.last = [2]float64{intensity, duration}
}

func (r *recordingShake) Settle() {
	r.settles++
}

// orderLog records collaborator calls in order across fakes.
type orderLog struct {
	calls []string
}

type recordingTransition struct {
	log   *orderLog
	count int
}

func (r *recordingTransition) EndRun() {
	r.count++
	r.log.calls = append(r.log.calls, "end_run")
}

type recordingTeardown struct {
	log   *orderLog
	count int
}

func (r *recordingTeardown) Teardown() {
	r.count++
	r.log.calls = append(r.log.calls, "teardown")
}

type recordingAnimator struct {
	states []int
}

func (r *recordingAnimator) SetState(state int) {
	r.states = append(r.states, state)
}

type recordingDust struct {
	puffs [][2]float64
}

func (r *recordingDust) Play(x, y float64) {
	r.puffs = append(r.puffs, [2]float64{x, y})
}

type fixedAxes struct {
	h, v float64
}

func (f fixedAxes) Axes() (float64, float64) {
	return f.h, f.v
}
