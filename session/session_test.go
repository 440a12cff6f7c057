package session

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

type recordingCues struct {
	played []component.CueRequest
}

func (r *recordingCues) Play(ch component.Channel, cue component.Cue) {
	r.played = append(r.played, component.CueRequest{Channel: ch, Cue: cue})
}

type countingTransition struct {
	count int
	onEnd func()
}

func (c *countingTransition) EndRun() {
	c.count++
	if c.onEnd != nil {
		c.onEnd()
	}
}

func newTestSession(t *testing.T) (*Session, *recordingCues, *countingTransition) {
	t.Helper()
	return newTestSessionWithLogger(t, nil)
}

func newTestSessionWithLogger(t *testing.T, logger *zap.Logger) (*Session, *recordingCues, *countingTransition) {
	t.Helper()
	player, err := prefabs.LoadPlayerSpec()
	require.NoError(t, err)
	run, err := prefabs.LoadRunSpec()
	require.NoError(t, err)
	level, err := prefabs.LoadLevelSpec("")
	require.NoError(t, err)

	cues := &recordingCues{}
	transition := &countingTransition{}
	s, err := New(Config{
		Player:     player,
		Run:        run,
		Level:      level,
		RunID:      "run-1",
		Logger:     logger,
		Cues:       cues,
		Transition: transition,
	})
	require.NoError(t, err)
	return s, cues, transition
}

func (s *Session) teleport(t *testing.T, x, y float64) {
	t.Helper()
	body, ok := ecs.Get(s.World, s.Player, component.PhysicsBodyComponent.Kind())
	require.True(t, ok)
	require.NotNil(t, body.Body)
	body.Body.SetPosition(cp.Vector{X: x, Y: y})
}

func TestNewRequiresSpecs(t *testing.T) {
	_, err := New(Config{})
	assert.ErrorIs(t, err, ErrNilSpec)
}

func TestPlayerSettlesOnGround(t *testing.T) {
	s, _, _ := newTestSession(t)

	for i := 0; i < 60; i++ {
		s.Tick()
	}

	st := s.Status()
	assert.True(t, st.Grounded)
	assert.Equal(t, component.AnimIdle, st.State)
	assert.InDelta(t, 444, st.Y, 1, "resting on the ground top at y=460")
	assert.Equal(t, 100, st.Health)
	assert.Equal(t, 3, st.Lives)
}

func TestStartPlaysMainTheme(t *testing.T) {
	s, cues, _ := newTestSession(t)

	s.Start()
	s.Tick()

	require.NotEmpty(t, cues.played)
	assert.Equal(t, component.CueRequest{Channel: component.ChannelMusic, Cue: component.CueMainTheme}, cues.played[0])
}

func TestFallingOutOfTheWorldRespawns(t *testing.T) {
	s, cues, transition := newTestSession(t)
	s.Tick()

	s.teleport(t, 96, 640)
	s.Tick()

	st := s.Status()
	assert.Equal(t, 2, st.Lives)
	assert.Equal(t, 1, st.Deaths)
	assert.Equal(t, 96.0, st.X)
	assert.Equal(t, 420.0, st.Y)
	assert.Contains(t, cues.played, component.CueRequest{Channel: component.ChannelDeathFX, Cue: component.CueDeath})
	assert.Zero(t, transition.count)
	assert.False(t, s.Ended())
}

func TestLastLifeEndsRunAndRestarts(t *testing.T) {
	s, _, transition := newTestSession(t)
	lives, _ := ecs.Get(s.World, s.Run, component.LivesComponent.Kind())
	lives.Current = 1
	health, _ := ecs.Get(s.World, s.Player, component.HealthComponent.Kind())
	health.TakeDamage(health.Max)

	s.Tick()
	s.Tick()

	assert.True(t, s.Ended())
	assert.Equal(t, 1, transition.count)
	st := s.Status()
	assert.True(t, st.Ended)
	assert.Zero(t, st.Lives)

	require.NoError(t, s.Restart("run-2"))

	assert.False(t, s.Ended())
	assert.Equal(t, "run-2", s.RunID())
	st = s.Status()
	assert.False(t, st.Ended)
	assert.Equal(t, 3, st.Lives)
	assert.Equal(t, 100, st.Health)
	assert.Equal(t, 96.0, st.X)
	assert.Equal(t, 420.0, st.Y)
}

func TestApplyMovement(t *testing.T) {
	s, _, _ := newTestSession(t)

	err := s.ApplyMovement(prefabs.MovementSpec{AirFactor: 2, VerticalThreshold: 0.5})
	assert.ErrorIs(t, err, prefabs.ErrInvalidSpec)

	require.NoError(t, s.ApplyMovement(prefabs.MovementSpec{HorizontalSpeed: 50, AirFactor: 0.25, VerticalThreshold: 0.5}))
	movement, _ := ecs.Get(s.World, s.Player, component.MovementComponent.Kind())
	assert.Equal(t, 50.0, movement.HorizontalSpeed)
	assert.Equal(t, 0.25, movement.AirFactor)
}

// Top-left (700, 444), 48x16 in level.yaml.
const hazardX, hazardY = 724.0, 430.0

func TestLethalHazardRespawnsWithinOneFrame(t *testing.T) {
	s, _, transition := newTestSession(t)
	health, _ := ecs.Get(s.World, s.Player, component.HealthComponent.Kind())
	health.Current = 30
	s.teleport(t, hazardX, hazardY)

	steps := s.Advance(s.Scheduler.Step())

	require.Equal(t, 1, steps)
	st := s.Status()
	assert.Equal(t, 2, st.Lives)
	assert.Equal(t, 100, st.Health)
	assert.Equal(t, 1, st.Deaths)
	assert.Equal(t, 96.0, st.X)
	assert.Equal(t, 420.0, st.Y)
	assert.Zero(t, transition.count)
}

func TestLethalHazardOnLastLifeEndsRunWithinOneFrame(t *testing.T) {
	s, _, transition := newTestSession(t)
	lives, _ := ecs.Get(s.World, s.Run, component.LivesComponent.Kind())
	lives.Current = 1
	health, _ := ecs.Get(s.World, s.Player, component.HealthComponent.Kind())
	health.Current = 30

	projectile := s.Pool.Acquire(300, 100, 0, 4, 1000)
	var projectileAliveAtEnd bool
	transition.onEnd = func() {
		projectileAliveAtEnd = s.World.IsAlive(projectile)
	}
	s.teleport(t, hazardX, hazardY)

	s.Advance(s.Scheduler.Step())

	assert.True(t, s.Ended())
	assert.Equal(t, 1, transition.count)
	assert.False(t, projectileAliveAtEnd, "projectiles are torn down before the run ends")
	assert.Zero(t, s.Pool.Live())
	assert.Zero(t, s.Status().Lives)

	s.Advance(s.Scheduler.Step())
	assert.Equal(t, 1, transition.count)
}

func TestLogsFollowRestartedRunID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s, _, _ := newTestSessionWithLogger(t, zap.New(core))

	lives, _ := ecs.Get(s.World, s.Run, component.LivesComponent.Kind())
	lives.Current = 1
	health, _ := ecs.Get(s.World, s.Player, component.HealthComponent.Kind())
	health.TakeDamage(health.Max)
	s.Tick()
	require.True(t, s.Ended())

	require.NoError(t, s.Restart("run-2"))
	logs.TakeAll()
	health.TakeDamage(health.Max)
	s.Tick()

	died := logs.FilterMessage("actor died").All()
	require.Len(t, died, 1)
	assert.Equal(t, "run-2", died[0].ContextMap()["run_id"])
	for _, entry := range logs.All() {
		if id, ok := entry.ContextMap()["run_id"]; ok {
			assert.Equal(t, "run-2", id, entry.Message)
		}
	}
}
