package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

func testPlayerSpec() *prefabs.PlayerSpec {
	return &prefabs.PlayerSpec{
		Name:   "player",
		Health: 50,
		Movement: prefabs.MovementSpec{
			HorizontalForce:   100,
			HorizontalSpeed:   10,
			VerticalForce:     20,
			AirFactor:         0.5,
			VerticalThreshold: 0.5,
		},
		Collider:    prefabs.ColliderSpec{Width: 10, Height: 20, Mass: 1},
		GroundProbe: prefabs.GroundProbeSpec{OffsetY: 11, Radius: 2},
	}
}

func buildRunAndCheckpoint(t *testing.T, w *ecs.World) (run, checkpoint ecs.Entity) {
	t.Helper()
	run, err := BuildRun(w, &prefabs.RunSpec{Lives: 3}, "run-1")
	require.NoError(t, err)
	checkpoint, err = BuildCheckpoint(w, 40, 60)
	require.NoError(t, err)
	return run, checkpoint
}

func TestBuildPlayer(t *testing.T) {
	w := ecs.NewWorld()
	run, checkpoint := buildRunAndCheckpoint(t, w)

	player, err := BuildPlayer(w, PlayerConfig{
		Spec:       testPlayerSpec(),
		Run:        run,
		Checkpoint: checkpoint,
		Shake:      prefabs.ShakeSpec{Intensity: 3, Duration: 0.2},
		X:          5,
		Y:          6,
	})
	require.NoError(t, err)

	health, ok := ecs.Get(w, player, component.HealthComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, component.Health{Current: 50, Max: 50}, *health)

	links, ok := ecs.Get(w, player, component.ActorLinksComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, uint64(run), links.Run)
	assert.Equal(t, uint64(checkpoint), links.Checkpoint)

	movement, _ := ecs.Get(w, player, component.MovementComponent.Kind())
	assert.Equal(t, 0.5, movement.AirFactor)

	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	assert.Equal(t, 5.0, tr.X)
	assert.Equal(t, 6.0, tr.Y)
	assert.True(t, ecs.Has(w, player, component.PlayerTagComponent.Kind()))
}

func TestBuildPlayerRequiresCollaborators(t *testing.T) {
	w := ecs.NewWorld()
	run, checkpoint := buildRunAndCheckpoint(t, w)
	stray := ecs.CreateEntity(w)

	tests := []struct {
		name string
		cfg  PlayerConfig
		want error
	}{
		{name: "nil spec", cfg: PlayerConfig{Run: run, Checkpoint: checkpoint}, want: ErrNilSpec},
		{name: "no checkpoint", cfg: PlayerConfig{Spec: testPlayerSpec(), Run: run, Checkpoint: stray}, want: ErrNoCheckpoint},
		{name: "no run", cfg: PlayerConfig{Spec: testPlayerSpec(), Run: stray, Checkpoint: checkpoint}, want: ErrNoRunEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildPlayer(w, tt.cfg)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBuildRun(t *testing.T) {
	w := ecs.NewWorld()
	_, err := BuildRun(w, nil, "x")
	assert.ErrorIs(t, err, ErrNilSpec)

	run, err := BuildRun(w, &prefabs.RunSpec{Lives: 2}, "abc")
	require.NoError(t, err)
	lives, _ := ecs.Get(w, run, component.LivesComponent.Kind())
	assert.Equal(t, component.Lives{Current: 2, Max: 2}, *lives)
	state, _ := ecs.Get(w, run, component.RunStateComponent.Kind())
	assert.Equal(t, "abc", state.ID)
}

func TestResetRun(t *testing.T) {
	w := ecs.NewWorld()
	run, checkpoint := buildRunAndCheckpoint(t, w)
	player, err := BuildPlayer(w, PlayerConfig{Spec: testPlayerSpec(), Run: run, Checkpoint: checkpoint, X: 500, Y: 500})
	require.NoError(t, err)

	lives, _ := ecs.Get(w, run, component.LivesComponent.Kind())
	lives.LoseLife()
	lives.LoseLife()
	lives.LoseLife()
	state, _ := ecs.Get(w, run, component.RunStateComponent.Kind())
	state.Ended = true
	health, _ := ecs.Get(w, player, component.HealthComponent.Kind())
	health.TakeDamage(50)
	require.NoError(t, ecs.Add(w, player, component.InvulnerableComponent.Kind(), &component.Invulnerable{Frames: 5}))

	require.NoError(t, ResetRun(w, run, player, "run-2"))

	assert.Equal(t, 3, lives.Current)
	assert.Equal(t, 50, health.Current)
	assert.False(t, state.Ended)
	assert.Equal(t, "run-2", state.ID)
	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	assert.Equal(t, 40.0, tr.X)
	assert.Equal(t, 60.0, tr.Y)
	assert.False(t, ecs.Has(w, player, component.InvulnerableComponent.Kind()))

	assert.ErrorIs(t, ResetRun(w, player, player, "run-3"), ErrNoRunEntity)
}

func TestApplyMovementSpec(t *testing.T) {
	w := ecs.NewWorld()
	run, checkpoint := buildRunAndCheckpoint(t, w)
	player, err := BuildPlayer(w, PlayerConfig{Spec: testPlayerSpec(), Run: run, Checkpoint: checkpoint})
	require.NoError(t, err)

	n := ApplyMovementSpec(w, prefabs.MovementSpec{HorizontalSpeed: 99, AirFactor: 1, VerticalThreshold: 1})

	assert.Equal(t, 1, n)
	movement, _ := ecs.Get(w, player, component.MovementComponent.Kind())
	assert.Equal(t, 99.0, movement.HorizontalSpeed)
	assert.Equal(t, 1.0, movement.AirFactor)
}

func TestBuildLevel(t *testing.T) {
	w := ecs.NewWorld()
	spec := &prefabs.LevelSpec{
		Name:       "test",
		Width:      200,
		Height:     100,
		Ground:     []prefabs.BlockSpec{{X: 0, Y: 80, Width: 100, Height: 20}, {X: 120, Y: 80, Width: 80, Height: 20}},
		Hazards:    []prefabs.BlockSpec{{X: 100, Y: 90, Width: 20, Height: 10}},
		Enemies:    []prefabs.EnemySpec{{X: 50, Y: 70, Width: 10, Height: 10, Script: "patrol.tengo", Range: 20, Speed: 10}},
		Turrets:    []prefabs.TurretSpec{{X: 190, Y: 60, Interval: 30, Speed: 50, TTL: 60, Radius: 3}},
		DeathPlane: prefabs.BlockSpec{X: -50, Y: 150, Width: 300, Height: 10},
	}

	require.NoError(t, BuildLevel(w, spec))

	assert.Len(t, w.Query(component.GroundTagComponent.Kind()), 2)
	assert.Len(t, w.Query(component.DamageSourceComponent.Kind()), 2, "one hazard and one enemy")
	assert.Len(t, w.Query(component.PatrolComponent.Kind()), 1)

	ground := w.Query(component.GroundTagComponent.Kind())[0]
	tr, _ := ecs.Get(w, ground, component.TransformComponent.Kind())
	assert.Equal(t, 50.0, tr.X, "blocks are centred from their top-left corner")
	assert.Equal(t, 90.0, tr.Y)

	plane, _, ok := ecs.First(w, component.DeathPlaneTagComponent.Kind())
	require.True(t, ok)
	body, _ := ecs.Get(w, plane, component.PhysicsBodyComponent.Kind())
	assert.True(t, body.Sensor)
	assert.True(t, body.Static)

	_, turret, ok := ecs.First(w, component.TurretComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, -1.0, turret.DirX, "turrets fire left by default")
	assert.Equal(t, 30, turret.Cooldown)

	assert.ErrorIs(t, BuildLevel(w, nil), ErrNilSpec)
}
