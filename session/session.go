// Package session assembles a playable run: world, physics space, systems
// in their scheduler phases, and the run, checkpoint and player entities.
package session

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/entity"
	"github.com/milk9111/platformer/ecs/system"
	"github.com/milk9111/platformer/logging"
	"github.com/milk9111/platformer/prefabs"
)

var ErrNilSpec = errors.New("session: missing prefab spec")

// Config carries prefab specs and host collaborators. Nil feedback
// collaborators are replaced with no-ops; Transition is optional.
type Config struct {
	Player *prefabs.PlayerSpec
	Run    *prefabs.RunSpec
	Level  *prefabs.LevelSpec

	RunID   string
	Logger  *zap.Logger
	Scripts system.ScriptLoader

	Inputs     []system.AxisSource
	Animator   system.Animator
	Cues       system.CuePlayer
	Shake      system.ShakeDriver
	Dust       system.DustEmitter
	Transition system.RunTransition
}

// Session is one assembled run.
type Session struct {
	World     *ecs.World
	Physics   *ecs.PhysicsWorld
	Scheduler *ecs.Scheduler
	Pool      *system.ProjectilePool

	Run        ecs.Entity
	Checkpoint ecs.Entity
	Player     ecs.Entity

	patrol *system.PatrolSystem

	// Systems log through baseLogger and tag lines with the run id held in
	// RunState; logger is the session's own run-tagged logger.
	baseLogger *zap.Logger
	logger     *zap.Logger
	runID      string
	ended      bool
	transition system.RunTransition
}

// New builds the world and registers systems in their fixed and frame
// order.
func New(cfg Config) (*Session, error) {
	if cfg.Player == nil || cfg.Run == nil || cfg.Level == nil {
		return nil, ErrNilSpec
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Scripts == nil {
		cfg.Scripts = prefabs.LoadScript
	}

	step := time.Second / 60
	if cfg.Run.TickRate > 0 {
		step = time.Second / time.Duration(cfg.Run.TickRate)
	}

	s := &Session{
		World:      ecs.NewWorld(),
		Physics:    ecs.NewPhysicsWorld(cfg.Run.Gravity, step),
		Scheduler:  ecs.NewScheduler(step),
		baseLogger: cfg.Logger,
		logger:     logging.ForRun(cfg.Logger, cfg.RunID),
		runID:      cfg.RunID,
		transition: cfg.Transition,
	}
	s.Pool = system.NewProjectilePool(s.World)

	if err := s.buildEntities(cfg); err != nil {
		return nil, err
	}
	if err := s.buildSystems(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) buildEntities(cfg Config) error {
	var err error
	if s.Run, err = entity.BuildRun(s.World, cfg.Run, cfg.RunID); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	if s.Checkpoint, err = entity.BuildCheckpoint(s.World, cfg.Level.Checkpoint.X, cfg.Level.Checkpoint.Y); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	if err := entity.BuildLevel(s.World, cfg.Level); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	s.Player, err = entity.BuildPlayer(s.World, entity.PlayerConfig{
		Spec:       cfg.Player,
		Run:        s.Run,
		Checkpoint: s.Checkpoint,
		Shake:      cfg.Run.Shake,
		X:          cfg.Level.Spawn.X,
		Y:          cfg.Level.Spawn.Y,
	})
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	return nil
}

func (s *Session) buildSystems(cfg Config) error {
	runState, err := system.NewRunStateSystem(system.RunStateConfig{
		Transition:  transitionFunc(s.endRun),
		Projectiles: s.Pool,
		Logger:      s.baseLogger,
	})
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}

	cues := cfg.Cues
	if cues == nil {
		cues = nopCues{}
	}

	s.patrol = system.NewPatrolSystem(cfg.Scripts, s.baseLogger)

	s.Scheduler.AddFixed(
		system.NewInputSystem(cfg.Inputs...),
		s.patrol,
		system.NewGroundSensorSystem(s.Physics),
		system.NewMovementSystem(s.Physics),
		system.NewPhysicsSystem(s.Physics),
		system.NewInvulnerabilitySystem(),
		system.NewDamageSystem(system.DamageConfig{
			HitCooldownFrames: cfg.Run.HitCooldownFrames,
			FallPlaysDeathCue: cfg.Run.PlaysDeathCueOnFall(),
			Logger:            s.baseLogger,
		}),
		system.NewCameraShakeSystem(cfg.Shake, s.Physics.StepSeconds()),
		system.NewProjectileSystem(s.Pool),
	)
	s.Scheduler.AddFrame(
		runState,
		system.NewAnimationSystem(cfg.Animator),
		system.NewAudioSystem(cues),
		system.NewDustTrailSystem(cfg.Dust),
	)
	return nil
}

// Advance runs the fixed steps due for elapsed and then one frame.
func (s *Session) Advance(elapsed time.Duration) int {
	return s.Scheduler.Advance(s.World, elapsed)
}

// Tick runs exactly one fixed step followed by one frame.
func (s *Session) Tick() {
	s.Scheduler.Advance(s.World, s.Scheduler.Step())
}

// Start queues the main theme on the music channel.
func (s *Session) Start() {
	s.queueCue(component.ChannelMusic, component.CueMainTheme)
	s.logger.Info("run started")
}

// Restart resets lives, health and position for a new run id.
func (s *Session) Restart(runID string) error {
	if err := entity.ResetRun(s.World, s.Run, s.Player, runID); err != nil {
		return fmt.Errorf("session: restart: %w", err)
	}
	s.runID = runID
	s.logger = logging.ForRun(s.baseLogger, runID)
	s.ended = false
	s.Start()
	return nil
}

// ApplyMovement swaps in new movement tuning, e.g. after a prefab edit.
func (s *Session) ApplyMovement(spec prefabs.MovementSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	n := entity.ApplyMovementSpec(s.World, spec)
	s.logger.Info("movement tuning reloaded", zap.Int("actors", n))
	return nil
}

// ReloadScript makes enemies using the named patrol script load it again.
func (s *Session) ReloadScript(name string) {
	n := s.patrol.Invalidate(name)
	s.logger.Info("patrol script reloaded", zap.String("script", name), zap.Int("compiled", n))
}

func (s *Session) Ended() bool {
	return s.ended
}

func (s *Session) RunID() string {
	return s.runID
}

func (s *Session) endRun() {
	s.ended = true
	if s.transition != nil {
		s.transition.EndRun()
	}
}

func (s *Session) queueCue(ch component.Channel, cue component.Cue) {
	if cues, ok := ecs.Get(s.World, s.Player, component.AudioCuesComponent.Kind()); ok {
		cues.Push(ch, cue)
	}
}

// Status is a read-only view of the run for HUDs and logs.
type Status struct {
	Health    int
	MaxHealth int
	Lives     int
	MaxLives  int
	Deaths    int
	Ended     bool
	X, Y      float64
	Grounded  bool
	State     component.AnimationState
	Facing    float64
}

func (s *Session) Status() Status {
	var st Status
	w := s.World
	if h, ok := ecs.Get(w, s.Player, component.HealthComponent.Kind()); ok {
		st.Health, st.MaxHealth = h.Current, h.Max
	}
	if l, ok := ecs.Get(w, s.Run, component.LivesComponent.Kind()); ok {
		st.Lives, st.MaxLives = l.Current, l.Max
	}
	if rs, ok := ecs.Get(w, s.Run, component.RunStateComponent.Kind()); ok {
		st.Deaths, st.Ended = rs.Deaths, rs.Ended
	}
	if t, ok := ecs.Get(w, s.Player, component.TransformComponent.Kind()); ok {
		st.X, st.Y = t.X, t.Y
	}
	if g, ok := ecs.Get(w, s.Player, component.GroundSensorComponent.Kind()); ok {
		st.Grounded = g.Grounded
	}
	if a, ok := ecs.Get(w, s.Player, component.AnimationComponent.Kind()); ok {
		st.State = a.State
	}
	if f, ok := ecs.Get(w, s.Player, component.FacingComponent.Kind()); ok {
		st.Facing = f.Sign
	}
	return st
}

type transitionFunc func()

func (f transitionFunc) EndRun() { f() }

type nopCues struct{}

func (nopCues) Play(component.Channel, component.Cue) {}
