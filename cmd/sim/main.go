// Command sim runs the platformer systems headless with scripted input and
// logs how the run went.
package main

import (
	"flag"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/milk9111/platformer/ecs/system"
	"github.com/milk9111/platformer/logging"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/session"
)

// scriptedInput holds a direction and taps jump every jumpEvery ticks.
type scriptedInput struct {
	dir       float64
	jumpEvery int
	tick      int
}

func (s *scriptedInput) Axes() (float64, float64) {
	s.tick++
	if s.jumpEvery > 0 && s.tick%s.jumpEvery == 0 {
		return s.dir, 1
	}
	return s.dir, 0
}

type endLogger struct {
	logger *zap.Logger
}

func (e endLogger) EndRun() {
	e.logger.Info("run ended")
}

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	levelName := flag.String("level", "level.yaml", "level prefab in prefabs/")
	ticks := flag.Int("ticks", 1200, "fixed ticks to simulate")
	dir := flag.Float64("dir", 1, "horizontal input held for the whole run (-1..1)")
	jumpEvery := flag.Int("jump-every", 45, "press jump every N ticks (0 disables)")
	flag.Parse()

	logger, err := logging.New(*debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if code := run(logger, *levelName, *ticks, *dir, *jumpEvery); code != 0 {
		os.Exit(code)
	}
}

func run(logger *zap.Logger, levelName string, ticks int, dir float64, jumpEvery int) int {
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		logger.Error("load player prefab", zap.Error(err))
		return 1
	}
	runSpec, err := prefabs.LoadRunSpec()
	if err != nil {
		logger.Error("load run prefab", zap.Error(err))
		return 1
	}
	levelSpec, err := prefabs.LoadLevelSpec(levelName)
	if err != nil {
		logger.Error("load level prefab", zap.Error(err))
		return 1
	}

	s, err := session.New(session.Config{
		Player:     playerSpec,
		Run:        runSpec,
		Level:      levelSpec,
		RunID:      uuid.NewString(),
		Logger:     logger,
		Inputs:     []system.AxisSource{&scriptedInput{dir: dir, jumpEvery: jumpEvery}},
		Transition: endLogger{logger: logger},
	})
	if err != nil {
		logger.Error("build session", zap.Error(err))
		return 1
	}
	s.Start()

	n := 0
	for ; n < ticks && !s.Ended(); n++ {
		s.Tick()
	}

	st := s.Status()
	logger.Info("simulation finished",
		zap.String("run_id", s.RunID()),
		zap.Int("ticks", n),
		zap.Int("health", st.Health),
		zap.Int("lives", st.Lives),
		zap.Int("deaths", st.Deaths),
		zap.Bool("ended", st.Ended),
		zap.Float64("x", st.X),
		zap.Float64("y", st.Y),
		zap.Stringer("state", st.State),
	)
	return 0
}
