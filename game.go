package main

import (
	"path/filepath"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"go.uber.org/zap"

	"github.com/milk9111/platformer/assets"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/system"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/session"
)

type Options struct {
	Level    string
	Debug    bool
	Watch    bool
	AudioDir string
	Logger   *zap.Logger
}

type Game struct {
	logger  *zap.Logger
	debug   bool
	session *session.Session

	cues  *cuePlayer
	shake *shaker
	dust  *dustTrail
	anim  *animatorState

	ended bool
	quit  bool
	endUI *ebitenui.UI

	watcher *prefabs.Watcher
}

func NewGame(opts Options) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}
	runSpec, err := prefabs.LoadRunSpec()
	if err != nil {
		return nil, err
	}
	levelSpec, err := prefabs.LoadLevelSpec(opts.Level)
	if err != nil {
		return nil, err
	}

	audioDir := runSpec.Audio.Dir
	if opts.AudioDir != "" {
		audioDir = opts.AudioDir
	}

	g := &Game{
		logger: logger,
		debug:  opts.Debug,
		shake:  &shaker{},
		dust:   &dustTrail{},
		anim:   &animatorState{},
	}
	g.cues = newCuePlayer(audio.NewContext(assets.SampleRate), audioDir, runSpec.Audio, logger)

	if runSpec.TickRate > 0 {
		ebiten.SetTPS(runSpec.TickRate)
	}

	g.session, err = session.New(session.Config{
		Player:     playerSpec,
		Run:        runSpec,
		Level:      levelSpec,
		RunID:      uuid.NewString(),
		Logger:     logger,
		Inputs:     []system.AxisSource{keyboardAxes{}, gamepadAxes{deadzone: 0.2}},
		Animator:   g.anim,
		Cues:       g.cues,
		Shake:      g.shake,
		Dust:       g.dust,
		Transition: g,
	})
	if err != nil {
		return nil, err
	}

	if opts.Watch {
		w, err := prefabs.NewWatcher(filepath.Join(".", "prefabs"), filepath.Join(".", "prefabs", "scripts"))
		if err != nil {
			logger.Warn("prefab watcher disabled", zap.Error(err))
		} else {
			g.watcher = w
		}
	}

	g.session.Start()
	return g, nil
}

// EndRun switches to the end screen. The run-state system calls it once
// per run.
func (g *Game) EndRun() {
	g.ended = true
	g.shake.Settle()
	g.cues.Play(component.ChannelMusic, component.CueEndTheme)
	g.endUI = NewEndUI(g, g.session.Status())
}

func (g *Game) restart() {
	if err := g.session.Restart(uuid.NewString()); err != nil {
		g.logger.Error("restart run", zap.Error(err))
		return
	}
	g.ended = false
	g.endUI = nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.reloadPrefabs()

	if g.ended {
		if g.endUI != nil {
			g.endUI.Update()
		}
		return nil
	}

	frame := time.Second / time.Duration(ebiten.TPS())
	g.session.Advance(frame)
	g.shake.Update(frame.Seconds())
	g.dust.Update()
	return nil
}

func (g *Game) reloadPrefabs() {
	if g.watcher == nil {
		return
	}
	open := g.watcher.Drain(g.prefabChanged, func(err error) {
		g.logger.Warn("prefab watcher", zap.Error(err))
	})
	if !open {
		g.watcher = nil
	}
}

func (g *Game) prefabChanged(name string) {
	switch {
	case name == "player.yaml":
		spec, err := prefabs.LoadPlayerSpec()
		if err == nil {
			err = g.session.ApplyMovement(spec.Movement)
		}
		if err != nil {
			g.logger.Warn("reload player prefab", zap.Error(err))
		}
	case filepath.Ext(name) == ".tengo":
		g.session.ReloadScript(name)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawWorld(screen, g.session, g.shake.Offset(), g.anim.state)
	g.dust.Draw(screen, g.shake.Offset())
	drawHUD(screen, g.session.Status(), g.debug)

	if g.ended && g.endUI != nil {
		g.endUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
