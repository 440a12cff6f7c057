package main

import (
	"github.com/hajimehoshi/ebiten/v2/audio"
	"go.uber.org/zap"

	"github.com/milk9111/platformer/assets"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

var allCues = []component.Cue{
	component.CueJump,
	component.CueHurt,
	component.CueDeath,
	component.CueMainTheme,
	component.CueEndTheme,
}

// cuePlayer owns one ebiten player per cue. Each channel plays at most one
// cue at a time; a new cue on a busy channel cuts the old one.
type cuePlayer struct {
	logger      *zap.Logger
	players     map[component.Cue]*audio.Player
	active      map[component.Channel]*audio.Player
	musicVolume float64
}

// newCuePlayer loads the cues named in spec.Files from dir. Missing files
// are logged and their cues stay silent.
func newCuePlayer(ctx *audio.Context, dir string, spec prefabs.AudioSpec, logger *zap.Logger) *cuePlayer {
	c := &cuePlayer{
		logger:      logger,
		players:     make(map[component.Cue]*audio.Player),
		active:      make(map[component.Channel]*audio.Player),
		musicVolume: spec.MusicVolume,
	}
	for _, cue := range allCues {
		name := spec.Files[cue.String()]
		if name == "" {
			continue
		}
		load := assets.LoadAudioPlayer
		if cue == component.CueMainTheme {
			load = assets.LoadLoopingPlayer
		}
		p, err := load(ctx, dir, name)
		if err != nil {
			logger.Warn("audio cue unavailable", zap.Stringer("cue", cue), zap.String("file", name), zap.Error(err))
			continue
		}
		c.players[cue] = p
	}
	return c
}

func (c *cuePlayer) Play(channel component.Channel, cue component.Cue) {
	p := c.players[cue]
	if p == nil {
		return
	}
	if cur := c.active[channel]; cur != nil && cur != p {
		cur.Pause()
	}

	volume := 1.0
	if channel == component.ChannelMusic {
		volume = c.musicVolume
	}
	p.SetVolume(volume)
	if err := p.Rewind(); err != nil {
		c.logger.Debug("rewind cue", zap.Stringer("cue", cue), zap.Error(err))
	}
	p.Play()
	c.active[channel] = p
}
