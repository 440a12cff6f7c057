package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// AudioSystem flushes queued cues to the cue player in the order they were
// raised.
type AudioSystem struct {
	player CuePlayer
}

func NewAudioSystem(player CuePlayer) *AudioSystem {
	return &AudioSystem{player: player}
}

func (a *AudioSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.AudioCuesComponent.Kind(), func(_ ecs.Entity, cues *component.AudioCues) {
		if a.player != nil {
			for _, req := range cues.Pending {
				a.player.Play(req.Channel, req.Cue)
			}
		}
		cues.Pending = cues.Pending[:0]
	})
}
