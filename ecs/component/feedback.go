package component

// Channel is a fixed audio output slot.
type Channel int

const (
	ChannelMovementFX Channel = iota
	ChannelHurtFX
	ChannelDeathFX
	ChannelMusic
)

func (c Channel) String() string {
	switch c {
	case ChannelMovementFX:
		return "movement_fx"
	case ChannelHurtFX:
		return "hurt_fx"
	case ChannelDeathFX:
		return "death_fx"
	case ChannelMusic:
		return "music"
	default:
		return "unknown"
	}
}

type Cue int

const (
	CueJump Cue = iota
	CueHurt
	CueDeath
	CueMainTheme
	CueEndTheme
)

func (c Cue) String() string {
	switch c {
	case CueJump:
		return "jump"
	case CueHurt:
		return "hurt"
	case CueDeath:
		return "death"
	case CueMainTheme:
		return "main_theme"
	case CueEndTheme:
		return "end_theme"
	default:
		return "unknown"
	}
}

// CueRequest is one (channel, cue) pair waiting for the audio system.
type CueRequest struct {
	Channel Channel
	Cue     Cue
}

// AudioCues queues cue requests raised during the fixed phase.
type AudioCues struct {
	Pending []CueRequest
}

// Push queues a cue.
func (a *AudioCues) Push(channel Channel, cue Cue) {
	if a == nil {
		return
	}
	a.Pending = append(a.Pending, CueRequest{Channel: channel, Cue: cue})
}

var AudioCuesComponent = NewComponent[AudioCues]()

// CameraShake is the running shake timer for an actor's camera. Seconds.
type CameraShake struct {
	Intensity float64
	Duration  float64
	Timer     float64
	Shaking   bool
}

var CameraShakeComponent = NewComponent[CameraShake]()

// CameraShakeRequest asks the camera shake system to (re)start the shake.
// Count is the number of hits that asked this tick; each one pulses.
type CameraShakeRequest struct {
	Count int
}

var CameraShakeRequestComponent = NewComponent[CameraShakeRequest]()

// DustTrailRequest asks for a dust puff at the actor's feet this frame.
type DustTrailRequest struct {
	X float64
	Y float64
}

var DustTrailRequestComponent = NewComponent[DustTrailRequest]()
