package prefabs

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type TransformSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type ColliderSpec struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Radius   float64 `yaml:"radius"`
	Mass     float64 `yaml:"mass"`
	Friction float64 `yaml:"friction"`
}

type MovementSpec struct {
	HorizontalForce   float64 `yaml:"horizontal_force"`
	HorizontalSpeed   float64 `yaml:"horizontal_speed"`
	VerticalForce     float64 `yaml:"vertical_force"`
	AirFactor         float64 `yaml:"air_factor"`
	VerticalThreshold float64 `yaml:"vertical_threshold"`
}

type GroundProbeSpec struct {
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	Radius  float64 `yaml:"radius"`
}

type PlayerSpec struct {
	Name        string          `yaml:"name"`
	Health      int             `yaml:"health"`
	Movement    MovementSpec    `yaml:"movement"`
	Collider    ColliderSpec    `yaml:"collider"`
	GroundProbe GroundProbeSpec `yaml:"ground_probe"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *PlayerSpec) Validate() error {
	if s.Health <= 0 {
		return fmt.Errorf("%w: player health must be positive, got %d", ErrInvalidSpec, s.Health)
	}
	if err := s.Movement.Validate(); err != nil {
		return err
	}
	if s.Collider.Radius <= 0 && (s.Collider.Width <= 0 || s.Collider.Height <= 0) {
		return fmt.Errorf("%w: player collider needs a radius or a width and height", ErrInvalidSpec)
	}
	if s.GroundProbe.Radius <= 0 {
		return fmt.Errorf("%w: ground probe radius must be positive", ErrInvalidSpec)
	}
	return nil
}

func (m MovementSpec) Validate() error {
	if m.HorizontalForce < 0 || m.HorizontalSpeed < 0 || m.VerticalForce < 0 {
		return fmt.Errorf("%w: movement forces and speed must not be negative", ErrInvalidSpec)
	}
	if m.AirFactor < 0 || m.AirFactor > 1 {
		return fmt.Errorf("%w: air_factor must be in [0,1], got %v", ErrInvalidSpec, m.AirFactor)
	}
	if m.VerticalThreshold < 0.1 || m.VerticalThreshold > 1 {
		return fmt.Errorf("%w: vertical_threshold must be in [0.1,1], got %v", ErrInvalidSpec, m.VerticalThreshold)
	}
	return nil
}

type ShakeSpec struct {
	Intensity float64 `yaml:"intensity"`
	Duration  float64 `yaml:"duration"`
}

type AudioSpec struct {
	Dir         string            `yaml:"dir"`
	MusicVolume float64           `yaml:"music_volume"`
	Files       map[string]string `yaml:"files"`
}

type RunSpec struct {
	Lives             int       `yaml:"lives"`
	HitCooldownFrames int       `yaml:"hit_cooldown_frames"`
	FallPlaysDeathCue *bool     `yaml:"fall_plays_death_cue"`
	Gravity           float64   `yaml:"gravity"`
	TickRate          int       `yaml:"tick_rate"`
	Shake             ShakeSpec `yaml:"shake"`
	Audio             AudioSpec `yaml:"audio"`
}

func LoadRunSpec() (*RunSpec, error) {
	spec, err := LoadSpec[RunSpec]("run.yaml")
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// PlaysDeathCueOnFall reports whether a fall-through death plays the death
// cue. It defaults to true.
func (s *RunSpec) PlaysDeathCueOnFall() bool {
	return s.FallPlaysDeathCue == nil || *s.FallPlaysDeathCue
}

func (s *RunSpec) Validate() error {
	if s.Lives <= 0 {
		return fmt.Errorf("%w: lives must be positive, got %d", ErrInvalidSpec, s.Lives)
	}
	if s.HitCooldownFrames < 0 {
		return fmt.Errorf("%w: hit_cooldown_frames must not be negative", ErrInvalidSpec)
	}
	if s.TickRate < 0 {
		return fmt.Errorf("%w: tick_rate must not be negative", ErrInvalidSpec)
	}
	if s.Shake.Intensity < 0 || s.Shake.Duration < 0 {
		return fmt.Errorf("%w: shake intensity and duration must not be negative", ErrInvalidSpec)
	}
	if s.Audio.MusicVolume < 0 || s.Audio.MusicVolume > 1 {
		return fmt.Errorf("%w: music_volume must be in [0,1], got %v", ErrInvalidSpec, s.Audio.MusicVolume)
	}
	return nil
}

type BlockSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type EnemySpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Script string  `yaml:"script"`
	Range  float64 `yaml:"range"`
	Speed  float64 `yaml:"speed"`
}

type TurretSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Interval int     `yaml:"interval"`
	Dir      float64 `yaml:"dir"`
	Speed    float64 `yaml:"speed"`
	TTL      int     `yaml:"ttl"`
	Radius   float64 `yaml:"radius"`
}

type LevelSpec struct {
	Name       string        `yaml:"name"`
	Width      float64       `yaml:"width"`
	Height     float64       `yaml:"height"`
	Spawn      TransformSpec `yaml:"spawn"`
	Checkpoint TransformSpec `yaml:"checkpoint"`
	Ground     []BlockSpec   `yaml:"ground"`
	Hazards    []BlockSpec   `yaml:"hazards"`
	Enemies    []EnemySpec   `yaml:"enemies"`
	Turrets    []TurretSpec  `yaml:"turrets"`
	DeathPlane BlockSpec     `yaml:"death_plane"`
}

func LoadLevelSpec(name string) (*LevelSpec, error) {
	if name == "" {
		name = "level.yaml"
	}
	spec, err := LoadSpec[LevelSpec](name)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *LevelSpec) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: level %q needs a positive size", ErrInvalidSpec, s.Name)
	}
	if len(s.Ground) == 0 {
		return fmt.Errorf("%w: level %q has no ground", ErrInvalidSpec, s.Name)
	}
	blocks := append(append([]BlockSpec{}, s.Ground...), s.Hazards...)
	blocks = append(blocks, s.DeathPlane)
	for i, b := range blocks {
		if b.Width <= 0 || b.Height <= 0 {
			return fmt.Errorf("%w: level %q block %d has a non-positive size", ErrInvalidSpec, s.Name, i)
		}
	}
	for i, e := range s.Enemies {
		if e.Script == "" {
			return fmt.Errorf("%w: level %q enemy %d has no patrol script", ErrInvalidSpec, s.Name, i)
		}
	}
	for i, t := range s.Turrets {
		if t.Interval <= 0 || t.TTL <= 0 || t.Radius <= 0 {
			return fmt.Errorf("%w: level %q turret %d needs a positive interval, ttl and radius", ErrInvalidSpec, s.Name, i)
		}
	}
	return nil
}
