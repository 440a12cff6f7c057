package main

import (
	"fmt"
	"image/color"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/session"
)

var hudFace text.Face = text.NewGoXFace(basicfont.Face7x13)

type offset struct {
	X, Y float64
}

// animatorState keeps the last published animation state for drawing.
type animatorState struct {
	state component.AnimationState
}

func (a *animatorState) SetState(state int) {
	a.state = component.AnimationState(state)
}

// shaker jitters the camera while a shake is running. The jitter fades
// linearly over the pulse duration.
type shaker struct {
	intensity float64
	current   float64
	duration  float64
	active    bool
}

func (s *shaker) Pulse(intensity, duration float64) {
	s.intensity = intensity
	s.current = intensity
	s.duration = duration
	s.active = true
}

func (s *shaker) Settle() {
	s.active = false
	s.current = 0
}

func (s *shaker) Update(dt float64) {
	if !s.active || s.duration <= 0 {
		return
	}
	s.current = common.Approach(s.current, s.intensity*dt/s.duration)
}

func (s *shaker) Offset() offset {
	if !s.active || s.current <= 0 {
		return offset{}
	}
	return offset{
		X: (rand.Float64()*2 - 1) * s.current,
		Y: (rand.Float64()*2 - 1) * s.current,
	}
}

const (
	maxPuffs  = 64
	puffLife  = 20
	puffDrift = 0.4
)

type puff struct {
	x, y float64
	life int
}

// dustTrail is the cosmetic dust emitter.
type dustTrail struct {
	puffs []puff
}

func (d *dustTrail) Play(x, y float64) {
	if len(d.puffs) >= maxPuffs {
		d.puffs = d.puffs[1:]
	}
	d.puffs = append(d.puffs, puff{x: x, y: y, life: puffLife})
}

func (d *dustTrail) Update() {
	live := d.puffs[:0]
	for _, p := range d.puffs {
		p.life--
		p.y -= puffDrift
		if p.life > 0 {
			live = append(live, p)
		}
	}
	d.puffs = live
}

func (d *dustTrail) Draw(screen *ebiten.Image, off offset) {
	for _, p := range d.puffs {
		alpha := float32(p.life) / puffLife
		r := common.Lerp(1, 4, 1-alpha)
		clr := color.NRGBA{R: 0xc8, G: 0xb4, B: 0x96, A: uint8(200 * alpha)}
		vector.FillCircle(screen, float32(p.x+off.X), float32(p.y+off.Y), r, clr, true)
	}
}

func drawWorld(screen *ebiten.Image, s *session.Session, off offset, state component.AnimationState) {
	screen.Fill(color.NRGBA{R: 0x1a, G: 0x1c, B: 0x2c, A: 0xff})

	w := s.World
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody, t *component.Transform) {
		if ecs.Has(w, e, component.DeathPlaneTagComponent.Kind()) {
			return
		}
		clr := bodyColor(w, e, state)
		x, y := t.X+off.X, t.Y+off.Y
		if body.Radius > 0 {
			vector.FillCircle(screen, float32(x), float32(y), float32(body.Radius), clr, true)
			return
		}
		vector.FillRect(screen, float32(x-body.Width/2), float32(y-body.Height/2), float32(body.Width), float32(body.Height), clr, false)
	})

	ecs.ForEach(w, component.TurretComponent.Kind(), func(e ecs.Entity, _ *component.Turret) {
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			vector.FillRect(screen, float32(t.X+off.X-8), float32(t.Y+off.Y-8), 16, 16, colornames.Slategray, false)
		}
	})
}

func bodyColor(w *ecs.World, e ecs.Entity, state component.AnimationState) color.Color {
	if ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
		if ecs.Has(w, e, component.InvulnerableComponent.Kind()) {
			return colornames.Lightpink
		}
		switch state {
		case component.AnimRun:
			return colornames.Deepskyblue
		case component.AnimJump:
			return colornames.Gold
		default:
			return colornames.White
		}
	}
	if src, ok := ecs.Get(w, e, component.DamageSourceComponent.Kind()); ok {
		switch src.Kind {
		case component.SourceEnemy:
			return colornames.Orangered
		case component.SourceHazard:
			return colornames.Crimson
		case component.SourceProjectile:
			return colornames.Yellow
		}
	}
	return colornames.Darkolivegreen
}

func drawHUD(screen *ebiten.Image, st session.Status, debug bool) {
	lines := fmt.Sprintf("HP %d/%d   Lives %d/%d", st.Health, st.MaxHealth, st.Lives, st.MaxLives)
	if debug {
		lines += fmt.Sprintf("\nstate=%s grounded=%t pos=(%.0f, %.0f) deaths=%d fps=%.1f",
			st.State, st.Grounded, st.X, st.Y, st.Deaths, ebiten.ActualFPS())
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(8, 8)
	op.LineSpacing = 16
	op.ColorScale.ScaleWithColor(colornames.White)
	text.Draw(screen, lines, hudFace, op)
}
