package ecs

import "time"

// maxStepsPerFrame bounds catch-up work after a long frame.
const maxStepsPerFrame = 5

type System interface {
	Update(w *World)
}

// Scheduler runs two phases: fixed systems at a constant timestep
// (accumulated from frame time) and frame systems once per frame. All fixed
// steps due in a frame run before that frame's frame systems.
type Scheduler struct {
	fixed []System
	frame []System

	step        time.Duration
	accumulator time.Duration
}

func NewScheduler(step time.Duration) *Scheduler {
	if step <= 0 {
		step = time.Second / 60
	}
	return &Scheduler{step: step}
}

// AddFixed appends a system to the fixed-timestep phase.
func (s *Scheduler) AddFixed(systems ...System) {
	for _, system := range systems {
		if system != nil {
			s.fixed = append(s.fixed, system)
		}
	}
}

// AddFrame appends a system to the per-frame phase.
func (s *Scheduler) AddFrame(systems ...System) {
	for _, system := range systems {
		if system != nil {
			s.frame = append(s.frame, system)
		}
	}
}

// Step returns the fixed timestep.
func (s *Scheduler) Step() time.Duration {
	return s.step
}

// Advance accumulates elapsed frame time, runs every due fixed step and then
// the frame phase once. It returns the number of fixed steps run.
func (s *Scheduler) Advance(w *World, elapsed time.Duration) int {
	if s == nil || w == nil {
		return 0
	}
	s.accumulator += elapsed
	if limit := s.step * maxStepsPerFrame; s.accumulator > limit {
		s.accumulator = limit
	}

	steps := 0
	for s.accumulator >= s.step {
		s.accumulator -= s.step
		s.StepFixed(w)
		steps++
	}
	s.StepFrame(w)
	return steps
}

// StepFixed runs the fixed phase once.
func (s *Scheduler) StepFixed(w *World) {
	for _, system := range s.fixed {
		system.Update(w)
	}
}

// StepFrame runs the frame phase once.
func (s *Scheduler) StepFrame(w *World) {
	for _, system := range s.frame {
		system.Update(w)
	}
}

// Systems returns both phases, fixed first.
func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.fixed)+len(s.frame))
	systems = append(systems, s.fixed...)
	return append(systems, s.frame...)
}
