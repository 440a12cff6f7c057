package system

import (
	"fmt"
	"path"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// ScriptLoader returns the source of a named patrol script.
type ScriptLoader func(name string) ([]byte, error)

// PatrolSystem moves patrolling enemies with tengo scripts. A script sees
// the globals x, origin, span, speed and dir and must assign vx and dir.
type PatrolSystem struct {
	load   ScriptLoader
	logger *zap.Logger

	compiled map[string]*tengo.Compiled
	runtimes map[ecs.Entity]patrolRuntime
	failed   map[string]bool
}

type patrolRuntime struct {
	script   string
	compiled *tengo.Compiled
}

func NewPatrolSystem(load ScriptLoader, logger *zap.Logger) *PatrolSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PatrolSystem{
		load:     load,
		logger:   logger,
		compiled: make(map[string]*tengo.Compiled),
		runtimes: make(map[ecs.Entity]patrolRuntime),
		failed:   make(map[string]bool),
	}
}

func (s *PatrolSystem) Update(w *ecs.World) {
	if w == nil || s.load == nil {
		return
	}

	for e := range s.runtimes {
		if !w.IsAlive(e) {
			delete(s.runtimes, e)
		}
	}

	ecs.ForEach3(w, component.PatrolComponent.Kind(), component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, patrol *component.Patrol, t *component.Transform, body *component.PhysicsBody) {
		if body.Body == nil {
			return
		}
		rt, err := s.runtime(e, patrol.Script)
		if err != nil {
			if !s.failed[patrol.Script] {
				s.failed[patrol.Script] = true
				s.logger.Error("patrol script unavailable", runIDField(currentRunID(w)), zap.String("script", patrol.Script), zap.Error(err))
			}
			return
		}

		vx, dir, err := runPatrol(rt, t.X, patrol)
		if err != nil {
			s.logger.Warn("patrol script failed", runIDField(currentRunID(w)), zap.Stringer("entity", e), zap.Error(err))
			return
		}
		patrol.Dir = dir
		vel := body.Body.Velocity()
		body.Body.SetVelocityVector(cp.Vector{X: vx, Y: vel.Y})
	})
}

func (s *PatrolSystem) runtime(e ecs.Entity, name string) (*tengo.Compiled, error) {
	if rt, ok := s.runtimes[e]; ok && rt.script == name {
		return rt.compiled, nil
	}
	base, ok := s.compiled[name]
	if !ok {
		src, err := s.load(name)
		if err != nil {
			return nil, err
		}
		script := tengo.NewScript(src)
		for _, global := range []string{"x", "origin", "span", "speed", "dir", "vx"} {
			_ = script.Add(global, 0.0)
		}
		script.SetImports(stdlib.GetModuleMap("math"))
		base, err = script.Compile()
		if err != nil {
			return nil, fmt.Errorf("compile patrol script %q: %w", name, err)
		}
		s.compiled[name] = base
	}
	rt := base.Clone()
	s.runtimes[e] = patrolRuntime{script: name, compiled: rt}
	return rt, nil
}

// Invalidate drops the compiled script named name, matched by base name,
// and every runtime cloned from it. The next Update reloads the source.
func (s *PatrolSystem) Invalidate(name string) int {
	base := path.Base(name)
	n := 0
	for script := range s.compiled {
		if path.Base(script) == base {
			delete(s.compiled, script)
			n++
		}
	}
	for script := range s.failed {
		if path.Base(script) == base {
			delete(s.failed, script)
		}
	}
	for e, rt := range s.runtimes {
		if path.Base(rt.script) == base {
			delete(s.runtimes, e)
		}
	}
	return n
}

func runPatrol(rt *tengo.Compiled, x float64, patrol *component.Patrol) (vx, dir float64, err error) {
	dir = patrol.Dir
	if dir == 0 {
		dir = 1
	}
	inputs := map[string]float64{
		"x":      x,
		"origin": patrol.OriginX,
		"span":   patrol.Range,
		"speed":  patrol.Speed,
		"dir":    dir,
		"vx":     0,
	}
	for name, v := range inputs {
		if err := rt.Set(name, v); err != nil {
			return 0, 0, err
		}
	}
	if err := rt.Run(); err != nil {
		return 0, 0, err
	}
	return rt.Get("vx").Float(), rt.Get("dir").Float(), nil
}
