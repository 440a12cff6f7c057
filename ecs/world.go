package ecs

import "github.com/milk9111/platformer/ecs/component"

// KindID is satisfied by every component.ComponentKind and lets non-generic
// queries accept a mix of kinds.
type KindID interface {
	ID() component.ComponentID
}

// World owns entities, component storage and the contact queue filled by
// the physics step.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	contacts ContactQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and recycles its slot.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, store := range w.stores {
		store.Remove(e.id())
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Contacts returns the queue of physics contacts awaiting resolution.
func (w *World) Contacts() *ContactQueue {
	if w == nil {
		return nil
	}
	return &w.contacts
}

// First returns the first live entity holding kind.
func (w *World) First(kind KindID) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	store := w.stores[kind.ID()]
	for _, id := range store.ids() {
		if e, ok := w.entities.handle(id); ok {
			return e, true
		}
	}
	return 0, false
}

// Query returns every live entity holding all of kinds.
func (w *World) Query(kinds ...KindID) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		store := w.stores[k.ID()]
		if store == nil {
			return nil
		}
		sets = append(sets, store)
	}
	smallest := sets[0]
	for _, s := range sets[1:] {
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}

	var out []Entity
	for _, id := range smallest.ids() {
		if !hasAll(sets, id) {
			continue
		}
		if e, ok := w.entities.handle(id); ok {
			out = append(out, e)
		}
	}
	return out
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if s, ok := w.stores[id]; ok {
		return s
	}
	if !create {
		return nil
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	s := &SparseSet{}
	w.stores[id] = s
	return s
}

func hasAll(sets []*SparseSet, id entityID) bool {
	for _, s := range sets {
		if !s.Has(id) {
			return false
		}
	}
	return true
}

// CreateEntity is the package-level form of World.CreateEntity.
func CreateEntity(w *World) Entity {
	return w.CreateEntity()
}

// DestroyEntity is the package-level form of World.DestroyEntity.
func DestroyEntity(w *World, e Entity) bool {
	return w.DestroyEntity(e)
}

// IsAlive is the package-level form of World.IsAlive.
func IsAlive(w *World, e Entity) bool {
	return w.IsAlive(e)
}

// Entities returns every live entity.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.live()
}
