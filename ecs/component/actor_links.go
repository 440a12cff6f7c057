package component

// ActorLinks points an actor at the run entity (Lives, RunState) and the
// checkpoint entity it respawns at. Entities are stored as raw uint64 so
// this package stays independent of ecs.
type ActorLinks struct {
	Run        uint64
	Checkpoint uint64
}

var ActorLinksComponent = NewComponent[ActorLinks]()
