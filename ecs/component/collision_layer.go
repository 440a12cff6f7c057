package component

// Collision categories. Shapes use one category bit; queries and shapes
// filter with masks built from these.
const (
	LayerGround uint = 1 << iota
	LayerPlayer
	LayerEnemy
	LayerHazard
	LayerProjectile
	LayerDeathPlane
)

// CollisionLayer declares a shape's category and the categories it
// collides with. A zero Mask collides with everything.
type CollisionLayer struct {
	Category uint
	Mask     uint
}

var CollisionLayerComponent = NewComponent[CollisionLayer]()
