package component

// Patrol walks an entity along X between Left and Right. Bounds are
// compared strictly, so sitting exactly on one does not turn it around.
type Patrol struct {
	Speed float64
	Left  float64
	Right float64
}

var PatrolComponent = NewComponent[Patrol]()
