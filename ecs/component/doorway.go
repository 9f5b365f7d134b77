package component

// Doorway gates progression. Terminal doorways end the game on contact,
// the rest only open once the level is complete.
type Doorway struct {
	Terminal bool
}

var DoorwayComponent = NewComponent[Doorway]()
