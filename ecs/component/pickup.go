package component

// Pickup is a single-use collectible. What it grants is decided by its Kind;
// Amount is how much health or armor it adds.
type Pickup struct {
	Amount int
}

var PickupComponent = NewComponent[Pickup]()
