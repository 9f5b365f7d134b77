package component

// Chase sets horizontal velocity toward the player using only the sign of
// the X delta.
type Chase struct {
	Speed float64
}

var ChaseComponent = NewComponent[Chase]()

// Pursue flies straight at the player.
type Pursue struct {
	Speed float64
}

var PursueComponent = NewComponent[Pursue]()
