package component

// Oscillate bobs an entity along Y between Lower and Upper.
type Oscillate struct {
	Speed float64
	Upper float64
	Lower float64
	// Strict bounds only reverse once the position is past a bound. Floating
	// collectibles reverse on touching it.
	Strict bool
}

var OscillateComponent = NewComponent[Oscillate]()
