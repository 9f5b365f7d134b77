package component

// TTL is a frame-based time-to-live. Bullets carry one so a shot that never
// hits anything is still cleaned up.
type TTL struct {
	Frames int
}

var TTLComponent = NewComponent[TTL]()
