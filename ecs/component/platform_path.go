package component

type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

// PlatformPath moves a kinematic platform back and forth between bounds
// taken relative to where it was spawned.
type PlatformPath struct {
	Axis    Axis
	Speed   float64
	Forward float64
	Back    float64

	// Absolute bounds, fixed at construction by Anchor.
	Min float64
	Max float64
}

// Anchor fixes the bounds around the spawn position (x, y).
func (p *PlatformPath) Anchor(x, y float64) {
	pos := x
	if p.Axis == AxisY {
		pos = y
	}
	p.Min = pos + p.Back
	p.Max = pos + p.Forward
}

var PlatformPathComponent = NewComponent[PlatformPath]()
