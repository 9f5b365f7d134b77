package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Width and Height are full extents; a positive Radius makes a circle.
type PhysicsBody struct {
	Body       *cp.Body
	Shape      *cp.Shape
	Width      float64
	Height     float64
	Radius     float64
	Mass       float64
	Friction   float64
	Elasticity float64
	Static     bool
	// Kinematic bodies are moved by behaviours and ignore forces.
	Kinematic bool
	// Sensor shapes report contacts without pushing anything.
	Sensor        bool
	FixedRotation bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
