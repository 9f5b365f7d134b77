package component

import "image/color"

// Render is what the debug renderer needs to draw an entity as a filled
// shape: a colour, a draw layer (higher draws later) and an optional label.
type Render struct {
	Color color.Color
	Layer int
	Label string
}

var RenderComponent = NewComponent[Render]()
