package component

type Facing struct {
	Left bool
}

var FacingComponent = NewComponent[Facing]()
