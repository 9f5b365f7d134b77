package component

// AudioCue names the sounds an entity makes. Spawn plays once when the entity
// is built, Destroy when gameplay removes it. Level teardown is silent.
type AudioCue struct {
	Spawn   string
	Destroy string
}

var AudioCueComponent = NewComponent[AudioCue]()
