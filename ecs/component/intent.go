package component

// Intent is a discrete request from the input layer. The set is closed.
type Intent interface {
	isIntent()
}

type Direction int8

const (
	DirLeft  Direction = -1
	DirRight Direction = 1
)

type StartMove struct {
	Dir Direction
}

type StopMove struct{}

type Jump struct{}

type Shoot struct{}

func (StartMove) isIntent() {}
func (StopMove) isIntent()  {}
func (Jump) isIntent()      {}
func (Shoot) isIntent()     {}

// Intents queues requests until the input system drains them.
type Intents struct {
	Pending []Intent
}

func (q *Intents) Push(in Intent) {
	q.Pending = append(q.Pending, in)
}

var IntentsComponent = NewComponent[Intents]()
