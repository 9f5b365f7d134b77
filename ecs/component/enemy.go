package component

// Enemy carries hit points. Ground enemies start at 3, flying ones at 10.
type Enemy struct {
	Health int
}

// TakeDamage has no lower bound; only IsAlive matters.
func (e *Enemy) TakeDamage(n int) {
	e.Health -= n
}

func (e *Enemy) IsAlive() bool {
	return e.Health > 0
}

var EnemyComponent = NewComponent[Enemy]()
