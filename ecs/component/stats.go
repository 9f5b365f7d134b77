package component

const (
	MaxHealth = 3
	MaxArmor  = 1
)

// Stats is what the player carries from one level into the next.
type Stats struct {
	Health    int
	Armor     int
	HasWeapon bool
}

func DefaultStats() Stats {
	return Stats{Health: MaxHealth}
}

var StatsComponent = NewComponent[Stats]()
