package component

// Scope says which teardown removes an entity.
type Scope uint8

const (
	// ScopeLevel entities belong to one level's population.
	ScopeLevel Scope = iota
	// ScopeBase entities are the shared ground, walls and player.
	ScopeBase
)

type Owner struct {
	Scope Scope
	Level string
}

var OwnerComponent = NewComponent[Owner]()
