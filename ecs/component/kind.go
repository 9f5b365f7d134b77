package component

import "fmt"

// Kind is the closed set of things that can exist in a level. Collision
// rules are keyed by pairs of kinds.
type Kind uint8

const (
	KindNone Kind = iota
	KindPlayer
	KindGroundEnemy
	KindFlyingEnemy
	KindBullet
	KindArmor
	KindPotion
	KindGun
	KindKey
	KindPortal
	KindDoor
	KindDiamond
	KindGround
	KindWall
	KindPlatform
)

var kindNames = map[Kind]string{
	KindNone:        "none",
	KindPlayer:      "player",
	KindGroundEnemy: "ground_enemy",
	KindFlyingEnemy: "flying_enemy",
	KindBullet:      "bullet",
	KindArmor:       "armor",
	KindPotion:      "potion",
	KindGun:         "gun",
	KindKey:         "key",
	KindPortal:      "portal",
	KindDoor:        "door",
	KindDiamond:     "diamond",
	KindGround:      "ground",
	KindWall:        "wall",
	KindPlatform:    "platform",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return KindNone, fmt.Errorf("component: unknown kind %q", s)
}

// IsEnemy reports whether the kind has hit points and a remaining counter.
func (k Kind) IsEnemy() bool {
	return k == KindGroundEnemy || k == KindFlyingEnemy
}

func (k Kind) IsDoorway() bool {
	return k == KindPortal || k == KindDoor || k == KindDiamond
}

func (k Kind) IsGeometry() bool {
	return k == KindGround || k == KindWall || k == KindPlatform
}

type EntityKind struct {
	Kind Kind
}

var EntityKindComponent = NewComponent[EntityKind]()
