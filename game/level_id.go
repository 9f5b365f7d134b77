package game

import (
	"fmt"
	"strconv"
	"strings"
)

type LevelID uint8

const (
	LevelNone LevelID = iota
	Level1
	Level2
	Level3
	// Won is reached only through the win sequence; nothing is built for it.
	Won
)

// Levels lists the playable levels in order.
func Levels() []LevelID {
	return []LevelID{Level1, Level2, Level3}
}

func (id LevelID) String() string {
	switch id {
	case Level1, Level2, Level3:
		return "level" + strconv.Itoa(int(id))
	case Won:
		return "won"
	default:
		return "none"
	}
}

func (id LevelID) Playable() bool {
	return id >= Level1 && id <= Level3
}

// ParseLevelID accepts "level2", "Level2" or "2".
func ParseLevelID(s string) (LevelID, error) {
	trimmed := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "level")
	n, err := strconv.Atoi(trimmed)
	if err != nil || !LevelID(n).Playable() {
		return LevelNone, fmt.Errorf("game: unknown level %q", s)
	}
	return LevelID(n), nil
}
