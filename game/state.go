package game

import "github.com/milk9111/cityrun/ecs/component"

// State is the simulation context shared by collision rules and the level
// lifecycle: the three outcome flags plus per-kind enemy counters. It is
// owned by the tick loop and written from one place at a time.
type State struct {
	gameOver  bool
	levelWon  bool
	gameWon   bool
	remaining map[component.Kind]int
}

func NewState() *State {
	return &State{remaining: make(map[component.Kind]int)}
}

func (s *State) GameOver() bool { return s.gameOver }
func (s *State) LevelWon() bool { return s.levelWon }
func (s *State) GameWon() bool  { return s.gameWon }

// Terminal reports whether the session has ended either way.
func (s *State) Terminal() bool {
	return s.gameOver || s.gameWon
}

// IsComplete is the level-complete predicate. It only reads the flag; both
// the kill counter and the key route through it.
func (s *State) IsComplete() bool {
	return s.levelWon
}

func (s *State) ResetLevelWon() {
	s.levelWon = false
}

// CompleteLevel sets the flag directly, independent of any counter.
func (s *State) CompleteLevel() {
	s.levelWon = true
}

// ResetCounters replaces every counter with the new level's population.
// Kinds absent from pop read as zero.
func (s *State) ResetCounters(pop map[component.Kind]int) {
	clear(s.remaining)
	for kind, n := range pop {
		if kind.IsEnemy() {
			s.remaining[kind] = n
		}
	}
}

func (s *State) Remaining(kind component.Kind) int {
	return s.remaining[kind]
}

// DecrementEnemy records one confirmed kill. Reaching zero or below wins the
// level; going negative is allowed.
func (s *State) DecrementEnemy(kind component.Kind) {
	s.remaining[kind]--
	if s.remaining[kind] <= 0 {
		s.levelWon = true
	}
}

// SetGameWon latches the win flag. Later calls are ignored.
func (s *State) SetGameWon() bool {
	if s.gameWon {
		return false
	}
	s.gameWon = true
	return true
}

// HitPlayer applies one enemy contact. Armor soaks the hit on its own;
// otherwise health drops by one and reaching zero ends the game. It reports
// whether this hit killed the player.
func (s *State) HitPlayer(st *component.Stats) bool {
	if st == nil || s.gameOver || st.Health <= 0 {
		return false
	}
	if st.Armor >= component.MaxArmor {
		st.Armor--
		return false
	}
	st.Health--
	if st.Health <= 0 {
		st.Health = 0
		s.gameOver = true
		return true
	}
	return false
}

// HealPlayer adds health up to the cap.
func (s *State) HealPlayer(st *component.Stats, amount int) {
	if st == nil || s.gameOver {
		return
	}
	st.Health = min(st.Health+amount, component.MaxHealth)
}

// GrantArmor only succeeds while the player has room for it, so a full
// player leaves the pickup in the level.
func (s *State) GrantArmor(st *component.Stats, amount int) bool {
	if st == nil || s.gameOver || st.Armor >= component.MaxArmor {
		return false
	}
	st.Armor = min(st.Armor+amount, component.MaxArmor)
	return true
}

func (s *State) GrantWeapon(st *component.Stats) {
	if st == nil || s.gameOver {
		return
	}
	st.HasWeapon = true
}
