package game

import (
	"testing"

	"github.com/milk9111/cityrun/ecs/component"
)

func TestDecrementEnemyWinsOnLastKill(t *testing.T) {
	cases := []struct {
		name string
		kind component.Kind
		n    int
	}{
		{"ground_four", component.KindGroundEnemy, 4},
		{"ground_three", component.KindGroundEnemy, 3},
		{"flying_one", component.KindFlyingEnemy, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewState()
			s.ResetCounters(Population{c.kind: c.n})

			for i := 0; i < c.n-1; i++ {
				s.DecrementEnemy(c.kind)
			}
			if s.LevelWon() {
				t.Fatalf("level won after %d of %d kills", c.n-1, c.n)
			}
			s.DecrementEnemy(c.kind)
			if s.Remaining(c.kind) != 0 {
				t.Fatalf("expected 0 remaining, got %d", s.Remaining(c.kind))
			}
			if !s.LevelWon() || !s.IsComplete() {
				t.Fatalf("expected level won after %d kills", c.n)
			}
		})
	}
}

func TestDecrementEnemyUnderflow(t *testing.T) {
	s := NewState()
	s.ResetCounters(Population{component.KindGroundEnemy: 1, component.KindFlyingEnemy: 2})
	s.DecrementEnemy(component.KindGroundEnemy)
	s.DecrementEnemy(component.KindGroundEnemy)

	if got := s.Remaining(component.KindGroundEnemy); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
	if got := s.Remaining(component.KindFlyingEnemy); got != 2 {
		t.Fatalf("flying counter should be untouched, got %d", got)
	}
	if !s.LevelWon() {
		t.Fatalf("expected level won")
	}
}

func TestResetCountersIgnoresNonEnemies(t *testing.T) {
	s := NewState()
	s.ResetCounters(Population{component.KindGroundEnemy: 2})
	s.ResetCounters(Population{component.KindFlyingEnemy: 1, component.KindGun: 5})

	if s.Remaining(component.KindGroundEnemy) != 0 {
		t.Fatalf("old counters should be cleared")
	}
	if s.Remaining(component.KindGun) != 0 {
		t.Fatalf("non-enemy kinds should not be counted")
	}
	if s.Remaining(component.KindFlyingEnemy) != 1 {
		t.Fatalf("expected flying counter 1")
	}
}

func TestKeyCompletesLevelWithEnemiesLeft(t *testing.T) {
	s := NewState()
	s.ResetCounters(Population{component.KindGroundEnemy: 3})
	s.CompleteLevel()

	if !s.IsComplete() {
		t.Fatalf("expected level complete")
	}
	if s.Remaining(component.KindGroundEnemy) != 3 {
		t.Fatalf("key should not touch counters")
	}
}

func TestArmorAbsorbsOneHit(t *testing.T) {
	tests := []struct {
		name       string
		start      component.Stats
		hits       int
		wantHealth int
		wantArmor  int
	}{
		{"armor_soaks_first", component.Stats{Health: 3, Armor: 1}, 1, 3, 0},
		{"second_hit_takes_health", component.Stats{Health: 3, Armor: 1}, 2, 2, 0},
		{"no_armor", component.Stats{Health: 3}, 1, 2, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewState()
			st := tc.start
			for i := 0; i < tc.hits; i++ {
				s.HitPlayer(&st)
			}
			if st.Health != tc.wantHealth || st.Armor != tc.wantArmor {
				t.Fatalf("expected health=%d armor=%d, got %+v", tc.wantHealth, tc.wantArmor, st)
			}
			if s.GameOver() {
				t.Fatalf("game over should not be set")
			}
		})
	}
}

func TestHealthBounds(t *testing.T) {
	t.Run("potion_at_full_health", func(t *testing.T) {
		s := NewState()
		st := component.DefaultStats()
		s.HealPlayer(&st, 1)
		if st.Health != component.MaxHealth {
			t.Fatalf("expected %d, got %d", component.MaxHealth, st.Health)
		}
	})

	t.Run("potion_below_full", func(t *testing.T) {
		s := NewState()
		st := component.Stats{Health: 1}
		s.HealPlayer(&st, 1)
		if st.Health != 2 {
			t.Fatalf("expected 2, got %d", st.Health)
		}
	})

	t.Run("hits_stop_at_zero", func(t *testing.T) {
		s := NewState()
		st := component.Stats{Health: 1}
		killed := s.HitPlayer(&st)
		s.HitPlayer(&st)
		s.HitPlayer(&st)

		if !killed {
			t.Fatalf("first hit should report the kill")
		}
		if st.Health != 0 {
			t.Fatalf("expected health 0, got %d", st.Health)
		}
		if !s.GameOver() {
			t.Fatalf("expected game over")
		}
	})

	t.Run("no_heal_after_game_over", func(t *testing.T) {
		s := NewState()
		st := component.Stats{Health: 1}
		s.HitPlayer(&st)
		s.HealPlayer(&st, 1)
		if st.Health != 0 {
			t.Fatalf("dead player should stay at 0, got %d", st.Health)
		}
	})
}

func TestGrantArmor(t *testing.T) {
	s := NewState()
	st := component.DefaultStats()

	if !s.GrantArmor(&st, 1) {
		t.Fatalf("first armor should be accepted")
	}
	if s.GrantArmor(&st, 1) {
		t.Fatalf("second armor should be refused while full")
	}
	if st.Armor != component.MaxArmor {
		t.Fatalf("expected armor %d, got %d", component.MaxArmor, st.Armor)
	}
}

func TestSetGameWonLatches(t *testing.T) {
	s := NewState()
	if !s.SetGameWon() {
		t.Fatalf("first call should latch")
	}
	if s.SetGameWon() {
		t.Fatalf("second call should be ignored")
	}
	if !s.Terminal() {
		t.Fatalf("won session should be terminal")
	}
}

func TestParseLevelID(t *testing.T) {
	cases := map[string]LevelID{
		"level1": Level1,
		"Level2": Level2,
		"3":      Level3,
	}
	for in, want := range cases {
		got, err := ParseLevelID(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevelID(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	for _, bad := range []string{"", "level4", "won", "0"} {
		if _, err := ParseLevelID(bad); err == nil {
			t.Fatalf("ParseLevelID(%q) should fail", bad)
		}
	}
}
