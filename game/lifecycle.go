package game

import (
	"errors"
	"fmt"

	"github.com/milk9111/cityrun/ecs/component"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	ErrNoNextLevel = errors.New("game: no level after this one")
	ErrTerminal    = errors.New("game: session is over")
)

// Population counts the enemies a freshly built level contains, by kind.
type Population map[component.Kind]int

func (p Population) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	for kind, n := range p {
		enc.AddInt(kind.String(), n)
	}
	return nil
}

// World is what the lifecycle needs from the simulation. The ECS runner
// implements it; tests use a fake.
type World interface {
	// DestroyLevelObjects removes the current level's own geometry and
	// population, leaving the player and base geometry.
	DestroyLevelObjects()
	// DestroyBaseObjects removes the player, ground and boundary walls.
	DestroyBaseObjects()
	// BuildLevel constructs base geometry, a fresh player and the level's
	// population.
	BuildLevel(id LevelID) (Population, error)
	PlayerStats() (component.Stats, bool)
	SetPlayerVitals(health, armor int)
	SetPlayerWeapon(equipped bool)
}

type event uint8

const (
	eventAdvance event = iota + 1
	eventWin
)

func (e event) String() string {
	switch e {
	case eventAdvance:
		return "advance"
	case eventWin:
		return "win"
	default:
		return "none"
	}
}

type edge struct {
	from LevelID
	on   event
}

type transitionFunc func(l *Lifecycle, w World) error

// Lifecycle is the level state machine. Requests raised during collision
// delivery are queued and applied by Apply at one point in the tick.
type Lifecycle struct {
	state   *State
	clock   *Clock
	log     *zap.Logger
	current LevelID
	pending event
	edges   map[edge]transitionFunc

	gameOverSeen bool
}

func NewLifecycle(state *State, clock *Clock, log *zap.Logger) *Lifecycle {
	if log == nil {
		log = zap.NewNop()
	}
	return &Lifecycle{
		state: state,
		clock: clock,
		log:   log,
		edges: map[edge]transitionFunc{
			{Level1, eventAdvance}: advanceTo(Level2),
			{Level2, eventAdvance}: advanceTo(Level3),
			{Level1, eventWin}:     win,
			{Level2, eventWin}:     win,
			{Level3, eventWin}:     win,
		},
	}
}

func (l *Lifecycle) Current() LevelID { return l.current }
func (l *Lifecycle) State() *State    { return l.state }
func (l *Lifecycle) Clock() *Clock    { return l.clock }

// Start builds id from scratch with default player stats and starts the clock.
func (l *Lifecycle) Start(w World, id LevelID) error {
	if !id.Playable() {
		return fmt.Errorf("game: start %s: not a playable level", id)
	}
	l.state.ResetLevelWon()
	pop, err := w.BuildLevel(id)
	if err != nil {
		return fmt.Errorf("game: start %s: %w", id, err)
	}
	l.state.ResetCounters(pop)
	l.current = id
	l.pending = 0
	l.clock.Start()
	l.log.Info("level started", zap.Stringer("level", id), zap.Object("population", pop))
	return nil
}

// HasNext reports whether a completed doorway in the current level leads
// anywhere.
func (l *Lifecycle) HasNext() bool {
	_, ok := l.edges[edge{l.current, eventAdvance}]
	return ok
}

// RequestAdvance queues the move to the next level. It is refused while the
// level is incomplete, after the session ended, or from the last level.
func (l *Lifecycle) RequestAdvance() error {
	if l.state.Terminal() {
		return ErrTerminal
	}
	if !l.state.IsComplete() {
		return fmt.Errorf("game: advance from %s: level incomplete", l.current)
	}
	if !l.HasNext() {
		return ErrNoNextLevel
	}
	if l.pending == 0 {
		l.pending = eventAdvance
	}
	return nil
}

// RequestWin queues the win sequence. It overrides a queued advance.
func (l *Lifecycle) RequestWin() error {
	if l.state.Terminal() {
		return ErrTerminal
	}
	l.pending = eventWin
	return nil
}

func (l *Lifecycle) Pending() bool { return l.pending != 0 }

// Apply runs the queued transition, if any. Game over discards whatever was
// queued and freezes the clock.
func (l *Lifecycle) Apply(w World) error {
	if l.state.GameOver() {
		l.pending = 0
		if !l.gameOverSeen {
			l.gameOverSeen = true
			l.clock.Stop()
			l.log.Info("game over", zap.Stringer("level", l.current))
		}
		return nil
	}
	if l.pending == 0 {
		return nil
	}
	on := l.pending
	l.pending = 0

	fn, ok := l.edges[edge{l.current, on}]
	if !ok {
		l.log.Warn("no transition", zap.Stringer("level", l.current), zap.Stringer("event", on))
		return nil
	}
	return fn(l, w)
}

// advanceTo tears down the current level and builds next with the player's
// stats carried over.
func advanceTo(next LevelID) transitionFunc {
	return func(l *Lifecycle, w World) error {
		from := l.current

		w.DestroyLevelObjects()
		l.clock.Stop()

		stats, ok := w.PlayerStats()
		if !ok {
			stats = component.DefaultStats()
		}
		l.state.ResetLevelWon()

		// The previous level's base goes with it; the next one builds its own.
		w.DestroyBaseObjects()
		pop, err := w.BuildLevel(next)
		if err != nil {
			l.log.Error("build level failed", zap.Stringer("level", next), zap.Error(err))
			return fmt.Errorf("game: advance %s -> %s: %w", from, next, err)
		}
		l.state.ResetCounters(pop)
		l.current = next

		w.SetPlayerVitals(stats.Health, stats.Armor)
		w.SetPlayerWeapon(stats.HasWeapon)
		l.clock.Start()

		l.log.Info("level advanced",
			zap.Stringer("from", from),
			zap.Stringer("to", next),
			zap.Int("health", stats.Health),
			zap.Int("armor", stats.Armor),
			zap.Bool("weapon", stats.HasWeapon),
		)
		return nil
	}
}

func win(l *Lifecycle, w World) error {
	from := l.current
	w.DestroyLevelObjects()
	w.DestroyBaseObjects()
	l.clock.Stop()
	l.state.SetGameWon()
	l.current = Won
	l.log.Info("game won", zap.Stringer("from", from))
	return nil
}
