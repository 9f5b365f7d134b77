package system

import (
	"errors"
	"sort"

	"github.com/milk9111/cityrun/ecs"
	"github.com/milk9111/cityrun/ecs/component"
	"github.com/milk9111/cityrun/ecs/entity"
	"github.com/milk9111/cityrun/game"
	"go.uber.org/zap"
)

// Pair keys the reaction table: the agent whose rule runs and the kind of
// body it touched. KindNone as the target matches anything not listed.
type Pair struct {
	Agent  component.Kind
	Target component.Kind
}

type rule func(c *CollisionSystem, w *ecs.World, agent, target ecs.Entity)

// rules is the whole reaction matrix. Pairs that are absent do nothing.
var rules = map[Pair]rule{
	{component.KindPlayer, component.KindArmor}:       collectArmor,
	{component.KindPlayer, component.KindPotion}:      collectPotion,
	{component.KindPlayer, component.KindGun}:         collectGun,
	{component.KindPlayer, component.KindKey}:         collectKey,
	{component.KindPlayer, component.KindPortal}:      enterDoorway,
	{component.KindPlayer, component.KindDoor}:        enterDoorway,
	{component.KindPlayer, component.KindDiamond}:     enterDiamond,
	{component.KindPlayer, component.KindGroundEnemy}: enemyHit,
	{component.KindPlayer, component.KindFlyingEnemy}: enemyHit,
	{component.KindBullet, component.KindBullet}:      ignore,
	{component.KindBullet, component.KindNone}:        bulletHit,
}

// Rules lists every pair with a reaction, in a stable order.
func Rules() []Pair {
	pairs := make([]Pair, 0, len(rules))
	for p := range rules {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Agent != pairs[j].Agent {
			return pairs[i].Agent < pairs[j].Agent
		}
		return pairs[i].Target < pairs[j].Target
	})
	return pairs
}

// CollisionSystem delivers the contacts queued by the physics step. Each
// contact runs at most one rule, and contacts whose entities were destroyed
// earlier in the same delivery are dropped.
type CollisionSystem struct {
	state     *game.State
	lifecycle *game.Lifecycle
	log       *zap.Logger
}

func NewCollisionSystem(lifecycle *game.Lifecycle, log *zap.Logger) *CollisionSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &CollisionSystem{state: lifecycle.State(), lifecycle: lifecycle, log: log}
}

func (c *CollisionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, evt := range w.Events().DrainType(ecs.EventContact) {
		contact, ok := evt.Data.(ecs.ContactEvent)
		if !ok {
			continue
		}
		c.Dispatch(w, contact.A, contact.B)
	}
}

// Dispatch runs the rule for one contact, trying both orientations before
// the agent's catch-all.
func (c *CollisionSystem) Dispatch(w *ecs.World, a, b ecs.Entity) bool {
	if !ecs.IsAlive(w, a) || !ecs.IsAlive(w, b) {
		return false
	}
	ka, kb := entity.KindOf(w, a), entity.KindOf(w, b)

	agent, target := a, b
	fn, ok := rules[Pair{ka, kb}]
	if !ok {
		fn, ok = rules[Pair{kb, ka}]
		agent, target = b, a
	}
	if !ok {
		fn, ok = rules[Pair{ka, component.KindNone}]
		agent, target = a, b
	}
	if !ok {
		fn, ok = rules[Pair{kb, component.KindNone}]
		agent, target = b, a
	}
	if !ok {
		return false
	}

	c.log.Debug("contact",
		zap.Stringer("agent", entity.KindOf(w, agent)),
		zap.Stringer("target", entity.KindOf(w, target)),
	)
	fn(c, w, agent, target)
	return true
}

// destroy removes e through gameplay and queues its destroy cue. Level
// teardown destroys directly and stays silent.
func destroy(w *ecs.World, e ecs.Entity) bool {
	if !ecs.IsAlive(w, e) {
		return false
	}
	if cue, ok := ecs.Get(w, e, component.AudioCueComponent.Kind()); ok && cue.Destroy != "" {
		w.Events().Push(ecs.Event{Type: ecs.EventDestroyed, Data: ecs.DestroyedEvent{Entity: e, Cue: cue.Destroy}})
	}
	return ecs.DestroyEntity(w, e)
}

func playerStats(w *ecs.World, player ecs.Entity) (*component.Stats, bool) {
	return ecs.Get(w, player, component.StatsComponent.Kind())
}

func ignore(*CollisionSystem, *ecs.World, ecs.Entity, ecs.Entity) {}

// collectArmor only takes the armor when there is room for it.
func collectArmor(c *CollisionSystem, w *ecs.World, player, armor ecs.Entity) {
	st, ok := playerStats(w, player)
	if !ok {
		return
	}
	if c.state.GrantArmor(st, pickupAmount(w, armor)) {
		destroy(w, armor)
	}
}

func collectPotion(c *CollisionSystem, w *ecs.World, player, potion ecs.Entity) {
	st, ok := playerStats(w, player)
	if !ok {
		return
	}
	c.state.HealPlayer(st, pickupAmount(w, potion))
	destroy(w, potion)
}

func collectGun(c *CollisionSystem, w *ecs.World, player, gun ecs.Entity) {
	st, ok := playerStats(w, player)
	if !ok {
		return
	}
	c.state.GrantWeapon(st)
	if p, ok := ecs.Get(w, player, component.PlayerComponent.Kind()); ok {
		p.Pose = component.PoseGun
	}
	destroy(w, gun)
}

// collectKey completes the level regardless of the enemy counters.
func collectKey(c *CollisionSystem, w *ecs.World, _, key ecs.Entity) {
	c.state.CompleteLevel()
	destroy(w, key)
}

// enterDoorway does nothing until the level is complete. A complete level's
// doorway is consumed even when nothing follows it.
func enterDoorway(c *CollisionSystem, w *ecs.World, _, doorway ecs.Entity) {
	if !c.state.IsComplete() {
		return
	}
	if err := c.lifecycle.RequestAdvance(); err != nil {
		if errors.Is(err, game.ErrTerminal) {
			return
		}
		c.log.Debug("doorway without a next level", zap.Stringer("level", c.lifecycle.Current()), zap.Error(err))
	}
	destroy(w, doorway)
}

func enterDiamond(c *CollisionSystem, w *ecs.World, _, diamond ecs.Entity) {
	if err := c.lifecycle.RequestWin(); err != nil {
		return
	}
	destroy(w, diamond)
}

// enemyHit lets armor soak the hit before health. The dead player is kept so
// its stats stay readable; it just stops colliding and taking input.
func enemyHit(c *CollisionSystem, w *ecs.World, player, _ ecs.Entity) {
	st, ok := playerStats(w, player)
	if !ok {
		return
	}
	if !c.state.HitPlayer(st) {
		return
	}
	if cue, ok := ecs.Get(w, player, component.AudioCueComponent.Kind()); ok && cue.Destroy != "" {
		w.Events().Push(ecs.Event{Type: ecs.EventDestroyed, Data: ecs.DestroyedEvent{Entity: player, Cue: cue.Destroy}})
	}
	ecs.Remove(w, player, component.PhysicsBodyComponent.Kind())
	ecs.Remove(w, player, component.IntentsComponent.Kind())
	c.log.Info("player died", zap.Stringer("level", c.lifecycle.Current()))
}

// bulletHit always spends the bullet. Enemies take damage and are removed,
// and counted, only on the hit that kills them.
func bulletHit(c *CollisionSystem, w *ecs.World, bullet, target ecs.Entity) {
	damage := 1
	if b, ok := ecs.Get(w, bullet, component.BulletComponent.Kind()); ok && b.Damage > 0 {
		damage = b.Damage
	}
	destroy(w, bullet)

	kind := entity.KindOf(w, target)
	if !kind.IsEnemy() {
		return
	}
	enemy, ok := ecs.Get(w, target, component.EnemyComponent.Kind())
	if !ok {
		return
	}
	enemy.TakeDamage(damage)
	if enemy.IsAlive() {
		return
	}
	destroy(w, target)
	c.state.DecrementEnemy(kind)
}

func pickupAmount(w *ecs.World, e ecs.Entity) int {
	if p, ok := ecs.Get(w, e, component.PickupComponent.Kind()); ok && p.Amount > 0 {
		return p.Amount
	}
	return 1
}
