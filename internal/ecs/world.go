package ecs

import (
	"math/rand"
	"sort"

	"github.com/yohamta/donburi"
	"go.uber.org/zap"

	"github.com/younwookim/brawl/internal/domain/ai"
	"github.com/younwookim/brawl/internal/domain/animation"
	"github.com/younwookim/brawl/internal/domain/combat"
	"github.com/younwookim/brawl/internal/domain/move"
)

// Tunables are the arena-wide combat constants.
type Tunables struct {
	Critical         combat.Critical
	HitStun          float64 // seconds
	KnockbackDamping float64 // velocity factor applied once on knockback expiry
	LinearDamping    float64 // fraction of velocity lost per second
	AttackSlowdown   float64 // speed factor while a move is Active
	Width, Height    float64 // arena bounds, zero = unbounded
}

// DefaultTunables returns the stock arena constants.
func DefaultTunables() Tunables {
	return Tunables{
		Critical:         combat.Critical{BaseRate: 0.05, Multiplier: 1.5},
		HitStun:          0.25,
		KnockbackDamping: combat.DefaultDamping,
		LinearDamping:    4,
		AttackSlowdown:   0.5,
	}
}

// Options configures NewWorld. Zero fields get defaults.
type Options struct {
	Catalog  *move.Catalog
	Curves   *animation.Set
	Logger   *zap.Logger
	Seed     int64
	Tunables *Tunables
}

// World is the combat simulation state: the donburi entity store plus the
// services every pipeline step reads.
type World struct {
	donburi.World

	Catalog  *move.Catalog
	Curves   *animation.Set
	Refs     *CrossRef
	Log      *zap.Logger
	RNG      *rand.Rand
	Tunables Tunables
}

// NewWorld creates an empty world and registers the outbox consumers in
// their fixed order.
func NewWorld(opts Options) (*World, error) {
	w := &World{
		World:    donburi.NewWorld(),
		Catalog:  opts.Catalog,
		Curves:   opts.Curves,
		Refs:     NewCrossRef(),
		Log:      opts.Logger,
		RNG:      rand.New(rand.NewSource(opts.Seed)),
		Tunables: DefaultTunables(),
	}
	if w.Catalog == nil {
		c, err := move.DefaultCatalog()
		if err != nil {
			return nil, err
		}
		w.Catalog = c
	}
	if w.Curves == nil {
		w.Curves = animation.DefaultSet()
	}
	if w.Log == nil {
		w.Log = zap.NewNop()
	}
	if opts.Tunables != nil {
		w.Tunables = *opts.Tunables
	}

	MoveRequests.Subscribe(w.World, func(_ donburi.World, req ExecuteMove) { w.handleMoveRequest(req) })

	// Collider first so it is enabled before the collision pass.
	PhaseEvents.Subscribe(w.World, func(_ donburi.World, e PhaseEvent) { w.onPhaseCollider(e) })
	PhaseEvents.Subscribe(w.World, func(_ donburi.World, e PhaseEvent) { w.onPhaseTrail(e) })
	PhaseEvents.Subscribe(w.World, func(_ donburi.World, e PhaseEvent) {
		w.Log.Debug("move phase",
			zap.Stringer("phase", e.Kind),
			entityField("actor", e.Actor),
			zap.Stringer("move", e.Move))
	})

	// Lifesteal runs after death handling so it sees the outcome.
	HpEvents.Subscribe(w.World, func(_ donburi.World, c HpChange) { w.onDeath(c) })
	HpEvents.Subscribe(w.World, func(_ donburi.World, c HpChange) { w.onLifesteal(c) })

	RageEvents.Subscribe(w.World, func(_ donburi.World, e BerserkerToggle) { w.onRage(e) })

	return w, nil
}

// entry returns a live entry or nil.
func (w *World) entry(e donburi.Entity) *donburi.Entry {
	if !w.Valid(e) {
		return nil
	}
	return w.Entry(e)
}

// sortedEntries runs q and returns the matches ordered by entity.
func sortedEntries(w *World, q interface {
	Each(donburi.World, func(*donburi.Entry))
}) []*donburi.Entry {
	var entries []*donburi.Entry
	q.Each(w.World, func(e *donburi.Entry) {
		entries = append(entries, e)
	})
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Entity() < entries[j].Entity()
	})
	return entries
}

// Stunned reports whether an actor is under hit-stun.
func (w *World) Stunned(actor donburi.Entity) bool {
	e := w.entry(actor)
	return e != nil && e.HasComponent(StunComponent)
}

// Busy reports whether an actor's weapon is executing a move.
func (w *World) Busy(actor donburi.Entity) bool {
	weapon, ok := w.Refs.Weapon(actor)
	if !ok {
		return false
	}
	e := w.entry(weapon)
	return e != nil && e.HasComponent(ExecutingComponent)
}

// CountFaction returns the living actors of a faction.
func (w *World) CountFaction(f ai.Faction) int {
	n := 0
	actors.Each(w.World, func(e *donburi.Entry) {
		if *FactionComponent.Get(e) == f && !HealthComponent.Get(e).Dead() {
			n++
		}
	})
	return n
}

func entityField(key string, e donburi.Entity) zap.Field {
	return zap.Uint64(key, uint64(e))
}
