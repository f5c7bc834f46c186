package system

import (
	"fmt"
	"sort"

	"github.com/yohamta/donburi"
	"go.uber.org/zap"

	"github.com/younwookim/brawl/internal/domain/move"
	"github.com/younwookim/brawl/internal/ecs"
	"github.com/younwookim/brawl/internal/infrastructure/config"
)

// Binding is the move request an action code stands for.
type Binding struct {
	Move  move.ID
	Input move.InputKind
}

// ResolveBindings turns the configured action table into bindings.
func ResolveBindings(cfg map[string]config.BindingConfig) (map[string]Binding, error) {
	out := make(map[string]Binding, len(cfg))
	for action, b := range cfg {
		id, in, err := b.Resolve()
		if err != nil {
			return nil, fmt.Errorf("binding %q: %w", action, err)
		}
		out[action] = Binding{Move: id, Input: in}
	}
	return out, nil
}

// TickReport summarizes what a tick did, for the scene's feedback.
type TickReport struct {
	Contacts []ecs.Contact
}

// CombatSystem runs the arena tick pipeline over an ecs.World
type CombatSystem struct {
	world    *ecs.World
	bindings map[string]Binding
	log      *zap.Logger
	ticks    int

	// Event callbacks
	OnHit func(ct ecs.Contact)
}

// NewCombatSystem creates a new combat system
func NewCombatSystem(w *ecs.World, bindings map[string]Binding) *CombatSystem {
	return &CombatSystem{
		world:    w,
		bindings: bindings,
		log:      w.Log.Named("combat"),
	}
}

// World returns the simulated world
func (s *CombatSystem) World() *ecs.World { return s.world }

// Ticks returns how many ticks have run
func (s *CombatSystem) Ticks() int { return s.ticks }

// Tick advances the arena by dt. The steps run in a fixed order; each one
// sees the results of the previous.
func (s *CombatSystem) Tick(dt float64, intents []Intent) TickReport {
	w := s.world

	ecs.RefreshTransforms(w)
	s.applyIntents(intents)
	ecs.UpdateTargeting(w)
	ecs.UpdateDecisions(w)
	ecs.UpdateLocomotion(w, dt)
	ecs.HandleMoveRequests(w)
	ecs.HandleRage(w)
	ecs.AdvanceMoves(w, dt)
	contacts := ecs.ResolveCollisions(w)
	ecs.UpdateKnockbackTimers(w, dt)
	ecs.UpdateStuns(w, dt)
	ecs.UpdateFacing(w, dt)

	if s.OnHit != nil {
		for _, ct := range contacts {
			s.OnHit(ct)
		}
	}
	s.ticks++
	return TickReport{Contacts: contacts}
}

// applyIntents steers players and queues their move requests. Step 1.
func (s *CombatSystem) applyIntents(intents []Intent) {
	ecs.ResetPlayerSteering(s.world)
	for _, intent := range intents {
		switch i := intent.(type) {
		case MoveIntent:
			ecs.Steer(s.world, i.Actor, i.Direction)
		case ActionIntent:
			s.requestAction(i)
		}
	}
}

func (s *CombatSystem) requestAction(i ActionIntent) {
	if i.Action == ActionRage {
		ecs.RageEvents.Publish(s.world.World, ecs.BerserkerToggle{Actor: i.Actor})
		return
	}
	b, ok := s.bindings[i.Action]
	if !ok {
		s.log.Warn("unbound action", zap.String("action", i.Action))
		return
	}
	weapon, ok := s.world.Refs.Weapon(i.Actor)
	if !ok {
		s.log.Warn("action for actor without weapon",
			zap.Uint64("actor", uint64(i.Actor)),
			zap.String("action", i.Action))
		return
	}
	ecs.MoveRequests.Publish(s.world.World, ecs.ExecuteMove{Weapon: weapon, Move: b.Move, Input: b.Input})
}

// Actions lists the bound action codes in sorted order.
func (s *CombatSystem) Actions() []string {
	out := make([]string, 0, len(s.bindings))
	for a := range s.bindings {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// Alive reports whether an actor is still in the world.
func (s *CombatSystem) Alive(actor donburi.Entity) bool {
	return s.world.Valid(actor)
}
