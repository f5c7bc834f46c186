package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/younwookim/brawl/internal/domain/combat"
	"github.com/younwookim/brawl/internal/domain/move"
)

// PhaseKind is the phase a move entered.
type PhaseKind int

const (
	EnteredActive PhaseKind = iota
	EnteredRecovery
)

func (k PhaseKind) String() string {
	if k == EnteredActive {
		return "active"
	}
	return "recovery"
}

// PhaseEvent is published when a move enters Active or Recovery. Both
// kinds share one event type so consumers see them in publish order.
type PhaseEvent struct {
	Kind   PhaseKind
	Actor  donburi.Entity
	Weapon donburi.Entity
	Move   move.ID
}

// ExecuteMove asks the weapon's state machine to run a move.
type ExecuteMove struct {
	Weapon donburi.Entity
	Move   move.ID
	Input  move.InputKind
}

// HpChangeKind classifies a health change.
type HpChangeKind int

const (
	HpDamage HpChangeKind = iota
	HpCritical
	HpHeal
)

func (k HpChangeKind) String() string {
	switch k {
	case HpDamage:
		return "damage"
	case HpCritical:
		return "critical"
	default:
		return "heal"
	}
}

// HpChange is published by the collision resolver after health changes.
type HpChange struct {
	Entity donburi.Entity
	Source donburi.Entity
	Old    int
	New    int
	Max    int
	Kind   HpChangeKind
	Type   combat.DamageType
}

// Died reports whether this change took the entity to zero.
func (c HpChange) Died() bool { return c.Old > 0 && c.New <= 0 }

// BerserkerToggle flips an actor's rage.
type BerserkerToggle struct {
	Actor donburi.Entity
}

// Outbox event types. Subscriptions live in each donburi world, so one
// set of types serves every World.
var (
	MoveRequests = events.NewEventType[ExecuteMove]()
	PhaseEvents  = events.NewEventType[PhaseEvent]()
	HpEvents     = events.NewEventType[HpChange]()
	RageEvents   = events.NewEventType[BerserkerToggle]()
)
