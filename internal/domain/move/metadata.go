// Package move defines combat moves: the closed set of move identifiers,
// their immutable tuning (Metadata), the Catalog that validates and serves
// them, and the per-weapon execution state machine (State).
package move

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by catalog construction and lookup.
var (
	ErrMoveNotFound     = errors.New("move not found")
	ErrInvalidDuration  = errors.New("invalid move duration")
	ErrUnknownSuccessor = errors.New("unknown successor move")
	ErrDuplicateName    = errors.New("duplicate move name")
)

// KnockbackDurationFactor converts a knockback force into the time the
// struck target stays in knockback (force 800 lasts 2.25s).
const KnockbackDurationFactor = 2.25 / 800.0

// Category determines how the weapon travels during the move.
type Category int

const (
	CategorySwing Category = iota
	CategoryThrust
	CategoryInterrupt
)

func (c Category) String() string {
	switch c {
	case CategorySwing:
		return "Swing"
	case CategoryThrust:
		return "Thrust"
	case CategoryInterrupt:
		return "Interrupt"
	default:
		return "Unknown"
	}
}

// InputKind is the abstract input attached to a move request.
type InputKind int

const (
	// InputNone is never sent by a request; a move accepting InputNone
	// cannot be chained into.
	InputNone InputKind = iota
	InputAttack
	// InputInterrupt preempts whatever the weapon is executing.
	InputInterrupt
)

func (k InputKind) String() string {
	switch k {
	case InputNone:
		return "None"
	case InputAttack:
		return "Attack"
	case InputInterrupt:
		return "Interrupt"
	default:
		return "Unknown"
	}
}

// ParseInputKind maps a config token to an InputKind.
func ParseInputKind(s string) (InputKind, error) {
	switch s {
	case "none", "None":
		return InputNone, nil
	case "attack", "Attack":
		return InputAttack, nil
	case "interrupt", "Interrupt":
		return InputInterrupt, nil
	}
	return InputNone, fmt.Errorf("unknown input kind %q", s)
}

// Metadata is the immutable definition of a move. It is passed and stored
// by value, so every State owns its own copy.
type Metadata struct {
	ID     ID
	Name   string
	Radius float64 // curve parameter handed to the animation collaborator

	StartupTime  float64 // seconds
	ActiveTime   float64 // seconds, > 0
	RecoveryTime float64 // seconds

	Category    Category
	AcceptInput InputKind // input that may queue Next while this move runs
	Next        ID        // successor, None when the move does not chain

	KnockbackForce float64
	CriticalRate   float64 // added to the base critical chance
	BestRangeMin   float64 // AI holds position inside this distance
	MoveSpeed      float64 // actor speed while the move executes
}

// TotalDuration is startup + active + recovery.
func (m Metadata) TotalDuration() float64 {
	return m.StartupTime + m.ActiveTime + m.RecoveryTime
}

// KnockbackDuration is how long a target struck by this move is pushed.
func (m Metadata) KnockbackDuration() float64 {
	return m.KnockbackForce * KnockbackDurationFactor
}

// HasNext reports whether the move declares a successor.
func (m Metadata) HasNext() bool { return m.Next != None }

// Validate checks the per-move invariants.
func (m Metadata) Validate() error {
	if m.StartupTime < 0 || m.RecoveryTime < 0 {
		return fmt.Errorf("%s: negative phase duration: %w", m.Name, ErrInvalidDuration)
	}
	if m.ActiveTime <= 0 {
		return fmt.Errorf("%s: active time must be positive: %w", m.Name, ErrInvalidDuration)
	}
	return nil
}
