// Package ai holds the per-combatant decision making: faction-aware target
// detection with an engage/disengage band, and the range-gated move cycle
// that picks what an AI combatant does next.
package ai

import (
	"errors"
	"fmt"
	"math"

	"github.com/younwookim/brawl/internal/domain/geom"
)

var (
	ErrInvalidRadii  = errors.New("disengage radius must be >= alert radius")
	ErrEmptyOptions  = errors.New("decision loop needs at least one option")
	ErrUnknownUnit   = errors.New("unknown unit type")
	ErrInvalidOption = errors.New("invalid decision option")
)

// EntityID identifies a combatant. NoTarget is the "none" sentinel.
type EntityID uint64

const NoTarget EntityID = 0

// Faction is an allegiance tag. Equal factions are allies.
type Faction int

const (
	FactionNeutral Faction = iota
	FactionPlayer
	FactionMonster
)

func (f Faction) String() string {
	switch f {
	case FactionNeutral:
		return "neutral"
	case FactionPlayer:
		return "player"
	case FactionMonster:
		return "monster"
	default:
		return fmt.Sprintf("faction(%d)", int(f))
	}
}

// ParseFaction maps a config token to a Faction.
func ParseFaction(s string) (Faction, error) {
	switch s {
	case "neutral":
		return FactionNeutral, nil
	case "player":
		return FactionPlayer, nil
	case "monster":
		return FactionMonster, nil
	}
	return FactionNeutral, fmt.Errorf("unknown faction %q", s)
}

// LockPolicy controls whether the owner is forced to face its target.
type LockPolicy int

const (
	Free LockPolicy = iota
	Locked
)

// ParseLockPolicy maps a config token to a LockPolicy.
func ParseLockPolicy(s string) (LockPolicy, error) {
	switch s {
	case "free", "":
		return Free, nil
	case "locked":
		return Locked, nil
	}
	return Free, fmt.Errorf("unknown lock policy %q", s)
}

// TargetDetector tracks one combatant's current target.
type TargetDetector struct {
	Target          EntityID
	AlertRadius     float64 // acquire inside this distance
	DisengageRadius float64 // drop beyond this distance, >= AlertRadius
	Lock            LockPolicy
}

// NewTargetDetector returns a detector with no target.
func NewTargetDetector(alert, disengage float64, lock LockPolicy) (TargetDetector, error) {
	if alert < 0 || disengage < alert {
		return TargetDetector{}, fmt.Errorf("alert=%v disengage=%v: %w", alert, disengage, ErrInvalidRadii)
	}
	return TargetDetector{AlertRadius: alert, DisengageRadius: disengage, Lock: lock}, nil
}

// HasTarget reports whether a target is set.
func (d TargetDetector) HasTarget() bool { return d.Target != NoTarget }

// Candidate is a faction-tagged entity the detector may consider.
type Candidate struct {
	ID       EntityID
	Faction  Faction
	Position geom.Vec2
}

// TargetChange describes what a scan did to the target.
type TargetChange int

const (
	Unchanged TargetChange = iota
	Acquired
	Disengaged
	// Lost means the target is no longer a candidate at all.
	Lost
)

func (c TargetChange) String() string {
	switch c {
	case Unchanged:
		return "unchanged"
	case Acquired:
		return "acquired"
	case Disengaged:
		return "disengaged"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Scan runs one targeting pass for a detector owned by an entity at self
// with the given faction. Candidates are visited in slice order, which
// decides exact distance ties.
//
// A detector that has a target only checks it against the disengage
// radius; a closer candidate never pre-empts it. A detector without a
// target acquires the closest opposing candidate inside the alert radius.
// A target dropped by this pass is not replaced until the next pass.
func (d TargetDetector) Scan(self geom.Vec2, faction Faction, candidates []Candidate) (TargetDetector, TargetChange) {
	if d.HasTarget() {
		for _, c := range candidates {
			if c.Faction == faction || c.ID != d.Target {
				continue
			}
			if geom.Distance(self, c.Position) > d.DisengageRadius {
				d.Target = NoTarget
				return d, Disengaged
			}
			return d, Unchanged
		}
		d.Target = NoTarget
		return d, Lost
	}

	best := NoTarget
	bestDist := math.Inf(1)
	for _, c := range candidates {
		if c.Faction == faction {
			continue
		}
		dist := geom.Distance(self, c.Position)
		if dist <= d.AlertRadius && dist < bestDist {
			best = c.ID
			bestDist = dist
		}
	}
	if best == NoTarget {
		return d, Unchanged
	}
	d.Target = best
	return d, Acquired
}
