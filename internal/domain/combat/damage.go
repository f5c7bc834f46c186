// Package combat holds the value types exchanged when a weapon connects:
// damage descriptors, critical rolls, knockback impulses and their decay,
// health and hit-stun.
package combat

import (
	"fmt"
	"math"
	"math/rand"
)

// DamageType is the category of a damage descriptor.
type DamageType int

const (
	Physical DamageType = iota
	Magical
	Fire
	Ice
	Lightning
	Poison
	Holy
	Dark
)

var damageTypeNames = [...]string{
	Physical:  "physical",
	Magical:   "magical",
	Fire:      "fire",
	Ice:       "ice",
	Lightning: "lightning",
	Poison:    "poison",
	Holy:      "holy",
	Dark:      "dark",
}

func (t DamageType) String() string {
	if t < 0 || int(t) >= len(damageTypeNames) {
		return fmt.Sprintf("damage(%d)", int(t))
	}
	return damageTypeNames[t]
}

// ParseDamageType maps a config token to a DamageType. Empty means physical.
func ParseDamageType(s string) (DamageType, error) {
	if s == "" {
		return Physical, nil
	}
	for i, name := range damageTypeNames {
		if name == s {
			return DamageType(i), nil
		}
	}
	return Physical, fmt.Errorf("unknown damage type %q", s)
}

// Damage is attached to a hit-collider. It is read at collision time and
// never mutated by the resolver.
type Damage struct {
	Amount int
	Type   DamageType
	Source uint64 // entity of the actor that deals it, set at assembly
}

// Critical holds the arena-wide critical hit tunables.
type Critical struct {
	BaseRate   float64 // added to the move's own rate
	Multiplier float64
}

// Hit is one resolved damage roll.
type Hit struct {
	Amount   int
	Type     DamageType
	Critical bool
}

// Roll resolves a damage descriptor against the crit table. moveRate is the
// executing move's bonus. A nil rng never crits.
func (c Critical) Roll(rng *rand.Rand, d Damage, moveRate float64) Hit {
	hit := Hit{Amount: d.Amount, Type: d.Type}
	chance := c.BaseRate + moveRate
	if rng == nil || chance <= 0 {
		return hit
	}
	if rng.Float64() < chance {
		hit.Critical = true
		hit.Amount = int(math.Round(float64(d.Amount) * c.Multiplier))
	}
	return hit
}
