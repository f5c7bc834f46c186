package move

import "fmt"

// Catalog is the read-only table of move definitions, indexed by ID.
// It is built once at startup; there is no mutation API.
type Catalog struct {
	moves   [count]Metadata
	defined [count]bool
}

// NewCatalog validates defs and builds a catalog from them. Every ID must be
// defined exactly once and every successor must resolve, so lookups of a
// valid ID never miss at runtime.
func NewCatalog(defs []Metadata) (*Catalog, error) {
	c := &Catalog{}
	for _, m := range defs {
		if !m.ID.Valid() {
			return nil, fmt.Errorf("definition %q: %v: %w", m.Name, m.ID, ErrMoveNotFound)
		}
		if c.defined[m.ID] {
			return nil, fmt.Errorf("%v: %w", m.ID, ErrDuplicateName)
		}
		if m.Name == "" {
			m.Name = m.ID.String()
		}
		if err := m.Validate(); err != nil {
			return nil, err
		}
		c.moves[m.ID] = m
		c.defined[m.ID] = true
	}

	for id := SwingLeft; id < count; id++ {
		if !c.defined[id] {
			return nil, fmt.Errorf("no definition for %v: %w", id, ErrMoveNotFound)
		}
		next := c.moves[id].Next
		if next != None && (!next.Valid() || !c.defined[next]) {
			return nil, fmt.Errorf("%v -> %v: %w", id, next, ErrUnknownSuccessor)
		}
	}
	return c, nil
}

// DefaultCatalog builds the catalog from DefaultDefinitions.
func DefaultCatalog() (*Catalog, error) {
	return NewCatalog(DefaultDefinitions())
}

// Lookup returns a copy of the metadata for id.
func (c *Catalog) Lookup(id ID) (Metadata, error) {
	if !id.Valid() || !c.defined[id] {
		return Metadata{}, fmt.Errorf("%v: %w", id, ErrMoveNotFound)
	}
	return c.moves[id], nil
}

// Len returns the number of defined moves.
func (c *Catalog) Len() int {
	n := 0
	for _, ok := range c.defined {
		if ok {
			n++
		}
	}
	return n
}

// DefaultDefinitions is the shipped move table.
func DefaultDefinitions() []Metadata {
	return []Metadata{
		{
			ID:             SwingLeft,
			Radius:         130,
			StartupTime:    0.15,
			ActiveTime:     0.15,
			RecoveryTime:   0.35,
			Category:       CategorySwing,
			AcceptInput:    InputAttack,
			Next:           SwingRight,
			KnockbackForce: 800,
			CriticalRate:   0.05,
			BestRangeMin:   60,
			MoveSpeed:      120,
		},
		{
			ID:             SwingRight,
			Radius:         130,
			StartupTime:    0.15,
			ActiveTime:     0.15,
			RecoveryTime:   0.35,
			Category:       CategorySwing,
			AcceptInput:    InputNone,
			Next:           None,
			KnockbackForce: 900,
			CriticalRate:   0.10,
			BestRangeMin:   60,
			MoveSpeed:      120,
		},
		{
			ID:             Stub,
			Radius:         160,
			StartupTime:    0.10,
			ActiveTime:     0.12,
			RecoveryTime:   0.30,
			Category:       CategoryThrust,
			AcceptInput:    InputAttack,
			Next:           SwingLeft,
			KnockbackForce: 600,
			CriticalRate:   0.15,
			BestRangeMin:   100,
			MoveSpeed:      200,
		},
		{
			ID:             Parry,
			Radius:         60,
			StartupTime:    0.05,
			ActiveTime:     0.20,
			RecoveryTime:   0.25,
			Category:       CategoryInterrupt,
			AcceptInput:    InputNone,
			Next:           None,
			KnockbackForce: 1200,
			CriticalRate:   0,
			BestRangeMin:   0,
			MoveSpeed:      0,
		},
		{
			ID:             HeavySlam,
			Radius:         150,
			StartupTime:    0.40,
			ActiveTime:     0.20,
			RecoveryTime:   0.60,
			Category:       CategorySwing,
			AcceptInput:    InputNone,
			Next:           None,
			KnockbackForce: 1500,
			CriticalRate:   0.20,
			BestRangeMin:   80,
			MoveSpeed:      40,
		},
	}
}
