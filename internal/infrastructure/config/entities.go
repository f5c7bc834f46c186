package config

import (
	"fmt"

	"github.com/younwookim/brawl/internal/domain/ai"
	"github.com/younwookim/brawl/internal/domain/move"
)

// UnitsConfig is the root config for units.yaml, keyed by unit type.
type UnitsConfig struct {
	Units map[string]UnitConfig `yaml:"units"`
}

// UnitConfig describes one AI unit type.
type UnitConfig struct {
	CombatantConfig `yaml:",inline"`
	StopChase       float64        `yaml:"stopChase"`
	Options         []OptionConfig `yaml:"options"`
}

// OptionConfig is one entry of a unit's decision loop, in cycle order.
type OptionConfig struct {
	Move  string  `yaml:"move"`
	Range float64 `yaml:"range"`
}

// Resolve turns the option list into decision loop options.
func (u UnitConfig) Resolve() ([]ai.Option, error) {
	opts := make([]ai.Option, 0, len(u.Options))
	for _, o := range u.Options {
		id, err := move.ParseID(o.Move)
		if err != nil {
			return nil, err
		}
		opts = append(opts, ai.Option{Move: id, Range: o.Range})
	}
	return opts, nil
}

// Validate checks units.yaml.
func (c *UnitsConfig) Validate() error {
	for name, u := range c.Units {
		if err := u.CombatantConfig.Validate(); err != nil {
			return fmt.Errorf("unit %q: %w: %w", name, ErrInvalidConfig, err)
		}
		if u.StopChase < 0 {
			return fmt.Errorf("unit %q: stopChase %v: %w", name, u.StopChase, ErrInvalidConfig)
		}
		opts, err := u.Resolve()
		if err != nil {
			return fmt.Errorf("unit %q: %w: %w", name, ErrInvalidConfig, err)
		}
		if _, err := ai.NewDecisionLoop(opts); err != nil {
			return fmt.Errorf("unit %q: %w: %w", name, ErrInvalidConfig, err)
		}
	}
	return nil
}

// Registry builds the decision-loop registry for every unit type.
func (c *UnitsConfig) Registry() (*ai.Registry, error) {
	byType := make(map[string][]ai.Option, len(c.Units))
	for name, u := range c.Units {
		opts, err := u.Resolve()
		if err != nil {
			return nil, fmt.Errorf("unit %q: %w", name, err)
		}
		byType[name] = opts
	}
	return ai.NewRegistry(byType)
}
