package config

import (
	"errors"
	"fmt"

	"github.com/younwookim/brawl/internal/domain/ai"
	"github.com/younwookim/brawl/internal/domain/combat"
	"github.com/younwookim/brawl/internal/domain/move"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// ArenaConfig is the root config for arena.yaml
type ArenaConfig struct {
	Display  DisplayConfig            `yaml:"display"`
	Physics  PhysicsConfig            `yaml:"physics"`
	Combat   CombatConfig             `yaml:"combat"`
	Feedback FeedbackConfig           `yaml:"feedback"`
	Player   CombatantConfig          `yaml:"player"`
	Bindings map[string]BindingConfig `yaml:"bindings"`
	Layout   LayoutConfig             `yaml:"layout"`
}

type DisplayConfig struct {
	ScreenWidth  int `yaml:"screenWidth"`
	ScreenHeight int `yaml:"screenHeight"`
	Scale        int `yaml:"scale"`
	Framerate    int `yaml:"framerate"`
}

type PhysicsConfig struct {
	LinearDamping float64 `yaml:"linearDamping"` // fraction of velocity lost per second
}

type CombatConfig struct {
	CritBaseRate     float64 `yaml:"critBaseRate"`
	CritMultiplier   float64 `yaml:"critMultiplier"`
	HitStun          float64 `yaml:"hitStun"`          // seconds
	KnockbackDamping float64 `yaml:"knockbackDamping"` // applied once on expiry
	AttackSlowdown   float64 `yaml:"attackSlowdown"`
}

type FeedbackConfig struct {
	HitstopFrames  int     `yaml:"hitstopFrames"`
	ShakeIntensity float64 `yaml:"shakeIntensity"` // pixels
	ShakeDecay     float64 `yaml:"shakeDecay"`     // per frame
}

// CombatantConfig is shared by the player and unit types.
type CombatantConfig struct {
	Faction         string       `yaml:"faction"`
	Health          int          `yaml:"health"`
	Speed           float64      `yaml:"speed"`
	TurnSpeed       float64      `yaml:"turnSpeed"` // radians/sec
	BodyRadius      float64      `yaml:"bodyRadius"`
	AlertRadius     float64      `yaml:"alertRadius"`
	DisengageRadius float64      `yaml:"disengageRadius"`
	Lock            string       `yaml:"lock"`
	Lifesteal       bool         `yaml:"lifesteal"` // heal by the damage dealt
	Weapon          WeaponConfig `yaml:"weapon"`
}

type WeaponConfig struct {
	Rest           TransformConfig `yaml:"rest"`
	ColliderRadius float64         `yaml:"colliderRadius"`
	ColliderOffset PointConfig     `yaml:"colliderOffset"`
	Damage         int             `yaml:"damage"`
	DamageType     string          `yaml:"damageType"`
}

type PointConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type TransformConfig struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"` // radians
}

// BindingConfig maps an action code to a move request.
type BindingConfig struct {
	Move  string `yaml:"move"`
	Input string `yaml:"input"`
}

// Resolve turns the binding into a move and input kind.
func (b BindingConfig) Resolve() (move.ID, move.InputKind, error) {
	id, err := move.ParseID(b.Move)
	if err != nil {
		return move.None, move.InputNone, err
	}
	in, err := move.ParseInputKind(b.Input)
	if err != nil {
		return move.None, move.InputNone, err
	}
	if in == move.InputNone {
		return move.None, move.InputNone, fmt.Errorf("binding for %s: input none can never start or chain a move", b.Move)
	}
	return id, in, nil
}

// Validate checks the fields shared by every combatant.
func (c CombatantConfig) Validate() error {
	if c.Health <= 0 {
		return fmt.Errorf("health %d must be positive", c.Health)
	}
	if _, err := ai.ParseFaction(c.Faction); err != nil {
		return err
	}
	if _, err := ai.ParseLockPolicy(c.Lock); err != nil {
		return err
	}
	if _, err := ai.NewTargetDetector(c.AlertRadius, c.DisengageRadius, ai.Free); err != nil {
		return err
	}
	if _, err := combat.ParseDamageType(c.Weapon.DamageType); err != nil {
		return err
	}
	return nil
}

// Validate checks arena.yaml.
func (c *ArenaConfig) Validate() error {
	if err := c.Player.Validate(); err != nil {
		return fmt.Errorf("player: %w: %w", ErrInvalidConfig, err)
	}
	for action, b := range c.Bindings {
		if _, _, err := b.Resolve(); err != nil {
			return fmt.Errorf("binding %q: %w: %w", action, ErrInvalidConfig, err)
		}
	}
	if c.Display.Framerate <= 0 {
		return fmt.Errorf("framerate %d: %w", c.Display.Framerate, ErrInvalidConfig)
	}
	return nil
}
