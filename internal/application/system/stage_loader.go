package system

import (
	"fmt"

	"github.com/yohamta/donburi"
	"go.uber.org/zap"

	"github.com/younwookim/brawl/internal/domain/ai"
	"github.com/younwookim/brawl/internal/domain/combat"
	"github.com/younwookim/brawl/internal/domain/geom"
	"github.com/younwookim/brawl/internal/ecs"
	"github.com/younwookim/brawl/internal/infrastructure/config"
)

// Arena is a populated world ready to tick
type Arena struct {
	Combat *CombatSystem
	Player donburi.Entity
	Units  []donburi.Entity
}

// TunablesFrom converts the arena's combat and physics settings.
func TunablesFrom(cfg *config.ArenaConfig) ecs.Tunables {
	return ecs.Tunables{
		Critical: combat.Critical{
			BaseRate:   cfg.Combat.CritBaseRate,
			Multiplier: cfg.Combat.CritMultiplier,
		},
		HitStun:          cfg.Combat.HitStun,
		KnockbackDamping: cfg.Combat.KnockbackDamping,
		LinearDamping:    cfg.Physics.LinearDamping,
		AttackSlowdown:   cfg.Combat.AttackSlowdown,
		Width:            cfg.Layout.Width,
		Height:           cfg.Layout.Height,
	}
}

// LoadArena builds a world from config and spawns the player and every
// configured unit. The same config and seed always produce the same
// entities in the same order.
func LoadArena(cfg *config.GameConfig, log *zap.Logger, seed int64) (*Arena, error) {
	tun := TunablesFrom(cfg.Arena)
	w, err := ecs.NewWorld(ecs.Options{Logger: log, Seed: seed, Tunables: &tun})
	if err != nil {
		return nil, err
	}
	bindings, err := ResolveBindings(cfg.Arena.Bindings)
	if err != nil {
		return nil, err
	}
	registry, err := cfg.Units.Registry()
	if err != nil {
		return nil, err
	}

	spawn := cfg.Arena.Layout.Player
	spec, err := actorSpec(cfg.Arena.Player, geom.V(spawn.X, spawn.Y), 0)
	if err != nil {
		return nil, fmt.Errorf("player: %w", err)
	}
	arena := &Arena{
		Combat: NewCombatSystem(w, bindings),
		Player: ecs.SpawnPlayer(w, spec, cfg.Arena.Player.TurnSpeed),
	}

	for _, s := range cfg.Arena.Layout.Units {
		unit, ok := cfg.Units.Units[s.Unit]
		if !ok {
			return nil, fmt.Errorf("spawn of unknown unit %q: %w", s.Unit, config.ErrInvalidConfig)
		}
		spec, err := actorSpec(unit.CombatantConfig, geom.V(s.X, s.Y), s.Rotation)
		if err != nil {
			return nil, fmt.Errorf("unit %q: %w", s.Unit, err)
		}
		loop, err := registry.Loop(s.Unit)
		if err != nil {
			return nil, err
		}
		arena.Units = append(arena.Units, ecs.SpawnAI(w, spec, ecs.AIControl{
			Unit:      s.Unit,
			Loop:      loop,
			StopChase: unit.StopChase,
			TurnSpeed: unit.TurnSpeed,
		}))
	}
	return arena, nil
}

func actorSpec(c config.CombatantConfig, pos geom.Vec2, rotation float64) (ecs.ActorSpec, error) {
	faction, err := ai.ParseFaction(c.Faction)
	if err != nil {
		return ecs.ActorSpec{}, err
	}
	lock, err := ai.ParseLockPolicy(c.Lock)
	if err != nil {
		return ecs.ActorSpec{}, err
	}
	det, err := ai.NewTargetDetector(c.AlertRadius, c.DisengageRadius, lock)
	if err != nil {
		return ecs.ActorSpec{}, err
	}
	dt, err := combat.ParseDamageType(c.Weapon.DamageType)
	if err != nil {
		return ecs.ActorSpec{}, err
	}
	rest := c.Weapon.Rest
	return ecs.ActorSpec{
		Position:   pos,
		Rotation:   rotation,
		Faction:    faction,
		Health:     c.Health,
		Speed:      c.Speed,
		BodyRadius: c.BodyRadius,
		Detector:   det,
		Lifesteal:  c.Lifesteal,
		Weapon: ecs.WeaponSpec{
			Rest:           geom.Transform{Position: geom.V(rest.X, rest.Y), Rotation: rest.Rotation},
			ColliderRadius: c.Weapon.ColliderRadius,
			ColliderOffset: geom.V(c.Weapon.ColliderOffset.X, c.Weapon.ColliderOffset.Y),
			Damage:         combat.Damage{Amount: c.Weapon.Damage, Type: dt},
		},
	}, nil
}
