package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/component"
	"go.uber.org/zap"

	"github.com/younwookim/brawl/internal/domain/ai"
	"github.com/younwookim/brawl/internal/domain/combat"
	"github.com/younwookim/brawl/internal/domain/geom"
)

// WeaponSpec describes a weapon and its hit-collider.
type WeaponSpec struct {
	Rest           geom.Transform // relative to the actor
	ColliderRadius float64
	ColliderOffset geom.Vec2 // relative to the weapon
	Damage         combat.Damage
}

// ActorSpec describes a combatant to spawn.
type ActorSpec struct {
	Position   geom.Vec2
	Rotation   float64
	Faction    ai.Faction
	Health     int
	Speed      float64
	BodyRadius float64
	Detector   ai.TargetDetector
	Weapon     WeaponSpec
	Lifesteal  bool
}

// SpawnPlayer creates the input-driven combatant.
func SpawnPlayer(w *World, spec ActorSpec, turnSpeed float64) donburi.Entity {
	actor := spawnCombatant(w, spec, PlayerComponent)
	PlayerComponent.SetValue(w.Entry(actor), PlayerControl{TurnSpeed: turnSpeed})
	w.Log.Info("spawned player", entityField("actor", actor))
	return actor
}

// SpawnAI creates an AI combatant with its own decision loop.
func SpawnAI(w *World, spec ActorSpec, ctl AIControl) donburi.Entity {
	actor := spawnCombatant(w, spec, AIComponent)
	AIComponent.SetValue(w.Entry(actor), ctl)
	w.Log.Info("spawned unit",
		entityField("actor", actor),
		zap.String("unit", ctl.Unit),
		zap.Stringer("faction", spec.Faction))
	return actor
}

// spawnCombatant assembles actor, weapon, collider and trail, and binds
// them in the cross-reference map.
func spawnCombatant(w *World, spec ActorSpec, control component.IComponentType) donburi.Entity {
	actor := w.Create(
		TransformComponent,
		VelocityComponent,
		FactionComponent,
		HealthComponent,
		BodyComponent,
		LocomotionComponent,
		TargetComponent,
		control,
	)
	ae := w.Entry(actor)
	TransformComponent.SetValue(ae, geom.Transform{Position: spec.Position, Rotation: spec.Rotation})
	FactionComponent.SetValue(ae, spec.Faction)
	HealthComponent.SetValue(ae, combat.NewHealth(spec.Health))
	BodyComponent.SetValue(ae, Body{Radius: spec.BodyRadius})
	LocomotionComponent.SetValue(ae, Locomotion{Speed: spec.Speed})
	TargetComponent.SetValue(ae, spec.Detector)
	if spec.Lifesteal {
		donburi.Add(ae, BerserkerComponent, &Berserker{})
	}

	weapon := w.Create(WeaponPoseComponent)
	WeaponPoseComponent.SetValue(w.Entry(weapon), WeaponPose{Rest: spec.Weapon.Rest, Current: spec.Weapon.Rest})

	collider := w.Create(ColliderComponent, DamageComponent, KnockbackComponent)
	ce := w.Entry(collider)
	ColliderComponent.SetValue(ce, HitCollider{
		Radius: spec.Weapon.ColliderRadius,
		Offset: spec.Weapon.ColliderOffset,
		Hit:    make(map[donburi.Entity]struct{}),
	})
	dmg := spec.Weapon.Damage
	dmg.Source = uint64(actor)
	DamageComponent.SetValue(ce, dmg)

	trail := w.Create(TrailComponent)

	w.Refs.BindWeapon(actor, weapon)
	w.Refs.BindCollider(weapon, collider)
	w.Refs.BindTrail(actor, trail)
	w.Refs.transforms[actor] = TransformComponent.GetValue(ae)
	return actor
}
