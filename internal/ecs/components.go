package ecs

import (
	"github.com/yohamta/donburi"

	"github.com/younwookim/brawl/internal/domain/ai"
	"github.com/younwookim/brawl/internal/domain/combat"
	"github.com/younwookim/brawl/internal/domain/geom"
	"github.com/younwookim/brawl/internal/domain/move"
)

// Actor components

// Velocity is in world units per second.
type Velocity struct {
	geom.Vec2
}

// Body is the circle used for hit tests against weapon colliders.
type Body struct {
	Radius float64
}

// Locomotion is the actor's walking state. Direction is the desired
// heading for this tick (zero = stand still), written by input or AI.
type Locomotion struct {
	Speed     float64
	Direction geom.Vec2
}

// PlayerControl tags the actor driven by input.
type PlayerControl struct {
	TurnSpeed float64 // radians per second
}

// AIControl is the per-actor decision state.
type AIControl struct {
	Unit      string
	Loop      ai.DecisionLoop
	StopChase float64
	TurnSpeed float64 // radians per second, zero = DefaultAITurnSpeed
}

// DefaultAITurnSpeed bounds how fast a Free AI actor turns, in radians per
// second.
const DefaultAITurnSpeed = 8.0

// Berserker heals its owner by the damage the owner deals. Raging
// suspends the lifesteal.
type Berserker struct {
	Raging bool
}

// ActiveMove marks an actor whose weapon is executing a move.
type ActiveMove struct {
	Meta move.Metadata
}

// Weapon components

// WeaponPose is the weapon transform relative to its actor.
type WeaponPose struct {
	Rest    geom.Transform
	Current geom.Transform
}

// Executing is the in-flight move on a weapon.
type Executing struct {
	State move.State
	Actor donburi.Entity
}

// Collider components

// HitCollider is a circle carried at Offset in weapon space. It hits each
// body at most once per activation.
type HitCollider struct {
	Radius  float64
	Offset  geom.Vec2
	Enabled bool
	Hit     map[donburi.Entity]struct{}
}

// Trail components

// TrailAnchor records recent weapon-tip positions while visible.
type TrailAnchor struct {
	Visible bool
	Points  []geom.Vec2
}

// TrailLength caps TrailAnchor.Points.
const TrailLength = 12

var (
	TransformComponent      = donburi.NewComponentType[geom.Transform]()
	VelocityComponent       = donburi.NewComponentType[Velocity]()
	FactionComponent        = donburi.NewComponentType[ai.Faction]()
	HealthComponent         = donburi.NewComponentType[combat.Health]()
	BodyComponent           = donburi.NewComponentType[Body]()
	LocomotionComponent     = donburi.NewComponentType[Locomotion]()
	PlayerComponent         = donburi.NewComponentType[PlayerControl]()
	AIComponent             = donburi.NewComponentType[AIControl]()
	TargetComponent         = donburi.NewComponentType[ai.TargetDetector]()
	ActiveMoveComponent     = donburi.NewComponentType[ActiveMove]()
	KnockbackTimerComponent = donburi.NewComponentType[combat.KnockbackTimer]()
	StunComponent           = donburi.NewComponentType[combat.Stun]()
	BerserkerComponent      = donburi.NewComponentType[Berserker]()

	WeaponPoseComponent = donburi.NewComponentType[WeaponPose]()
	ExecutingComponent  = donburi.NewComponentType[Executing]()

	ColliderComponent  = donburi.NewComponentType[HitCollider]()
	DamageComponent    = donburi.NewComponentType[combat.Damage]()
	KnockbackComponent = donburi.NewComponentType[combat.Knockback]()

	TrailComponent = donburi.NewComponentType[TrailAnchor]()
)
