package ecs

import (
	"github.com/yohamta/donburi"

	"github.com/younwookim/brawl/internal/domain/geom"
)

// CrossRef binds the entities that make up one combatant: an actor, its
// weapon, the weapon's hit-collider and the trail anchor.
//
// Lifecycle: Bind* is called once per combatant by the spawn code. After
// that the maps are read-only for every pipeline step except two writers:
// RefreshTransforms (step 0, transform snapshot) and Forget (death).
// Lookups are fallible; a miss means the entity has gone and callers
// treat it as a no-op.
type CrossRef struct {
	actorWeapon    map[donburi.Entity]donburi.Entity
	weaponActor    map[donburi.Entity]donburi.Entity
	weaponCollider map[donburi.Entity]donburi.Entity
	colliderWeapon map[donburi.Entity]donburi.Entity
	actorTrail     map[donburi.Entity]donburi.Entity

	transforms map[donburi.Entity]geom.Transform
}

// NewCrossRef returns an empty map.
func NewCrossRef() *CrossRef {
	return &CrossRef{
		actorWeapon:    make(map[donburi.Entity]donburi.Entity),
		weaponActor:    make(map[donburi.Entity]donburi.Entity),
		weaponCollider: make(map[donburi.Entity]donburi.Entity),
		colliderWeapon: make(map[donburi.Entity]donburi.Entity),
		actorTrail:     make(map[donburi.Entity]donburi.Entity),
		transforms:     make(map[donburi.Entity]geom.Transform),
	}
}

func (c *CrossRef) BindWeapon(actor, weapon donburi.Entity) {
	c.actorWeapon[actor] = weapon
	c.weaponActor[weapon] = actor
}

func (c *CrossRef) BindCollider(weapon, collider donburi.Entity) {
	c.weaponCollider[weapon] = collider
	c.colliderWeapon[collider] = weapon
}

func (c *CrossRef) BindTrail(actor, trail donburi.Entity) {
	c.actorTrail[actor] = trail
}

func (c *CrossRef) Weapon(actor donburi.Entity) (donburi.Entity, bool) {
	e, ok := c.actorWeapon[actor]
	return e, ok
}

func (c *CrossRef) Actor(weapon donburi.Entity) (donburi.Entity, bool) {
	e, ok := c.weaponActor[weapon]
	return e, ok
}

func (c *CrossRef) Collider(weapon donburi.Entity) (donburi.Entity, bool) {
	e, ok := c.weaponCollider[weapon]
	return e, ok
}

// ColliderWeapon is the reverse of Collider.
func (c *CrossRef) ColliderWeapon(collider donburi.Entity) (donburi.Entity, bool) {
	e, ok := c.colliderWeapon[collider]
	return e, ok
}

func (c *CrossRef) Trail(actor donburi.Entity) (donburi.Entity, bool) {
	e, ok := c.actorTrail[actor]
	return e, ok
}

// Transform returns the snapshot taken at the start of the tick.
func (c *CrossRef) Transform(e donburi.Entity) (geom.Transform, bool) {
	t, ok := c.transforms[e]
	return t, ok
}

// Forget drops every binding that involves actor and returns the entities
// that belonged to it (weapon, collider, trail), for despawning.
func (c *CrossRef) Forget(actor donburi.Entity) []donburi.Entity {
	var owned []donburi.Entity
	if weapon, ok := c.actorWeapon[actor]; ok {
		owned = append(owned, weapon)
		if collider, ok := c.weaponCollider[weapon]; ok {
			owned = append(owned, collider)
			delete(c.colliderWeapon, collider)
		}
		delete(c.weaponCollider, weapon)
		delete(c.weaponActor, weapon)
		delete(c.transforms, weapon)
	}
	if trail, ok := c.actorTrail[actor]; ok {
		owned = append(owned, trail)
	}
	delete(c.actorWeapon, actor)
	delete(c.actorTrail, actor)
	delete(c.transforms, actor)
	return owned
}

// Len returns the number of bound actors.
func (c *CrossRef) Len() int { return len(c.actorWeapon) }
