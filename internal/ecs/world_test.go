package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/younwookim/brawl/internal/domain/ai"
	"github.com/younwookim/brawl/internal/domain/combat"
	"github.com/younwookim/brawl/internal/domain/geom"
	"github.com/younwookim/brawl/internal/domain/move"
)

func newTestWorld(t *testing.T) (*World, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	tun := Tunables{
		Critical:         combat.Critical{BaseRate: 0, Multiplier: 2},
		HitStun:          0.25,
		KnockbackDamping: 0.8,
		AttackSlowdown:   0.5,
	}
	w, err := NewWorld(Options{Logger: zap.New(core), Seed: 1, Tunables: &tun})
	require.NoError(t, err)
	return w, logs
}

func testSpec(pos geom.Vec2, f ai.Faction) ActorSpec {
	det, _ := ai.NewTargetDetector(500, 800, ai.Free)
	return ActorSpec{
		Position:   pos,
		Faction:    f,
		Health:     30,
		Speed:      100,
		BodyRadius: 30,
		Detector:   det,
		Weapon: WeaponSpec{
			Rest:           geom.Transform{Position: geom.V(0, 20)},
			ColliderRadius: 20,
			ColliderOffset: geom.V(0, 40),
			Damage:         combat.Damage{Amount: 10, Type: combat.Physical},
		},
	}
}

func TestNewWorld_Defaults(t *testing.T) {
	w, err := NewWorld(Options{})
	require.NoError(t, err)

	assert.NotNil(t, w.Catalog)
	assert.Equal(t, move.Count, w.Catalog.Len())
	assert.NotNil(t, w.Curves)
	assert.NotNil(t, w.Log)
	assert.Equal(t, DefaultTunables(), w.Tunables)
	assert.Equal(t, 0, w.Refs.Len())
}

func TestSpawn_BindsCrossRef(t *testing.T) {
	w, _ := newTestWorld(t)
	player := SpawnPlayer(w, testSpec(geom.V(10, 20), ai.FactionPlayer), 6)

	weapon, ok := w.Refs.Weapon(player)
	require.True(t, ok)
	actor, ok := w.Refs.Actor(weapon)
	require.True(t, ok)
	assert.Equal(t, player, actor)

	collider, ok := w.Refs.Collider(weapon)
	require.True(t, ok)
	back, ok := w.Refs.ColliderWeapon(collider)
	require.True(t, ok)
	assert.Equal(t, weapon, back)

	trail, ok := w.Refs.Trail(player)
	require.True(t, ok)
	assert.True(t, w.Valid(trail))

	snap, ok := w.Refs.Transform(player)
	require.True(t, ok)
	assert.Equal(t, geom.V(10, 20), snap.Position)

	pe := w.Entry(player)
	assert.True(t, pe.HasComponent(PlayerComponent))
	assert.Equal(t, 6.0, PlayerComponent.Get(pe).TurnSpeed)
	assert.Equal(t, 30, HealthComponent.Get(pe).Current)
	assert.False(t, ColliderComponent.Get(w.Entry(collider)).Enabled)

	dmg := DamageComponent.GetValue(w.Entry(collider))
	assert.Equal(t, uint64(player), dmg.Source, "damage names the actor that deals it")
	assert.Equal(t, 10, dmg.Amount)
}

func TestCrossRef_Forget(t *testing.T) {
	w, _ := newTestWorld(t)
	a := SpawnAI(w, testSpec(geom.V(0, 0), ai.FactionMonster), AIControl{Unit: "grunt"})
	b := SpawnAI(w, testSpec(geom.V(50, 0), ai.FactionMonster), AIControl{Unit: "grunt"})
	weapon, _ := w.Refs.Weapon(a)
	collider, _ := w.Refs.Collider(weapon)
	trail, _ := w.Refs.Trail(a)

	owned := w.Refs.Forget(a)
	assert.ElementsMatch(t, []donburi.Entity{weapon, collider, trail}, owned)

	_, ok := w.Refs.Weapon(a)
	assert.False(t, ok)
	_, ok = w.Refs.Actor(weapon)
	assert.False(t, ok)
	_, ok = w.Refs.ColliderWeapon(collider)
	assert.False(t, ok)
	_, ok = w.Refs.Transform(a)
	assert.False(t, ok)

	_, ok = w.Refs.Weapon(b)
	assert.True(t, ok, "other bindings survive")
	assert.Equal(t, 1, w.Refs.Len())

	assert.Empty(t, w.Refs.Forget(a), "forgetting twice is a no-op")
}

func TestBusyAndStunned(t *testing.T) {
	w, _ := newTestWorld(t)
	p := SpawnPlayer(w, testSpec(geom.V(0, 0), ai.FactionPlayer), 6)
	weapon, _ := w.Refs.Weapon(p)

	assert.False(t, w.Busy(p))
	assert.False(t, w.Stunned(p))

	MoveRequests.Publish(w.World, ExecuteMove{Weapon: weapon, Move: move.Stub, Input: move.InputAttack})
	HandleMoveRequests(w)
	assert.True(t, w.Busy(p))

	donburi.Add(w.Entry(p), StunComponent, &combat.Stun{Remaining: 1})
	assert.True(t, w.Stunned(p))
}

func TestCountFaction(t *testing.T) {
	w, _ := newTestWorld(t)
	SpawnPlayer(w, testSpec(geom.V(0, 0), ai.FactionPlayer), 6)
	SpawnAI(w, testSpec(geom.V(100, 0), ai.FactionMonster), AIControl{})
	m := SpawnAI(w, testSpec(geom.V(200, 0), ai.FactionMonster), AIControl{})

	assert.Equal(t, 1, w.CountFaction(ai.FactionPlayer))
	assert.Equal(t, 2, w.CountFaction(ai.FactionMonster))

	HealthComponent.Get(w.Entry(m)).Current = 0
	assert.Equal(t, 1, w.CountFaction(ai.FactionMonster))
}
