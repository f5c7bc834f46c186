package ecs

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/yohamta/donburi"

	"github.com/younwookim/brawl/internal/domain/geom"
)

// Player returns the input-driven actor, if it is alive.
func Player(w *World) (donburi.Entity, bool) {
	entries := sortedEntries(w, players)
	if len(entries) == 0 {
		return 0, false
	}
	return entries[0].Entity(), true
}

// Steer sets the walking direction of an actor. It reports false when the
// actor is gone.
func Steer(w *World, actor donburi.Entity, dir geom.Vec2) bool {
	e := w.entry(actor)
	if e == nil || !e.HasComponent(LocomotionComponent) {
		w.Log.Warn("steer for missing actor", entityField("actor", actor))
		return false
	}
	LocomotionComponent.Get(e).Direction = dir
	return true
}

// ResetPlayerSteering clears every player's walking direction; input
// sets it again each tick.
func ResetPlayerSteering(w *World) {
	players.Each(w.World, func(e *donburi.Entry) {
		LocomotionComponent.Get(e).Direction = geom.Vec2{}
	})
}

// Digest hashes every actor's transform, velocity and health in entity
// order. Two runs with the same seed and input produce the same digest.
func Digest(w *World) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}
	putF := func(f float64) { put(math.Float64bits(f)) }

	for _, e := range sortedEntries(w, actors) {
		t := TransformComponent.GetValue(e)
		v := VelocityComponent.GetValue(e)
		put(uint64(e.Entity()))
		putF(t.Position.X)
		putF(t.Position.Y)
		putF(t.Rotation)
		putF(v.X)
		putF(v.Y)
		put(uint64(HealthComponent.Get(e).Current))
	}
	return h.Sum64()
}
