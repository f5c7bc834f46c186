package replay

import (
	"errors"
	"fmt"

	"github.com/younwookim/brawl/internal/application/system"
	"github.com/younwookim/brawl/internal/ecs"
)

// ErrDigestMismatch means a replay did not reproduce its recorded world.
var ErrDigestMismatch = errors.New("replay digest mismatch")

// Step feeds one frame of input into the arena. Input for a dead player
// is discarded.
func Step(arena *system.Arena, in system.InputState, dt float64) system.TickReport {
	var intents []system.Intent
	if arena.Combat.Alive(arena.Player) {
		intents = in.Intents(arena.Player)
	}
	return arena.Combat.Tick(dt, intents)
}

// Run plays every frame headless and returns the final world digest.
func Run(arena *system.Arena, data ReplayData, dt float64) uint64 {
	r := NewReplayer(data)
	for {
		in, ok := r.GetInput()
		if !ok {
			break
		}
		Step(arena, in, dt)
	}
	return ecs.Digest(arena.Combat.World())
}

// Verify runs data and compares against its recorded digest. Recordings
// without a digest only check that they play.
func Verify(arena *system.Arena, data ReplayData, dt float64) (uint64, error) {
	got := Run(arena, data, dt)
	if data.Digest != 0 && got != data.Digest {
		return got, fmt.Errorf("want %x got %x: %w", data.Digest, got, ErrDigestMismatch)
	}
	return got, nil
}
