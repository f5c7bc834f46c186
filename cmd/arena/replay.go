package main

import (
	"go.uber.org/zap"

	"github.com/younwookim/brawl/internal/application/replay"
	"github.com/younwookim/brawl/internal/application/system"
	"github.com/younwookim/brawl/internal/infrastructure/config"
)

// verifyReplay plays a recording without a window and checks that it
// reaches the digest it was saved with.
func verifyReplay(cfg *config.GameConfig, logger *zap.Logger, path string) (uint64, error) {
	data, err := replay.LoadReplay(path)
	if err != nil {
		return 0, err
	}
	a, err := system.LoadArena(cfg, logger, data.Seed)
	if err != nil {
		return 0, err
	}
	dt := 1.0 / float64(cfg.Arena.Display.Framerate)
	return replay.Verify(a, *data, dt)
}
