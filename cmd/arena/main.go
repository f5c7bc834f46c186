package main

import (
	"embed"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/younwookim/brawl/internal/application/game"
	"github.com/younwookim/brawl/internal/application/replay"
	"github.com/younwookim/brawl/internal/application/scene/arena"
	"github.com/younwookim/brawl/internal/infrastructure/config"
	"github.com/younwookim/brawl/internal/infrastructure/logging"
)

//go:embed configs/*.yaml
var configFS embed.FS

func main() {
	// Parse command line flags
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play a recorded fight in the window")
	verifyFlag := flag.String("verify", "", "Play a recorded fight headless and check its digest")
	seedFlag := flag.Int64("seed", 0, "RNG seed (0 = time based)")
	configDir := flag.String("configs", "", "Load configs from this directory instead of the embedded ones")
	levelFlag := flag.String("log-level", "info", "Log level")
	devFlag := flag.Bool("dev", false, "Development logging")
	flag.Parse()

	logger, err := logging.New(*levelFlag, *devFlag)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(logger, *configDir, *recordFlag, *replayFlag, *verifyFlag, *seedFlag); err != nil {
		logger.Error("exit", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(logger *zap.Logger, configDir, recordPath, replayPath, verifyPath string, seed int64) error {
	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}

	if verifyPath != "" {
		digest, err := verifyReplay(cfg, logger, verifyPath)
		if err != nil {
			return err
		}
		logger.Info("replay verified", zap.String("path", verifyPath), zap.Uint64("digest", digest))
		return nil
	}

	opts := arena.Options{
		Config:     cfg,
		Logger:     logger,
		Seed:       seed,
		NextSeed:   func() int64 { return time.Now().UnixNano() },
		RecordPath: recordPath,
	}
	if opts.Seed == 0 {
		opts.Seed = opts.NextSeed()
	}
	if replayPath != "" {
		data, err := replay.LoadReplay(replayPath)
		if err != nil {
			return err
		}
		opts.Replay = data
	}

	s, err := arena.New(opts)
	if err != nil {
		return fmt.Errorf("failed to build arena: %w", err)
	}

	display := cfg.Arena.Display
	g := game.New(s, game.Options{
		ScreenW: display.ScreenWidth,
		ScreenH: display.ScreenHeight,
		TPS:     display.Framerate,
		Logger:  logger,
	})

	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle("Brawl Arena")
	ebiten.SetTPS(display.Framerate)

	if err := ebiten.RunGame(g); err != nil {
		return err
	}
	return s.ReplayErr
}

// loadConfig reads the embedded configs unless a directory is given.
func loadConfig(dir string) (*config.GameConfig, error) {
	if dir != "" {
		return config.NewLoader(dir).LoadAll()
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs").LoadAll()
}
