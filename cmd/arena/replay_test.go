package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/younwookim/brawl/internal/application/replay"
	"github.com/younwookim/brawl/internal/application/system"
)

func TestLoadConfig_Embedded(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)

	onDisk, err := loadConfig("configs")
	require.NoError(t, err)
	assert.Equal(t, onDisk, cfg)
}

func TestVerifyReplay(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	dt := 1.0 / float64(cfg.Arena.Display.Framerate)

	live, err := system.LoadArena(cfg, zap.NewNop(), 3)
	require.NoError(t, err)
	rec := replay.NewRecorder(3, "arena")
	for f := 0; f < 240; f++ {
		in := system.InputState{Left: f < 100, Up: f >= 100, Attack: f%15 == 0}
		rec.RecordFrame(in)
		replay.Step(live, in, dt)
	}
	rec.SetDigest(replay.Run(live, replay.ReplayData{}, dt))

	path := filepath.Join(t.TempDir(), "fight.json")
	require.NoError(t, rec.Save(path))

	digest, err := verifyReplay(cfg, zap.NewNop(), path)
	require.NoError(t, err)
	assert.Equal(t, rec.Data().Digest, digest)
}

func TestVerifyReplay_MissingFile(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)

	_, err = verifyReplay(cfg, zap.NewNop(), filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
