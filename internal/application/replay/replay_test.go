package replay

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/younwookim/brawl/internal/application/system"
	"github.com/younwookim/brawl/internal/infrastructure/config"
)

const dt = 1.0 / 60.0

func TestFrameInput_OmitsIdleKeys(t *testing.T) {
	data, err := json.Marshal(FrameInput{F: 3, R: true, P: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"f":3,"r":true,"p":true}`, string(data))
}

func TestFrame_RoundTripsInput(t *testing.T) {
	in := system.InputState{Left: true, Up: true, Attack: true, Slam: true, Rage: true}
	assert.Equal(t, in, Frame(7, in).Input())
	assert.Equal(t, 7, Frame(7, in).F)
	assert.True(t, Frame(7, in).B)
}

func TestReplayer_GetInput(t *testing.T) {
	data := ReplayData{
		Version: Version,
		Seed:    42,
		Arena:   "test",
		Frames: []FrameInput{
			{F: 0, L: true},
			{F: 1, R: true, A: true},
			{F: 2},
		},
	}

	replayer := NewReplayer(data)

	// Frame 0
	input, ok := replayer.GetInput()
	require.True(t, ok)
	assert.True(t, input.Left)
	assert.False(t, input.Right)

	// Frame 1
	input, ok = replayer.GetInput()
	require.True(t, ok)
	assert.True(t, input.Right)
	assert.True(t, input.Attack)

	// Frame 2
	input, ok = replayer.GetInput()
	require.True(t, ok)
	assert.Equal(t, system.InputState{}, input)

	// End of frames
	assert.True(t, replayer.Done())
	_, ok = replayer.GetInput()
	assert.False(t, ok)
}

func TestReplayer_Frames(t *testing.T) {
	data := CreateTestReplayData(5, nil)
	replayer := NewReplayer(data)

	assert.Equal(t, 5, replayer.TotalFrames())
	assert.Equal(t, int64(12345), replayer.Seed())
	assert.Equal(t, 0, replayer.CurrentFrame())

	replayer.GetInput()
	replayer.GetInput()
	assert.Equal(t, 2, replayer.CurrentFrame())

	replayer.Reset()
	assert.Equal(t, 0, replayer.CurrentFrame())
	assert.False(t, replayer.Done())
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder(99, "arena")
	assert.ErrorIs(t, rec.Save(filepath.Join(t.TempDir(), "empty.json")), ErrNoFrames)

	rec.RecordFrame(system.InputState{Left: true})
	rec.RecordFrame(system.InputState{Parry: true})
	rec.Stop()
	rec.RecordFrame(system.InputState{Right: true})
	assert.False(t, rec.IsRecording())
	assert.Equal(t, 2, rec.FrameCount())

	rec.SetDigest(0xfeed)
	path := filepath.Join(t.TempDir(), "fight.json")
	require.NoError(t, rec.Save(path))

	loaded, err := LoadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, rec.Data().Frames, loaded.Frames)
	assert.Equal(t, int64(99), loaded.Seed)
	assert.Equal(t, uint64(0xfeed), loaded.Digest)
	assert.Equal(t, Version, loaded.Version)
}

func TestLoadReplay_Missing(t *testing.T) {
	_, err := LoadReplay(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorContains(t, err, "failed to open file")
}

func newArena(t *testing.T, seed int64) *system.Arena {
	t.Helper()
	cfg, err := config.NewLoader("../../../cmd/arena/configs").LoadAll()
	require.NoError(t, err)
	arena, err := system.LoadArena(cfg, zap.NewNop(), seed)
	require.NoError(t, err)
	return arena
}

func fightScript(f int) system.InputState {
	return system.InputState{
		Left:   f%200 < 50,
		Up:     f%200 >= 50 && f%200 < 100,
		Right:  f%200 >= 100 && f%200 < 150,
		Down:   f%200 >= 150,
		Attack: f%20 == 0,
		Thrust: f%45 == 0,
		Parry:  f%80 == 40,
	}
}

func TestVerify_ReproducesRecordedFight(t *testing.T) {
	data := CreateTestReplayData(900, fightScript)

	live := newArena(t, data.Seed)
	rec := NewRecorder(data.Seed, "test")
	for _, fi := range data.Frames {
		rec.RecordFrame(fi.Input())
		Step(live, fi.Input(), dt)
	}
	rec.SetDigest(Run(live, ReplayData{}, dt))

	got, err := Verify(newArena(t, data.Seed), rec.Data(), dt)
	require.NoError(t, err)
	assert.Equal(t, rec.Data().Digest, got)
}

func TestVerify_DetectsMismatch(t *testing.T) {
	data := CreateTestReplayData(120, fightScript)
	data.Digest = 1

	_, err := Verify(newArena(t, data.Seed), data, dt)
	assert.ErrorIs(t, err, ErrDigestMismatch)
}
