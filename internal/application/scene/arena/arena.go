// Package arena provides the fighting scene.
package arena

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/younwookim/brawl/internal/application/replay"
	"github.com/younwookim/brawl/internal/application/scene"
	"github.com/younwookim/brawl/internal/application/state"
	"github.com/younwookim/brawl/internal/application/system"
	"github.com/younwookim/brawl/internal/domain/ai"
	"github.com/younwookim/brawl/internal/ecs"
	"github.com/younwookim/brawl/internal/infrastructure/config"
)

// Options configures the scene.
type Options struct {
	Config *config.GameConfig
	Logger *zap.Logger
	Seed   int64
	// NextSeed is asked for a fresh seed on restart.
	NextSeed func() int64

	// RecordPath enables input recording; the file is written when the
	// fight ends or the scene exits.
	RecordPath string
	// Replay plays recorded input instead of the keyboard. The scene
	// quits after the last frame.
	Replay *replay.ReplayData
}

// Scene is the fighting scene
type Scene struct {
	opts  Options
	log   *zap.Logger
	state state.GameState
	seed  int64

	arena       *system.Arena
	inputSystem *system.InputSystem
	recorder    *replay.Recorder
	replayer    *replay.Replayer

	screenW int
	screenH int
	dt      float64

	// Feedback
	hitstopFrames int
	shake         float64
	debug         bool

	// ReplayErr is the verification result once a replay has finished.
	ReplayErr error
}

// New creates the scene and populates the arena.
func New(opts Options) (*Scene, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	seed := opts.Seed
	if opts.Replay != nil {
		seed = opts.Replay.Seed
	}
	display := opts.Config.Arena.Display
	s := &Scene{
		opts:        opts,
		log:         log.Named("arena"),
		seed:        seed,
		inputSystem: system.NewInputSystem(),
		screenW:     display.ScreenWidth,
		screenH:     display.ScreenHeight,
		dt:          1.0 / float64(display.Framerate),
	}
	if opts.Replay != nil {
		s.replayer = replay.NewReplayer(*opts.Replay)
	}
	if err := s.reset(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scene) reset() error {
	arena, err := system.LoadArena(s.opts.Config, s.opts.Logger, s.seed)
	if err != nil {
		return err
	}
	arena.Combat.OnHit = s.onHit
	s.arena = arena
	s.state = state.StateFighting
	s.hitstopFrames = 0
	s.shake = 0

	if s.opts.RecordPath != "" && s.replayer == nil {
		s.recorder = replay.NewRecorder(s.seed, "arena")
		s.log.Info("recording", zap.String("path", s.opts.RecordPath), zap.Int64("seed", s.seed))
	}
	return nil
}

func (s *Scene) onHit(ecs.Contact) {
	fb := s.opts.Config.Arena.Feedback
	s.hitstopFrames = fb.HitstopFrames
	s.shake = fb.ShakeIntensity
}

// State returns the fight state
func (s *Scene) State() state.GameState { return s.state }

// Arena returns the simulated arena
func (s *Scene) Arena() *system.Arena { return s.arena }

// Update proceeds the fight (implements scene.Scene)
func (s *Scene) Update(_ float64) (scene.Scene, error) {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		s.debug = !s.debug
	}

	// Hitstop freezes the simulation without consuming input.
	if s.hitstopFrames > 0 {
		s.hitstopFrames--
		return nil, nil
	}
	s.shake *= s.opts.Config.Arena.Feedback.ShakeDecay

	switch s.state {
	case state.StateFighting:
		return nil, s.updateFighting()
	case state.StatePaused:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			s.state = state.StateFighting
		}
	case state.StateGameOver, state.StateVictory:
		if s.replayer != nil {
			return nil, s.finishReplay()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyZ) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			return nil, s.restart()
		}
	}

	return nil, nil // nil = stay on this scene
}

func (s *Scene) updateFighting() error {
	if s.replayer == nil && inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.state = state.StatePaused
		return nil
	}

	var input system.InputState
	if s.replayer != nil {
		in, ok := s.replayer.GetInput()
		if !ok {
			return s.finishReplay()
		}
		input = in
	} else {
		input = s.inputSystem.GetInput()
	}

	if s.recorder != nil {
		s.recorder.RecordFrame(input)
	}

	replay.Step(s.arena, input, s.dt)

	w := s.arena.Combat.World()
	next := state.Outcome(s.state, s.arena.Combat.Alive(s.arena.Player), w.CountFaction(ai.FactionMonster))
	if next != s.state {
		s.log.Info("fight over",
			zap.Stringer("result", next),
			zap.Int("ticks", s.arena.Combat.Ticks()),
			zap.Uint64("digest", ecs.Digest(w)))
		s.state = next
		s.saveRecording()
	}
	return nil
}

// finishReplay checks the recorded digest and ends the game.
func (s *Scene) finishReplay() error {
	got := ecs.Digest(s.arena.Combat.World())
	want := s.opts.Replay.Digest
	if want != 0 && got != want {
		s.ReplayErr = replay.ErrDigestMismatch
		s.log.Error("replay diverged", zap.Uint64("want", want), zap.Uint64("got", got))
	} else {
		s.log.Info("replay finished", zap.Uint64("digest", got), zap.Int("frames", s.replayer.CurrentFrame()))
	}
	return scene.ErrQuit
}

func (s *Scene) restart() error {
	if s.opts.NextSeed != nil {
		s.seed = s.opts.NextSeed()
	}
	s.log.Info("restart", zap.Int64("seed", s.seed))
	return s.reset()
}

// saveRecording saves the current recording to file
func (s *Scene) saveRecording() {
	if s.recorder == nil || !s.recorder.IsRecording() {
		return
	}
	s.recorder.SetDigest(ecs.Digest(s.arena.Combat.World()))
	s.recorder.Stop()

	filename := s.opts.RecordPath
	if filename == "" {
		filename = replay.GenerateFilename()
	}
	if err := s.recorder.Save(filename); err != nil {
		if errors.Is(err, replay.ErrNoFrames) {
			return
		}
		s.log.Error("failed to save recording", zap.Error(err))
		return
	}
	s.log.Info("recording saved", zap.String("path", filename), zap.Int("frames", s.recorder.FrameCount()))
}

// OnEnter is called when entering this scene
func (s *Scene) OnEnter() {}

// OnExit is called when leaving this scene
func (s *Scene) OnExit() {
	s.saveRecording()
}

// Layout returns the game's screen dimensions
func (s *Scene) Layout(outsideWidth, outsideHeight int) (int, int) {
	return s.screenW, s.screenH
}
