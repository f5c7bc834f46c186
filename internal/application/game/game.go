// Package game provides the main game loop manager that handles Scene transitions.
package game

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/younwookim/brawl/internal/application/scene"
)

// Options configures a Game.
type Options struct {
	ScreenW, ScreenH int
	TPS              int // ticks per second; dt is 1/TPS
	Logger           *zap.Logger
}

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64
	frames  int
	log     *zap.Logger
}

// New creates a new Game with the given initial scene.
// The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, opts Options) *Game {
	tps := opts.TPS
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	g := &Game{
		current: initialScene,
		screenW: opts.ScreenW,
		screenH: opts.ScreenH,
		dt:      1.0 / float64(tps),
		log:     log,
	}
	g.current.OnEnter()
	return g
}

// Update updates the current scene and handles scene transitions.
// A scene returning scene.ErrQuit ends the run cleanly.
func (g *Game) Update() error {
	next, err := g.current.Update(g.dt)
	g.frames++
	if errors.Is(err, scene.ErrQuit) {
		g.log.Info("quit", zap.Int("frames", g.frames))
		return ebiten.Termination
	}
	if err != nil {
		return fmt.Errorf("frame %d: %w", g.frames, err)
	}

	if next != nil {
		g.log.Debug("scene transition",
			zap.String("from", fmt.Sprintf("%T", g.current)),
			zap.String("to", fmt.Sprintf("%T", next)))
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// Draw renders the current scene.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// SetDT sets the delta time used for updates.
func (g *Game) SetDT(dt float64) {
	g.dt = dt
}

// Frames returns how many updates have run.
func (g *Game) Frames() int { return g.frames }
