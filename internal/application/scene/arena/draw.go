package arena

import (
	"fmt"
	"image/color"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
	"github.com/yohamta/donburi/query"

	"github.com/younwookim/brawl/internal/application/state"
	"github.com/younwookim/brawl/internal/domain/ai"
	"github.com/younwookim/brawl/internal/domain/combat"
	"github.com/younwookim/brawl/internal/domain/geom"
	"github.com/younwookim/brawl/internal/ecs"
)

// Colors for rendering
var (
	colorBG       = color.RGBA{26, 26, 46, 255}
	colorFloor    = color.RGBA{40, 40, 64, 255}
	colorPlayer   = color.RGBA{100, 200, 100, 255}
	colorMonster  = color.RGBA{200, 100, 100, 255}
	colorNeutral  = color.RGBA{160, 160, 160, 255}
	colorStunned  = color.RGBA{255, 255, 255, 255}
	colorWeapon   = color.RGBA{220, 220, 240, 255}
	colorCollider = color.RGBA{255, 200, 100, 160}
	colorTrail    = color.RGBA{255, 230, 160, 200}
	colorRadius   = color.RGBA{100, 100, 200, 96}
	colorHealthBG = color.RGBA{60, 60, 60, 255}
	colorHealthFG = color.RGBA{100, 200, 100, 255}
)

var (
	bodies = query.NewQuery(filter.Contains(
		ecs.TransformComponent, ecs.BodyComponent, ecs.HealthComponent, ecs.FactionComponent,
	))
	trails = query.NewQuery(filter.Contains(ecs.TrailComponent))
)

// Draw renders the arena
func (s *Scene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	w := s.arena.Combat.World()
	cam := s.camera()
	cam = cam.Shake(s.shake, rand.Float64) // cosmetic, outside the seeded simulation

	fx, fy := cam.ToScreen(geom.Vec2{})
	vector.DrawFilledRect(screen, fx, fy, float32(w.Tunables.Width), float32(w.Tunables.Height), colorFloor, false)

	s.drawTrails(screen, w, cam)
	s.drawBodies(screen, w, cam)
	s.drawUI(screen)

	switch s.state {
	case state.StatePaused:
		s.drawOverlay(screen, color.RGBA{0, 0, 0, 128}, "PAUSED\n\nPress ESC to resume")
	case state.StateGameOver:
		s.drawOverlay(screen, color.RGBA{100, 0, 0, 180}, "DEFEATED\n\nPress Z to fight again")
	case state.StateVictory:
		s.drawOverlay(screen, color.RGBA{0, 80, 0, 180}, "VICTORY\n\nPress Z to fight again")
	}
}

// camera follows the player, or holds the arena center once it is gone.
func (s *Scene) camera() Camera {
	w := s.arena.Combat.World()
	target := geom.V(w.Tunables.Width/2, w.Tunables.Height/2)
	if t, ok := w.Refs.Transform(s.arena.Player); ok {
		target = t.Position
	}
	return Follow(target, s.screenW, s.screenH, w.Tunables.Width, w.Tunables.Height)
}

func factionColor(f ai.Faction) color.RGBA {
	switch f {
	case ai.FactionPlayer:
		return colorPlayer
	case ai.FactionMonster:
		return colorMonster
	default:
		return colorNeutral
	}
}

func (s *Scene) drawBodies(screen *ebiten.Image, w *ecs.World, cam Camera) {
	bodies.Each(w.World, func(e *donburi.Entry) {
		t := ecs.TransformComponent.Get(e)
		r := float32(ecs.BodyComponent.Get(e).Radius)
		x, y := cam.ToScreen(t.Position)

		c := factionColor(*ecs.FactionComponent.Get(e))
		if e.HasComponent(ecs.StunComponent) {
			c = colorStunned
		}
		vector.DrawFilledCircle(screen, x, y, r, c, true)

		// Facing tick
		nx, ny := cam.ToScreen(t.Position.Add(t.Forward().Scale(float64(r))))
		vector.StrokeLine(screen, x, y, nx, ny, 2, colorBG, true)

		s.drawWeapon(screen, w, cam, e.Entity())
		s.drawHealth(screen, x, y-r-6, *ecs.HealthComponent.Get(e))

		if s.debug && e.HasComponent(ecs.TargetComponent) {
			det := ecs.TargetComponent.Get(e)
			vector.StrokeCircle(screen, x, y, float32(det.AlertRadius), 1, colorRadius, true)
		}
	})
}

func (s *Scene) drawWeapon(screen *ebiten.Image, w *ecs.World, cam Camera, actor donburi.Entity) {
	weapon, ok := w.Refs.Weapon(actor)
	if !ok {
		return
	}
	wt, ok := w.WeaponTransform(weapon)
	if !ok {
		return
	}
	tip, ok := w.ColliderCenter(weapon)
	if !ok {
		return
	}
	x0, y0 := cam.ToScreen(wt.Position)
	x1, y1 := cam.ToScreen(tip)
	vector.StrokeLine(screen, x0, y0, x1, y1, 3, colorWeapon, true)

	if !s.debug {
		return
	}
	collider, ok := w.Refs.Collider(weapon)
	if !ok || !w.Valid(collider) {
		return
	}
	c := ecs.ColliderComponent.Get(w.Entry(collider))
	if c.Enabled {
		vector.StrokeCircle(screen, x1, y1, float32(c.Radius), 1, colorCollider, true)
	}
}

func (s *Scene) drawTrails(screen *ebiten.Image, w *ecs.World, cam Camera) {
	trails.Each(w.World, func(e *donburi.Entry) {
		ta := ecs.TrailComponent.Get(e)
		if !ta.Visible {
			return
		}
		for i := 1; i < len(ta.Points); i++ {
			x0, y0 := cam.ToScreen(ta.Points[i-1])
			x1, y1 := cam.ToScreen(ta.Points[i])
			width := float32(1 + 4*float64(i)/float64(len(ta.Points)))
			vector.StrokeLine(screen, x0, y0, x1, y1, width, colorTrail, true)
		}
	})
}

func (s *Scene) drawHealth(screen *ebiten.Image, cx, top float32, h combat.Health) {
	const barW, barH = 24, 3
	vector.DrawFilledRect(screen, cx-barW/2, top, barW, barH, colorHealthBG, false)
	vector.DrawFilledRect(screen, cx-barW/2, top, barW*float32(h.Ratio()), barH, colorHealthFG, false)
}

func (s *Scene) drawUI(screen *ebiten.Image) {
	w := s.arena.Combat.World()

	// Health bar
	barX := float32(10)
	barY := float32(s.screenH - 20)
	barW := float32(100)
	barH := float32(10)
	vector.DrawFilledRect(screen, barX, barY, barW, barH, colorHealthBG, false)
	if s.arena.Combat.Alive(s.arena.Player) {
		hp := ecs.HealthComponent.Get(w.Entry(s.arena.Player))
		vector.DrawFilledRect(screen, barX, barY, barW*float32(hp.Ratio()), barH, colorHealthFG, false)
	}

	ebitenutil.DebugPrintAt(screen, s.status(), 10, s.screenH-35)

	// Controls
	ebitenutil.DebugPrint(screen, "WASD: Move | J: Swing | K: Thrust | L: Slam | Space: Parry | R: Rage | Tab: Debug | ESC: Pause")
}

// status is the one-line HUD text.
func (s *Scene) status() string {
	w := s.arena.Combat.World()
	line := fmt.Sprintf("Enemies: %d  Tick: %d", w.CountFaction(ai.FactionMonster), s.arena.Combat.Ticks())
	if s.arena.Combat.Alive(s.arena.Player) {
		if pe := w.Entry(s.arena.Player); pe.HasComponent(ecs.BerserkerComponent) && ecs.BerserkerComponent.Get(pe).Raging {
			line += "  RAGE"
		}
	}
	if s.replayer != nil {
		line += fmt.Sprintf("  Replay %d/%d", s.replayer.CurrentFrame(), s.replayer.TotalFrames())
	} else if s.recorder != nil && s.recorder.IsRecording() {
		line += "  REC"
	}
	return line
}

func (s *Scene) drawOverlay(screen *ebiten.Image, c color.RGBA, text string) {
	vector.DrawFilledRect(screen, 0, 0, float32(s.screenW), float32(s.screenH), c, false)
	ebitenutil.DebugPrintAt(screen, text, s.screenW/2-60, s.screenH/2-30)
}
