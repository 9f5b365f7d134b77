package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/cityrun/config"
	"github.com/milk9111/cityrun/ecs/system"
	"github.com/milk9111/cityrun/game"
	"github.com/milk9111/cityrun/prefabs"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

type Game struct {
	cfg   *config.Config
	log   *zap.Logger
	start game.LevelID
	cues  system.CuePlayer
	debug bool

	session  *session
	input    *Input
	renderer *system.RenderSystem
	view     system.Viewport
	face     ebtext.Face

	watcher *prefabs.Watcher

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI
}

func NewGame(cfg *config.Config, log *zap.Logger, start game.LevelID, cues system.CuePlayer, debug bool) (*Game, error) {
	g := &Game{
		cfg:      cfg,
		log:      log,
		start:    start,
		cues:     cues,
		debug:    debug,
		input:    NewInput(),
		renderer: system.NewRenderSystem(),
		view: system.Viewport{
			PixelsPerUnit: cfg.Window.PixelsPerUnit,
			Width:         cfg.Window.Width,
			Height:        cfg.Window.Height,
		},
		face: ebtext.NewGoXFace(basicfont.Face7x13),
	}
	if err := g.restart(); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)
	return g, nil
}

// Watch reports content edits from w in the log. The watcher already drops
// stale prefabs; edits land on the next level build.
func (g *Game) Watch(w *prefabs.Watcher) {
	g.watcher = w
}

func (g *Game) restart() error {
	s, err := newSession(g.cfg, g.log, g.start, g.cues)
	if err != nil {
		return err
	}
	g.session = s
	g.input.Reset()
	g.paused = false
	return nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.drainWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	hud := g.session.HUD()
	if (hud.GameOver || hud.GameWon) && inpututil.IsKeyJustPressed(ebiten.KeyR) {
		return g.restart()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}

	g.input.Follow(hud.Level)
	for _, in := range g.input.Poll() {
		g.session.Push(in)
	}
	g.session.Step()

	if err := g.session.Err(); err != nil {
		return fmt.Errorf("level transition: %w", err)
	}
	return nil
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.Info("content changed", zap.String("file", name))
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.log.Warn("content watcher", zap.Error(err))
			}
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	g.renderer.Draw(g.session.world, screen, g.view)
	if g.debug {
		system.DrawPhysicsDebug(g.session.physics.Space(), screen, g.view)
	}
	g.drawHUD(screen, g.session.HUD())

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image, hud game.HUD) {
	weapon := "none"
	if hud.HasWeapon {
		weapon = "gun"
	}
	line := fmt.Sprintf("%s   health %d   armor %d   weapon %s   enemies %d ground / %d flying",
		hud.Level, hud.Health, hud.Armor, weapon, hud.GroundEnemies, hud.FlyingEnemies)
	if hud.LevelWon && !hud.GameWon {
		line += "   exit open"
	}
	g.drawText(screen, line, 10, 10, colornames.White, ebtext.AlignStart)

	banner := ""
	switch {
	case hud.GameWon:
		banner = "YOU WIN  -  press R to play again"
	case hud.GameOver:
		banner = "GAME OVER  -  press R to restart"
	}
	if banner != "" {
		g.drawText(screen, banner, float64(g.cfg.Window.Width)/2, float64(g.cfg.Window.Height)/2, colornames.Gold, ebtext.AlignCenter)
	}
	if g.debug {
		g.drawText(screen, fmt.Sprintf("FPS %.1f  TPS %.1f  bodies %d", ebiten.ActualFPS(), ebiten.ActualTPS(), g.session.physics.Bodies()), 10, 28, colornames.Lightgreen, ebtext.AlignStart)
	}
}

func (g *Game) drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color, align ebtext.Align) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = align
	ebtext.Draw(screen, s, g.face, op)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}
