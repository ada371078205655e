package main

import (
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/gumshoe/engine"
	"github.com/milk9111/gumshoe/input"
	"github.com/milk9111/gumshoe/prefabs"
)

const (
	screenWidth  = 320
	screenHeight = 180
)

// campaign is the order levels are played in.
var campaign = []string{"alley", "warehouse", "rooftops"}

type GameOptions struct {
	Level string
	Seed  uint64
	Debug bool
	Watch bool
}

type Game struct {
	engine       *engine.Engine
	keyboard     *input.Keyboard
	pauseUI      *ebitenui.UI
	refreshPause func()

	world     *worldRenderer
	effects   *effectsLayer
	dialogue  *dialogueBox
	lighting  *lightLayer
	narrative *casebook

	watcher *prefabs.Watcher
	debug   bool
	level   string
	last    time.Time
	halted  bool
}

func NewGame(opts GameOptions) (*Game, error) {
	cfg, err := prefabs.LoadConfig()
	if err != nil {
		return nil, err
	}
	world, err := prefabs.LoadWorldSpec()
	if err != nil {
		return nil, err
	}

	g := &Game{
		world:     newWorldRenderer(world.Debug),
		effects:   newEffectsLayer(opts.Seed),
		dialogue:  newDialogueBox(),
		lighting:  newLightLayer(),
		narrative: newCasebook(),
		debug:     opts.Debug,
	}

	src := input.NewSource()
	g.keyboard = input.NewKeyboard(src, input.DefaultBindings())
	g.engine = engine.New(engine.Options{
		Config:    cfg,
		Seed:      opts.Seed,
		Scripts:   prefabs.LoadScript,
		Input:     src,
		Effects:   g.effects,
		Dialogue:  g.dialogue,
		Lighting:  g.lighting,
		Render:    g.world,
		Narrative: g.narrative,
	})
	g.pauseUI = NewPauseUI(g)

	if opts.Watch {
		w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts")
		if err != nil {
			return nil, fmt.Errorf("watch prefabs: %w", err)
		}
		g.watcher = w
	}

	if err := g.loadLevel(opts.Level); err != nil {
		g.Close()
		return nil, err
	}
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	g.engine.Stop()
}

func (g *Game) loadLevel(id string) error {
	if err := g.engine.LoadLevel(id); err != nil {
		return err
	}
	g.level = g.engine.Level().ID
	g.halted = false
	g.last = time.Time{}
	g.engine.Start()
	return nil
}

func (g *Game) restart() {
	if err := g.loadLevel(g.level); err != nil {
		log.Printf("restart %s: %v", g.level, err)
	}
}

func (g *Game) nextLevel() string {
	i := slices.Index(campaign, g.level)
	if i < 0 {
		return g.level
	}
	return campaign[(i+1)%len(campaign)]
}

func (g *Game) Update() error {
	now := time.Now()
	elapsed := 1.0 / float64(ebiten.TPS())
	if !g.last.IsZero() {
		elapsed = now.Sub(g.last).Seconds()
	}
	g.last = now

	g.keyboard.Update()
	g.pollWatcher()
	if !ebiten.IsFocused() && g.engine.Status() == engine.StatusRunning {
		g.engine.Pause()
	}

	switch g.engine.Status() {
	case engine.StatusPaused:
		g.refreshPause()
		g.pauseUI.Update()
		if g.engine.Input().Peek().Pressed(input.ActionPause) {
			g.engine.Resume()
		}
		return nil
	case engine.StatusLevelComplete:
		next := g.nextLevel()
		if err := g.loadLevel(next); err != nil {
			return fmt.Errorf("load %s: %w", next, err)
		}
		return nil
	case engine.StatusGameOver:
		g.restart()
		return nil
	case engine.StatusHalted:
		if !g.halted {
			g.halted = true
			log.Printf("simulation halted: %v", g.engine.Err())
		}
		return nil
	}

	g.engine.Frame(elapsed)
	g.narrative.Update(elapsed)
	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case c, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				return
			}
			g.applyChange(c)
		case err := <-g.watcher.Errors:
			if err != nil {
				log.Printf("watch prefabs: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) applyChange(c prefabs.Change) {
	switch c.Kind {
	case prefabs.ChangeSpec:
		cfg, err := prefabs.LoadConfig()
		if err != nil {
			log.Printf("reload %s: %v", c.Path, err)
			return
		}
		g.engine.SetConfig(cfg)
		if world, err := prefabs.LoadWorldSpec(); err == nil {
			g.world.SetColors(world.Debug)
		}
		log.Printf("reloaded tuning from %s", c.Path)
	case prefabs.ChangeScript:
		log.Printf("script %s changed, reloading level %s", c.Path, g.level)
		if err := g.engine.LoadLevel(g.level); err != nil {
			log.Printf("reload %s: %v", g.level, err)
			return
		}
		g.engine.Start()
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	cam := g.engine.Camera()
	g.world.DrawBackground(screen, g.engine.CameraRig())
	g.world.DrawLevel(screen, g.engine, cam)
	g.world.DrawEntities(screen, g.engine.Views(), cam)
	g.effects.Draw(screen, cam)
	g.lighting.Draw(screen)
	if g.debug {
		g.world.DrawDebug(screen, g.engine, cam)
	}
	g.dialogue.Draw(screen)
	g.drawHUD(screen)

	if g.engine.Status() == engine.StatusPaused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	views := g.engine.Views()
	if len(views) > 0 {
		p := views[0]
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("HP %d/%d  clues %d", p.Health, p.MaxHealth, len(g.engine.Journal().Clues())), 4, 2)
	}
	g.narrative.Draw(screen)
	if g.engine.Status() == engine.StatusHalted {
		ebitenutil.DebugPrintAt(screen, "simulation halted", 4, screenHeight-16)
	}
	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  FPS %.0f", g.level, ebiten.ActualFPS()), 4, 14)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return screenWidth, screenHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
