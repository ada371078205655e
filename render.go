package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/gumshoe/collision"
	"github.com/milk9111/gumshoe/component"
	"github.com/milk9111/gumshoe/engine"
	"github.com/milk9111/gumshoe/entity"
	"github.com/milk9111/gumshoe/levels"
	"github.com/milk9111/gumshoe/prefabs"
	"github.com/milk9111/gumshoe/system"
	"golang.org/x/image/colornames"
)

type palette struct {
	background, solid, platform, spike, crumble color.Color
	exit, trigger, player, enemy, hitbox        color.Color
}

// worldRenderer draws the level and actors as flat shapes. The static tiles
// are baked into one image per level load.
type worldRenderer struct {
	colors   palette
	static   *ebiten.Image
	tileSize float64
}

func newWorldRenderer(spec prefabs.DebugSpec) *worldRenderer {
	r := &worldRenderer{}
	r.SetColors(spec)
	return r
}

func (r *worldRenderer) SetColors(spec prefabs.DebugSpec) {
	r.colors = palette{
		background: spec.Background.Or(colornames.Midnightblue),
		solid:      spec.Solid.Or(colornames.Slategray),
		platform:   spec.Platform.Or(colornames.Burlywood),
		spike:      spec.Spike.Or(colornames.Crimson),
		crumble:    spec.Crumble.Or(colornames.Sienna),
		exit:       spec.Exit.Or(colornames.Limegreen),
		trigger:    spec.Trigger.Or(colornames.Gold),
		player:     spec.Player.Or(colornames.Antiquewhite),
		enemy:      spec.Enemy.Or(colornames.Coral),
		hitbox:     spec.Hitbox.Or(colornames.Red),
	}
}

// Rebuild bakes every tile that never changes at runtime. Crumble tiles are
// drawn live.
func (r *worldRenderer) Rebuild(lvl *levels.Level, grid *collision.Grid) {
	if r.static != nil {
		r.static.Deallocate()
	}
	w, h := grid.PixelSize()
	r.tileSize = grid.TileSize()
	r.static = ebiten.NewImage(int(w), int(h))

	cw, ch := grid.Size()
	ts := float32(r.tileSize)
	for cy := 0; cy < ch; cy++ {
		for cx := 0; cx < cw; cx++ {
			x, y := float32(cx)*ts, float32(cy)*ts
			code := grid.Code(cx, cy)
			switch {
			case code == collision.CodeCrumble:
			case code == collision.CodeSpike:
				vector.StrokeLine(r.static, x, y+ts, x+ts/2, y+ts/4, 1, r.colors.spike, false)
				vector.StrokeLine(r.static, x+ts/2, y+ts/4, x+ts, y+ts, 1, r.colors.spike, false)
				vector.StrokeLine(r.static, x, y+ts-0.5, x+ts, y+ts-0.5, 1, r.colors.spike, false)
			default:
				switch collision.Classify(code) {
				case collision.TileSolid:
					vector.FillRect(r.static, x, y, ts, ts, r.colors.solid, false)
				case collision.TilePlatform:
					vector.FillRect(r.static, x, y, ts, ts/4, r.colors.platform, false)
				}
			}
		}
	}
	// Decoration is cosmetic: a faint mark where the layer is set.
	for i, code := range lvl.Layers.Decoration {
		if code == 0 {
			continue
		}
		x := float32(i%lvl.Width) * ts
		y := float32(i/lvl.Width) * ts
		vector.StrokeRect(r.static, x+ts/4, y+ts/4, ts/2, ts/2, 1, colornames.Dimgray, false)
	}
}

// DrawBackground fills the screen and draws two parallax bands of
// silhouettes behind the level.
func (r *worldRenderer) DrawBackground(screen *ebiten.Image, cam *system.Camera) {
	screen.Fill(r.colors.background)
	for i, depth := range []float64{0.2, 0.5} {
		off := cam.Parallax(depth)
		spacing := 48.0 + float64(i)*32
		height := float32(40 + i*30)
		shade := color.NRGBA{R: 0x20, G: 0x1c, B: uint8(0x30 + i*0x10), A: 0xff}
		start := -float64(int(off.X)%int(spacing)) - spacing
		for x := start; x < screenWidth+spacing; x += spacing {
			vector.FillRect(screen, float32(x), screenHeight-height, float32(spacing*0.6), height, shade, false)
		}
	}
}

func (r *worldRenderer) DrawLevel(screen *ebiten.Image, e *engine.Engine, cam cp.Vector) {
	if r.static == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-cam.X, -cam.Y)
	screen.DrawImage(r.static, op)

	ts := float32(r.tileSize)
	for _, c := range e.Crumbles() {
		if c.State == system.CrumbleGone {
			continue
		}
		x := float32(float64(c.CX)*r.tileSize - cam.X)
		y := float32(float64(c.CY)*r.tileSize - cam.Y)
		if c.State == system.CrumbleShaking {
			x += float32(int(c.Timer*60)%3 - 1)
		}
		vector.FillRect(screen, x, y, ts, ts, r.colors.crumble, false)
	}

	if lvl := e.Level(); lvl != nil {
		drawBox(screen, lvl.Exit.BB(), cam, r.colors.exit, true)
	}
}

func (r *worldRenderer) DrawEntities(screen *ebiten.Image, views []entity.View, cam cp.Vector) {
	for _, v := range views {
		c := r.colors.enemy
		if v.Team == component.FactionPlayer {
			c = r.colors.player
		}
		// Blink while invulnerable.
		if v.Invuln > 0 && int(v.Invuln*20)%2 == 0 {
			continue
		}
		if !v.Alive {
			c = colornames.Dimgray
		}
		drawBox(screen, v.Bounds(), cam, c, true)

		eyeX := v.Pos.X + v.Facing*v.HalfW*0.5
		vector.FillRect(screen, float32(eyeX-cam.X-1), float32(v.Pos.Y-v.HalfH+4-cam.Y), 2, 2, colornames.Black, false)

		if v.Team != component.FactionPlayer && v.Alive && v.Health < v.MaxHealth {
			w := float32(v.HalfW * 2)
			x, y := float32(v.Pos.X-v.HalfW-cam.X), float32(v.Pos.Y-v.HalfH-4-cam.Y)
			vector.FillRect(screen, x, y, w, 2, colornames.Darkred, false)
			vector.FillRect(screen, x, y, w*float32(v.Health)/float32(v.MaxHealth), 2, colornames.Red, false)
		}
	}
}

// DrawDebug overlays trigger zones, NPC zones, active hitboxes and state
// names.
func (r *worldRenderer) DrawDebug(screen *ebiten.Image, e *engine.Engine, cam cp.Vector) {
	if lvl := e.Level(); lvl != nil {
		for _, t := range lvl.Triggers {
			drawBox(screen, t.Box.BB(), cam, r.colors.trigger, false)
		}
		for _, n := range lvl.NPCs {
			drawBox(screen, n.Box.BB(), cam, colornames.Skyblue, false)
		}
	}
	t := e.Config().Tuning
	if p := e.Player(); p != nil && p.State().IsAttack() {
		if prof := t.Attack(p.Kind); prof.Active(p.Anim.Progress()) {
			drawBox(screen, system.Hitbox(p, prof), cam, r.colors.hitbox, true)
		}
	}
	for _, v := range e.Views() {
		label := string(v.Anim)
		if v.Kind == entity.KindPlayer {
			if p := e.Player(); p != nil && p.Player != nil {
				label = fmt.Sprintf("%s g=%v w=%d", v.Anim, p.Player.Grounded(), p.Player.WallSide())
			}
		}
		ebitenutil.DebugPrintAt(screen, label, int(v.Pos.X-v.HalfW-cam.X), int(v.Pos.Y-v.HalfH-cam.Y)-16)
	}
}

func drawBox(screen *ebiten.Image, bb cp.BB, cam cp.Vector, c color.Color, fill bool) {
	x, y := float32(bb.L-cam.X), float32(bb.B-cam.Y)
	w, h := float32(bb.R-bb.L), float32(bb.T-bb.B)
	if fill {
		vector.FillRect(screen, x, y, w, h, c, false)
		return
	}
	vector.StrokeRect(screen, x, y, w, h, 1, c, false)
}
