package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/gumshoe/levels"
	"golang.org/x/image/colornames"
)

// ambientDarkness is the overlay alpha outside every light.
const ambientDarkness = 0xb0

type lamp struct {
	levels.Light
	tint  color.RGBA
	level float64
	phase float64
}

// lightLayer darkens the scene and cuts soft holes where the level places
// lights. Flickering lights wobble their radius.
type lightLayer struct {
	lamps   []lamp
	time    float64
	camera  cp.Vector
	overlay *ebiten.Image
	mask    *ebiten.Image
}

func newLightLayer() *lightLayer {
	return &lightLayer{}
}

func (l *lightLayer) Load(lights []levels.Light) {
	l.lamps = l.lamps[:0]
	for i, lt := range lights {
		tint, ok := colornames.Map[lt.Color]
		if !ok {
			tint = colornames.Lightyellow
		}
		l.lamps = append(l.lamps, lamp{Light: lt, tint: tint, level: 1, phase: float64(i) * 1.7})
	}
}

func (l *lightLayer) Update(dt float64, camera cp.Vector) {
	l.time += dt
	l.camera = camera
	for i := range l.lamps {
		lp := &l.lamps[i]
		lp.level = 1
		if lp.Flicker {
			lp.level = 0.85 + 0.1*math.Sin(l.time*13+lp.phase) + 0.05*math.Sin(l.time*31+lp.phase*2)
		}
	}
}

// Draw uses the camera from the last simulated step.
func (l *lightLayer) Draw(screen *ebiten.Image) {
	if len(l.lamps) == 0 {
		return
	}
	if l.overlay == nil {
		l.overlay = ebiten.NewImage(screenWidth, screenHeight)
		l.mask = ebiten.NewImage(screenWidth, screenHeight)
	}
	l.overlay.Fill(color.NRGBA{R: 0x08, G: 0x06, B: 0x14, A: ambientDarkness})
	l.mask.Clear()

	for _, lp := range l.lamps {
		x, y := float32(lp.X-l.camera.X), float32(lp.Y-l.camera.Y)
		r := float32(lp.Radius * lp.level)
		a := lp.Intensity * lp.level
		// Rings from outside in give a cheap falloff.
		for ring := 4; ring >= 1; ring-- {
			f := float32(ring) / 4
			alpha := uint8(math.Min(255, 255*a*(1.2-float64(f))))
			vector.DrawFilledCircle(l.mask, x, y, r*f, color.NRGBA{A: alpha}, true)
		}
		glow := lp.tint
		glow.A = uint8(math.Min(255, 40*a))
		vector.DrawFilledCircle(screen, x, y, r*0.6, premultiply(glow), true)
	}

	op := &ebiten.DrawImageOptions{}
	op.Blend = ebiten.BlendDestinationOut
	l.overlay.DrawImage(l.mask, op)
	screen.DrawImage(l.overlay, nil)
}

func premultiply(c color.RGBA) color.RGBA {
	a := uint16(c.A)
	return color.RGBA{R: uint8(uint16(c.R) * a / 255), G: uint8(uint16(c.G) * a / 255), B: uint8(uint16(c.B) * a / 255), A: c.A}
}
