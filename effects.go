package main

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/gumshoe/entity"
	"github.com/milk9111/gumshoe/system"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const (
	particleGravity = 400
	maxParticles    = 512
	numberLife      = 0.8
)

type particle struct {
	pos, vel cp.Vector
	life     float64
	max      float64
	size     float32
	col      color.Color
	gravity  bool
}

type floatingNumber struct {
	pos  cp.Vector
	text string
	life float64
	col  color.Color
}

type burst struct {
	count   int
	speed   float64
	spread  float64 // radians around the facing direction
	life    float64
	size    float32
	col     color.Color
	gravity bool
}

var bursts = map[string]burst{
	entity.EffectHit:        {count: 8, speed: 120, spread: math.Pi / 2, life: 0.3, size: 2, col: colornames.White, gravity: true},
	entity.EffectDeathBurst: {count: 24, speed: 160, spread: 2 * math.Pi, life: 0.6, size: 3, col: colornames.Orangered, gravity: true},
	entity.EffectBlock:      {count: 6, speed: 90, spread: math.Pi / 3, life: 0.2, size: 2, col: colornames.Lightsteelblue},
	entity.EffectProjectile: {count: 1, speed: 220, spread: 0, life: 0.7, size: 3, col: colornames.Violet},
	entity.EffectDust:       {count: 6, speed: 40, spread: math.Pi, life: 0.35, size: 2, col: colornames.Tan},
	entity.EffectDebris:     {count: 12, speed: 80, spread: math.Pi, life: 0.6, size: 3, col: colornames.Sienna, gravity: true},
	entity.EffectSpike:      {count: 6, speed: 100, spread: math.Pi / 2, life: 0.3, size: 2, col: colornames.Crimson, gravity: true},
	system.EffectImpact:     {count: 4, speed: 60, spread: math.Pi / 2, life: 0.15, size: 3, col: colornames.Yellow},
}

var defaultBurst = burst{count: 5, speed: 60, spread: 2 * math.Pi, life: 0.4, size: 2, col: colornames.Gold}

// effectsLayer is the particle and damage-number collaborator.
type effectsLayer struct {
	rng       *rand.Rand
	particles []particle
	numbers   []floatingNumber
	face      ebtext.Face
}

func newEffectsLayer(seed uint64) *effectsLayer {
	return &effectsLayer{
		rng:  rand.New(rand.NewPCG(seed, seed+1)),
		face: ebtext.NewGoXFace(basicfont.Face7x13),
	}
}

func (l *effectsLayer) Emit(name string, at cp.Vector, opts entity.EffectOptions) {
	b, ok := bursts[name]
	if !ok {
		b = defaultBurst
	}
	if opts.Color != nil {
		b.col = opts.Color
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	heading := -math.Pi / 2
	if opts.Facing > 0 {
		heading = 0
	} else if opts.Facing < 0 {
		heading = math.Pi
	}
	for i := 0; i < b.count && len(l.particles) < maxParticles; i++ {
		angle := heading + (l.rng.Float64()-0.5)*b.spread
		speed := b.speed * scale * (0.5 + l.rng.Float64()*0.5)
		l.particles = append(l.particles, particle{
			pos:     at,
			vel:     cp.Vector{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed},
			life:    b.life,
			max:     b.life,
			size:    b.size * float32(scale),
			col:     b.col,
			gravity: b.gravity,
		})
	}
}

func (l *effectsLayer) DamageNumber(at cp.Vector, amount int, c color.Color) {
	l.numbers = append(l.numbers, floatingNumber{pos: at, text: fmt.Sprint(amount), life: numberLife, col: c})
}

func (l *effectsLayer) Update(dt float64) {
	live := l.particles[:0]
	for _, p := range l.particles {
		p.life -= dt
		if p.life <= 0 {
			continue
		}
		if p.gravity {
			p.vel.Y += particleGravity * dt
		}
		p.pos = p.pos.Add(p.vel.Mult(dt))
		live = append(live, p)
	}
	l.particles = live

	nums := l.numbers[:0]
	for _, n := range l.numbers {
		n.life -= dt
		if n.life <= 0 {
			continue
		}
		n.pos.Y -= 30 * dt
		nums = append(nums, n)
	}
	l.numbers = nums
}

func (l *effectsLayer) Reset() {
	l.particles = l.particles[:0]
	l.numbers = l.numbers[:0]
}

func (l *effectsLayer) Draw(screen *ebiten.Image, cam cp.Vector) {
	for _, p := range l.particles {
		r, g, b, _ := p.col.RGBA()
		a := p.life / p.max
		c := color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(255 * a)}
		vector.FillRect(screen, float32(p.pos.X-cam.X)-p.size/2, float32(p.pos.Y-cam.Y)-p.size/2, p.size, p.size, c, false)
	}
	for _, n := range l.numbers {
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(n.pos.X-cam.X, n.pos.Y-cam.Y)
		op.PrimaryAlign = ebtext.AlignCenter
		op.ColorScale.ScaleWithColor(n.col)
		op.ColorScale.ScaleAlpha(float32(n.life / numberLife))
		ebtext.Draw(screen, n.text, l.face, op)
	}
}
