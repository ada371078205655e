package entity

import (
	"image/color"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gumshoe/collision"
	"github.com/milk9111/gumshoe/input"
)

// Visual effect preset names forwarded to the effects collaborator.
const (
	EffectHit        = "hit"
	EffectDeathBurst = "death_burst"
	EffectBlock      = "block_spark"
	EffectProjectile = "projectile"
	EffectDust       = "dust"
	EffectDebris     = "debris"
	EffectSpike      = "spike"
)

// EffectOptions are free-form hints for a visual effect.
type EffectOptions struct {
	Facing float64
	Scale  float64
	Color  color.Color
}

// Hooks are optional fire-and-forget callbacks into external collaborators.
// Any field may be nil.
type Hooks struct {
	Effect         func(name string, at cp.Vector, opts EffectOptions)
	DamageNumber   func(at cp.Vector, amount int, c color.Color)
	CameraShake    func(intensity, duration float64)
	HitFreeze      func(duration float64)
	StartDialogue  func(id string)
	AwardClue      func(id string)
	AwardItem      func(id string)
	Spawn          func(reqs []SpawnRequest)
	DialogueActive func() bool
	HasClue        func(id string) bool
	HasItem        func(id string) bool
}

// Context is the per-step bundle handed to entities and systems. It is built
// fresh every step and must not be retained.
type Context struct {
	Dt       float64
	Input    input.Snapshot
	Tiles    collision.Tiles
	Entities []View
	Rand     *rand.Rand
	Tuning   *Tuning
	Hooks    Hooks
}

func (c *Context) tuning() *Tuning {
	if c == nil || c.Tuning == nil {
		return defaultTuning
	}
	return c.Tuning
}

// PlayerView returns the player's snapshot if one is alive in the step.
func (c *Context) PlayerView() (View, bool) {
	if c == nil {
		return View{}, false
	}
	for _, v := range c.Entities {
		if v.Kind == KindPlayer && v.Alive {
			return v, true
		}
	}
	return View{}, false
}

func (c *Context) float() float64 {
	if c == nil || c.Rand == nil {
		return 0.5
	}
	return c.Rand.Float64()
}

func (c *Context) Effect(name string, at cp.Vector, opts EffectOptions) {
	if c == nil || c.Hooks.Effect == nil {
		return
	}
	c.Hooks.Effect(name, at, opts)
}

func (c *Context) DamageNumber(at cp.Vector, amount int, col color.Color) {
	if c == nil || c.Hooks.DamageNumber == nil {
		return
	}
	c.Hooks.DamageNumber(at, amount, col)
}

func (c *Context) Shake(intensity, duration float64) {
	if c == nil || c.Hooks.CameraShake == nil {
		return
	}
	c.Hooks.CameraShake(intensity, duration)
}

func (c *Context) Freeze(duration float64) {
	if c == nil || c.Hooks.HitFreeze == nil || duration <= 0 {
		return
	}
	c.Hooks.HitFreeze(duration)
}

func (c *Context) StartDialogue(id string) {
	if c == nil || c.Hooks.StartDialogue == nil {
		return
	}
	c.Hooks.StartDialogue(id)
}

func (c *Context) AwardClue(id string) {
	if c == nil || c.Hooks.AwardClue == nil {
		return
	}
	c.Hooks.AwardClue(id)
}

func (c *Context) AwardItem(id string) {
	if c == nil || c.Hooks.AwardItem == nil {
		return
	}
	c.Hooks.AwardItem(id)
}

func (c *Context) Spawn(reqs ...SpawnRequest) {
	if c == nil || c.Hooks.Spawn == nil || len(reqs) == 0 {
		return
	}
	c.Hooks.Spawn(reqs)
}

func (c *Context) DialogueActive() bool {
	if c == nil || c.Hooks.DialogueActive == nil {
		return false
	}
	return c.Hooks.DialogueActive()
}

func (c *Context) HasClue(id string) bool {
	if c == nil || c.Hooks.HasClue == nil {
		return false
	}
	return c.Hooks.HasClue(id)
}

func (c *Context) HasItem(id string) bool {
	if c == nil || c.Hooks.HasItem == nil {
		return false
	}
	return c.Hooks.HasItem(id)
}
