package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gumshoe/collision"
	"github.com/milk9111/gumshoe/common"
	"github.com/milk9111/gumshoe/component"
)

// Kind is the closed set of actor archetypes. Each kind selects its own
// behavior in Update.
type Kind int

const (
	KindPlayer Kind = iota
	KindPatroller
	KindCaster
	KindBlocker
)

var kindNames = map[Kind]string{
	KindPlayer:    "player",
	KindPatroller: "patroller",
	KindCaster:    "caster",
	KindBlocker:   "blocker",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a spawn type name to a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSpawnType, s)
}

// Entity holds the state shared by every actor. Exactly one of Player or AI
// is set, matching Kind.
type Entity struct {
	ID     int
	Kind   Kind
	Team   component.Faction
	Pos    cp.Vector // top-left
	Vel    cp.Vector
	W, H   float64
	Facing float64 // -1 or +1
	Health component.Health
	Anim   *component.Animation

	Player *Player
	AI     *Brain
}

func (e *Entity) Center() cp.Vector {
	return cp.Vector{X: e.Pos.X + e.W/2, Y: e.Pos.Y + e.H/2}
}

func (e *Entity) Bounds() cp.BB {
	return common.Rect(e.Pos.X, e.Pos.Y, e.W, e.H)
}

// Feet is a thin box just below the entity, used for standing checks.
func (e *Entity) Feet() cp.BB {
	return common.Rect(e.Pos.X+1, e.Pos.Y+e.H, e.W-2, 1)
}

func (e *Entity) State() component.AnimState {
	return e.Anim.State()
}

func (e *Entity) Alive() bool {
	return e.Health.IsAlive()
}

// Removable reports whether the entity is dead and its death animation has
// finished playing.
func (e *Entity) Removable() bool {
	return !e.Alive() && e.Anim.State() == component.AnimDie && e.Anim.Finished()
}

// Blocking reports whether the entity is holding a block stance.
func (e *Entity) Blocking() bool {
	return e.AI != nil && e.AI.state == aiBlock
}

// Update runs one simulation step of the entity's behavior, then advances
// its animation.
func (e *Entity) Update(ctx *Context) {
	switch e.Kind {
	case KindPlayer:
		e.updatePlayer(ctx)
	case KindPatroller:
		e.updatePatroller(ctx)
	case KindCaster:
		e.updateCaster(ctx)
	case KindBlocker:
		e.updateBlocker(ctx)
	}
	e.Animate(ctx.Dt)
}

// Animate advances the animation clock and applies completion transitions.
func (e *Entity) Animate(dt float64) {
	ended, ok := e.Anim.Update(dt)
	if !ok {
		return
	}
	switch e.Kind {
	case KindPlayer:
		e.playerAnimationEnded(ended)
	default:
		e.enemyAnimationEnded(ended)
	}
}

func (e *Entity) face(dir float64) {
	if dir > 0 {
		e.Facing = 1
	} else if dir < 0 {
		e.Facing = -1
	}
}

func (e *Entity) body() collision.Body {
	return collision.Body{Pos: e.Pos, Vel: e.Vel, W: e.W, H: e.H}
}

// move resolves the body against the level and stores the result.
func (e *Entity) move(ctx *Context, opt collision.Options) collision.Result {
	if ctx.Tiles == nil {
		e.Pos = e.Pos.Add(e.Vel.Mult(ctx.Dt))
		return collision.Result{Pos: e.Pos, Vel: e.Vel}
	}
	res := collision.Resolve(ctx.Tiles, e.body(), ctx.Dt, opt)
	e.Pos = res.Pos
	e.Vel = res.Vel
	return res
}

func (e *Entity) physics(ctx *Context) collision.Options {
	p := ctx.tuning().Physics
	return collision.Options{
		Gravity:      p.Gravity,
		GravityScale: 1,
		MaxFallSpeed: p.MaxFallSpeed,
	}
}
