package entity

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gumshoe/collision"
	"github.com/milk9111/gumshoe/common"
	"github.com/milk9111/gumshoe/component"
	"github.com/milk9111/gumshoe/input"
)

// Player is the player-only variant data. Timers count down in seconds.
type Player struct {
	jumpBuffer     float64
	coyote         float64
	rollCooldown   float64
	attackCooldown float64
	hurtTimer      float64
	wallStick      float64
	regrab         float64
	dropTimer      float64

	jumpHeld   bool
	grounded   bool
	onPlatform bool
	wallSide   collision.Side
	ledge      *collision.Ledge
}

func (p *Player) Grounded() bool { return p.grounded }

// WallSide is the side of the wall the player last touched while airborne.
func (p *Player) WallSide() collision.Side { return p.wallSide }

func (p *Player) tick(dt float64) {
	p.jumpBuffer = common.Tick(p.jumpBuffer, dt)
	p.coyote = common.Tick(p.coyote, dt)
	p.rollCooldown = common.Tick(p.rollCooldown, dt)
	p.attackCooldown = common.Tick(p.attackCooldown, dt)
	p.hurtTimer = common.Tick(p.hurtTimer, dt)
	p.wallStick = common.Tick(p.wallStick, dt)
	p.regrab = common.Tick(p.regrab, dt)
	p.dropTimer = common.Tick(p.dropTimer, dt)
}

func (e *Entity) updatePlayer(ctx *Context) {
	p := e.Player
	t := &ctx.tuning().Player
	in := ctx.Input
	dt := ctx.Dt
	p.tick(dt)

	switch e.Anim.State() {
	case component.AnimHurt, component.AnimDie:
		e.playerPhysics(ctx, 1, false)
		return
	case component.AnimLedgeGrab, component.AnimLedgeClimb:
		e.updateHanging(ctx, t)
		return
	case component.AnimRoll:
		e.Vel.X = e.Facing * t.RollSpeed
		e.playerPhysics(ctx, 1, false)
		return
	}
	if p.hurtTimer > 0 {
		e.playerPhysics(ctx, 1, false)
		return
	}

	moveX := in.MoveX()
	if p.wallSide != collision.SideNone && !p.grounded && moveX == -float64(p.wallSide) && p.wallStick > 0 {
		moveX = 0
	}

	target := moveX * t.MoveSpeed
	accel, decel := t.GroundAccel, t.GroundDecel
	if !p.grounded {
		accel, decel = t.AirAccel, t.AirDecel
	}
	rate := decel
	if moveX != 0 && (e.Vel.X == 0 || common.Sign(e.Vel.X) == moveX) {
		rate = accel
	}
	e.Vel.X = common.Approach(e.Vel.X, target, rate*dt)
	if moveX != 0 && !e.Anim.State().IsAttack() {
		e.face(moveX)
	}

	if in.Pressed(input.ActionJump) {
		p.jumpBuffer = t.JumpBuffer
	}
	p.jumpHeld = in.Held(input.ActionJump)

	// Drop through a one-way platform. Wall contact suppresses it.
	if p.grounded && p.onPlatform && p.wallSide == collision.SideNone && in.Held(input.ActionDown) {
		p.dropTimer = t.DropThroughTime
		p.grounded = false
	}

	sliding := p.wallSide != collision.SideNone && !p.grounded
	if sliding && e.Vel.Y >= 0 && p.jumpBuffer > 0 {
		wall := float64(p.wallSide)
		e.Vel.X = -wall * t.WallJumpX
		e.Vel.Y = -t.WallJumpY
		e.face(-wall)
		p.jumpBuffer = 0
		p.coyote = 0
		p.wallSide = collision.SideNone
		p.wallStick = 0
		sliding = false
		e.Anim.SetState(component.AnimWallJump, true)
	}

	if in.Pressed(input.ActionAttack) && p.attackCooldown <= 0 && !e.Anim.Locked() {
		state := component.AnimAttack
		if !p.grounded {
			state = component.AnimAttackAir
		}
		e.Anim.SetState(state, true)
		p.attackCooldown = t.AttackCooldown
	}

	if in.Pressed(input.ActionRoll) && p.rollCooldown <= 0 && p.grounded && !e.Anim.Locked() {
		e.Anim.SetState(component.AnimRoll, true)
		p.rollCooldown = t.RollCooldown
		e.Health.StartInvuln(t.RollInvuln)
		e.Vel.X = e.Facing * t.RollSpeed
		ctx.Effect(EffectDust, e.feetCenter(), EffectOptions{Facing: e.Facing})
		e.playerPhysics(ctx, 1, false)
		return
	}

	scale := 1.0
	if e.Vel.Y < 0 && !p.jumpHeld {
		scale = t.LowJumpGravity
	}
	wasGrounded := p.grounded
	res := e.playerPhysics(ctx, scale, sliding && e.Vel.Y >= 0)

	if res.Grounded {
		p.coyote = t.CoyoteTime
	}
	if p.jumpBuffer > 0 && p.coyote > 0 {
		e.Vel.Y = -t.JumpSpeed
		p.jumpBuffer = 0
		p.coyote = 0
		p.grounded = false
		ctx.Effect(EffectDust, e.feetCenter(), EffectOptions{})
	}

	if !p.grounded && p.wallSide != collision.SideNone && e.Vel.Y >= 0 {
		p.wallStick = t.WallStickTime
		if p.regrab <= 0 && !e.Anim.Locked() && ctx.Tiles != nil {
			if l, ok := collision.LedgeProbe(ctx.Tiles, e.body(), p.wallSide); ok {
				e.grabLedge(l)
				return
			}
		}
	}

	if !e.Anim.Locked() {
		e.derivePlayerState(t, wasGrounded)
	}
}

// playerPhysics resolves movement and records contacts. slide caps the fall
// speed to the wall-slide speed.
func (e *Entity) playerPhysics(ctx *Context, gravityScale float64, slide bool) collision.Result {
	p := e.Player
	opt := e.physics(ctx)
	opt.GravityScale = gravityScale
	opt.DropThrough = p.dropTimer > 0
	if slide {
		opt.MaxFallSpeed = ctx.tuning().Player.WallSlideSpeed
	}
	res := e.move(ctx, opt)
	p.grounded = res.Grounded
	p.onPlatform = res.OnPlatform
	switch {
	case res.Grounded:
		p.wallSide = collision.SideNone
	case res.WallLeft:
		p.wallSide = collision.SideLeft
	case res.WallRight:
		p.wallSide = collision.SideRight
	default:
		p.wallSide = collision.SideNone
	}
	return res
}

func (e *Entity) grabLedge(l collision.Ledge) {
	p := e.Player
	e.Pos = l.Hang
	e.Vel = cp.Vector{}
	e.face(float64(p.wallSide))
	p.ledge = &l
	p.jumpBuffer = 0
	e.Anim.SetState(component.AnimLedgeGrab, true)
}

func (e *Entity) updateHanging(ctx *Context, t *PlayerTuning) {
	p := e.Player
	e.Vel = cp.Vector{}
	if e.Anim.State() != component.AnimLedgeGrab {
		return
	}
	if ctx.Input.Pressed(input.ActionJump) && p.ledge != nil {
		e.Anim.SetState(component.AnimLedgeClimb, true)
		return
	}
	if ctx.Input.Pressed(input.ActionDown) || p.ledge == nil {
		p.ledge = nil
		p.regrab = t.LedgeRegrab
		p.wallSide = collision.SideNone
		e.Anim.SetState(component.AnimFall, true)
	}
}

func (e *Entity) derivePlayerState(t *PlayerTuning, wasGrounded bool) {
	p := e.Player
	cur := e.Anim.State()
	if p.grounded {
		if !wasGrounded {
			e.Anim.SetState(component.AnimLand, false)
			return
		}
		moving := math.Abs(e.Vel.X) > t.RunThreshold
		if cur == component.AnimLand && !e.Anim.Finished() && !moving {
			return
		}
		if moving {
			e.Anim.SetState(component.AnimRun, false)
		} else {
			e.Anim.SetState(component.AnimIdle, false)
		}
		return
	}
	switch {
	case cur == component.AnimWallJump && !e.Anim.Finished() && e.Vel.Y < 0:
	case p.wallSide != collision.SideNone && e.Vel.Y >= 0:
		e.Anim.SetState(component.AnimWallSlide, false)
	case e.Vel.Y < 0:
		e.Anim.SetState(component.AnimJump, false)
	default:
		e.Anim.SetState(component.AnimFall, false)
	}
}

func (e *Entity) playerAnimationEnded(ended component.AnimState) {
	p := e.Player
	switch ended {
	case component.AnimLedgeClimb:
		if p.ledge != nil {
			e.Pos = p.ledge.Stand
		}
		p.ledge = nil
		p.grounded = true
		p.wallSide = collision.SideNone
		e.Vel = cp.Vector{}
		e.Anim.SetState(component.AnimIdle, true)
		return
	case component.AnimDie:
		return
	}
	if next, ok := component.PlayerTransitions.Next(ended, true); ok {
		if next == component.AnimIdle && !p.grounded {
			next = component.AnimFall
		}
		e.Anim.SetState(next, false)
	}
}

func (e *Entity) feetCenter() cp.Vector {
	return cp.Vector{X: e.Pos.X + e.W/2, Y: e.Pos.Y + e.H}
}
