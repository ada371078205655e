package entity

import (
	"github.com/milk9111/gumshoe/collision"
	"github.com/milk9111/gumshoe/common"
	"github.com/milk9111/gumshoe/component"
)

type aiState int

const (
	aiPatrol aiState = iota
	aiAggro
	aiChase
	aiAttack
	aiCooldown
	aiIdle
	aiRetreat
	aiBlock
)

var aiStateNames = [...]string{"patrol", "aggro", "chase", "attack", "cooldown", "idle", "retreat", "block"}

func (s aiState) String() string {
	if int(s) < len(aiStateNames) {
		return aiStateNames[s]
	}
	return "unknown"
}

// Brain is the enemy-only variant data.
type Brain struct {
	state    aiState
	timer    float64
	cooldown float64
	cast     bool
	grounded bool
	wallHit  collision.Side
}

// State names the current behavior state.
func (b *Brain) State() string { return b.state.String() }

func (b *Brain) enter(s aiState, timer float64) {
	b.state = s
	b.timer = timer
	b.cast = false
}

// hurt cancels an in-progress attack or block.
func (b *Brain) hurt() {
	if b.state == aiAttack || b.state == aiBlock {
		b.enter(aiCooldown, 0)
	}
}

// sense returns the horizontal offset and distance to the living player.
func (e *Entity) sense(ctx *Context) (dx, dist float64, ok bool) {
	pv, ok := ctx.PlayerView()
	if !ok {
		return 0, 0, false
	}
	c := e.Center()
	return pv.Pos.X - c.X, c.Distance(pv.Pos), true
}

// stunned handles the shared hurt/die path. Returns true if behavior should
// be skipped this step.
func (e *Entity) stunned(ctx *Context) bool {
	switch e.Anim.State() {
	case component.AnimHurt, component.AnimDie:
		if e.AI.grounded {
			e.Vel.X = common.Approach(e.Vel.X, 0, 600*ctx.Dt)
		}
		e.enemyPhysics(ctx)
		return true
	}
	return false
}

// enemyPhysics resolves movement and records whether the body ran into a wall
// in the direction it was moving.
func (e *Entity) enemyPhysics(ctx *Context) collision.Result {
	dir := common.Sign(e.Vel.X)
	if dir == 0 {
		dir = e.Facing
	}
	res := e.move(ctx, e.physics(ctx))
	e.AI.grounded = res.Grounded
	switch {
	case res.WallLeft && dir < 0:
		e.AI.wallHit = collision.SideLeft
	case res.WallRight && dir > 0:
		e.AI.wallHit = collision.SideRight
	default:
		e.AI.wallHit = collision.SideNone
	}
	return res
}

// patrol walks in the facing direction, turning on a jittered timer or on
// wall contact.
func (e *Entity) patrol(ctx *Context, t *EnemyTuning) {
	b := e.AI
	if b.timer <= 0 || b.wallHit != collision.SideNone {
		e.Facing = -e.Facing
		b.timer = t.PatrolTime + ctx.float()*t.PatrolJitter
		b.wallHit = collision.SideNone
	}
	e.Vel.X = e.Facing * t.PatrolSpeed
}

// hold stops in place facing the player.
func (e *Entity) hold(dx float64) {
	e.Vel.X = 0
	e.face(dx)
}

// startAttack begins the swing and the cooldown that gates the next one.
func (e *Entity) startAttack(t *EnemyTuning) {
	e.AI.enter(aiAttack, 0)
	e.AI.cooldown = t.AttackCooldown
	e.Vel.X = 0
	e.Anim.SetState(component.AnimAttack, true)
}

func (e *Entity) deriveEnemyState() {
	if e.Anim.Locked() {
		return
	}
	switch {
	case e.AI.state == aiBlock:
		e.Anim.SetState(component.AnimBlock, false)
	case !e.AI.grounded && e.Vel.Y > 0:
		e.Anim.SetState(component.AnimFall, false)
	case e.Vel.X != 0:
		e.Anim.SetState(component.AnimRun, false)
	default:
		e.Anim.SetState(component.AnimIdle, false)
	}
}

func (e *Entity) enemyAnimationEnded(ended component.AnimState) {
	if ended == component.AnimDie {
		return
	}
	if ended == component.AnimAttack && e.AI.state == aiAttack {
		e.AI.state = aiCooldown
	}
	if next, ok := component.EnemyTransitions.Next(ended, true); ok {
		e.Anim.SetState(next, false)
	}
}

// tickBrain counts the behavior timers down and recovers from an attack that
// was cut short by a forced animation.
func (e *Entity) tickBrain(dt float64) {
	b := e.AI
	b.timer = common.Tick(b.timer, dt)
	b.cooldown = common.Tick(b.cooldown, dt)
	if b.state == aiAttack && !e.Anim.State().IsAttack() {
		b.state = aiCooldown
	}
}
