package entity

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/gumshoe/component"
	"golang.org/x/image/colornames"
)

// TakeDamage applies the shared damage protocol. It is a no-op while the
// entity is invulnerable or dead. knockbackX is the horizontal velocity given
// to the defender; its sign tells which side the hit came from. Returns true
// if health was lost.
func (e *Entity) TakeDamage(amount int, knockbackX float64, ctx *Context) bool {
	if !e.Alive() || e.Health.Invuln > 0 {
		return false
	}
	t := ctx.tuning()

	// A blocker's stance negates hits from the side it faces.
	if e.Blocking() && knockbackX*e.Facing < 0 {
		at := e.Center()
		at.X += e.Facing * e.W / 2
		ctx.Effect(EffectBlock, at, EffectOptions{Facing: e.Facing, Color: colornames.Lightsteelblue})
		return false
	}

	if !e.Health.ApplyDamage(amount, e.hurtInvuln(t)) {
		return false
	}
	e.Vel.X = knockbackX
	e.Vel.Y = -t.Damage.Pop

	at := e.Center()
	ctx.Effect(EffectHit, at, EffectOptions{Facing: knockbackX})
	col := colornames.White
	if e.Kind == KindPlayer {
		col = colornames.Orangered
	}
	ctx.DamageNumber(at.Sub(cp.Vector{Y: e.H / 2}), amount, col)
	ctx.Shake(t.Damage.ShakeIntensity, t.Damage.ShakeDuration)
	ctx.Freeze(t.Damage.HitFreeze)

	if e.Health.Dead {
		e.Vel.X = knockbackX / 2
		e.Anim.SetState(component.AnimDie, true)
		ctx.Effect(EffectDeathBurst, at, EffectOptions{Scale: 1})
		ctx.Shake(t.Damage.DeathShake, t.Damage.ShakeDuration*2)
		return true
	}
	e.Anim.SetState(component.AnimHurt, true)
	if e.Player != nil {
		e.Player.hurtTimer = t.Player.HurtTime
		e.Player.ledge = nil
	}
	if e.AI != nil {
		e.AI.hurt()
	}
	return true
}

func (e *Entity) hurtInvuln(t *Tuning) float64 {
	if e.Kind == KindPlayer {
		return t.Player.HurtInvuln
	}
	return t.Enemy(e.Kind).HurtInvuln
}
