package entity

import "github.com/milk9111/gumshoe/collision"

// retreatHysteresis widens the retreat range before the caster stops backing
// away, so it does not flicker between idle and retreat.
const retreatHysteresis = 1.5

// updateCaster: idle -> retreat | attack -> cooldown. The projectile is a
// visual; the damage comes from the long attack hitbox.
func (e *Entity) updateCaster(ctx *Context) {
	t := ctx.tuning().Enemy(e.Kind)
	b := e.AI
	e.tickBrain(ctx.Dt)
	if e.stunned(ctx) {
		return
	}
	dx, dist, seen := e.sense(ctx)

	switch b.state {
	case aiIdle:
		e.Vel.X = 0
		if !seen || dist > t.AggroRange {
			break
		}
		e.face(dx)
		switch {
		case dist < t.RetreatRange:
			b.enter(aiRetreat, 0)
		case dist <= t.AttackRange && b.cooldown <= 0:
			e.startAttack(t)
		}
	case aiRetreat:
		if !seen || dist >= t.RetreatRange*retreatHysteresis || b.wallHit != collision.SideNone {
			b.enter(aiIdle, 0)
			e.hold(dx)
			break
		}
		e.face(dx)
		e.Vel.X = -e.Facing * t.RetreatSpeed
	case aiAttack:
		e.Vel.X = 0
		if !b.cast && e.Anim.State().IsAttack() && e.Anim.Progress() >= t.CastPoint {
			b.cast = true
			at := e.Center()
			at.X += e.Facing * e.W / 2
			ctx.Effect(EffectProjectile, at, EffectOptions{Facing: e.Facing})
		}
	case aiCooldown:
		e.hold(dx)
		if b.cooldown <= 0 {
			b.enter(aiIdle, 0)
		}
	default:
		b.enter(aiIdle, 0)
	}

	e.enemyPhysics(ctx)
	e.deriveEnemyState()
}
