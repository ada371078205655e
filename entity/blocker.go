package entity

// updateBlocker: patrol -> chase -> attack | block -> cooldown. Reaching
// attack range rolls the injected random source against BlockChance.
func (e *Entity) updateBlocker(ctx *Context) {
	t := ctx.tuning().Enemy(e.Kind)
	b := e.AI
	e.tickBrain(ctx.Dt)
	if e.stunned(ctx) {
		return
	}
	dx, dist, seen := e.sense(ctx)

	switch b.state {
	case aiPatrol:
		if seen && dist <= t.AggroRange {
			b.enter(aiChase, 0)
			e.hold(dx)
			break
		}
		e.patrol(ctx, t)
	case aiChase:
		switch {
		case !seen || dist > t.LoseRange:
			b.enter(aiPatrol, t.PatrolTime)
		case dist <= t.AttackRange && b.cooldown <= 0:
			e.face(dx)
			if ctx.float() < t.BlockChance {
				b.enter(aiBlock, t.BlockTime)
				b.cooldown = t.AttackCooldown / 2
				e.Vel.X = 0
			} else {
				e.startAttack(t)
			}
		case dist <= t.AttackRange:
			e.hold(dx)
		default:
			e.face(dx)
			e.Vel.X = e.Facing * t.ChaseSpeed
		}
	case aiBlock:
		e.hold(dx)
		if b.timer <= 0 {
			b.enter(aiCooldown, 0)
		}
	case aiAttack:
		e.Vel.X = 0
	case aiCooldown:
		e.hold(dx)
		if b.cooldown <= 0 {
			if seen && dist <= t.LoseRange {
				b.enter(aiChase, 0)
			} else {
				b.enter(aiPatrol, t.PatrolTime)
			}
		}
	default:
		b.enter(aiPatrol, t.PatrolTime)
	}

	e.enemyPhysics(ctx)
	e.deriveEnemyState()
}
