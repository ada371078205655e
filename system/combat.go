package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/gumshoe/common"
	"github.com/milk9111/gumshoe/component"
	"github.com/milk9111/gumshoe/entity"
)

// EffectImpact marks the contact point of a connecting swing.
const EffectImpact = "impact"

// swing tracks the defenders already hit during one continuous attack.
type swing struct {
	state    component.AnimState
	progress float64
	hit      map[int]struct{}
}

// Combat resolves attack hitboxes between the player and enemies. Each
// attacker/defender pair connects at most once per swing.
type Combat struct {
	swings map[int]*swing
	live   map[int]struct{}
}

func NewCombat() *Combat {
	return &Combat{
		swings: make(map[int]*swing),
		live:   make(map[int]struct{}),
	}
}

// Reset forgets every swing, e.g. on level load.
func (c *Combat) Reset() {
	clear(c.swings)
}

// Hitbox returns the forward attack box for e using profile p.
func Hitbox(e *entity.Entity, p component.AttackProfile) cp.BB {
	top := e.Pos.Y + p.OffsetY
	if e.Facing < 0 {
		return common.Rect(e.Pos.X-p.Reach, top, p.Reach, p.Height)
	}
	return common.Rect(e.Pos.X+e.W, top, p.Reach, p.Height)
}

// Update runs one combat pass. enemies may include dead entities; they are
// neither attackers nor targets.
func (c *Combat) Update(ctx *entity.Context, player *entity.Entity, enemies []*entity.Entity) {
	clear(c.live)
	t := ctx.Tuning
	if t == nil {
		t = entity.DefaultTuning()
	}

	if player != nil && player.Alive() && player.State().IsAttack() {
		if box, ok := c.activeBox(player, t.Attack(player.Kind)); ok {
			p := t.Attack(player.Kind)
			for _, e := range enemies {
				if e.Alive() {
					c.strike(ctx, player, e, box, p)
				}
			}
		}
	}

	for _, e := range enemies {
		if !e.Alive() || e.State() != component.AnimAttack || player == nil || !player.Alive() {
			continue
		}
		p := t.Attack(e.Kind)
		if box, ok := c.activeBox(e, p); ok {
			c.strike(ctx, e, player, box, p)
		}
	}

	for id := range c.swings {
		if _, ok := c.live[id]; !ok {
			delete(c.swings, id)
		}
	}
}

// activeBox returns the hitbox if the attacker's swing is inside its window.
// A swing restarts when the state changes or progress runs backwards.
func (c *Combat) activeBox(a *entity.Entity, p component.AttackProfile) (cp.BB, bool) {
	c.live[a.ID] = struct{}{}
	state, progress := a.State(), a.Anim.Progress()
	s := c.swings[a.ID]
	if s == nil || s.state != state || progress < s.progress {
		s = &swing{state: state, hit: make(map[int]struct{})}
		c.swings[a.ID] = s
	}
	s.progress = progress
	if !p.Active(progress) {
		return cp.BB{}, false
	}
	return Hitbox(a, p), true
}

func (c *Combat) strike(ctx *entity.Context, attacker, defender *entity.Entity, box cp.BB, p component.AttackProfile) {
	if attacker.Team == defender.Team {
		return
	}
	s := c.swings[attacker.ID]
	if _, done := s.hit[defender.ID]; done {
		return
	}
	if !common.Overlaps(box, defender.Bounds()) {
		return
	}
	s.hit[defender.ID] = struct{}{}
	defender.TakeDamage(p.Damage, attacker.Facing*p.Knockback, ctx)
	at := defender.Center()
	at.X -= attacker.Facing * defender.W / 2
	ctx.Effect(EffectImpact, at, entity.EffectOptions{Facing: attacker.Facing})
}
