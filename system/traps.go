package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/gumshoe/collision"
	"github.com/milk9111/gumshoe/common"
	"github.com/milk9111/gumshoe/entity"
)

type TrapConfig struct {
	SpikeDamage    int     `yaml:"spike_damage"`
	SpikeBounce    float64 `yaml:"spike_bounce"`
	SpikeCooldown  float64 `yaml:"spike_cooldown"`
	CrumbleFuse    float64 `yaml:"crumble_fuse"`
	CrumbleShake   float64 `yaml:"crumble_shake"`
	CrumbleShakeDt float64 `yaml:"crumble_shake_duration"`
}

func DefaultTrapConfig() TrapConfig {
	return TrapConfig{
		SpikeDamage:    1,
		SpikeBounce:    320,
		SpikeCooldown:  0.5,
		CrumbleFuse:    0.5,
		CrumbleShake:   2,
		CrumbleShakeDt: 0.2,
	}
}

type CrumbleState int

const (
	CrumbleStable CrumbleState = iota
	CrumbleShaking
	CrumbleGone
)

func (s CrumbleState) String() string {
	switch s {
	case CrumbleShaking:
		return "shaking"
	case CrumbleGone:
		return "crumbled"
	}
	return "stable"
}

// Crumble is one crumbling floor tile.
type Crumble struct {
	CX, CY int
	Timer  float64
	State  CrumbleState
}

// Traps runs the level's spikes and crumbling floors. Crumbling is the only
// thing allowed to mutate the live grid.
type Traps struct {
	cfg      TrapConfig
	grid     *collision.Grid
	crumbles []*Crumble
	hasSpike bool
	cooldown float64
}

// NewTraps scans grid once for trap tiles.
func NewTraps(grid *collision.Grid, cfg TrapConfig) *Traps {
	t := &Traps{cfg: cfg, grid: grid}
	if grid == nil {
		return t
	}
	grid.Each(collision.CodeCrumble, func(cx, cy int) {
		t.crumbles = append(t.crumbles, &Crumble{CX: cx, CY: cy})
	})
	grid.Each(collision.CodeSpike, func(int, int) {
		t.hasSpike = true
	})
	return t
}

// SetConfig swaps tuning without rescanning the grid.
func (t *Traps) SetConfig(cfg TrapConfig) {
	t.cfg = cfg
}

// Crumbles returns a copy of the crumble records.
func (t *Traps) Crumbles() []Crumble {
	out := make([]Crumble, 0, len(t.crumbles))
	for _, c := range t.crumbles {
		out = append(out, *c)
	}
	return out
}

func (t *Traps) Update(ctx *entity.Context, player *entity.Entity) {
	if t.grid == nil {
		return
	}
	t.cooldown = common.Tick(t.cooldown, ctx.Dt)
	if player != nil && player.Alive() {
		t.spikes(ctx, player)
	}
	t.updateCrumbles(ctx, player)
}

func (t *Traps) spikes(ctx *entity.Context, p *entity.Entity) {
	if !t.hasSpike || t.cooldown > 0 {
		return
	}
	feet := common.Rect(p.Pos.X+1, p.Pos.Y+p.H-4, p.W-2, 4)
	if !t.touches(feet, collision.CodeSpike) {
		return
	}
	p.TakeDamage(t.cfg.SpikeDamage, 0, ctx)
	p.Vel.Y = -t.cfg.SpikeBounce
	t.cooldown = t.cfg.SpikeCooldown
	ctx.Effect(entity.EffectSpike, cp.Vector{X: p.Center().X, Y: p.Pos.Y + p.H}, entity.EffectOptions{})
}

func (t *Traps) touches(box cp.BB, code int) bool {
	ts := t.grid.TileSize()
	c0, r0 := t.grid.CellAt(box.L, box.B)
	c1, r1 := t.grid.CellAt(box.R-common.TimeEpsilon, box.T-common.TimeEpsilon)
	for cy := r0; cy <= r1; cy++ {
		for cx := c0; cx <= c1; cx++ {
			if t.grid.Code(cx, cy) != code {
				continue
			}
			cell := common.Rect(float64(cx)*ts, float64(cy)*ts, ts, ts)
			if common.Overlaps(box, cell) {
				return true
			}
		}
	}
	return false
}

func (t *Traps) updateCrumbles(ctx *entity.Context, p *entity.Entity) {
	ts := t.grid.TileSize()
	standing := p != nil && p.Alive() && p.Player != nil && p.Player.Grounded()
	var feet cp.BB
	if standing {
		feet = p.Feet()
	}
	for _, c := range t.crumbles {
		switch c.State {
		case CrumbleStable:
			cell := common.Rect(float64(c.CX)*ts, float64(c.CY)*ts, ts, ts)
			if standing && common.Overlaps(feet, cell) {
				c.State = CrumbleShaking
				c.Timer = t.cfg.CrumbleFuse
			}
		case CrumbleShaking:
			c.Timer = common.Tick(c.Timer, ctx.Dt)
			if c.Timer > 0 {
				continue
			}
			c.State = CrumbleGone
			t.grid.Clear(c.CX, c.CY)
			at := cp.Vector{X: (float64(c.CX) + 0.5) * ts, Y: (float64(c.CY) + 0.5) * ts}
			ctx.Effect(entity.EffectDebris, at, entity.EffectOptions{Scale: 1})
			ctx.Shake(t.cfg.CrumbleShake, t.cfg.CrumbleShakeDt)
		}
	}
}
