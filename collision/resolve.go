package collision

import (
	"math"

	"github.com/jakecoffman/cp"
)

// contactProbe is how far past an edge the resolver looks for resting
// contacts that did not come from this step's movement.
const contactProbe = 0.01

// Body is an axis-aligned box moving through the grid. Pos is the top-left
// corner; y grows downward.
type Body struct {
	Pos cp.Vector
	Vel cp.Vector
	W   float64
	H   float64
}

func (b Body) Bounds() cp.BB {
	return cp.BB{L: b.Pos.X, B: b.Pos.Y, R: b.Pos.X + b.W, T: b.Pos.Y + b.H}
}

// Options controls the per-call physics applied by Resolve.
type Options struct {
	Gravity      float64
	GravityScale float64
	MaxFallSpeed float64
	DropThrough  bool
}

// Result is the resolved body state plus contact flags.
type Result struct {
	Pos        cp.Vector
	Vel        cp.Vector
	Grounded   bool
	WallLeft   bool
	WallRight  bool
	HitCeiling bool
	OnPlatform bool
}

// Resolve integrates gravity and moves the body against the grid, X axis
// first, then Y using the resolved X. Movement is split into sub-steps of at
// most half a tile so fast bodies cannot tunnel through thin walls.
func Resolve(t Tiles, b Body, dt float64, opt Options) Result {
	ts := t.TileSize()
	res := Result{Pos: b.Pos, Vel: b.Vel}

	res.Vel.Y += opt.Gravity * opt.GravityScale * dt
	if opt.MaxFallSpeed > 0 && res.Vel.Y > opt.MaxFallSpeed {
		res.Vel.Y = opt.MaxFallSpeed
	}

	if dx := res.Vel.X * dt; dx != 0 {
		n := subSteps(dx, ts)
		step := dx / float64(n)
		for i := 0; i < n; i++ {
			res.Pos.X += step
			if resolveX(t, &res, b.W, b.H, step) {
				break
			}
		}
	}

	prevBottom := res.Pos.Y + b.H
	if dy := res.Vel.Y * dt; dy != 0 {
		n := subSteps(dy, ts)
		step := dy / float64(n)
		for i := 0; i < n; i++ {
			res.Pos.Y += step
			if resolveY(t, &res, b.W, b.H, step, prevBottom, opt.DropThrough) {
				break
			}
		}
	}

	probeContacts(t, &res, b.W, b.H, opt.DropThrough)
	return res
}

func subSteps(d, ts float64) int {
	n := int(math.Ceil(math.Abs(d) / (ts * 0.5)))
	if n < 1 {
		return 1
	}
	return n
}

func resolveX(t Tiles, res *Result, w, h, dir float64) bool {
	ts := t.TileSize()
	c0, c1 := cellSpan(res.Pos.X, res.Pos.X+w, ts)
	r0, r1 := cellSpan(res.Pos.Y, res.Pos.Y+h, ts)
	if dir > 0 {
		for cx := c0; cx <= c1; cx++ {
			if solidColumn(t, cx, r0, r1) {
				res.Pos.X = float64(cx)*ts - w
				res.Vel.X = 0
				res.WallRight = true
				return true
			}
		}
		return false
	}
	for cx := c1; cx >= c0; cx-- {
		if solidColumn(t, cx, r0, r1) {
			res.Pos.X = float64(cx+1) * ts
			res.Vel.X = 0
			res.WallLeft = true
			return true
		}
	}
	return false
}

func resolveY(t Tiles, res *Result, w, h, dir, prevBottom float64, dropThrough bool) bool {
	ts := t.TileSize()
	c0, c1 := cellSpan(res.Pos.X, res.Pos.X+w, ts)
	r0, r1 := cellSpan(res.Pos.Y, res.Pos.Y+h, ts)
	if dir > 0 {
		for cy := r0; cy <= r1; cy++ {
			top := float64(cy) * ts
			for cx := c0; cx <= c1; cx++ {
				switch t.Kind(cx, cy) {
				case TileSolid:
					res.Pos.Y = top - h
					res.Vel.Y = 0
					res.Grounded = true
					res.OnPlatform = false
					return true
				case TilePlatform:
					if dropThrough || prevBottom > top {
						continue
					}
					res.Pos.Y = top - h
					res.Vel.Y = 0
					res.Grounded = true
					res.OnPlatform = true
					return true
				}
			}
		}
		return false
	}
	for cy := r1; cy >= r0; cy-- {
		for cx := c0; cx <= c1; cx++ {
			if t.Kind(cx, cy) == TileSolid {
				res.Pos.Y = float64(cy+1) * ts
				res.Vel.Y = 0
				res.HitCeiling = true
				return true
			}
		}
	}
	return false
}

func solidColumn(t Tiles, cx, r0, r1 int) bool {
	for cy := r0; cy <= r1; cy++ {
		if t.Kind(cx, cy) == TileSolid {
			return true
		}
	}
	return false
}

func solidRow(t Tiles, cy, c0, c1 int) bool {
	for cx := c0; cx <= c1; cx++ {
		if t.Kind(cx, cy) == TileSolid {
			return true
		}
	}
	return false
}

// probeContacts flags resting contacts: a body standing still against a wall
// or on the floor still reports the contact.
func probeContacts(t Tiles, res *Result, w, h float64, dropThrough bool) {
	ts := t.TileSize()
	r0, r1 := cellSpan(res.Pos.Y, res.Pos.Y+h, ts)
	if !res.WallRight && solidColumn(t, cellFloor(res.Pos.X+w+contactProbe, ts), r0, r1) {
		if edgeOnBoundary(res.Pos.X+w, ts) {
			res.WallRight = true
		}
	}
	if !res.WallLeft && solidColumn(t, cellFloor(res.Pos.X-contactProbe, ts), r0, r1) {
		if edgeOnBoundary(res.Pos.X, ts) {
			res.WallLeft = true
		}
	}
	if res.Grounded || res.Vel.Y < 0 {
		return
	}
	bottom := res.Pos.Y + h
	if !edgeOnBoundary(bottom, ts) {
		return
	}
	c0, c1 := cellSpan(res.Pos.X, res.Pos.X+w, ts)
	row := cellFloor(bottom+contactProbe, ts)
	grounded := solidRow(t, row, c0, c1)
	if !grounded && !dropThrough {
		for cx := c0; cx <= c1; cx++ {
			if t.Kind(cx, row) == TilePlatform {
				grounded = true
				res.OnPlatform = true
				break
			}
		}
	}
	if grounded {
		// Rest exactly on the tile top.
		res.Grounded = true
		res.Pos.Y = float64(row)*ts - h
	}
}

func edgeOnBoundary(v, ts float64) bool {
	r := math.Mod(v, ts)
	if r < 0 {
		r += ts
	}
	return r < contactProbe || ts-r < contactProbe
}
