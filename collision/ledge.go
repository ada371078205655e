package collision

import "github.com/jakecoffman/cp"

// Side names a horizontal contact direction.
type Side int8

const (
	SideNone  Side = 0
	SideLeft  Side = -1
	SideRight Side = 1
)

// Ledge describes a grabbable ledge next to a body.
type Ledge struct {
	// Hang is the body position while hanging from the ledge.
	Hang cp.Vector
	// Stand is the body position after climbing onto it.
	Stand cp.Vector
}

// LedgeProbe checks the wall on side for a ledge at body-top height: the
// cell beside the body's top edge must be open and the cell directly below
// it solid. The climb destination must also be free of solids.
func LedgeProbe(t Tiles, b Body, side Side) (Ledge, bool) {
	if side == SideNone {
		return Ledge{}, false
	}
	ts := t.TileSize()
	var cx int
	if side == SideRight {
		cx = cellFloor(b.Pos.X+b.W+contactProbe, ts)
	} else {
		cx = cellFloor(b.Pos.X-contactProbe, ts)
	}
	cy := cellFloor(b.Pos.Y, ts)
	if t.Kind(cx, cy) == TileSolid || t.Kind(cx, cy+1) != TileSolid {
		return Ledge{}, false
	}

	top := float64(cy+1) * ts
	var l Ledge
	if side == SideRight {
		l.Hang = cp.Vector{X: float64(cx)*ts - b.W, Y: top}
		l.Stand = cp.Vector{X: float64(cx) * ts, Y: top - b.H}
	} else {
		l.Hang = cp.Vector{X: float64(cx+1) * ts, Y: top}
		l.Stand = cp.Vector{X: float64(cx+1)*ts - b.W, Y: top - b.H}
	}

	c0, c1 := cellSpan(l.Stand.X, l.Stand.X+b.W, ts)
	r0, r1 := cellSpan(l.Stand.Y, l.Stand.Y+b.H, ts)
	for y := r0; y <= r1; y++ {
		if solidRow(t, y, c0, c1) {
			return Ledge{}, false
		}
	}
	return l, true
}
