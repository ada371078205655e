package collision

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTile = 16.0

// gridFromRows builds a grid from ASCII rows: '#' solid, '=' platform,
// '^' spike, 'C' crumble, anything else empty.
func gridFromRows(t *testing.T, rows ...string) *Grid {
	t.Helper()
	w := len(rows[0])
	cells := make([]int, 0, w*len(rows))
	for _, r := range rows {
		require.Len(t, r, w)
		for _, ch := range r {
			switch ch {
			case '#':
				cells = append(cells, 1)
			case '=':
				cells = append(cells, CodePlatformMin)
			case '^':
				cells = append(cells, CodeSpike)
			case 'C':
				cells = append(cells, CodeCrumble)
			default:
				cells = append(cells, CodeEmpty)
			}
		}
	}
	g, err := NewGrid(w, len(rows), testTile, cells)
	require.NoError(t, err)
	return g
}

func overlapsSolid(g *Grid, pos cp.Vector, w, h float64) bool {
	c0, c1 := cellSpan(pos.X, pos.X+w, g.TileSize())
	r0, r1 := cellSpan(pos.Y, pos.Y+h, g.TileSize())
	for cy := r0; cy <= r1; cy++ {
		for cx := c0; cx <= c1; cx++ {
			if g.Kind(cx, cy) == TileSolid {
				return true
			}
		}
	}
	return false
}

var gravityOpts = Options{Gravity: 1200, GravityScale: 1, MaxFallSpeed: 600}

func TestResolveFallingBodyLandsOnFloor(t *testing.T) {
	g := gridFromRows(t,
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"##########",
	)
	b := Body{Pos: cp.Vector{X: 40, Y: 2}, Vel: cp.Vector{Y: 50}, W: 12, H: 24}
	floorTop := 5 * testTile
	dt := 1.0 / 60

	landed := false
	for i := 0; i < 120; i++ {
		res := Resolve(g, b, dt, gravityOpts)
		touching := math.Abs(res.Pos.Y+b.H-floorTop) < 1e-9
		assert.Equal(t, touching, res.Grounded, "step %d grounded iff bottom on floor top", i)
		assert.False(t, overlapsSolid(g, res.Pos, b.W, b.H), "step %d overlaps solid", i)
		if res.Grounded {
			assert.Zero(t, res.Vel.Y)
			assert.InDelta(t, floorTop, res.Pos.Y+b.H, 1e-9)
			landed = true
			break
		}
		b.Pos, b.Vel = res.Pos, res.Vel
	}
	assert.True(t, landed, "body never landed")
}

func TestResolveSnapsRestingBodyToFloor(t *testing.T) {
	g := gridFromRows(t,
		"..........",
		"..........",
		"...===....",
		"..........",
		"..........",
		"##########",
	)
	still := Options{GravityScale: 1, MaxFallSpeed: 600}
	tests := []struct {
		name     string
		x, floor float64
		platform bool
	}{
		{"just above solid", 8, 5 * testTile, false},
		{"just above platform", 52, 2 * testTile, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Body{Pos: cp.Vector{X: tt.x, Y: tt.floor - 24 - contactProbe/2}, W: 12, H: 24}
			res := Resolve(g, b, 1.0/60, still)
			require.True(t, res.Grounded)
			assert.Equal(t, tt.platform, res.OnPlatform)
			assert.Equal(t, tt.floor, res.Pos.Y+b.H)
		})
	}
}

func TestResolveNeverOverlapsSolids(t *testing.T) {
	g := gridFromRows(t,
		"##########",
		"#........#",
		"#...##...#",
		"#........#",
		"#.#....#.#",
		"##########",
	)
	velocities := []cp.Vector{
		{X: 900, Y: 0}, {X: -900, Y: 0}, {X: 0, Y: -900}, {X: 0, Y: 900},
		{X: 700, Y: -500}, {X: -650, Y: 420}, {X: 2000, Y: 2000},
	}
	for _, v := range velocities {
		b := Body{Pos: cp.Vector{X: 20, Y: 20}, Vel: v, W: 10, H: 12}
		for i := 0; i < 90; i++ {
			res := Resolve(g, b, 1.0/60, gravityOpts)
			require.False(t, overlapsSolid(g, res.Pos, b.W, b.H), "vel %v step %d pos %v", v, i, res.Pos)
			b.Pos, b.Vel = res.Pos, res.Vel
		}
	}
}

func TestResolveWallFlags(t *testing.T) {
	g := gridFromRows(t,
		"#......#",
		"#......#",
		"#......#",
		"########",
	)
	tests := []struct {
		name      string
		pos       cp.Vector
		vx        float64
		wallLeft  bool
		wallRight bool
	}{
		{"moving into right wall", cp.Vector{X: 100, Y: 20}, 300, false, true},
		{"moving into left wall", cp.Vector{X: 18, Y: 20}, -300, true, false},
		{"resting against right wall", cp.Vector{X: 112 - 10, Y: 20}, 0, false, true},
		{"resting against left wall", cp.Vector{X: 16, Y: 20}, 0, true, false},
		{"open air", cp.Vector{X: 50, Y: 20}, 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(g, Body{Pos: tt.pos, Vel: cp.Vector{X: tt.vx}, W: 10, H: 12}, 1.0/60, Options{})
			assert.Equal(t, tt.wallLeft, res.WallLeft)
			assert.Equal(t, tt.wallRight, res.WallRight)
			if tt.vx != 0 && (tt.wallLeft || tt.wallRight) {
				assert.Zero(t, res.Vel.X)
			}
		})
	}
}

func TestResolveCeiling(t *testing.T) {
	g := gridFromRows(t,
		"####",
		"....",
		"....",
		"####",
	)
	res := Resolve(g, Body{Pos: cp.Vector{X: 20, Y: 18}, Vel: cp.Vector{Y: -400}, W: 10, H: 12}, 1.0/60, Options{})
	assert.True(t, res.HitCeiling)
	assert.Zero(t, res.Vel.Y)
	assert.Equal(t, testTile, res.Pos.Y)
}

func TestResolveOneWayPlatform(t *testing.T) {
	g := gridFromRows(t,
		"......",
		"......",
		"......",
		"..==..",
		"......",
		"......",
		"######",
	)
	platTop := 3 * testTile

	t.Run("lands from above", func(t *testing.T) {
		b := Body{Pos: cp.Vector{X: 34, Y: platTop - 12 - 2}, Vel: cp.Vector{Y: 300}, W: 10, H: 12}
		res := Resolve(g, b, 1.0/60, gravityOpts)
		assert.True(t, res.Grounded)
		assert.True(t, res.OnPlatform)
		assert.Equal(t, platTop-12, res.Pos.Y)
	})

	t.Run("never stops upward motion", func(t *testing.T) {
		b := Body{Pos: cp.Vector{X: 34, Y: platTop + testTile + 2}, Vel: cp.Vector{Y: -600}, W: 10, H: 12}
		res := Resolve(g, b, 1.0/60, Options{})
		assert.False(t, res.HitCeiling)
		assert.Less(t, res.Vel.Y, 0.0)
		assert.Less(t, res.Pos.Y, b.Pos.Y)
	})

	t.Run("drop through requested", func(t *testing.T) {
		b := Body{Pos: cp.Vector{X: 34, Y: platTop - 12}, Vel: cp.Vector{}, W: 10, H: 12}
		res := Resolve(g, b, 1.0/60, Options{Gravity: 1200, GravityScale: 1, MaxFallSpeed: 600, DropThrough: true})
		assert.False(t, res.Grounded)
		assert.Greater(t, res.Pos.Y, b.Pos.Y)
	})

	t.Run("bottom already below platform top", func(t *testing.T) {
		b := Body{Pos: cp.Vector{X: 34, Y: platTop - 6}, Vel: cp.Vector{Y: 200}, W: 10, H: 12}
		res := Resolve(g, b, 1.0/60, gravityOpts)
		assert.False(t, res.Grounded)
		assert.False(t, res.OnPlatform)
	})

	t.Run("approached sideways", func(t *testing.T) {
		b := Body{Pos: cp.Vector{X: 22, Y: platTop - 4}, Vel: cp.Vector{X: 300, Y: 60}, W: 10, H: 12}
		res := Resolve(g, b, 1.0/60, gravityOpts)
		assert.False(t, res.OnPlatform)
		assert.Greater(t, res.Pos.X, b.Pos.X)
	})

	t.Run("resting on platform stays grounded", func(t *testing.T) {
		b := Body{Pos: cp.Vector{X: 34, Y: platTop - 12}, W: 10, H: 12}
		for i := 0; i < 30; i++ {
			res := Resolve(g, b, 1.0/60, gravityOpts)
			require.True(t, res.Grounded)
			require.True(t, res.OnPlatform)
			b.Pos, b.Vel = res.Pos, res.Vel
		}
	})
}

func TestGridOutOfBounds(t *testing.T) {
	g := gridFromRows(t, "...", "...")
	tests := []struct {
		cx, cy int
		want   TileKind
	}{
		{-1, 0, TileSolid},
		{3, 1, TileSolid},
		{1, 2, TileSolid},
		{1, -1, TileEmpty},
		{-1, -1, TileSolid},
		{1, 1, TileEmpty},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, g.Kind(tt.cx, tt.cy), "cell %d,%d", tt.cx, tt.cy)
	}
}

func TestResolveOpenCeilingAboveGrid(t *testing.T) {
	g := gridFromRows(t, "....", "....", "####")
	res := Resolve(g, Body{Pos: cp.Vector{X: 20, Y: 2}, Vel: cp.Vector{Y: -600}, W: 10, H: 12}, 1.0/60, Options{})
	assert.False(t, res.HitCeiling)
	assert.Less(t, res.Pos.Y, 0.0)
}

func TestLedgeProbe(t *testing.T) {
	g := gridFromRows(t,
		"........",
		"........",
		".....###",
		".....###",
		".....###",
		"########",
	)
	wallX := 5 * testTile
	ledgeTop := 2 * testTile

	t.Run("grabs ledge at head height", func(t *testing.T) {
		b := Body{Pos: cp.Vector{X: wallX - 10, Y: ledgeTop - 6}, W: 10, H: 20}
		l, ok := LedgeProbe(g, b, SideRight)
		require.True(t, ok)
		assert.Equal(t, cp.Vector{X: wallX - 10, Y: ledgeTop}, l.Hang)
		assert.Equal(t, cp.Vector{X: wallX, Y: ledgeTop - 20}, l.Stand)
	})

	t.Run("no ledge when head is below the lip", func(t *testing.T) {
		b := Body{Pos: cp.Vector{X: wallX - 10, Y: ledgeTop + 4}, W: 10, H: 20}
		_, ok := LedgeProbe(g, b, SideRight)
		assert.False(t, ok)
	})

	t.Run("no ledge on the open side", func(t *testing.T) {
		b := Body{Pos: cp.Vector{X: wallX - 10, Y: ledgeTop - 6}, W: 10, H: 20}
		_, ok := LedgeProbe(g, b, SideLeft)
		assert.False(t, ok)
	})
}
