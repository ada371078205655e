package entity

import (
	"testing"

	"github.com/milk9111/gumshoe/collision"
	"github.com/milk9111/gumshoe/input"
	"github.com/stretchr/testify/require"
)

const testDt = 0.01

// gridFromRows builds a 16px grid: '#' solid, '=' platform, anything else empty.
func gridFromRows(t *testing.T, rows ...string) *collision.Grid {
	t.Helper()
	w, h := len(rows[0]), len(rows)
	cells := make([]int, 0, w*h)
	for _, r := range rows {
		require.Len(t, r, w)
		for _, ch := range r {
			switch ch {
			case '#':
				cells = append(cells, collision.CodeSolidMin)
			case '=':
				cells = append(cells, collision.CodePlatformMin)
			default:
				cells = append(cells, collision.CodeEmpty)
			}
		}
	}
	g, err := collision.NewGrid(w, h, 16, cells)
	require.NoError(t, err)
	return g
}

// floorGrid is 20x12 cells with a solid bottom row; its top is y=176.
func floorGrid(t *testing.T) *collision.Grid {
	rows := make([]string, 0, 12)
	for i := 0; i < 11; i++ {
		rows = append(rows, "....................")
	}
	rows = append(rows, "####################")
	return gridFromRows(t, rows...)
}

func newCtx(g collision.Tiles, snap input.Snapshot, views ...View) *Context {
	return &Context{
		Dt:       testDt,
		Input:    snap,
		Tiles:    g,
		Entities: views,
		Tuning:   DefaultTuning(),
	}
}

func jump() input.Snapshot {
	return input.Snapshot{}.With(input.ActionJump, true)
}
