package system

import (
	"testing"

	"github.com/milk9111/gumshoe/collision"
	"github.com/milk9111/gumshoe/entity"
	"github.com/stretchr/testify/require"
)

const testDt = 0.01

// gridFromRows builds a 16px grid: '#' solid, 'C' crumble, '^' spike.
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
			case 'C':
				cells = append(cells, collision.CodeCrumble)
			case '^':
				cells = append(cells, collision.CodeSpike)
			default:
				cells = append(cells, collision.CodeEmpty)
			}
		}
	}
	g, err := collision.NewGrid(w, h, 16, cells)
	require.NoError(t, err)
	return g
}

func stepCtx(g collision.Tiles, list ...*entity.Entity) *entity.Context {
	return &entity.Context{
		Dt:       testDt,
		Tiles:    g,
		Entities: entity.Views(list),
		Tuning:   entity.DefaultTuning(),
	}
}
