package entity

import (
	"math/rand/v2"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gumshoe/component"
	"github.com/milk9111/gumshoe/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spawnOnFloor(t *testing.T, typ string, x float64) *Entity {
	t.Helper()
	e, err := NewFactory(nil).Spawn(SpawnRequest{Type: typ, X: x, Y: 176})
	require.NoError(t, err)
	return e
}

// near places the player view dx away from e's center at the same height.
func near(e *Entity, dx float64) View {
	c := e.Center()
	return View{Kind: KindPlayer, Team: component.FactionPlayer, Alive: true, Pos: cp.Vector{X: c.X + dx, Y: c.Y}, HalfW: 6, HalfH: 12}
}

func TestPatrollerAggroChaseAttack(t *testing.T) {
	g := floorGrid(t)
	e := spawnOnFloor(t, "patroller", 100)

	e.Update(newCtx(g, input.Snapshot{}, near(e, 80)))
	assert.Equal(t, "aggro", e.AI.State())
	assert.Equal(t, 0.0, e.Vel.X)
	assert.Equal(t, 1.0, e.Facing)

	e.Update(newCtx(g, input.Snapshot{}, near(e, 80)))
	assert.Equal(t, "chase", e.AI.State())

	e.Update(newCtx(g, input.Snapshot{}, near(e, 80)))
	assert.Equal(t, DefaultTuning().Patroller.ChaseSpeed, e.Vel.X)

	e.Update(newCtx(g, input.Snapshot{}, near(e, 20)))
	assert.Equal(t, "attack", e.AI.State())
	assert.Equal(t, component.AnimAttack, e.State())
	assert.Equal(t, 0.0, e.Vel.X)

	for i := 0; i < 55; i++ {
		e.Update(newCtx(g, input.Snapshot{}, near(e, 20)))
	}
	assert.Equal(t, "cooldown", e.AI.State())
	assert.NotEqual(t, component.AnimAttack, e.State())
}

func TestPatrollerLosesPlayer(t *testing.T) {
	g := floorGrid(t)
	e := spawnOnFloor(t, "patroller", 100)
	e.AI.enter(aiChase, 0)

	e.Update(newCtx(g, input.Snapshot{}, near(e, 250)))
	assert.Equal(t, "patrol", e.AI.State())

	e.AI.enter(aiChase, 0)
	e.Update(newCtx(g, input.Snapshot{}))
	assert.Equal(t, "patrol", e.AI.State(), "no player in the step")
}

func TestPatrollerTurnsAtWall(t *testing.T) {
	rows := make([]string, 0, 12)
	for i := 0; i < 11; i++ {
		rows = append(rows, "#...................")
	}
	rows = append(rows, "####################")
	g := gridFromRows(t, rows...)
	e := spawnOnFloor(t, "patroller", 30)
	require.Equal(t, -1.0, e.Facing)

	turned := false
	for i := 0; i < 100 && !turned; i++ {
		e.Update(newCtx(g, input.Snapshot{}))
		turned = e.Facing > 0
	}
	assert.True(t, turned)
	assert.GreaterOrEqual(t, e.Pos.X, 16.0)
}

func TestCasterEmitsOneProjectilePerAttack(t *testing.T) {
	g := floorGrid(t)
	e := spawnOnFloor(t, "caster", 100)
	projectiles := 0
	hooks := Hooks{Effect: func(name string, _ cp.Vector, _ EffectOptions) {
		if name == EffectProjectile {
			projectiles++
		}
	}}

	for i := 0; i < 150; i++ {
		ctx := newCtx(g, input.Snapshot{}, near(e, 100))
		ctx.Hooks = hooks
		e.Update(ctx)
		if i == 0 {
			assert.Equal(t, "attack", e.AI.State())
		}
	}
	assert.Equal(t, 1, projectiles)
	assert.Equal(t, "cooldown", e.AI.State())
}

func TestCasterRetreats(t *testing.T) {
	g := floorGrid(t)
	e := spawnOnFloor(t, "caster", 200)

	e.Update(newCtx(g, input.Snapshot{}, near(e, 30)))
	assert.Equal(t, "retreat", e.AI.State())

	e.Update(newCtx(g, input.Snapshot{}, near(e, 30)))
	assert.Equal(t, 1.0, e.Facing, "keeps facing the player")
	assert.Equal(t, -DefaultTuning().Caster.RetreatSpeed, e.Vel.X)
}

func TestBlockerRollsBetweenBlockAndAttack(t *testing.T) {
	tests := []struct {
		name   string
		chance float64
		want   string
	}{
		{"always block", 1, "block"},
		{"never block", 0, "attack"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := floorGrid(t)
			e := spawnOnFloor(t, "blocker", 100)
			e.AI.enter(aiChase, 0)

			ctx := newCtx(g, input.Snapshot{}, near(e, -20))
			ctx.Tuning.Blocker.BlockChance = tt.chance
			ctx.Rand = rand.New(rand.NewPCG(1, 2))
			e.Update(ctx)

			assert.Equal(t, tt.want, e.AI.State())
			assert.Equal(t, -1.0, e.Facing)
			assert.Equal(t, 0.0, e.Vel.X)
		})
	}
}

func TestBlockerStanceExpires(t *testing.T) {
	g := floorGrid(t)
	e := spawnOnFloor(t, "blocker", 100)
	e.AI.enter(aiChase, 0)
	ctx := newCtx(g, input.Snapshot{}, near(e, 20))
	ctx.Tuning.Blocker.BlockChance = 1
	e.Update(ctx)
	require.True(t, e.Blocking())
	assert.Equal(t, component.AnimBlock, e.State())

	steps := int(DefaultTuning().Blocker.BlockTime/testDt) + 2
	for i := 0; i < steps; i++ {
		e.Update(newCtx(g, input.Snapshot{}, near(e, 20)))
	}
	assert.False(t, e.Blocking())
}
