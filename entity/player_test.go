package entity

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gumshoe/collision"
	"github.com/milk9111/gumshoe/component"
	"github.com/milk9111/gumshoe/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// landingStep drops a fresh player onto the floor and returns the step index
// on which it first reports grounded.
func landingStep(t *testing.T) int {
	g := floorGrid(t)
	p := NewFactory(nil).NewPlayer(100, 100)
	for i := 0; i < 300; i++ {
		p.Update(newCtx(g, input.Snapshot{}))
		if p.Player.Grounded() {
			return i
		}
	}
	t.Fatal("player never landed")
	return 0
}

func TestPlayerJumpBuffer(t *testing.T) {
	land := landingStep(t)
	require.Greater(t, land, 12)
	jumpSpeed := DefaultTuning().Player.JumpSpeed

	tests := []struct {
		name    string
		early   int
		wantJmp bool
	}{
		{"pressed 0.09s before landing", 9, true},
		{"pressed 0.05s before landing", 5, true},
		{"pressed too early", 11, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := floorGrid(t)
			p := NewFactory(nil).NewPlayer(100, 100)
			for i := 0; i <= land; i++ {
				snap := input.Snapshot{}
				if i == land-tt.early {
					snap = jump()
				} else if i > land-tt.early {
					snap = input.Snapshot{}.With(input.ActionJump, false)
				}
				p.Update(newCtx(g, snap))
				if i < land {
					require.GreaterOrEqual(t, p.Vel.Y, 0.0, "no jump before landing (step %d)", i)
				}
			}
			if tt.wantJmp {
				assert.Equal(t, -jumpSpeed, p.Vel.Y)
				assert.False(t, p.Player.Grounded())
			} else {
				assert.Equal(t, 0.0, p.Vel.Y)
				assert.True(t, p.Player.Grounded())
			}
		})
	}
}

func TestPlayerCoyoteTime(t *testing.T) {
	rows := make([]string, 0, 20)
	for i := 0; i < 11; i++ {
		rows = append(rows, "....................")
	}
	rows = append(rows, "##########..........")
	for i := 12; i < 20; i++ {
		rows = append(rows, "....................")
	}
	right := input.Snapshot{}.With(input.ActionRight, false)
	jumpSpeed := DefaultTuning().Player.JumpSpeed

	tests := []struct {
		name    string
		late    int
		wantJmp bool
	}{
		{"jump 0.03s after leaving", 2, true},
		{"jump 0.08s after leaving", 7, true},
		{"jump too late", 15, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := gridFromRows(t, rows...)
			p := NewFactory(nil).NewPlayer(150, 176)

			left := -1
			for i := 0; i < 200 && left < 0; i++ {
				p.Update(newCtx(g, right))
				if !p.Player.Grounded() {
					left = i
				}
			}
			require.GreaterOrEqual(t, left, 0, "player never left the ledge")

			for i := 1; i <= tt.late; i++ {
				snap := right
				if i == tt.late {
					snap = jump().With(input.ActionRight, false)
				}
				p.Update(newCtx(g, snap))
			}
			if tt.wantJmp {
				assert.Equal(t, -jumpSpeed, p.Vel.Y)
			} else {
				assert.Greater(t, p.Vel.Y, 0.0)
			}
		})
	}
}

func TestPlayerVariableJumpHeight(t *testing.T) {
	apex := func(hold bool) float64 {
		g := floorGrid(t)
		p := NewFactory(nil).NewPlayer(100, 176)
		p.Update(newCtx(g, input.Snapshot{}))
		require.True(t, p.Player.Grounded())
		p.Update(newCtx(g, jump()))
		top := p.Pos.Y
		for i := 0; i < 100; i++ {
			snap := input.Snapshot{}
			if hold {
				snap = input.Snapshot{}.With(input.ActionJump, false)
			}
			p.Update(newCtx(g, snap))
			if p.Pos.Y < top {
				top = p.Pos.Y
			}
		}
		return top
	}
	assert.Less(t, apex(true), apex(false), "holding jump goes higher")
}

func TestPlayerWallSlideAndWallJump(t *testing.T) {
	rows := make([]string, 0, 12)
	for i := 0; i < 12; i++ {
		rows = append(rows, ".....#..............")
	}
	g := gridFromRows(t, rows...)
	tun := DefaultTuning().Player

	p := NewFactory(nil).NewPlayer(102, 74)
	p.Update(newCtx(g, input.Snapshot{}))
	require.Equal(t, collision.SideLeft, p.Player.WallSide())
	assert.Equal(t, component.AnimWallSlide, p.State())

	for i := 0; i < 30; i++ {
		p.Update(newCtx(g, input.Snapshot{}))
		assert.LessOrEqual(t, p.Vel.Y, tun.WallSlideSpeed)
	}

	p.Update(newCtx(g, jump()))
	assert.Equal(t, tun.WallJumpX, p.Vel.X)
	assert.Less(t, p.Vel.Y, 0.0)
	assert.Equal(t, 1.0, p.Facing)
	assert.Equal(t, component.AnimWallJump, p.State())

	// Still rising along the wall: jump is buffered, not spent on a wall-jump.
	rising := NewFactory(nil).NewPlayer(102, 74)
	rising.Update(newCtx(g, input.Snapshot{}))
	require.Equal(t, collision.SideLeft, rising.Player.WallSide())
	rising.Vel.Y = -tun.JumpSpeed
	rising.Update(newCtx(g, jump()))
	assert.NotEqual(t, component.AnimWallJump, rising.State())
	assert.Zero(t, rising.Vel.X)
	assert.Less(t, rising.Vel.Y, 0.0)
}

// ledgeGrid has a raised block whose top edge sits at y=96, starting at x=160.
func ledgeGrid(t *testing.T) *collision.Grid {
	rows := make([]string, 0, 12)
	for i := 0; i < 6; i++ {
		rows = append(rows, "....................")
	}
	for i := 6; i < 11; i++ {
		rows = append(rows, "..........##########")
	}
	rows = append(rows, "####################")
	return gridFromRows(t, rows...)
}

// fallToLedge drops a player along the block's face until it grabs the ledge.
func fallToLedge(t *testing.T, g *collision.Grid) *Entity {
	t.Helper()
	p := NewFactory(nil).NewPlayer(154, 100)
	for i := 0; i < 60; i++ {
		p.Update(newCtx(g, input.Snapshot{}))
		if p.State() == component.AnimLedgeGrab {
			return p
		}
	}
	t.Fatal("player never grabbed the ledge")
	return nil
}

func TestPlayerLedgeGrabClimbAndDrop(t *testing.T) {
	g := ledgeGrid(t)
	hang := cp.Vector{X: 148, Y: 96}

	t.Run("grab freezes the player", func(t *testing.T) {
		p := fallToLedge(t, g)
		assert.Equal(t, hang, p.Pos)
		assert.Equal(t, 1.0, p.Facing)
		for i := 0; i < 10; i++ {
			p.Update(newCtx(g, input.Snapshot{}.With(input.ActionLeft, false)))
		}
		assert.Equal(t, component.AnimLedgeGrab, p.State())
		assert.Equal(t, hang, p.Pos)
		assert.Equal(t, cp.Vector{}, p.Vel)
	})

	t.Run("jump climbs onto the block", func(t *testing.T) {
		p := fallToLedge(t, g)
		p.Update(newCtx(g, jump()))
		require.Equal(t, component.AnimLedgeClimb, p.State())
		require.True(t, p.Anim.Locked())

		for i := 0; i < 60 && p.State() == component.AnimLedgeClimb; i++ {
			p.Update(newCtx(g, input.Snapshot{}.With(input.ActionLeft, false)))
			if p.State() == component.AnimLedgeClimb {
				assert.Equal(t, hang, p.Pos, "no movement during the climb")
			}
		}
		assert.Equal(t, component.AnimIdle, p.State())
		assert.Equal(t, cp.Vector{X: 160, Y: 72}, p.Pos)
		assert.True(t, p.Player.Grounded())
	})

	t.Run("down lets go", func(t *testing.T) {
		p := fallToLedge(t, g)
		p.Update(newCtx(g, input.Snapshot{}.With(input.ActionDown, true)))
		assert.Equal(t, component.AnimFall, p.State())
		assert.Greater(t, p.Player.regrab, 0.0)

		for i := 0; i < 10; i++ {
			p.Update(newCtx(g, input.Snapshot{}))
			assert.NotEqual(t, component.AnimLedgeGrab, p.State())
		}
		assert.Greater(t, p.Pos.Y, hang.Y)
	})

	t.Run("no grab while rising", func(t *testing.T) {
		p := NewFactory(nil).NewPlayer(154, 112)
		p.Vel.Y = -200
		p.Update(newCtx(g, input.Snapshot{}))
		assert.NotEqual(t, component.AnimLedgeGrab, p.State())
		assert.Less(t, p.Vel.Y, 0.0)
	})
}

func TestPlayerHurtIgnoresInput(t *testing.T) {
	g := floorGrid(t)
	tun := DefaultTuning().Player
	p := NewFactory(nil).NewPlayer(100, 176)
	p.Update(newCtx(g, input.Snapshot{}))
	require.True(t, p.Player.Grounded())

	require.True(t, p.TakeDamage(1, 100, newCtx(g, input.Snapshot{})))
	require.Equal(t, component.AnimHurt, p.State())

	mash := jump().With(input.ActionAttack, true).With(input.ActionLeft, false)
	p.Update(newCtx(g, mash))
	assert.Equal(t, component.AnimHurt, p.State())
	assert.Equal(t, 1.0, p.Facing)
	assert.Greater(t, p.Vel.X, 0.0, "knockback is not steered")
	assert.Greater(t, p.Vel.Y, -tun.JumpSpeed, "no jump while hurt")
}

func TestPlayerAttackVariantAndCooldown(t *testing.T) {
	g := floorGrid(t)
	p := NewFactory(nil).NewPlayer(100, 176)
	p.Update(newCtx(g, input.Snapshot{}))
	require.True(t, p.Player.Grounded())

	attack := input.Snapshot{}.With(input.ActionAttack, true)
	p.Update(newCtx(g, attack))
	assert.Equal(t, component.AnimAttack, p.State())
	assert.True(t, p.Anim.Locked())

	for i := 0; i < 40; i++ {
		p.Update(newCtx(g, input.Snapshot{}))
	}
	assert.NotEqual(t, component.AnimAttack, p.State(), "attack returns control when it ends")

	air := NewFactory(nil).NewPlayer(100, 60)
	air.Update(newCtx(g, attack))
	assert.Equal(t, component.AnimAttackAir, air.State())
}

func TestPlayerRollGrantsInvulnerability(t *testing.T) {
	g := floorGrid(t)
	tun := DefaultTuning().Player
	p := NewFactory(nil).NewPlayer(100, 176)
	p.Update(newCtx(g, input.Snapshot{}))

	p.Update(newCtx(g, input.Snapshot{}.With(input.ActionRoll, true)))
	assert.Equal(t, component.AnimRoll, p.State())
	assert.Equal(t, tun.RollSpeed, p.Vel.X)
	assert.Equal(t, tun.RollInvuln, p.Health.Invuln)
	assert.False(t, p.TakeDamage(1, -100, newCtx(g, input.Snapshot{})))

	for i := 0; i < 40; i++ {
		p.Update(newCtx(g, input.Snapshot{}))
	}
	assert.NotEqual(t, component.AnimRoll, p.State())
}

func TestPlayerLandingFiresOnce(t *testing.T) {
	g := floorGrid(t)
	p := NewFactory(nil).NewPlayer(100, 150)
	lands := 0
	prev := p.State()
	for i := 0; i < 100; i++ {
		p.Update(newCtx(g, input.Snapshot{}))
		if s := p.State(); s == component.AnimLand && prev != component.AnimLand {
			lands++
		}
		prev = p.State()
	}
	assert.Equal(t, 1, lands)
	assert.Equal(t, component.AnimIdle, p.State())
}

func TestPlayerDropThroughPlatform(t *testing.T) {
	rows := make([]string, 0, 12)
	for i := 0; i < 6; i++ {
		rows = append(rows, "....................")
	}
	rows = append(rows, "=====...............")
	for i := 7; i < 11; i++ {
		rows = append(rows, "....................")
	}
	rows = append(rows, "####################")
	g := gridFromRows(t, rows...)

	p := NewFactory(nil).NewPlayer(40, 96)
	p.Update(newCtx(g, input.Snapshot{}))
	require.True(t, p.Player.Grounded())

	down := input.Snapshot{}.With(input.ActionDown, false)
	for i := 0; i < 10; i++ {
		p.Update(newCtx(g, down))
	}
	assert.Greater(t, p.Pos.Y+p.H, 96.0, "fell below the platform")
}
