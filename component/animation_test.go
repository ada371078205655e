package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSet() AnimationSet {
	return AnimationSet{
		AnimIdle:   {Frames: 4, Duration: 0.4, Loop: true},
		AnimRun:    {Frames: 4, Duration: 0.4, Loop: true},
		AnimAttack: {Frames: 4, Duration: 0.4, Lock: true},
		AnimHurt:   {Frames: 2, Duration: 0.2, Lock: true},
		AnimLand:   {Frames: 1, Duration: 0.1},
	}
}

func TestAnimationLockRefusesUnforcedChange(t *testing.T) {
	a := NewAnimation(testSet(), AnimIdle)
	require.True(t, a.SetState(AnimAttack, false))
	assert.True(t, a.Locked())

	assert.False(t, a.SetState(AnimRun, false))
	assert.Equal(t, AnimAttack, a.State())

	assert.True(t, a.SetState(AnimHurt, true))
	assert.Equal(t, AnimHurt, a.State())
}

func TestAnimationSameStateKeepsPlaying(t *testing.T) {
	a := NewAnimation(testSet(), AnimRun)
	a.Update(0.25)
	frame := a.Frame()
	require.Equal(t, 2, frame)

	a.SetState(AnimRun, false)
	assert.Equal(t, frame, a.Frame())

	a.SetState(AnimRun, true)
	assert.Equal(t, 0, a.Frame())
}

func TestAnimationCompletionReportsOnce(t *testing.T) {
	a := NewAnimation(testSet(), AnimIdle)
	a.SetState(AnimAttack, false)

	var ended []AnimState
	for i := 0; i < 60; i++ {
		if s, ok := a.Update(0.01); ok {
			ended = append(ended, s)
		}
	}
	assert.Equal(t, []AnimState{AnimAttack}, ended)
	assert.True(t, a.Finished())
	assert.False(t, a.Locked())
	assert.Equal(t, 3, a.Frame())
	assert.Equal(t, 1.0, a.Progress())

	assert.True(t, a.SetState(AnimIdle, false))
}

func TestAnimationLoopWraps(t *testing.T) {
	a := NewAnimation(testSet(), AnimIdle)
	for i := 0; i < 50; i++ {
		_, ok := a.Update(0.01)
		require.False(t, ok)
	}
	assert.Equal(t, 1, a.Frame())
	assert.InDelta(t, 0.25, a.Progress(), 1e-6)
}

func TestAnimationProgress(t *testing.T) {
	a := NewAnimation(testSet(), AnimAttack)
	a.Update(0.2)
	assert.InDelta(t, 0.5, a.Progress(), 1e-6)
}

func TestAnimationUnknownState(t *testing.T) {
	a := NewAnimation(testSet(), AnimIdle)
	assert.False(t, a.SetState(AnimLedgeClimb, true))
	assert.Equal(t, AnimIdle, a.State())
}

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		name    string
		ended   AnimState
		natural bool
		want    AnimState
		ok      bool
	}{
		{"attack completes", AnimAttack, true, AnimIdle, true},
		{"air attack completes", AnimAttackAir, true, AnimFall, true},
		{"interrupted attack", AnimAttack, false, "", false},
		{"hurt either way", AnimHurt, false, AnimIdle, true},
		{"looping state", AnimRun, true, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PlayerTransitions.Next(tt.ended, tt.natural)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
