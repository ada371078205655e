package component

// Transition names the state that follows a finished one.
type Transition struct {
	Next AnimState
	// Natural restricts the transition to animations that played to
	// completion rather than being cut short by a forced state.
	Natural bool
}

// TransitionTable maps finished states to their successors. Entities consult
// it after Animation.Update reports a completed state.
type TransitionTable map[AnimState]Transition

// Next returns the successor of ended. natural is false when the caller is
// asking about an interrupted state.
func (t TransitionTable) Next(ended AnimState, natural bool) (AnimState, bool) {
	tr, ok := t[ended]
	if !ok {
		return "", false
	}
	if tr.Natural && !natural {
		return "", false
	}
	return tr.Next, true
}

// PlayerTransitions returns control to free movement after locked actions.
// Ledge climb, death and the enemy-only states are handled by their owners.
var PlayerTransitions = TransitionTable{
	AnimAttack:    {Next: AnimIdle, Natural: true},
	AnimAttackAir: {Next: AnimFall, Natural: true},
	AnimRoll:      {Next: AnimIdle, Natural: true},
	AnimHurt:      {Next: AnimIdle},
	AnimLand:      {Next: AnimIdle},
	AnimWallJump:  {Next: AnimFall},
}

var EnemyTransitions = TransitionTable{
	AnimAttack: {Next: AnimIdle, Natural: true},
	AnimHurt:   {Next: AnimIdle},
}

// DefaultPlayerAnimations is the player's frame table.
func DefaultPlayerAnimations() AnimationSet {
	return AnimationSet{
		AnimIdle:       {Frames: 6, Duration: 0.6, Loop: true},
		AnimRun:        {Frames: 8, Duration: 0.64, Loop: true},
		AnimJump:       {Frames: 2, Duration: 0.2, Loop: true},
		AnimFall:       {Frames: 2, Duration: 0.2, Loop: true},
		AnimLand:       {Frames: 2, Duration: 0.1},
		AnimWallSlide:  {Frames: 2, Duration: 0.2, Loop: true},
		AnimWallJump:   {Frames: 3, Duration: 0.15},
		AnimLedgeGrab:  {Frames: 1, Duration: 0.1, Loop: true},
		AnimLedgeClimb: {Frames: 4, Duration: 0.3, Lock: true},
		AnimAttack:     {Frames: 5, Duration: 0.3, Lock: true},
		AnimAttackAir:  {Frames: 5, Duration: 0.3, Lock: true},
		AnimRoll:       {Frames: 6, Duration: 0.4, Lock: true},
		AnimHurt:       {Frames: 3, Duration: 0.3, Lock: true},
		AnimDie:        {Frames: 8, Duration: 0.8, Lock: true},
	}
}

// DefaultEnemyAnimations is shared by every enemy archetype.
func DefaultEnemyAnimations() AnimationSet {
	return AnimationSet{
		AnimIdle:   {Frames: 4, Duration: 0.6, Loop: true},
		AnimRun:    {Frames: 6, Duration: 0.6, Loop: true},
		AnimFall:   {Frames: 2, Duration: 0.2, Loop: true},
		AnimAttack: {Frames: 6, Duration: 0.5, Lock: true},
		AnimBlock:  {Frames: 2, Duration: 0.3, Loop: true},
		AnimHurt:   {Frames: 3, Duration: 0.25, Lock: true},
		AnimDie:    {Frames: 6, Duration: 0.6, Lock: true},
	}
}
