package component

import "github.com/milk9111/gumshoe/common"

// AnimState names an animation in the closed set shared by every actor.
type AnimState string

const (
	AnimIdle       AnimState = "idle"
	AnimRun        AnimState = "run"
	AnimJump       AnimState = "jump"
	AnimFall       AnimState = "fall"
	AnimLand       AnimState = "land"
	AnimWallSlide  AnimState = "wall_slide"
	AnimWallJump   AnimState = "wall_jump"
	AnimLedgeGrab  AnimState = "ledge_grab"
	AnimLedgeClimb AnimState = "ledge_climb"
	AnimAttack     AnimState = "attack"
	AnimAttackAir  AnimState = "attack_air"
	AnimRoll       AnimState = "roll"
	AnimHurt       AnimState = "hurt"
	AnimDie        AnimState = "die"
	AnimBlock      AnimState = "block"
)

// IsAttack reports whether s is one of the attack variants.
func (s AnimState) IsAttack() bool {
	return s == AnimAttack || s == AnimAttackAir
}

// AnimationDef binds a state to its timing. Duration covers all frames.
type AnimationDef struct {
	Frames   int     `yaml:"frames"`
	Duration float64 `yaml:"duration"`
	Loop     bool    `yaml:"loop"`
	Lock     bool    `yaml:"lock"`
}

func (d AnimationDef) frameDuration() float64 {
	if d.Frames <= 0 || d.Duration <= 0 {
		return 0
	}
	return d.Duration / float64(d.Frames)
}

// AnimationSet is the per-archetype state table.
type AnimationSet map[AnimState]AnimationDef

// Animation is a per-entity state machine over an AnimationSet. While the
// current state is locked only a forced SetState may replace it; a locked
// non-looping state unlocks itself when its last frame completes.
type Animation struct {
	defs   AnimationSet
	state  AnimState
	def    AnimationDef
	frame  int
	timer  float64
	locked bool
	done   bool
}

// NewAnimation creates a machine starting in initial.
func NewAnimation(defs AnimationSet, initial AnimState) *Animation {
	a := &Animation{defs: defs}
	a.enter(initial)
	return a
}

// SetState switches to s unless the current state is locked and force is
// false. Requesting the current state without force keeps it playing.
// Unknown states are refused.
func (a *Animation) SetState(s AnimState, force bool) bool {
	if a == nil {
		return false
	}
	if _, ok := a.defs[s]; !ok {
		return false
	}
	if a.locked && !force {
		return false
	}
	if s == a.state && !force {
		return true
	}
	a.enter(s)
	return true
}

func (a *Animation) enter(s AnimState) {
	a.state = s
	a.def = a.defs[s]
	a.frame = 0
	a.timer = 0
	a.locked = a.def.Lock
	a.done = false
}

// Update advances the clock. When a non-looping state plays its final frame
// to the end, Update returns that state and true exactly once; the frame
// clamps on the last index and any lock is released.
func (a *Animation) Update(dt float64) (AnimState, bool) {
	if a == nil || a.done {
		return "", false
	}
	fd := a.def.frameDuration()
	if fd <= 0 {
		return "", false
	}
	a.timer += dt
	for a.timer+common.TimeEpsilon >= fd {
		a.timer -= fd
		a.frame++
		if a.frame < a.def.Frames {
			continue
		}
		if a.def.Loop {
			a.frame = 0
			continue
		}
		a.frame = a.def.Frames - 1
		a.timer = fd
		a.locked = false
		a.done = true
		return a.state, true
	}
	return "", false
}

func (a *Animation) State() AnimState { return a.state }

func (a *Animation) Frame() int { return a.frame }

func (a *Animation) Locked() bool { return a.locked }

// Finished reports whether a non-looping state has played to the end.
func (a *Animation) Finished() bool { return a.done }

// Progress is the normalized position through the current cycle.
func (a *Animation) Progress() float64 {
	if a.done {
		return 1
	}
	fd := a.def.frameDuration()
	if fd <= 0 || a.def.Frames <= 0 {
		return 0
	}
	p := (float64(a.frame) + a.timer/fd) / float64(a.def.Frames)
	return common.Clamp(p, 0, 1)
}
