package input

// Action is a logical control, independent of the physical key bound to it.
type Action int

const (
	ActionLeft Action = iota
	ActionRight
	ActionUp
	ActionDown
	ActionJump
	ActionAttack
	ActionRoll
	ActionInteract
	ActionPause
	actionCount
)

var actionNames = [actionCount]string{
	"left", "right", "up", "down", "jump", "attack", "roll", "interact", "pause",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "unknown"
	}
	return actionNames[a]
}

// Snapshot is the per-step view of input. Held reflects keys currently down;
// Pressed is true only for the step that observed the press edge.
type Snapshot struct {
	held    [actionCount]bool
	pressed [actionCount]bool
}

func (s Snapshot) Held(a Action) bool {
	return a >= 0 && a < actionCount && s.held[a]
}

func (s Snapshot) Pressed(a Action) bool {
	return a >= 0 && a < actionCount && s.pressed[a]
}

// MoveX is -1, 0 or +1 from the horizontal actions.
func (s Snapshot) MoveX() float64 {
	var x float64
	if s.Held(ActionLeft) {
		x--
	}
	if s.Held(ActionRight) {
		x++
	}
	return x
}

// With returns a copy with a held (and optionally pressed) action. Useful for
// scripted input.
func (s Snapshot) With(a Action, pressed bool) Snapshot {
	if a < 0 || a >= actionCount {
		return s
	}
	s.held[a] = true
	if pressed {
		s.pressed[a] = true
	}
	return s
}
