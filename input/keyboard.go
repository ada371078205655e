package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Bindings maps physical keys to actions. Several keys may share an action.
type Bindings map[ebiten.Key]Action

// DefaultBindings covers arrows and WASD.
func DefaultBindings() Bindings {
	return Bindings{
		ebiten.KeyA:          ActionLeft,
		ebiten.KeyArrowLeft:  ActionLeft,
		ebiten.KeyD:          ActionRight,
		ebiten.KeyArrowRight: ActionRight,
		ebiten.KeyW:          ActionUp,
		ebiten.KeyArrowUp:    ActionUp,
		ebiten.KeyS:          ActionDown,
		ebiten.KeyArrowDown:  ActionDown,
		ebiten.KeySpace:      ActionJump,
		ebiten.KeyJ:          ActionAttack,
		ebiten.KeyX:          ActionAttack,
		ebiten.KeyK:          ActionRoll,
		ebiten.KeyShiftLeft:  ActionRoll,
		ebiten.KeyE:          ActionInteract,
		ebiten.KeyEscape:     ActionPause,
	}
}

var gamepadBindings = map[ebiten.StandardGamepadButton]Action{
	ebiten.StandardGamepadButtonLeftLeft:    ActionLeft,
	ebiten.StandardGamepadButtonLeftRight:   ActionRight,
	ebiten.StandardGamepadButtonLeftTop:     ActionUp,
	ebiten.StandardGamepadButtonLeftBottom:  ActionDown,
	ebiten.StandardGamepadButtonRightBottom: ActionJump,
	ebiten.StandardGamepadButtonRightLeft:   ActionAttack,
	ebiten.StandardGamepadButtonRightRight:  ActionRoll,
	ebiten.StandardGamepadButtonRightTop:    ActionInteract,
	ebiten.StandardGamepadButtonCenterRight: ActionPause,
}

// Keyboard feeds ebiten key edges into a Source once per frame.
type Keyboard struct {
	src      *Source
	bindings Bindings
	focused  bool
	keys     []ebiten.Key
	pads     []ebiten.GamepadID
}

func NewKeyboard(src *Source, b Bindings) *Keyboard {
	if b == nil {
		b = DefaultBindings()
	}
	return &Keyboard{src: src, bindings: b, focused: true}
}

// Update forwards this frame's key edges. Call it once per ebiten Update.
func (k *Keyboard) Update() {
	focused := ebiten.IsFocused()
	if !focused {
		if k.focused {
			k.src.Blur()
		}
		k.focused = false
		return
	}
	k.focused = true

	k.keys = inpututil.AppendJustPressedKeys(k.keys[:0])
	for _, key := range k.keys {
		if a, ok := k.bindings[key]; ok {
			k.src.KeyDown(a)
		}
	}
	k.keys = inpututil.AppendJustReleasedKeys(k.keys[:0])
	for _, key := range k.keys {
		if a, ok := k.bindings[key]; ok && !k.anyHeld(a) {
			k.src.KeyUp(a)
		}
	}

	k.pads = ebiten.AppendGamepadIDs(k.pads[:0])
	for _, id := range k.pads {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		for btn, a := range gamepadBindings {
			if inpututil.IsStandardGamepadButtonJustPressed(id, btn) {
				k.src.KeyDown(a)
			}
			if inpututil.IsStandardGamepadButtonJustReleased(id, btn) && !k.anyHeld(a) {
				k.src.KeyUp(a)
			}
		}
	}
}

// anyHeld reports whether another key bound to a is still down.
func (k *Keyboard) anyHeld(a Action) bool {
	for key, bound := range k.bindings {
		if bound == a && ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}
