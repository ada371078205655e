package system

import (
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/gumshoe/entity"
)

// ErrTriggerScript wraps every compile or run failure of a trigger script.
var ErrTriggerScript = errors.New("trigger script")

// TriggerDef is a level zone that runs a script when the player enters it.
type TriggerDef struct {
	ID     string
	Rect   cp.BB
	Script string
	Once   bool
}

// ScriptLoader returns the source of a named script.
type ScriptLoader func(name string) ([]byte, error)

type trigger struct {
	def      TriggerDef
	compiled *tengo.Compiled
	inside   bool
	fired    bool
}

// Triggers owns the compiled scripts of one level.
type Triggers struct {
	list []*trigger
}

// CompileTriggers loads and compiles every script up front so a broken
// script fails the level load.
func CompileTriggers(defs []TriggerDef, load ScriptLoader) (*Triggers, error) {
	ts := &Triggers{}
	cache := map[string]*tengo.Compiled{}
	for _, d := range defs {
		compiled, ok := cache[d.Script]
		if !ok {
			src, err := load(d.Script)
			if err != nil {
				return nil, fmt.Errorf("%w %s: %w", ErrTriggerScript, d.Script, err)
			}
			script := tengo.NewScript(src)
			_ = script.Add("engine", map[string]any{})
			_ = script.Add("trigger", "")
			script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
			compiled, err = script.Compile()
			if err != nil {
				return nil, fmt.Errorf("%w %s: %w", ErrTriggerScript, d.Script, err)
			}
			cache[d.Script] = compiled
		}
		ts.list = append(ts.list, &trigger{def: d, compiled: compiled.Clone()})
	}
	return ts, nil
}

func (ts *Triggers) Len() int {
	if ts == nil {
		return 0
	}
	return len(ts.list)
}

// Update fires triggers whose zone the player's center just entered. A
// failing script does not stop the others; the failures come back joined.
func (ts *Triggers) Update(ctx *entity.Context, player *entity.Entity) error {
	if ts == nil || player == nil || !player.Alive() {
		return nil
	}
	c := player.Center()
	var errs []error
	for _, t := range ts.list {
		in := t.def.Rect.ContainsVect(c)
		entered := in && !t.inside
		t.inside = in
		if !entered || (t.def.Once && t.fired) {
			continue
		}
		t.fired = true
		if err := t.run(ctx, player); err != nil {
			errs = append(errs, fmt.Errorf("%w %s: %w", ErrTriggerScript, t.def.ID, err))
		}
	}
	return errors.Join(errs...)
}

func (t *trigger) run(ctx *entity.Context, player *entity.Entity) error {
	if err := t.compiled.Set("engine", scriptEngine(ctx, player)); err != nil {
		return err
	}
	if err := t.compiled.Set("trigger", t.def.ID); err != nil {
		return err
	}
	return t.compiled.Run()
}

// scriptEngine exposes the step's hooks to a script, plus heal for the
// player that fired the trigger.
func scriptEngine(ctx *entity.Context, player *entity.Entity) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["spawn"] = &tengo.UserFunction{Name: "spawn", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 3 {
			return nil, tengo.ErrWrongNumArguments
		}
		typ, _ := tengo.ToString(args[0])
		x, okX := tengo.ToFloat64(args[1])
		y, okY := tengo.ToFloat64(args[2])
		if typ == "" || !okX || !okY {
			return tengo.FalseValue, nil
		}
		ctx.Spawn(entity.SpawnRequest{Type: typ, X: x, Y: y})
		return tengo.TrueValue, nil
	}}

	values["dialogue"] = stringHook("dialogue", ctx.StartDialogue)
	values["clue"] = stringHook("clue", ctx.AwardClue)
	values["item"] = stringHook("item", ctx.AwardItem)

	values["shake"] = &tengo.UserFunction{Name: "shake", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		intensity, ok1 := tengo.ToFloat64(args[0])
		duration, ok2 := tengo.ToFloat64(args[1])
		if !ok1 || !ok2 {
			return tengo.FalseValue, nil
		}
		ctx.Shake(intensity, duration)
		return tengo.TrueValue, nil
	}}

	values["effect"] = &tengo.UserFunction{Name: "effect", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 3 {
			return nil, tengo.ErrWrongNumArguments
		}
		name, _ := tengo.ToString(args[0])
		x, okX := tengo.ToFloat64(args[1])
		y, okY := tengo.ToFloat64(args[2])
		if name == "" || !okX || !okY {
			return tengo.FalseValue, nil
		}
		ctx.Effect(name, cp.Vector{X: x, Y: y}, entity.EffectOptions{})
		return tengo.TrueValue, nil
	}}

	values["heal"] = &tengo.UserFunction{Name: "heal", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		n, ok := tengo.ToInt(args[0])
		if !ok || n <= 0 {
			return tengo.FalseValue, nil
		}
		player.Health.Heal(n)
		return tengo.TrueValue, nil
	}}

	values["has_clue"] = stringQuery("has_clue", ctx.HasClue)
	values["has_item"] = stringQuery("has_item", ctx.HasItem)

	values["dialogue_active"] = &tengo.UserFunction{Name: "dialogue_active", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ctx.DialogueActive() {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func stringHook(name string, fn func(string)) *tengo.UserFunction {
	return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		s, ok := tengo.ToString(args[0])
		if !ok || s == "" {
			return tengo.FalseValue, nil
		}
		fn(s)
		return tengo.TrueValue, nil
	}}
}

func stringQuery(name string, fn func(string) bool) *tengo.UserFunction {
	return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		if s, ok := tengo.ToString(args[0]); ok && fn(s) {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}
}
