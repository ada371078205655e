package system

import (
	"fmt"
	"testing"

	"github.com/milk9111/gumshoe/common"
	"github.com/milk9111/gumshoe/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loaderFor(scripts map[string]string) ScriptLoader {
	return func(name string) ([]byte, error) {
		src, ok := scripts[name]
		if !ok {
			return nil, fmt.Errorf("no script %q", name)
		}
		return []byte(src), nil
	}
}

func TestTriggerFiresOnEntry(t *testing.T) {
	tests := []struct {
		name string
		once bool
		want []string
	}{
		{"repeatable", false, []string{"letter", "letter"}},
		{"once", true, []string{"letter"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defs := []TriggerDef{{ID: "t1", Rect: common.Rect(100, 0, 50, 200), Script: "clue.tengo", Once: tt.once}}
			trig, err := CompileTriggers(defs, loaderFor(map[string]string{
				"clue.tengo": `engine.clue("letter")`,
			}))
			require.NoError(t, err)

			var clues []string
			player := entity.NewFactory(nil).NewPlayer(50, 100)
			step := func(x float64) {
				player.Pos.X = x
				ctx := stepCtx(nil, player)
				ctx.Hooks.AwardClue = func(id string) { clues = append(clues, id) }
				require.NoError(t, trig.Update(ctx, player))
			}

			step(40)  // outside
			step(110) // enter
			step(120) // still inside
			step(10)  // leave
			step(110) // enter again
			assert.Equal(t, tt.want, clues)
		})
	}
}

func TestTriggerScriptHooks(t *testing.T) {
	defs := []TriggerDef{{ID: "ambush", Rect: common.Rect(0, 0, 500, 500), Script: "ambush.tengo"}}
	trig, err := CompileTriggers(defs, loaderFor(map[string]string{
		"ambush.tengo": `
engine.spawn("patroller", 64, 176)
engine.shake(4, 0.25)
engine.dialogue("warden")
engine.item("key")
engine.heal(1)
`,
	}))
	require.NoError(t, err)
	assert.Equal(t, 1, trig.Len())

	var spawned []entity.SpawnRequest
	var shakes, dialogues, items int
	player := entity.NewFactory(nil).NewPlayer(100, 100)
	player.Health.Current = player.Health.Max - 2
	ctx := stepCtx(nil, player)
	ctx.Hooks.Spawn = func(reqs []entity.SpawnRequest) { spawned = append(spawned, reqs...) }
	ctx.Hooks.CameraShake = func(float64, float64) { shakes++ }
	ctx.Hooks.StartDialogue = func(string) { dialogues++ }
	ctx.Hooks.AwardItem = func(string) { items++ }

	require.NoError(t, trig.Update(ctx, player))
	require.Len(t, spawned, 1)
	assert.Equal(t, entity.SpawnRequest{Type: "patroller", X: 64, Y: 176}, spawned[0])
	assert.Equal(t, 1, shakes)
	assert.Equal(t, 1, dialogues)
	assert.Equal(t, 1, items)
	assert.Equal(t, player.Health.Max-1, player.Health.Current)
}

func TestTriggerErrors(t *testing.T) {
	defs := []TriggerDef{{ID: "bad", Rect: common.Rect(0, 0, 10, 10), Script: "bad.tengo"}}

	_, err := CompileTriggers(defs, loaderFor(map[string]string{"bad.tengo": `engine.clue(`}))
	assert.ErrorIs(t, err, ErrTriggerScript)

	_, err = CompileTriggers(defs, loaderFor(nil))
	assert.ErrorIs(t, err, ErrTriggerScript)

	defs[0].Rect = common.Rect(0, 0, 500, 500)
	trig, err := CompileTriggers(defs, loaderFor(map[string]string{"bad.tengo": `engine.clue()`}))
	require.NoError(t, err)
	player := entity.NewFactory(nil).NewPlayer(100, 100)
	assert.ErrorIs(t, trig.Update(stepCtx(nil, player), player), ErrTriggerScript)
}

func TestTriggerJournalQueries(t *testing.T) {
	defs := []TriggerDef{{ID: "door", Rect: common.Rect(0, 0, 500, 500), Script: "door.tengo"}}
	trig, err := CompileTriggers(defs, loaderFor(map[string]string{
		"door.tengo": `
if engine.has_clue("ticket") { engine.dialogue("hunch") }
if engine.has_item("lockpick") { engine.dialogue("unlock") }
if !engine.has_clue("confession") { engine.dialogue("not_yet") }
`,
	}))
	require.NoError(t, err)

	player := entity.NewFactory(nil).NewPlayer(100, 100)
	ctx := stepCtx(nil, player)
	var started []string
	ctx.Hooks.StartDialogue = func(id string) { started = append(started, id) }
	ctx.Hooks.HasClue = func(id string) bool { return id == "ticket" }

	require.NoError(t, trig.Update(ctx, player))
	assert.Equal(t, []string{"hunch", "not_yet"}, started, "a missing HasItem hook answers false")
}
