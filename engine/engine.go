package engine

import (
	"fmt"
	"log"
	"math/rand/v2"
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gumshoe/collision"
	"github.com/milk9111/gumshoe/common"
	"github.com/milk9111/gumshoe/entity"
	"github.com/milk9111/gumshoe/input"
	"github.com/milk9111/gumshoe/levels"
	"github.com/milk9111/gumshoe/system"
)

type Status int

const (
	StatusRunning Status = iota
	StatusPaused
	StatusLevelComplete
	StatusGameOver
	StatusHalted
)

func (s Status) String() string {
	switch s {
	case StatusPaused:
		return "paused"
	case StatusLevelComplete:
		return "level_complete"
	case StatusGameOver:
		return "game_over"
	case StatusHalted:
		return "halted"
	}
	return "running"
}

// LevelLoader resolves a level id.
type LevelLoader func(id string) (*levels.Level, error)

// Options configure a new Engine. Nil collaborators are replaced by no-ops.
type Options struct {
	Config  Config
	Seed    uint64
	Levels  LevelLoader
	Scripts system.ScriptLoader
	Input   *input.Source

	Effects   Effects
	Dialogue  Dialogue
	Lighting  Lighting
	Render    RenderCache
	Narrative Narrative
}

// Engine owns the simulation of one level at a time.
type Engine struct {
	cfg     Config
	levels  LevelLoader
	scripts system.ScriptLoader
	rng     *rand.Rand

	sched   *Scheduler
	input   *input.Source
	camera  *system.Camera
	combat  *system.Combat
	factory *entity.Factory
	journal *Journal

	effects   Effects
	dialogue  Dialogue
	lighting  Lighting
	render    RenderCache
	narrative Narrative

	level    *levels.Level
	grid     *collision.Grid
	traps    *system.Traps
	triggers *system.Triggers
	exit     cp.BB

	player   *entity.Entity
	entities []*entity.Entity // player first
	removals []int
	pending  []entity.SpawnRequest

	paused   bool
	complete bool
	over     bool
}

func New(opts Options) *Engine {
	cfg := opts.Config.withDefaults()
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))

	e := &Engine{
		cfg:       cfg,
		levels:    opts.Levels,
		scripts:   opts.Scripts,
		rng:       rng,
		input:     opts.Input,
		camera:    system.NewCamera(cfg.Camera, rng),
		combat:    system.NewCombat(),
		factory:   entity.NewFactory(cfg.Tuning),
		journal:   NewJournal(),
		effects:   opts.Effects,
		dialogue:  opts.Dialogue,
		lighting:  opts.Lighting,
		render:    opts.Render,
		narrative: opts.Narrative,
	}
	e.sched = NewScheduler(cfg.Scheduler, e.step)

	if e.levels == nil {
		e.levels = levels.Load
	}
	if e.scripts == nil {
		e.scripts = func(name string) ([]byte, error) {
			return nil, fmt.Errorf("no script loader for %s", name)
		}
	}
	if e.input == nil {
		e.input = input.NewSource()
	}
	if e.effects == nil {
		e.effects = nopEffects{}
	}
	if e.dialogue == nil {
		e.dialogue = nopDialogue{}
	}
	if e.lighting == nil {
		e.lighting = nopLighting{}
	}
	if e.render == nil {
		e.render = nopRenderCache{}
	}
	if e.narrative == nil {
		e.narrative = nopNarrative{}
	}
	return e
}

// LoadLevel builds everything the level needs before touching the running
// state, so a failed load leaves the previous level intact.
func (e *Engine) LoadLevel(id string) error {
	lvl, err := e.levels(id)
	if err != nil {
		return fmt.Errorf("engine: load level %s: %w", id, err)
	}
	grid, err := lvl.Grid()
	if err != nil {
		return fmt.Errorf("engine: load level %s: %w", id, err)
	}
	enemies, err := e.factory.SpawnAll(lvl.Spawns)
	if err != nil {
		log.Printf("engine: level %s: %v", id, err)
		return fmt.Errorf("engine: load level %s: %w", id, err)
	}
	triggers, err := system.CompileTriggers(triggerDefs(lvl), e.scripts)
	if err != nil {
		return fmt.Errorf("engine: load level %s: %w", id, err)
	}
	if err := e.dialogue.Load(lvl.Dialogue); err != nil {
		return fmt.Errorf("engine: load level %s: dialogue: %w", id, err)
	}
	if err := e.narrative.Load(lvl.Clues, lvl.Items, e.journal); err != nil {
		return fmt.Errorf("engine: load level %s: narrative: %w", id, err)
	}
	player := e.factory.NewPlayer(lvl.PlayerStart.X, lvl.PlayerStart.Y)

	e.level = lvl
	e.grid = grid
	e.exit = lvl.Exit.BB()
	e.traps = system.NewTraps(grid, e.cfg.Traps)
	e.triggers = triggers
	e.player = player
	e.entities = append([]*entity.Entity{player}, enemies...)
	e.removals = e.removals[:0]
	e.pending = nil
	e.paused, e.complete, e.over = false, false, false

	e.combat.Reset()
	e.camera.SetBounds(lvl.PixelSize())
	e.camera.SnapTo(player.View())
	e.render.Rebuild(lvl, grid)
	e.effects.Reset()
	e.lighting.Load(lvl.Lights)
	e.input.Blur()
	e.sched.Reset()

	log.Printf("engine: loaded level %s (%d entities, %d triggers)", lvl.ID, len(e.entities), triggers.Len())
	return nil
}

func triggerDefs(lvl *levels.Level) []system.TriggerDef {
	defs := make([]system.TriggerDef, 0, len(lvl.Triggers))
	for _, t := range lvl.Triggers {
		defs = append(defs, system.TriggerDef{ID: t.ID, Rect: t.Box.BB(), Script: t.Script, Once: t.Once})
	}
	return defs
}

func (e *Engine) Start() { e.sched.Start() }

// Stop halts stepping and releases every held key.
func (e *Engine) Stop() {
	e.sched.Stop()
	e.input.Blur()
}

func (e *Engine) Pause() { e.paused = true }

// Resume unpauses and discards presses buffered while paused.
func (e *Engine) Resume() {
	e.paused = false
	e.input.Poll()
}

// Frame advances the simulation by elapsed wall-clock seconds and returns
// the number of steps run.
func (e *Engine) Frame(elapsed float64) int {
	return e.sched.Frame(elapsed)
}

// Alpha is the render interpolation fraction left after the last Frame.
func (e *Engine) Alpha() float64 { return e.sched.Alpha() }

// Spawn adds entities right away. Nothing is added if any request is bad.
func (e *Engine) Spawn(reqs ...entity.SpawnRequest) error {
	list, err := e.factory.SpawnAll(reqs)
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	e.entities = append(e.entities, list...)
	return nil
}

// SetTuning swaps the numbers entity behavior reads. Live entities pick them
// up on the next step.
func (e *Engine) SetTuning(t *entity.Tuning) {
	if t == nil {
		return
	}
	e.cfg.Tuning = t
	e.factory.SetTuning(t)
}

// SetConfig applies a reloaded configuration to the running engine.
func (e *Engine) SetConfig(cfg Config) {
	cfg = cfg.withDefaults()
	e.cfg = cfg
	e.sched.SetConfig(cfg.Scheduler)
	e.camera.SetConfig(cfg.Camera)
	if e.traps != nil {
		e.traps.SetConfig(cfg.Traps)
	}
	e.SetTuning(cfg.Tuning)
}

func (e *Engine) Status() Status {
	switch {
	case e.sched.Err() != nil:
		return StatusHalted
	case e.over:
		return StatusGameOver
	case e.complete:
		return StatusLevelComplete
	case e.paused:
		return StatusPaused
	}
	return StatusRunning
}

func (e *Engine) Config() Config { return e.cfg }

// Err returns the failure that halted the simulation.
func (e *Engine) Err() error { return e.sched.Err() }

// Views snapshots every entity for rendering, player first.
func (e *Engine) Views() []entity.View { return entity.Views(e.entities) }

// Camera returns the camera position including shake.
func (e *Engine) Camera() cp.Vector { return e.camera.View() }

// CameraRig exposes the camera for parallax queries.
func (e *Engine) CameraRig() *system.Camera { return e.camera }

func (e *Engine) Input() *input.Source   { return e.input }
func (e *Engine) Journal() *Journal      { return e.journal }
func (e *Engine) Level() *levels.Level   { return e.level }
func (e *Engine) Player() *entity.Entity { return e.player }

func (e *Engine) Crumbles() []system.Crumble {
	if e.traps == nil {
		return nil
	}
	return e.traps.Crumbles()
}

// NPCs returns the talkable zones of the current level.
func (e *Engine) NPCs() []levels.NPC {
	if e.level == nil {
		return nil
	}
	return e.level.NPCs
}

func (e *Engine) context(dt float64, in input.Snapshot) *entity.Context {
	return &entity.Context{
		Dt:       dt,
		Input:    in,
		Tiles:    e.grid,
		Entities: entity.Views(e.entities),
		Rand:     e.rng,
		Tuning:   e.cfg.Tuning,
		Hooks: entity.Hooks{
			Effect:        e.effects.Emit,
			DamageNumber:  e.effects.DamageNumber,
			CameraShake:   e.camera.Shake,
			HitFreeze:     e.sched.Freeze,
			StartDialogue: e.dialogue.Start,
			AwardClue: func(id string) {
				if e.journal.AwardClue(id) {
					e.narrative.ClueAwarded(id)
				}
			},
			AwardItem: func(id string) {
				if e.journal.AwardItem(id) {
					e.narrative.ItemAwarded(id)
				}
			},
			Spawn: func(reqs []entity.SpawnRequest) {
				e.pending = append(e.pending, reqs...)
			},
			DialogueActive: e.dialogue.Active,
			HasClue:        e.journal.HasClue,
			HasItem:        e.journal.HasItem,
		},
	}
}

func (e *Engine) step(dt float64) error {
	if e.player == nil || e.paused {
		return nil
	}
	in := e.input.Poll()
	if in.Pressed(input.ActionPause) {
		e.paused = true
		return nil
	}
	ctx := e.context(dt, in)

	if ctx.DialogueActive() {
		e.dialogue.Update(dt, in)
		for _, en := range e.entities {
			en.Animate(dt)
		}
		e.present(dt)
		return nil
	}

	if in.Pressed(input.ActionInteract) {
		if id, ok := e.npcAt(e.player); ok {
			ctx.StartDialogue(id)
		}
	}

	e.player.Update(ctx)
	e.removals = e.removals[:0]
	for i := len(e.entities) - 1; i >= 1; i-- {
		en := e.entities[i]
		en.Update(ctx)
		if en.Removable() {
			e.removals = append(e.removals, i)
		}
	}

	e.combat.Update(ctx, e.player, e.entities[1:])
	e.traps.Update(ctx, e.player)
	if err := e.triggers.Update(ctx, e.player); err != nil {
		log.Printf("engine: %v", err)
	}

	for _, en := range e.entities {
		en.Health.Tick(dt)
	}
	// Indices were collected from the back, so each delete leaves the
	// remaining ones valid.
	for _, i := range e.removals {
		e.entities = slices.Delete(e.entities, i, i+1)
	}
	e.drainSpawns()

	e.present(dt)
	e.checkSignals()
	return nil
}

func (e *Engine) drainSpawns() {
	if len(e.pending) == 0 {
		return
	}
	reqs := e.pending
	e.pending = nil
	list, err := e.factory.SpawnAll(reqs)
	if err != nil {
		log.Printf("engine: refused spawn: %v", err)
		return
	}
	e.entities = append(e.entities, list...)
}

// present advances the camera and the visual collaborators.
func (e *Engine) present(dt float64) {
	e.camera.Follow(e.player.View(), dt)
	e.camera.Update(dt)
	e.effects.Update(dt)
	e.lighting.Update(dt, e.camera.View())
}

func (e *Engine) checkSignals() {
	if !e.complete && e.player.Alive() && common.Overlaps(e.player.Bounds(), e.exit) {
		e.complete = true
		log.Printf("engine: level %s complete", e.level.ID)
	}
	if !e.over && e.player.Removable() {
		e.over = true
		log.Printf("engine: game over on level %s", e.level.ID)
	}
}

func (e *Engine) npcAt(p *entity.Entity) (string, bool) {
	if e.level == nil || !p.Alive() {
		return "", false
	}
	box := p.Bounds()
	for _, n := range e.level.NPCs {
		if n.Dialogue != "" && common.Overlaps(box, n.Box.BB()) {
			return n.Dialogue, true
		}
	}
	return "", false
}
