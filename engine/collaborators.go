package engine

import (
	"encoding/json"
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gumshoe/collision"
	"github.com/milk9111/gumshoe/entity"
	"github.com/milk9111/gumshoe/input"
	"github.com/milk9111/gumshoe/levels"
)

// Effects draws particles and floating damage numbers.
type Effects interface {
	Emit(name string, at cp.Vector, opts entity.EffectOptions)
	DamageNumber(at cp.Vector, amount int, c color.Color)
	Update(dt float64)
	Reset()
}

// Dialogue runs conversation trees. While Active reports true gameplay is
// frozen and Update receives the step's input instead.
type Dialogue interface {
	Load(trees json.RawMessage) error
	Start(id string)
	Active() bool
	Update(dt float64, in input.Snapshot)
}

// Lighting owns the level's light sources and post-processing.
type Lighting interface {
	Load(lights []levels.Light)
	Update(dt float64, camera cp.Vector)
}

// RenderCache prebuilds static level art.
type RenderCache interface {
	Rebuild(lvl *levels.Level, grid *collision.Grid)
}

// Narrative owns clue and item catalogs. It receives the engine's journal on
// every level load and may reset it.
type Narrative interface {
	Load(clues, items json.RawMessage, j *Journal) error
	ClueAwarded(id string)
	ItemAwarded(id string)
}

type nopEffects struct{}

func (nopEffects) Emit(string, cp.Vector, entity.EffectOptions) {}
func (nopEffects) DamageNumber(cp.Vector, int, color.Color)     {}
func (nopEffects) Update(float64)                               {}
func (nopEffects) Reset()                                       {}

type nopDialogue struct{}

func (nopDialogue) Load(json.RawMessage) error     { return nil }
func (nopDialogue) Start(string)                   {}
func (nopDialogue) Active() bool                   { return false }
func (nopDialogue) Update(float64, input.Snapshot) {}

type nopLighting struct{}

func (nopLighting) Load([]levels.Light)       {}
func (nopLighting) Update(float64, cp.Vector) {}

type nopRenderCache struct{}

func (nopRenderCache) Rebuild(*levels.Level, *collision.Grid) {}

type nopNarrative struct{}

func (nopNarrative) Load(json.RawMessage, json.RawMessage, *Journal) error { return nil }
func (nopNarrative) ClueAwarded(string)                                    {}
func (nopNarrative) ItemAwarded(string)                                    {}
