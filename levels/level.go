package levels

import (
	"encoding/json"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gumshoe/collision"
	"github.com/milk9111/gumshoe/common"
	"github.com/milk9111/gumshoe/entity"
)

// Level is the on-disk level format. Dialogue, clue and item catalogs are
// opaque to the simulation and forwarded to collaborators untouched.
type Level struct {
	ID          string                `json:"id"`
	Name        string                `json:"name,omitempty"`
	Width       int                   `json:"width"`
	Height      int                   `json:"height"`
	TileSize    float64               `json:"tileSize"`
	Layers      Layers                `json:"layers"`
	PlayerStart Point                 `json:"playerStart"`
	Exit        Box                   `json:"exit"`
	Spawns      []entity.SpawnRequest `json:"spawns,omitempty"`
	NPCs        []NPC                 `json:"npcs,omitempty"`
	Lights      []Light               `json:"lights,omitempty"`
	Triggers    []Trigger             `json:"triggers,omitempty"`

	Dialogue json.RawMessage `json:"dialogue,omitempty"`
	Clues    json.RawMessage `json:"clues,omitempty"`
	Items    json.RawMessage `json:"items,omitempty"`
}

// Layers are row-major tile code arrays. Only Collision affects physics.
type Layers struct {
	Background []int `json:"background,omitempty"`
	Collision  []int `json:"collision"`
	Foreground []int `json:"foreground,omitempty"`
	Decoration []int `json:"decoration,omitempty"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func (b Box) BB() cp.BB {
	return common.Rect(b.X, b.Y, b.W, b.H)
}

// NPC is a talkable zone that starts a dialogue tree on interact.
type NPC struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Box      Box    `json:"box"`
	Dialogue string `json:"dialogue"`
}

type Light struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Radius    float64 `json:"radius"`
	Intensity float64 `json:"intensity"`
	Color     string  `json:"color,omitempty"`
	Flicker   bool    `json:"flicker,omitempty"`
}

type Trigger struct {
	ID     string `json:"id"`
	Box    Box    `json:"box"`
	Script string `json:"script"`
	Once   bool   `json:"once,omitempty"`
}

// Validate checks the shape of the level.
func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("levels: %s: size %dx%d", l.ID, l.Width, l.Height)
	}
	if l.TileSize <= 0 {
		return fmt.Errorf("levels: %s: tile size %v", l.ID, l.TileSize)
	}
	n := l.Width * l.Height
	for name, layer := range map[string][]int{
		"background": l.Layers.Background,
		"collision":  l.Layers.Collision,
		"foreground": l.Layers.Foreground,
		"decoration": l.Layers.Decoration,
	} {
		if name != "collision" && len(layer) == 0 {
			continue
		}
		if len(layer) != n {
			return fmt.Errorf("levels: %s: %s layer has %d cells, want %d", l.ID, name, len(layer), n)
		}
	}
	for _, t := range l.Triggers {
		if t.Script == "" {
			return fmt.Errorf("levels: %s: trigger %q has no script", l.ID, t.ID)
		}
	}
	return nil
}

// Grid builds a fresh collision grid from the collision layer.
func (l *Level) Grid() (*collision.Grid, error) {
	return collision.NewGrid(l.Width, l.Height, l.TileSize, l.Layers.Collision)
}

// PixelSize is the level extent in world units.
func (l *Level) PixelSize() (w, h float64) {
	return float64(l.Width) * l.TileSize, float64(l.Height) * l.TileSize
}
