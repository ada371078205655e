package entity

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gumshoe/component"
)

// ErrUnknownSpawnType is returned for a spawn type with no controller.
var ErrUnknownSpawnType = errors.New("unknown spawn type")

// SpawnRequest asks for an entity of Type standing with its feet centered on
// (X, Y). Props carries optional overrides: "facing" ("left"/"right") and
// "health".
type SpawnRequest struct {
	Type  string         `json:"type"`
	X     float64        `json:"x"`
	Y     float64        `json:"y"`
	Props map[string]any `json:"props,omitempty"`
}

// Factory creates entities with unique, increasing IDs.
type Factory struct {
	nextID int
	tuning *Tuning
}

func NewFactory(t *Tuning) *Factory {
	if t == nil {
		t = DefaultTuning()
	}
	return &Factory{tuning: t}
}

// SetTuning changes the values used for entities created from now on.
func (f *Factory) SetTuning(t *Tuning) {
	if t != nil {
		f.tuning = t
	}
}

func (f *Factory) id() int {
	f.nextID++
	return f.nextID
}

// NewPlayer creates the player with its feet at (x, y).
func (f *Factory) NewPlayer(x, y float64) *Entity {
	t := f.tuning.Player
	e := &Entity{
		ID:     f.id(),
		Kind:   KindPlayer,
		Team:   component.FactionPlayer,
		W:      t.Width,
		H:      t.Height,
		Facing: 1,
		Health: component.NewHealth(t.Health),
		Anim:   component.NewAnimation(playerAnimations(t), component.AnimIdle),
		Player: &Player{},
	}
	e.Pos = cp.Vector{X: x - e.W/2, Y: y - e.H}
	return e
}

// Spawn creates an enemy from a request. The player only comes from
// NewPlayer, so a "player" request is refused.
func (f *Factory) Spawn(req SpawnRequest) (*Entity, error) {
	kind, err := ParseKind(req.Type)
	if err != nil {
		return nil, fmt.Errorf("entity: spawn: %w", err)
	}
	if kind == KindPlayer {
		return nil, fmt.Errorf("entity: spawn %q: %w", req.Type, ErrUnknownSpawnType)
	}
	e := f.newEnemy(kind, req.X, req.Y)
	applyProps(e, req.Props)
	return e, nil
}

// SpawnAll creates every request or none.
func (f *Factory) SpawnAll(reqs []SpawnRequest) ([]*Entity, error) {
	out := make([]*Entity, 0, len(reqs))
	for i, r := range reqs {
		e, err := f.Spawn(r)
		if err != nil {
			return nil, fmt.Errorf("entity: spawn %d: %w", i, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *Factory) newEnemy(kind Kind, x, y float64) *Entity {
	t := f.tuning.Enemy(kind)
	e := &Entity{
		ID:     f.id(),
		Kind:   kind,
		Team:   component.FactionEnemy,
		W:      t.Width,
		H:      t.Height,
		Facing: -1,
		Health: component.NewHealth(t.Health),
		Anim:   component.NewAnimation(component.DefaultEnemyAnimations(), component.AnimIdle),
		AI:     &Brain{},
	}
	e.Pos = cp.Vector{X: x - e.W/2, Y: y - e.H}
	if kind == KindCaster {
		e.AI.enter(aiIdle, 0)
	} else {
		e.AI.enter(aiPatrol, t.PatrolTime)
	}
	return e
}

func applyProps(e *Entity, props map[string]any) {
	if props == nil {
		return
	}
	switch v := props["facing"].(type) {
	case string:
		if v == "left" {
			e.Facing = -1
		} else if v == "right" {
			e.Facing = 1
		}
	case float64:
		e.face(v)
	}
	if v, ok := props["health"].(float64); ok && v > 0 {
		e.Health = component.NewHealth(int(v))
	}
}
