package entity

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/gumshoe/component"
)

// View is a read-only snapshot of an entity. It feeds AI sensing during a
// step and the presentation layer between steps.
type View struct {
	ID        int
	Kind      Kind
	Team      component.Faction
	Pos       cp.Vector // center
	HalfW     float64
	HalfH     float64
	Vel       cp.Vector
	Facing    float64
	Anim      component.AnimState
	Frame     int
	Progress  float64
	Health    int
	MaxHealth int
	Invuln    float64
	Alive     bool
}

func (v View) Bounds() cp.BB {
	return cp.BB{L: v.Pos.X - v.HalfW, B: v.Pos.Y - v.HalfH, R: v.Pos.X + v.HalfW, T: v.Pos.Y + v.HalfH}
}

func (e *Entity) View() View {
	return View{
		ID:        e.ID,
		Kind:      e.Kind,
		Team:      e.Team,
		Pos:       e.Center(),
		HalfW:     e.W / 2,
		HalfH:     e.H / 2,
		Vel:       e.Vel,
		Facing:    e.Facing,
		Anim:      e.Anim.State(),
		Frame:     e.Anim.Frame(),
		Progress:  e.Anim.Progress(),
		Health:    e.Health.Current,
		MaxHealth: e.Health.Max,
		Invuln:    e.Health.Invuln,
		Alive:     e.Alive(),
	}
}

// Views snapshots a list of entities in order.
func Views(list []*Entity) []View {
	out := make([]View, 0, len(list))
	for _, e := range list {
		out = append(out, e.View())
	}
	return out
}
