package main

import (
	"encoding/json"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/gumshoe/engine"
	"github.com/milk9111/gumshoe/input"
	"golang.org/x/image/font/basicfont"
)

type dialogueLine struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

type conversation struct {
	Lines []dialogueLine `json:"lines"`
}

// dialogueBox shows a conversation one line at a time. Interact or Jump
// advances; the box closes after the last line.
type dialogueBox struct {
	conversations map[string]conversation
	current       []dialogueLine
	line          int
	reveal        float64
	face          ebtext.Face
}

// charsPerSecond is the typewriter speed.
const charsPerSecond = 40

func newDialogueBox() *dialogueBox {
	return &dialogueBox{face: ebtext.NewGoXFace(basicfont.Face7x13)}
}

func (d *dialogueBox) Load(data json.RawMessage) error {
	d.current = nil
	d.conversations = nil
	if len(data) == 0 {
		return nil
	}
	var convs map[string]conversation
	if err := json.Unmarshal(data, &convs); err != nil {
		return fmt.Errorf("dialogue: %w", err)
	}
	d.conversations = convs
	return nil
}

func (d *dialogueBox) Start(id string) {
	c, ok := d.conversations[id]
	if !ok || len(c.Lines) == 0 {
		log.Printf("dialogue: no conversation %q", id)
		return
	}
	d.current = c.Lines
	d.line = 0
	d.reveal = 0
}

func (d *dialogueBox) Active() bool {
	return d.line < len(d.current)
}

func (d *dialogueBox) Update(dt float64, in input.Snapshot) {
	if !d.Active() {
		return
	}
	d.reveal += dt * charsPerSecond
	if !in.Pressed(input.ActionInteract) && !in.Pressed(input.ActionJump) {
		return
	}
	// First press finishes the line, second moves on.
	if n := len(d.current[d.line].Text); d.reveal < float64(n) {
		d.reveal = float64(n)
		return
	}
	d.line++
	d.reveal = 0
	if !d.Active() {
		d.current = nil
		d.line = 0
	}
}

func (d *dialogueBox) Draw(screen *ebiten.Image) {
	if !d.Active() {
		return
	}
	l := d.current[d.line]
	const margin, height = 8, 44
	y := float32(screenHeight - height - margin)
	vector.FillRect(screen, margin, y, screenWidth-2*margin, height, color.NRGBA{A: 0xd0}, false)
	vector.StrokeRect(screen, margin, y, screenWidth-2*margin, height, 1, color.White, false)

	text := l.Text
	if n := int(d.reveal); n < len(text) {
		text = text[:n]
	}
	d.print(screen, l.Speaker, margin+6, float64(y)+4, color.NRGBA{R: 0xf0, G: 0xc0, B: 0x60, A: 0xff})
	d.print(screen, text, margin+6, float64(y)+20, color.White)
}

func (d *dialogueBox) print(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	ebtext.Draw(screen, s, d.face, op)
}

type catalogEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type toast struct {
	text string
	life float64
}

const toastLife = 2.5

// casebook names the clues and items a level can award and shows a toast
// when one is picked up. Ownership lives in the engine journal.
type casebook struct {
	names  map[string]string
	toasts []toast
	face   ebtext.Face
}

func newCasebook() *casebook {
	return &casebook{
		names: make(map[string]string),
		face:  ebtext.NewGoXFace(basicfont.Face7x13),
	}
}

func (c *casebook) Load(clues, items json.RawMessage, _ *engine.Journal) error {
	c.toasts = nil
	for _, raw := range []json.RawMessage{clues, items} {
		if len(raw) == 0 {
			continue
		}
		var entries []catalogEntry
		if err := json.Unmarshal(raw, &entries); err != nil {
			return fmt.Errorf("casebook: %w", err)
		}
		for _, e := range entries {
			c.names[e.ID] = e.Name
		}
	}
	return nil
}

func (c *casebook) ClueAwarded(id string) {
	c.push("Clue: " + c.name(id))
}

func (c *casebook) ItemAwarded(id string) {
	c.push("Item: " + c.name(id))
}

func (c *casebook) name(id string) string {
	if n, ok := c.names[id]; ok && n != "" {
		return n
	}
	return id
}

func (c *casebook) push(s string) {
	c.toasts = append(c.toasts, toast{text: s, life: toastLife})
}

func (c *casebook) Update(dt float64) {
	live := c.toasts[:0]
	for _, t := range c.toasts {
		if t.life -= dt; t.life > 0 {
			live = append(live, t)
		}
	}
	c.toasts = live
}

func (c *casebook) Draw(screen *ebiten.Image) {
	for i, t := range c.toasts {
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(screenWidth-4, 4+float64(i)*14)
		op.PrimaryAlign = ebtext.AlignEnd
		op.ColorScale.ScaleWithColor(color.NRGBA{R: 0xf0, G: 0xe0, B: 0x90, A: 0xff})
		op.ColorScale.ScaleAlpha(float32(min(t.life, 1)))
		ebtext.Draw(screen, t.text, c.face, op)
	}
}
