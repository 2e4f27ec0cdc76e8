// Package overlay positions and draws the calculation results on top of the
// drawing.
package overlay

import (
	"image"
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
)

// DefaultPosition is where the first result appears.
var DefaultPosition = image.Pt(10, 200)

const padding = 4

var (
	textColor = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	boxColor  = color.RGBA{R: 0x20, G: 0x20, B: 0x28, A: 0x60}
	dragColor = color.RGBA{R: 0x22, G: 0x8B, B: 0xE6, A: 0xFF}
)

// Displayer is the drawing target for Render.
type Displayer interface {
	drivers.Displayer
	FillRectangle(x, y, width, height int16, c color.RGBA) error
}

// Typesetter rewrites a raw label into its displayed form.
type Typesetter func(string) string

// Item is one result label.
type Item struct {
	Expression string
	Answer     string
	// Text is the displayed label; it starts as "<expr> = <answer>" and is
	// replaced by the typesetting pass.
	Text string
	Pos  image.Point

	typeset bool
}

// Overlay owns the result labels and the position shared by new ones.
type Overlay struct {
	items []*Item
	def   image.Point

	ts   Typesetter
	font tinyfont.Fonter

	grabbed int
	grabOff image.Point
}

func New() *Overlay {
	return &Overlay{
		def:     DefaultPosition,
		font:    &freemono.Regular12pt7b,
		grabbed: -1,
	}
}

// SetTypesetter installs the function used by Typeset. Nil disables the pass.
func (o *Overlay) SetTypesetter(ts Typesetter) { o.ts = ts }

// Default returns the position the next Add will use.
func (o *Overlay) Default() image.Point { return o.def }

// SetDefault changes the position for future items only.
func (o *Overlay) SetDefault(p image.Point) { o.def = p }

// Add appends a label at the current default position.
func (o *Overlay) Add(expr, answer string) *Item {
	it := &Item{
		Expression: expr,
		Answer:     answer,
		Text:       expr + " = " + answer,
		Pos:        o.def,
	}
	o.items = append(o.items, it)
	return it
}

// Items returns the labels in insertion order.
func (o *Overlay) Items() []Item {
	out := make([]Item, len(o.items))
	for i, it := range o.items {
		out[i] = *it
	}
	return out
}

func (o *Overlay) Len() int { return len(o.items) }

// Clear removes every label and drops any grab.
func (o *Overlay) Clear() {
	o.items = nil
	o.grabbed = -1
}

// Pending reports whether a typesetting pass has work to do.
func (o *Overlay) Pending() bool {
	if o.ts == nil {
		return false
	}
	for _, it := range o.items {
		if !it.typeset {
			return true
		}
	}
	return false
}

// Typeset runs the typesetter over labels added since the last pass and
// returns how many changed.
func (o *Overlay) Typeset() int {
	if o.ts == nil {
		return 0
	}
	n := 0
	for _, it := range o.items {
		if it.typeset {
			continue
		}
		it.typeset = true
		if s := o.ts(it.Text); s != it.Text {
			it.Text = s
			n++
		}
	}
	return n
}

// Bounds returns the label box of item i.
func (o *Overlay) Bounds(i int) image.Rectangle {
	if i < 0 || i >= len(o.items) {
		return image.Rectangle{}
	}
	it := o.items[i]
	_, w := tinyfont.LineWidth(o.font, it.Text)
	h := int(o.font.GetYAdvance())
	return image.Rect(it.Pos.X, it.Pos.Y, it.Pos.X+int(w)+2*padding, it.Pos.Y+h+2*padding)
}

// Grab starts dragging the topmost label under (x, y).
func (o *Overlay) Grab(x, y int) bool {
	p := image.Pt(x, y)
	for i := len(o.items) - 1; i >= 0; i-- {
		if p.In(o.Bounds(i)) {
			o.grabbed = i
			o.grabOff = p.Sub(o.items[i].Pos)
			return true
		}
	}
	o.grabbed = -1
	return false
}

// Dragging reports whether a label is grabbed.
func (o *Overlay) Dragging() bool { return o.grabbed >= 0 }

// DragTo moves the grabbed label, keeping the grab offset.
func (o *Overlay) DragTo(x, y int) {
	if o.grabbed < 0 {
		return
	}
	o.items[o.grabbed].Pos = image.Pt(x, y).Sub(o.grabOff)
}

// Release drops the grabbed label and makes its position the default for
// future items.
func (o *Overlay) Release() bool {
	if o.grabbed < 0 {
		return false
	}
	o.def = o.items[o.grabbed].Pos
	o.grabbed = -1
	return true
}

// Render draws every label in insertion order.
func (o *Overlay) Render(d Displayer) {
	ascent := int16(o.font.GetYAdvance()) * 3 / 4
	for i, it := range o.items {
		r := o.Bounds(i)
		_ = d.FillRectangle(int16(r.Min.X), int16(r.Min.Y), int16(r.Dx()), int16(r.Dy()), boxColor)
		if i == o.grabbed {
			_ = d.FillRectangle(int16(r.Min.X), int16(r.Max.Y-2), int16(r.Dx()), 2, dragColor)
		}
		tinyfont.WriteLine(d, o.font, int16(r.Min.X+padding), int16(r.Min.Y+padding)+ascent, it.Text, textColor)
	}
}
