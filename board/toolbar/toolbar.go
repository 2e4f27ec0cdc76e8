// Package toolbar lays out, hit-tests and draws the tool strip at the top of
// the board.
package toolbar

import (
	"fmt"
	"image"
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"calcboard/board/canvas"
	"calcboard/board/palette"
)

const (
	Height = 40

	margin      = 8
	gap         = 6
	buttonH     = Height - 2*margin
	swatchSize  = buttonH
	sliderWidth = 160
)

// Kind identifies what a control does.
type Kind uint8

const (
	ActionNone Kind = iota
	ActionReset
	ActionCalculate
	ActionToggleEraser
	ActionSelectColor
	ActionSetWidth
)

func (k Kind) String() string {
	switch k {
	case ActionReset:
		return "reset"
	case ActionCalculate:
		return "calculate"
	case ActionToggleEraser:
		return "eraser"
	case ActionSelectColor:
		return "color"
	case ActionSetWidth:
		return "width"
	default:
		return "none"
	}
}

// Action is the result of a hit. Index is set for ActionSelectColor and Width
// for ActionSetWidth.
type Action struct {
	Kind  Kind
	Index int
	Width int
}

// State is what the strip shows besides its controls.
type State struct {
	Swatch  int
	Erasing bool
	Width   int
	// Status is drawn at the right edge, e.g. "calculating...".
	Status string
}

// Displayer is the drawing target for Render.
type Displayer interface {
	drivers.Displayer
	FillRectangle(x, y, width, height int16, c color.RGBA) error
	StrokeRectangle(x, y, width, height int16, c color.RGBA)
}

type control struct {
	kind  Kind
	index int
	label string
	rect  image.Rectangle
}

var (
	barColor    = color.RGBA{R: 0x1E, G: 0x1E, B: 0x24, A: 0xFF}
	buttonColor = color.RGBA{R: 0x3A, G: 0x3A, B: 0x44, A: 0xFF}
	activeColor = color.RGBA{R: 0x22, G: 0x8B, B: 0xE6, A: 0xFF}
	calcColor   = color.RGBA{R: 0x2F, G: 0x9E, B: 0x44, A: 0xFF}
	textColor   = color.RGBA{R: 0xF0, G: 0xF0, B: 0xF0, A: 0xFF}
	dimColor    = color.RGBA{R: 0x90, G: 0x90, B: 0x98, A: 0xFF}
	ringColor   = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	trackColor  = color.RGBA{R: 0x55, G: 0x55, B: 0x60, A: 0xFF}
)

// Toolbar is the tool strip. It keeps only layout and slider drag state; the
// values it shows come from State.
type Toolbar struct {
	width    int
	palette  palette.Palette
	controls []control
	slider   image.Rectangle

	font    tinyfont.Fonter
	sliding bool
}

func New(width int, pal palette.Palette) *Toolbar {
	t := &Toolbar{
		width:   width,
		palette: pal,
		font:    &proggy.TinySZ8pt7b,
	}
	t.layout()
	return t
}

func (t *Toolbar) layout() {
	x := margin
	button := func(kind Kind, label string) {
		w, _ := tinyfont.LineWidth(t.font, label)
		r := image.Rect(x, margin, x+int(w)+2*gap+4, margin+buttonH)
		t.controls = append(t.controls, control{kind: kind, label: label, rect: r})
		x = r.Max.X + gap
	}
	button(ActionReset, "Reset")
	button(ActionCalculate, "Calculate")
	button(ActionToggleEraser, "Eraser")

	x += gap
	for i := range t.palette {
		r := image.Rect(x, margin, x+swatchSize, margin+swatchSize)
		t.controls = append(t.controls, control{kind: ActionSelectColor, index: i, rect: r})
		x = r.Max.X + 4
	}

	x += gap
	t.slider = image.Rect(x, margin, x+sliderWidth, margin+buttonH)
}

// MinWidth returns the narrowest strip that shows every control and the
// slider label.
func (t *Toolbar) MinWidth() int {
	lw, _ := tinyfont.LineWidth(t.font, fmt.Sprintf("%dpx", canvas.MaxWidth))
	return t.slider.Max.X + gap + int(lw) + margin
}

// Bounds returns the strip rectangle.
func (t *Toolbar) Bounds() image.Rectangle {
	return image.Rect(0, 0, t.width, Height)
}

// Contains reports whether (x, y) falls on the strip. Such pointer events
// belong to the toolbar even when no control is hit.
func (t *Toolbar) Contains(x, y int) bool {
	return image.Pt(x, y).In(t.Bounds())
}

// Hit returns the action for a press at (x, y). Pressing the slider starts a
// slide that Drag continues until Release.
func (t *Toolbar) Hit(x, y int) Action {
	p := image.Pt(x, y)
	if !p.In(t.Bounds()) {
		return Action{}
	}
	for _, c := range t.controls {
		if p.In(c.rect) {
			return Action{Kind: c.kind, Index: c.index}
		}
	}
	if p.In(t.slider) {
		t.sliding = true
		return Action{Kind: ActionSetWidth, Width: t.widthAt(x)}
	}
	return Action{}
}

// ControlRect returns the rectangle of the control for kind (and swatch index
// for ActionSelectColor). ActionSetWidth returns the slider track.
func (t *Toolbar) ControlRect(kind Kind, index int) image.Rectangle {
	if kind == ActionSetWidth {
		return t.slider
	}
	for _, c := range t.controls {
		if c.kind == kind && (kind != ActionSelectColor || c.index == index) {
			return c.rect
		}
	}
	return image.Rectangle{}
}

// Sliding reports whether the width slider is being dragged.
func (t *Toolbar) Sliding() bool { return t.sliding }

// Drag continues a slide. It returns ActionNone when not sliding.
func (t *Toolbar) Drag(x, y int) Action {
	if !t.sliding {
		return Action{}
	}
	return Action{Kind: ActionSetWidth, Width: t.widthAt(x)}
}

// Release ends a slide.
func (t *Toolbar) Release() { t.sliding = false }

func (t *Toolbar) widthAt(x int) int {
	span := t.slider.Dx() - 1
	if span <= 0 {
		return canvas.MinWidth
	}
	off := x - t.slider.Min.X
	steps := canvas.MaxWidth - canvas.MinWidth
	return canvas.ClampWidth(canvas.MinWidth + (off*steps+span/2)/span)
}

// Render draws the strip for st.
func (t *Toolbar) Render(d Displayer, st State) {
	b := t.Bounds()
	_ = d.FillRectangle(0, 0, int16(b.Dx()), int16(b.Dy()), barColor)

	yAdv := int16(t.font.GetYAdvance())
	for _, c := range t.controls {
		r := c.rect
		x, y, w, h := int16(r.Min.X), int16(r.Min.Y), int16(r.Dx()), int16(r.Dy())
		switch c.kind {
		case ActionSelectColor:
			_ = d.FillRectangle(x, y, w, h, t.palette.Color(c.index))
			d.StrokeRectangle(x, y, w, h, trackColor)
			if c.index == st.Swatch && !st.Erasing {
				d.StrokeRectangle(x-2, y-2, w+4, h+4, ringColor)
			}
		default:
			bg := buttonColor
			if c.kind == ActionCalculate {
				bg = calcColor
			}
			if c.kind == ActionToggleEraser && st.Erasing {
				bg = activeColor
			}
			_ = d.FillRectangle(x, y, w, h, bg)
			lw, _ := tinyfont.LineWidth(t.font, c.label)
			tx := x + (w-int16(lw))/2
			ty := y + (h+yAdv)/2 - 3
			tinyfont.WriteLine(d, t.font, tx, ty, c.label, textColor)
		}
	}

	s := t.slider
	midY := int16(s.Min.Y + s.Dy()/2)
	_ = d.FillRectangle(int16(s.Min.X), midY-1, int16(s.Dx()), 3, trackColor)
	width := canvas.ClampWidth(st.Width)
	span := s.Dx() - 1
	knobX := s.Min.X + (width-canvas.MinWidth)*span/(canvas.MaxWidth-canvas.MinWidth)
	_ = d.FillRectangle(int16(knobX-3), int16(s.Min.Y+4), 7, int16(s.Dy()-8), activeColor)

	label := fmt.Sprintf("%dpx", width)
	ty := midY + yAdv/2 - 3
	tinyfont.WriteLine(d, t.font, int16(s.Max.X+gap), ty, label, textColor)

	if st.Status != "" {
		sw, _ := tinyfont.LineWidth(t.font, st.Status)
		sx := int16(t.width - margin - int(sw))
		lx := int16(s.Max.X + gap + 40)
		if sx < lx {
			sx = lx
		}
		tinyfont.WriteLine(d, t.font, sx, ty, st.Status, dimColor)
	}
}
