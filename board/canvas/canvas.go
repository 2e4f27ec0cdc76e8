// Package canvas holds the drawing surface and rasterizes pointer strokes
// into it.
package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

const (
	MinWidth     = 1
	MaxWidth     = 20
	DefaultWidth = 5
)

// Mode selects how a stroke is composited.
type Mode uint8

const (
	// ModePaint draws the brush color over existing pixels.
	ModePaint Mode = iota
	// ModeErase removes existing pixels under the stroke.
	ModeErase
)

func (m Mode) String() string {
	if m == ModeErase {
		return "erase"
	}
	return "paint"
}

// Brush is the stroke style applied to each new segment.
type Brush struct {
	Color color.RGBA
	Width int
	Mode  Mode
}

// DefaultBrush is a white paint brush of DefaultWidth.
func DefaultBrush() Brush {
	return Brush{Color: color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, Width: DefaultWidth}
}

// ClampWidth limits w to [MinWidth, MaxWidth].
func ClampWidth(w int) int {
	if w < MinWidth {
		return MinWidth
	}
	if w > MaxWidth {
		return MaxWidth
	}
	return w
}

// Surface is a transparent RGBA buffer that strokes are drawn into.
//
// A nil *Surface ignores every call.
type Surface struct {
	img   *image.RGBA
	brush Brush

	drawing bool
	last    image.Point

	rast *vector.Rasterizer
	mask *image.Alpha
}

// New returns a fully transparent surface.
func New(width, height int) *Surface {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Surface{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		brush: DefaultBrush(),
		rast:  vector.NewRasterizer(1, 1),
	}
}

// Image returns the live pixel buffer.
func (s *Surface) Image() *image.RGBA {
	if s == nil {
		return nil
	}
	return s.img
}

func (s *Surface) Bounds() image.Rectangle {
	if s == nil {
		return image.Rectangle{}
	}
	return s.img.Rect
}

// SetBrush changes the style used by subsequent segments. The width is
// clamped.
func (s *Surface) SetBrush(b Brush) {
	if s == nil {
		return
	}
	b.Width = ClampWidth(b.Width)
	s.brush = b
}

func (s *Surface) Brush() Brush {
	if s == nil {
		return DefaultBrush()
	}
	return s.brush
}

// Drawing reports whether a stroke is in progress.
func (s *Surface) Drawing() bool {
	return s != nil && s.drawing
}

// Begin starts a new path at (x, y). Nothing is drawn until LineTo.
func (s *Surface) Begin(x, y int) {
	if s == nil {
		return
	}
	s.drawing = true
	s.last = image.Pt(x, y)
}

// LineTo draws a segment from the previous point to (x, y) with the current
// brush. It does nothing unless a stroke is in progress.
func (s *Surface) LineTo(x, y int) {
	if s == nil || !s.drawing {
		return
	}
	p := image.Pt(x, y)
	s.segment(s.last, p)
	s.last = p
}

// End finishes the current stroke.
func (s *Surface) End() {
	if s == nil {
		return
	}
	s.drawing = false
}

// Clear makes every pixel transparent and ends any stroke.
func (s *Surface) Clear() {
	if s == nil {
		return
	}
	clear(s.img.Pix)
	s.drawing = false
}

// InkBounds returns the smallest rectangle containing every pixel with
// non-zero alpha.
func (s *Surface) InkBounds() (image.Rectangle, bool) {
	if s == nil {
		return image.Rectangle{}, false
	}
	w, h := s.img.Rect.Dx(), s.img.Rect.Dy()
	minX, minY := w, h
	maxX, maxY := -1, -1
	pix := s.img.Pix
	stride := s.img.Stride
	for y := 0; y < h; y++ {
		row := pix[y*stride : y*stride+w*4]
		for x := 0; x < w; x++ {
			if row[x*4+3] == 0 {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if maxX < 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// InkCenter returns the center of InkBounds, or the center of the surface when
// nothing is drawn.
func (s *Surface) InkCenter() image.Point {
	if s == nil {
		return image.Point{}
	}
	r, ok := s.InkBounds()
	if !ok {
		return image.Pt(s.img.Rect.Dx()/2, s.img.Rect.Dy()/2)
	}
	return image.Pt((r.Min.X+r.Max.X-1)/2, (r.Min.Y+r.Max.Y-1)/2)
}

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

func (s *Surface) segment(a, b image.Point) {
	radius := float64(s.brush.Width) / 2
	ax, ay := float64(a.X)+0.5, float64(a.Y)+0.5
	bx, by := float64(b.X)+0.5, float64(b.Y)+0.5

	box := image.Rect(
		int(math.Floor(math.Min(ax, bx)-radius)),
		int(math.Floor(math.Min(ay, by)-radius)),
		int(math.Ceil(math.Max(ax, bx)+radius)),
		int(math.Ceil(math.Max(ay, by)+radius)),
	).Intersect(s.img.Rect)
	if box.Empty() {
		return
	}

	// Unit direction u and normal v; a zero-length segment becomes a dot.
	ux, uy := bx-ax, by-ay
	if l := math.Hypot(ux, uy); l > 0 {
		ux, uy = ux/l, uy/l
	} else {
		ux, uy = 1, 0
	}
	vx, vy := -uy, ux

	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	pt := func(cx, cy, du, dv float64) (float32, float32) {
		return float32(cx + radius*(du*ux+dv*vx) - ox), float32(cy + radius*(du*uy+dv*vy) - oy)
	}

	r := s.rast
	r.Reset(box.Dx(), box.Dy())
	r.DrawOp = draw.Src

	// One closed capsule outline: side, cap at b, side, cap at a. All arcs
	// keep the same winding so coverage never cancels.
	r.MoveTo(pt(ax, ay, 0, 1))
	r.LineTo(pt(bx, by, 0, 1))
	cubic(r, pt, bx, by, kappa, 1, 1, kappa, 1, 0)
	cubic(r, pt, bx, by, 1, -kappa, kappa, -1, 0, -1)
	r.LineTo(pt(ax, ay, 0, -1))
	cubic(r, pt, ax, ay, -kappa, -1, -1, -kappa, -1, 0)
	cubic(r, pt, ax, ay, -1, kappa, -kappa, 1, 0, 1)
	r.ClosePath()

	if s.mask == nil || s.mask.Rect.Dx() < box.Dx() || s.mask.Rect.Dy() < box.Dy() {
		s.mask = image.NewAlpha(image.Rect(0, 0, box.Dx(), box.Dy()))
	}
	mask := s.mask.SubImage(image.Rect(0, 0, box.Dx(), box.Dy())).(*image.Alpha)
	clear(mask.Pix)
	r.Draw(mask, mask.Rect, image.Opaque, image.Point{})

	if s.brush.Mode == ModeErase {
		draw.DrawMask(s.img, box, image.Transparent, image.Point{}, mask, image.Point{}, draw.Src)
		return
	}
	draw.DrawMask(s.img, box, image.NewUniform(s.brush.Color), image.Point{}, mask, image.Point{}, draw.Over)
}

func cubic(r *vector.Rasterizer, pt func(cx, cy, du, dv float64) (float32, float32), cx, cy, u1, v1, u2, v2, u3, v3 float64) {
	x1, y1 := pt(cx, cy, u1, v1)
	x2, y2 := pt(cx, cy, u2, v2)
	x3, y3 := pt(cx, cy, u3, v3)
	r.CubeTo(x1, y1, x2, y2, x3, y3)
}
