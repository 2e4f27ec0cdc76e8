package hal

import (
	"image/color"

	"tinygo.org/x/drivers"
)

// FBDisplay adapts a Framebuffer to the tinyfont/tinyterm display contract.
//
// A display may cover a sub-region of the framebuffer; coordinates are then
// relative to the region origin and pixels outside it are dropped. SetPixel
// blends translucent colors over the existing pixel.
type FBDisplay struct {
	fb Framebuffer

	originX, originY int
	width, height    int
}

var _ drivers.Displayer = (*FBDisplay)(nil)

// NewDisplay returns a display adapter covering the whole framebuffer.
func NewDisplay(fb Framebuffer) *FBDisplay {
	d := &FBDisplay{fb: fb}
	if fb != nil {
		d.width = fb.Width()
		d.height = fb.Height()
	}
	return d
}

// Region returns a display for the given rectangle of d, in d's coordinates.
// The rectangle is clipped to d.
func (d *FBDisplay) Region(x, y, width, height int) *FBDisplay {
	x0 := clampInt(x, 0, d.width)
	y0 := clampInt(y, 0, d.height)
	x1 := clampInt(x+width, x0, d.width)
	y1 := clampInt(y+height, y0, d.height)
	return &FBDisplay{
		fb:      d.fb,
		originX: d.originX + x0,
		originY: d.originY + y0,
		width:   x1 - x0,
		height:  y1 - y0,
	}
}

func (d *FBDisplay) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.width), int16(d.height)
}

func (d *FBDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil || d.fb.Format() != PixelFormatRGBA8888 {
		return
	}
	buf := d.fb.Buffer()
	if buf == nil {
		return
	}

	ix := int(x)
	iy := int(y)
	if ix < 0 || ix >= d.width || iy < 0 || iy >= d.height {
		return
	}

	off := (d.originY+iy)*d.fb.StrideBytes() + (d.originX+ix)*4
	if off < 0 || off+3 >= len(buf) {
		return
	}
	blendOver(buf, off, c)
}

func (d *FBDisplay) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

func (d *FBDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if d.fb == nil || d.fb.Format() != PixelFormatRGBA8888 {
		return nil
	}
	buf := d.fb.Buffer()
	if buf == nil {
		return nil
	}

	x0 := clampInt(int(x), 0, d.width)
	y0 := clampInt(int(y), 0, d.height)
	x1 := clampInt(int(x)+int(width), 0, d.width)
	y1 := clampInt(int(y)+int(height), 0, d.height)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	stride := d.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := (d.originY + py) * stride
		for px := x0; px < x1; px++ {
			off := row + (d.originX+px)*4
			if off < 0 || off+3 >= len(buf) {
				continue
			}
			blendOver(buf, off, c)
		}
	}
	return nil
}

// StrokeRectangle draws a one pixel outline.
func (d *FBDisplay) StrokeRectangle(x, y, width, height int16, c color.RGBA) {
	if width <= 0 || height <= 0 {
		return
	}
	_ = d.FillRectangle(x, y, width, 1, c)
	_ = d.FillRectangle(x, y+height-1, width, 1, c)
	_ = d.FillRectangle(x, y+1, 1, height-2, c)
	_ = d.FillRectangle(x+width-1, y+1, 1, height-2, c)
}

// SetScroll is a no-op: the framebuffer has no hardware scroll.
func (d *FBDisplay) SetScroll(line int16) {
	_ = line
}

func (d *FBDisplay) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}
