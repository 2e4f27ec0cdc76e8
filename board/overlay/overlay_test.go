package overlay

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordDisplay struct {
	w, h   int16
	pixels int
	rects  int
}

func (d *recordDisplay) Size() (int16, int16)              { return d.w, d.h }
func (d *recordDisplay) SetPixel(x, y int16, c color.RGBA) { d.pixels++ }
func (d *recordDisplay) Display() error                    { return nil }
func (d *recordDisplay) FillRectangle(x, y, w, h int16, c color.RGBA) error {
	d.rects++
	return nil
}

func TestAddUsesDefault(t *testing.T) {
	o := New()
	require.Equal(t, DefaultPosition, o.Default())

	o.Add("2 + 2", "4")
	o.SetDefault(image.Pt(50, 60))
	o.Add("x", "3")
	o.Add("x", "3")

	items := o.Items()
	require.Len(t, items, 3)
	require.Equal(t, "2 + 2 = 4", items[0].Text)
	require.Equal(t, DefaultPosition, items[0].Pos)
	require.Equal(t, image.Pt(50, 60), items[1].Pos)
	require.Equal(t, items[1], items[2])
}

func TestDragChangesDefaultOnly(t *testing.T) {
	o := New()
	o.Add("1", "1")
	o.Add("2", "2")
	first := o.Items()[0].Pos

	// Both items share a position; the topmost (last) one is grabbed.
	require.True(t, o.Grab(first.X+5, first.Y+5))
	require.True(t, o.Dragging())
	o.DragTo(first.X+105, first.Y+55)
	require.True(t, o.Release())
	require.False(t, o.Dragging())

	items := o.Items()
	require.Equal(t, first, items[0].Pos)
	require.Equal(t, first.Add(image.Pt(100, 50)), items[1].Pos)
	require.Equal(t, first.Add(image.Pt(100, 50)), o.Default())

	o.Add("3", "3")
	require.Equal(t, o.Default(), o.Items()[2].Pos)
	require.Equal(t, first, o.Items()[0].Pos)
}

func TestGrabMiss(t *testing.T) {
	o := New()
	o.Add("1", "1")
	require.False(t, o.Grab(0, 0))
	o.DragTo(500, 500)
	require.False(t, o.Release())
	require.Equal(t, DefaultPosition, o.Items()[0].Pos)
	require.Equal(t, DefaultPosition, o.Default())
}

func TestClear(t *testing.T) {
	o := New()
	o.Add("1", "1")
	p := o.Items()[0].Pos
	o.Grab(p.X+1, p.Y+1)
	o.Clear()
	require.Zero(t, o.Len())
	require.False(t, o.Dragging())
	require.False(t, o.Release())
}

func TestTypesetPass(t *testing.T) {
	o := New()
	o.Add(`\frac{x}{2}`, "3")
	require.False(t, o.Pending())
	require.Zero(t, o.Typeset())

	o.SetTypesetter(TeX)
	require.True(t, o.Pending())
	require.Equal(t, 1, o.Typeset())
	require.False(t, o.Pending())
	require.Equal(t, "x/2 = 3", o.Items()[0].Text)

	o.Add("y", "1")
	require.True(t, o.Pending())
	require.Zero(t, o.Typeset())
	require.Equal(t, "y = 1", o.Items()[1].Text)
}

func TestBoundsGrowWithText(t *testing.T) {
	o := New()
	o.Add("1", "1")
	o.Add("123456", "7890")
	short := o.Bounds(0)
	long := o.Bounds(1)
	require.Greater(t, long.Dx(), short.Dx())
	require.Equal(t, short.Dy(), long.Dy())
	require.True(t, o.Bounds(5).Empty())
}

func TestRender(t *testing.T) {
	o := New()
	o.Add("2 + 2", "4")
	d := &recordDisplay{w: 640, h: 480}
	o.Render(d)
	require.Equal(t, 1, d.rects)
	require.Greater(t, d.pixels, 0)
}

func TestTeX(t *testing.T) {
	cases := map[string]string{
		`\(\LARGE{x = 4}\)`:            "x = 4",
		`\frac{x}{2} + 1 = 3`:          "x/2 + 1 = 3",
		`\frac{a+b}{c}`:                "(a+b)/c",
		`\sqrt{16} = 4`:                "sqrt(16) = 4",
		`\sqrt[3]{27}`:                 "root3(27)",
		`x^{2} + y^2`:                  "x^2 + y^2",
		`x^{10}`:                       "x^(10)",
		`2 \times 3 = 6`:               "2 * 3 = 6",
		`\left( 1 + 2 \right) \cdot 3`: "( 1 + 2 ) * 3",
		`\pi r^2`:                      "pi r^2",
		`$\text{area} = 12$`:           "area = 12",
		`2 + 2 = 4`:                    "2 + 2 = 4",
		`a \le b`:                      "a <= b",
		`\mathrm{unknown}\,\alpha`:     "unknown alpha",
		`\foo`:                         "foo",
	}
	for in, want := range cases {
		require.Equal(t, want, TeX(in), "input %q", in)
	}
}
