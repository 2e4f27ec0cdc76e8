package canvas

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	red  = color.RGBA{R: 0xEE, G: 0x33, B: 0x33, A: 0xFF}
	blue = color.RGBA{R: 0x33, G: 0x33, B: 0xEE, A: 0xFF}
)

func alphaAt(s *Surface, x, y int) uint8 {
	return s.Image().RGBAAt(x, y).A
}

func TestNewIsTransparent(t *testing.T) {
	s := New(40, 30)
	_, ok := s.InkBounds()
	require.False(t, ok)
	require.Equal(t, image.Pt(20, 15), s.InkCenter())
	require.Equal(t, DefaultBrush(), s.Brush())
}

func TestBeginDrawsNothing(t *testing.T) {
	s := New(40, 30)
	s.Begin(10, 10)
	require.True(t, s.Drawing())
	_, ok := s.InkBounds()
	require.False(t, ok)
}

func TestLineToRequiresBegin(t *testing.T) {
	s := New(40, 30)
	s.LineTo(20, 20)
	_, ok := s.InkBounds()
	require.False(t, ok)
}

func TestStrokeBounds(t *testing.T) {
	s := New(64, 48)
	s.Begin(10, 20)
	s.LineTo(40, 20)
	s.End()
	require.False(t, s.Drawing())

	require.Equal(t, uint8(0xFF), alphaAt(s, 25, 20))
	require.Equal(t, uint8(0xFF), alphaAt(s, 10, 20))
	require.Equal(t, uint8(0), alphaAt(s, 25, 30))

	r, ok := s.InkBounds()
	require.True(t, ok)
	require.True(t, r.Min.X >= 7 && r.Min.X <= 8, "min x %d", r.Min.X)
	require.True(t, r.Max.X >= 42 && r.Max.X <= 44, "max x %d", r.Max.X)
	require.True(t, r.Min.Y >= 17 && r.Min.Y <= 18, "min y %d", r.Min.Y)
	require.True(t, r.Max.Y >= 22 && r.Max.Y <= 24, "max y %d", r.Max.Y)

	c := s.InkCenter()
	require.InDelta(t, 25, c.X, 1)
	require.InDelta(t, 20, c.Y, 1)
}

func TestSegmentsUseBrushAtDrawTime(t *testing.T) {
	s := New(64, 48)
	s.SetBrush(Brush{Color: red, Width: 4})
	s.Begin(5, 10)
	s.LineTo(25, 10)
	s.SetBrush(Brush{Color: blue, Width: 4})
	s.LineTo(45, 10)
	s.End()

	require.Equal(t, red, s.Image().RGBAAt(12, 10))
	require.Equal(t, blue, s.Image().RGBAAt(38, 10))
}

func TestEraseRemovesInk(t *testing.T) {
	s := New(64, 48)
	s.Begin(10, 20)
	s.LineTo(50, 20)
	s.End()

	s.SetBrush(Brush{Width: MaxWidth, Mode: ModeErase})
	s.Begin(30, 20)
	s.LineTo(31, 20)
	s.End()

	require.Equal(t, uint8(0), alphaAt(s, 30, 20))
	require.Equal(t, uint8(0xFF), alphaAt(s, 12, 20))
	require.Equal(t, uint8(0xFF), alphaAt(s, 48, 20))
}

func TestZeroLengthSegmentDrawsDot(t *testing.T) {
	s := New(32, 32)
	s.SetBrush(Brush{Color: red, Width: 6})
	s.Begin(16, 16)
	s.LineTo(16, 16)
	require.Equal(t, red, s.Image().RGBAAt(16, 16))
	require.Equal(t, uint8(0), alphaAt(s, 16, 24))
}

func TestClipsAtEdges(t *testing.T) {
	s := New(16, 16)
	s.Begin(-10, 8)
	s.LineTo(30, 8)
	r, ok := s.InkBounds()
	require.True(t, ok)
	require.Equal(t, 0, r.Min.X)
	require.Equal(t, 16, r.Max.X)
}

func TestClear(t *testing.T) {
	s := New(32, 32)
	s.Begin(2, 2)
	s.LineTo(20, 20)
	s.Clear()
	require.False(t, s.Drawing())
	_, ok := s.InkBounds()
	require.False(t, ok)
	for _, b := range s.Image().Pix {
		require.Zero(t, b)
	}
}

func TestWidthClamp(t *testing.T) {
	s := New(8, 8)
	s.SetBrush(Brush{Width: 0})
	require.Equal(t, MinWidth, s.Brush().Width)
	s.SetBrush(Brush{Width: 99})
	require.Equal(t, MaxWidth, s.Brush().Width)
	require.Equal(t, 7, ClampWidth(7))
}

func TestNilSurface(t *testing.T) {
	var s *Surface
	s.SetBrush(Brush{Width: 3})
	s.Begin(1, 1)
	s.LineTo(2, 2)
	s.End()
	s.Clear()
	require.False(t, s.Drawing())
	require.Nil(t, s.Image())
	_, ok := s.InkBounds()
	require.False(t, ok)
	require.Equal(t, image.Point{}, s.InkCenter())
}
