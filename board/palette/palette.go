// Package palette provides the fixed stroke color swatches.
package palette

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Hex lists the swatches in display order.
var Hex = []string{
	"#000000",
	"#ffffff",
	"#ee3333",
	"#e64980",
	"#be4bdb",
	"#893200",
	"#228be6",
	"#3333ee",
	"#40c057",
	"#00aa00",
	"#fab005",
	"#fd7e14",
}

// DefaultIndex is the white swatch.
const DefaultIndex = 1

// Swatch is one selectable color.
type Swatch struct {
	Hex   string
	Color color.RGBA
}

// Palette is an ordered list of swatches.
type Palette []Swatch

// Parse builds a palette from hex strings such as "#fd7e14".
func Parse(hex []string) (Palette, error) {
	p := make(Palette, 0, len(hex))
	for _, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("palette: %q: %w", h, err)
		}
		r, g, b := c.RGB255()
		p = append(p, Swatch{Hex: h, Color: color.RGBA{R: r, G: g, B: b, A: 0xFF}})
	}
	return p, nil
}

// Default returns the built-in palette.
func Default() Palette {
	p, err := Parse(Hex)
	if err != nil {
		panic(err)
	}
	return p
}

// Len returns the number of swatches.
func (p Palette) Len() int { return len(p) }

// Color returns the swatch color at i, or white when i is out of range.
func (p Palette) Color(i int) color.RGBA {
	if i < 0 || i >= len(p) {
		return color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	}
	return p[i].Color
}

// Valid reports whether i indexes a swatch.
func (p Palette) Valid(i int) bool { return i >= 0 && i < len(p) }
