package palette

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	p := Default()
	require.Equal(t, len(Hex), p.Len())
	require.Equal(t, color.RGBA{A: 0xFF}, p.Color(0))
	require.Equal(t, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, p.Color(DefaultIndex))
	require.Equal(t, color.RGBA{R: 0xFD, G: 0x7E, B: 0x14, A: 0xFF}, p.Color(p.Len()-1))
}

func TestColorOutOfRange(t *testing.T) {
	p := Default()
	require.Equal(t, p.Color(DefaultIndex), p.Color(-1))
	require.Equal(t, p.Color(DefaultIndex), p.Color(99))
	require.False(t, p.Valid(p.Len()))
	require.True(t, p.Valid(0))
}

func TestParseRejectsBadHex(t *testing.T) {
	_, err := Parse([]string{"#ffffff", "blue"})
	require.ErrorContains(t, err, `"blue"`)
}
