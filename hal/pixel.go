package hal

import "image/color"

func fillRGBA(buf []byte, r, g, b, a uint8) {
	for i := 0; i+3 < len(buf); i += 4 {
		buf[i+0] = r
		buf[i+1] = g
		buf[i+2] = b
		buf[i+3] = a
	}
}

// blendOver composites c over the RGBA pixel at buf[off:off+4].
func blendOver(buf []byte, off int, c color.RGBA) {
	if c.A == 0xFF {
		buf[off+0] = c.R
		buf[off+1] = c.G
		buf[off+2] = c.B
		buf[off+3] = 0xFF
		return
	}
	a := uint32(c.A)
	ia := 255 - a
	buf[off+0] = uint8((uint32(c.R)*a + uint32(buf[off+0])*ia) / 255)
	buf[off+1] = uint8((uint32(c.G)*a + uint32(buf[off+1])*ia) / 255)
	buf[off+2] = uint8((uint32(c.B)*a + uint32(buf[off+2])*ia) / 255)
	buf[off+3] = uint8(a + uint32(buf[off+3])*ia/255)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
