//go:build !tinygo

package hal

import (
	"image"
	"sync"
)

type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	img    *image.RGBA
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	return &hostFramebuffer{
		width:  width,
		height: height,
		stride: img.Stride,
		img:    img,
	}
}

func (f *hostFramebuffer) Width() int          { return f.width }
func (f *hostFramebuffer) Height() int         { return f.height }
func (f *hostFramebuffer) Format() PixelFormat { return PixelFormatRGBA8888 }
func (f *hostFramebuffer) StrideBytes() int    { return f.stride }
func (f *hostFramebuffer) Buffer() []byte      { return f.img.Pix }
func (f *hostFramebuffer) Image() *image.RGBA  { return f.img }
func (f *hostFramebuffer) Present() error      { return nil }

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fillRGBA(f.img.Pix, r, g, b, 0xFF)
}

// snapshot copies the current pixels into dst, which must be Width*Height*4 bytes.
func (f *hostFramebuffer) snapshot(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.img.Pix)
}
