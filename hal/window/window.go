//go:build !tinygo && cgo

// Package window shows a host HAL framebuffer in a desktop window and feeds
// mouse, touch and keyboard input back into it.
package window

import (
	"github.com/hajimehoshi/ebiten/v2"

	"calcboard/hal"
	"calcboard/internal/buildinfo"
)

// TPS is the update rate of the window loop.
const TPS = 60

// Run opens a window sized to the framebuffer of h and blocks until it is
// closed or a step returns an error. The app is closed before Run returns.
func Run(h *hal.Host, title string, newApp func(hal.HAL) hal.App) error {
	app := newApp(h)
	if app == nil {
		app = hal.StepFunc(nil)
	}
	defer app.Close()

	w, ht := h.Size()
	g := &game{h: h, app: app, ptr: newPointerPoller()}
	ebiten.SetWindowTitle(title + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(w, ht)
	ebiten.SetTPS(TPS)
	return ebiten.RunGame(g)
}

type game struct {
	h       *hal.Host
	fbImg   *ebiten.Image
	scratch []byte
	app     hal.App

	ptr *pointerPoller
}

func (g *game) Update() error {
	pollKeyboard(g.h)
	w, h := g.h.Size()
	g.ptr.poll(g.h, w, h)
	g.h.Tick()
	return g.app.Step()
}

func (g *game) Draw(screen *ebiten.Image) {
	w, h := g.h.Size()
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != w || g.fbImg.Bounds().Dy() != h {
		g.scratch = make([]byte, w*h*4)
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(w, h)
	}

	g.h.Snapshot(g.scratch)
	g.fbImg.WritePixels(g.scratch)
	screen.DrawImage(g.fbImg, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.Size()
}
