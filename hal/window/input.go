//go:build !tinygo && cgo

package window

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"calcboard/hal"
)

var keyMap = []struct {
	key  ebiten.Key
	code hal.KeyCode
}{
	{ebiten.KeyEnter, hal.KeyEnter},
	{ebiten.KeyNumpadEnter, hal.KeyEnter},
	{ebiten.KeyEscape, hal.KeyEscape},
	{ebiten.KeyBackspace, hal.KeyBackspace},
	{ebiten.KeyDelete, hal.KeyDelete},
}

func pollKeyboard(h *hal.Host) {
	for _, r := range ebiten.AppendInputChars(nil) {
		h.InjectKey(hal.KeyEvent{Press: true, Rune: r})
	}

	for _, m := range keyMap {
		if inpututil.IsKeyJustPressed(m.key) {
			h.InjectKey(hal.KeyEvent{Code: m.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(m.key) {
			h.InjectKey(hal.KeyEvent{Code: m.code, Press: false})
		}
	}
}

type pointerPoller struct {
	mouseDown bool
	lastMouse image.Point

	touches map[ebiten.TouchID]image.Point
	scratch []ebiten.TouchID
}

func newPointerPoller() *pointerPoller {
	return &pointerPoller{touches: make(map[ebiten.TouchID]image.Point)}
}

// poll translates this tick's mouse and touch state into pointer events.
// Coordinates are in framebuffer space because the window layout matches the
// framebuffer size.
func (p *pointerPoller) poll(h *hal.Host, width, height int) {
	mx, my := ebiten.CursorPosition()
	inside := mx >= 0 && my >= 0 && mx < width && my < height

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		if inside {
			p.mouseDown = true
			h.InjectPointer(hal.PointerEvent{Kind: hal.PointerDown, ID: hal.MousePointerID, X: mx, Y: my})
		}
	case !p.mouseDown:
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		p.mouseDown = false
		h.InjectPointer(hal.PointerEvent{Kind: hal.PointerUp, ID: hal.MousePointerID, X: mx, Y: my})
	case !inside:
		p.mouseDown = false
		h.InjectPointer(hal.PointerEvent{Kind: hal.PointerLeave, ID: hal.MousePointerID, X: mx, Y: my})
	case mx != p.lastMouse.X || my != p.lastMouse.Y:
		h.InjectPointer(hal.PointerEvent{Kind: hal.PointerMove, ID: hal.MousePointerID, X: mx, Y: my})
	}
	p.lastMouse = image.Pt(mx, my)

	p.scratch = inpututil.AppendJustPressedTouchIDs(p.scratch[:0])
	for _, id := range p.scratch {
		x, y := ebiten.TouchPosition(id)
		p.touches[id] = image.Pt(x, y)
		h.InjectPointer(hal.PointerEvent{Kind: hal.PointerDown, ID: touchPointerID(id), X: x, Y: y})
	}

	p.scratch = inpututil.AppendJustReleasedTouchIDs(p.scratch[:0])
	for _, id := range p.scratch {
		if _, ok := p.touches[id]; !ok {
			continue
		}
		x, y := inpututil.TouchPositionInPreviousTick(id)
		delete(p.touches, id)
		h.InjectPointer(hal.PointerEvent{Kind: hal.PointerUp, ID: touchPointerID(id), X: x, Y: y})
	}

	p.scratch = ebiten.AppendTouchIDs(p.scratch[:0])
	for _, id := range p.scratch {
		last, ok := p.touches[id]
		if !ok {
			continue
		}
		x, y := ebiten.TouchPosition(id)
		if x == last.X && y == last.Y {
			continue
		}
		p.touches[id] = image.Pt(x, y)
		h.InjectPointer(hal.PointerEvent{Kind: hal.PointerMove, ID: touchPointerID(id), X: x, Y: y})
	}
}

func touchPointerID(id ebiten.TouchID) int {
	return int(id) + 1
}
