package board

import (
	"calcboard/board/canvas"
	"calcboard/board/toolbar"
	"calcboard/hal"
)

// HandlePointer routes a pointer event to the tool strip, a result label or
// the canvas, in that order. Only the pointer that pressed first is followed
// until it is released.
func (b *Board) HandlePointer(ev hal.PointerEvent) {
	if ev.Kind == hal.PointerDown {
		if b.ptr.active {
			return
		}
		b.ptr = pointerState{active: true, id: ev.ID}
		switch {
		case b.tools.Contains(ev.X, ev.Y):
			b.ptr.target = targetToolbar
			b.Apply(b.tools.Hit(ev.X, ev.Y))
		case b.over.Grab(ev.X, ev.Y):
			b.ptr.target = targetOverlay
		default:
			b.ptr.target = targetCanvas
			b.surface.Begin(ev.X, ev.Y)
		}
		return
	}

	if !b.ptr.active || ev.ID != b.ptr.id {
		return
	}

	switch ev.Kind {
	case hal.PointerMove:
		switch b.ptr.target {
		case targetToolbar:
			b.Apply(b.tools.Drag(ev.X, ev.Y))
		case targetOverlay:
			b.over.DragTo(ev.X, ev.Y)
		case targetCanvas:
			b.surface.LineTo(ev.X, ev.Y)
		}
	case hal.PointerUp, hal.PointerLeave:
		switch b.ptr.target {
		case targetToolbar:
			b.tools.Release()
		case targetOverlay:
			b.over.DragTo(ev.X, ev.Y)
			if b.over.Release() {
				b.log.Debug("result moved", "default", b.over.Default())
			}
		case targetCanvas:
			b.surface.End()
		}
		b.ptr = pointerState{}
	}
}

// HandleKey applies keyboard shortcuts. Only presses are handled.
func (b *Board) HandleKey(ev hal.KeyEvent) {
	if !ev.Press {
		return
	}
	switch ev.Code {
	case hal.KeyEnter:
		b.Calculate()
		return
	case hal.KeyBackspace, hal.KeyDelete:
		b.Reset()
		return
	}

	switch r := ev.Rune; {
	case r == 'e' || r == 'E':
		b.Apply(toolbar.Action{Kind: toolbar.ActionToggleEraser})
	case r == '[':
		b.Apply(toolbar.Action{Kind: toolbar.ActionSetWidth, Width: b.brush.Width - 1})
	case r == ']':
		b.Apply(toolbar.Action{Kind: toolbar.ActionSetWidth, Width: b.brush.Width + 1})
	case r >= '1' && r <= '9':
		b.Apply(toolbar.Action{Kind: toolbar.ActionSelectColor, Index: int(r - '1')})
	}
}

// Apply performs a tool strip action.
func (b *Board) Apply(a toolbar.Action) {
	switch a.Kind {
	case toolbar.ActionNone:
		return
	case toolbar.ActionReset:
		b.Reset()
		return
	case toolbar.ActionCalculate:
		b.Calculate()
		return
	case toolbar.ActionToggleEraser:
		if b.brush.Mode == canvas.ModeErase {
			b.brush.Mode = canvas.ModePaint
		} else {
			b.brush.Mode = canvas.ModeErase
		}
	case toolbar.ActionSelectColor:
		if !b.pal.Valid(a.Index) {
			return
		}
		b.swatch = a.Index
		b.brush.Color = b.pal.Color(a.Index)
		b.brush.Mode = canvas.ModePaint
	case toolbar.ActionSetWidth:
		b.brush.Width = canvas.ClampWidth(a.Width)
	}
	b.surface.SetBrush(b.brush)
	b.log.Debug("brush", "action", a.Kind, "mode", b.brush.Mode, "width", b.brush.Width, "swatch", b.swatch)
}
