//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

const (
	DefaultWidth  = 1024
	DefaultHeight = 768
)

// Host is the desktop HAL implementation. It backs both the ebiten window and
// the headless runner.
type Host struct {
	logger *hostLogger
	fb     *hostFramebuffer
	kbd    *hostKeyboard
	ptr    *hostPointer
	t      *hostTime
}

// New returns a host HAL implementation with a framebuffer of the given size.
// Non-positive sizes fall back to DefaultWidth x DefaultHeight.
func New(width, height int) *Host {
	return NewWithLog(width, height, os.Stderr)
}

// NewWithLog is New with an explicit log sink.
func NewWithLog(width, height int, w io.Writer) *Host {
	if width <= 0 || height <= 0 {
		width, height = DefaultWidth, DefaultHeight
	}
	return &Host{
		logger: &hostLogger{w: w},
		fb:     newHostFramebuffer(width, height),
		kbd:    newHostKeyboard(),
		ptr:    newHostPointer(),
		t:      newHostTime(),
	}
}

func (h *Host) Logger() Logger   { return h.logger }
func (h *Host) Display() Display { return hostDisplay{fb: h.fb} }
func (h *Host) Input() Input     { return hostInput{kbd: h.kbd, ptr: h.ptr} }
func (h *Host) Time() Time       { return h.t }

// InjectPointer queues a pointer event as if it came from the window.
// It reports false when the queue is full.
func (h *Host) InjectPointer(ev PointerEvent) bool {
	return h.ptr.emit(ev)
}

// InjectKey queues a key event as if it came from the window.
func (h *Host) InjectKey(ev KeyEvent) bool {
	return h.kbd.emit(ev)
}

// Advance emits n millisecond ticks.
func (h *Host) Advance(n uint64) {
	h.t.stepN(n)
}

// Tick emits the milliseconds of wall time elapsed since the previous Tick.
// Frontends call it once per frame before stepping the app.
func (h *Host) Tick() {
	h.t.step()
}

// Size returns the framebuffer size.
func (h *Host) Size() (width, height int) {
	return h.fb.width, h.fb.height
}

// Snapshot copies the framebuffer pixels into dst, which must hold
// width*height*4 bytes.
func (h *Host) Snapshot(dst []byte) {
	h.fb.snapshot(dst)
}

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
	ptr *hostPointer
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
func (in hostInput) Pointer() Pointer   { return in.ptr }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	if len(b) == 0 || b[len(b)-1] != '\n' {
		l.w.Write([]byte{'\n'})
	}
}

// Write lets the log sink back an io.Writer based logger.
func (l *hostLogger) Write(p []byte) (int, error) {
	l.WriteLineBytes(p)
	return len(p), nil
}
