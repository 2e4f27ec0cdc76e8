// Package board is the drawing board: it owns the canvas, the tool strip, the
// result overlay and the calculation request lifecycle.
//
// All methods except Close must be called from the UI goroutine. Background
// requests only hand their outcome back through a channel that Step drains.
package board

import (
	"context"
	"image"
	"image/draw"
	"log/slog"
	"sync"
	"time"

	"calcboard/board/canvas"
	"calcboard/board/overlay"
	"calcboard/board/palette"
	"calcboard/board/proto"
	"calcboard/board/toolbar"
	"calcboard/internal/logging"
)

const (
	// NoticeTTL is how long a notice stays on screen, in milliseconds.
	NoticeTTL = 4000
	// MaxNotices caps the number of notices kept at once.
	MaxNotices = 4

	errorTitle   = "Error"
	errorMessage = "Something went wrong"
)

// Calculator sends a drawing to the calculation service.
type Calculator interface {
	Calculate(ctx context.Context, img image.Image, vars map[string]string) (*proto.CalculateResponse, error)
}

// RequestState is the lifecycle state of the latest calculation request.
type RequestState uint8

const (
	RequestIdle RequestState = iota
	RequestPending
	RequestSucceeded
	RequestFailed
)

func (s RequestState) String() string {
	switch s {
	case RequestIdle:
		return "idle"
	case RequestPending:
		return "pending"
	case RequestSucceeded:
		return "succeeded"
	case RequestFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Config configures a Board.
type Config struct {
	Width  int
	Height int

	Calculator Calculator
	// Timeout bounds one request; zero leaves it to the Calculator.
	Timeout time.Duration
	// RevealDelay is the gap between consecutive result reveals. Zero reveals
	// all results in the step that applies the response.
	RevealDelay time.Duration
	// ClearOnResult clears the drawing whenever a result is revealed.
	ClearOnResult bool
	// Typesetter rewrites overlay labels one step after they appear. Nil
	// leaves labels as plain "expr = result".
	Typesetter overlay.Typesetter
	Palette    palette.Palette
	Logger     *slog.Logger
}

// Notice is a short message shown in the corner until it expires.
type Notice struct {
	Title   string
	Message string
	Expires uint64
}

type response struct {
	seq  uint64
	resp *proto.CalculateResponse
	err  error
}

type reveal struct {
	due   uint64
	entry proto.Result
}

type pointerTarget uint8

const (
	targetNone pointerTarget = iota
	targetToolbar
	targetOverlay
	targetCanvas
)

type pointerState struct {
	active bool
	id     int
	target pointerTarget
}

// Board is the application state.
type Board struct {
	cfg Config
	log *slog.Logger

	surface *canvas.Surface
	tools   *toolbar.Toolbar
	over    *overlay.Overlay
	pal     palette.Palette

	brush  canvas.Brush
	swatch int

	vars    map[string]string
	results []proto.Result

	state     RequestState
	seq       uint64
	cancel    context.CancelFunc
	responses chan response
	reveals   []reveal

	notices     []Notice
	now         uint64
	typesetNext bool

	ptr pointerState

	ctx       context.Context
	stop      context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New returns an idle board with an empty canvas.
func New(cfg Config) *Board {
	if cfg.Palette == nil {
		cfg.Palette = palette.Default()
	}
	ctx, stop := context.WithCancel(context.Background())
	b := &Board{
		cfg:       cfg,
		log:       logging.OrDiscard(cfg.Logger),
		surface:   canvas.New(cfg.Width, cfg.Height),
		tools:     toolbar.New(cfg.Width, cfg.Palette),
		over:      overlay.New(),
		pal:       cfg.Palette,
		swatch:    palette.DefaultIndex,
		vars:      map[string]string{},
		responses: make(chan response, 8),
		ctx:       ctx,
		stop:      stop,
		done:      make(chan struct{}),
	}
	b.over.SetTypesetter(cfg.Typesetter)
	b.brush = canvas.Brush{Color: b.pal.Color(b.swatch), Width: canvas.DefaultWidth, Mode: canvas.ModePaint}
	b.surface.SetBrush(b.brush)
	return b
}

// Close cancels any in-flight request and waits for it to finish.
func (b *Board) Close() {
	b.closeOnce.Do(func() {
		b.stop()
		close(b.done)
	})
	b.wg.Wait()
}

func (b *Board) Surface() *canvas.Surface  { return b.surface }
func (b *Board) Overlay() *overlay.Overlay { return b.over }
func (b *Board) Toolbar() *toolbar.Toolbar { return b.tools }
func (b *Board) State() RequestState       { return b.state }
func (b *Board) Brush() canvas.Brush       { return b.brush }
func (b *Board) Swatch() int               { return b.swatch }
func (b *Board) Now() uint64               { return b.now }
func (b *Board) PendingReveals() int       { return len(b.reveals) }

// Results returns the revealed results in reveal order.
func (b *Board) Results() []proto.Result {
	return append([]proto.Result(nil), b.results...)
}

// Bindings returns a copy of the variable bindings sent with each request.
func (b *Board) Bindings() map[string]string {
	out := make(map[string]string, len(b.vars))
	for k, v := range b.vars {
		out[k] = v
	}
	return out
}

// Notices returns the live notices, oldest first.
func (b *Board) Notices() []Notice {
	return append([]Notice(nil), b.notices...)
}

// Calculate snapshots the drawing and the bindings and starts a request.
// A request already in flight is cancelled and its response is dropped.
func (b *Board) Calculate() {
	if b.cfg.Calculator == nil {
		b.log.Error("calculate: no calculator configured")
		b.fail()
		return
	}
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}

	img := cloneRGBA(b.surface.Image())
	vars := b.Bindings()

	b.seq++
	seq := b.seq
	b.state = RequestPending

	var ctx context.Context
	var cancel context.CancelFunc
	if b.cfg.Timeout > 0 {
		ctx, cancel = context.WithTimeout(b.ctx, b.cfg.Timeout)
	} else {
		ctx, cancel = context.WithCancel(b.ctx)
	}
	b.cancel = cancel

	b.log.Debug("calculate", "seq", seq, "vars", len(vars))

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer cancel()
		resp, err := b.cfg.Calculator.Calculate(ctx, img, vars)
		select {
		case b.responses <- response{seq: seq, resp: resp, err: err}:
		case <-b.done:
		}
	}()
}

// Reset clears the drawing, the results and the bindings, and abandons any
// request or reveal still in progress. The overlay default position is kept.
func (b *Board) Reset() {
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
	// Bumping the sequence makes any response still in the channel stale.
	b.seq++
	b.state = RequestIdle
	b.reveals = nil
	b.typesetNext = false

	b.surface.Clear()
	b.over.Clear()
	b.results = nil
	b.vars = map[string]string{}
	b.log.Debug("reset")
}

// Step advances the board to now (milliseconds): it applies delivered
// responses, fires due reveals, runs the typesetting pass and expires
// notices.
func (b *Board) Step(now uint64) {
	if now > b.now {
		b.now = now
	}

	if b.typesetNext {
		b.typesetNext = false
		if n := b.over.Typeset(); n > 0 {
			b.log.Debug("typeset", "labels", n)
		}
	}

drain:
	for {
		select {
		case r := <-b.responses:
			b.apply(r)
		default:
			break drain
		}
	}

	b.fireReveals(false)

	if b.over.Pending() {
		b.typesetNext = true
	}

	live := b.notices[:0]
	for _, n := range b.notices {
		if n.Expires > b.now {
			live = append(live, n)
		}
	}
	b.notices = live
}

func (b *Board) apply(r response) {
	if r.seq != b.seq || b.state != RequestPending {
		b.log.Debug("dropping stale response", "seq", r.seq, "latest", b.seq)
		return
	}
	b.cancel = nil

	if r.err != nil || r.resp == nil {
		b.log.Error("calculate failed", "seq", r.seq, "err", r.err)
		b.fail()
		return
	}

	resp := r.resp
	b.state = RequestSucceeded
	b.notify(resp.Status, resp.Message)

	for k, v := range resp.Assignments() {
		b.vars[k] = v
	}

	// The flush below may clear the canvas, so the ink is measured first.
	center := b.surface.InkCenter()

	// Results of an earlier response still waiting are shown now so the
	// queue keeps response order.
	b.fireReveals(true)

	b.over.SetDefault(center)

	delay := uint64(b.cfg.RevealDelay / time.Millisecond)
	for i, e := range resp.Data {
		b.reveals = append(b.reveals, reveal{
			due:   b.now + uint64(i+1)*delay,
			entry: e,
		})
	}
	b.log.Info("calculate succeeded",
		"seq", r.seq,
		"status", resp.Status,
		"entries", len(resp.Data),
		"bindings", len(b.vars),
	)
}

func (b *Board) fail() {
	b.state = RequestFailed
	b.notify(errorTitle, errorMessage)
}

func (b *Board) fireReveals(all bool) {
	n := 0
	for _, rv := range b.reveals {
		if !all && rv.due > b.now {
			break
		}
		b.results = append(b.results, rv.entry)
		b.over.Add(rv.entry.Expr, rv.entry.Result)
		if b.cfg.ClearOnResult {
			b.surface.Clear()
		}
		n++
	}
	b.reveals = b.reveals[n:]
}

func (b *Board) notify(title, message string) {
	b.notices = append(b.notices, Notice{
		Title:   title,
		Message: message,
		Expires: b.now + NoticeTTL,
	})
	if over := len(b.notices) - MaxNotices; over > 0 {
		b.notices = append(b.notices[:0], b.notices[over:]...)
	}
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	if src == nil {
		return image.NewRGBA(image.Rectangle{})
	}
	dst := image.NewRGBA(src.Rect)
	draw.Draw(dst, dst.Rect, src, src.Rect.Min, draw.Src)
	return dst
}
