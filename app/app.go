// Package app wires the board to a HAL: it owns the logger and the
// calculation client, feeds HAL input and ticks into the board and renders
// each frame.
package app

import (
	"fmt"
	"log/slog"

	"calcboard/board"
	"calcboard/board/client/calc"
	"calcboard/board/overlay"
	"calcboard/hal"
	"calcboard/internal/buildinfo"
	"calcboard/internal/config"
	"calcboard/internal/logging"
)

type Config struct {
	Settings config.Config
	// Calculator replaces the HTTP client built from Settings.
	Calculator board.Calculator
}

type system struct {
	h   hal.HAL
	log *slog.Logger
	b   *board.Board

	now     uint64
	crashed bool
}

// NewWithConfig builds the app. When setup fails the returned app reports the
// error from its first Step.
func NewWithConfig(h hal.HAL, cfg Config) hal.App {
	s, err := newSystem(h, cfg)
	if err != nil {
		return hal.StepFunc(func() error { return err })
	}
	return s
}

func newSystem(h hal.HAL, cfg Config) (*system, error) {
	st := cfg.Settings
	level, err := logging.ParseLevel(st.LogLevel)
	if err != nil {
		return nil, err
	}
	log := logging.Discard()
	if l := h.Logger(); l != nil {
		log = logging.New(lineWriter{l: l}, level)
	}

	calculator := cfg.Calculator
	if calculator == nil {
		c, err := calc.New(calc.Config{
			BaseURL:      st.APIURL,
			Timeout:      st.Timeout,
			MaxImageSide: st.MaxImageSide,
			Logger:       log.With("component", "calc"),
		})
		if err != nil {
			return nil, fmt.Errorf("calc client: %w", err)
		}
		calculator = c
	}

	width, height := st.Width, st.Height
	if d := h.Display(); d != nil {
		if fb := d.Framebuffer(); fb != nil {
			width, height = fb.Width(), fb.Height()
		}
	}

	var ts overlay.Typesetter
	if st.Typeset {
		ts = overlay.TeX
	}

	b := board.New(board.Config{
		Width:         width,
		Height:        height,
		Calculator:    calculator,
		Timeout:       st.Timeout,
		RevealDelay:   st.RevealDelay,
		ClearOnResult: st.ClearOnResult,
		Typesetter:    ts,
		Logger:        log.With("component", "board"),
	})

	log.Info("started",
		"version", buildinfo.Short(),
		"api", st.APIURL,
		"size", fmt.Sprintf("%dx%d", width, height),
	)
	return &system{h: h, log: log, b: b}, nil
}

// Step runs one frame. A panic inside the frame replaces the board with the
// panic screen for the rest of the run.
func (s *system) Step() error {
	if s.crashed {
		return nil
	}
	defer func() {
		if v := recover(); v != nil {
			s.crashed = true
			s.b.Close()
			showPanic(s.h, v)
		}
	}()

	s.drainTicks()
	s.drainInput()
	s.b.Step(s.now)

	if d := s.h.Display(); d != nil {
		if fb := d.Framebuffer(); fb != nil {
			s.b.Render(fb)
			return fb.Present()
		}
	}
	return nil
}

func (s *system) drainTicks() {
	t := s.h.Time()
	if t == nil {
		return
	}
	ch := t.Ticks()
	for {
		select {
		case seq := <-ch:
			if seq > s.now {
				s.now = seq
			}
		default:
			return
		}
	}
}

func (s *system) drainInput() {
	in := s.h.Input()
	if in == nil {
		return
	}
	if kbd := in.Keyboard(); kbd != nil {
		ch := kbd.Events()
	keys:
		for {
			select {
			case ev := <-ch:
				s.b.HandleKey(ev)
			default:
				break keys
			}
		}
	}
	if ptr := in.Pointer(); ptr != nil {
		ch := ptr.Events()
	pointer:
		for {
			select {
			case ev := <-ch:
				s.b.HandlePointer(ev)
			default:
				break pointer
			}
		}
	}
}

// Close cancels any in-flight request and waits for it to return.
func (s *system) Close() {
	s.b.Close()
}

// lineWriter adapts a HAL log sink to io.Writer for slog.
type lineWriter struct {
	l hal.Logger
}

func (w lineWriter) Write(p []byte) (int, error) {
	w.l.WriteLineBytes(p)
	return len(p), nil
}
