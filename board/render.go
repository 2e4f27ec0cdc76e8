package board

import (
	"fmt"
	"image"
	"image/draw"
	"strings"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"

	"calcboard/board/canvas"
	"calcboard/board/toolbar"
	"calcboard/hal"
)

const (
	noticeFontHeight = 10
	noticeFontOffset = 6
	noticeWidth      = 360
	noticeMargin     = 8
)

// Render draws the whole board into fb.
func (b *Board) Render(fb hal.Framebuffer) {
	if fb == nil {
		return
	}
	fb.ClearRGB(0, 0, 0)

	if dst := fb.Image(); dst != nil {
		src := b.surface.Image()
		draw.Draw(dst, dst.Rect.Intersect(src.Rect), src, image.Point{}, draw.Over)
	}

	d := hal.NewDisplay(fb)
	b.over.Render(d)
	b.tools.Render(d, toolbar.State{
		Swatch:  b.swatch,
		Erasing: b.brush.Mode == canvas.ModeErase,
		Width:   b.brush.Width,
		Status:  b.statusLine(),
	})
	b.renderNotices(d)
}

func (b *Board) statusLine() string {
	switch b.state {
	case RequestPending:
		return "calculating..."
	case RequestFailed:
		return "request failed"
	}
	if n := len(b.reveals); n > 0 {
		return fmt.Sprintf("%d result(s) pending", n)
	}
	if n := len(b.vars); n > 0 {
		return fmt.Sprintf("%d variable(s)", n)
	}
	return ""
}

// renderNotices draws the live notices as a small console in the bottom-left
// corner, oldest on top. The terminal is rebuilt every frame with one row per
// notice.
func (b *Board) renderNotices(d *hal.FBDisplay) {
	if len(b.notices) == 0 {
		return
	}
	font := &proggy.TinySZ8pt7b
	_, cw := tinyfont.LineWidth(font, "0")
	if cw == 0 {
		return
	}
	cols := noticeWidth / int(cw)

	lines := make([]string, 0, len(b.notices))
	for _, n := range b.notices {
		line := n.Title
		if n.Message != "" {
			line += ": " + n.Message
		}
		if len(line) > cols {
			line = line[:cols]
		}
		lines = append(lines, line)
	}

	w, h := d.Size()
	rows := len(lines)
	height := rows * noticeFontHeight
	region := d.Region(noticeMargin, int(h)-height-noticeMargin, min(noticeWidth, int(w)-2*noticeMargin), height)

	term := tinyterm.NewTerminal(region)
	term.Configure(&tinyterm.Config{
		Font:       font,
		FontHeight: noticeFontHeight,
		FontOffset: noticeFontOffset,
	})
	fmt.Fprint(term, strings.Repeat("\n", noticeLeadingFeeds(rows))+strings.Join(lines, "\n"))
}

// noticeLeadingFeeds returns how many line feeds move a freshly configured
// terminal of the given rows back to row 0. Configure leaves the cursor on
// row 2 and every feed wraps modulo rows.
func noticeLeadingFeeds(rows int) int {
	if rows <= 0 {
		return 0
	}
	return (rows - 2%rows) % rows
}
