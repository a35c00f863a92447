package render

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// Presenter is the display collaborator: it receives the finished
// character grid once per frame, after rasterization completes, and owns
// how (and whether) it reaches a screen.
type Presenter interface {
	Present(buf *CharBuffer) error
}

// Draw blits the character grid onto a terminal screen, one glyph per
// cell, clipped to the given area.
func (b *CharBuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y && row < b.Height; row++ {
		for col := area.Min.X; col < area.Max.X && col < b.Width; col++ {
			cell := &uv.Cell{
				Content: string(b.Glyph(col, row)),
				Width:   1,
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// DisplayScreen is a terminal screen that can flush composed cells to the
// visible display. *uv.Terminal satisfies it.
type DisplayScreen interface {
	uv.Screen
	Display() error
}

// TerminalPresenter presents frames on a terminal screen.
type TerminalPresenter struct {
	scr DisplayScreen
}

// NewTerminalPresenter creates a presenter drawing to scr.
func NewTerminalPresenter(scr DisplayScreen) *TerminalPresenter {
	return &TerminalPresenter{scr: scr}
}

// Present draws the buffer and flushes the terminal.
func (p *TerminalPresenter) Present(buf *CharBuffer) error {
	buf.Draw(p.scr, uv.Rect(0, 0, buf.Width, buf.Height))
	return p.scr.Display()
}
