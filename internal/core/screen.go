package core

import "strings"

// Glyph is one character cell of the screen buffer.
type Glyph struct {
	Rune  rune
	Color Color
}

var blank = Glyph{Rune: ' '}

// Screen is an off-terminal character buffer. Games draw into it with plain
// rune operations; the platform layer turns it into styled output.
// Everything that would land outside the buffer is clipped.
type Screen struct {
	w, h int
	buf  []Glyph // row-major
}

// NewScreen returns a blank width x height buffer.
func NewScreen(width, height int) *Screen {
	s := &Screen{}
	s.reset(width, height)
	return s
}

func (s *Screen) reset(width, height int) {
	s.w, s.h = max(0, width), max(0, height)
	s.buf = make([]Glyph, s.w*s.h)
	s.Clear()
}

func (s *Screen) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return 0, false
	}
	return y*s.w + x, true
}

func (s *Screen) Width() int  { return s.w }
func (s *Screen) Height() int { return s.h }

// Resize changes the dimensions. The overlapping top-left region survives.
func (s *Screen) Resize(width, height int) {
	if width == s.w && height == s.h {
		return
	}
	old := *s
	s.reset(width, height)
	for y := range min(old.h, s.h) {
		n := min(old.w, s.w)
		copy(s.buf[y*s.w:y*s.w+n], old.buf[y*old.w:y*old.w+n])
	}
}

// Clear blanks every cell.
func (s *Screen) Clear() {
	for i := range s.buf {
		s.buf[i] = blank
	}
}

// Set writes an uncolored rune.
func (s *Screen) Set(x, y int, r rune) {
	s.SetColored(x, y, r, ColorDefault)
}

func (s *Screen) SetColored(x, y int, r rune, c Color) {
	if i, ok := s.index(x, y); ok {
		s.buf[i] = Glyph{Rune: r, Color: c}
	}
}

// Glyph returns the cell at (x, y), or a blank outside the buffer.
func (s *Screen) Glyph(x, y int) Glyph {
	if i, ok := s.index(x, y); ok {
		return s.buf[i]
	}
	return blank
}

func (s *Screen) DrawText(x, y int, text string) {
	s.DrawTextColored(x, y, text, ColorDefault)
}

// DrawTextColored writes text left to right from (x, y), one cell per rune.
func (s *Screen) DrawTextColored(x, y int, text string, c Color) {
	for _, r := range text {
		s.SetColored(x, y, r, c)
		x++
	}
}

// DrawTextCentered writes text on row y, centered by rune count.
func (s *Screen) DrawTextCentered(y int, text string) {
	s.DrawText((s.w-len([]rune(text)))/2, y, text)
}

// DrawRect fills r with fill.
func (s *Screen) DrawRect(r Rect, fill rune) {
	for y := r.Y; y < r.Bottom(); y++ {
		s.DrawHLine(r.X, y, r.W, fill)
	}
}

// DrawBox outlines r with single-line box drawing characters.
func (s *Screen) DrawBox(r Rect, c Color) {
	left, right := r.X, r.Right()-1
	top, bottom := r.Y, r.Bottom()-1

	for x := left + 1; x < right; x++ {
		s.SetColored(x, top, '─', c)
		s.SetColored(x, bottom, '─', c)
	}
	for y := top + 1; y < bottom; y++ {
		s.SetColored(left, y, '│', c)
		s.SetColored(right, y, '│', c)
	}
	s.SetColored(left, top, '┌', c)
	s.SetColored(right, top, '┐', c)
	s.SetColored(left, bottom, '└', c)
	s.SetColored(right, bottom, '┘', c)
}

func (s *Screen) DrawHLine(x, y, length int, r rune) {
	for i := range length {
		s.Set(x+i, y, r)
	}
}

// Row returns line y as plain text; outside the buffer it is all blanks.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.h {
		return strings.Repeat(" ", s.w)
	}
	var sb strings.Builder
	for _, g := range s.buf[y*s.w : (y+1)*s.w] {
		sb.WriteRune(g.Rune)
	}
	return sb.String()
}

// String returns the buffer as plain text, one line per row.
func (s *Screen) String() string {
	rows := make([]string, s.h)
	for y := range rows {
		rows[y] = s.Row(y)
	}
	return strings.Join(rows, "\n")
}
