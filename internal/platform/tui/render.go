package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// ScreenRenderer turns a Screen buffer into styled terminal output.
// Each SSH session gets its own, bound to that session's color profile.
type ScreenRenderer struct {
	r *lipgloss.Renderer

	mu     sync.Mutex
	styles map[core.Color]lipgloss.Style
}

// NewScreenRenderer creates a renderer. A nil lipgloss renderer means the
// process's default output.
func NewScreenRenderer(r *lipgloss.Renderer) *ScreenRenderer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &ScreenRenderer{
		r:      r,
		styles: make(map[core.Color]lipgloss.Style),
	}
}

func (sr *ScreenRenderer) style(c core.Color) lipgloss.Style {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	if s, ok := sr.styles[c]; ok {
		return s
	}
	s := sr.r.NewStyle()
	if c != core.ColorDefault {
		s = s.Foreground(lipgloss.Color(string(c)))
	}
	sr.styles[c] = s
	return s
}

// Render converts s to a string. Adjacent cells sharing a color are
// emitted as one styled run.
func (sr *ScreenRenderer) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.Glyph(x, y).Color
			run.Reset()
			for x < s.Width() {
				g := s.Glyph(x, y)
				if g.Color != color {
					break
				}
				run.WriteRune(g.Rune)
				x++
			}
			if color == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(sr.style(color).Render(run.String()))
		}
	}
	return sb.String()
}
