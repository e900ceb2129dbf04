package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Body is the snake, head at index 0.
type Body []core.Cell

// Head returns the first segment.
func (b Body) Head() core.Cell {
	return b[0]
}

// Occupies reports whether any segment is on c.
func (b Body) Occupies(c core.Cell) bool {
	for _, seg := range b {
		if seg == c {
			return true
		}
	}
	return false
}

// Blocks reports whether moving the head onto c hits the body.
// The tail is ignored because it vacates on the same tick.
func (b Body) Blocks(c core.Cell) bool {
	checkLen := len(b)
	if checkLen > 1 {
		checkLen--
	}
	for i := range checkLen {
		if b[i] == c {
			return true
		}
	}
	return false
}

// Move prepends head and drops the tail unless grow is set.
func (b Body) Move(head core.Cell, grow bool) Body {
	next := make(Body, 0, len(b)+1)
	next = append(next, head)
	if grow {
		return append(next, b...)
	}
	return append(next, b[:len(b)-1]...)
}

// Set returns the occupied cells as a lookup set.
func (b Body) Set() map[core.Cell]struct{} {
	set := make(map[core.Cell]struct{}, len(b))
	for _, seg := range b {
		set[seg] = struct{}{}
	}
	return set
}
