package core

import "fmt"

// Color is a terminal color spec understood by the platform renderer:
// an ANSI 256 index ("2") or a hex triplet ("#ff0000"). Empty means default.
type Color string

// Predefined colors for game elements.
const (
	ColorDefault     Color = ""
	ColorGreen       Color = "2"
	ColorBrightGreen Color = "10"
	ColorWhite       Color = "15"
	ColorYellow      Color = "11"
	ColorRed         Color = "9"
	ColorGray        Color = "245"
)

// RGBColor builds a hex Color from 8-bit components.
func RGBColor(r, g, b int) Color {
	return Color(fmt.Sprintf("#%02x%02x%02x", r&0xff, g&0xff, b&0xff))
}
