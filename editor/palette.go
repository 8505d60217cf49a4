package editor

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette is the static data behind the font, size and color pickers.
type Palette struct {
	Fonts  []string
	Sizes  []string
	Colors []string
}

func DefaultPalette() Palette {
	return Palette{
		Fonts: []string{
			"Arial", "Georgia", "Times New Roman", "Courier New",
			"Verdana", "Tahoma", "Trebuchet MS", "Garamond",
		},
		Sizes: []string{"1", "2", "3", "4", "5", "6", "7"},
		Colors: []string{
			"#000000", "#434343", "#666666", "#999999", "#cccccc", "#ffffff",
			"#980000", "#ff0000", "#ff9900", "#ffff00", "#00ff00", "#00ffff",
			"#4a86e8", "#0000ff", "#9900ff", "#ff00ff",
		},
	}
}

// Validate drops colors that do not parse as hex.
func (p Palette) Validate() Palette {
	colors := make([]string, 0, len(p.Colors))
	for _, c := range p.Colors {
		if col, err := colorful.Hex(c); err == nil {
			colors = append(colors, col.Hex())
		}
	}
	p.Colors = colors
	return p
}

// swatchStyle paints a color sample with a label that stays readable on it.
func swatchStyle(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Foreground(lipgloss.Color(labelColor(hex)))
}

// labelColor picks black or white text for a background by its lightness.
func labelColor(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "#ffffff"
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return "#000000"
	}
	return "#ffffff"
}

var sizeNames = map[string]string{
	"1": "tiny", "2": "small", "3": "normal", "4": "large",
	"5": "larger", "6": "huge", "7": "max",
}
