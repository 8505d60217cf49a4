package editor

import "github.com/charmbracelet/lipgloss"

// Style controls the editor's rendering.
type Style struct {
	Text        lipgloss.Style
	Placeholder lipgloss.Style
	Selection   lipgloss.Style
	Cursor      lipgloss.Style

	Heading lipgloss.Style
	Code    lipgloss.Style
	Link    lipgloss.Style
	Quote   lipgloss.Style
	Marker  lipgloss.Style

	Image         lipgloss.Style
	ImageSelected lipgloss.Style

	Toolbar       lipgloss.Style
	ToolbarItem   lipgloss.Style
	ToolbarActive lipgloss.Style

	Overlay lipgloss.Style
	Label   lipgloss.Style
	Focused lipgloss.Style
	Notice  lipgloss.Style
	Muted   lipgloss.Style
}

func DefaultStyle() Style {
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return Style{
		Text:        lipgloss.NewStyle(),
		Placeholder: muted.Italic(true),
		Selection:   lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:      lipgloss.NewStyle().Reverse(true),

		Heading: lipgloss.NewStyle().Bold(true),
		Code:    lipgloss.NewStyle().Foreground(lipgloss.Color("150")),
		Link:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Underline(true),
		Quote:   muted,
		Marker:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		Image:         lipgloss.NewStyle().Foreground(lipgloss.Color("178")),
		ImageSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("178")),

		Toolbar:       lipgloss.NewStyle().Background(lipgloss.Color("235")),
		ToolbarItem:   lipgloss.NewStyle().Background(lipgloss.Color("235")).Padding(0, 1),
		ToolbarActive: lipgloss.NewStyle().Background(lipgloss.Color("61")).Padding(0, 1),

		Overlay: lipgloss.NewStyle().Background(lipgloss.Color("236")),
		Label:   muted,
		Focused: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		Notice:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Muted:   muted,
	}
}
