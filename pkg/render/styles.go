package render

import "github.com/charmbracelet/lipgloss"

// Palette, switching with the terminal background
var (
	HeadingColor = lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#f5f5f5"}
	ActionColor  = lipgloss.AdaptiveColor{Light: "#0066cc", Dark: "#4da6ff"}
	StoreColor   = lipgloss.AdaptiveColor{Light: "#008844", Dark: "#44cc88"}
	MutedColor   = lipgloss.AdaptiveColor{Light: "#808080", Dark: "#6c6c6c"}
)

// styles is the set of styles bound to one lipgloss renderer
type styles struct {
	heading lipgloss.Style
	action  lipgloss.Style
	store   lipgloss.Style
	muted   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		heading: r.NewStyle().Foreground(HeadingColor).Bold(true),
		action:  r.NewStyle().Foreground(ActionColor).Bold(true),
		store:   r.NewStyle().Foreground(StoreColor),
		muted:   r.NewStyle().Foreground(MutedColor).Italic(true),
	}
}
