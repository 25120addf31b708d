package color

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Semantic colors with light and dark variants.
var (
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#3B82F6"}
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}
)

// Palette holds the styles used to render reports. Styles are bound to a
// renderer for one writer, so output that is not a terminal stays plain.
type Palette struct {
	Pass   lipgloss.Style
	Fail   lipgloss.Style
	Cached lipgloss.Style
	Header lipgloss.Style
	Muted  lipgloss.Style
}

// NewPalette returns the report styles for w.
func NewPalette(w io.Writer) Palette {
	r := lipgloss.NewRenderer(w)
	r.SetHasDarkBackground(lipgloss.HasDarkBackground())

	return Palette{
		Pass:   r.NewStyle().Foreground(ColorSuccess).Bold(true),
		Fail:   r.NewStyle().Foreground(ColorError).Bold(true),
		Cached: r.NewStyle().Foreground(ColorInfo),
		Header: r.NewStyle().Foreground(ColorPrimary).Bold(true),
		Muted:  r.NewStyle().Foreground(ColorMuted),
	}
}
