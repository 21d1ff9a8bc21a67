// Package theme defines the colors used by the dashboard.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name        string
	Border      lipgloss.Color
	TextDim     lipgloss.Color
	TextMuted   lipgloss.Color
	TextPrimary lipgloss.Color
	Accent      lipgloss.Color
	Paid        lipgloss.Color
	Pending     lipgloss.Color
	Warn        lipgloss.Color
}

// Active is the theme in use. Flexoki Dark is the only one shipped; the
// role indirection keeps the render code ready for more.
var Active = FlexokiDark

// FlexokiDark is a warm, paper-inspired dark theme.
var FlexokiDark = Theme{
	Name:        "flexoki-dark",
	Border:      lipgloss.Color("#403E3C"),
	TextDim:     lipgloss.Color("#575653"),
	TextMuted:   lipgloss.Color("#878580"),
	TextPrimary: lipgloss.Color("#FFFCF0"),
	Accent:      lipgloss.Color("#3AA99F"),
	Paid:        lipgloss.Color("#879A39"),
	Pending:     lipgloss.Color("#D0A215"),
	Warn:        lipgloss.Color("#DA702C"),
}
