package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Color palette (Catppuccin Mocha)
var (
	colorPrimary       = lipgloss.Color("#cba6f7") // Mauve
	colorSecondary     = lipgloss.Color("#b4befe") // Lavender
	colorText          = lipgloss.Color("#cdd6f4") // Text
	colorBase          = lipgloss.Color("#1e1e2e") // Base
	colorSubtext0      = lipgloss.Color("#a6adc8") // Subtext0
	colorSubtext1      = lipgloss.Color("#bac2de") // Subtext1
	colorSurface0      = lipgloss.Color("#313244") // Surface0
	colorSurface2      = lipgloss.Color("#585b70") // Surface2
	colorOverlay0      = lipgloss.Color("#6c7086") // Overlay0
	colorMantle        = lipgloss.Color("#181825") // Mantle
	colorGreen         = lipgloss.Color("#a6e3a1")
	colorYellow        = lipgloss.Color("#f9e2af")
	colorRed           = lipgloss.Color("#f38ba8")
	colorBorderFocused = lipgloss.Color("#b4befe") // Lavender for borders
)

var (
	styleModalContainer = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorderFocused).
				Background(colorBase).
				Padding(1, 2)

	styleModalTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleSubtitle = lipgloss.NewStyle().
			Foreground(colorSubtext0)

	styleHeader = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorSurface0).
			Padding(0, 1)

	styleBrand = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleItem = lipgloss.NewStyle().
			Foreground(colorText)

	styleItemSelected = lipgloss.NewStyle().
				Foreground(colorBase).
				Background(colorSecondary).
				Bold(true)

	styleItemDesc = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			PaddingLeft(4)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleCurrentUser = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)
)

var (
	styleHintKey = lipgloss.NewStyle().
			Foreground(colorSubtext1).
			Bold(true)

	styleHintDesc = lipgloss.NewStyle().
			Foreground(colorSubtext0)

	styleHintSeparator = lipgloss.NewStyle().
				Foreground(colorSurface2)
)

// difficultyStyle colors a difficulty badge like the web app's badge variants.
func difficultyStyle(d string) lipgloss.Style {
	base := lipgloss.NewStyle().Padding(0, 1).Foreground(colorBase)
	switch d {
	case "Beginner":
		return base.Background(colorGreen)
	case "Advanced":
		return base.Background(colorRed)
	default:
		return base.Background(colorYellow)
	}
}

// renderHintBar renders a hint bar with the given key-description pairs.
// Example: renderHintBar("↑↓", "navigate", "enter", "select")
// Returns: "↑↓ navigate • enter select"
func renderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	var b strings.Builder
	for i := 0; i < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString(" " + styleHintSeparator.Render("•") + " ")
		}
		b.WriteString(styleHintKey.Render(pairs[i]) + " " + styleHintDesc.Render(pairs[i+1]))
	}
	return b.String()
}

const (
	logoLine1 = "█▀ █▀▀ █▄ █ █▀ █▀▀ █"
	logoLine2 = "▄█ ██▄ █ ▀█ ▄█ ██▄ █"
)

// Logo renders the two-line brand mark for help output.
func Logo() string {
	return strings.Join([]string{
		lipgloss.NewStyle().Foreground(colorPrimary).Render(logoLine1),
		lipgloss.NewStyle().Foreground(colorSecondary).Render(logoLine2),
	}, "\n")
}
