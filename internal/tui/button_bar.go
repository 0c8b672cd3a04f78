package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// ButtonState represents the visual state of a button.
type ButtonState int

const (
	ButtonNormal   ButtonState = iota // Normal state (enabled)
	ButtonDisabled                    // Disabled state (grayed out)
	ButtonFocused                     // Focused/highlighted state
)

// Button represents a single button in the button bar.
type Button struct {
	Label string
	State ButtonState
}

// ButtonBar renders a row of buttons with consistent styling.
type ButtonBar struct {
	buttons []Button
}

// NewButtonBar creates a new button bar with the given buttons.
func NewButtonBar(buttons []Button) *ButtonBar {
	return &ButtonBar{buttons: buttons}
}

var (
	buttonNormal = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorSurface0).
			Padding(0, 2).
			MarginRight(1)

	buttonDisabled = lipgloss.NewStyle().
			Foreground(colorOverlay0).
			Background(colorMantle).
			Padding(0, 2).
			MarginRight(1)

	buttonFocused = lipgloss.NewStyle().
			Foreground(colorBase).
			Background(colorSecondary).
			Bold(true).
			Padding(0, 2).
			MarginRight(1)
)

// Render renders the buttons left to right.
func (b *ButtonBar) Render() string {
	if len(b.buttons) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(b.buttons))
	for _, btn := range b.buttons {
		switch btn.State {
		case ButtonDisabled:
			rendered = append(rendered, buttonDisabled.Render(btn.Label))
		case ButtonFocused:
			rendered = append(rendered, buttonFocused.Render(btn.Label))
		default:
			rendered = append(rendered, buttonNormal.Render(btn.Label))
		}
	}
	return strings.Join(rendered, "")
}
