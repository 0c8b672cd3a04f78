package tui

import (
	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/sensei/internal/catalog"
	"github.com/mark3labs/sensei/internal/wizard"
)

type keyMap struct {
	Home        key.Binding
	Leaderboard key.Binding
	Progress    key.Binding
	Logout      key.Binding
	Back        key.Binding
	Quit        key.Binding
}

var keys = keyMap{
	Home:        key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "home")),
	Leaderboard: key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "leaderboard")),
	Progress:    key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "progress")),
	Logout:      key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "log out")),
	Back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Quit:        key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

// headerView renders the top bar shown once a username is known.
func headerView(step wizard.Step, username string, width int) string {
	nav := []struct {
		label string
		step  wizard.Step
		ok    bool
	}{
		{"Home", wizard.StepHome, true},
		{"Leaderboard", wizard.StepLeaderboard, true},
		{"Progress", 0, false},
	}

	buttons := make([]Button, 0, len(nav))
	for _, n := range nav {
		state := ButtonNormal
		switch {
		case !n.ok:
			state = ButtonDisabled
		case n.step == step:
			state = ButtonFocused
		}
		buttons = append(buttons, Button{Label: n.label, State: state})
	}

	left := styleBrand.Render("SportSensei") + "  " + NewButtonBar(buttons).Render()
	right := styleHeader.Render(catalog.Initials(username) + " " + username)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, left, lipgloss.NewStyle().Width(gap).Render(""), right)

	return bar + "\n" + renderHintBar(
		keys.Home.Help().Key, keys.Home.Help().Desc,
		keys.Leaderboard.Help().Key, keys.Leaderboard.Help().Desc,
		keys.Progress.Help().Key, keys.Progress.Help().Desc,
		keys.Logout.Help().Key, keys.Logout.Help().Desc,
	)
}
