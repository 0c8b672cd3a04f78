package tui

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/mark3labs/sensei/internal/catalog"
	"github.com/mark3labs/sensei/internal/wizard"
)

var trendMarks = map[catalog.Trend]string{
	catalog.TrendUp:   "▲",
	catalog.TrendDown: "▼",
	catalog.TrendSame: "•",
}

// leaderboardView renders the ranking table for the session.
func leaderboardView(s wizard.Session) string {
	entries := catalog.Leaderboard(s.Username)

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rank := "-"
		score := "-"
		if e.Rank > 0 {
			rank = "#" + strconv.Itoa(e.Rank)
			score = strconv.Itoa(e.Score)
		}
		sport := ""
		if e.SportID != "" {
			sport = catalog.Label(e.SportID)
		}
		rows = append(rows, []string{
			rank,
			trendMarks[e.Trend],
			catalog.Initials(e.Username) + "  " + e.Username,
			sport,
			score,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorSurface2)).
		Headers("Rank", "", "Athlete", "Sport", "Score").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return base.Foreground(colorPrimary).Bold(true)
			}
			if row >= 0 && row < len(entries) && entries[row].Current {
				return styleCurrentUser.Padding(0, 1)
			}
			return base.Foreground(colorText)
		})

	var b strings.Builder
	b.WriteString(styleModalTitle.Render("Leaderboard"))
	b.WriteString("\n")
	b.WriteString(styleSubtitle.Render(leaderboardScope(s)))
	b.WriteString("\n\n")
	b.WriteString(t.String())
	b.WriteString("\n")
	b.WriteString(styleSubtitle.Render(fmt.Sprintf("%d athletes", len(entries))))
	b.WriteString("\n\n")
	b.WriteString(renderHintBar("esc", "home"))
	return b.String()
}

func leaderboardScope(s wizard.Session) string {
	scope := "Top performers in standard category"
	if s.Category == wizard.CategoryDisability && s.DisabilitySubtype != "" {
		scope = fmt.Sprintf("Top performers in %s category", s.DisabilitySubtype)
	}
	if s.SelectedSport != "" {
		scope += " for " + strings.ToLower(catalog.Label(s.SelectedSport))
	}
	return scope
}
