package tui

import (
	"strings"

	"charm.land/glamour/v2"
	"github.com/mark3labs/sensei/internal/catalog"
)

// renderMarkdown renders markdown with glamour, falling back to the raw text.
func renderMarkdown(content string, width int) string {
	if width > 100 {
		width = 100
	}
	if width < 20 {
		width = 20
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimSuffix(rendered, "\n")
}

// feedbackView renders the coaching report for a sport.
func feedbackView(sportID, videoName string, width int) string {
	report := catalog.FeedbackFor(sportID)

	var b strings.Builder
	b.WriteString(styleModalTitle.Render("Performance Feedback"))
	b.WriteString("\n")
	if videoName != "" {
		b.WriteString(styleSubtitle.Render("Video: " + videoName))
		b.WriteString("\n")
	}
	b.WriteString(renderMarkdown(report.Markdown(), width))
	b.WriteString("\n\n")
	b.WriteString(NewButtonBar([]Button{
		{Label: "r  Upload Another", State: ButtonNormal},
		{Label: "n  View Leaderboard", State: ButtonFocused},
	}).Render())
	b.WriteString("\n\n")
	b.WriteString(renderHintBar("r", "retry", "n", "next", "esc", "back"))
	return b.String()
}
