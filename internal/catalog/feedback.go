package catalog

import (
	"fmt"
	"strings"
)

// Score is one graded aspect of a performance.
type Score struct {
	Category string
	Score    float64
	MaxScore float64
	Feedback string
}

// Feedback is the coaching report shown after an upload.
type Feedback struct {
	SportID         string
	OverallScore    float64
	MaxOverallScore float64
	Scores          []Score
	Strengths       []string
	Improvements    []string
	NextSteps       []string
	VoiceFeedback   string
}

// FeedbackFor returns the report for a sport. Every sport currently gets the
// same canned analysis.
func FeedbackFor(sportID string) Feedback {
	return Feedback{
		SportID:         sportID,
		OverallScore:    8.2,
		MaxOverallScore: 10,
		Scores: []Score{
			{Category: "Form & Technique", Score: 8.5, MaxScore: 10, Feedback: "Excellent arm extension and follow-through. Your release angle is very close to optimal."},
			{Category: "Power & Speed", Score: 7.8, MaxScore: 10, Feedback: "Good power generation. Focus on explosive hip drive for more distance."},
			{Category: "Positioning", Score: 8.3, MaxScore: 10, Feedback: "Great stance and approach. Consistent footwork throughout the throw."},
		},
		Strengths: []string{
			"Consistent release angle close to 45 degrees",
			"Strong core engagement throughout movement",
			"Excellent balance and stability",
		},
		Improvements: []string{
			"Increase hip rotation speed for more power",
			"Work on grip strength for better control",
			"Extend follow-through for maximum distance",
		},
		NextSteps: []string{
			"Practice explosive hip drive exercises",
			"Record slow-motion videos to analyze technique",
			"Focus on grip strengthening workouts",
		},
		VoiceFeedback: "Overall excellent performance! Your technique shows great fundamentals. " +
			"Focus on hip rotation and grip strength to reach the next level.",
	}
}

// Grade maps the overall score to the badge shown next to it.
func (f Feedback) Grade() string {
	ratio := f.OverallScore / f.MaxOverallScore
	switch {
	case ratio >= 0.9:
		return "Excellent"
	case ratio >= 0.8:
		return "Great"
	case ratio >= 0.6:
		return "Good"
	default:
		return "Needs Work"
	}
}

// Markdown renders the report for a terminal markdown renderer.
func (f Feedback) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s analysis\n\n", Label(f.SportID))
	fmt.Fprintf(&b, "**Overall score: %.1f / %.0f** (%s)\n\n", f.OverallScore, f.MaxOverallScore, f.Grade())

	b.WriteString("## Scores\n\n")
	for _, s := range f.Scores {
		fmt.Fprintf(&b, "- **%s** %.1f / %.0f: %s\n", s.Category, s.Score, s.MaxScore, s.Feedback)
	}

	writeList(&b, "Strengths", f.Strengths)
	writeList(&b, "Areas to improve", f.Improvements)
	writeList(&b, "Next steps", f.NextSteps)

	if f.VoiceFeedback != "" {
		fmt.Fprintf(&b, "\n> %s\n", f.VoiceFeedback)
	}
	return b.String()
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## %s\n\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}
