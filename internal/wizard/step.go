package wizard

import (
	"strings"

	"github.com/mark3labs/sensei/internal/catalog"
)

// Step is the single active screen of the wizard.
type Step int

const (
	StepUsername Step = iota
	StepCategory
	StepSubcategory
	StepGame
	StepUpload
	StepFeedback
	StepLeaderboard
	StepHome

	stepCount
)

// stepRule describes a step: its name and whether a session may enter it.
type stepRule struct {
	name      string
	reachable func(s *Session) bool
}

// steps is indexed by Step; the array length ties it to the enum.
var steps = [stepCount]stepRule{
	StepUsername:    {"username", func(s *Session) bool { return s.Username == "" }},
	StepCategory:    {"category", loggedIn},
	StepSubcategory: {"subcategory", func(s *Session) bool { return loggedIn(s) && s.Category == CategoryDisability }},
	StepGame:        {"game", func(s *Session) bool { return loggedIn(s) && s.sportGroup() != "" }},
	StepUpload:      {"upload", func(s *Session) bool { return loggedIn(s) && s.SelectedSport != "" }},
	StepFeedback: {"feedback", func(s *Session) bool {
		return loggedIn(s) && s.SelectedSport != "" && s.UploadedVideo != nil
	}},
	StepLeaderboard: {"leaderboard", loggedIn},
	StepHome:        {"home", loggedIn},
}

func loggedIn(s *Session) bool { return s.Username != "" }

// Steps returns every step in declaration order.
func Steps() []Step {
	out := make([]Step, 0, stepCount)
	for i := Step(0); i < stepCount; i++ {
		out = append(out, i)
	}
	return out
}

func (s Step) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return steps[s].name
}

// Valid reports whether s is one of the declared steps.
func (s Step) Valid() bool {
	return s >= 0 && s < stepCount
}

// ParseStep maps a step name to its Step.
func ParseStep(name string) (Step, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, rule := range steps {
		if rule.name == name {
			return Step(i), true
		}
	}
	return 0, false
}

// Category is the top-level athlete classification.
type Category string

const (
	CategoryNormal     Category = "normal"
	CategoryDisability Category = "disability"
)

// ParseCategory accepts the category names shown to the user.
func ParseCategory(s string) (Category, bool) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryNormal:
		return CategoryNormal, true
	case CategoryDisability:
		return CategoryDisability, true
	}
	return "", false
}

// DisabilityType narrows the disability category.
type DisabilityType string

const (
	DisabilityLeg   DisabilityType = "leg"
	DisabilityHand  DisabilityType = "hand"
	DisabilityBlind DisabilityType = "blind"
)

// ParseDisabilityType accepts the sub-category names shown to the user.
func ParseDisabilityType(s string) (DisabilityType, bool) {
	switch DisabilityType(strings.ToLower(strings.TrimSpace(s))) {
	case DisabilityLeg:
		return DisabilityLeg, true
	case DisabilityHand:
		return DisabilityHand, true
	case DisabilityBlind:
		return DisabilityBlind, true
	}
	return "", false
}

// SportGroup returns the catalog group for a classification, or "" when the
// classification is incomplete.
func SportGroup(cat Category, sub DisabilityType) string {
	switch cat {
	case CategoryNormal:
		return catalog.GroupNormal
	case CategoryDisability:
		switch sub {
		case DisabilityLeg:
			return catalog.GroupLeg
		case DisabilityHand:
			return catalog.GroupHand
		case DisabilityBlind:
			return catalog.GroupBlind
		}
	}
	return ""
}
