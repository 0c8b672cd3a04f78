// Package catalog holds the fixed sport lists, feedback report and
// leaderboard shown by the wizard. Nothing here is computed from a video.
package catalog

import (
	"strings"

	"github.com/gosimple/slug"
)

// Difficulty grades a sport for newcomers.
type Difficulty string

const (
	Beginner     Difficulty = "Beginner"
	Intermediate Difficulty = "Intermediate"
	Advanced     Difficulty = "Advanced"
)

// Sport is one selectable event.
type Sport struct {
	ID          string
	Name        string
	Description string
	Difficulty  Difficulty
}

// Classification keys mirror the wizard's category and disability values.
const (
	GroupNormal = "normal"
	GroupLeg    = "leg"
	GroupHand   = "hand"
	GroupBlind  = "blind"
)

var sports = map[string][]Sport{
	GroupNormal: {
		{ID: "high-jump", Name: "High Jump", Description: "Leap over a horizontal bar at great heights", Difficulty: Intermediate},
		{ID: "shot-put", Name: "Shot Put", Description: "Throw a heavy metal ball as far as possible", Difficulty: Beginner},
		{ID: "javelin-throw", Name: "Javelin Throw", Description: "Launch a spear-like implement for maximum distance", Difficulty: Advanced},
	},
	GroupLeg: {
		{ID: "seated-javelin", Name: "Seated Javelin Throw", Description: "Javelin throwing from a seated position", Difficulty: Intermediate},
		{ID: "wheelchair-racing", Name: "Wheelchair Racing", Description: "High-speed racing in specialized wheelchairs", Difficulty: Advanced},
		{ID: "medicine-ball", Name: "Medicine Ball Throw", Description: "Upper body strength focused throwing event", Difficulty: Beginner},
	},
	GroupHand: {
		{ID: "one-hand-shot-put", Name: "One-hand Shot Put", Description: "Shot put adapted for single-hand technique", Difficulty: Intermediate},
		{ID: "one-hand-javelin", Name: "One-hand Javelin", Description: "Javelin throwing with adapted grip technique", Difficulty: Advanced},
		{ID: "wheelchair-racing-hand", Name: "Wheelchair Racing", Description: "Racing adapted for hand limitations", Difficulty: Intermediate},
	},
	GroupBlind: {
		{ID: "guided-running", Name: "Guided Running", Description: "Running with audio guidance and sighted guide", Difficulty: Intermediate},
		{ID: "goalball", Name: "Goalball", Description: "Team sport with sound-enabled ball", Difficulty: Beginner},
		{ID: "audio-target-throw", Name: "Audio Target Throw", Description: "Throwing sport using sound cues for targeting", Difficulty: Advanced},
	},
}

// SportsFor returns the sports offered to a group, or nil for an unknown group.
// The returned slice is a copy.
func SportsFor(group string) []Sport {
	list := sports[group]
	if list == nil {
		return nil
	}
	return append([]Sport(nil), list...)
}

// Lookup finds a sport within a group.
func Lookup(group, id string) (Sport, bool) {
	for _, s := range sports[group] {
		if s.ID == id {
			return s, true
		}
	}
	return Sport{}, false
}

// Groups lists every classification with sports, in display order.
func Groups() []string {
	return []string{GroupNormal, GroupLeg, GroupHand, GroupBlind}
}

// Label returns the display name for a sport id, falling back to a
// title-cased form of the id for ids outside the catalog.
func Label(id string) string {
	for _, group := range sports {
		for _, s := range group {
			if s.ID == id {
				return s.Name
			}
		}
	}
	words := strings.Split(slug.Make(id), "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
