package catalog

import "strings"

// Trend is the movement of an athlete since the previous ranking.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendSame Trend = "same"
)

// Entry is one leaderboard row. Rank is 0 for the unranked current user.
type Entry struct {
	Rank     int
	Username string
	Score    int
	Group    string
	SportID  string
	Trend    Trend
	Current  bool
}

const leaderboardSize = 10

var rankings = []Entry{
	{Rank: 1, Username: "Alex Champion", Score: 2450, Group: GroupNormal, SportID: "high-jump", Trend: TrendUp},
	{Rank: 2, Username: "Sarah Strong", Score: 2380, Group: GroupNormal, SportID: "high-jump", Trend: TrendSame},
	{Rank: 3, Username: "Marcus Power", Score: 2350, Group: GroupLeg, SportID: "seated-javelin", Trend: TrendUp},
	{Rank: 4, Username: "Elena Swift", Score: 2290, Group: GroupBlind, SportID: "guided-running", Trend: TrendDown},
	{Rank: 5, Username: "David Ace", Score: 2240, Group: GroupHand, SportID: "one-hand-shot-put", Trend: TrendUp},
}

// Leaderboard returns the top entries with currentUser marked. A current user
// who is not ranked is appended as an unranked row so they always see themselves.
func Leaderboard(currentUser string) []Entry {
	n := len(rankings)
	if n > leaderboardSize {
		n = leaderboardSize
	}
	out := make([]Entry, 0, n+1)

	found := false
	for _, e := range rankings[:n] {
		if currentUser != "" && e.Username == currentUser {
			e.Current = true
			found = true
		}
		out = append(out, e)
	}

	if currentUser != "" && !found {
		out = append(out, Entry{Username: currentUser, Trend: TrendSame, Current: true})
	}
	return out
}

// Initials returns the avatar fallback for a name: "alex champion" -> "AC".
func Initials(name string) string {
	var out []rune
	start := true
	for _, r := range name {
		if r == ' ' {
			start = true
			continue
		}
		if start {
			out = append(out, r)
			start = false
		}
	}
	return strings.ToUpper(string(out))
}
