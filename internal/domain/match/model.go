package match

import "time"

// Match is a single fixture between two clubs. Timestamp is UNIX
// seconds as delivered by the provider; Kickoff is the converted value
// and the only one handlers should format.
type Match struct {
	ID        string
	Timestamp int64
	Kickoff   time.Time
	Clubs     map[string]ClubResult
	Players   map[string]map[string]PlayerStats
}

// ClubResult is one club's side of a fixture, keeping the provider's
// redundant result indicators for tie-break classification.
type ClubResult struct {
	ClubID       string
	Name         string
	Goals        int
	GoalsAgainst int
	ResultCode   string
	ForcedDraw   bool
	WinsFlag     string
	LossesFlag   string
	TiesFlag     string
	Details      map[string]any
}

// PlayerStats is a per-player match stat line. All values optional,
// same nil convention as member.Member.
type PlayerStats struct {
	Goals    *int
	Assists  *int
	Rating   *float64
	RedCards *int
	Passes   *int
	Tackles  *int
	Extra    map[string]any
}

// Opponent returns the other club's result row, if present.
func (m Match) Opponent(clubID string) (ClubResult, bool) {
	for id, row := range m.Clubs {
		if id != clubID {
			return row, true
		}
	}
	return ClubResult{}, false
}
