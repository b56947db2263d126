package member

// Member is one player's normalized stat line within a club or career
// scope. Numeric stats are pointers: nil means the upstream payload had
// no usable value, which callers use to fall back to alternate sources.
// A parsed zero is also reported as nil for compatibility with existing
// consumers of the upstream feed.
type Member struct {
	PersonaID   string
	Name        string
	Appearances *int
	Goals       *int
	Assists     *int
	CleanSheets *int
	Saves       *int
	Wins        *int
	Losses      *int
	Draws       *int
	RatingAve   *float64
	Position    string
	ProPosition string

	// Extra carries unrecognized upstream keys so callers can check for
	// fields outside the canonical set.
	Extra map[string]any
}

// StatOrZero unpacks an optional stat for display.
func StatOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
