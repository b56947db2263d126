package club

// Info is a club's normalized identity. Raw retains the upstream record
// as-is since the provider adds and removes keys without notice.
type Info struct {
	ID           string
	Name         string
	RegionID     int
	TeamID       int
	CrestAssetID string
	BadgeURL     string
	Raw          map[string]any
}

// Stats is a club's aggregate record resolved from the provider's
// aliased key set.
type Stats struct {
	ClubID       string
	Games        int
	Wins         int
	Draws        int
	Losses       int
	GoalsFor     int
	GoalsAgainst int
	CleanSheets  int
	SkillRating  int
	TitlesWon    int
	Raw          map[string]any
}
