package eafc

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/neatway/proclubs-stats-sub000/internal/domain/club"
	"github.com/neatway/proclubs-stats-sub000/internal/domain/match"
	"github.com/neatway/proclubs-stats-sub000/internal/domain/member"
)

// The upstream API has no schema guarantee: the same query can return a
// bare array, an id-keyed object, or a wrapper object, with numeric
// fields as strings or numbers and keys appearing and disappearing
// between title updates. Everything in this file is total: malformed
// input degrades to an empty or nil result, never an error.

var (
	personaIDAliases = []string{"personaId", "id", "playerId"}
	nameAliases      = []string{"personaName", "name", "memberName"}

	statAliases = map[string][]string{
		"appearances": {"appearances", "gamesPlayed", "matches"},
		"goals":       {"goals", "totalGoals"},
		"assists":     {"assists", "totalAssists"},
		"cleanSheets": {"cleanSheets", "cleanSheetsDef", "cleanSheetsGK"},
		"saves":       {"saves", "totalSaves"},
		"wins":        {"wins", "totalWins"},
		"losses":      {"losses", "totalLosses"},
		"draws":       {"draws", "ties"},
	}
	ratingAliases = []string{"ratingAve", "rating", "avgRating"}
	posAliases    = []string{"pos", "position", "favoritePosition"}
	proPosAliases = []string{"proPos", "proPosition"}
)

// consumedKeys is every key the canonical mapping reads; anything else
// on a raw record is passed through on Member.Extra.
var consumedKeys = buildConsumedKeys()

func buildConsumedKeys() map[string]struct{} {
	keys := map[string]struct{}{"persona": {}}
	for _, alias := range personaIDAliases {
		keys[alias] = struct{}{}
	}
	for _, alias := range nameAliases {
		keys[alias] = struct{}{}
	}
	for _, aliases := range statAliases {
		for _, alias := range aliases {
			keys[alias] = struct{}{}
		}
	}
	for _, alias := range ratingAliases {
		keys[alias] = struct{}{}
	}
	for _, alias := range posAliases {
		keys[alias] = struct{}{}
	}
	for _, alias := range proPosAliases {
		keys[alias] = struct{}{}
	}
	return keys
}

// NormalizeMembers maps a raw members payload to the canonical member
// shape. It accepts every wrapper shape the provider has historically
// used: a bare array, an object keyed by id, `{"members": [...]}` and
// `{"players": [...]}`.
func NormalizeMembers(raw []byte) []member.Member {
	var payload any
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return nil
	}
	return membersFromValue(payload)
}

func membersFromValue(payload any) []member.Member {
	switch typed := payload.(type) {
	case []any:
		items := make([]member.Member, 0, len(typed))
		for _, item := range typed {
			record, ok := item.(map[string]any)
			if !ok {
				continue
			}
			items = append(items, normalizeMember(record))
		}
		return items
	case map[string]any:
		for _, wrapper := range []string{"members", "players"} {
			if inner, ok := typed[wrapper]; ok {
				return membersFromValue(inner)
			}
		}
		// Object keyed by persona id. Sort keys so the output order is
		// stable across calls.
		keys := make([]string, 0, len(typed))
		for key := range typed {
			if _, ok := typed[key].(map[string]any); ok {
				keys = append(keys, key)
			}
		}
		sort.Strings(keys)
		items := make([]member.Member, 0, len(keys))
		for _, key := range keys {
			items = append(items, normalizeMember(typed[key].(map[string]any)))
		}
		return items
	default:
		return nil
	}
}

func normalizeMember(record map[string]any) member.Member {
	item := member.Member{
		PersonaID:   resolvePersonaID(record),
		Name:        firstNonEmpty(stringsFromAliases(record, nameAliases)...),
		Appearances: statFromAliases(record, statAliases["appearances"]),
		Goals:       statFromAliases(record, statAliases["goals"]),
		Assists:     statFromAliases(record, statAliases["assists"]),
		CleanSheets: statFromAliases(record, statAliases["cleanSheets"]),
		Saves:       statFromAliases(record, statAliases["saves"]),
		Wins:        statFromAliases(record, statAliases["wins"]),
		Losses:      statFromAliases(record, statAliases["losses"]),
		Draws:       statFromAliases(record, statAliases["draws"]),
		RatingAve:   ratingFromAliases(record, ratingAliases),
		Position:    firstNonEmpty(stringsFromAliases(record, posAliases)...),
		ProPosition: firstNonEmpty(stringsFromAliases(record, proPosAliases)...),
	}
	if item.Name == "" {
		item.Name = "Unknown"
	}
	for key, value := range record {
		if _, ok := consumedKeys[key]; ok {
			continue
		}
		if item.Extra == nil {
			item.Extra = make(map[string]any)
		}
		item.Extra[key] = value
	}
	return item
}

func resolvePersonaID(record map[string]any) string {
	for _, alias := range personaIDAliases {
		if id := coerceString(record[alias]); id != "" {
			return id
		}
	}
	if persona, ok := record["persona"].(map[string]any); ok {
		return coerceString(persona["id"])
	}
	return ""
}

// ExtractClubInfo resolves the single record for clubID out of a raw
// club payload. Resolution order: exact key match on the club id, then
// the first array element, then a `club` sub-object, then the whole
// payload. A nil return means "stats unavailable", not an error.
func ExtractClubInfo(raw []byte, clubID string) map[string]any {
	var payload any
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return nil
	}
	switch typed := payload.(type) {
	case map[string]any:
		if keyed, ok := typed[clubID].(map[string]any); ok {
			return keyed
		}
		if sub, ok := typed["club"].(map[string]any); ok {
			return sub
		}
		return typed
	case []any:
		if len(typed) == 0 {
			return nil
		}
		first, ok := typed[0].(map[string]any)
		if !ok {
			return nil
		}
		return first
	default:
		return nil
	}
}

// NormalizeClubInfo maps an extracted club record to the canonical
// identity shape, keeping the raw record for fields outside it.
func NormalizeClubInfo(record map[string]any, clubID string) *club.Info {
	if record == nil {
		return nil
	}
	info := &club.Info{
		ID:           firstNonEmpty(coerceString(record["clubId"]), clubID),
		Name:         firstNonEmpty(getString(record, "name"), getString(record, "clubName")),
		RegionID:     intFromAliases(record, "regionId"),
		TeamID:       intFromAliases(record, "teamId"),
		CrestAssetID: crestAssetID(record),
		Raw:          record,
	}
	info.BadgeURL = ClubBadgeURL(info.CrestAssetID, coerceString(record["teamId"]))
	return info
}

func crestAssetID(record map[string]any) string {
	if kit, ok := record["customKit"].(map[string]any); ok {
		if id := coerceString(kit["crestAssetId"]); id != "" {
			return id
		}
	}
	return coerceString(record["crestAssetId"])
}

// ClubBadgeURL builds the crest image URL, preferring the custom kit
// crest over the base team badge.
func ClubBadgeURL(crestAssetID, teamID string) string {
	asset := firstNonEmpty(crestAssetID, teamID)
	if asset == "" {
		return ""
	}
	return fmt.Sprintf("https://media.contentapi.ea.com/content/dam/eacom/fc/pro-clubs/custom-crest-%s.png", asset)
}

// NormalizeClubStats maps an extracted club record to the aggregate
// record shape, resolving the provider's key aliases (draws is `ties`
// or `draws`, goals conceded is `goalsAgainst` or `ga`).
func NormalizeClubStats(record map[string]any, clubID string) *club.Stats {
	if record == nil {
		return nil
	}
	return &club.Stats{
		ClubID:       firstNonEmpty(coerceString(record["clubId"]), clubID),
		Games:        intFromAliases(record, "gamesPlayed", "totalGames", "games"),
		Wins:         intFromAliases(record, "wins"),
		Draws:        intFromAliases(record, "ties", "draws"),
		Losses:       intFromAliases(record, "losses"),
		GoalsFor:     intFromAliases(record, "goals", "goalsFor", "gf"),
		GoalsAgainst: intFromAliases(record, "goalsAgainst", "ga"),
		CleanSheets:  intFromAliases(record, "cleanSheets"),
		SkillRating:  intFromAliases(record, "skillRating"),
		TitlesWon:    intFromAliases(record, "titlesWon", "leagueWins"),
		Raw:          record,
	}
}

// NormalizeMatches maps a raw matches payload to canonical fixtures.
// Timestamps arrive as UNIX seconds and are converted here, once.
func NormalizeMatches(raw []byte) []match.Match {
	var payload any
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return nil
	}
	items, ok := payload.([]any)
	if !ok {
		return nil
	}
	matches := make([]match.Match, 0, len(items))
	for _, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			continue
		}
		matches = append(matches, normalizeMatch(record))
	}
	return matches
}

func normalizeMatch(record map[string]any) match.Match {
	seconds := coerceInt64(firstPresent(record, "timestamp", "matchDate"))
	m := match.Match{
		ID:        coerceString(firstPresent(record, "matchId", "id")),
		Timestamp: seconds,
		Clubs:     map[string]match.ClubResult{},
		Players:   map[string]map[string]match.PlayerStats{},
	}
	if seconds > 0 {
		m.Kickoff = time.Unix(seconds, 0).UTC()
	}
	if clubs, ok := record["clubs"].(map[string]any); ok {
		for clubID, rawSide := range clubs {
			side, ok := rawSide.(map[string]any)
			if !ok {
				continue
			}
			m.Clubs[clubID] = normalizeClubResult(clubID, side)
		}
	}
	if players, ok := record["players"].(map[string]any); ok {
		for clubID, rawRoster := range players {
			roster, ok := rawRoster.(map[string]any)
			if !ok {
				continue
			}
			lines := make(map[string]match.PlayerStats, len(roster))
			for personaID, rawLine := range roster {
				line, ok := rawLine.(map[string]any)
				if !ok {
					continue
				}
				lines[personaID] = normalizePlayerLine(line)
			}
			m.Players[clubID] = lines
		}
	}
	return m
}

func normalizeClubResult(clubID string, side map[string]any) match.ClubResult {
	details, _ := side["details"].(map[string]any)
	name := getString(side, "name")
	if name == "" && details != nil {
		name = getString(details, "name")
	}
	return match.ClubResult{
		ClubID:       clubID,
		Name:         name,
		Goals:        int(coerceInt64(side["goals"])),
		GoalsAgainst: int(coerceInt64(side["goalsAgainst"])),
		ResultCode:   coerceString(side["result"]),
		ForcedDraw:   coerceString(side["matchType"]) == "5",
		WinsFlag:     coerceString(side["wins"]),
		LossesFlag:   coerceString(side["losses"]),
		TiesFlag:     coerceString(side["ties"]),
		Details:      details,
	}
}

func normalizePlayerLine(line map[string]any) match.PlayerStats {
	stats := match.PlayerStats{
		Goals:    statFromAliases(line, []string{"goals"}),
		Assists:  statFromAliases(line, []string{"assists"}),
		Rating:   ratingFromAliases(line, []string{"rating", "ratingAve"}),
		RedCards: statFromAliases(line, []string{"redcards", "redCards"}),
		Passes:   statFromAliases(line, []string{"passesmade", "passesMade"}),
		Tackles:  statFromAliases(line, []string{"tacklesmade", "tacklesMade"}),
	}
	consumed := map[string]struct{}{
		"goals": {}, "assists": {}, "rating": {}, "ratingAve": {},
		"redcards": {}, "redCards": {}, "passesmade": {}, "passesMade": {},
		"tacklesmade": {}, "tacklesMade": {},
	}
	for key, value := range line {
		if _, ok := consumed[key]; ok {
			continue
		}
		if stats.Extra == nil {
			stats.Extra = make(map[string]any)
		}
		stats.Extra[key] = value
	}
	return stats
}

// statFromAliases resolves a numeric stat through its alias chain. A
// parse failure or a literal zero both report nil, matching how the
// upstream feed's existing consumers read these fields.
func statFromAliases(record map[string]any, aliases []string) *int {
	for _, alias := range aliases {
		raw, ok := record[alias]
		if !ok || raw == nil {
			continue
		}
		value, ok := coerceInt(raw)
		if !ok || value == 0 {
			continue
		}
		return &value
	}
	return nil
}

func ratingFromAliases(record map[string]any, aliases []string) *float64 {
	for _, alias := range aliases {
		raw, ok := record[alias]
		if !ok || raw == nil {
			continue
		}
		value, ok := coerceFloat(raw)
		if !ok || value == 0 {
			continue
		}
		return &value
	}
	return nil
}

func intFromAliases(record map[string]any, aliases ...string) int {
	for _, alias := range aliases {
		raw, ok := record[alias]
		if !ok || raw == nil {
			continue
		}
		if value, ok := coerceInt(raw); ok {
			return value
		}
	}
	return 0
}

func stringsFromAliases(record map[string]any, aliases []string) []string {
	values := make([]string, 0, len(aliases))
	for _, alias := range aliases {
		values = append(values, getString(record, alias))
	}
	return values
}

func firstPresent(record map[string]any, keys ...string) any {
	for _, key := range keys {
		if raw, ok := record[key]; ok && raw != nil {
			return raw
		}
	}
	return nil
}

func getString(src map[string]any, key string) string {
	if src == nil {
		return ""
	}
	raw, ok := src[key]
	if !ok || raw == nil {
		return ""
	}
	value, ok := raw.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

func coerceString(raw any) string {
	switch typed := raw.(type) {
	case string:
		return strings.TrimSpace(typed)
	case float64:
		if typed == float64(int64(typed)) {
			return strconv.FormatInt(int64(typed), 10)
		}
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(typed, 10)
	case int:
		return strconv.Itoa(typed)
	default:
		return ""
	}
}

func coerceInt(raw any) (int, bool) {
	value, ok := coerceInt64Checked(raw)
	return int(value), ok
}

func coerceInt64(raw any) int64 {
	value, _ := coerceInt64Checked(raw)
	return value
}

func coerceInt64Checked(raw any) (int64, bool) {
	switch typed := raw.(type) {
	case float64:
		return int64(typed), true
	case float32:
		return int64(typed), true
	case int:
		return int64(typed), true
	case int64:
		return typed, true
	case string:
		v, err := strconv.ParseInt(strings.TrimSpace(typed), 10, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}

func coerceFloat(raw any) (float64, bool) {
	switch typed := raw.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case string:
		v, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}

func firstNonEmpty(values ...string) string {
	for _, item := range values {
		if strings.TrimSpace(item) != "" {
			return strings.TrimSpace(item)
		}
	}
	return ""
}
