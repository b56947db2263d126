package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/neatway/proclubs-stats-sub000/internal/domain/club"
	"github.com/neatway/proclubs-stats-sub000/internal/domain/member"
	"github.com/neatway/proclubs-stats-sub000/internal/usecase"
)

func (h *Handler) SearchClubs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchClubs")
	defer span.End()

	name := r.URL.Query().Get("name")
	platform := r.URL.Query().Get("platform")

	clubs, err := h.clubService.Search(ctx, platform, name)
	if err != nil {
		h.logger.WarnContext(ctx, "search clubs failed", "name", name, "platform", platform, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]clubInfoDTO, 0, len(clubs))
	for _, c := range clubs {
		items = append(items, clubInfoToDTO(ctx, &c))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetClubOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetClubOverview")
	defer span.End()

	clubID := r.PathValue("clubID")
	platform := r.URL.Query().Get("platform")

	overview, err := h.clubService.Overview(ctx, platform, clubID)
	if err != nil {
		h.logger.WarnContext(ctx, "get club overview failed", "club_id", clubID, "platform", platform, "error", err)
		writeError(ctx, w, err)
		return
	}

	members := make([]memberDTO, 0, len(overview.Members))
	for _, m := range overview.Members {
		members = append(members, memberToDTO(ctx, m))
	}

	payload := clubOverviewDTO{Members: members}
	if overview.Info != nil {
		info := clubInfoToDTO(ctx, overview.Info)
		payload.Info = &info
	}
	if overview.Stats != nil {
		stats := clubStatsToDTO(ctx, overview.Stats)
		payload.Stats = &stats
	}

	writeSuccess(ctx, w, http.StatusOK, payload)
}

func (h *Handler) ListClubMembers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListClubMembers")
	defer span.End()

	clubID := r.PathValue("clubID")
	platform := r.URL.Query().Get("platform")

	members, err := h.clubService.Members(ctx, platform, clubID)
	if err != nil {
		h.logger.WarnContext(ctx, "list club members failed", "club_id", clubID, "platform", platform, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]memberDTO, 0, len(members))
	for _, m := range members {
		items = append(items, memberToDTO(ctx, m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListClubMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListClubMatches")
	defer span.End()

	clubID := r.PathValue("clubID")
	platform := r.URL.Query().Get("platform")
	matchType := r.URL.Query().Get("type")

	summaries, err := h.clubService.Matches(ctx, platform, clubID, matchType)
	if err != nil {
		h.logger.WarnContext(ctx, "list club matches failed", "club_id", clubID, "platform", platform, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchSummaryDTO, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, matchSummaryToDTO(ctx, clubID, s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type clubInfoDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	RegionID     int    `json:"regionId"`
	TeamID       int    `json:"teamId"`
	CrestAssetID string `json:"crestAssetId,omitempty"`
	BadgeURL     string `json:"badgeUrl,omitempty"`
}

type clubStatsDTO struct {
	ClubID       string `json:"clubId"`
	Games        int    `json:"gamesPlayed"`
	Wins         int    `json:"wins"`
	Draws        int    `json:"draws"`
	Losses       int    `json:"losses"`
	GoalsFor     int    `json:"goalsFor"`
	GoalsAgainst int    `json:"goalsAgainst"`
	CleanSheets  int    `json:"cleanSheets"`
	SkillRating  int    `json:"skillRating"`
	TitlesWon    int    `json:"titlesWon"`
}

type clubOverviewDTO struct {
	Info    *clubInfoDTO  `json:"info"`
	Stats   *clubStatsDTO `json:"stats"`
	Members []memberDTO   `json:"members"`
}

type memberDTO struct {
	PersonaID   string         `json:"personaId"`
	Name        string         `json:"name"`
	Appearances *int           `json:"appearances"`
	Goals       *int           `json:"goals"`
	Assists     *int           `json:"assists"`
	CleanSheets *int           `json:"cleanSheets"`
	Saves       *int           `json:"saves"`
	Wins        *int           `json:"wins"`
	Losses      *int           `json:"losses"`
	Draws       *int           `json:"draws"`
	RatingAve   *float64       `json:"ratingAve"`
	Position    string         `json:"position,omitempty"`
	ProPosition string         `json:"proPosition,omitempty"`
	Extra       map[string]any `json:"extra,omitempty"`
}

type matchClubSideDTO struct {
	ClubID       string `json:"clubId"`
	Name         string `json:"name,omitempty"`
	Goals        int    `json:"goals"`
	GoalsAgainst int    `json:"goalsAgainst"`
}

type matchPlayerLineDTO struct {
	Goals    *int     `json:"goals"`
	Assists  *int     `json:"assists"`
	Rating   *float64 `json:"rating"`
	RedCards *int     `json:"redCards"`
	Passes   *int     `json:"passes"`
	Tackles  *int     `json:"tackles"`
}

type matchSummaryDTO struct {
	ID        string                                   `json:"id"`
	KickoffAt string                                   `json:"kickoffAt"`
	Outcome   string                                   `json:"outcome"`
	Clubs     map[string]matchClubSideDTO              `json:"clubs"`
	Players   map[string]map[string]matchPlayerLineDTO `json:"players,omitempty"`
}

func clubInfoToDTO(ctx context.Context, c *club.Info) clubInfoDTO {
	_ = ctx

	return clubInfoDTO{
		ID:           c.ID,
		Name:         c.Name,
		RegionID:     c.RegionID,
		TeamID:       c.TeamID,
		CrestAssetID: c.CrestAssetID,
		BadgeURL:     c.BadgeURL,
	}
}

func clubStatsToDTO(ctx context.Context, s *club.Stats) clubStatsDTO {
	_ = ctx

	return clubStatsDTO{
		ClubID:       s.ClubID,
		Games:        s.Games,
		Wins:         s.Wins,
		Draws:        s.Draws,
		Losses:       s.Losses,
		GoalsFor:     s.GoalsFor,
		GoalsAgainst: s.GoalsAgainst,
		CleanSheets:  s.CleanSheets,
		SkillRating:  s.SkillRating,
		TitlesWon:    s.TitlesWon,
	}
}

func memberToDTO(ctx context.Context, m member.Member) memberDTO {
	_ = ctx

	return memberDTO{
		PersonaID:   m.PersonaID,
		Name:        m.Name,
		Appearances: m.Appearances,
		Goals:       m.Goals,
		Assists:     m.Assists,
		CleanSheets: m.CleanSheets,
		Saves:       m.Saves,
		Wins:        m.Wins,
		Losses:      m.Losses,
		Draws:       m.Draws,
		RatingAve:   m.RatingAve,
		Position:    m.Position,
		ProPosition: m.ProPosition,
		Extra:       m.Extra,
	}
}

func matchSummaryToDTO(ctx context.Context, clubID string, s usecase.MatchSummary) matchSummaryDTO {
	_ = ctx
	_ = clubID

	clubs := make(map[string]matchClubSideDTO, len(s.Match.Clubs))
	for id, side := range s.Match.Clubs {
		clubs[id] = matchClubSideDTO{
			ClubID:       side.ClubID,
			Name:         side.Name,
			Goals:        side.Goals,
			GoalsAgainst: side.GoalsAgainst,
		}
	}

	var players map[string]map[string]matchPlayerLineDTO
	if len(s.Match.Players) > 0 {
		players = make(map[string]map[string]matchPlayerLineDTO, len(s.Match.Players))
		for id, lines := range s.Match.Players {
			side := make(map[string]matchPlayerLineDTO, len(lines))
			for personaID, line := range lines {
				side[personaID] = matchPlayerLineDTO{
					Goals:    line.Goals,
					Assists:  line.Assists,
					Rating:   line.Rating,
					RedCards: line.RedCards,
					Passes:   line.Passes,
					Tackles:  line.Tackles,
				}
			}
			players[id] = side
		}
	}

	kickoff := ""
	if !s.Match.Kickoff.IsZero() {
		kickoff = s.Match.Kickoff.Format(time.RFC3339)
	}

	return matchSummaryDTO{
		ID:        s.Match.ID,
		KickoffAt: kickoff,
		Outcome:   string(s.Outcome),
		Clubs:     clubs,
		Players:   players,
	}
}
