package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/neatway/proclubs-stats-sub000/internal/domain/club"
	"github.com/neatway/proclubs-stats-sub000/internal/domain/match"
	"github.com/neatway/proclubs-stats-sub000/internal/domain/member"
	"github.com/neatway/proclubs-stats-sub000/internal/infrastructure/repository/memory"
	"github.com/neatway/proclubs-stats-sub000/internal/platform/id"
	"github.com/neatway/proclubs-stats-sub000/internal/platform/logging"
	"github.com/neatway/proclubs-stats-sub000/internal/usecase"
)

type stubClubProvider struct{}

func (stubClubProvider) ClubInfo(_ context.Context, _, clubID string) (*club.Info, error) {
	return &club.Info{ID: clubID, Name: "Test FC", TeamID: 110}, nil
}

func (stubClubProvider) ClubStats(_ context.Context, _, clubID string) (*club.Stats, error) {
	return &club.Stats{ClubID: clubID, Games: 12, Wins: 8, Draws: 1, Losses: 3}, nil
}

func (stubClubProvider) ClubMembers(_ context.Context, _, _ string) ([]member.Member, error) {
	goals := 7
	return []member.Member{{PersonaID: "900", Name: "TesterConsole", Goals: &goals}}, nil
}

func (stubClubProvider) ClubMatches(_ context.Context, _, clubID, _ string) ([]match.Match, error) {
	return []match.Match{
		{
			ID:      "m1",
			Kickoff: time.Unix(1700000000, 0).UTC(),
			Clubs: map[string]match.ClubResult{
				clubID: {ClubID: clubID, Goals: 2, GoalsAgainst: 1},
				"77":   {ClubID: "77", Goals: 1, GoalsAgainst: 2},
			},
		},
	}, nil
}

func (stubClubProvider) SearchClubs(_ context.Context, _, name string) ([]club.Info, error) {
	return []club.Info{{ID: "42", Name: name + " FC"}}, nil
}

type stubPlayerProvider struct{}

func (stubPlayerProvider) SearchPlayers(_ context.Context, _, name string) ([]member.Member, error) {
	return []member.Member{{PersonaID: "900", Name: name}}, nil
}

func (stubPlayerProvider) PlayerCareer(_ context.Context, _, personaID string) (*member.Member, error) {
	return &member.Member{PersonaID: personaID, Name: "career"}, nil
}

type stubOAuth struct{}

func (stubOAuth) AuthorizeURL(state string) string {
	return "https://discord.test/oauth2/authorize?state=" + state
}

func (stubOAuth) Authenticate(_ context.Context, _ string) (usecase.OAuthIdentity, error) {
	return usecase.OAuthIdentity{ProviderUserID: "discord-1", Username: "tester"}, nil
}

const testJobToken = "job-secret"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	ids := id.NewRandomGenerator()
	logger := logging.NewNop()

	clubService := usecase.NewClubService(stubClubProvider{}, nil)
	playerService := usecase.NewPlayerService(stubPlayerProvider{}, nil)
	authService := usecase.NewAuthService(
		memory.NewUserRepository(),
		memory.NewSessionRepository(),
		stubOAuth{},
		ids,
		time.Hour,
	)
	claimService := usecase.NewClaimService(memory.NewClaimRepository(), stubClubProvider{}, ids)
	voteService := usecase.NewVoteService(memory.NewVoteRepository(), ids)
	followRepo := memory.NewFollowRepository()
	followService := usecase.NewFollowService(followRepo, ids)
	warmService := usecase.NewWarmFollowsService(followRepo, clubService, 2, logger)

	handler := NewHandler(clubService, playerService, authService, claimService, voteService, followService, warmService, logger)
	return NewRouter(handler, authService, logger, nil, []string{"*"}, testJobToken)
}

func doJSON(t *testing.T, router http.Handler, method, target, token, body string) (int, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope map[string]any
	if rec.Body.Len() > 0 {
		if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("%s %s: unmarshal response: %v", method, target, err)
		}
	}
	return rec.Code, envelope
}

func loginForTest(t *testing.T, router http.Handler) string {
	t.Helper()

	code, envelope := doJSON(t, router, http.MethodGet, "/v1/auth/discord/login", "", "")
	if code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%v)", code, envelope)
	}
	state, _ := envelope["data"].(map[string]any)["state"].(string)
	if state == "" {
		t.Fatalf("expected state in login response")
	}

	code, envelope = doJSON(t, router, http.MethodGet, "/v1/auth/discord/callback?code=abc&state="+state, "", "")
	if code != http.StatusOK {
		t.Fatalf("callback: expected 200, got %d (%v)", code, envelope)
	}
	data := envelope["data"].(map[string]any)
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatalf("expected session token in callback response")
	}
	return token
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	code, envelope := doJSON(t, router, http.MethodGet, "/healthz", "", "")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if got, _ := envelope["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected envelope apiVersion, got %v", envelope)
	}
}

func TestRouter_ClubOverview(t *testing.T) {
	router := newTestRouter(t)

	code, envelope := doJSON(t, router, http.MethodGet, "/v1/clubs/42?platform=common-gen5", "", "")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%v)", code, envelope)
	}

	data := envelope["data"].(map[string]any)
	info := data["info"].(map[string]any)
	if info["name"] != "Test FC" {
		t.Fatalf("unexpected club info: %v", info)
	}
	stats := data["stats"].(map[string]any)
	if stats["wins"] != float64(8) {
		t.Fatalf("unexpected club stats: %v", stats)
	}
	members := data["members"].([]any)
	if len(members) != 1 {
		t.Fatalf("expected one member, got %d", len(members))
	}
}

func TestRouter_ClubMatchesClassified(t *testing.T) {
	router := newTestRouter(t)

	code, envelope := doJSON(t, router, http.MethodGet, "/v1/clubs/42/matches?type=league", "", "")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%v)", code, envelope)
	}

	items := envelope["data"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected one match, got %d", len(items))
	}
	first := items[0].(map[string]any)
	if first["outcome"] != "win" {
		t.Fatalf("expected win outcome, got %v", first["outcome"])
	}
	if kickoff, _ := first["kickoffAt"].(string); !strings.HasPrefix(kickoff, "2023-11-") {
		t.Fatalf("expected RFC3339 kickoff, got %v", first["kickoffAt"])
	}
}

func TestRouter_AuthFlow(t *testing.T) {
	router := newTestRouter(t)
	token := loginForTest(t, router)

	code, envelope := doJSON(t, router, http.MethodGet, "/v1/auth/me", token, "")
	if code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d (%v)", code, envelope)
	}
	me := envelope["data"].(map[string]any)
	if me["username"] != "tester" {
		t.Fatalf("unexpected account: %v", me)
	}

	code, _ = doJSON(t, router, http.MethodGet, "/v1/auth/me", "", "")
	if code != http.StatusUnauthorized {
		t.Fatalf("anonymous me: expected 401, got %d", code)
	}

	code, _ = doJSON(t, router, http.MethodPost, "/v1/auth/logout", token, "")
	if code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", code)
	}
	code, _ = doJSON(t, router, http.MethodGet, "/v1/auth/me", token, "")
	if code != http.StatusUnauthorized {
		t.Fatalf("me after logout: expected 401, got %d", code)
	}
}

func TestRouter_CallbackRejectsBadState(t *testing.T) {
	router := newTestRouter(t)

	code, _ := doJSON(t, router, http.MethodGet, "/v1/auth/discord/callback?code=abc&state=forged", "", "")
	if code != http.StatusUnauthorized {
		t.Fatalf("forged state: expected 401, got %d", code)
	}

	code, _ = doJSON(t, router, http.MethodGet, "/v1/auth/discord/callback?code=abc", "", "")
	if code != http.StatusBadRequest {
		t.Fatalf("missing state: expected 400, got %d", code)
	}
}

func TestRouter_ClaimFlow(t *testing.T) {
	router := newTestRouter(t)
	token := loginForTest(t, router)

	// Claiming requires a console name matching a club member.
	code, _ := doJSON(t, router, http.MethodPost, "/v1/claims", token, `{"clubId":"42"}`)
	if code != http.StatusBadRequest {
		t.Fatalf("claim without console name: expected 400, got %d", code)
	}

	code, _ = doJSON(t, router, http.MethodPut, "/v1/auth/console-name", token, `{"consoleName":"testerconsole"}`)
	if code != http.StatusOK {
		t.Fatalf("set console name: expected 200, got %d", code)
	}

	code, envelope := doJSON(t, router, http.MethodPost, "/v1/claims", token, `{"clubId":"42"}`)
	if code != http.StatusCreated {
		t.Fatalf("claim: expected 201, got %d (%v)", code, envelope)
	}
	created := envelope["data"].(map[string]any)
	if created["personaId"] != "900" {
		t.Fatalf("expected persona match from club roster, got %v", created)
	}

	code, _ = doJSON(t, router, http.MethodGet, "/v1/claims/me", token, "")
	if code != http.StatusOK {
		t.Fatalf("my claim: expected 200, got %d", code)
	}

	code, _ = doJSON(t, router, http.MethodDelete, "/v1/claims", token, "")
	if code != http.StatusOK {
		t.Fatalf("release claim: expected 200, got %d", code)
	}
}

func TestRouter_VoteFlow(t *testing.T) {
	router := newTestRouter(t)
	token := loginForTest(t, router)

	code, _ := doJSON(t, router, http.MethodPut, "/v1/votes", token, `{"subjectKind":"club","subjectId":"42","value":"like"}`)
	if code != http.StatusOK {
		t.Fatalf("cast vote: expected 200, got %d", code)
	}

	code, envelope := doJSON(t, router, http.MethodGet, "/v1/clubs/42/votes", token, "")
	if code != http.StatusOK {
		t.Fatalf("club votes: expected 200, got %d", code)
	}
	tally := envelope["data"].(map[string]any)
	if tally["likes"] != float64(1) || tally["myVote"] != "like" {
		t.Fatalf("unexpected tally: %v", tally)
	}

	// Anonymous tally omits the caller's vote.
	code, envelope = doJSON(t, router, http.MethodGet, "/v1/clubs/42/votes", "", "")
	if code != http.StatusOK {
		t.Fatalf("anonymous club votes: expected 200, got %d", code)
	}
	tally = envelope["data"].(map[string]any)
	if _, ok := tally["myVote"]; ok {
		t.Fatalf("did not expect myVote for anonymous caller: %v", tally)
	}

	code, _ = doJSON(t, router, http.MethodDelete, "/v1/votes?subjectKind=club&subjectId=42&platform=common-gen5", token, "")
	if code != http.StatusOK {
		t.Fatalf("delete vote: expected 200, got %d", code)
	}

	code, _ = doJSON(t, router, http.MethodPut, "/v1/votes", "", `{"subjectKind":"club","subjectId":"42","value":"like"}`)
	if code != http.StatusUnauthorized {
		t.Fatalf("anonymous vote: expected 401, got %d", code)
	}
}

func TestRouter_FollowAndWarmJob(t *testing.T) {
	router := newTestRouter(t)
	token := loginForTest(t, router)

	code, _ := doJSON(t, router, http.MethodPut, "/v1/follows", token, `{"clubId":"42","clubName":"Test FC"}`)
	if code != http.StatusOK {
		t.Fatalf("follow: expected 200, got %d", code)
	}

	code, envelope := doJSON(t, router, http.MethodGet, "/v1/follows/me", token, "")
	if code != http.StatusOK {
		t.Fatalf("my follows: expected 200, got %d", code)
	}
	if items := envelope["data"].([]any); len(items) != 1 {
		t.Fatalf("expected one follow, got %d", len(items))
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/warm-follows", strings.NewReader(`{"maxWorkers":2}`))
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("warm follows job: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	var jobEnvelope map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &jobEnvelope); err != nil {
		t.Fatalf("unmarshal job response: %v", err)
	}
	result := jobEnvelope["data"].(map[string]any)
	if result["club_count"] != float64(1) || result["success_count"] != float64(1) {
		t.Fatalf("unexpected warm result: %v", result)
	}
}

func TestRouter_PlayerSearchAndCareer(t *testing.T) {
	router := newTestRouter(t)

	code, envelope := doJSON(t, router, http.MethodGet, "/v1/players/search?name=striker", "", "")
	if code != http.StatusOK {
		t.Fatalf("player search: expected 200, got %d (%v)", code, envelope)
	}
	if items := envelope["data"].([]any); len(items) != 1 {
		t.Fatalf("expected one player, got %d", len(items))
	}

	code, envelope = doJSON(t, router, http.MethodGet, "/v1/players/900/career", "", "")
	if code != http.StatusOK {
		t.Fatalf("player career: expected 200, got %d (%v)", code, envelope)
	}
	career := envelope["data"].(map[string]any)
	if career["personaId"] != "900" {
		t.Fatalf("unexpected career: %v", career)
	}
}
