package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.HandleFunc("GET /v1/clubs/search", handler.SearchClubs)
	mux.HandleFunc("GET /v1/clubs/{clubID}", handler.GetClubOverview)
	mux.HandleFunc("GET /v1/clubs/{clubID}/members", handler.ListClubMembers)
	mux.HandleFunc("GET /v1/clubs/{clubID}/matches", handler.ListClubMatches)
	mux.HandleFunc("GET /v1/players/search", handler.SearchPlayers)
	mux.HandleFunc("GET /v1/players/{personaID}/career", handler.GetPlayerCareer)

	// Tallies are public but include the caller's own vote when a valid
	// bearer token accompanies the request.
	mux.Handle("GET /v1/clubs/{clubID}/votes", OptionalAuth(verifier, http.HandlerFunc(handler.GetClubVotes)))
	mux.Handle("GET /v1/players/{personaID}/votes", OptionalAuth(verifier, http.HandlerFunc(handler.GetPlayerVotes)))

	mux.HandleFunc("GET /v1/auth/discord/login", handler.DiscordLogin)
	mux.HandleFunc("GET /v1/auth/discord/callback", handler.DiscordCallback)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/auth/me", RequireAuth(verifier, http.HandlerFunc(handler.GetMe)))
	mux.Handle("POST /v1/auth/logout", RequireAuth(verifier, http.HandlerFunc(handler.Logout)))
	mux.Handle("PUT /v1/auth/console-name", RequireAuth(verifier, http.HandlerFunc(handler.SetConsoleName)))

	mux.Handle("POST /v1/claims", RequireAuth(verifier, http.HandlerFunc(handler.CreateClaim)))
	mux.Handle("GET /v1/claims/me", RequireAuth(verifier, http.HandlerFunc(handler.GetMyClaim)))
	mux.Handle("DELETE /v1/claims", RequireAuth(verifier, http.HandlerFunc(handler.DeleteClaim)))

	mux.Handle("PUT /v1/votes", RequireAuth(verifier, http.HandlerFunc(handler.CastVote)))
	mux.Handle("DELETE /v1/votes", RequireAuth(verifier, http.HandlerFunc(handler.DeleteVote)))

	mux.Handle("PUT /v1/follows", RequireAuth(verifier, http.HandlerFunc(handler.FollowClub)))
	mux.Handle("DELETE /v1/follows", RequireAuth(verifier, http.HandlerFunc(handler.UnfollowClub)))
	mux.Handle("GET /v1/follows/me", RequireAuth(verifier, http.HandlerFunc(handler.ListMyFollows)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/warm-follows", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunWarmFollowsJob)))
	mux.Handle("POST /v1/internal/jobs/purge-sessions", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunPurgeSessionsJob)))
}
