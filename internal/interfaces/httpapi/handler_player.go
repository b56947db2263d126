package httpapi

import (
	"net/http"
)

func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchPlayers")
	defer span.End()

	name := r.URL.Query().Get("name")
	platform := r.URL.Query().Get("platform")

	players, err := h.playerService.Search(ctx, platform, name)
	if err != nil {
		h.logger.WarnContext(ctx, "search players failed", "name", name, "platform", platform, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]memberDTO, 0, len(players))
	for _, p := range players {
		items = append(items, memberToDTO(ctx, p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayerCareer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerCareer")
	defer span.End()

	personaID := r.PathValue("personaID")
	platform := r.URL.Query().Get("platform")

	career, err := h.playerService.Career(ctx, platform, personaID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player career failed", "persona_id", personaID, "platform", platform, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, memberToDTO(ctx, career))
}
