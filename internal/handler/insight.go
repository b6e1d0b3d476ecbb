package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/momentumhq/momentum/internal/ctxkeys"
	"github.com/momentumhq/momentum/internal/service"
)

type InsightHandler struct {
	insightService *service.InsightService
}

func NewInsightHandler(insightService *service.InsightService) *InsightHandler {
	return &InsightHandler{
		insightService: insightService,
	}
}

// WeeklySummary serves the cached coaching note, generating one when
// the cache window has lapsed. Null when no provider is configured or
// there is nothing to coach on yet.
func (h *InsightHandler) WeeklySummary(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	insight, err := h.insightService.WeeklySummary(r.Context(), user.ID, time.Now())
	if errors.Is(err, service.ErrInsightUnavailable) || errors.Is(err, service.ErrNoCoachableData) {
		respondJSON(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, insight)
}
