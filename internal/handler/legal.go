package handler

import (
	"net/http"

	"github.com/momentumhq/momentum/internal/service"
)

type LegalHandler struct {
	legalService *service.LegalService
}

func NewLegalHandler(legalService *service.LegalService) *LegalHandler {
	handler := &LegalHandler{
		legalService: legalService,
	}

	// Load legal pages on initialization
	err := handler.legalService.LoadPages()
	if err != nil {
		// Silently continue - pages might be added later
		_ = err
	}

	return handler
}

func (h *LegalHandler) ShowPage(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("page")

	page, err := h.legalService.Page(slug)
	if err != nil {
		respondError(w, http.StatusNotFound, "page not found")
		return
	}

	respondJSON(w, http.StatusOK, page)
}
