package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/momentumhq/momentum/internal/service"
	"github.com/momentumhq/momentum/internal/validation"
)

type newsletterHandler struct {
	emailService *service.EmailService
}

func NewNewsletterHandler(emailService *service.EmailService) *newsletterHandler {
	return &newsletterHandler{
		emailService: emailService,
	}
}

func (h *newsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	email := strings.TrimSpace(strings.ToLower(input.Email))

	if err := validation.ValidateEmail(email); err != nil {
		respondServiceError(w, err)
		return
	}

	err := h.emailService.SubscribeNewsletter(email)
	if err != nil {
		// Return success anyway to prevent email enumeration
		slog.Warn("newsletter subscription error", "error", err, "email", email)
	}

	respondJSON(w, http.StatusOK, map[string]bool{"subscribed": true})
}
