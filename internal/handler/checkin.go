package handler

import (
	"net/http"
	"time"

	"github.com/momentumhq/momentum/internal/ctxkeys"
	"github.com/momentumhq/momentum/internal/repository"
	"github.com/momentumhq/momentum/internal/service"
)

type CheckInHandler struct {
	checkInService *service.CheckInService
}

func NewCheckInHandler(checkInService *service.CheckInService) *CheckInHandler {
	return &CheckInHandler{
		checkInService: checkInService,
	}
}

// Submit records or replaces the week's check-in.
func (h *CheckInHandler) Submit(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var input service.CheckInInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.WeekStart.IsZero() {
		input.WeekStart = time.Now()
	}

	checkIn, err := h.checkInService.Submit(user.ID, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, checkIn)
}

func (h *CheckInHandler) ByCycle(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	checkIns, err := h.checkInService.ByCycle(user.ID, r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, checkIns)
}

// CurrentWeek returns the check-in for the week in progress, or null
// when this week is still unlogged.
func (h *CheckInHandler) CurrentWeek(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	checkIn, err := h.checkInService.ForWeek(user.ID, r.PathValue("id"), time.Now())
	if err == repository.ErrCheckInNotFound {
		respondJSON(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, checkIn)
}

func (h *CheckInHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if err := h.checkInService.Delete(user.ID, r.PathValue("id")); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
