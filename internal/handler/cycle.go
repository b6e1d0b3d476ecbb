package handler

import (
	"net/http"
	"time"

	"github.com/momentumhq/momentum/internal/ctxkeys"
	"github.com/momentumhq/momentum/internal/repository"
	"github.com/momentumhq/momentum/internal/service"
)

type CycleHandler struct {
	cycleService *service.CycleService
	goalService  *service.GoalService
}

func NewCycleHandler(cycleService *service.CycleService, goalService *service.GoalService) *CycleHandler {
	return &CycleHandler{
		cycleService: cycleService,
		goalService:  goalService,
	}
}

func (h *CycleHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var input service.CycleInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cycle, err := h.cycleService.Create(user.ID, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, cycle)
}

func (h *CycleHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	includeArchived := r.URL.Query().Get("archived") == "true"

	cycles, err := h.cycleService.Cycles(user.ID, includeArchived)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cycles)
}

func (h *CycleHandler) Current(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	cycle, err := h.cycleService.Current(user.ID, time.Now())
	if err == repository.ErrCycleNotFound {
		respondJSON(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cycle)
}

func (h *CycleHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	cycle, err := h.cycleService.ByID(user.ID, r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cycle)
}

// Goals lists the goals attached to a cycle.
func (h *CycleHandler) Goals(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	includeArchived := r.URL.Query().Get("archived") == "true"

	goals, err := h.goalService.ByCycle(user.ID, r.PathValue("id"), includeArchived)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, goals)
}

func (h *CycleHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var input service.CycleInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cycle, err := h.cycleService.Update(user.ID, r.PathValue("id"), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cycle)
}

func (h *CycleHandler) Archive(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if err := h.cycleService.Archive(user.ID, r.PathValue("id")); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func (h *CycleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if err := h.cycleService.Delete(user.ID, r.PathValue("id")); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
