package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/momentumhq/momentum/internal/ctxkeys"
	"github.com/momentumhq/momentum/internal/service"
	"github.com/momentumhq/momentum/internal/service/payment"
)

type BillingHandler struct {
	subscriptionService *service.SubscriptionService
	paymentService      payment.Provider
}

func NewBillingHandler(subscriptionService *service.SubscriptionService, paymentService payment.Provider) *BillingHandler {
	return &BillingHandler{
		subscriptionService: subscriptionService,
		paymentService:      paymentService,
	}
}

// Subscription returns the caller's current plan.
func (h *BillingHandler) Subscription(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	sub, err := h.subscriptionService.Subscription(user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"planId":           sub.PlanID,
		"status":           sub.Status,
		"interval":         sub.Interval,
		"price":            sub.FormatPrice(),
		"currentPeriodEnd": sub.CurrentPeriodEnd,
	})
}

func (h *BillingHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	profile := ctxkeys.Profile(r.Context())
	if profile == nil {
		respondError(w, http.StatusInternalServerError, "profile not found")
		return
	}

	var input struct {
		PlanID   string `json:"planId"`
		Interval string `json:"interval"`
	}
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.PlanID == "" {
		respondError(w, http.StatusBadRequest, "planId is required")
		return
	}
	if input.Interval == "" {
		input.Interval = "monthly"
	}

	checkoutURL, err := h.paymentService.CreateCheckoutURL(user.ID, input.PlanID, input.Interval, user.Email, profile.Name)
	if err != nil {
		slog.Error("failed to create checkout", "error", err, "user_id", user.ID, "plan_id", input.PlanID, "provider", h.paymentService.Name())
		respondError(w, http.StatusInternalServerError, "failed to create checkout session")
		return
	}

	slog.Info("checkout created", "user_id", user.ID, "provider", h.paymentService.Name())
	respondJSON(w, http.StatusOK, map[string]string{"url": checkoutURL})
}

func (h *BillingHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		slog.Error("failed to read webhook payload", "error", err)
		respondError(w, http.StatusBadRequest, "failed to read payload")
		return
	}
	defer func() {
		closeErr := r.Body.Close()
		if closeErr != nil {
			slog.Error("failed to close request body", "error", closeErr)
		}
	}()

	err = h.paymentService.HandleWebhook(payload, r.Header)
	if err != nil {
		slog.Error("failed to handle webhook", "error", err, "provider", h.paymentService.Name())
		respondError(w, http.StatusBadRequest, "failed to process webhook")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"received": true})
}

func (h *BillingHandler) CustomerPortal(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	portalURL, err := h.paymentService.CustomerPortalURL(user.ID)
	if err != nil {
		slog.Error("failed to get customer portal", "error", err, "user_id", user.ID, "provider", h.paymentService.Name())
		respondError(w, http.StatusInternalServerError, "failed to access customer portal")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"url": portalURL})
}
