package routes

import (
	"net/http"

	"github.com/momentumhq/momentum/internal/app"
	"github.com/momentumhq/momentum/internal/handler"
	"github.com/momentumhq/momentum/internal/middleware"
	"github.com/momentumhq/momentum/internal/model"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB)
	legal := handler.NewLegalHandler(app.LegalService)
	newsletter := handler.NewNewsletterHandler(app.EmailService)
	auth := handler.NewAuthHandler(app.AuthService, app.UserService, app.Cfg)
	account := handler.NewAccountHandler(app.AuthService, app.UserService, app.FileService)
	profile := handler.NewProfileHandler(app.ProfileService)
	dashboard := handler.NewDashboardHandler(app.DashboardService)
	cycle := handler.NewCycleHandler(app.CycleService, app.GoalService)
	goal := handler.NewGoalHandler(app.GoalService)
	category := handler.NewCategoryHandler(app.CategoryService)
	checkIn := handler.NewCheckInHandler(app.CheckInService)
	insight := handler.NewInsightHandler(app.InsightService)
	export := handler.NewExportHandler(app.ExportService)
	billing := handler.NewBillingHandler(app.SubscriptionService, app.PaymentService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", health.Healthz)

	// Content
	mux.HandleFunc("GET /legal/{page}", legal.ShowPage)

	// Newsletter
	mux.HandleFunc("POST /newsletter/subscribe", newsletter.Subscribe)

	// Auth - Authentication flow (rate limited)
	rateLimiter := middleware.RateLimitAuth()

	// OAuth
	mux.HandleFunc("GET /auth/google", rateLimiter(middleware.RequireGuest(auth.GoogleAuth)))
	mux.HandleFunc("GET /auth/google/callback", rateLimiter(auth.GoogleCallback))
	mux.HandleFunc("GET /auth/github", rateLimiter(middleware.RequireGuest(auth.GitHubAuth)))
	mux.HandleFunc("GET /auth/github/callback", rateLimiter(auth.GitHubCallback))

	// Token Verifications (email links, browser-driven)
	mux.HandleFunc("GET /auth/magic-link/{token}", auth.VerifyMagicLink)
	mux.HandleFunc("GET /auth/forgot-password/{token}", auth.VerifyForgotPassword)
	mux.HandleFunc("GET /auth/verify-email-change/{token}", auth.VerifyEmailChange)

	// Auth Actions
	mux.HandleFunc("POST /auth/magic-link", rateLimiter(middleware.RequireGuest(auth.SendMagicLink)))
	mux.HandleFunc("POST /auth/password", rateLimiter(middleware.RequireGuest(auth.PasswordAuth)))
	mux.HandleFunc("POST /auth/forgot-password", rateLimiter(middleware.RequireGuest(auth.ForgotPassword)))
	mux.HandleFunc("POST /auth/onboarding", middleware.RequireAuth(auth.CompleteOnboarding))
	mux.HandleFunc("POST /auth/logout", auth.Logout)

	// ============================================================================
	// API ROUTES (authenticated)
	// ============================================================================

	// Dashboard
	mux.HandleFunc("GET /api/dashboard", middleware.RequireAuth(dashboard.Dashboard))

	// Coaching and export (paid features)
	requireAICoach := middleware.RequireFeature(model.FeatureAICoach)
	requireExport := middleware.RequireFeature(model.FeatureExport)
	mux.HandleFunc("GET /api/insights/weekly-summary", middleware.RequireAuth(requireAICoach(insight.WeeklySummary)))
	mux.HandleFunc("GET /api/export", middleware.RequireAuth(requireExport(export.Download)))

	// Cycles
	mux.HandleFunc("POST /api/cycles", middleware.RequireAuth(cycle.Create))
	mux.HandleFunc("GET /api/cycles", middleware.RequireAuth(cycle.List))
	mux.HandleFunc("GET /api/cycles/current", middleware.RequireAuth(cycle.Current))
	mux.HandleFunc("GET /api/cycles/{id}", middleware.RequireAuth(cycle.Get))
	mux.HandleFunc("PUT /api/cycles/{id}", middleware.RequireAuth(cycle.Update))
	mux.HandleFunc("POST /api/cycles/{id}/archive", middleware.RequireAuth(cycle.Archive))
	mux.HandleFunc("DELETE /api/cycles/{id}", middleware.RequireAuth(cycle.Delete))
	mux.HandleFunc("GET /api/cycles/{id}/goals", middleware.RequireAuth(cycle.Goals))
	mux.HandleFunc("GET /api/cycles/{id}/check-ins", middleware.RequireAuth(checkIn.ByCycle))
	mux.HandleFunc("GET /api/cycles/{id}/check-ins/current", middleware.RequireAuth(checkIn.CurrentWeek))

	// Goals
	mux.HandleFunc("POST /api/goals", middleware.RequireAuth(goal.Create))
	mux.HandleFunc("GET /api/goals/{id}", middleware.RequireAuth(goal.Get))
	mux.HandleFunc("PUT /api/goals/{id}", middleware.RequireAuth(goal.Update))
	mux.HandleFunc("PATCH /api/goals/{id}/value", middleware.RequireAuth(goal.UpdateValue))
	mux.HandleFunc("POST /api/goals/{id}/archive", middleware.RequireAuth(goal.Archive))
	mux.HandleFunc("DELETE /api/goals/{id}", middleware.RequireAuth(goal.Delete))

	// Check-ins
	mux.HandleFunc("POST /api/check-ins", middleware.RequireAuth(checkIn.Submit))
	mux.HandleFunc("DELETE /api/check-ins/{id}", middleware.RequireAuth(checkIn.Delete))

	// Categories
	mux.HandleFunc("POST /api/categories", middleware.RequireAuth(category.Create))
	mux.HandleFunc("GET /api/categories", middleware.RequireAuth(category.List))
	mux.HandleFunc("PUT /api/categories/{id}", middleware.RequireAuth(category.Update))
	mux.HandleFunc("DELETE /api/categories/{id}", middleware.RequireAuth(category.Delete))

	// Profile
	mux.HandleFunc("GET /api/profile", middleware.RequireAuth(profile.Get))
	mux.HandleFunc("PATCH /api/profile/name", middleware.RequireAuth(profile.UpdateName))

	// Account (Security & Identity)
	mux.HandleFunc("GET /api/account", middleware.RequireAuth(account.Me))
	mux.HandleFunc("PATCH /api/account/email", middleware.RequireAuth(account.ChangeEmail))
	mux.HandleFunc("POST /api/account/password", middleware.RequireAuth(account.ChangePassword))
	mux.HandleFunc("POST /api/account/password/set", middleware.RequireAuth(account.SetPassword))
	mux.HandleFunc("DELETE /api/account/password", middleware.RequireAuth(account.RemovePassword))
	mux.HandleFunc("POST /api/account/avatar", middleware.RequireAuth(account.UploadAvatar))
	mux.HandleFunc("DELETE /api/account/avatar", middleware.RequireAuth(account.DeleteAvatar))
	mux.HandleFunc("DELETE /api/account", middleware.RequireAuth(account.DeleteAccount))

	// Billing
	mux.HandleFunc("GET /api/billing/subscription", middleware.RequireAuth(billing.Subscription))
	mux.HandleFunc("POST /api/billing/checkout", middleware.RequireAuth(billing.CreateCheckout))
	mux.HandleFunc("GET /api/billing/portal", middleware.RequireAuth(billing.CustomerPortal))

	// ============================================================================
	// WEBHOOKS
	// ============================================================================

	// Payment provider webhook (works with both Polar and Stripe)
	mux.HandleFunc("POST /webhooks/payment", billing.Webhook)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg),
		middleware.SecurityHeaders,
		middleware.RequestLogging,
		middleware.CSRFProtection, // CSRF protection for all state-changing requests
		middleware.AuthMiddleware(app.AuthService, app.UserService, app.ProfileService, app.SubscriptionService),
	)

	return handler
}
