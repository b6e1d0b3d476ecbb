package handler

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/momentumhq/momentum/internal/config"
	"github.com/momentumhq/momentum/internal/ctxkeys"
	"github.com/momentumhq/momentum/internal/model"
	"github.com/momentumhq/momentum/internal/service"
	"github.com/momentumhq/momentum/internal/validation"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
)

const sessionDuration = 7 * 24 * time.Hour

type authHandler struct {
	authService       *service.AuthService
	userService       *service.UserService
	googleOAuthConfig *oauth2.Config
	githubOAuthConfig *oauth2.Config
}

func NewAuthHandler(authService *service.AuthService, userService *service.UserService, cfg *config.Config) *authHandler {
	return &authHandler{
		authService: authService,
		userService: userService,
		googleOAuthConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.AppURL + "/auth/google/callback",
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email"},
			Endpoint:     google.Endpoint,
		},
		githubOAuthConfig: &oauth2.Config{
			ClientID:     cfg.GitHubClientID,
			ClientSecret: cfg.GitHubClientSecret,
			RedirectURL:  cfg.AppURL + "/auth/github/callback",
			Scopes:       []string{"user:email"},
			Endpoint:     github.Endpoint,
		},
	}
}

func (h *authHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *authHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
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

	if err := h.authService.SendForgotPasswordLink(email); err != nil {
		// Don't reveal specific errors to user
		slog.Warn("forgot password link send failed", "error", err, "email", email)
	}

	// Always report success to prevent email enumeration
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "reset link sent if the account exists",
	})
}

func (h *authHandler) VerifyForgotPassword(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")

	user, err := h.authService.VerifyMagicLink(token)
	if err != nil {
		slog.Warn("forgot password verification failed", "error", err, "token", token)
		http.Redirect(w, r, "/auth?error=invalid_link", http.StatusSeeOther)
		return
	}

	if user.HasPassword() {
		err = h.authService.RemovePassword(user.ID)
		if err != nil {
			slog.Error("failed to remove password during forgot password flow", "error", err, "user_id", user.ID)
			http.Redirect(w, r, "/auth?error=server_error", http.StatusSeeOther)
			return
		}
		slog.Info("password removed via forgot password flow", "user_id", user.ID)
	}

	if err := h.startSession(w, user); err != nil {
		http.Redirect(w, r, "/auth?error=server_error", http.StatusSeeOther)
		return
	}

	slog.Info("user logged in via forgot password flow", "user_id", user.ID, "email", user.Email)
	http.Redirect(w, r, "/app/settings?password_removed=1", http.StatusSeeOther)
}

func (h *authHandler) VerifyEmailChange(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")

	user, err := h.authService.VerifyEmailChange(token)
	if err != nil {
		slog.Warn("email change verification failed", "error", err, "token", token)
		http.Redirect(w, r, "/auth?error=invalid_link", http.StatusSeeOther)
		return
	}

	if err := h.startSession(w, user); err != nil {
		http.Redirect(w, r, "/auth?error=server_error", http.StatusSeeOther)
		return
	}

	slog.Info("email changed", "user_id", user.ID, "new_email", user.Email)
	http.Redirect(w, r, "/app/settings?email_changed=1", http.StatusSeeOther)
}

func (h *authHandler) SendMagicLink(w http.ResponseWriter, r *http.Request) {
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

	if err := h.authService.SendMagicLink(email); err != nil {
		// Don't reveal specific errors to prevent email enumeration
		slog.Warn("magic link send failed", "error", err, "email", email)
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status": "magic link sent if the account exists",
	})
}

func (h *authHandler) VerifyMagicLink(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")

	user, err := h.authService.VerifyMagicLink(token)
	if err != nil {
		slog.Warn("magic link verification failed", "error", err, "token", token)
		http.Redirect(w, r, "/auth?error=invalid_link", http.StatusSeeOther)
		return
	}

	if err := h.startSession(w, user); err != nil {
		http.Redirect(w, r, "/auth?error=server_error", http.StatusSeeOther)
		return
	}

	needsOnboarding, err := h.authService.NeedsOnboarding(user.ID)
	if err != nil {
		slog.Warn("failed to check onboarding status", "error", err, "user_id", user.ID)
	}

	if needsOnboarding {
		slog.Info("new user needs onboarding", "user_id", user.ID, "email", user.Email)
		http.Redirect(w, r, "/auth/onboarding", http.StatusSeeOther)
		return
	}

	slog.Info("user logged in via magic link", "user_id", user.ID, "email", user.Email)
	http.Redirect(w, r, "/app/dashboard", http.StatusSeeOther)
}

func (h *authHandler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var input struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	name := strings.TrimSpace(input.Name)

	if err := h.authService.CompleteOnboarding(user.ID, name); err != nil {
		slog.Warn("onboarding failed", "error", err, "user_id", user.ID)
		respondServiceError(w, err)
		return
	}

	slog.Info("onboarding completed", "user_id", user.ID, "name", name)
	respondJSON(w, http.StatusOK, map[string]string{"name": name})
}

func (h *authHandler) PasswordAuth(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	email := strings.TrimSpace(strings.ToLower(input.Email))

	if email == "" || input.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	if err := validation.ValidateEmail(email); err != nil {
		respondServiceError(w, err)
		return
	}

	user, err := h.authService.Login(email, input.Password)
	if err != nil {
		slog.Warn("password login failed", "error", err, "email", email)
		respondError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if err := h.startSession(w, user); err != nil {
		respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	slog.Info("user logged in with password", "user_id", user.ID, "email", user.Email)

	needsOnboarding, err := h.authService.NeedsOnboarding(user.ID)
	if err != nil {
		slog.Warn("failed to check onboarding status", "error", err, "user_id", user.ID)
	}

	user.PasswordHash = nil
	respondJSON(w, http.StatusOK, map[string]any{
		"user":            user,
		"needsOnboarding": needsOnboarding,
	})
}

// startSession issues a JWT and attaches it as the session cookie.
func (h *authHandler) startSession(w http.ResponseWriter, user *model.User) error {
	jwtToken, err := h.authService.GenerateJWT(user)
	if err != nil {
		slog.Error("failed to generate JWT", "error", err, "user_id", user.ID)
		return err
	}
	h.authService.SetJWTCookie(w, jwtToken, time.Now().Add(sessionDuration))
	return nil
}

// GoogleAuth redirects user to Google OAuth consent screen
func (h *authHandler) GoogleAuth(w http.ResponseWriter, r *http.Request) {
	state := generateOAuthState()
	h.setOAuthStateCookie(w, r, state)

	url := h.googleOAuthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// GoogleCallback handles the OAuth callback from Google
func (h *authHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if !h.validOAuthState(w, r) {
		slog.Warn("google oauth state validation failed")
		http.Redirect(w, r, "/auth?error=oauth_failed", http.StatusSeeOther)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		slog.Warn("google oauth callback missing code")
		http.Redirect(w, r, "/auth?error=oauth_failed", http.StatusSeeOther)
		return
	}

	token, err := h.googleOAuthConfig.Exchange(context.Background(), code)
	if err != nil {
		slog.Error("google oauth token exchange failed", "error", err)
		http.Redirect(w, r, "/auth?error=oauth_failed", http.StatusSeeOther)
		return
	}

	client := h.googleOAuthConfig.Client(context.Background(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		slog.Error("failed to get google user info", "error", err)
		http.Redirect(w, r, "/auth?error=oauth_failed", http.StatusSeeOther)
		return
	}
	defer func() {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			slog.Error("failed to close response body", "error", closeErr)
		}
	}()

	var userInfo struct {
		Email string `json:"email"`
	}
	err = json.NewDecoder(resp.Body).Decode(&userInfo)
	if err != nil {
		slog.Error("failed to decode google user info", "error", err)
		http.Redirect(w, r, "/auth?error=oauth_failed", http.StatusSeeOther)
		return
	}

	h.finishOAuthLogin(w, r, userInfo.Email, "google")
}

// GitHubAuth redirects user to GitHub OAuth consent screen
func (h *authHandler) GitHubAuth(w http.ResponseWriter, r *http.Request) {
	state := generateOAuthState()
	h.setOAuthStateCookie(w, r, state)

	url := h.githubOAuthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// GitHubCallback handles the OAuth callback from GitHub
func (h *authHandler) GitHubCallback(w http.ResponseWriter, r *http.Request) {
	if !h.validOAuthState(w, r) {
		slog.Warn("github oauth state validation failed")
		http.Redirect(w, r, "/auth?error=oauth_failed", http.StatusSeeOther)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		slog.Warn("github oauth callback missing code")
		http.Redirect(w, r, "/auth?error=oauth_failed", http.StatusSeeOther)
		return
	}

	token, err := h.githubOAuthConfig.Exchange(context.Background(), code)
	if err != nil {
		slog.Error("github oauth token exchange failed", "error", err)
		http.Redirect(w, r, "/auth?error=oauth_failed", http.StatusSeeOther)
		return
	}

	client := h.githubOAuthConfig.Client(context.Background(), token)
	resp, err := client.Get("https://api.github.com/user")
	if err != nil {
		slog.Error("failed to get github user info", "error", err)
		http.Redirect(w, r, "/auth?error=oauth_failed", http.StatusSeeOther)
		return
	}
	defer func() {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			slog.Error("failed to close response body", "error", closeErr)
		}
	}()

	var userInfo struct {
		Email string `json:"email"`
	}
	err = json.NewDecoder(resp.Body).Decode(&userInfo)
	if err != nil {
		slog.Error("failed to decode github user info", "error", err)
		http.Redirect(w, r, "/auth?error=oauth_failed", http.StatusSeeOther)
		return
	}

	// GitHub API may not return email in main response if it's private
	// Need to fetch from /user/emails endpoint
	if userInfo.Email == "" {
		emailResp, err := client.Get("https://api.github.com/user/emails")
		if err != nil {
			slog.Error("failed to get github user emails", "error", err)
			http.Redirect(w, r, "/auth?error=oauth_failed", http.StatusSeeOther)
			return
		}
		defer func() {
			closeErr := emailResp.Body.Close()
			if closeErr != nil {
				slog.Error("failed to close email response body", "error", closeErr)
			}
		}()

		var emails []struct {
			Email   string `json:"email"`
			Primary bool   `json:"primary"`
		}
		err = json.NewDecoder(emailResp.Body).Decode(&emails)
		if err != nil {
			slog.Error("failed to decode github emails", "error", err)
			http.Redirect(w, r, "/auth?error=oauth_failed", http.StatusSeeOther)
			return
		}

		for _, e := range emails {
			if e.Primary {
				userInfo.Email = e.Email
				break
			}
		}
	}

	if userInfo.Email == "" {
		slog.Warn("github oauth: no email found")
		http.Redirect(w, r, "/auth?error=no_email", http.StatusSeeOther)
		return
	}

	h.finishOAuthLogin(w, r, userInfo.Email, "github")
}

func (h *authHandler) finishOAuthLogin(w http.ResponseWriter, r *http.Request, email, provider string) {
	user, err := h.authService.AuthenticateOAuth(email, provider)
	if err != nil {
		slog.Error("oauth authentication failed", "error", err, "email", email, "provider", provider)
		http.Redirect(w, r, "/auth?error=oauth_failed", http.StatusSeeOther)
		return
	}

	if err := h.startSession(w, user); err != nil {
		http.Redirect(w, r, "/auth?error=server_error", http.StatusSeeOther)
		return
	}

	slog.Info("user logged in with oauth", "user_id", user.ID, "email", user.Email, "provider", provider)

	needsOnboarding, err := h.authService.NeedsOnboarding(user.ID)
	if err != nil {
		slog.Warn("failed to check onboarding status", "error", err, "user_id", user.ID)
	}

	if needsOnboarding {
		http.Redirect(w, r, "/auth/onboarding", http.StatusSeeOther)
	} else {
		http.Redirect(w, r, "/app/dashboard", http.StatusSeeOther)
	}
}

func (h *authHandler) setOAuthStateCookie(w http.ResponseWriter, r *http.Request, state string) {
	cfg := ctxkeys.Config(r.Context())
	isProduction := cfg != nil && cfg.IsProduction()

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   isProduction, // Secure flag based on APP_ENV (safer than r.TLS behind load balancers)
		SameSite: http.SameSiteLaxMode,
		MaxAge:   600, // 10 minutes
	})
}

// validOAuthState checks the state parameter against the cookie and clears it.
func (h *authHandler) validOAuthState(w http.ResponseWriter, r *http.Request) bool {
	state := r.URL.Query().Get("state")
	cookie, err := r.Cookie("oauth_state")

	http.SetCookie(w, &http.Cookie{
		Name:   "oauth_state",
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	return err == nil && state != "" && cookie.Value == state
}

// generateOAuthState creates cryptographically secure random state token for OAuth CSRF protection
func generateOAuthState() string {
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	if err != nil {
		panic("failed to generate oauth state: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(bytes)
}
