package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/momentumhq/momentum/internal/ctxkeys"
	"github.com/momentumhq/momentum/internal/service"
	"github.com/momentumhq/momentum/internal/validation"
)

type AccountHandler struct {
	authService *service.AuthService
	userService *service.UserService
	fileService *service.FileService
}

func NewAccountHandler(authService *service.AuthService, userService *service.UserService, fileService *service.FileService) *AccountHandler {
	return &AccountHandler{
		authService: authService,
		userService: userService,
		fileService: fileService,
	}
}

// Me returns the authenticated user with their resolved avatar URL.
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	fresh, err := h.userService.ByID(user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	hasPassword := fresh.HasPassword()
	fresh.PasswordHash = nil

	respondJSON(w, http.StatusOK, map[string]any{
		"user":        fresh,
		"hasPassword": hasPassword,
	})
}

func (h *AccountHandler) ChangeEmail(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

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

	if email == user.Email {
		respondError(w, http.StatusUnprocessableEntity, "email address is already set to this value")
		return
	}

	err := h.authService.RequestEmailChange(user.ID, email)
	if err != nil {
		slog.Warn("email change request failed", "error", err, "user_id", user.ID, "new_email", email)

		if errors.Is(err, service.ErrEmailAlreadyExists) {
			respondError(w, http.StatusConflict, "email already in use")
			return
		}
		if errors.Is(err, service.ErrInvalidEmail) {
			respondError(w, http.StatusBadRequest, "invalid email address")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to change email")
		return
	}

	slog.Info("email change requested", "user_id", user.ID, "old_email", user.Email, "new_email", email)
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "verification email sent",
	})
}

func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var input struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if input.CurrentPassword == "" || input.NewPassword == "" {
		respondError(w, http.StatusBadRequest, "current and new password are required")
		return
	}

	if err := validation.ValidatePassword(input.NewPassword); err != nil {
		respondServiceError(w, err)
		return
	}

	err := h.userService.UpdatePassword(user.ID, input.CurrentPassword, input.NewPassword)
	if err != nil {
		slog.Warn("password update failed", "error", err, "user_id", user.ID)

		if errors.Is(err, service.ErrInvalidCurrentPassword) {
			respondError(w, http.StatusForbidden, "current password is incorrect")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to update password")
		return
	}

	slog.Info("password updated", "user_id", user.ID)
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *AccountHandler) SetPassword(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var input struct {
		NewPassword string `json:"newPassword"`
	}
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validation.ValidatePassword(input.NewPassword); err != nil {
		respondServiceError(w, err)
		return
	}

	if err := h.authService.SetPassword(user.ID, input.NewPassword); err != nil {
		slog.Warn("set password failed", "error", err, "user_id", user.ID)
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	slog.Info("password set", "user_id", user.ID)
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *AccountHandler) RemovePassword(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if err := h.authService.RemovePassword(user.ID); err != nil {
		slog.Warn("remove password failed", "error", err, "user_id", user.ID)
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	slog.Info("password removed", "user_id", user.ID)
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.userService.DeleteAccount(user.ID)
	if err != nil {
		if errors.Is(err, service.ErrActiveSubscription) {
			slog.Warn("account deletion failed: active subscription", "error", err, "user_id", user.ID)
			respondError(w, http.StatusConflict, "cancel your subscription before deleting your account")
			return
		}

		slog.Error("account deletion failed", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to delete account")
		return
	}

	slog.Info("account deleted", "user_id", user.ID, "email", user.Email)
	h.authService.ClearJWTCookie(w)
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *AccountHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	// Parse multipart form (10MB max)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		respondError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer func() {
		closeErr := file.Close()
		if closeErr != nil {
			slog.Error("failed to close file", "error", closeErr)
		}
	}()

	if err := validation.ValidateFile(header, validation.ImageConstraints); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	// Explicitly delete old avatar before uploading new one
	if err := h.fileService.DeleteUserAvatar(user.ID); err != nil {
		slog.Warn("failed to delete old avatar", "error", err, "user_id", user.ID)
		// Continue anyway - we'll upload the new one
	}

	_, err = h.fileService.Upload(user.ID, "user", user.ID, "avatar", file, header, true) // Avatars are public
	if err != nil {
		slog.Error("failed to upload avatar", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to upload avatar")
		return
	}

	// Reload user to get updated avatar URL
	updatedUser, err := h.userService.ByID(user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	updatedUser.PasswordHash = nil

	respondJSON(w, http.StatusOK, updatedUser)
}

func (h *AccountHandler) DeleteAvatar(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if err := h.fileService.DeleteUserAvatar(user.ID); err != nil {
		slog.Error("failed to delete avatar", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to delete avatar")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
