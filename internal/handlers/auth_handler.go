package handlers

import (
	"errors"
	"net/http"
	"time"

	"dynastytrade/internal/middleware"
	"dynastytrade/internal/models"
	"dynastytrade/internal/repositories"
	"dynastytrade/internal/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler manages registration, login and session endpoints.
type AuthHandler struct {
	Users           *repositories.UserRepository
	Sessions        *repositories.SessionRepository
	SessionDuration time.Duration
	Logger          *zap.Logger
}

func NewAuthHandler(users *repositories.UserRepository, sessions *repositories.SessionRepository, sessionDuration time.Duration, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		Users:           users,
		Sessions:        sessions,
		SessionDuration: sessionDuration,
		Logger:          logger,
	}
}

func (h *AuthHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.RegisterRequest](r)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code: "hash_error", Message: "Failed to process password",
		})
		return
	}

	user := &models.User{
		Email:        req.Email,
		DisplayName:  req.DisplayName,
		PasswordHash: string(hash),
		Plan:         models.Plan(req.Plan),
	}
	if err := h.Users.CreateUser(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			utils.JSON(w, http.StatusConflict, models.ErrorResponse{
				Code: "duplicate_email", Message: "An account with this email already exists",
			})
			return
		}
		h.Logger.Error("failed to create user", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code: "create_failed", Message: "Failed to create account",
		})
		return
	}

	h.Logger.Info("user registered", zap.String("email", user.Email), zap.String("plan", string(user.Plan)))
	h.issueSession(w, user, http.StatusCreated)
}

func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.LoginRequest](r)

	user, err := h.Users.GetUserByEmail(req.Email)
	if err != nil {
		h.rejectCredentials(w, req.Email)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		h.rejectCredentials(w, req.Email)
		return
	}

	if err := h.Users.TouchLastLogin(user.ID, time.Now()); err != nil {
		h.Logger.Warn("failed to record last login", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	h.Logger.Info("user authenticated", zap.String("email", user.Email))
	h.issueSession(w, user, http.StatusOK)
}

func (h *AuthHandler) rejectCredentials(w http.ResponseWriter, email string) {
	h.Logger.Warn("authentication failed", zap.String("email", email))
	utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{
		Code: "invalid_credentials", Message: "Invalid email or password",
	})
}

func (h *AuthHandler) issueSession(w http.ResponseWriter, user *models.User, status int) {
	session, err := h.Sessions.CreateSession(user.ID, h.SessionDuration)
	if err != nil {
		h.Logger.Error("failed to create session", zap.Uint("user_id", user.ID), zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code: "session_error", Message: "Failed to create session",
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session_token",
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	utils.JSON(w, status, models.AuthResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.UTC().Format(time.RFC3339),
		User:      models.PublicUser(user),
	})
}

// LogoutHandler destroys the session unconditionally; logging out twice is
// fine.
func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if token := middleware.TokenFromRequest(r); token != "" {
		if err := h.Sessions.DestroySession(token); err != nil {
			h.Logger.Warn("failed to destroy session", zap.Error(err))
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name: "session_token", Value: "", Path: "/", MaxAge: -1, HttpOnly: true,
	})
	w.WriteHeader(http.StatusNoContent)
}

// MeHandler returns the authenticated account.
func (h *AuthHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)
	utils.JSON(w, http.StatusOK, models.PublicUser(user))
}
