package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aminedz/microimport/internal/server/middleware"
	service "github.com/aminedz/microimport/internal/service/auth"
)

const sessionCookieName = "token"

// AuthHandler exposes the account endpoints.
type AuthHandler struct {
	svc      *service.Service
	tokenTTL time.Duration
	logger   *zap.Logger
}

// NewAuthHandler constructs the HTTP handler adapter.
func NewAuthHandler(svc *service.Service, tokenTTL time.Duration, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{svc: svc, tokenTTL: tokenTTL, logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

// Register creates an account and opens a session.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.svc.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Location: req.Location,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			respondError(c, http.StatusConflict, "email already registered")
			return
		}
		h.logger.Error("registration failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "internal error")
		return
	}

	h.setSessionCookie(c, token)
	respondData(c, http.StatusCreated, gin.H{"user": user})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and opens a session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, http.StatusUnauthorized, "invalid email or password")
		case errors.Is(err, service.ErrAccountDisabled):
			respondError(c, http.StatusUnauthorized, "account disabled")
		default:
			h.logger.Error("login failed", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "internal error")
		}
		return
	}

	h.setSessionCookie(c, token)
	respondData(c, http.StatusOK, gin.H{"user": user})
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(sessionCookieName, "", -1, "/", "", c.Request.TLS != nil, true)
	respondMessage(c, http.StatusOK, "logged out")
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing session token")
		return
	}
	respondData(c, http.StatusOK, gin.H{"user": user})
}

type updateProfileRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

// UpdateProfile edits the profile fields.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing session token")
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.UpdateProfile(c.Request.Context(), user.ID, req.Name, req.Phone, req.Location)
	if err != nil {
		respondStorageError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"user": updated})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// ChangePassword rotates the account password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "missing session token")
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.ChangePassword(c.Request.Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "current password is incorrect")
			return
		}
		respondStorageError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "password updated")
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(sessionCookieName, token, int(h.tokenTTL.Seconds()), "/", "", c.Request.TLS != nil, true)
}
