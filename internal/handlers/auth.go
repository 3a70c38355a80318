package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/vibecheck/backend/internal/apierror"
	"github.com/JonnyWalker81/vibecheck/backend/internal/auth"
	"github.com/JonnyWalker81/vibecheck/backend/internal/logger"
	"github.com/JonnyWalker81/vibecheck/backend/internal/middleware"
	"github.com/JonnyWalker81/vibecheck/backend/internal/models"
	"github.com/JonnyWalker81/vibecheck/backend/internal/repository"
	"github.com/JonnyWalker81/vibecheck/backend/internal/service"
)

type AuthHandler struct {
	authService   service.AuthService
	secureCookies bool
	now           func() time.Time
}

// NewAuthHandler creates a new auth handler. secureCookies marks the token
// cookie Secure and should be set whenever the API is served over TLS.
func NewAuthHandler(authService service.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		secureCookies: secureCookies,
		now:           time.Now,
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	requestID := apierror.GetRequestID(c)

	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.WriteProblem(c, apierror.NewBindingError(requestID, err))
		return
	}

	authResp, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserExists):
			apierror.WriteProblem(c, apierror.NewConflictError(requestID, "Username or email already exists"))
			return
		case errors.Is(err, service.ErrPasswordTooLong):
			apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{{
				Field:   "password",
				Message: "must be at most 72 bytes",
				Code:    "max",
			}}))
			return
		}
		logger.FromContext(c.Request.Context()).Error("register failed", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	h.setTokenCookie(c, authResp)
	c.JSON(http.StatusCreated, authResp)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	requestID := apierror.GetRequestID(c)

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.WriteProblem(c, apierror.NewBindingError(requestID, err))
		return
	}

	authResp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			apierror.WriteProblem(c, apierror.NewInvalidCredentialsError(requestID))
			return
		}
		logger.FromContext(c.Request.Context()).Error("login failed", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	h.setTokenCookie(c, authResp)
	c.JSON(http.StatusOK, authResp)
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	// Tokens are stateless; the client drops its copy and the cookie expires here
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, "", -1, "/", "", h.secureCookies, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	requestID := apierror.GetRequestID(c)
	userID := middleware.UserID(c)

	user, err := h.authService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "user", userID))
			return
		}
		logger.FromContext(c.Request.Context()).Error("get user failed", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) setTokenCookie(c *gin.Context, resp *models.AuthResponse) {
	maxAge := int(resp.ExpiresAt.Sub(h.now()).Seconds())
	if maxAge <= 0 {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, resp.AccessToken, maxAge, "/", "", h.secureCookies, true)
}
