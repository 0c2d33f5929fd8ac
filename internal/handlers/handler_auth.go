package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/smart_wallet/internal/core/ports/services"
	"github.com/SscSPs/smart_wallet/internal/dto"
	"github.com/SscSPs/smart_wallet/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

type authHandler struct {
	authService portssvc.AuthSvc
}

// registerAuthRoutes registers the public password routes. Unlock attempts are rate limited per IP.
func registerAuthRoutes(r *gin.Engine, authService portssvc.AuthSvc, unlockLimiter *limiter.Limiter) {
	h := &authHandler{authService: authService}

	auth := r.Group("/auth")
	{
		auth.GET("/status", h.status)
		auth.POST("/setup", h.setup)
		auth.POST("/unlock", middleware.RateLimit(unlockLimiter), h.unlock)
	}
}

// registerLockRoute registers the authenticated lock route.
func registerLockRoute(rg *gin.RouterGroup, authService portssvc.AuthSvc) {
	h := &authHandler{authService: authService}
	rg.POST("/auth/lock", h.lock)
}

// status godoc
// @Summary Password status
// @Description Reports whether the app password has been set
// @Tags auth
// @Produce json
// @Success 200 {object} dto.AuthStatusResponse
// @Failure 500 {object} map[string]string "Failed to read password status"
// @Router /auth/status [get]
func (h *authHandler) status(c *gin.Context) {
	configured, err := h.authService.IsConfigured(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to read password status")
		return
	}
	c.JSON(http.StatusOK, dto.AuthStatusResponse{Configured: configured})
}

// setup godoc
// @Summary Set the app password
// @Description Stores the first password and opens a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.PasswordRequest true "Password"
// @Success 201 {object} dto.TokenResponse
// @Failure 400 {object} map[string]string "Password too short"
// @Failure 409 {object} map[string]string "Password already set"
// @Router /auth/setup [post]
func (h *authHandler) setup(c *gin.Context) {
	var req dto.PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	token, err := h.authService.Setup(c.Request.Context(), req.Password)
	if err != nil {
		respondError(c, err, "Failed to set password")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Password configured")
	c.JSON(http.StatusCreated, dto.TokenResponse{Token: token})
}

// unlock godoc
// @Summary Unlock the wallet
// @Description Checks the password and opens a fresh session with decoy mode on
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.PasswordRequest true "Password"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} map[string]string "Wrong password"
// @Failure 429 {object} map[string]string "Too many attempts"
// @Router /auth/unlock [post]
func (h *authHandler) unlock(c *gin.Context) {
	var req dto.PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	token, err := h.authService.Unlock(c.Request.Context(), req.Password)
	if err != nil {
		respondError(c, err, "Failed to unlock")
		return
	}
	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

// lock godoc
// @Summary Lock the wallet
// @Description Ends the current session. Its token stops working immediately.
// @Tags auth
// @Success 204
// @Security BearerAuth
// @Router /auth/lock [post]
func (h *authHandler) lock(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	h.authService.Lock(c.Request.Context(), id)
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Session locked", slog.String("session_id", id))
	c.Status(http.StatusNoContent)
}
