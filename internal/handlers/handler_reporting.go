package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/smart_wallet/internal/core/ports/services"
	"github.com/SscSPs/smart_wallet/internal/dto"
	"github.com/gin-gonic/gin"
)

type reportingHandler struct {
	wallet   portssvc.WalletReaderSvc
	sessions portssvc.SessionSvc
}

// registerReportingRoutes registers the summary, alert and session display routes.
func registerReportingRoutes(rg *gin.RouterGroup, wallet portssvc.WalletReaderSvc, sessions portssvc.SessionSvc) {
	h := &reportingHandler{wallet: wallet, sessions: sessions}

	rg.GET("/summary", h.getSummary)
	rg.GET("/alerts", h.getAlerts)
	rg.POST("/alerts/dismiss", h.dismissAlert)
	rg.GET("/session", h.getSession)
	rg.PUT("/session/decoy", h.setDecoy)
}

// getSummary godoc
// @Summary Totals in the base currency
// @Tags reporting
// @Produce json
// @Success 200 {object} domain.Summary
// @Security BearerAuth
// @Router /summary [get]
func (h *reportingHandler) getSummary(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	summary, err := h.wallet.GetSummary(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to compute summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getAlerts godoc
// @Summary Active alerts
// @Description Savings, debt and monthly goal reminders not dismissed in this session
// @Tags reporting
// @Produce json
// @Success 200 {object} dto.AlertsResponse
// @Security BearerAuth
// @Router /alerts [get]
func (h *reportingHandler) getAlerts(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	alerts, err := h.wallet.GetAlerts(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to evaluate alerts")
		return
	}
	c.JSON(http.StatusOK, dto.AlertsResponse{Alerts: alerts, Count: alerts.Count()})
}

// dismissAlert godoc
// @Summary Dismiss an alert
// @Description Hides the alert until the next unlock. Goal alerts come back the next month.
// @Tags reporting
// @Accept json
// @Param request body dto.DismissAlertRequest true "Alert"
// @Success 204
// @Failure 400 {object} map[string]string "Invalid alert kind"
// @Security BearerAuth
// @Router /alerts/dismiss [post]
func (h *reportingHandler) dismissAlert(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req dto.DismissAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	var err error
	switch req.Kind {
	case "savings":
		err = h.sessions.DismissSavings(id)
	case "debt":
		err = h.sessions.DismissDebt(id)
	default:
		err = h.sessions.DismissGoal(id, req.GoalID)
	}
	if err != nil {
		respondError(c, err, "Failed to dismiss alert")
		return
	}
	c.Status(http.StatusNoContent)
}

// getSession godoc
// @Summary Session display state
// @Tags session
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Security BearerAuth
// @Router /session [get]
func (h *reportingHandler) getSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	sess, err := h.sessions.Get(id)
	if err != nil {
		respondError(c, err, "Failed to read session")
		return
	}
	c.JSON(http.StatusOK, dto.SessionResponse{Decoy: sess.Decoy})
}

// setDecoy godoc
// @Summary Toggle decoy mode
// @Description While active every displayed amount is scaled down
// @Tags session
// @Accept json
// @Produce json
// @Param request body dto.DecoyRequest true "Decoy state"
// @Success 200 {object} dto.SessionResponse
// @Security BearerAuth
// @Router /session/decoy [put]
func (h *reportingHandler) setDecoy(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req dto.DecoyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	sess, err := h.sessions.SetDecoy(id, *req.Active)
	if err != nil {
		respondError(c, err, "Failed to update session")
		return
	}
	c.JSON(http.StatusOK, dto.SessionResponse{Decoy: sess.Decoy})
}
