package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/smart_wallet/internal/core/ports/services"
	"github.com/SscSPs/smart_wallet/internal/dto"
	"github.com/gin-gonic/gin"
)

type goalHandler struct {
	wallet portssvc.WalletSvcFacade
}

func registerGoalRoutes(rg *gin.RouterGroup, wallet portssvc.WalletSvcFacade) {
	h := &goalHandler{wallet: wallet}

	goals := rg.Group("/goals")
	{
		goals.GET("", h.listGoals)
		goals.POST("", h.createGoal)
		goals.PUT("/:id", h.updateGoal)
		goals.DELETE("/:id", h.deleteGoal)
	}
}

// listGoals godoc
// @Summary List savings goals
// @Tags goals
// @Produce json
// @Success 200 {array} domain.Goal
// @Security BearerAuth
// @Router /goals [get]
func (h *goalHandler) listGoals(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	goals, err := h.wallet.ListGoals(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to list goals")
		return
	}
	c.JSON(http.StatusOK, goals)
}

// createGoal godoc
// @Summary Create a savings goal
// @Tags goals
// @Accept json
// @Produce json
// @Param goal body dto.GoalRequest true "Goal"
// @Success 201 {object} domain.Goal
// @Failure 400 {object} map[string]string "Invalid goal"
// @Security BearerAuth
// @Router /goals [post]
func (h *goalHandler) createGoal(c *gin.Context) {
	var req dto.GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	in, err := req.ToInput("")
	if err != nil {
		respondError(c, err, "Invalid goal")
		return
	}
	goal, err := h.wallet.CreateGoal(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Failed to create goal")
		return
	}
	c.JSON(http.StatusCreated, goal)
}

// updateGoal godoc
// @Summary Edit a savings goal
// @Tags goals
// @Accept json
// @Produce json
// @Param id path string true "Goal ID"
// @Param goal body dto.GoalRequest true "Goal"
// @Success 200 {object} domain.Goal
// @Failure 400 {object} map[string]string "Invalid goal"
// @Failure 404 {object} map[string]string "Goal not found"
// @Security BearerAuth
// @Router /goals/{id} [put]
func (h *goalHandler) updateGoal(c *gin.Context) {
	var req dto.GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	in, err := req.ToInput(c.Param("id"))
	if err != nil {
		respondError(c, err, "Invalid goal")
		return
	}
	goal, err := h.wallet.UpdateGoal(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Failed to update goal")
		return
	}
	c.JSON(http.StatusOK, goal)
}

// deleteGoal godoc
// @Summary Delete a savings goal
// @Tags goals
// @Param id path string true "Goal ID"
// @Success 204
// @Failure 404 {object} map[string]string "Goal not found"
// @Security BearerAuth
// @Router /goals/{id} [delete]
func (h *goalHandler) deleteGoal(c *gin.Context) {
	if err := h.wallet.DeleteGoal(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete goal")
		return
	}
	c.Status(http.StatusNoContent)
}
