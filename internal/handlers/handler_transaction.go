package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/smart_wallet/internal/core/domain"
	portssvc "github.com/SscSPs/smart_wallet/internal/core/ports/services"
	"github.com/SscSPs/smart_wallet/internal/dto"
	"github.com/SscSPs/smart_wallet/internal/middleware"
	"github.com/gin-gonic/gin"
)

type transactionHandler struct {
	wallet portssvc.WalletSvcFacade
}

// registerTransactionRoutes registers transaction and debt routes.
func registerTransactionRoutes(rg *gin.RouterGroup, wallet portssvc.WalletSvcFacade) {
	h := &transactionHandler{wallet: wallet}

	txns := rg.Group("/transactions")
	{
		txns.GET("", h.listByType)
		txns.POST("", h.createTransaction)
		txns.PUT("/:id", h.updateTransaction)
		txns.DELETE("/:id", h.deleteTransaction)
	}

	debts := rg.Group("/debts")
	{
		debts.GET("", h.listDebts)
		debts.POST("/:id/settle", h.settleDebt)
	}
}

// listByType godoc
// @Summary List transactions of one type across accounts
// @Description Transfer legs are left out
// @Tags transactions
// @Produce json
// @Param type query string true "INCOME, EXPENSE, LIABILITY or RECEIVABLE"
// @Success 200 {array} domain.LocatedTransaction
// @Failure 400 {object} map[string]string "Invalid type"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listByType(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	txns, err := h.wallet.ListByType(c.Request.Context(), id, domain.TransactionType(c.Query("type")))
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, txns)
}

// createTransaction godoc
// @Summary Record a transaction
// @Description Records an income, expense, debt or transfer. The ledger picks the target accounts.
// @Tags transactions
// @Accept json
// @Param transaction body dto.TransactionRequest true "Transaction"
// @Success 201
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Insufficient balance"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	h.upsert(c, "", http.StatusCreated)
}

// updateTransaction godoc
// @Summary Edit a transaction
// @Description Edits a record together with the records linked to it
// @Tags transactions
// @Accept json
// @Param id path string true "Transaction ID"
// @Param transaction body dto.TransactionRequest true "Transaction"
// @Success 204
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 422 {object} map[string]string "Insufficient balance"
// @Security BearerAuth
// @Router /transactions/{id} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	h.upsert(c, c.Param("id"), http.StatusNoContent)
}

func (h *transactionHandler) upsert(c *gin.Context, id string, status int) {
	var req dto.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	in, err := req.ToInput(id)
	if err != nil {
		respondError(c, err, "Invalid transaction")
		return
	}
	if err := h.wallet.UpsertTransaction(c.Request.Context(), in); err != nil {
		respondError(c, err, "Failed to save transaction")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Transaction saved",
		slog.String("type", string(in.Type)), slog.String("transaction_id", id))
	c.Status(status)
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Deletes a record with its linked records. Deleting a debt removes its settlements.
// @Tags transactions
// @Param id path string true "Transaction ID"
// @Success 204
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	if err := h.wallet.DeleteTransaction(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete transaction")
		return
	}
	c.Status(http.StatusNoContent)
}

// listDebts godoc
// @Summary List debts
// @Description Every primary debt with its settled and remaining amounts
// @Tags debts
// @Produce json
// @Success 200 {array} domain.DebtStatus
// @Security BearerAuth
// @Router /debts [get]
func (h *transactionHandler) listDebts(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	debts, err := h.wallet.ListDebts(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to list debts")
		return
	}
	c.JSON(http.StatusOK, debts)
}

// settleDebt godoc
// @Summary Settle a debt
// @Description Pays down a liability from, or collects a receivable into, a cash account
// @Tags debts
// @Accept json
// @Param id path string true "Debt transaction ID"
// @Param request body dto.SettleDebtRequest true "Settlement"
// @Success 204
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 404 {object} map[string]string "Debt not found"
// @Failure 422 {object} map[string]string "Insufficient balance"
// @Security BearerAuth
// @Router /debts/{id}/settle [post]
func (h *transactionHandler) settleDebt(c *gin.Context) {
	var req dto.SettleDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.wallet.SettleDebt(c.Request.Context(), c.Param("id"), req.AmountPaid, req.TargetAccountID); err != nil {
		respondError(c, err, "Failed to settle debt")
		return
	}
	c.Status(http.StatusNoContent)
}
