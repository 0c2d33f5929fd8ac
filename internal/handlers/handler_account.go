package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	csvexport "github.com/SscSPs/smart_wallet/internal/adapters/export/csv"
	portssvc "github.com/SscSPs/smart_wallet/internal/core/ports/services"
	"github.com/SscSPs/smart_wallet/internal/dto"
	"github.com/SscSPs/smart_wallet/internal/middleware"
	"github.com/gin-gonic/gin"
)

const defaultPageSize = 50

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	wallet portssvc.WalletReaderSvc
	export portssvc.ExportSvc
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, wallet portssvc.WalletReaderSvc, export portssvc.ExportSvc) {
	h := &accountHandler{wallet: wallet, export: export}

	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.GET("/:id/transactions", h.listTransactions)
		accounts.GET("/:id/statement.csv", h.downloadStatement)
		accounts.POST("/:id/export", h.exportStatement)
	}
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists every account with its balance
// @Tags accounts
// @Produce json
// @Success 200 {array} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	accounts, err := h.wallet.ListAccounts(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	account, err := h.wallet.GetAccount(c.Request.Context(), id, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listTransactions godoc
// @Summary List the transactions of an account
// @Description Newest first, filtered and paged with an opaque token
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Param type query string false "Transaction type"
// @Param q query string false "Description search"
// @Param startDate query string false "First day (YYYY-MM-DD)"
// @Param endDate query string false "Last day (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(50)
// @Param pageToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{id}/transactions [get]
func (h *accountHandler) listTransactions(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	filter, err := params.ToFilter()
	if err != nil {
		respondError(c, err, "Invalid filter")
		return
	}
	limit := params.Limit
	if limit == 0 {
		limit = defaultPageSize
	}

	txns, next, err := h.wallet.ListTransactions(c.Request.Context(), id, c.Param("id"), filter, limit, params.PageToken)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ListTransactionsResponse{Transactions: txns, NextPageToken: next})
}

// downloadStatement godoc
// @Summary Download a statement
// @Description The filtered transactions of an account as a CSV file
// @Tags accounts
// @Produce text/csv
// @Param id path string true "Account ID"
// @Param type query string false "Transaction type"
// @Param q query string false "Description search"
// @Param startDate query string false "First day (YYYY-MM-DD)"
// @Param endDate query string false "Last day (YYYY-MM-DD)"
// @Success 200 {file} file
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{id}/statement.csv [get]
func (h *accountHandler) downloadStatement(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	filter, err := params.ToFilter()
	if err != nil {
		respondError(c, err, "Invalid filter")
		return
	}
	stmt, err := h.wallet.BuildStatement(c.Request.Context(), id, c.Param("id"), filter)
	if err != nil {
		respondError(c, err, "Failed to build statement")
		return
	}

	name := csvexport.FileName(stmt, time.Now())
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(name))
	c.Status(http.StatusOK)
	if err := csvexport.Write(c.Writer, stmt); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to write statement", slog.String("error", err.Error()))
	}
}

// exportStatement godoc
// @Summary Export a statement to Google Sheets
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Param type query string false "Transaction type"
// @Param q query string false "Description search"
// @Param startDate query string false "First day (YYYY-MM-DD)"
// @Param endDate query string false "Last day (YYYY-MM-DD)"
// @Success 201 {object} dto.ExportResponse
// @Failure 404 {object} map[string]string "Account not found or export not configured"
// @Security BearerAuth
// @Router /accounts/{id}/export [post]
func (h *accountHandler) exportStatement(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	filter, err := params.ToFilter()
	if err != nil {
		respondError(c, err, "Invalid filter")
		return
	}
	ref, err := h.export.ExportStatement(c.Request.Context(), id, c.Param("id"), filter)
	if err != nil {
		respondError(c, err, "Failed to export statement")
		return
	}
	c.JSON(http.StatusCreated, dto.ExportResponse{Reference: ref})
}
