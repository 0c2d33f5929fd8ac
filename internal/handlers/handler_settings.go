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

type settingsHandler struct {
	wallet portssvc.WalletSvcFacade
}

// registerSettingsRoutes registers settings, exchange, savings and backup routes.
func registerSettingsRoutes(rg *gin.RouterGroup, wallet portssvc.WalletSvcFacade) {
	h := &settingsHandler{wallet: wallet}

	rg.GET("/settings", h.getSettings)
	rg.PUT("/settings", h.updateSettings)

	rg.GET("/exchange/quote", h.quoteExchange)
	rg.POST("/exchange", h.exchange)
	rg.POST("/savings/transfer", h.transferToSavings)

	rg.GET("/backup", h.backup)
	rg.POST("/restore", h.restore)
}

// getSettings godoc
// @Summary Alert settings and exchange rates
// @Tags settings
// @Produce json
// @Success 200 {object} dto.SettingsResponse
// @Security BearerAuth
// @Router /settings [get]
func (h *settingsHandler) getSettings(c *gin.Context) {
	settings, rates := h.wallet.GetSettings(c.Request.Context())
	c.JSON(http.StatusOK, dto.ToSettingsResponse(settings, rates))
}

// updateSettings godoc
// @Summary Save alert settings and exchange rates
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body dto.SettingsRequest true "Settings"
// @Success 200 {object} dto.SettingsResponse
// @Failure 400 {object} map[string]string "Invalid settings"
// @Security BearerAuth
// @Router /settings [put]
func (h *settingsHandler) updateSettings(c *gin.Context) {
	var req dto.SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	settings, rates, err := req.ToDomain()
	if err != nil {
		respondError(c, err, "Invalid settings")
		return
	}
	if err := h.wallet.UpdateSettings(c.Request.Context(), settings, rates); err != nil {
		respondError(c, err, "Failed to save settings")
		return
	}
	h.getSettings(c)
}

// quoteExchange godoc
// @Summary Preview an exchange
// @Description Suggested rate between two currencies and the amount that would be received
// @Tags exchange
// @Produce json
// @Param amount query string false "Amount to sell"
// @Param from query string true "Currency sold"
// @Param to query string true "Currency bought"
// @Param rate query string false "Rate to use instead of the suggested one"
// @Success 200 {object} dto.ExchangeQuoteResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Security BearerAuth
// @Router /exchange/quote [get]
func (h *settingsHandler) quoteExchange(c *gin.Context) {
	var params dto.ExchangeQuoteParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	amount, from, to, rate, err := params.Parse()
	if err != nil {
		respondError(c, err, "Invalid quote")
		return
	}
	suggested, receive := h.wallet.QuoteExchange(c.Request.Context(), amount, from, to, rate)
	c.JSON(http.StatusOK, dto.ExchangeQuoteResponse{SuggestedRate: suggested, AmountToReceive: receive})
}

// exchange godoc
// @Summary Exchange currencies
// @Description Sells from one safe and receives into another
// @Tags exchange
// @Accept json
// @Param request body dto.ExchangeRequest true "Exchange"
// @Success 204
// @Failure 400 {object} map[string]string "Invalid exchange"
// @Failure 422 {object} map[string]string "Insufficient balance"
// @Security BearerAuth
// @Router /exchange [post]
func (h *settingsHandler) exchange(c *gin.Context) {
	var req dto.ExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		respondError(c, err, "Invalid exchange")
		return
	}
	if err := h.wallet.ExchangeCurrencies(c.Request.Context(), in); err != nil {
		respondError(c, err, "Failed to exchange currencies")
		return
	}
	c.Status(http.StatusNoContent)
}

// transferToSavings godoc
// @Summary Move money into savings
// @Description Transfers from the safe to the bank account and dismisses the savings alert
// @Tags exchange
// @Accept json
// @Param request body dto.SavingsTransferRequest true "Transfer"
// @Success 204
// @Failure 422 {object} map[string]string "Insufficient balance"
// @Security BearerAuth
// @Router /savings/transfer [post]
func (h *settingsHandler) transferToSavings(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req dto.SavingsTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	cur, err := req.ParseCurrency()
	if err != nil {
		respondError(c, err, "Invalid currency")
		return
	}
	if err := h.wallet.TransferToSavings(c.Request.Context(), id, req.Amount, cur); err != nil {
		respondError(c, err, "Failed to transfer to savings")
		return
	}
	c.Status(http.StatusNoContent)
}

// backup godoc
// @Summary Download a backup
// @Description The whole wallet as one JSON document, without the password
// @Tags backup
// @Produce json
// @Success 200 {object} domain.Backup
// @Security BearerAuth
// @Router /backup [get]
func (h *settingsHandler) backup(c *gin.Context) {
	doc, err := h.wallet.Backup(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to build backup")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="smart_wallet_backup.json"`)
	c.JSON(http.StatusOK, doc)
}

// restore godoc
// @Summary Restore a backup
// @Description Replaces all wallet data. Documents missing any field are rejected.
// @Tags backup
// @Accept json
// @Param backup body domain.Backup true "Backup document"
// @Success 204
// @Failure 400 {object} map[string]string "Malformed backup"
// @Security BearerAuth
// @Router /restore [post]
func (h *settingsHandler) restore(c *gin.Context) {
	var doc domain.Backup
	if err := c.ShouldBindJSON(&doc); err != nil {
		bindError(c, err)
		return
	}
	if err := h.wallet.Restore(c.Request.Context(), doc); err != nil {
		respondError(c, err, "Failed to restore backup")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Backup restored", slog.Int("accounts", len(doc.Accounts)))
	c.Status(http.StatusNoContent)
}
