package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/chavapalmarubin-lab/fidus-analytics/internal/models"
	"github.com/chavapalmarubin-lab/fidus-analytics/internal/repository"
)

// AccountHandler exposes the fund allocation records. The surrounding
// investment system pushes balance and P&L updates here; the analytics side
// only reads them.
type AccountHandler struct {
	Repo      repository.Repository
	FundCodes []string
}

func (h *AccountHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/accounts")
	group.GET("", h.list)
	group.PUT("/:id", h.upsert)
}

// @Summary List fund allocation records
// @Tags accounts
// @Param fund query string false "fund code filter"
// @Success 200 {object} apiResponse
// @Router /api/v1/accounts [get]
func (h *AccountHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	var (
		items []models.Account
		err   error
	)
	if fund := strings.ToUpper(strings.TrimSpace(c.Query("fund"))); fund != "" {
		items, err = h.Repo.ListAccountsByFund(c.Request.Context(), fund)
	} else {
		items, err = h.Repo.ListAccounts(c.Request.Context())
	}
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if items == nil {
		items = []models.Account{}
	}
	Ok(c, items, map[string]any{"count": len(items)})
}

type accountUpsertRequest struct {
	FundCode          string          `json:"fund_code" binding:"required"`
	Balance           decimal.Decimal `json:"balance"`
	Equity            decimal.Decimal `json:"equity"`
	TruePnL           decimal.Decimal `json:"true_pnl"`
	ProfitWithdrawals decimal.Decimal `json:"profit_withdrawals"`
	ManagerName       string          `json:"manager_name"`
	Broker            string          `json:"broker"`
}

// @Summary Upsert a fund allocation record
// @Tags accounts
// @Param id path int true "account id"
// @Param body body accountUpsertRequest true "allocation fields"
// @Success 200 {object} apiResponse
// @Router /api/v1/accounts/{id} [put]
func (h *AccountHandler) upsert(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	accountID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || accountID <= 0 {
		Error(c, http.StatusBadRequest, "invalid account id", nil)
		return
	}
	var req accountUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	fund := strings.ToUpper(strings.TrimSpace(req.FundCode))
	if !h.knownFund(fund) {
		Error(c, http.StatusBadRequest, "unknown fund code: "+req.FundCode, nil)
		return
	}
	item := &models.Account{
		AccountID:         accountID,
		FundCode:          fund,
		Balance:           req.Balance,
		Equity:            req.Equity,
		TruePnL:           req.TruePnL,
		ProfitWithdrawals: req.ProfitWithdrawals,
		ManagerName:       req.ManagerName,
		Broker:            req.Broker,
	}
	if err := h.Repo.UpsertAccount(c.Request.Context(), item); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, item, nil)
}

func (h *AccountHandler) knownFund(code string) bool {
	codes := h.FundCodes
	if len(codes) == 0 {
		codes = []string{models.FundCore, models.FundBalance, models.FundDynamic, models.FundUnlimited}
	}
	for _, known := range codes {
		if strings.EqualFold(known, code) {
			return true
		}
	}
	return false
}
