package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chavapalmarubin-lab/fidus-analytics/internal/models"
	"github.com/chavapalmarubin-lab/fidus-analytics/internal/repository"
)

type PerformanceHandler struct {
	Repo repository.Repository
}

func (h *PerformanceHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/performance")
	group.GET("/daily", h.listDaily)
	group.GET("/periods", h.listPeriods)
}

// @Summary List stored daily summaries
// @Tags performance
// @Param accounts query string false "comma separated account numbers"
// @Param from query string false "start date YYYY-MM-DD"
// @Param to query string false "end date YYYY-MM-DD (inclusive)"
// @Param limit query int false "page size"
// @Param offset query int false "page offset"
// @Success 200 {object} apiResponse
// @Router /api/v1/performance/daily [get]
func (h *PerformanceHandler) listDaily(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	accounts, err := parseAccounts(c.Query("accounts"))
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	params := repository.ListDailyPerformanceParams{Accounts: accounts}
	if raw := strings.TrimSpace(c.Query("from")); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			Error(c, http.StatusBadRequest, "from must be YYYY-MM-DD", nil)
			return
		}
		params.From = &from
	}
	if raw := strings.TrimSpace(c.Query("to")); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			Error(c, http.StatusBadRequest, "to must be YYYY-MM-DD", nil)
			return
		}
		// Inclusive end date on the wire, exclusive in the query.
		to = to.AddDate(0, 0, 1)
		params.To = &to
	}
	params.Limit, params.Offset = parsePage(c, 200)

	items, err := h.Repo.ListDailyPerformance(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if items == nil {
		items = []models.DailyPerformance{}
	}
	Ok(c, items, map[string]any{"count": len(items)})
}

// @Summary List stored period rollups
// @Tags performance
// @Param type query string false "weekly|monthly"
// @Param account query int false "account number"
// @Param since query string false "earliest period start YYYY-MM-DD"
// @Param limit query int false "page size"
// @Param offset query int false "page offset"
// @Success 200 {object} apiResponse
// @Router /api/v1/performance/periods [get]
func (h *PerformanceHandler) listPeriods(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	params := repository.ListPeriodPerformanceParams{}
	switch periodType := strings.ToLower(strings.TrimSpace(c.Query("type"))); periodType {
	case "", models.PeriodTypeWeekly, models.PeriodTypeMonthly:
		params.PeriodType = periodType
	default:
		Error(c, http.StatusBadRequest, "type must be weekly or monthly", nil)
		return
	}
	if raw := strings.TrimSpace(c.Query("account")); raw != "" {
		account, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || account <= 0 {
			Error(c, http.StatusBadRequest, "invalid account number: "+raw, nil)
			return
		}
		params.Account = &account
	}
	if raw := strings.TrimSpace(c.Query("since")); raw != "" {
		since, err := time.Parse("2006-01-02", raw)
		if err != nil {
			Error(c, http.StatusBadRequest, "since must be YYYY-MM-DD", nil)
			return
		}
		params.Since = &since
	}
	params.Limit, params.Offset = parsePage(c, 100)

	items, err := h.Repo.ListPeriodPerformance(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if items == nil {
		items = []models.PeriodPerformance{}
	}
	Ok(c, items, map[string]any{"count": len(items)})
}

func parsePage(c *gin.Context, defaultLimit int) (limit, offset int) {
	limit = defaultLimit
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if raw := strings.TrimSpace(c.Query("offset")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			offset = parsed
		}
	}
	return limit, offset
}
