package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chavapalmarubin-lab/fidus-analytics/internal/service"
)

type AnalyticsHandler struct {
	Query *service.AnalyticsQueryService
}

func (h *AnalyticsHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/analytics")
	group.GET("/overview", h.overview)
}

// @Summary Aggregate overview for a set of accounts
// @Tags analytics
// @Param accounts query string false "comma separated account numbers"
// @Param days query int false "trailing window in days (default 30)"
// @Success 200 {object} apiResponse
// @Router /api/v1/analytics/overview [get]
func (h *AnalyticsHandler) overview(c *gin.Context) {
	if h.Query == nil {
		Error(c, http.StatusInternalServerError, "analytics service unavailable", nil)
		return
	}
	accounts, err := parseAccounts(c.Query("accounts"))
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	days := 30
	if raw := strings.TrimSpace(c.Query("days")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			Error(c, http.StatusBadRequest, "days must be a positive integer", nil)
			return
		}
		days = parsed
	}
	overview, err := h.Query.GetAnalyticsOverview(c.Request.Context(), accounts, days)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, overview, nil)
}

func parseAccounts(raw string) ([]int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		account, err := strconv.ParseInt(part, 10, 64)
		if err != nil || account <= 0 {
			return nil, fmt.Errorf("invalid account number: %s", part)
		}
		out = append(out, account)
	}
	return out, nil
}
