package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chavapalmarubin-lab/fidus-analytics/internal/service"
)

type FundHandler struct {
	Funds *service.FundPerformanceService
}

func (h *FundHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/funds")
	group.GET("/performance", h.allFunds)
	group.GET("/:code/performance", h.fund)
}

// @Summary Weighted performance for one fund
// @Tags funds
// @Param code path string true "fund code"
// @Success 200 {object} apiResponse
// @Router /api/v1/funds/{code}/performance [get]
func (h *FundHandler) fund(c *gin.Context) {
	if h.Funds == nil {
		Error(c, http.StatusInternalServerError, "fund service unavailable", nil)
		return
	}
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))
	if code == "" {
		Error(c, http.StatusBadRequest, "fund code is required", nil)
		return
	}
	result, err := h.Funds.CalculateFundWeightedPerformance(c.Request.Context(), code)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, result, nil)
}

// @Summary Portfolio performance across all funds
// @Tags funds
// @Success 200 {object} apiResponse
// @Router /api/v1/funds/performance [get]
func (h *FundHandler) allFunds(c *gin.Context) {
	if h.Funds == nil {
		Error(c, http.StatusInternalServerError, "fund service unavailable", nil)
		return
	}
	result, err := h.Funds.GetAllFundsPerformance(c.Request.Context())
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, result, nil)
}
