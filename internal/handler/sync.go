package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chavapalmarubin-lab/fidus-analytics/internal/repository"
	"github.com/chavapalmarubin-lab/fidus-analytics/internal/service"
)

type SyncHandler struct {
	Orchestrator *service.Orchestrator
	Repo         repository.Repository
}

func (h *SyncHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/sync")
	group.POST("/daily", h.runDaily)
	group.GET("/runs", h.listRuns)
}

// runDaily triggers a sync for the given date (default: yesterday). Writes
// are idempotent upserts, so re-running for a date is safe.
//
// @Summary Run the daily sync
// @Tags sync
// @Param date query string false "target date YYYY-MM-DD (default yesterday)"
// @Param account query int false "limit the run to one tracked account"
// @Success 200 {object} apiResponse
// @Router /api/v1/sync/daily [post]
func (h *SyncHandler) runDaily(c *gin.Context) {
	if h.Orchestrator == nil {
		Error(c, http.StatusInternalServerError, "orchestrator unavailable", nil)
		return
	}
	date := time.Now().UTC().AddDate(0, 0, -1)
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			Error(c, http.StatusBadRequest, "date must be YYYY-MM-DD", nil)
			return
		}
		date = parsed
	}
	if raw := strings.TrimSpace(c.Query("account")); raw != "" {
		account, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || account <= 0 {
			Error(c, http.StatusBadRequest, "invalid account number: "+raw, nil)
			return
		}
		result, err := h.Orchestrator.RunAccountSync(c.Request.Context(), account, date)
		if err != nil {
			Error(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		Ok(c, result, nil)
		return
	}
	result, err := h.Orchestrator.RunDailySync(c.Request.Context(), date)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, result, nil)
}

// @Summary List recent sync runs
// @Tags sync
// @Param limit query int false "max rows (default 30)"
// @Success 200 {object} apiResponse
// @Router /api/v1/sync/runs [get]
func (h *SyncHandler) listRuns(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	limit := 30
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			Error(c, http.StatusBadRequest, "limit must be a positive integer", nil)
			return
		}
		limit = parsed
	}
	runs, err := h.Repo.ListSyncRuns(c.Request.Context(), limit)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, runs, map[string]any{"count": len(runs)})
}
