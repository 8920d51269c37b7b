package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vaychinnakhet-arch/canetrack/internal/config"
	"github.com/vaychinnakhet-arch/canetrack/internal/domain/models"
	"github.com/vaychinnakhet-arch/canetrack/internal/refdata"
	"github.com/vaychinnakhet-arch/canetrack/internal/service/forecast"
	"github.com/vaychinnakhet-arch/canetrack/internal/service/quota"
	"github.com/vaychinnakhet-arch/canetrack/internal/service/reporting"
	"github.com/vaychinnakhet-arch/canetrack/internal/service/tickets"
	"github.com/vaychinnakhet-arch/canetrack/internal/thaidate"
)

// AnalyticsHandler serves progress, forecast, reporting and reference-data
// endpoints.
type AnalyticsHandler struct {
	tickets *tickets.Service
	quota   *quota.Service
	season  config.SeasonConfig
	logger  *zap.Logger
}

// NewAnalyticsHandler constructs the HTTP handler adapter.
func NewAnalyticsHandler(ticketSvc *tickets.Service, quotaSvc *quota.Service, season config.SeasonConfig, logger *zap.Logger) *AnalyticsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsHandler{tickets: ticketSvc, quota: quotaSvc, season: season, logger: logger}
}

// Summary is the dashboard payload: active round progress, lifetime totals
// and today's trip count.
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	ctx := c.Request.Context()

	progress, settings, err := h.quota.CurrentProgress(ctx)
	if err != nil {
		h.logger.Error("failed computing progress", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute progress"})
		return
	}

	list, err := h.tickets.List(ctx)
	if err != nil {
		h.logger.Error("failed listing tickets", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tickets"})
		return
	}

	today := thaidate.FormatDisplayDate(time.Now())
	tripsToday := 0
	for _, t := range list {
		if t.Date == today {
			tripsToday++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"progress":     progress,
		"targetTons":   settings.TargetTons,
		"currentRound": quota.CurrentRound(settings),
		"history":      settings.History,
		"lifetimeTons": quota.AchievedTons(list),
		"totalTickets": len(list),
		"tripsToday":   tripsToday,
	})
}

// GetQuota returns the current goal settings.
func (h *AnalyticsHandler) GetQuota(c *gin.Context) {
	settings, err := h.quota.Settings(c.Request.Context())
	if err != nil {
		h.logger.Error("failed loading quota settings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

type targetRequest struct {
	TargetTons float64 `json:"targetTons" binding:"required"`
}

// UpdateQuota changes the active round's target.
func (h *AnalyticsHandler) UpdateQuota(c *gin.Context) {
	var req targetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "targetTons is required"})
		return
	}

	settings, err := h.quota.UpdateTarget(c.Request.Context(), req.TargetTons)
	if errors.Is(err, quota.ErrInvalidTarget) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target tonnage must be greater than zero"})
		return
	}
	if err != nil {
		h.logger.Error("failed updating target", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// NextRound closes the achieved round and opens the next one. Irreversible;
// the client confirms with the user before calling.
func (h *AnalyticsHandler) NextRound(c *gin.Context) {
	var req targetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "targetTons is required"})
		return
	}

	settings, err := h.quota.StartNextRound(c.Request.Context(), req.TargetTons)
	switch {
	case errors.Is(err, quota.ErrInvalidTarget):
		c.JSON(http.StatusBadRequest, gin.H{"error": "target tonnage must be greater than zero"})
		return
	case errors.Is(err, quota.ErrGoalNotReached):
		c.JSON(http.StatusConflict, gin.H{"error": "current goal has not been reached yet"})
		return
	case err != nil:
		h.logger.Error("failed starting next round", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start next round"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// Forecast projects production to the season end date. With ?lucky=1 the
// good/bad day calendar scales the daily rate.
func (h *AnalyticsHandler) Forecast(c *gin.Context) {
	list, err := h.tickets.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing tickets", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tickets"})
		return
	}

	// Forecast precondition: no history, no projection.
	if len(list) == 0 {
		c.JSON(http.StatusOK, gin.H{"hasData": false})
		return
	}

	today := time.Now()
	endDate := time.Date(today.Year(), time.Month(h.season.EndMonth), h.season.EndDay, 0, 0, 0, 0, today.Location())

	in := forecast.Input{
		Stats:    forecast.HistoricalStats(list),
		Today:    today,
		EndDate:  endDate,
		Holidays: refdata.HolidaySet(),
	}
	if c.Query("lucky") == "1" {
		in.DayRates = forecast.DayRates(refdata.LuckyEvents(), forecast.DefaultMultipliers())
	}

	c.JSON(http.StatusOK, gin.H{
		"hasData":  true,
		"stats":    in.Stats,
		"forecast": forecast.Project(in),
		"endDate":  thaidate.FormatDisplayDate(endDate),
	})
}

// DailyReport groups tickets per calendar day.
func (h *AnalyticsHandler) DailyReport(c *gin.Context) {
	h.report(c, reporting.GroupByDay)
}

// MonthlyReport groups tickets per calendar month.
func (h *AnalyticsHandler) MonthlyReport(c *gin.Context) {
	h.report(c, reporting.GroupByMonth)
}

func (h *AnalyticsHandler) report(c *gin.Context, group func([]models.CaneTicket) map[string]reporting.Bucket) {
	list, err := h.tickets.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing tickets", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tickets"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"buckets": group(list)})
}

// Series returns the cumulative chart series.
func (h *AnalyticsHandler) Series(c *gin.Context) {
	list, err := h.tickets.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing tickets", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tickets"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": reporting.CumulativeSeries(list)})
}

// ExportCSV streams all tickets as a CSV download.
func (h *AnalyticsHandler) ExportCSV(c *gin.Context) {
	list, err := h.tickets.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing tickets", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tickets"})
		return
	}

	var buf bytes.Buffer
	if err := reporting.ExportCSV(&buf, list); err != nil {
		h.logger.Error("failed writing csv", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export csv"})
		return
	}

	filename := fmt.Sprintf("cane_tracking_export_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// LuckyDays serves the seasonal good/bad day calendar grouped by month.
func (h *AnalyticsHandler) LuckyDays(c *gin.Context) {
	events := refdata.LuckyEvents()
	byMonth := make(map[int][]models.LuckyEvent)
	for _, e := range events {
		byMonth[e.Month] = append(byMonth[e.Month], e)
	}
	c.JSON(http.StatusOK, gin.H{"events": events, "byMonth": byMonth})
}
