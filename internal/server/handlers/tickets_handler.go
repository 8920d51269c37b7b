package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vaychinnakhet-arch/canetrack/internal/repository/mongodb"
	"github.com/vaychinnakhet-arch/canetrack/internal/service/tickets"
)

// TicketHandler handles the weighbridge record HTTP surface.
type TicketHandler struct {
	svc    *tickets.Service
	logger *zap.Logger
}

// NewTicketHandler constructs the HTTP handler adapter.
func NewTicketHandler(svc *tickets.Service, logger *zap.Logger) *TicketHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketHandler{svc: svc, logger: logger}
}

// List returns all tickets in timestamp order.
func (h *TicketHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing tickets", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tickets"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": list, "count": len(list)})
}

// Create stores a candidate ticket coming from the capture workflow.
func (h *TicketHandler) Create(c *gin.Context) {
	var req tickets.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid ticket payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	t, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("failed creating ticket", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create ticket"})
		return
	}

	c.JSON(http.StatusCreated, t)
}

// Update applies field corrections or a moisture reading to a ticket.
func (h *TicketHandler) Update(c *gin.Context) {
	var req tickets.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid ticket update payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	t, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if errors.Is(err, mongodb.ErrTicketNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed updating ticket", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update ticket"})
		return
	}

	c.JSON(http.StatusOK, t)
}

// Delete removes a ticket locally; the mirror row is cleared best-effort.
func (h *TicketHandler) Delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, mongodb.ErrTicketNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed deleting ticket", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete ticket"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

type analyzeRequest struct {
	ImageBase64 string `json:"imageBase64" binding:"required"`
}

// Analyze runs the vision model over a slip photo and returns a candidate
// ticket without storing it.
func (h *TicketHandler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid analyze payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "imageBase64 is required"})
		return
	}

	candidate, err := h.svc.AnalyzeImage(c.Request.Context(), req.ImageBase64)
	if errors.Is(err, tickets.ErrVisionDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "vision model is not configured"})
		return
	}
	if err != nil {
		h.logger.Error("failed analyzing slip image", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to analyze image"})
		return
	}

	c.JSON(http.StatusOK, candidate)
}

// Refresh pulls the spreadsheet mirror and merge-replaces local tickets.
func (h *TicketHandler) Refresh(c *gin.Context) {
	count, err := h.svc.Refresh(c.Request.Context())
	if errors.Is(err, tickets.ErrMirrorDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "spreadsheet mirror is not configured"})
		return
	}
	if err != nil {
		h.logger.Error("failed refreshing from mirror", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch from spreadsheet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"fetched": count})
}
