package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/cardcraft/internal/server/models"
	"github.com/gin-gonic/gin"
)

// Visitor headers set by the edge proxy.
const (
	headerCountry = "CF-IPCountry"
	headerCity    = "CF-IPCity"
)

type trackViewRequest struct {
	CardID string `json:"cardId"`
	Action string `json:"action"`
}

// TrackView records one interaction with a card and returns the card's
// running event count.
func (h *Handler) TrackView(c *gin.Context) {
	var req trackViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if req.CardID == "" {
		h.fail(c, http.StatusBadRequest, "Card ID required", nil)
		return
	}

	view := visitorView(c, req.CardID, req.Action)
	n, err := h.views.Track(c.Request.Context(), view)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "Failed to track view", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "views": n})
}

func (h *Handler) GetAnalytics(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		h.fail(c, http.StatusBadRequest, "Card ID required", nil)
		return
	}

	a, err := h.views.Summary(c.Request.Context(), id)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "Failed to get analytics", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "analytics": a})
}

// visitorView describes the requesting visitor. Empty fields are filled
// with defaults by the tracker.
func visitorView(c *gin.Context, cardID, action string) *models.View {
	return &models.View{
		CardID:   cardID,
		Action:   action,
		Country:  c.GetHeader(headerCountry),
		City:     c.GetHeader(headerCity),
		Device:   c.GetHeader("User-Agent"),
		Referrer: c.GetHeader("Referer"),
	}
}
