package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/cardcraft/internal/common"
	"github.com/dmitrijs2005/cardcraft/internal/server/services"
	"github.com/gin-gonic/gin"
)

// SaveCard stores the request body as a card and returns its share URL.
func (h *Handler) SaveCard(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.fail(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	card, err := h.cards.Save(c.Request.Context(), body)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			h.fail(c, http.StatusBadRequest, "Invalid card data", nil)
			return
		}
		h.fail(c, http.StatusInternalServerError, "Failed to save card", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"cardId":  card.ID,
		"url":     h.cards.ShareURL(card.ID),
	})
}

// GetCard returns the stored card named by the id query parameter.
func (h *Handler) GetCard(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		h.fail(c, http.StatusBadRequest, "Card ID required", nil)
		return
	}

	card, err := h.cards.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			h.fail(c, http.StatusNotFound, "Card not found", nil)
			return
		}
		h.fail(c, http.StatusInternalServerError, "Failed to get card", err)
		return
	}

	doc, err := services.CardDocument(card)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "Failed to get card", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "card": doc})
}

type updateCardRequest struct {
	CardID   string          `json:"cardId"`
	CardData json.RawMessage `json:"cardData"`
}

// UpdateCard replaces the data of an existing card.
func (h *Handler) UpdateCard(c *gin.Context) {
	var req updateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if req.CardID == "" || len(req.CardData) == 0 {
		h.fail(c, http.StatusBadRequest, "Missing required fields", nil)
		return
	}

	card, err := h.cards.Update(c.Request.Context(), req.CardID, req.CardData)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			h.fail(c, http.StatusBadRequest, "Missing required fields", nil)
		case errors.Is(err, common.ErrorNotFound):
			h.fail(c, http.StatusNotFound, "Card not found", nil)
		default:
			h.fail(c, http.StatusInternalServerError, "Failed to update card", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"cardId":       card.ID,
		"permanentUrl": h.cards.ShareURL(card.ID),
		"updatedAt":    card.UpdatedAt.UTC().Format(timeFormat),
		"version":      card.Version,
	})
}
