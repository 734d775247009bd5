package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/cardcraft/internal/common"
	"github.com/dmitrijs2005/cardcraft/internal/server/services"
	"github.com/gin-gonic/gin"
)

// timeFormat matches JavaScript's Date.toISOString.
const timeFormat = "2006-01-02T15:04:05.000Z07:00"

type saveDraftRequest struct {
	DraftID  string          `json:"draftId"`
	CardData json.RawMessage `json:"cardData"`
}

func (h *Handler) SaveDraft(c *gin.Context) {
	var req saveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if len(req.CardData) == 0 || bytes.Equal(req.CardData, []byte("null")) {
		h.fail(c, http.StatusBadRequest, "Missing card data", nil)
		return
	}

	d, err := h.drafts.Save(c.Request.Context(), req.DraftID, req.CardData)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			h.fail(c, http.StatusBadRequest, "Missing card data", nil)
			return
		}
		h.fail(c, http.StatusInternalServerError, "Failed to save draft", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"draftId": d.ID,
		"savedAt": d.SavedAt.UTC().Format(timeFormat),
		"version": d.Version,
		"message": "Draft saved successfully",
	})
}

func (h *Handler) LoadDraft(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		h.fail(c, http.StatusBadRequest, "Missing draft ID", nil)
		return
	}

	d, err := h.drafts.Load(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, apiError{
				Error:   "Draft not found",
				Message: "This draft may have expired or does not exist",
			})
			return
		}
		h.fail(c, http.StatusInternalServerError, "Failed to load draft", err)
		return
	}

	doc, err := services.DraftDocument(d)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "Failed to load draft", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"draft":   doc,
		"message": "Draft loaded successfully",
	})
}
