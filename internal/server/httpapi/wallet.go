package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/cardcraft/internal/common"
	cm "github.com/dmitrijs2005/cardcraft/internal/models"
	"github.com/dmitrijs2005/cardcraft/internal/pkpass"
	"github.com/dmitrijs2005/cardcraft/internal/server/services"
	"github.com/dmitrijs2005/cardcraft/internal/vcard"
	"github.com/gin-gonic/gin"
)

// headerPassSigned tells clients whether a .pkpass carries a signature.
const headerPassSigned = "X-Pass-Signed"

type generatePassRequest struct {
	Type     string       `json:"type"`
	CardData *cm.CardData `json:"cardData"`
	CardURL  string       `json:"cardUrl"`
}

// GenerateWalletPass renders a card as an Apple pass, a Google Wallet save
// link or a vCard, depending on the requested type.
func (h *Handler) GenerateWalletPass(c *gin.Context) {
	var req generatePassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if req.CardData == nil {
		h.fail(c, http.StatusBadRequest, "Missing cardData", nil)
		return
	}

	kind, err := services.ParsePassType(req.Type)
	if err != nil {
		h.fail(c, http.StatusBadRequest, "Invalid type", nil)
		return
	}

	card := *req.CardData
	url := h.passes.CardURL(req.CardURL)

	switch kind {
	case services.PassTypeApple:
		p, err := h.passes.Apple(card, url)
		if err != nil {
			h.fail(c, http.StatusInternalServerError, "Failed to generate pass", err)
			return
		}
		h.sendPass(c, card, p)

	case services.PassTypeGoogle:
		g, err := h.passes.Google(card, url)
		if err != nil {
			h.fail(c, http.StatusInternalServerError, "Failed to generate pass", err)
			return
		}
		if !g.Signed {
			h.logger.Debug(c.Request.Context(), "google save link is unsigned")
		}
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"passObject": g.Object,
			"saveUrl":    g.SaveURL,
			"vcard":      g.VCard,
		})

	case services.PassTypeVCard:
		attachment(c, card.FileStem("contact")+".vcf")
		c.Data(http.StatusOK, vcard.ContentType, []byte(h.passes.VCard(card)))

	default:
		h.fail(c, http.StatusBadRequest, "Invalid type", nil)
	}
}

// CardPass builds an Apple pass for a stored card, linking to its share URL.
func (h *Handler) CardPass(c *gin.Context) {
	id := c.Param("id")
	card, ok := h.loadCardData(c, id)
	if !ok {
		return
	}

	p, err := h.passes.Apple(card, h.cards.ShareURL(id))
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "Failed to generate pass", err)
		return
	}
	h.sendPass(c, card, p)
}

// CardPassLink builds an Apple pass for a stored card, archives it and
// returns a presigned download link.
func (h *Handler) CardPassLink(c *gin.Context) {
	id := c.Param("id")
	card, ok := h.loadCardData(c, id)
	if !ok {
		return
	}

	p, err := h.passes.Apple(card, h.cards.ShareURL(id))
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "Failed to generate pass", err)
		return
	}

	link, err := h.passes.Archive(c.Request.Context(), id, p)
	if err != nil {
		if errors.Is(err, common.ErrorStorageNotConfigured) {
			h.fail(c, http.StatusInternalServerError, "Storage not configured", err)
			return
		}
		h.fail(c, http.StatusInternalServerError, "Failed to store pass", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"url":       link.URL,
		"expiresIn": int64(link.ExpiresIn.Seconds()),
	})
}

func (h *Handler) loadCardData(c *gin.Context, id string) (cm.CardData, bool) {
	stored, err := h.cards.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			h.fail(c, http.StatusNotFound, "Card not found", nil)
			return cm.CardData{}, false
		}
		h.fail(c, http.StatusInternalServerError, "Failed to get card", err)
		return cm.CardData{}, false
	}

	card, err := services.CardData(stored)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "Failed to get card", err)
		return cm.CardData{}, false
	}
	return card, true
}

func (h *Handler) sendPass(c *gin.Context, card cm.CardData, p *pkpass.Pass) {
	attachment(c, card.FileStem("card")+".pkpass")
	c.Header(headerPassSigned, strconv.FormatBool(p.Signed))
	c.Data(http.StatusOK, pkpass.ContentType, p.Data)
}

func attachment(c *gin.Context, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}
