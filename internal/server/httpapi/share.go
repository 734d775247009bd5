package httpapi

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/cardcraft/internal/common"
	"github.com/dmitrijs2005/cardcraft/internal/server/models"
	"github.com/gin-gonic/gin"
)

const cardNotFoundPage = `<!DOCTYPE html>
<html>
<head>
    <title>Card Not Found - CardCraft</title>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body { font-family: -apple-system, sans-serif; display: flex; align-items: center; justify-content: center; min-height: 100vh; margin: 0; background: #FAF9F7; }
        .container { text-align: center; padding: 40px; }
        h1 { color: #1A1A1A; font-size: 2rem; margin-bottom: 1rem; }
        p { color: #666; margin-bottom: 2rem; }
        a { color: #B87333; text-decoration: none; font-weight: 500; }
        a:hover { text-decoration: underline; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Card Not Found</h1>
        <p>This card may have been deleted or the link is incorrect.</p>
        <a href="/">Create your own card</a>
    </div>
</body>
</html>
`

// ServeCard resolves a share link: known cards get a view recorded and a
// redirect into the app, unknown ones a not-found page.
func (h *Handler) ServeCard(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	if _, err := h.cards.Get(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte(cardNotFoundPage))
			return
		}
		h.logger.Error(ctx, "load shared card", "card_id", id, "error", err)
		c.String(http.StatusInternalServerError, "Error loading card")
		return
	}

	if _, err := h.views.Track(ctx, visitorView(c, id, models.ActionView)); err != nil {
		h.logger.Warn(ctx, "track share view", "card_id", id, "error", err)
	}

	c.Redirect(http.StatusFound, "/?view="+url.QueryEscape(id))
}
