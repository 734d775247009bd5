package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// NewRouter mounts every route of h on a fresh gin engine.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), h.requestLogger(), cors())

	api := r.Group("/api")
	api.POST("/generate-wallet-pass", h.GenerateWalletPass)
	api.POST("/save-card", h.SaveCard)
	api.GET("/get-card", h.GetCard)
	api.POST("/update-card", h.UpdateCard)
	api.POST("/save-draft", h.SaveDraft)
	api.GET("/load-draft", h.LoadDraft)
	api.POST("/track-view", h.TrackView)
	api.GET("/get-analytics", h.GetAnalytics)
	api.GET("/cards/:id/pass", h.CardPass)
	api.POST("/cards/:id/pass-link", h.CardPassLink)

	r.GET("/c/:id", h.ServeCard)

	return r
}

// cors answers preflight requests and stamps the permissive CORS headers
// browsers need to call the API from any origin.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		hd := c.Writer.Header()
		hd.Set("Access-Control-Allow-Origin", "*")
		hd.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		hd.Set("Access-Control-Allow-Headers", "Content-Type")
		hd.Set("Access-Control-Expose-Headers", "Content-Disposition, "+headerPassSigned)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// apiError is the JSON body of every failed API call.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// fail aborts with an error body. Server-side failures are logged with
// their cause, which is also echoed to the client.
func (h *Handler) fail(c *gin.Context, status int, msg string, err error) {
	body := apiError{Error: msg}
	if err != nil && status >= http.StatusInternalServerError {
		h.logger.Error(c.Request.Context(), msg, "error", err, "path", c.Request.URL.Path)
		body.Message = err.Error()
	}
	c.AbortWithStatusJSON(status, body)
}
