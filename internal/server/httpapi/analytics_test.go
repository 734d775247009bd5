package httpapi

import (
	"net/http"
	"testing"

	"github.com/dmitrijs2005/cardcraft/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackView(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/track-view", map[string]any{"cardId": "abc", "action": "email_click"},
		"CF-IPCountry", "LV",
		"CF-IPCity", "Riga",
		"User-Agent", "test-agent",
		"Referer", "https://ref.example",
	)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["views"])
	require.Len(t, f.views.tracked, 1)
	v := f.views.tracked[0]
	assert.Equal(t, "abc", v.CardID)
	assert.Equal(t, "email_click", v.Action)
	assert.Equal(t, "LV", v.Country)
	assert.Equal(t, "Riga", v.City)
	assert.Equal(t, "test-agent", v.Device)
	assert.Equal(t, "https://ref.example", v.Referrer)
}

func TestTrackView_Errors(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/track-view", map[string]any{"action": "view"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Card ID required", decode(t, w)["error"])

	f.views.err = errBoom
	w = f.do(http.MethodPost, "/api/track-view", map[string]any{"cardId": "abc"})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to track view", decode(t, w)["error"])
}

func TestGetAnalytics(t *testing.T) {
	f := newFixture(t)
	f.views.summary = &services.Analytics{
		TotalViews: 3,
		Countries:  map[string]int64{"LV": 3},
		Actions:    map[string]int64{"view": 3},
		DailyViews: map[string]int64{"2025-04-05": 3},
	}

	w := f.do(http.MethodGet, "/api/get-analytics?id=abc", nil)

	require.Equal(t, http.StatusOK, w.Code)
	a := decode(t, w)["analytics"].(map[string]any)
	assert.Equal(t, float64(3), a["totalViews"])
	assert.Equal(t, map[string]any{"LV": float64(3)}, a["countries"])

	w = f.do(http.MethodGet, "/api/get-analytics", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	f.views.err = errBoom
	w = f.do(http.MethodGet, "/api/get-analytics?id=abc", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
