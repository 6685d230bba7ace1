package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/usa-trezo/en-us/internal/app/dto"
	"github.com/usa-trezo/en-us/internal/app/models"
	"github.com/usa-trezo/en-us/internal/app/services/render"
	"github.com/usa-trezo/en-us/internal/app/services/state"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T, origins ...string) (*gin.Engine, *state.TickerState) {
	f, err := render.NewFormatter("en-US")
	require.NoError(t, err)
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	st := state.New(false)
	ws := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) }
	return NewServer(st, f, ws).Router(origins), st
}

func get(router http.Handler, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func applyBTC(st *state.TickerState, seq uint64, price float64) {
	st.Apply(models.Snapshot{
		Seq: seq,
		Entries: []models.MarketEntry{
			{ID: "bitcoin", Symbol: "btc", CurrentPrice: price, PriceChangePercentage24h: models.Change(1.23)},
			{ID: "ethereum", Symbol: "eth", CurrentPrice: 3400.12, PriceChangePercentage24h: models.Change(-0.5)},
		},
		FetchedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	})
}

func TestPageWhileLoading(t *testing.T) {
	router, _ := newRouter(t)

	w := get(router, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, body, render.LoadingText)
	assert.Contains(t, body, "Trezor Suite: The Future of Crypto Security")
	assert.Contains(t, body, "Ready to Secure Your Digital Assets?")
	assert.Contains(t, body, `href="https://trezor.io/start"`)
	assert.Equal(t, 20, strings.Count(body, `class="bubble"`))
	assert.Equal(t, 9, strings.Count(body, `class="card"`))
	assert.Equal(t, 4, strings.Count(body, `class="step reveal"`))
}

func TestPageShowsTicker(t *testing.T) {
	router, st := newRouter(t)
	applyBTC(st, 1, 65000.5)

	body := get(router, "/", nil).Body.String()
	assert.NotContains(t, body, render.LoadingText)
	assert.Contains(t, body, `<span class="ticker-price">$65,000.5</span>`)
	assert.Contains(t, body, `<span class="ticker-change change-up">1.23%</span>`)
	assert.Contains(t, body, `<span class="ticker-change change-down">-0.50%</span>`)
	assert.Less(t, strings.Index(body, "BTC"), strings.Index(body, "ETH"))
}

func TestTickerETag(t *testing.T) {
	router, st := newRouter(t)
	applyBTC(st, 1, 65000.5)

	first := get(router, "/ticker", nil)
	require.Equal(t, http.StatusOK, first.Code)
	etag := first.Header().Get("ETag")
	require.NotEmpty(t, etag)
	assert.Contains(t, first.Body.String(), "$65,000.5")

	cached := get(router, "/ticker", http.Header{"If-None-Match": {etag}})
	assert.Equal(t, http.StatusNotModified, cached.Code)
	assert.Empty(t, cached.Body.String())

	applyBTC(st, 2, 66000)
	changed := get(router, "/ticker", http.Header{"If-None-Match": {etag}})
	assert.Equal(t, http.StatusOK, changed.Code)
	assert.NotEqual(t, etag, changed.Header().Get("ETag"))
	assert.Contains(t, changed.Body.String(), "$66,000")
}

func TestTickerJSONMatchesFragment(t *testing.T) {
	router, st := newRouter(t)
	applyBTC(st, 1, 65000.5)

	w := get(router, "/api/ticker", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.TickerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint64(1), resp.Version)
	assert.False(t, resp.Loading)
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, "BTC", resp.Entries[0].Symbol)
	assert.Equal(t, "$65,000.5", resp.Entries[0].Price)
	assert.Equal(t, "1.23%", resp.Entries[0].Change)
	assert.Equal(t, "up", resp.Entries[0].Tone)
	assert.Equal(t, 65000.5, resp.Entries[0].CurrentPrice)

	fragment := get(router, "/ticker", nil).Body.String()
	assert.Contains(t, fragment, `data-version="1"`)
	for _, e := range resp.Entries {
		assert.Contains(t, fragment, e.Price)
	}
}

func TestHealth(t *testing.T) {
	router, st := newRouter(t)

	assert.JSONEq(t, `{"status":"ok","loading":true,"version":0}`, get(router, "/health", nil).Body.String())

	applyBTC(st, 1, 1)
	assert.JSONEq(t, `{"status":"ok","loading":false,"version":1}`, get(router, "/health", nil).Body.String())
}

func TestStaticAssets(t *testing.T) {
	router, _ := newRouter(t)

	css := get(router, "/static/site.css", nil)
	require.Equal(t, http.StatusOK, css.Code)
	assert.Contains(t, css.Body.String(), "@keyframes marquee")
	assert.Contains(t, css.Body.String(), "#4ade80")

	js := get(router, "/static/ticker.js", nil)
	require.Equal(t, http.StatusOK, js.Code)
	assert.Contains(t, js.Body.String(), "IntersectionObserver")
}

func TestWebsocketRoute(t *testing.T) {
	router, _ := newRouter(t)
	assert.Equal(t, http.StatusTeapot, get(router, "/ws", nil).Code)
}

func TestCORS(t *testing.T) {
	router, _ := newRouter(t, "https://trezor.io")

	allowed := get(router, "/api/ticker", http.Header{"Origin": {"https://trezor.io"}})
	assert.Equal(t, "https://trezor.io", allowed.Header().Get("Access-Control-Allow-Origin"))

	denied := get(router, "/api/ticker", http.Header{"Origin": {"https://evil.example"}})
	assert.Equal(t, http.StatusForbidden, denied.Code)
}

func TestEtagMatches(t *testing.T) {
	assert.True(t, etagMatches(`"abc"`, `"abc"`))
	assert.True(t, etagMatches(`"x", "abc"`, `"abc"`))
	assert.True(t, etagMatches(`W/"abc"`, `"abc"`))
	assert.True(t, etagMatches(`*`, `"abc"`))
	assert.False(t, etagMatches(``, `"abc"`))
	assert.False(t, etagMatches(`"abd"`, `"abc"`))
}
