package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trade-journal/internal/handler"
	"github.com/trade-journal/internal/marketdata/yahoo"
	"github.com/trade-journal/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// envelope mirrors the pkg/response wrapper.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func tradeRouter() *gin.Engine {
	router := gin.New()
	v1 := router.Group("/api/v1")
	// Binding and id parsing reject bad requests before the service runs,
	// so no store is needed behind the handler for these cases.
	handler.NewTradeHandler(service.NewJournalService(nil)).RegisterRoutes(v1)
	return router
}

func TestCreateTradeRejectsMissingRequiredFields(t *testing.T) {
	router := tradeRouter()

	body := `{"direction": "Buy", "volume": 10}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/trades", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, -1, resp.Code)
	assert.Contains(t, resp.Message, "Ticker")
}

func TestCreateTradeRejectsUnknownDirection(t *testing.T) {
	router := tradeRouter()

	body := `{"ticker": "AAPL", "direction": "Hold", "volume": 10,
		"entry_price": 100, "entry_date": "2026-03-02"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/trades", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTradeRejectsNonPositiveVolume(t *testing.T) {
	router := tradeRouter()

	body := `{"ticker": "AAPL", "direction": "Buy", "volume": -5,
		"entry_price": 100, "entry_date": "2026-03-02"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/trades", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetTradeRejectsMalformedID(t *testing.T) {
	router := tradeRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/trades/abc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "invalid trade id", resp.Message)
}

// chartRouter wires the real chart stack against a fake upstream. The redis
// client points at a closed port, so every lookup is a cache miss and the
// handler falls through to the upstream fetch.
func chartRouter(upstream string) *gin.Engine {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	chartService := service.NewChartService(
		yahoo.NewClient(upstream, 5*time.Second), rdb, time.Minute)

	router := gin.New()
	v1 := router.Group("/api/v1")
	handler.NewChartHandler(chartService).RegisterRoutes(v1)
	return router
}

func TestChartEndpointReturnsCandles(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"chart": {
				"result": [{
					"timestamp": [1767312000],
					"indicators": {"quote": [{
						"open": [100], "high": [101], "low": [99],
						"close": [100.5], "volume": [5000]
					}]}
				}],
				"error": null
			}
		}`))
	}))
	defer upstream.Close()

	router := chartRouter(upstream.URL)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/charts/AAPL?start=2026-01-01&end=2026-01-05", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Code)

	var candles []yahoo.Candle
	require.NoError(t, json.Unmarshal(resp.Data, &candles))
	require.Len(t, candles, 1)
	assert.Equal(t, "2026-01-02", candles[0].Date)
	assert.Equal(t, 100.5, candles[0].Close)
}

func TestChartEndpointNoData(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart": {"result": [], "error": null}}`))
	}))
	defer upstream.Close()

	router := chartRouter(upstream.URL)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/charts/NOPE", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChartEndpointUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	router := chartRouter(upstream.URL)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/charts/AAPL", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestChartEndpointRejectsBadDates(t *testing.T) {
	router := chartRouter("http://127.0.0.1:1")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/charts/AAPL?start=January", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
