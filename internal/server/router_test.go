package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "folio/internal/errors"
	"folio/internal/portfolio"
	"folio/internal/services"
	"folio/internal/testutil"
	"folio/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func newTestRouter(t *testing.T, apiKey string) *gin.Engine {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	marketData := services.NewMarketDataService(db, nil)
	return NewRouter(Deps{
		DB:                db,
		MarketDataService: marketData,
		PortfolioService:  services.NewPortfolioService(marketData, portfolio.NewAggregator()),
		PipelineAPIKey:    apiKey,
	})
}

func serve(r *gin.Engine, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, "")

	rec := serve(r, http.MethodGet, "/api/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestPipelineRoutesRequireAPIKey(t *testing.T) {
	body := `{"stocks":[{"symbol":"TCS","company_name":"TCS","exchange":"NSE","cmp":10,"recorded_at":"2026-04-01T10:00:00Z"}]}`

	t.Run("not_configured", func(t *testing.T) {
		r := newTestRouter(t, "")
		rec := serve(r, http.MethodPost, "/api/v1/pipeline/stocks", body, map[string]string{"X-API-Key": "anything"})
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("wrong_key", func(t *testing.T) {
		r := newTestRouter(t, "feed-key")
		rec := serve(r, http.MethodPost, "/api/v1/pipeline/stocks", body, map[string]string{"X-API-Key": "nope"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid_key", func(t *testing.T) {
		r := newTestRouter(t, "feed-key")
		rec := serve(r, http.MethodPost, "/api/v1/pipeline/stocks", body, map[string]string{"X-API-Key": "feed-key"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.JSONEq(t, `{"snapshots_recorded":1}`, rec.Body.String())
	})
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(t, "")

	rec := serve(r, http.MethodOptions, "/api/v1/portfolio/aggregate", "", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(t, "")

	rec := serve(r, http.MethodGet, "/api/v1/bonds", "", nil)

	assert.Equal(t, apperrors.ErrNotFound.StatusCode, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"NOT_FOUND","message":"Resource not found"}}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
