package integration

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"folio/internal/logger"
	"folio/internal/portfolio"
	"folio/internal/server"
	"folio/internal/services"
	"folio/internal/testutil"
	"folio/internal/validator"
)

const testPipelineKey = "integration-pipeline-key"

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB         *gorm.DB
	Router     *gin.Engine
	MarketData services.MarketDataServicer
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test", "error")
	validator.Register()
}

// setupApp creates a full application stack backed by an isolated in-memory
// SQLite. A nil taxonomy accepts every sector and exchange.
func setupApp(t *testing.T, taxonomy *portfolio.Taxonomy) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	marketData := services.NewMarketDataService(db, taxonomy)
	aggregator := portfolio.NewAggregator(portfolio.WithTaxonomy(taxonomy))
	portfolioService := services.NewPortfolioService(marketData, aggregator)

	router := server.NewRouter(server.Deps{
		DB:                db,
		MarketDataService: marketData,
		PortfolioService:  portfolioService,
		PipelineAPIKey:    testPipelineKey,
	})

	return &testApp{DB: db, Router: router, MarketData: marketData}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// pipelineRequest makes an HTTP request authenticated with the pipeline API key.
func (app *testApp) pipelineRequest(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", testPipelineKey)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// snapshotJSON renders one price feed entry.
func snapshotJSON(symbol, sector string, cmp, pe float64, at time.Time) string {
	return fmt.Sprintf(`{"symbol":%q,"company_name":%q,"exchange":"NSE","sector":%q,"cmp":%v,"pe_ratio":%v,"recorded_at":%q}`,
		symbol, symbol+" Ltd", sector, cmp, pe, at.UTC().Format(time.RFC3339))
}

// assertClose fails when got differs from want by more than 1e-9.
func assertClose(t *testing.T, name string, want, got float64) {
	t.Helper()
	if d := want - got; d > 1e-9 || d < -1e-9 {
		t.Errorf("expected %s %v, got %v", name, want, got)
	}
}
