package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Counters_Histograms_InflightAndPathFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Metrics())

	// Route with body → positive size (observed)
	r.GET("/feedback", func(c *gin.Context) {
		c.String(http.StatusOK, `{"feedback":[]}`)
	})

	// Route with status only → size stays -1 (skipped in size histogram)
	r.DELETE("/keys/:id", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	// Baselines before we hit the routes (to avoid interference from other tests)
	baseOK := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/feedback", "200"))
	base404 := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/does-not-exist", "404"))

	// 1) Matched route → path label is the route pattern
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/feedback", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /feedback -> %d", w.Code)
	}

	// 2) Missing route → fallback to raw URL path label
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/does-not-exist", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET /does-not-exist -> %d", w.Code)
	}

	// 3) Param route, no body (size -1 path executed; label is the pattern)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/keys/k1", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("DELETE /keys/k1 -> %d", w.Code)
	}

	gotOK := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/feedback", "200"))
	if gotOK != baseOK+1 {
		t.Fatalf("counter /feedback 200 = %v; want %v", gotOK, baseOK+1)
	}

	got404 := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/does-not-exist", "404"))
	if got404 != base404+1 {
		t.Fatalf("counter 404 fallback = %v; want %v", got404, base404+1)
	}

	gotDel := testutil.ToFloat64(httpReqs.WithLabelValues("DELETE", "/keys/:id", "204"))
	if gotDel < 1 {
		t.Fatalf("counter /keys/:id 204 = %v; want >= 1", gotDel)
	}

	// In-flight gauge should be 0 after requests complete
	if inFlight := testutil.ToFloat64(httpInflight); inFlight != 0 {
		t.Fatalf("httpInflight = %v; want 0", inFlight)
	}
}

func TestObserveIngestOutcome(t *testing.T) {
	base := testutil.ToFloat64(ingestOutcomes.WithLabelValues(IngestOutcomeAccepted))
	ObserveIngestOutcome(IngestOutcomeAccepted)
	ObserveIngestOutcome(IngestOutcomeAccepted)
	got := testutil.ToFloat64(ingestOutcomes.WithLabelValues(IngestOutcomeAccepted))
	if got != base+2 {
		t.Fatalf("accepted counter = %v; want %v", got, base+2)
	}

	baseInv := testutil.ToFloat64(ingestOutcomes.WithLabelValues(IngestOutcomeInvalid))
	ObserveIngestOutcome(IngestOutcomeInvalid)
	if got := testutil.ToFloat64(ingestOutcomes.WithLabelValues(IngestOutcomeInvalid)); got != baseInv+1 {
		t.Fatalf("invalid counter = %v; want %v", got, baseInv+1)
	}
}
