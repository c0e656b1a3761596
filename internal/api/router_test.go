package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hyperdash/monitor/internal/domain/models"
	"github.com/hyperdash/monitor/internal/web"
)

func newTestRouter(t *testing.T, svc *mockSnapService, trigger *mockTrigger) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dash, err := web.NewDashboard(web.Config{TopTraders: 100, DisplayAssets: 30, Interval: 4 * time.Hour})
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	return NewRouter(NewHandler(svc, trigger), NewWSHub(), dash)
}

func TestNewRouter_WiringAndMiddlewares(t *testing.T) {
	svc := &mockSnapService{history: []models.Snapshot{{TimestampMillis: 7, Assets: []models.AssetStats{}}}}
	r := newTestRouter(t, svc, &mockTrigger{})

	req := httptest.NewRequest(http.MethodGet, "/api/snapshots", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	// Ensure RequestID middleware injected header
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}

	var out []models.Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if len(out) != 1 || out[0].TimestampMillis != 7 {
		t.Fatalf("unexpected body: %+v", out)
	}
}

func TestNewRouter_Dashboard(t *testing.T) {
	r := newTestRouter(t, &mockSnapService{}, &mockTrigger{})

	for _, path := range []string{"/", "/index.html"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, w.Code)
		}
		if !strings.Contains(w.Body.String(), "HyperDash Monitor") {
			t.Fatalf("%s: body does not look like the dashboard", path)
		}
	}
}

func TestNewRouter_Metrics(t *testing.T) {
	r := newTestRouter(t, &mockSnapService{}, &mockTrigger{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "hyperdash_") {
		t.Fatalf("metrics output missing service collectors")
	}
}

func TestNewRouter_SnapshotNowGetAlias(t *testing.T) {
	trigger := &mockTrigger{snap: models.Snapshot{TimestampMillis: 5}}
	r := newTestRouter(t, &mockSnapService{}, trigger)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/snapshot/now", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestNewRouter_CORSHeader(t *testing.T) {
	r := newTestRouter(t, &mockSnapService{}, &mockTrigger{})

	req := httptest.NewRequest(http.MethodGet, "/api/snapshots", nil)
	req.Header.Set("Origin", "https://example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard CORS header, got %q", got)
	}
}

func TestNewRouter_WSRejectsPlainHTTP(t *testing.T) {
	r := newTestRouter(t, &mockSnapService{}, &mockTrigger{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-upgrade request, got %d", w.Code)
	}
}
