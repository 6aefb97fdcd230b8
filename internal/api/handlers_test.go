package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/semizhon/hh-kz-cad/internal/api"
	"github.com/semizhon/hh-kz-cad/internal/cache"
	"github.com/semizhon/hh-kz-cad/internal/cleaner"
	"github.com/semizhon/hh-kz-cad/internal/domain"
	"github.com/semizhon/hh-kz-cad/internal/enrich"
	"github.com/semizhon/hh-kz-cad/internal/hh"
	"github.com/semizhon/hh-kz-cad/internal/search"
	"github.com/semizhon/hh-kz-cad/internal/snapshot"
)

// upstream is a minimal HH stand-in serving one country, one vacancy and one
// employer.
func upstream(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/areas", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, []map[string]any{{"id": "40", "name": "Казахстан"}})
	})
	mux.HandleFunc("/vacancies", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"items": []map[string]any{{
			"id":            "1",
			"name":          "AutoCAD drafter",
			"published_at":  "2024-01-05T10:00:00+0600",
			"alternate_url": "https://hh.kz/vacancy/1",
			"employer":      map[string]any{"id": "10", "name": "ProjectBureau"},
		}}})
	})
	mux.HandleFunc("/employers/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"id": "10", "name": "ProjectBureau", "open_vacancies": 3})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func newRouter(t *testing.T, upstreamURL, snapshotDir string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	client := hh.NewClient(upstreamURL, "test-agent")
	store := cache.NewMemory()
	aggregator := search.New(client, enrich.New(client, store), cleaner.New(), zap.NewNop().Sugar())
	handler := api.NewHandler(aggregator, store, snapshot.NewStore(snapshotDir), nil, zap.NewNop().Sugar())

	router := gin.New()
	api.SetupRoutes(router, handler)
	return router
}

func doRequest(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestJobsSuccessPopulatesSnapshot(t *testing.T) {
	srv := upstream(t)
	dir := t.TempDir()
	router := newRouter(t, srv.URL, dir)

	w := doRequest(router, "/jobs?keywords=AutoCAD&country=kazakhstan&pages=1&per_page=100")
	require.Equal(t, http.StatusOK, w.Code)

	var result domain.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, "api.hh.ru", result.Source)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "AutoCAD drafter", result.Items[0].Title)
	assert.Equal(t, 3, result.Items[0].TotalVacancies)

	// The full success wrote today's snapshot.
	_, err := os.Stat(filepath.Join(dir, "jobs_snapshot.json"))
	assert.NoError(t, err)
}

func TestJobsServedFromSnapshotForAnyParams(t *testing.T) {
	srv := upstream(t)
	dir := t.TempDir()
	router := newRouter(t, srv.URL, dir)

	first := doRequest(router, "/jobs?keywords=AutoCAD&country=kazakhstan")
	require.Equal(t, http.StatusOK, first.Code)

	// Kill the upstream: the daily snapshot now answers everything,
	// including queries with completely different parameters.
	srv.Close()

	second := doRequest(router, "/jobs?keywords=Navisworks&country=russia&pages=5")
	require.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestJobsServedFromQueryCacheWhenSnapshotUnavailable(t *testing.T) {
	srv := upstream(t)
	// Point the snapshot store at a path that cannot become a directory,
	// so only the in-memory tier can serve repeats.
	blocked := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))
	router := newRouter(t, srv.URL, filepath.Join(blocked, "daily"))

	first := doRequest(router, "/jobs?keywords=AutoCAD&country=kazakhstan")
	require.Equal(t, http.StatusOK, first.Code)

	srv.Close()

	// Same parameters: the query cache answers.
	second := doRequest(router, "/jobs?keywords=AutoCAD&country=kazakhstan")
	require.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	// Different parameters miss both tiers; the area tree is still cached
	// so the run degrades to an empty result instead of failing.
	third := doRequest(router, "/jobs?keywords=Revit&country=kazakhstan")
	require.Equal(t, http.StatusOK, third.Code)

	var degraded domain.Result
	require.NoError(t, json.Unmarshal(third.Body.Bytes(), &degraded))
	assert.Equal(t, 0, degraded.Count)
}

func TestJobsAggregationFailureReturns500(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	router := newRouter(t, srv.URL, t.TempDir())

	w := doRequest(router, "/jobs?keywords=AutoCAD&country=kazakhstan")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "503")
}

func TestJobsUnknownCountryReturns500(t *testing.T) {
	srv := upstream(t)
	router := newRouter(t, srv.URL, t.TempDir())

	w := doRequest(router, "/jobs?keywords=AutoCAD&country=atlantis")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "atlantis")
}

func TestHealth(t *testing.T) {
	srv := upstream(t)
	router := newRouter(t, srv.URL, t.TempDir())

	w := doRequest(router, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
