package enrich_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semizhon/hh-kz-cad/internal/cache"
	"github.com/semizhon/hh-kz-cad/internal/enrich"
	"github.com/semizhon/hh-kz-cad/internal/hh"
)

func employerServer(t *testing.T, calls *atomic.Int32, profiles map[string]map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		id := r.URL.Path[len("/employers/"):]
		profile, ok := profiles[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(profile)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestEmployerDetailsMemoized(t *testing.T) {
	var calls atomic.Int32
	srv := employerServer(t, &calls, map[string]map[string]any{
		"10": {
			"id":          "10",
			"name":        "ProjectBureau",
			"site_url":    "https://pb.kz",
			"description": "design bureau",
			"contacts":    map[string]any{"phones": []map[string]any{{"number": "+7 701"}}},
		},
	})

	e := enrich.New(hh.NewClient(srv.URL, "test"), cache.NewMemory())

	for range 3 {
		profile, ok := e.EmployerDetails(context.Background(), "10")
		require.True(t, ok)
		assert.Equal(t, "ProjectBureau", profile.Name)
		assert.Equal(t, "+7 701", profile.FirstPhone())
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestEmployerDetailsDegradesOnFailure(t *testing.T) {
	var calls atomic.Int32
	srv := employerServer(t, &calls, nil) // every lookup 404s

	e := enrich.New(hh.NewClient(srv.URL, "test"), cache.NewMemory())

	profile, ok := e.EmployerDetails(context.Background(), "99")
	assert.False(t, ok)
	assert.Empty(t, profile.Name)
	assert.Empty(t, profile.FirstPhone())
}

func TestEmployerDetailsEmptyID(t *testing.T) {
	var calls atomic.Int32
	srv := employerServer(t, &calls, nil)

	e := enrich.New(hh.NewClient(srv.URL, "test"), cache.NewMemory())

	profile, ok := e.EmployerDetails(context.Background(), "")
	assert.False(t, ok)
	assert.NotNil(t, profile)
	assert.Equal(t, int32(0), calls.Load(), "no upstream call without an ID")
}

func TestOpenVacancyCountFieldPriority(t *testing.T) {
	var calls atomic.Int32
	srv := employerServer(t, &calls, map[string]map[string]any{
		"1": {"id": "1", "name": "A", "open_vacancies": 12, "active_vacancies": 99},
		"2": {"id": "2", "name": "B", "active_vacancies": 8},
		"3": {"id": "3", "name": "C", "vacancies_count": 4},
		"4": {"id": "4", "name": "D"},
	})

	e := enrich.New(hh.NewClient(srv.URL, "test"), cache.NewMemory())
	ctx := context.Background()

	assert.Equal(t, 12, e.OpenVacancyCount(ctx, "1"), "open_vacancies wins")
	assert.Equal(t, 8, e.OpenVacancyCount(ctx, "2"))
	assert.Equal(t, 4, e.OpenVacancyCount(ctx, "3"))
	assert.Equal(t, 0, e.OpenVacancyCount(ctx, "4"), "no count field present")
	assert.Equal(t, 0, e.OpenVacancyCount(ctx, ""))
}
