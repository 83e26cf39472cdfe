package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/albapepper/austats/internal/api/handler"
	"github.com/albapepper/austats/internal/api/respond"
	"github.com/albapepper/austats/internal/cache"
	"github.com/albapepper/austats/internal/config"
	"github.com/albapepper/austats/internal/sport"
	"github.com/albapepper/austats/internal/stat"
)

type fakeStore struct {
	healthErr error
	queryErr  error
	calls     int
	lastLevel stat.Level
}

func (f *fakeStore) HealthCheck(context.Context) error { return f.healthErr }

func (f *fakeStore) SeasonAggregates(_ context.Context, league string, year int, level stat.Level) ([]byte, error) {
	f.calls++
	f.lastLevel = level
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return []byte(`[{"sport":"softball","level":"team","season":2023}]`), nil
}

func (f *fakeStore) Seasons(context.Context, string) ([]byte, error) {
	return []byte(`[2022,2023]`), nil
}

type fakePinger struct{ err error }

func (f fakePinger) HealthCheck(context.Context) error { return f.err }

func testConfig(rateLimit bool) *config.Config {
	return &config.Config{
		Environment:       "development",
		CORSAllowOrigins:  []string{"http://localhost:3000"},
		RateLimitEnabled:  rateLimit,
		RateLimitRequests: 2,
		RateLimitWindow:   time.Minute,
	}
}

func newTestRouter(t *testing.T, st *fakeStore, rateLimit bool) http.Handler {
	t.Helper()
	return routerWith(t, st, nil, testConfig(rateLimit))
}

func routerWith(t *testing.T, st *fakeStore, vendor handler.Pinger, cfg *config.Config) http.Handler {
	t.Helper()
	c := cache.New(true)
	t.Cleanup(c.Close)
	return NewRouter(st, c, vendor, sport.Default(), cfg)
}

func get(h http.Handler, path string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	st := &fakeStore{}
	h := newTestRouter(t, st, false)
	if rec := get(h, "/health"); rec.Code != http.StatusOK {
		t.Errorf("/health status = %d, want 200", rec.Code)
	}
	if rec := get(h, "/health/db"); rec.Code != http.StatusOK {
		t.Errorf("/health/db status = %d, want 200", rec.Code)
	}
	st.healthErr = errors.New("down")
	if rec := get(h, "/health/db"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("/health/db status = %d, want 503", rec.Code)
	}
	if rec := get(h, "/health"); rec.Header().Get("X-Process-Time") == "" {
		t.Error("X-Process-Time header missing")
	}
}

func TestLeagues(t *testing.T) {
	h := newTestRouter(t, &fakeStore{}, false)
	rec := get(h, "/api/v1/leagues")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var leagues []struct {
		Key     string `json:"key"`
		Seasons []int  `json:"seasons"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &leagues); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(leagues) != 5 || leagues[0].Key != sport.AUXSoftball {
		t.Errorf("leagues = %+v", leagues)
	}
	if rec.Header().Get("X-Cache") != "MISS" {
		t.Errorf("X-Cache = %q, want MISS", rec.Header().Get("X-Cache"))
	}
	if again := get(h, "/api/v1/leagues"); again.Header().Get("X-Cache") != "HIT" {
		t.Errorf("second X-Cache = %q, want HIT", again.Header().Get("X-Cache"))
	}
}

func TestSeasonStats(t *testing.T) {
	st := &fakeStore{}
	h := newTestRouter(t, st, false)

	rec := get(h, "/api/v1/stats/softball/2023/team")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	if st.lastLevel != stat.ByTeam {
		t.Errorf("level = %v, want team", st.lastLevel)
	}
	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatal("ETag missing")
	}

	if rec := get(h, "/api/v1/stats/softball/2023/team", "If-None-Match", etag); rec.Code != http.StatusNotModified {
		t.Errorf("conditional status = %d, want 304", rec.Code)
	}
	if st.calls != 1 {
		t.Errorf("store called %d times, want 1", st.calls)
	}
}

func TestSeasonStatsErrors(t *testing.T) {
	h := newTestRouter(t, &fakeStore{}, false)
	tests := []struct {
		path string
		want int
	}{
		{"/api/v1/stats/cricket/2023/player", http.StatusNotFound},
		{"/api/v1/stats/softball/19xx/player", http.StatusBadRequest},
		{"/api/v1/stats/basketball/2021/player", http.StatusNotFound},
		{"/api/v1/stats/softball/2023/coach", http.StatusBadRequest},
	}
	for _, tt := range tests {
		if rec := get(h, tt.path); rec.Code != tt.want {
			t.Errorf("GET %s status = %d, want %d", tt.path, rec.Code, tt.want)
		}
	}
}

func TestSeasonsWithStore(t *testing.T) {
	h := newTestRouter(t, &fakeStore{}, false)
	rec := get(h, "/api/v1/leagues/volleyball/seasons")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Supported []int `json:"supported"`
		Stored    []int `json:"stored"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Supported) != 3 || len(body.Stored) != 2 {
		t.Errorf("body = %+v", body)
	}
}

func TestRateLimit(t *testing.T) {
	h := newTestRouter(t, &fakeStore{}, true)
	var last int
	for i := 0; i < 3; i++ {
		last = get(h, "/health").Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("third request status = %d, want 429", last)
	}
}

func TestHealthCache(t *testing.T) {
	tests := []struct {
		name   string
		vendor handler.Pinger
		want   int
		status string
	}{
		{"no redis", nil, http.StatusOK, "disabled"},
		{"redis up", fakePinger{}, http.StatusOK, "connected"},
		{"redis down", fakePinger{err: errors.New("refused")}, http.StatusServiceUnavailable, "disconnected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := routerWith(t, &fakeStore{}, tt.vendor, testConfig(false))
			rec := get(h, "/health/cache")
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			var body struct {
				VendorCache string `json:"vendor_cache"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.VendorCache != tt.status {
				t.Errorf("vendor_cache = %q, want %q", body.VendorCache, tt.status)
			}
		})
	}
}

func TestErrorDetailHiddenInProduction(t *testing.T) {
	for _, env := range []string{"development", "production"} {
		t.Run(env, func(t *testing.T) {
			cfg := testConfig(false)
			cfg.Environment = env
			h := routerWith(t, &fakeStore{queryErr: errors.New("relation does not exist")}, nil, cfg)
			rec := get(h, "/api/v1/stats/softball/2023/player")
			if rec.Code != http.StatusServiceUnavailable {
				t.Fatalf("status = %d, want 503", rec.Code)
			}
			var body respond.Problem
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error.Code != "DB_ERROR" {
				t.Errorf("code = %q, want DB_ERROR", body.Error.Code)
			}
			wantDetail := env != "production"
			if got := body.Error.Detail != ""; got != wantDetail {
				t.Errorf("detail = %q, want present=%v", body.Error.Detail, wantDetail)
			}
		})
	}
}
