package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestStored(t *testing.T) {
	body := []byte(`[1,2]`)
	f := Freshness{ETag: `W/"abc"`, TTL: time.Hour}
	tests := []struct {
		name        string
		ifNoneMatch string
		hit         bool
		wantStatus  int
		wantXCache  string
	}{
		{"miss", "", false, http.StatusOK, "MISS"},
		{"hit", "", true, http.StatusOK, "HIT"},
		{"not modified", `W/"abc"`, true, http.StatusNotModified, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.ifNoneMatch != "" {
				req.Header.Set("If-None-Match", tt.ifNoneMatch)
			}
			rec := httptest.NewRecorder()
			f.Hit = tt.hit
			Stored(rec, req, body, f)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("X-Cache"); got != tt.wantXCache {
				t.Errorf("X-Cache = %q, want %q", got, tt.wantXCache)
			}
			if got := rec.Header().Get("ETag"); got != f.ETag {
				t.Errorf("ETag = %q, want %q", got, f.ETag)
			}
			if tt.wantStatus == http.StatusOK {
				if got := rec.Header().Get("Cache-Control"); got != "public, max-age=3600, stale-while-revalidate=1800" {
					t.Errorf("Cache-Control = %q", got)
				}
				if rec.Body.String() != string(body) {
					t.Errorf("body = %q, want %q", rec.Body.String(), body)
				}
			} else if rec.Body.Len() != 0 {
				t.Errorf("304 body = %q, want empty", rec.Body.String())
			}
		})
	}
}

func TestFail(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(rec, http.StatusBadRequest, "INVALID_LEVEL", "bad level", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	var p Problem
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Error.Code != "INVALID_LEVEL" || p.Error.Message != "bad level" || p.Error.Detail != "" {
		t.Errorf("problem = %+v", p.Error)
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", got)
	}
}
