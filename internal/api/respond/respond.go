// Package respond writes API response bodies and their caching headers.
package respond

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/albapepper/austats/internal/cache"
)

// Problem is the body of every failed request.
type Problem struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Detail  string `json:"detail,omitempty"`
	} `json:"error"`
}

// Freshness describes a cacheable JSON body.
type Freshness struct {
	ETag string
	TTL  time.Duration
	Hit  bool // served from the in-memory cache
}

// Stored writes a body that is already JSON, such as season rows built by
// Postgres. A request whose If-None-Match matches the ETag gets a bare 304.
func Stored(w http.ResponseWriter, r *http.Request, body []byte, f Freshness) {
	h := w.Header()
	h.Set("ETag", f.ETag)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), f.ETag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	xcache := "MISS"
	if f.Hit {
		xcache = "HIT"
	}
	maxAge := int(f.TTL.Seconds())
	h.Set("Content-Type", "application/json")
	h.Set("Vary", "Accept-Encoding")
	h.Set("X-Cache", xcache)
	h.Set("Cache-Control", fmt.Sprintf("public, max-age=%d, stale-while-revalidate=%d", maxAge, maxAge/2))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// Object encodes v. Health and registry responses use it.
func Object(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Fail writes a Problem. detail is omitted when empty.
func Fail(w http.ResponseWriter, status int, code, message, detail string) {
	var p Problem
	p.Error.Code = code
	p.Error.Message = message
	p.Error.Detail = detail
	w.Header().Set("Cache-Control", "no-store")
	Object(w, status, p)
}
