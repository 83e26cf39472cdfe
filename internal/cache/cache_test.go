package cache

import (
	"testing"
	"time"
)

func TestGetSetExpiry(t *testing.T) {
	c := New(true)
	defer c.Close()
	now := time.Unix(1700000000, 0)
	c.now = func() time.Time { return now }

	etag := c.Set("stats:softball:2023:player", []byte(`[1]`), time.Minute)
	data, got, ok := c.Get("stats:softball:2023:player")
	if !ok || string(data) != "[1]" || got != etag {
		t.Fatalf("Get() = %q, %q, %v; want cached entry", data, got, ok)
	}

	now = now.Add(2 * time.Minute)
	if _, _, ok := c.Get("stats:softball:2023:player"); ok {
		t.Error("Get() after TTL ok = true, want false")
	}
	c.evict()
	if n := c.Stats()["total_keys"]; n != 0 {
		t.Errorf("total_keys after evict = %v, want 0", n)
	}
}

func TestDisabled(t *testing.T) {
	c := New(false)
	etag := c.Set("k", []byte("x"), time.Hour)
	if etag != ComputeETag([]byte("x")) {
		t.Errorf("Set() etag = %q", etag)
	}
	if _, _, ok := c.Get("k"); ok {
		t.Error("disabled cache returned a hit")
	}
}

func TestCheckETagMatch(t *testing.T) {
	etag := ComputeETag([]byte("body"))
	tests := []struct {
		header string
		want   bool
	}{
		{"", false},
		{"*", true},
		{etag, true},
		{`W/"other"`, false},
	}
	for _, tt := range tests {
		if got := CheckETagMatch(tt.header, etag); got != tt.want {
			t.Errorf("CheckETagMatch(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}
