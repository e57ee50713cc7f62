package catalog_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/altynbekov/streamflix/internal/catalog"
)

func newUpstream(t *testing.T, hits *atomic.Int64, status int, payload string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Query().Get("api_key") != "test-key" {
			t.Errorf("api_key = %q, want test-key", r.URL.Query().Get("api_key"))
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, baseURL string) *catalog.Client {
	t.Helper()
	c, err := catalog.NewClient(baseURL, "test-key", time.Minute, slog.Default())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestTrending_PassesUpstreamPayloadThrough(t *testing.T) {
	var hits atomic.Int64
	srv := newUpstream(t, &hits, http.StatusOK, `{"results":[{"id":1}]}`)
	c := newClient(t, srv.URL)

	payload, err := c.Trending(context.Background(), "movie", "week")
	if err != nil {
		t.Fatalf("trending: %v", err)
	}
	if string(payload) != `{"results":[{"id":1}]}` {
		t.Errorf("payload = %s, want untouched upstream body", payload)
	}
}

func TestTrending_SecondCallServedFromCache(t *testing.T) {
	var hits atomic.Int64
	srv := newUpstream(t, &hits, http.StatusOK, `{"results":[]}`)
	c := newClient(t, srv.URL)

	for i := 0; i < 2; i++ {
		if _, err := c.Trending(context.Background(), "tv", "week"); err != nil {
			t.Fatalf("trending call %d: %v", i+1, err)
		}
	}

	if got := hits.Load(); got != 1 {
		t.Errorf("upstream hits = %d, want 1 (second call cached)", got)
	}
}

func TestDetails_Upstream404_ReturnsNotFound(t *testing.T) {
	var hits atomic.Int64
	srv := newUpstream(t, &hits, http.StatusNotFound, `{}`)
	c := newClient(t, srv.URL)

	_, err := c.Details(context.Background(), "movie", "99999")
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUnknownMediaType_RejectedWithoutUpstreamCall(t *testing.T) {
	var hits atomic.Int64
	srv := newUpstream(t, &hits, http.StatusOK, `{}`)
	c := newClient(t, srv.URL)

	_, err := c.Popular(context.Background(), "podcast", 1)
	if !errors.Is(err, catalog.ErrUnknownMedia) {
		t.Errorf("err = %v, want ErrUnknownMedia", err)
	}
	if hits.Load() != 0 {
		t.Error("upstream called for an unknown media type")
	}
}

func TestWarmTrending_RefreshesDespiteLiveCacheEntry(t *testing.T) {
	var hits atomic.Int64
	srv := newUpstream(t, &hits, http.StatusOK, `{"results":[]}`)
	c := newClient(t, srv.URL)

	if _, err := c.Trending(context.Background(), "movie", "week"); err != nil {
		t.Fatalf("trending: %v", err)
	}
	if err := c.WarmTrending(context.Background(), "movie", "week"); err != nil {
		t.Fatalf("warm: %v", err)
	}

	if got := hits.Load(); got != 2 {
		t.Errorf("upstream hits = %d, want 2 (warming bypasses the cache)", got)
	}
}
