// Package catalog is a thin proxy over the third-party metadata API the
// frontend browses. Responses are opaque JSON passed through unchanged;
// this service adds only caching and API-key handling.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/allegro/bigcache/v3"

	"github.com/altynbekov/streamflix/internal/metrics"
)

var (
	ErrUnknownMedia = errors.New("unknown media type")
	ErrNotFound     = errors.New("title not found")
)

const maxResponseBytes = 4 << 20

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	cache   *bigcache.BigCache
	logger  *slog.Logger
}

func NewClient(baseURL, apiKey string, cacheTTL time.Duration, logger *slog.Logger) (*Client, error) {
	cache, err := bigcache.New(context.Background(), bigcache.DefaultConfig(cacheTTL))
	if err != nil {
		return nil, fmt.Errorf("create catalog cache: %w", err)
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
		cache:   cache,
		logger:  logger.With("component", "catalog"),
	}, nil
}

func (c *Client) Trending(ctx context.Context, media, window string) (json.RawMessage, error) {
	if err := checkMedia(media); err != nil {
		return nil, err
	}
	if window != "day" && window != "week" {
		window = "week"
	}
	return c.get(ctx, "/trending/"+media+"/"+window, nil)
}

func (c *Client) Popular(ctx context.Context, media string, page int) (json.RawMessage, error) {
	if err := checkMedia(media); err != nil {
		return nil, err
	}
	params := url.Values{}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	return c.get(ctx, "/"+media+"/popular", params)
}

func (c *Client) Details(ctx context.Context, media, id string) (json.RawMessage, error) {
	if err := checkMedia(media); err != nil {
		return nil, err
	}
	return c.get(ctx, "/"+media+"/"+url.PathEscape(id), nil)
}

// Search queries across movies and series, mirroring the frontend's
// search/multi call.
func (c *Client) Search(ctx context.Context, query string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("query", query)
	return c.get(ctx, "/search/multi", params)
}

// Ping reports whether the metadata API answers at all. Used by the health
// checker; bypasses the cache.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/configuration?api_key="+url.QueryEscape(c.apiKey), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("catalog upstream returned %d", resp.StatusCode)
	}
	return nil
}

// WarmTrending fetches trending rows straight from upstream and refreshes
// the cached copy, regardless of whether one is still live.
func (c *Client) WarmTrending(ctx context.Context, media, window string) error {
	if err := checkMedia(media); err != nil {
		return err
	}
	_, err := c.fetch(ctx, "/trending/"+media+"/"+window, url.Values{})
	return err
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	if params == nil {
		params = url.Values{}
	}
	cacheKey := path + "?" + params.Encode()

	if cached, err := c.cache.Get(cacheKey); err == nil {
		metrics.CatalogCacheLookups.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.CatalogCacheLookups.WithLabelValues("miss").Inc()

	return c.fetch(ctx, path, params)
}

// fetch always hits upstream and caches the result.
func (c *Client) fetch(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	cacheKey := path + "?" + params.Encode()

	params.Set("api_key", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog upstream returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read catalog response: %w", err)
	}

	if err := c.cache.Set(cacheKey, body); err != nil {
		c.logger.Warn("cache catalog response", "key", cacheKey, "error", err)
	}
	return body, nil
}

func checkMedia(media string) error {
	if media != "movie" && media != "tv" {
		return ErrUnknownMedia
	}
	return nil
}
