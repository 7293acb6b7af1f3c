// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package eutils is a client for the NCBI Entrez E-utilities API. It
// enforces the service's outbound request-rate ceiling and works around
// its per-query result cap by recursive date-range partitioning.
package eutils

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pdiddy/pubmed-harvester/internal/httputil"
	"github.com/pdiddy/pubmed-harvester/internal/ratelimit"
	"github.com/pdiddy/pubmed-harvester/pkg/types"
)

// BaseURL is the E-utilities endpoint root. Declared as a var so tests
// can substitute an httptest server.
var BaseURL = "https://eutils.ncbi.nlm.nih.gov"

const (
	esearchPath = "/entrez/eutils/esearch.fcgi"
	efetchPath  = "/entrez/eutils/efetch.fcgi"

	defaultTimeout   = 60 * time.Second
	defaultStartYear = 1900

	// Rate ceilings documented by the service: 3 requests per second
	// without an API key, 10 with one.
	anonRateLimit  = 3
	keyedRateLimit = 10
)

// Client talks to the E-utilities API. All requests pass through a
// shared rate gate, so the rolling-window limit holds across every
// call made on one Client, including the resolver's recursion.
type Client struct {
	httpClient *http.Client
	gate       *ratelimit.Gate
	cfg        types.ClientConfig

	// today returns the upper bound of the partitioning date axis.
	// Tests override it to pin ranges.
	today func() time.Time
}

// New builds a Client from cfg, applying defaults for unset fields.
func New(cfg types.ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.StartYear == 0 {
		cfg.StartYear = defaultStartYear
	}
	limit := anonRateLimit
	if cfg.APIKey != "" {
		limit = keyedRateLimit
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		gate:       ratelimit.New(limit),
		cfg:        cfg,
		today:      func() time.Time { return time.Now().UTC().Truncate(24 * time.Hour) },
	}
}

// RateLimit returns the configured requests-per-second ceiling.
func (c *Client) RateLimit() int {
	if c.cfg.APIKey != "" {
		return keyedRateLimit
	}
	return anonRateLimit
}

// baseParams returns the standing query parameters sent with every
// request. Callers receive a fresh copy and may mutate it freely.
func (c *Client) baseParams() url.Values {
	p := url.Values{
		"tool":  {c.cfg.Tool},
		"email": {c.cfg.Email},
		"db":    {"pubmed"},
	}
	if c.cfg.APIKey != "" {
		p.Set("api_key", c.cfg.APIKey)
	}
	return p
}

// Get performs one rate-gated GET against BaseURL+path and returns the
// raw response body. retmode selects the response format ("json" or
// "xml"). params is cloned before the retmode override, so the caller's
// map is never mutated.
func (c *Client) Get(ctx context.Context, path string, params url.Values, retmode string) ([]byte, error) {
	p := cloneValues(params)
	p.Set("retmode", retmode)

	if err := c.gate.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, BaseURL+path+"?"+p.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, c.cfg.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("eutils request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{StatusCode: resp.StatusCode, Path: path}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}

// cloneValues returns an independent copy of v. Each recursive resolver
// branch works on its own snapshot, never on shared state.
func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
