// Package sheet downloads the published timetable spreadsheet as CSV text.
package sheet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultURL is the published CSV export of the shuttle timetable sheet.
const DefaultURL = "https://docs.google.com/spreadsheets/d/e/2PACX-1vQOCNTuhTVjDh6OcGoKiToV6xq0DYt_prUvxo1zbDzyfaCnpJccUQNIHs7y6XN1fEiNAPpFsKNywmyq/pub?gid=0&single=true&output=csv"

// Client fetches the raw sheet text.
type Client interface {
	FetchCSV(ctx context.Context) (string, error)
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type ClientConfig struct {
	URL        string
	UserAgent  string
	HTTPClient httpDoer
	Metrics    *Metrics
	Logger     *zerolog.Logger
}

type HTTPClient struct {
	url        string
	userAgent  string
	httpClient httpDoer
	metrics    *Metrics
	log        zerolog.Logger
}

func NewClient(cfg ClientConfig) (*HTTPClient, error) {
	rawURL := strings.TrimSpace(cfg.URL)
	if rawURL == "" {
		rawURL = DefaultURL
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid sheet URL %q", cfg.URL)
	}

	doer := cfg.HTTPClient
	if doer == nil {
		doer = &http.Client{}
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &HTTPClient{
		url:        rawURL,
		userAgent:  strings.TrimSpace(cfg.UserAgent),
		httpClient: doer,
		metrics:    cfg.Metrics,
		log:        logger,
	}, nil
}

func (c *HTTPClient) URL() string {
	return c.url
}

// FetchCSV performs one GET of the sheet URL. There are no retries; any
// transport failure or non-2xx status is returned as a *NetworkError.
func (c *HTTPClient) FetchCSV(ctx context.Context) (string, error) {
	started := time.Now()
	text, err := c.fetch(ctx)
	c.metrics.observe(c.url, started, err)

	if err != nil {
		c.log.Warn().Err(err).Str("url", c.url).Msg("sheet fetch failed")
		return "", err
	}
	c.log.Debug().
		Str("url", c.url).
		Int("bytes", len(text)).
		Dur("elapsed", time.Since(started)).
		Msg("sheet fetched")
	return text, nil
}

func (c *HTTPClient) fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", &NetworkError{URL: c.url, Err: fmt.Errorf("create request: %w", err)}
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &NetworkError{URL: c.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", &NetworkError{
			URL:        c.url,
			StatusCode: resp.StatusCode,
			Err:        errors.New(http.StatusText(resp.StatusCode)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{URL: c.url, Err: fmt.Errorf("read body: %w", err)}
	}
	return string(body), nil
}
