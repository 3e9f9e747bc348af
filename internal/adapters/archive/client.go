// Package archive provides the HTTP client for the speech archive API
package archive

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"parliametrics/internal/platform/logger"
	"parliametrics/internal/services/browse/domain"

	"github.com/google/uuid"
)

const (
	baseURLDefault = "http://localhost:8000/api/v1"
	defaultTimeout = 15 * time.Second
	defaultUA      = "parliametrics-browse"

	maxBody  = 4 << 20
	diagTail = 2048
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Client is a read only archive API client
// it never retries; callers decide what to do with a failure
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	now   func() time.Time
	newID func() string
}

var _ domain.ArchivePort = (*Client)(nil)

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	o.BaseURL = strings.TrimRight(strings.TrimSpace(o.BaseURL), "/")
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("archive"),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// BaseURL returns the effective base url
func (c *Client) BaseURL() string { return c.opts.BaseURL }

// get issues one GET and decodes a 200 body into out
// transport failures become NetworkError, everything else FetchError
func (c *Client) get(ctx context.Context, op, path string, q domain.Params, out any) error {
	url := c.opts.BaseURL + path
	if enc := q.Encode(); enc != "" {
		url += "?" + enc
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &domain.NetworkError{Op: op, URL: url, Err: err}
	}
	reqID := c.newID()
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)
	if err != nil {
		observe(op, outcomeNetwork, lat)
		c.log.Warn().Err(err).Str("op", op).Str("url", url).Str("request_id", reqID).Msg("archive transport error")
		return &domain.NetworkError{Op: op, URL: url, Err: err}
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("path", path).Msg("archive close body failed")
		}
	}()

	c.log.Debug().
		Str("op", op).
		Str("path", path).
		Str("query", q.Encode()).
		Str("request_id", reqID).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Msg("archive http response")

	if resp.StatusCode != http.StatusOK {
		observe(op, outcomeStatus, lat)
		body, _ := io.ReadAll(io.LimitReader(resp.Body, diagTail))
		return &domain.FetchError{
			Op:     op,
			URL:    url,
			Status: resp.StatusCode,
			Body:   string(body),
			Err:    statusErr(resp.StatusCode),
		}
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody+1))
	if err != nil {
		observe(op, outcomeNetwork, lat)
		return &domain.NetworkError{Op: op, URL: url, Err: err}
	}
	if len(b) > maxBody {
		observe(op, outcomeTooLarge, lat)
		c.log.Warn().Str("op", op).Str("url", url).Str("request_id", reqID).Int("limit", maxBody).Msg("archive response too large")
		return &domain.FetchError{Op: op, URL: url, Status: resp.StatusCode, Body: tail(b), Err: errTooLarge}
	}
	if err := json.Unmarshal(b, out); err != nil {
		observe(op, outcomeDecode, lat)
		return &domain.FetchError{Op: op, URL: url, Status: resp.StatusCode, Body: tail(b), Err: err}
	}
	observe(op, outcomeOK, lat)
	return nil
}
