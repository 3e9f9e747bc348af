// Package parliament provides a retrying client for the parliament's public API
package parliament

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	perr "parliametrics/internal/platform/errors"
	"parliametrics/internal/platform/logger"
	"parliametrics/internal/services/seed/domain"

	"github.com/google/uuid"
)

const (
	baseURLDefault   = "https://www.parliament.bg/api/v1"
	defaultTimeout   = 30 * time.Second
	defaultUA        = "Parliametrics/0.1"
	defaultMaxRetry  = 3
	defaultRetryBase = 500 * time.Millisecond
	maxBackoff       = 30 * time.Second

	maxBody  = 32 << 20
	diagHead = 2048
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// Retry config for transport failures and transient statuses
	// MaxRetries zero disables retries, negative means the default
	MaxRetries int
	RetryBase  time.Duration
}

// Client reads groups, members, sittings and transcripts
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	now   func() time.Time
	sleep func(context.Context, time.Duration) error
	newID func() string
}

var _ domain.SourcePort = (*Client)(nil)

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
	if o.MaxRetries < 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("parliament"),
		now:   time.Now,
		sleep: sleepCtx,
		newID: uuid.NewString,
	}
}

// BaseURL returns the effective base url
func (c *Client) BaseURL() string { return c.opts.BaseURL }

// get issues a GET with retries and decodes a 200 body into out
func (c *Client) get(ctx context.Context, op, path string, out any) error {
	url := c.opts.BaseURL + path
	attempts := 0
	for {
		if err := ctx.Err(); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeTimeout, "%s canceled", op)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "%s new request failed", op)
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
			if ctx.Err() != nil || !c.shouldRetry(attempts) {
				return perr.Wrapf(err, perr.ErrorCodeUnavailable, "%s request failed", op)
			}
			back := c.backoff(attempts)
			c.log.Warn().Err(err).Str("op", op).Dur("retry_in", back).Int("attempt", attempts).Msg("parliament transport error retrying")
			if err := c.sleep(ctx, back); err != nil {
				return perr.Wrapf(err, perr.ErrorCodeTimeout, "%s canceled", op)
			}
			attempts++
			continue
		}

		c.log.Debug().
			Str("op", op).
			Str("path", path).
			Str("request_id", reqID).
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", lat).
			Msg("parliament http response")

		switch {
		case resp.StatusCode == http.StatusOK:
			err := decode(resp.Body, out)
			_ = resp.Body.Close()
			if err != nil {
				observe(op, outcomeDecode, lat)
				return perr.Wrapf(err, perr.ErrorCodeUnknown, "%s decode failed", op)
			}
			observe(op, outcomeOK, lat)
			return nil

		case transient(resp.StatusCode):
			observe(op, outcomeStatus, lat)
			_ = drainAndClose(resp.Body)
			if !c.shouldRetry(attempts) {
				return &StatusError{Op: op, Status: resp.StatusCode}
			}
			back := c.backoff(attempts)
			c.log.Warn().Str("op", op).Int("status", resp.StatusCode).Dur("retry_in", back).Int("attempt", attempts).Msg("parliament transient status retrying")
			if err := c.sleep(ctx, back); err != nil {
				return perr.Wrapf(err, perr.ErrorCodeTimeout, "%s canceled", op)
			}
			attempts++
			continue

		default:
			observe(op, outcomeStatus, lat)
			body, _ := io.ReadAll(io.LimitReader(resp.Body, diagHead))
			_ = resp.Body.Close()
			return &StatusError{Op: op, Status: resp.StatusCode, Body: string(body)}
		}
	}
}

// decode reads at most maxBody bytes; a larger body is an error
func decode(r io.Reader, out any) error {
	b, err := io.ReadAll(io.LimitReader(r, maxBody+1))
	if err != nil {
		return err
	}
	if len(b) > maxBody {
		return errTooLarge
	}
	return json.Unmarshal(b, out)
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase << uint(attempt)
	if d <= 0 || d > maxBackoff {
		return maxBackoff
	}
	return d
}

func (c *Client) shouldRetry(attempt int) bool {
	return attempt < c.opts.MaxRetries
}
