package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"time"

	"go.uber.org/zap"

	applog "github.com/primeweb/site/internal/platform/logging"
	"github.com/primeweb/site/internal/platform/timeutil"
)

const (
	// DefaultEndpoint is the agency's Formspree form.
	DefaultEndpoint = "https://formspree.io/f/xgooedeg"
	defaultTimeout  = 10 * time.Second
	userAgent       = "primeweb-site"

	// maxErrorBody bounds how much of a failed response is read for logging.
	maxErrorBody = 4 << 10
)

// Client posts submissions as JSON to a Formspree-compatible endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	timeout    time.Duration
	now        func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the relay URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithTimeout bounds each submission. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithClock replaces time.Now for stamping submissions without a timestamp.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient returns a relay client. A nil httpClient uses http.DefaultClient.
func NewClient(httpClient *http.Client, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &Client{
		httpClient: httpClient,
		endpoint:   DefaultEndpoint,
		timeout:    defaultTimeout,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Payload flattens s into the JSON object sent to the relay: the fields plus
// timestamp, source and, when set, submissionId. Reserved keys win over fields.
func Payload(s Submission, now time.Time) map[string]string {
	out := make(map[string]string, len(s.Fields)+3)
	maps.Copy(out, s.Fields)
	ts := s.Timestamp
	if ts.IsZero() {
		ts = now
	}
	out["timestamp"] = timeutil.FormatMillis(ts)
	out["source"] = s.Source
	if s.SubmissionID != "" {
		out["submissionId"] = s.SubmissionID
	}
	return out
}

// Submit posts s and succeeds on any 2xx response.
func (c *Client) Submit(ctx context.Context, s Submission) error {
	body, err := json.Marshal(Payload(s, c.now()))
	if err != nil {
		return fmt.Errorf("encoding submission: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		applog.LogWarn(ctx, "relay request failed",
			zap.String("source", s.Source),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return &UpstreamError{cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		applog.LogInfo(ctx, "relay accepted submission",
			zap.String("source", s.Source),
			zap.Int("status", resp.StatusCode),
			zap.Duration("duration", time.Since(start)),
		)
		return nil
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	applog.LogWarn(ctx, "relay rejected submission",
		zap.String("source", s.Source),
		zap.Int("status", resp.StatusCode),
		zap.ByteString("body", snippet),
	)
	return &UpstreamError{
		Status:     resp.StatusCode,
		RetryAfter: resp.Header.Get("Retry-After"),
	}
}

var _ Submitter = (*Client)(nil)
