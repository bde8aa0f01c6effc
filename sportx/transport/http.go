// Package transport implements the one HTTP contract every relayer call
// follows: serialize the payload as JSON, POST (or GET for pure queries),
// read the body as text, attempt a JSON parse, and normalize failures into
// the SDK's typed error kinds.
package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/sportx-bet/go-sportx/sportx/types"
)

// DefaultTimeout bounds each relayer round trip. The SDK never retries on
// its own; callers build retry policy on top of the error kinds.
const DefaultTimeout = 10 * time.Second

// Relayer is a JSON-over-HTTP client for one relayer base URL.
type Relayer struct {
	rc      *resty.Client
	timeout time.Duration
	log     *logrus.Entry
}

// Option customizes a Relayer.
type Option func(*Relayer)

// WithTimeout overrides the per-request deadline.
func WithTimeout(d time.Duration) Option {
	return func(r *Relayer) { r.timeout = d }
}

// WithTransport injects an http.RoundTripper. Tests use this to spy on or
// fake the wire.
func WithTransport(rt http.RoundTripper) Option {
	return func(r *Relayer) { r.rc.SetTransport(rt) }
}

// WithLogger attaches a structured logger.
func WithLogger(log *logrus.Entry) Option {
	return func(r *Relayer) { r.log = log }
}

// NewRelayer builds a client rooted at baseURL. Retries are deliberately
// disabled: the relayer owns backpressure, the caller owns retries.
func NewRelayer(baseURL string, opts ...Option) *Relayer {
	rc := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "go-sportx")
	r := &Relayer{
		rc:      rc,
		timeout: DefaultTimeout,
		log:     logrus.NewEntry(discardLogger()),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// BaseURL returns the configured relayer root.
func (r *Relayer) BaseURL() string {
	return r.rc.BaseURL
}

// Get performs a pure query and unwraps the envelope's data field into out.
func (r *Relayer) Get(ctx context.Context, path string, out interface{}) error {
	return r.do(ctx, http.MethodGet, path, nil, out)
}

// Post sends a JSON payload and unwraps the envelope's data field into out.
func (r *Relayer) Post(ctx context.Context, path string, body, out interface{}) error {
	return r.do(ctx, http.MethodPost, path, body, out)
}

func (r *Relayer) do(ctx context.Context, method, path string, body, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req := r.rc.R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	r.log.WithFields(logrus.Fields{"method": method, "path": path}).Debug("relayer request")

	resp, err := req.Execute(method, path)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return &types.TimeoutError{Op: method + " " + path, Timeout: r.timeout}
		}
		return errors.Wrapf(err, "%s %s", method, path)
	}

	raw := resp.Body()
	var envelope types.RelayerResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return &types.APIError{
			StatusCode:   resp.StatusCode(),
			Body:         string(raw),
			ParseFailure: true,
		}
	}
	if !resp.IsSuccess() || !envelope.IsSuccess() {
		return &types.APIError{
			StatusCode: resp.StatusCode(),
			Reason:     envelope.Reason,
			Body:       string(raw),
		}
	}
	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return &types.APIError{
				StatusCode:   resp.StatusCode(),
				Body:         string(envelope.Data),
				ParseFailure: true,
			}
		}
	}
	return nil
}

func isTimeout(err error) bool {
	type timeout interface{ Timeout() bool }
	var t timeout
	return errors.As(err, &t) && t.Timeout()
}

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}
