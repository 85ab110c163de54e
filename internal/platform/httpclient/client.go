// Package httpclient provides an *http.Client whose transport logs and counts
// every outbound call. It is passed explicitly to the clients that need it.
package httpclient

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mando-cx/mando-api/internal/metrics"
	"github.com/mando-cx/mando-api/internal/redact"
)

// DefaultBodyPreviewBytes is the default length of logged request bodies.
const DefaultBodyPreviewBytes = 200

// Options configures the instrumented client.
type Options struct {
	Timeout          time.Duration
	LogBodies        bool
	BodyPreviewBytes int
	// Metrics is optional.
	Metrics *metrics.Collector
	// Base is the wrapped transport; http.DefaultTransport when nil.
	Base http.RoundTripper
}

// New creates an *http.Client whose transport logs outbound requests,
// responses and errors.
func New(logger *slog.Logger, opts Options) *http.Client {
	return &http.Client{
		Timeout:   opts.Timeout,
		Transport: NewTransport(logger, opts),
	}
}

// Transport is an http.RoundTripper that logs and counts calls.
type Transport struct {
	base        http.RoundTripper
	logger      *slog.Logger
	metrics     *metrics.Collector
	logBodies   bool
	previewSize int
	now         func() time.Time
}

// NewTransport creates a Transport.
func NewTransport(logger *slog.Logger, opts Options) *Transport {
	if logger == nil {
		logger = slog.Default()
	}
	base := opts.Base
	if base == nil {
		base = http.DefaultTransport
	}
	preview := opts.BodyPreviewBytes
	if preview <= 0 {
		preview = DefaultBodyPreviewBytes
	}
	return &Transport{
		base:        base,
		logger:      logger.With(slog.String("component", "httpclient")),
		metrics:     opts.Metrics,
		logBodies:   opts.LogBodies,
		previewSize: preview,
		now:         time.Now,
	}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	id := uuid.NewString()
	ctx := req.Context()
	start := t.now()

	t.logger.InfoContext(ctx, "outbound request",
		slog.String("outbound_id", id),
		slog.String("method", req.Method),
		slog.String("url", redact.URL(req.URL.String())),
		slog.Any("headers", redact.Header(req.Header)),
		slog.String("body", t.bodyPreview(req)),
	)

	resp, err := t.base.RoundTrip(req)
	elapsed := t.now().Sub(start)

	if err != nil {
		t.logger.ErrorContext(ctx, "outbound error",
			slog.String("outbound_id", id),
			slog.String("error", redact.Error(err)),
			slog.Duration("duration", elapsed),
		)
		t.observe(req, 0, elapsed)
		return nil, err
	}

	t.logger.InfoContext(ctx, "outbound response",
		slog.String("outbound_id", id),
		slog.Int("status", resp.StatusCode),
		slog.String("status_text", http.StatusText(resp.StatusCode)),
		slog.Any("headers", redact.Header(resp.Header)),
		slog.Bool("ok", resp.StatusCode >= 200 && resp.StatusCode < 300),
		slog.Duration("duration", elapsed),
	)
	t.observe(req, resp.StatusCode, elapsed)

	return resp, nil
}

func (t *Transport) observe(req *http.Request, status int, elapsed time.Duration) {
	if t.metrics == nil {
		return
	}
	host := req.URL.Host
	t.metrics.OutboundRequests.WithLabelValues(host, metrics.ExactStatusLabel(status)).Inc()
	t.metrics.OutboundDuration.WithLabelValues(host).Observe(elapsed.Seconds())
}

// bodyPreview returns the first bytes of a replayable body without
// consuming it.
func (t *Transport) bodyPreview(req *http.Request) string {
	if req.Body == nil || req.Body == http.NoBody {
		return ""
	}
	if !t.logBodies || req.GetBody == nil {
		return "[body omitted]"
	}

	body, err := req.GetBody()
	if err != nil {
		return "[body unavailable]"
	}
	defer func() { _ = body.Close() }()

	buf, err := io.ReadAll(io.LimitReader(body, int64(t.previewSize)))
	if err != nil {
		return "[body unavailable]"
	}
	return redact.String(string(buf))
}
