package clients

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/motivational-quotes/internal/adapters/http/middleware"
	"github.com/jsamuelsen/motivational-quotes/internal/platform/config"
	"github.com/jsamuelsen/motivational-quotes/internal/platform/logging"
)

const (
	instrumentationName = "github.com/jsamuelsen/motivational-quotes/internal/adapters/clients"

	defaultTimeout             = 10 * time.Second
	defaultMaxIdleConns        = 100
	defaultMaxIdleConnsPerHost = 10
	defaultIdleConnTimeout     = 90 * time.Second
)

// Config describes one downstream service, in practice the quote GraphQL API.
type Config struct {
	// BaseURL is scheme and host, e.g. "http://localhost:4000".
	BaseURL string

	// ServiceName labels logs, spans, metrics and health output. Required.
	ServiceName string

	// Timeout bounds one attempt. Zero means ten seconds.
	Timeout time.Duration

	Circuit   config.CircuitBreakerConfig
	Transport config.TransportConfig

	// Headers are sent on every request, e.g. an API key.
	Headers map[string]string

	Logger *slog.Logger
}

// Client sends single-attempt requests through a circuit breaker, with a
// client span, request metrics and request/correlation id propagation.
// It never retries.
type Client struct {
	http        *http.Client
	baseURL     string
	serviceName string
	headers     map[string]string
	logger      *slog.Logger
	cb          *CircuitBreaker
	tracer      trace.Tracer

	duration metric.Float64Histogram
	total    metric.Int64Counter
}

// New validates cfg and builds a Client with its own breaker and connection pool.
func New(cfg *Config) (*Client, error) {
	switch {
	case cfg == nil:
		return nil, errors.New("config is required")
	case cfg.ServiceName == "":
		return nil, errors.New("service name is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(slog.String("component", "clients.Client"), slog.String("downstream", cfg.ServiceName))

	c := &Client{
		http: &http.Client{
			Timeout:   cmpDuration(cfg.Timeout, defaultTimeout),
			Transport: newTransport(cfg.Transport),
		},
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		serviceName: cfg.ServiceName,
		headers:     cfg.Headers,
		logger:      logger,
		tracer:      otel.Tracer(instrumentationName),
		cb: NewCircuitBreaker(CircuitBreakerConfig{
			MaxFailures:   cfg.Circuit.MaxFailures,
			Timeout:       cfg.Circuit.Timeout,
			HalfOpenLimit: cfg.Circuit.HalfOpenLimit,
		}),
	}

	c.cb.OnStateChange(func(from, to State) {
		logger.Warn("circuit breaker state changed", slog.String("from", from.String()), slog.String("to", to.String()))
	})

	if err := c.initMetrics(otel.Meter(instrumentationName)); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Client) initMetrics(meter metric.Meter) error {
	var err error

	c.duration, err = meter.Float64Histogram("http.client.request.duration",
		metric.WithDescription("Time spent on one downstream attempt."),
		metric.WithUnit("s"))
	if err != nil {
		return fmt.Errorf("creating duration metric: %w", err)
	}

	c.total, err = meter.Int64Counter("http.client.request.total",
		metric.WithDescription("Downstream attempts by result, including circuit rejections."))
	if err != nil {
		return fmt.Errorf("creating request counter: %w", err)
	}

	return nil
}

func newTransport(cfg config.TransportConfig) *http.Transport {
	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        cmpInt(cfg.MaxIdleConns, defaultMaxIdleConns),
		MaxIdleConnsPerHost: cmpInt(cfg.MaxIdleConnsPerHost, defaultMaxIdleConnsPerHost),
		IdleConnTimeout:     cmpDuration(cfg.IdleConnTimeout, defaultIdleConnTimeout),
	}
}

// Post sends a JSON body to path, the way every GraphQL operation is sent.
func (c *Client) Post(ctx context.Context, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL(path), body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.Do(ctx, req)
}

// Do sends req once. Transport errors wrap ErrRequestFailed. A 5xx answer is
// closed and reported as ErrServerError. Both count against the breaker;
// 4xx answers are returned to the caller and do not. An open breaker
// fails with ErrCircuitOpen without touching the network.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()
	logger := logging.FromContext(ctx).With(
		slog.String("downstream", c.serviceName),
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
	)

	if !c.cb.Allow() {
		c.record(ctx, req.Method, 0, 0, "circuit_open")
		logger.Warn("request blocked by circuit breaker")

		return nil, ErrCircuitOpen
	}

	ctx, span := c.tracer.Start(ctx, "HTTP "+req.Method+" "+c.serviceName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
			attribute.String("peer.service", c.serviceName),
		),
	)
	defer span.End()

	c.setHeaders(ctx, req)

	resp, err := c.http.Do(req.WithContext(ctx))
	elapsed := time.Since(start)

	if err != nil {
		c.cb.RecordFailure()
		span.SetStatus(codes.Error, err.Error())
		c.record(ctx, req.Method, 0, elapsed, "error")
		logger.Error("request failed", slog.Duration("duration", elapsed), slog.Any("error", err))

		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	status := resp.StatusCode
	span.SetAttributes(attribute.Int("http.status_code", status))

	if status >= http.StatusBadRequest {
		span.SetStatus(codes.Error, "HTTP "+strconv.Itoa(status))
	}

	if status >= http.StatusInternalServerError {
		c.cb.RecordFailure()
		c.record(ctx, req.Method, status, elapsed, "5xx")
		logger.Error("request failed with server error", slog.Int("status", status), slog.Duration("duration", elapsed))

		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Debug("failed to close response body", slog.Any("error", closeErr))
		}

		return nil, fmt.Errorf("%w: %d", ErrServerError, status)
	}

	c.cb.RecordSuccess()
	c.record(ctx, req.Method, status, elapsed, strconv.Itoa(status/100)+"xx")
	logger.Debug("request completed", slog.Int("status", status), slog.Duration("duration", elapsed))

	return resp, nil
}

// CircuitState reports the breaker state for diagnostics.
func (c *Client) CircuitState() State {
	return c.cb.State()
}

// ServiceName is the configured downstream name.
func (c *Client) ServiceName() string {
	return c.serviceName
}

// setHeaders forwards the caller's ids and trace context, then applies the
// configured static headers.
func (c *Client) setHeaders(ctx context.Context, req *http.Request) {
	if id := middleware.RequestIDFromContext(ctx); id != "" {
		req.Header.Set(middleware.HeaderRequestID, id)
	}

	if id := middleware.CorrelationIDFromContext(ctx); id != "" {
		req.Header.Set(middleware.HeaderCorrelationID, id)
	}

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
}

func (c *Client) buildURL(path string) string {
	return c.baseURL + "/" + strings.TrimPrefix(path, "/")
}

func (c *Client) record(ctx context.Context, method string, status int, elapsed time.Duration, result string) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("peer.service", c.serviceName),
		attribute.String("result", result),
	}

	if status > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", status))
	}

	opt := metric.WithAttributes(attrs...)
	c.duration.Record(ctx, elapsed.Seconds(), opt)
	c.total.Add(ctx, 1, opt)
}

func cmpInt(v, fallback int) int {
	if v > 0 {
		return v
	}

	return fallback
}

func cmpDuration(v, fallback time.Duration) time.Duration {
	if v > 0 {
		return v
	}

	return fallback
}
