package telemetry

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "github.com/jsamuelsen/motivational-quotes/telemetry"

	// HeaderTraceID echoes the server span's trace id so a visitor's bug
	// report can be matched to a trace.
	HeaderTraceID = "X-Trace-ID"
)

// httpInstruments are the OTel instruments recorded per page or API request.
type httpInstruments struct {
	duration metric.Float64Histogram
	total    metric.Int64Counter
	inFlight metric.Int64UpDownCounter
}

func newHTTPInstruments(meter metric.Meter) (*httpInstruments, error) {
	var (
		ins httpInstruments
		err error
	)

	ins.duration, err = meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("Time to serve a quote page, form action or API call."),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	ins.total, err = meter.Int64Counter("http.server.request.total",
		metric.WithDescription("Served requests."))
	if err != nil {
		return nil, err
	}

	ins.inFlight, err = meter.Int64UpDownCounter("http.server.active_requests",
		metric.WithDescription("Requests being served."))
	if err != nil {
		return nil, err
	}

	return &ins, nil
}

// Middleware returns the otelgin span middleware followed by request
// metrics. The span must exist before the metrics handler so its trace id
// can be echoed in HeaderTraceID ahead of the response.
func Middleware(serviceName string) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		otelgin.Middleware(serviceName),
		requestMetrics(otel.Meter(instrumentationName)),
	}
}

func requestMetrics(meter metric.Meter) gin.HandlerFunc {
	ins, err := newHTTPInstruments(meter)
	if err != nil {
		// Tracing keeps working without the instruments.
		otel.Handle(err)
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		route := attribute.String("http.route", c.FullPath())
		method := attribute.String("http.method", c.Request.Method)
		start := time.Now()

		if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
			c.Header(HeaderTraceID, sc.TraceID().String())
		}

		if ins != nil {
			ins.inFlight.Add(ctx, 1, metric.WithAttributes(method, route))
			defer ins.inFlight.Add(ctx, -1, metric.WithAttributes(method, route))
		}

		c.Next()

		if ins == nil {
			return
		}

		done := metric.WithAttributes(method, route, attribute.Int("http.status_code", c.Writer.Status()))
		ins.duration.Record(ctx, time.Since(start).Seconds(), done)
		ins.total.Add(ctx, 1, done)
	}
}
