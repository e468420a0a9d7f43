package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

const meterName = "github.com/ecogai/pollution-backend"

// Metrics holds all application metrics
type Metrics struct {
	RequestCount    metric.Int64Counter
	RequestDuration metric.Float64Histogram
	ReportsCreated  metric.Int64Counter
	AdviceGenerated metric.Int64Counter
	AlertsStored    metric.Int64Counter
}

// Setup initializes OpenTelemetry
func Setup(ctx context.Context, serviceName, serviceVersion, endpoint string) (func(context.Context) error, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, err
	}

	traceExporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tracerProvider.Shutdown, nil
}

// InitMetrics initializes application metrics
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)

	requestCount, err := meter.Int64Counter(
		"http.server.request.count",
		metric.WithDescription("Number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	requestDuration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	reportsCreated, err := meter.Int64Counter(
		"pollution.reports.created",
		metric.WithDescription("Number of pollution reports created"),
	)
	if err != nil {
		return nil, err
	}

	adviceGenerated, err := meter.Int64Counter(
		"pollution.advice.generated",
		metric.WithDescription("Number of health advisories generated, by source"),
	)
	if err != nil {
		return nil, err
	}

	alertsStored, err := meter.Int64Counter(
		"pollution.alerts.stored",
		metric.WithDescription("Number of health alerts stored by the alert pipeline"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		RequestCount:    requestCount,
		RequestDuration: requestDuration,
		ReportsCreated:  reportsCreated,
		AdviceGenerated: adviceGenerated,
		AlertsStored:    alertsStored,
	}, nil
}

// StartSpan starts a new trace span
func StartSpan(ctx context.Context, spanName string) (context.Context, trace.Span) {
	tracer := otel.Tracer(meterName)
	return tracer.Start(ctx, spanName)
}

// SetSpanAttributes sets attributes on a span
func SetSpanAttributes(span trace.Span, attrs ...attribute.KeyValue) {
	span.SetAttributes(attrs...)
}

// RecordRequestMetric records a request metric with attributes
func RecordRequestMetric(ctx context.Context, metrics *Metrics, method, path string, statusCode int, duration time.Duration) {
	if metrics == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("http.route", path),
		attribute.Int("http.status_code", statusCode),
	}

	metrics.RequestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	metrics.RequestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordReportCreated counts a stored pollution report.
func RecordReportCreated(ctx context.Context, metrics *Metrics, pollutionType, severity string) {
	if metrics == nil {
		return
	}
	metrics.ReportsCreated.Add(ctx, 1, metric.WithAttributes(
		attribute.String("pollution.type", pollutionType),
		attribute.String("pollution.severity", severity),
	))
}

// RecordAdviceGenerated counts a generated advisory. Source is
// "bedrock" or "fallback".
func RecordAdviceGenerated(ctx context.Context, metrics *Metrics, source string) {
	if metrics == nil {
		return
	}
	metrics.AdviceGenerated.Add(ctx, 1, metric.WithAttributes(
		attribute.String("advice.source", source),
	))
}

// RecordAlertStored counts a stored health alert.
func RecordAlertStored(ctx context.Context, metrics *Metrics, alertType string) {
	if metrics == nil {
		return
	}
	metrics.AlertsStored.Add(ctx, 1, metric.WithAttributes(
		attribute.String("alert.type", alertType),
	))
}
