package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
)

const (
	// ServiceName identifies this service in metric resources
	ServiceName = "ridepulse"
	// ServiceVersion is stamped on metric resources
	ServiceVersion = "1.0.0"
	// MeterName is the instrumentation scope for application metrics
	MeterName = "ridepulse"
)

// Metrics holds the OpenTelemetry meter provider and the application's
// instruments, exported through the Prometheus registry at /metrics.
type Metrics struct {
	Provider *sdkmetric.MeterProvider
	Meter    metric.Meter
	Handler  http.Handler

	RequestCount    metric.Int64Counter
	RequestDuration metric.Float64Histogram
	SnapshotLoads   metric.Int64Counter
	SnapshotRows    metric.Int64Gauge
}

// InitializeMetrics sets up the OTel metric pipeline with the Prometheus
// exporter and registers the application instruments.
func InitializeMetrics(logger *slog.Logger) (*Metrics, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(ServiceName),
			semconv.ServiceVersion(ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	meter := provider.Meter(MeterName)

	m := &Metrics{
		Provider: provider,
		Meter:    meter,
		Handler:  promhttp.Handler(),
	}

	if m.RequestCount, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total HTTP requests processed"),
	); err != nil {
		return nil, fmt.Errorf("failed to create request counter: %w", err)
	}

	if m.RequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	if m.SnapshotLoads, err = meter.Int64Counter(
		"snapshot_loads_total",
		metric.WithDescription("Booking snapshot loads from disk"),
	); err != nil {
		return nil, fmt.Errorf("failed to create snapshot load counter: %w", err)
	}

	if m.SnapshotRows, err = meter.Int64Gauge(
		"snapshot_rows",
		metric.WithDescription("Row count of the cached booking snapshot"),
	); err != nil {
		return nil, fmt.Errorf("failed to create snapshot row gauge: %w", err)
	}

	logger.Info("metrics pipeline initialized",
		slog.String("exporter", "prometheus"),
		slog.String("meter", MeterName))

	return m, nil
}

// Shutdown flushes and stops the metric pipeline.
func (m *Metrics) Shutdown(ctx context.Context) error {
	if m == nil || m.Provider == nil {
		return nil
	}
	return m.Provider.Shutdown(ctx)
}
