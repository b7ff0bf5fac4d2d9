package observability

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	ServiceName string
}

// InitMetrics initializes the Prometheus metrics exporter and installs the
// provider globally. Returns the MeterProvider and an HTTP handler for the
// /metrics endpoint.
func InitMetrics(cfg MetricsConfig) (*sdkmetric.MeterProvider, http.Handler, error) {
	exporter, err := promexporter.New()
	if err != nil {
		return nil, nil, err
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	return provider, promhttp.Handler(), nil
}

// CacheStatsFunc reports cumulative cache counters.
type CacheStatsFunc func() (hits, misses, evictions uint64)

// RegisterCacheMetrics exposes schedule cache counters as observable
// instruments on the given provider.
func RegisterCacheMetrics(provider *sdkmetric.MeterProvider, stats CacheStatsFunc) error {
	meter := provider.Meter("servicing/cache")

	hits, err := meter.Int64ObservableCounter("schedule_cache_hits_total",
		metric.WithDescription("Schedule cache lookups served without recomputation"))
	if err != nil {
		return err
	}
	misses, err := meter.Int64ObservableCounter("schedule_cache_misses_total",
		metric.WithDescription("Schedule cache lookups that triggered a calculation"))
	if err != nil {
		return err
	}
	evictions, err := meter.Int64ObservableCounter("schedule_cache_evictions_total",
		metric.WithDescription("Schedule cache entries evicted under capacity pressure"))
	if err != nil {
		return err
	}

	_, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		h, m, e := stats()
		o.ObserveInt64(hits, int64(h))
		o.ObserveInt64(misses, int64(m))
		o.ObserveInt64(evictions, int64(e))
		return nil
	}, hits, misses, evictions)
	return err
}
