package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

const meterName = "github.com/sheikh-saqib/transactions-engine"

// Provider owns the meter the engine records into. A disabled provider uses the
// global (no-op unless configured) meter provider and reports no totals.
type Provider struct {
	mp     *sdkmetric.MeterProvider
	reader *sdkmetric.ManualReader
}

func NewProvider(enabled bool) *Provider {
	if !enabled {
		return &Provider{}
	}

	reader := sdkmetric.NewManualReader()
	return &Provider{
		mp:     sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)),
		reader: reader,
	}
}

func (p *Provider) Meter() metric.Meter {
	if p.mp == nil {
		return otel.Meter(meterName)
	}
	return p.mp.Meter(meterName)
}

// Totals sums every int64 counter collected so far, keyed by metric name
func (p *Provider) Totals(ctx context.Context) (map[string]int64, error) {
	totals := make(map[string]int64)
	if p.reader == nil {
		return totals, nil
	}

	var rm metricdata.ResourceMetrics
	if err := p.reader.Collect(ctx, &rm); err != nil {
		return nil, err
	}

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				totals[m.Name] += dp.Value
			}
		}
	}
	return totals, nil
}

func (p *Provider) Shutdown(ctx context.Context) error {
	if p.mp == nil {
		return nil
	}
	return p.mp.Shutdown(ctx)
}
