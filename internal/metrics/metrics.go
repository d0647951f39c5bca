package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	appliedCounterName  = "ledger_transactions_applied_total"
	rejectedCounterName = "ledger_transactions_rejected_total"
	invalidCounterName  = "ledger_records_invalid_total"
)

// Recorder counts transaction outcomes
type Recorder struct {
	applied  metric.Int64Counter
	rejected metric.Int64Counter
	invalid  metric.Int64Counter
}

// NewRecorder registers the engine's counters on meter
func NewRecorder(meter metric.Meter) (*Recorder, error) {
	applied, err := meter.Int64Counter(appliedCounterName,
		metric.WithDescription("Transactions applied to an account"))
	if err != nil {
		return nil, err
	}
	rejected, err := meter.Int64Counter(rejectedCounterName,
		metric.WithDescription("Transactions rejected by an account"))
	if err != nil {
		return nil, err
	}
	invalid, err := meter.Int64Counter(invalidCounterName,
		metric.WithDescription("Input records that failed validation"))
	if err != nil {
		return nil, err
	}

	return &Recorder{applied: applied, rejected: rejected, invalid: invalid}, nil
}

// Applied records a successfully applied transaction of kind
func (r *Recorder) Applied(ctx context.Context, kind string) {
	if r == nil {
		return
	}
	r.applied.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// Rejected records a transaction the ledger refused, labelled with the reason
func (r *Recorder) Rejected(ctx context.Context, kind, reason string) {
	if r == nil {
		return
	}
	r.rejected.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("reason", reason),
	))
}

// Invalid records an input record dropped before reaching the ledger
func (r *Recorder) Invalid(ctx context.Context, reason string) {
	if r == nil {
		return
	}
	r.invalid.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}
