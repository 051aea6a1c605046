package otel

import (
	"context"
	"errors"

	eventbus "github.com/hanpama/gqlcore/internal/eventbus"
	events "github.com/hanpama/gqlcore/internal/events"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the engine's request instruments.
type Metrics struct {
	// ValidationDuration records parse plus validation time in seconds.
	ValidationDuration metric.Float64Histogram
	// ExecutionDuration records execution time in seconds by operation type.
	ExecutionDuration metric.Float64Histogram
	// Requests counts executed operations by operation type and outcome.
	Requests metric.Int64Counter
	// Errors counts reported errors by phase.
	Errors metric.Int64Counter
}

// NewMetrics creates the instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	var m Metrics
	var err, e error
	m.ValidationDuration, e = meter.Float64Histogram("graphql.validation.duration",
		metric.WithDescription("Time spent parsing and validating documents."),
		metric.WithUnit("s"))
	err = errors.Join(err, e)
	m.ExecutionDuration, e = meter.Float64Histogram("graphql.execution.duration",
		metric.WithDescription("Time spent executing operations."),
		metric.WithUnit("s"))
	err = errors.Join(err, e)
	m.Requests, e = meter.Int64Counter("graphql.requests",
		metric.WithDescription("Executed operations."))
	err = errors.Join(err, e)
	m.Errors, e = meter.Int64Counter("graphql.errors",
		metric.WithDescription("Errors reported by validation and execution."))
	err = errors.Join(err, e)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// AttachMetrics records the finish events on bus into instruments created
// on meter.
func AttachMetrics(bus *eventbus.Bus, meter metric.Meter) (detach func(), err error) {
	m, err := NewMetrics(meter)
	if err != nil {
		return nil, err
	}
	unsubs := []func(){
		eventbus.On(bus, m.validationFinish),
		eventbus.On(bus, m.executionFinish),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}, nil
}

func (m *Metrics) validationFinish(ctx context.Context, e events.ValidationFinish) {
	m.ValidationDuration.Record(ctx, e.Duration.Seconds())
	if len(e.Errors) > 0 {
		m.Errors.Add(ctx, int64(len(e.Errors)), metric.WithAttributes(attribute.String("graphql.phase", "validation")))
	}
}

func (m *Metrics) executionFinish(ctx context.Context, e events.ExecutionFinish) {
	opType := attribute.String("graphql.operation.type", e.OperationType)
	outcome := "ok"
	if len(e.Errors) > 0 {
		outcome = "error"
		m.Errors.Add(ctx, int64(len(e.Errors)), metric.WithAttributes(attribute.String("graphql.phase", "execution")))
	}
	m.ExecutionDuration.Record(ctx, e.Duration.Seconds(), metric.WithAttributes(opType))
	m.Requests.Add(ctx, 1, metric.WithAttributes(opType, attribute.String("graphql.outcome", outcome)))
}
