package otel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	eventbus "github.com/hanpama/gqlcore/internal/eventbus"
	events "github.com/hanpama/gqlcore/internal/events"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestAttachMetrics_RecordsFinishEvents(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	bus := eventbus.New()
	detach, err := AttachMetrics(bus, mp.Meter(tracerName))
	require.NoError(t, err)

	ctx := context.Background()
	eventbus.Emit(bus, ctx, events.ValidationFinish{Duration: 2 * time.Millisecond, Errors: []error{errors.New("bad")}})
	eventbus.Emit(bus, ctx, events.ExecutionFinish{OperationType: "query", Duration: time.Millisecond})
	eventbus.Emit(bus, ctx, events.ExecutionFinish{
		OperationType: "mutation",
		Duration:      time.Millisecond,
		Errors:        []error{errors.New("a"), errors.New("b")},
	})

	got := collect(t, reader)

	requests := got["graphql.requests"].Data.(metricdata.Sum[int64])
	byOutcome := map[string]int64{}
	for _, dp := range requests.DataPoints {
		op, _ := dp.Attributes.Value("graphql.operation.type")
		outcome, _ := dp.Attributes.Value("graphql.outcome")
		byOutcome[op.AsString()+"/"+outcome.AsString()] = dp.Value
	}
	require.Equal(t, map[string]int64{"query/ok": 1, "mutation/error": 1}, byOutcome)

	errs := got["graphql.errors"].Data.(metricdata.Sum[int64])
	byPhase := map[string]int64{}
	for _, dp := range errs.DataPoints {
		phase, _ := dp.Attributes.Value(attribute.Key("graphql.phase"))
		byPhase[phase.AsString()] = dp.Value
	}
	require.Equal(t, map[string]int64{"validation": 1, "execution": 2}, byPhase)

	validation := got["graphql.validation.duration"].Data.(metricdata.Histogram[float64])
	require.Len(t, validation.DataPoints, 1)
	require.Equal(t, uint64(1), validation.DataPoints[0].Count)

	execution := got["graphql.execution.duration"].Data.(metricdata.Histogram[float64])
	require.Len(t, execution.DataPoints, 2)

	detach()
	eventbus.Emit(bus, ctx, events.ExecutionFinish{OperationType: "query"})
	requests = collect(t, reader)["graphql.requests"].Data.(metricdata.Sum[int64])
	var total int64
	for _, dp := range requests.DataPoints {
		total += dp.Value
	}
	require.Equal(t, int64(2), total)
}
