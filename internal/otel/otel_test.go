package otel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	eventbus "github.com/hanpama/gqlcore/internal/eventbus"
	events "github.com/hanpama/gqlcore/internal/events"
	reqid "github.com/hanpama/gqlcore/internal/reqid"
)

func TestAttach_RecordsSpansPerRequest(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	bus := eventbus.New()
	detach := Attach(bus, tp.Tracer(tracerName))
	defer detach()

	ctx, _ := reqid.NewContext(context.Background())
	eventbus.Emit(bus, ctx, events.ValidationStart{Query: "{ a }"})
	eventbus.Emit(bus, ctx, events.ValidationFinish{Query: "{ a }", Duration: time.Millisecond})
	eventbus.Emit(bus, ctx, events.ExecutionStart{Query: "{ a }", OperationName: "Q", OperationType: "query"})
	eventbus.Emit(bus, ctx, events.ExecutionFinish{
		Query: "{ a }", OperationName: "Q", OperationType: "query",
		Errors: []error{errors.New("boom")},
	})

	ended := rec.Ended()
	require.Len(t, ended, 2)
	require.Equal(t, "graphql.validate", ended[0].Name())
	require.Equal(t, "graphql.execute", ended[1].Name())

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range ended[1].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	require.Equal(t, "Q", attrs["graphql.operation.name"].AsString())
	require.Equal(t, "query", attrs["graphql.operation.type"].AsString())
	require.Equal(t, int64(1), attrs["graphql.error_count"].AsInt64())
	require.Len(t, ended[1].Events(), 1, "recorded error event")
}

func TestAttach_FinishWithoutStartIsIgnored(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	bus := eventbus.New()
	Attach(bus, tp.Tracer(tracerName))

	ctx, _ := reqid.NewContext(context.Background())
	eventbus.Emit(bus, ctx, events.ExecutionFinish{})
	require.Empty(t, rec.Ended())
}

func TestAttach_Detach(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	bus := eventbus.New()
	Attach(bus, tp.Tracer(tracerName))()

	ctx, _ := reqid.NewContext(context.Background())
	eventbus.Emit(bus, ctx, events.ValidationStart{})
	eventbus.Emit(bus, ctx, events.ValidationFinish{})
	require.Empty(t, rec.Started())
}

func TestSetup_EmptyEndpointIsNoop(t *testing.T) {
	shutdown, err := Setup("", "svc")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}
