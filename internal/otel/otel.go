// Package otel turns engine events into OpenTelemetry spans and metrics.
package otel

import (
	"context"
	"errors"
	"sync"

	eventbus "github.com/hanpama/gqlcore/internal/eventbus"
	events "github.com/hanpama/gqlcore/internal/events"
	reqid "github.com/hanpama/gqlcore/internal/reqid"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const tracerName = "gqlcore"

// Setup configures an OTLP/gRPC trace exporter and subscribes span
// recording to the global event bus. Metrics are recorded on the global
// meter provider. If endpoint is empty, no telemetry is configured.
func Setup(endpoint, service string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}
	exp, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
		)),
	)
	otel.SetTracerProvider(tp)

	detachMetrics, err := AttachMetrics(eventbus.Global(), otel.Meter(tracerName))
	if err != nil {
		return nil, errors.Join(err, tp.Shutdown(context.Background()))
	}
	unsubscribe := Attach(eventbus.Global(), tp.Tracer(tracerName))
	return func(ctx context.Context) error {
		unsubscribe()
		detachMetrics()
		return tp.Shutdown(ctx)
	}, nil
}

// Attach records validation and execution spans from the events on bus.
// Spans are correlated by the request ID in the event context.
func Attach(bus *eventbus.Bus, tracer trace.Tracer) (detach func()) {
	s := &subscriber{tracer: tracer}
	unsubs := []func(){
		eventbus.On(bus, s.validationStart),
		eventbus.On(bus, s.validationFinish),
		eventbus.On(bus, s.executionStart),
		eventbus.On(bus, s.executionFinish),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

type subscriber struct {
	tracer         trace.Tracer
	validateSpans  sync.Map // rid -> trace.Span
	executionSpans sync.Map // rid -> trace.Span
}

func (s *subscriber) validationStart(ctx context.Context, e events.ValidationStart) {
	rid, _ := reqid.FromContext(ctx)
	_, span := s.tracer.Start(ctx, "graphql.validate")
	span.SetAttributes(attribute.Int("graphql.document.length", len(e.Query)))
	s.validateSpans.Store(rid, span)
}

func (s *subscriber) validationFinish(ctx context.Context, e events.ValidationFinish) {
	rid, _ := reqid.FromContext(ctx)
	v, ok := s.validateSpans.LoadAndDelete(rid)
	if !ok {
		return
	}
	span := v.(trace.Span)
	span.SetAttributes(attribute.Int("graphql.error_count", len(e.Errors)))
	if len(e.Errors) > 0 {
		span.SetStatus(codes.Error, e.Errors[0].Error())
	}
	span.End()
}

func (s *subscriber) executionStart(ctx context.Context, e events.ExecutionStart) {
	rid, _ := reqid.FromContext(ctx)
	_, span := s.tracer.Start(ctx, "graphql.execute")
	span.SetAttributes(
		attribute.String("graphql.operation.name", e.OperationName),
		attribute.String("graphql.operation.type", e.OperationType),
	)
	s.executionSpans.Store(rid, span)
}

func (s *subscriber) executionFinish(ctx context.Context, e events.ExecutionFinish) {
	rid, _ := reqid.FromContext(ctx)
	v, ok := s.executionSpans.LoadAndDelete(rid)
	if !ok {
		return
	}
	span := v.(trace.Span)
	span.SetAttributes(attribute.Int("graphql.error_count", len(e.Errors)))
	for _, err := range e.Errors {
		span.RecordError(err)
	}
	span.End()
}
