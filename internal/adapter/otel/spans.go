package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "agentdesk"

// StartQuerySpan starts a span for a single-record lookup.
func StartQuerySpan(ctx context.Context, op, agentID string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, op,
		trace.WithAttributes(
			attribute.String("agent.id", agentID),
		),
	)
}

// StartListSpan starts a span for a paginated collection query.
func StartListSpan(ctx context.Context, page, pageSize int, hasSearch bool) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "agents.get_many",
		trace.WithAttributes(
			attribute.Int("page.number", page),
			attribute.Int("page.size", pageSize),
			attribute.Bool("page.search", hasSearch),
		),
	)
}

// StartMutationSpan starts a span for a create or update operation.
func StartMutationSpan(ctx context.Context, op, agentID string) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{}
	if agentID != "" {
		attrs = append(attrs, attribute.String("agent.id", agentID))
	}
	return otel.Tracer(tracerName).Start(ctx, op, trace.WithAttributes(attrs...))
}
