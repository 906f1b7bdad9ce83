package registry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/mox-nexus/x.uma/registry")

// traceLoad wraps a single Load call in a span named
// "xuma.registry.Load", recording the config's top-level field-matcher
// count, the outcome and, on success, the resulting tree's depth as span
// attributes. It
// adds no behavior beyond tracing — load itself runs unchanged whether or
// not a tracer provider is configured (the default no-op tracer costs
// effectively nothing).
func traceLoad(ctx context.Context, fieldMatcherCount int, fn func(context.Context) (depth int, err error)) error {
	ctx, span := tracer.Start(ctx, "xuma.registry.Load",
		trace.WithAttributes(attribute.Int("xuma.field_matchers", fieldMatcherCount)))
	defer span.End()

	depth, err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetAttributes(attribute.Int("xuma.depth", depth))
	span.SetStatus(codes.Ok, "")
	return nil
}
