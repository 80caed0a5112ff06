// Copyright © 2024 The libadalang-go authors

package profiler

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Pateldisolution/libadalang/sem"
)

// ContextOpenTelemetryTracerKey looks up a parent tracer name from a
// context key.
const ContextOpenTelemetryTracerKey = "otelParentTracer"

var _ sem.Profiler = &otelAnnotator{}

type otelAnnotator struct {
	profiler
	contexts []context.Context
}

// NewOpenTelemetryAnnotator returns a profiler that opens an
// OpenTelemetry span per computed query, parented under parentContext.
func NewOpenTelemetryAnnotator(parentContext context.Context, opts ...Option) sem.Profiler {
	if parentContext == nil {
		parentContext = context.Background()
	}
	p := &otelAnnotator{
		contexts: []context.Context{parentContext},
	}
	p.profiler.applyConfigs(opts...)
	return p
}

func contextTracer(ctx context.Context) trace.Tracer {
	tracerName, ok := ctx.Value(ContextOpenTelemetryTracerKey).(string)
	if !ok {
		tracerName = "libadalang"
	}
	return otel.GetTracerProvider().Tracer(tracerName)
}

func (p *otelAnnotator) EnterQuery(unit, prop string) func() {
	name := spanName(unit, prop)
	if p.skipped(name) {
		return noop
	}
	parent := p.contexts[len(p.contexts)-1]
	ctx, span := contextTracer(parent).Start(parent, name)
	span.SetAttributes(
		attribute.String("ada.unit", unit),
		attribute.String("ada.property", prop),
	)
	p.contexts = append(p.contexts, ctx)
	return func() {
		span.End()
		p.contexts = p.contexts[:len(p.contexts)-1]
	}
}
