// Copyright © 2024 The libadalang-go authors

package profiler

import (
	"context"

	octrace "go.opencensus.io/trace"

	"github.com/Pateldisolution/libadalang/sem"
)

var _ sem.Profiler = &ocAnnotator{}

type ocAnnotator struct {
	profiler
	contexts []context.Context
}

// NewOpenCensusAnnotator returns a profiler that opens an OpenCensus
// span per computed query, parented under parentContext.
func NewOpenCensusAnnotator(parentContext context.Context, opts ...Option) sem.Profiler {
	if parentContext == nil {
		parentContext = context.Background()
	}
	p := &ocAnnotator{
		contexts: []context.Context{parentContext},
	}
	p.profiler.applyConfigs(opts...)
	return p
}

func (p *ocAnnotator) EnterQuery(unit, prop string) func() {
	name := spanName(unit, prop)
	if p.skipped(name) {
		return noop
	}
	parent := p.contexts[len(p.contexts)-1]
	ctx, span := octrace.StartSpan(parent, name)
	span.AddAttributes(
		octrace.StringAttribute("ada.unit", unit),
		octrace.StringAttribute("ada.property", prop),
	)
	p.contexts = append(p.contexts, ctx)
	return func() {
		span.End()
		p.contexts = p.contexts[:len(p.contexts)-1]
	}
}
