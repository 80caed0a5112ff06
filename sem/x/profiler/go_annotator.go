// Copyright © 2024 The libadalang-go authors

package profiler

import (
	"context"
	"runtime/pprof"

	"github.com/Pateldisolution/libadalang/sem"
)

// pprofAnnotator appends query labels to pprof output when pprof is
// enabled.  It does not start pprof itself; callers that want profiles
// enable collection in their own harness.
type pprofAnnotator struct {
	profiler
	contexts []context.Context
}

var _ sem.Profiler = &pprofAnnotator{}

// NewPprofAnnotator returns a profiler that labels goroutine samples with
// the query being computed.
func NewPprofAnnotator(parentContext context.Context, opts ...Option) sem.Profiler {
	if parentContext == nil {
		parentContext = context.Background()
	}
	p := &pprofAnnotator{
		contexts: []context.Context{parentContext},
	}
	p.profiler.applyConfigs(opts...)
	return p
}

func (p *pprofAnnotator) EnterQuery(unit, prop string) func() {
	name := spanName(unit, prop)
	if p.skipped(name) {
		return noop
	}
	parent := p.contexts[len(p.contexts)-1]
	ctx := pprof.WithLabels(parent, pprof.Labels("query", name))
	pprof.SetGoroutineLabels(ctx)
	p.contexts = append(p.contexts, ctx)
	return func() {
		p.contexts = p.contexts[:len(p.contexts)-1]
		pprof.SetGoroutineLabels(p.contexts[len(p.contexts)-1])
	}
}
