// Copyright © 2024 The libadalang-go authors

// Package profiler provides sem.Profiler annotators that mirror query
// evaluation onto tracing backends.  Queries nest strictly on one call
// stack, so each annotator keeps a span-context stack: EnterQuery pushes
// a child of the current top and the returned exit function pops it.
package profiler

import "fmt"

// SkipFilter drops queries from the trace.  It receives the span name
// and returns true to suppress the span.
type SkipFilter func(name string) bool

// profiler carries configuration shared by the annotators.
type profiler struct {
	skip SkipFilter
}

// Option configures an annotator.
type Option func(*profiler)

// WithSkipFilter installs a filter suppressing uninteresting queries.
func WithSkipFilter(f SkipFilter) Option {
	return func(p *profiler) { p.skip = f }
}

func (p *profiler) applyConfigs(opts ...Option) {
	for _, opt := range opts {
		opt(p)
	}
}

func (p *profiler) skipped(name string) bool {
	return p.skip != nil && p.skip(name)
}

// spanName renders the span name for a query on a unit.
func spanName(unit, prop string) string {
	return fmt.Sprintf("%s:%s", prop, unit)
}

func noop() {}
