// Copyright © 2024 The libadalang-go authors

package sem

import (
	"errors"
	"fmt"

	"github.com/Pateldisolution/libadalang/ast"
	"github.com/Pateldisolution/libadalang/parser/token"
)

// Property identifies a memoizable semantic computation.
type Property uint8

const (
	PropInvalid Property = iota
	// PropEnv is lazy lexical environment construction.
	PropEnv
	// PropCorrespond is declaration correspondence resolution; the query
	// argument names the correspondence kind.
	PropCorrespond

	numProps
)

func (p Property) String() string {
	propStrings := [numProps]string{
		PropInvalid:    "invalid",
		PropEnv:        "env",
		PropCorrespond: "correspond",
	}
	if p >= numProps {
		return propStrings[PropInvalid]
	}
	return propStrings[p]
}

// Failure is a contained query failure: the queried tree shape could not
// be resolved (a dependency cycle, a missing semantic parent, a unit that
// would not load).  Navigation-style callers convert it to a sentinel;
// it never escapes as a panic.
type Failure struct {
	Prop Property
	Loc  *token.Location
	Msg  string
}

func (f *Failure) Error() string {
	if f.Loc == nil {
		return fmt.Sprintf("query %s: %s", f.Prop, f.Msg)
	}
	return fmt.Sprintf("query %s: %s: %s", f.Prop, f.Loc, f.Msg)
}

// IsFailure reports whether err is (or wraps) a contained query failure.
func IsFailure(err error) bool {
	var f *Failure
	return errors.As(err, &f)
}

func failf(prop Property, n *ast.Node, format string, v ...interface{}) *Failure {
	f := &Failure{Prop: prop, Msg: fmt.Sprintf(format, v...)}
	if n != nil {
		f.Loc = n.Loc()
	}
	return f
}

// Profiler observes query evaluation.  EnterQuery is called when a query
// begins computing (cache misses only) and the returned function when the
// computation completes.  Queries nest strictly on one call stack, so
// implementations may keep a span stack.
type Profiler interface {
	EnterQuery(unit string, prop string) func()
}

type queryKey struct {
	node uint32
	prop Property
	args string
}

type cacheEntry struct {
	val     interface{}
	fail    *Failure
	gen     uint64
	running bool
}

// eval memoizes compute under (node, prop, args) in the node's owning
// unit.  The first call computes and stores the result; later calls
// return it without recomputation.  Evaluation is reentrant: compute may
// issue further queries, including unit loads.  A query transitively
// depending on its own in-progress evaluation is detected here and
// contained as a Failure instead of recursing without bound.
//
// Successes are cached for the unit's lifetime.  Failures are cached too,
// but stamped with the context generation and recomputed once the
// generation moves: a failure's cause may be a unit that was missing at
// the time and has since been loaded.
func (c *Context) eval(u *AnalysisUnit, n *ast.Node, prop Property, args string, compute func() (interface{}, error)) (interface{}, error) {
	if u == nil || n == nil {
		return compute()
	}
	key := queryKey{node: n.ID(), prop: prop, args: args}
	if e := u.cache[key]; e != nil {
		switch {
		case e.running:
			return nil, failf(prop, n, "dependency cycle")
		case e.fail == nil:
			return e.val, nil
		case e.gen == c.generation:
			return nil, e.fail
		}
		// stale failure: fall through and retry
	}
	if u.cache == nil {
		u.cache = make(map[queryKey]*cacheEntry)
	}
	e := &cacheEntry{running: true}
	u.cache[key] = e
	if c.profiler != nil {
		exit := c.profiler.EnterQuery(u.name, prop.String())
		defer exit()
	}
	v, err := compute()
	e.running = false
	e.gen = c.generation
	if err != nil {
		f, ok := err.(*Failure)
		if !ok {
			f = failf(prop, n, "%v", err)
		}
		e.fail = f
		return nil, f
	}
	e.val = v
	return v, nil
}

// Query evaluates a memoized property of n.  It returns the property
// value or a contained *Failure; it never panics for resolvable inputs.
// PropEnv takes no arguments and yields an EnvRef.  PropCorrespond takes
// a correspondence kind name and yields a *ast.Node (nil for structural
// absence).
func (c *Context) Query(n *ast.Node, prop Property, args ...string) (interface{}, error) {
	switch prop {
	case PropEnv:
		return c.EnvOf(n), nil
	case PropCorrespond:
		if len(args) != 1 {
			return nil, failf(prop, n, "want 1 argument, got %d", len(args))
		}
		kind, err := ParseCorrespondence(args[0])
		if err != nil {
			return nil, failf(prop, n, "%v", err)
		}
		return c.Correspond(kind, n), nil
	}
	return nil, failf(prop, n, "unknown property")
}
