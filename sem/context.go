// Copyright © 2024 The libadalang-go authors

/*
Package sem answers semantic queries over parsed Ada units: scoped name
lookup through lazily built lexical environments, on-demand loading of
referenced compilation units, correspondence between declarations that
model one logical entity (specification and body, generic wrapper and
wrapped declaration, private and full type view), dialect-aware keyword
classification, and a structural debug image.

Everything is driven through a Context, which owns its units and their
caches.  Queries are memoized per node and reentrant; inconsistent tree
shapes surface as contained Failure values or absence sentinels, never as
panics.  A Context is built for single-threaded use; concurrent callers
must hold the context lock around each query.
*/
package sem

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/Pateldisolution/libadalang/ast"
	"github.com/Pateldisolution/libadalang/parser"
	"github.com/Pateldisolution/libadalang/parser/prologue"
	"github.com/Pateldisolution/libadalang/symbols"
)

// UnitKind distinguishes a unit's specification from its body.  A unit
// name can be loaded under both kinds at once, as two analysis units.
type UnitKind int

const (
	UnitSpec UnitKind = iota
	UnitBody
)

func (k UnitKind) String() string {
	if k == UnitBody {
		return "body"
	}
	return "spec"
}

type unitKey struct {
	name string
	kind UnitKind
}

// UnitProvider locates the source file declaring a unit.
type UnitProvider interface {
	Locate(name string, kind UnitKind) (string, error)
}

// PathProvider locates unit sources on a directory search path using GNAT
// default file naming: the canonical unit name with dots replaced by
// dashes, suffixed ".ads" for specifications and ".adb" for bodies.
type PathProvider struct {
	Dirs []string
}

func (p *PathProvider) Locate(name string, kind UnitKind) (string, error) {
	base := strings.ReplaceAll(symbols.Canonical(name), ".", "-")
	ext := ".ads"
	if kind == UnitBody {
		ext = ".adb"
	}
	for _, dir := range p.Dirs {
		path := filepath.Join(dir, base+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("sem: no source file for unit %s (%s)", name, kind)
}

// Context owns an independent set of analysis units and every cache and
// environment built over them.  Contexts share no state.
type Context struct {
	mu       sync.Mutex
	symbols  *symbols.Table
	dialect  LanguageVersion
	provider UnitProvider
	profiler Profiler

	units   map[unitKey]*AnalysisUnit
	byRoot  map[*ast.Node]*AnalysisUnit
	failed  map[unitKey]uint64
	loading map[unitKey]bool

	// generation advances whenever the unit set changes (load, reload).
	// Environment handles and cached failures are stamped with it so
	// stale state is detected instead of resurrected.
	generation uint64

	keywords map[LanguageVersion]map[*symbols.Symbol]bool
}

// Option configures a Context.
type Option func(*Context)

// WithDialect sets the context's default language revision.
func WithDialect(v LanguageVersion) Option {
	return func(c *Context) { c.dialect = v }
}

// WithProvider sets the unit provider used to locate referenced units.
func WithProvider(p UnitProvider) Option {
	return func(c *Context) { c.provider = p }
}

// WithSourceDirs configures a PathProvider over dirs.
func WithSourceDirs(dirs ...string) Option {
	return WithProvider(&PathProvider{Dirs: dirs})
}

// WithProfiler installs a query profiler.
func WithProfiler(p Profiler) Option {
	return func(c *Context) { c.profiler = p }
}

// NewContext returns an empty analysis context.  The default provider
// searches the current directory.
func NewContext(opts ...Option) *Context {
	c := &Context{
		symbols:  symbols.NewTable(),
		dialect:  Ada2012,
		provider: &PathProvider{Dirs: []string{"."}},
		units:    make(map[unitKey]*AnalysisUnit),
		byRoot:   make(map[*ast.Node]*AnalysisUnit),
		failed:   make(map[unitKey]uint64),
		loading:  make(map[unitKey]bool),
		keywords: make(map[LanguageVersion]map[*symbols.Symbol]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lock acquires the context's exclusive lock.  Queries mutate shared
// caches, so callers running goroutines against one context must wrap
// every query in Lock/Unlock.
func (c *Context) Lock()   { c.mu.Lock() }
func (c *Context) Unlock() { c.mu.Unlock() }

// Symbols returns the context's interning table.
func (c *Context) Symbols() *symbols.Table { return c.symbols }

// Dialect returns the context's default language revision.
func (c *Context) Dialect() LanguageVersion { return c.dialect }

// Units returns the loaded units sorted by name then kind.
func (c *Context) Units() []*AnalysisUnit {
	units := make([]*AnalysisUnit, 0, len(c.units))
	for _, u := range c.units {
		units = append(units, u)
	}
	sort.Slice(units, func(i, j int) bool {
		if units[i].name != units[j].name {
			return units[i].name < units[j].name
		}
		return units[i].kind < units[j].kind
	})
	return units
}

// Unit returns the loaded unit with the given canonical name and kind, or
// nil.  It never loads.
func (c *Context) Unit(name string, kind UnitKind) *AnalysisUnit {
	return c.units[unitKey{name: symbols.Canonical(name), kind: kind}]
}

// UnitOf returns the analysis unit owning n, or nil for nodes outside any
// registered unit.
func (c *Context) UnitOf(n *ast.Node) *AnalysisUnit {
	if n == nil {
		return nil
	}
	root := n.FindEnclosing(ast.KindCompilationUnit)
	if root == nil {
		return nil
	}
	return c.byRoot[root]
}

// GetUnitFromFile returns the unit declared by path, parsing and
// registering it on first call.  The unit's name and kind are read from
// the file's prologue.
func (c *Context) GetUnitFromFile(path string) (*AnalysisUnit, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	info, err := prologue.Scan(src)
	if err != nil {
		return nil, err
	}
	key := unitKey{name: info.Name, kind: prologueKind(info.Kind)}
	if u := c.units[key]; u != nil {
		return u, nil
	}
	return c.registerUnit(key, path, src)
}

// registerUnit parses src and installs the resulting unit under key.  The
// load is atomic: on any error no unit is added.
func (c *Context) registerUnit(key unitKey, path string, src []byte) (*AnalysisUnit, error) {
	res, err := parser.Parse(path, src)
	if err != nil {
		return nil, err
	}
	c.generation++
	u := &AnalysisUnit{
		ctx:        c,
		filename:   path,
		name:       key.name,
		kind:       key.kind,
		root:       res.Root,
		tokens:     res.Tokens,
		generation: c.generation,
	}
	c.units[key] = u
	c.byRoot[res.Root] = u
	delete(c.failed, key)
	return u, nil
}

func prologueKind(k prologue.UnitKind) UnitKind {
	if k == prologue.Body {
		return UnitBody
	}
	return UnitSpec
}

// sym interns text's canonical form.
func (c *Context) sym(text string) *symbols.Symbol {
	return c.symbols.Intern(text)
}
