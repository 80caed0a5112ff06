// Copyright © 2024 The libadalang-go authors

// Package symbols provides interned, canonicalized identifier symbols.
//
// Ada identifiers are case-insensitive, so two spellings of the same name
// must compare equal everywhere in the analyzer.  A Table canonicalizes
// identifier text once at interning time and hands out a unique *Symbol per
// canonical spelling; all later comparisons are pointer comparisons.
package symbols

import "strings"

// Symbol is an interned identifier.  Symbols obtained from the same Table
// compare equal exactly when their canonical spellings are equal, so they
// may be used directly as map keys and compared with ==.
type Symbol struct {
	name string
}

// String returns the canonical (lower-case) spelling of the symbol.
func (s *Symbol) String() string {
	if s == nil {
		return ""
	}
	return s.name
}

// Table interns symbols.  A Table belongs to a single analysis context and
// is not safe for unsynchronized concurrent use, matching the context's
// single-writer discipline.
type Table struct {
	syms map[string]*Symbol
}

// NewTable initializes and returns an empty symbol table.
func NewTable() *Table {
	return &Table{syms: make(map[string]*Symbol)}
}

// Canonical returns the canonical spelling for identifier text.
func Canonical(text string) string {
	return strings.ToLower(text)
}

// Intern returns the unique symbol for text, creating it on first use.
func (t *Table) Intern(text string) *Symbol {
	name := Canonical(text)
	if s, ok := t.syms[name]; ok {
		return s
	}
	s := &Symbol{name: name}
	t.syms[name] = s
	return s
}

// Get returns the symbol for text if it has been interned, else nil.  Get
// never allocates, which makes it suitable for membership probes against
// sets keyed by symbols.
func (t *Table) Get(text string) *Symbol {
	return t.syms[Canonical(text)]
}

// Len returns the number of interned symbols.
func (t *Table) Len() int {
	return len(t.syms)
}
