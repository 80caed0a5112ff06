// Copyright © 2024 The libadalang-go authors

/*
Package prologue extracts the context clause and unit header from Ada
source without a full parse:

	prologue := {with_clause} ["private"] ["generic" {formal}] header
	with_clause := "with" name ";"
	header := "package" ["body"] name | "procedure" name | "function" name
	name := identifier {"." identifier}

The unit resolver uses it to learn which unit a file declares before
committing to a full parse, and to verify that a loaded file declares the
unit that was requested.  The scan is best-effort: body/spec kind for
subprogram units is inferred from the presence of an "is" after the header.
*/
package prologue

import (
	"fmt"
	"regexp"
	"strings"

	parsec "github.com/prataprc/goparsec"

	"github.com/Pateldisolution/libadalang/symbols"
)

// UnitKind distinguishes a unit declaration file from a unit body file.
type UnitKind int

const (
	Spec UnitKind = iota
	Body
)

func (k UnitKind) String() string {
	if k == Body {
		return "body"
	}
	return "spec"
}

// Info summarizes a compilation unit's prologue.  Names are canonical
// (case-folded) dotted unit names.
type Info struct {
	Withs   []string
	Name    string
	Kind    UnitKind
	Generic bool
}

var commentPattern = regexp.MustCompile(`--[^\n]*`)

var (
	nameP    = parsec.Token(`[A-Za-z][A-Za-z0-9_]*(?:\.[A-Za-z][A-Za-z0-9_]*)*`, "NAME")
	semiP    = parsec.Atom(";", "SEMI")
	withP    = parsec.Token(`(?i)with\b`, "WITH")
	privateP = parsec.Token(`(?i)private\b`, "PRIVATE")
	genericP = parsec.Token(`(?i)generic\b`, "GENERIC")
	pkgP     = parsec.Token(`(?i)package\b`, "PACKAGE")
	bodyP    = parsec.Token(`(?i)body\b`, "BODY")
	subpP    = parsec.Token(`(?i)(?:procedure|function)\b`, "SUBP")
	anyTokP  = parsec.Token(`[^\s;]+|;`, "TOK")
	isP      = parsec.Token(`(?i)is\b`, "IS")
)

// Scan parses the prologue of src.
func Scan(src []byte) (*Info, error) {
	clean := commentPattern.ReplaceAll(src, nil)
	s := parsec.NewScanner(clean)
	info := &Info{}

	withClause := parsec.And(nil, withP, nameP, semiP)
	for {
		node, next := withClause(s)
		if node == nil {
			break
		}
		fields := node.([]parsec.ParsecNode)
		info.Withs = append(info.Withs, canonicalName(fields[1]))
		s = next
	}

	if node, next := privateP(s); node != nil {
		s = next
	}
	if node, next := genericP(s); node != nil {
		info.Generic = true
		s = next
		var err error
		s, err = skipFormalPart(s)
		if err != nil {
			return nil, err
		}
	}
	return scanHeader(s, info)
}

// skipFormalPart consumes generic formal declarations up to the wrapped
// unit's header keyword.  Formal subprograms begin with "with" and are
// consumed through their terminating semicolon so their profile keywords
// are not mistaken for the header.
func skipFormalPart(s parsec.Scanner) (parsec.Scanner, error) {
	for {
		if node, _ := pkgP(s); node != nil {
			return s, nil
		}
		if node, _ := subpP(s); node != nil {
			return s, nil
		}
		if node, next := withP(s); node != nil {
			var err error
			s, err = skipThroughSemi(next)
			if err != nil {
				return s, err
			}
			continue
		}
		node, next := anyTokP(s)
		if node == nil {
			return s, fmt.Errorf("prologue: unterminated generic formal part")
		}
		s = next
	}
}

// skipThroughSemi consumes tokens through the next semicolon outside of
// parentheses.
func skipThroughSemi(s parsec.Scanner) (parsec.Scanner, error) {
	depth := 0
	for {
		node, next := anyTokP(s)
		if node == nil {
			return s, fmt.Errorf("prologue: unterminated clause")
		}
		text := terminalValue(node)
		depth += strings.Count(text, "(") - strings.Count(text, ")")
		s = next
		if depth == 0 && strings.HasSuffix(text, ";") {
			return s, nil
		}
	}
}

func scanHeader(s parsec.Scanner, info *Info) (*Info, error) {
	if node, next := pkgP(s); node != nil {
		s = next
		if node, next := bodyP(s); node != nil {
			info.Kind = Body
			s = next
		}
		name, _ := nameP(s)
		if name == nil {
			return nil, fmt.Errorf("prologue: missing package name")
		}
		info.Name = canonicalName(name)
		return info, nil
	}
	if node, next := subpP(s); node != nil {
		s = next
		name, next := nameP(s)
		if name == nil {
			return nil, fmt.Errorf("prologue: missing subprogram name")
		}
		info.Name = canonicalName(name)
		// A subprogram body has "is" after its specification; a spec-only
		// unit ends at a semicolon.
		if hasIs(next) {
			info.Kind = Body
		}
		return info, nil
	}
	return nil, fmt.Errorf("prologue: no unit header found")
}

// hasIs scans forward for an "is" keyword outside of parentheses.
func hasIs(s parsec.Scanner) bool {
	depth := 0
	for {
		if depth == 0 {
			if node, _ := isP(s); node != nil {
				return true
			}
		}
		node, next := anyTokP(s)
		if node == nil {
			return false
		}
		text := terminalValue(node)
		if depth == 0 && text == ";" {
			return false
		}
		depth += strings.Count(text, "(") - strings.Count(text, ")")
		s = next
	}
}

func terminalValue(node parsec.ParsecNode) string {
	if t, ok := node.(*parsec.Terminal); ok {
		return t.Value
	}
	return ""
}

func canonicalName(node parsec.ParsecNode) string {
	return symbols.Canonical(terminalValue(node))
}
