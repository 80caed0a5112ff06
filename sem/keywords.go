// Copyright © 2024 The libadalang-go authors

package sem

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Pateldisolution/libadalang/parser/token"
	"github.com/Pateldisolution/libadalang/symbols"
)

// LanguageVersion selects an Ada revision for dialect-sensitive queries.
// Revisions are ordered; each one reserves every word reserved by its
// predecessors plus its own additions.
type LanguageVersion int

const (
	Ada83 LanguageVersion = iota
	Ada95
	Ada2005
	Ada2012
	Ada2022
)

var versionStrings = map[LanguageVersion]string{
	Ada83:   "Ada_83",
	Ada95:   "Ada_95",
	Ada2005: "Ada_2005",
	Ada2012: "Ada_2012",
	Ada2022: "Ada_2022",
}

func (v LanguageVersion) String() string {
	if s, ok := versionStrings[v]; ok {
		return s
	}
	return fmt.Sprintf("LanguageVersion(%d)", int(v))
}

// Versions returns every known revision in ascending order.
func Versions() []LanguageVersion {
	return []LanguageVersion{Ada83, Ada95, Ada2005, Ada2012, Ada2022}
}

// ParseVersion accepts spellings like "Ada_2012", "ada2012", "2012", and
// "12".
func ParseVersion(s string) (LanguageVersion, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.TrimPrefix(norm, "ada")
	norm = strings.TrimPrefix(norm, "_")
	switch norm {
	case "83":
		return Ada83, nil
	case "95":
		return Ada95, nil
	case "2005", "05":
		return Ada2005, nil
	case "2012", "12":
		return Ada2012, nil
	case "2022", "22":
		return Ada2022, nil
	}
	return Ada83, fmt.Errorf("sem: unknown language version %q", s)
}

// contextualAdditions lists the identifiers each revision reserves beyond
// its predecessor.  The lexer classifies only the Ada 83 words as KEYWORD
// tokens, so these lex as identifiers and are classified here per dialect.
// Additions are strictly cumulative: a revision never retires a word.
var contextualAdditions = map[LanguageVersion][]string{
	Ada95:   {"abstract", "aliased", "protected", "requeue", "tagged", "until"},
	Ada2005: {"interface", "overriding", "synchronized"},
	Ada2012: {"some"},
	Ada2022: {"parallel"},
}

// IsKeyword reports whether tok is a reserved word under revision v.
// Trivia tokens are never keywords.  KEYWORD tokens are keywords under
// every revision; identifier tokens are keywords when their interned
// symbol belongs to v's contextual set.
func (c *Context) IsKeyword(tok *token.Token, v LanguageVersion) bool {
	if tok == nil || tok.Type.IsTrivia() {
		return false
	}
	if tok.Type.IsReserved() {
		return true
	}
	if tok.Type != token.IDENT {
		return false
	}
	// Build the set before probing: building interns the set's words.
	set := c.keywordSet(v)
	sym := c.symbols.Get(tok.Canonical())
	if sym == nil {
		return false
	}
	return set[sym]
}

// keywordSet returns the contextual keyword symbols of revision v,
// building the cumulative sets on first use.
func (c *Context) keywordSet(v LanguageVersion) map[*symbols.Symbol]bool {
	if set, ok := c.keywords[v]; ok {
		return set
	}
	set := make(map[*symbols.Symbol]bool)
	if v > Ada83 {
		for sym := range c.keywordSet(v - 1) {
			set[sym] = true
		}
	}
	for _, w := range contextualAdditions[v] {
		set[c.symbols.Intern(w)] = true
	}
	c.keywords[v] = set
	return set
}

// KeywordNames returns every word reserved under revision v (base words
// plus contextual additions), sorted.
func (c *Context) KeywordNames(v LanguageVersion) []string {
	words := token.ReservedWords()
	for _, word := range c.contextualNames(v) {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}

func (c *Context) contextualNames(v LanguageVersion) []string {
	var names []string
	for _, u := range Versions() {
		if u > v || u == Ada83 {
			continue
		}
		names = append(names, contextualAdditions[u]...)
	}
	return names
}
