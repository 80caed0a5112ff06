// Copyright © 2024 The libadalang-go authors

package token

import (
	"fmt"
	"sort"
	"strings"
)

// Source is an abstract stream of tokens which allows one token lookahead.
type Source interface {
	// Token returns the current token.  Token returns nil if Scan has not been
	// called.
	Token() *Token
	// Peek returns the next token in the stream.  At the end of the stream
	// Peek should return a value to indicate the lack of a token (EOF).
	Peek() *Token
	// Scan advances the token stream if possible.  If there are no tokens
	// remaining Scan returns false.
	Scan() bool
}

type Token struct {
	Type   Type
	Text   string
	Source *Location
}

// Canonical returns the case-folded token text.  Ada identifiers and
// reserved words are case-insensitive.
func (tok *Token) Canonical() string {
	return strings.ToLower(tok.Text)
}

type Type uint

// Type constants used by the Ada lexer/parser.  Trivia tokens (whitespace
// and comments) are emitted rather than discarded because the token
// classifier needs to see them.
const (
	INVALID Type = iota
	ERROR
	EOF

	// Trivia
	WHITESPACE
	COMMENT

	// Words and literals
	IDENT
	KEYWORD
	NUMBER
	STRING
	CHAR

	// Compound delimiters
	ASSIGN     // :=
	ARROW      // =>
	BOX        // <>
	DOUBLE_DOT // ..

	// Single delimiters
	DOT
	COMMA
	COLON
	SEMICOLON
	PAREN_L
	PAREN_R
	TICK
	OPERATOR

	numTokenTypes
)

func (typ Type) String() string {
	typeStrings := [numTokenTypes]string{
		INVALID:    "invalid",
		ERROR:      "error",
		EOF:        "EOF",
		WHITESPACE: "whitespace",
		COMMENT:    "comment",
		IDENT:      "identifier",
		KEYWORD:    "keyword",
		NUMBER:     "number",
		STRING:     "string",
		CHAR:       "character",
		ASSIGN:     ":=",
		ARROW:      "=>",
		BOX:        "<>",
		DOUBLE_DOT: "..",
		DOT:        ".",
		COMMA:      ",",
		COLON:      ":",
		SEMICOLON:  ";",
		PAREN_L:    "(",
		PAREN_R:    ")",
		TICK:       "'",
		OPERATOR:   "operator",
	}
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

// IsTrivia returns true for whitespace and comment tokens.  Trivia carries
// no syntactic weight and is never a keyword under any dialect.
func (typ Type) IsTrivia() bool {
	return typ == WHITESPACE || typ == COMMENT
}

// IsReserved returns true for tokens in the always-reserved family.  These
// are keywords under every dialect revision.
func (typ Type) IsReserved() bool {
	return typ == KEYWORD
}

// baseReserved is the Ada 83 reserved word list.  The lexer classifies
// these words as KEYWORD tokens; words reserved only by later revisions
// lex as identifiers and are classified per dialect by the semantic layer.
var baseReserved = map[string]bool{
	"abort": true, "abs": true, "accept": true, "access": true, "all": true,
	"and": true, "array": true, "at": true, "begin": true, "body": true,
	"case": true, "constant": true, "declare": true, "delay": true,
	"delta": true, "digits": true, "do": true, "else": true, "elsif": true,
	"end": true, "entry": true, "exception": true, "exit": true, "for": true,
	"function": true, "generic": true, "goto": true, "if": true, "in": true,
	"is": true, "limited": true, "loop": true, "mod": true, "new": true,
	"not": true, "null": true, "of": true, "or": true, "others": true,
	"out": true, "package": true, "pragma": true, "private": true,
	"procedure": true, "raise": true, "range": true, "record": true,
	"rem": true, "renames": true, "return": true, "reverse": true,
	"select": true, "separate": true, "subtype": true, "task": true,
	"terminate": true, "then": true, "type": true, "use": true, "when": true,
	"while": true, "with": true, "xor": true,
}

// Reserved reports whether text (in any casing) belongs to the base
// reserved word family.
func Reserved(text string) bool {
	return baseReserved[strings.ToLower(text)]
}

// ReservedWords returns the base reserved word list, sorted.
func ReservedWords() []string {
	words := make([]string, 0, len(baseReserved))
	for w := range baseReserved {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

type Location struct {
	File string // a name representing the source stream
	Path string // a physical location which may differ from File
	Pos  int
	Line int // line number (starting at 1 when tracked)
	Col  int // line column number (starting at 1 when tracked)
}

func (loc *Location) String() string {
	switch {
	case loc == nil:
		return "?"
	case loc.Pos < 0:
		return loc.File
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}

// LocationError implements the error interface, attaching a source location
// to an underlying error.
type LocationError struct {
	Err    error
	Source *Location
}

// ErrorAt wraps err with a source location.  A nil err returns nil.
func ErrorAt(err error, loc *Location) error {
	if err == nil {
		return nil
	}
	return &LocationError{Err: err, Source: loc}
}

func (e *LocationError) Error() string {
	if e.Source == nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Err)
}

func (e *LocationError) Unwrap() error {
	return e.Err
}
