// Copyright © 2024 The libadalang-go authors

package token

import (
	"unicode/utf8"
)

// Scanner facilitates construction of tokens from in-memory source text.
// Analysis units are whole files, so the scanner holds the complete buffer
// and tracks line/column positions as it advances.
type Scanner struct {
	file string
	path string
	src  string

	start     int // byte offset of the current token
	startLine int
	startCol  int

	pos  int // byte offset of the next rune to scan
	line int
	col  int
}

// NewScanner initializes and returns a new Scanner over src.
func NewScanner(file string, src []byte) *Scanner {
	return &Scanner{
		file:      file,
		src:       string(src),
		line:      1,
		col:       1,
		startLine: 1,
		startCol:  1,
	}
}

// SetPath associates a physical location (e.g. filesystem path) with s to
// aid in debugging projects which scan many ungrouped files.
func (s *Scanner) SetPath(path string) {
	s.path = path
}

// EOF returns true once all source text has been consumed.
func (s *Scanner) EOF() bool {
	return s.pos >= len(s.src)
}

// Peek returns the next rune to be scanned, if there is one.
func (s *Scanner) Peek() (rune, bool) {
	if s.EOF() {
		return 0, false
	}
	c, _ := utf8.DecodeRuneInString(s.src[s.pos:])
	return c, true
}

// PeekAt returns the rune n runes past the current position, if there is
// one.  PeekAt(0) is equivalent to Peek.
func (s *Scanner) PeekAt(n int) (rune, bool) {
	pos := s.pos
	for {
		if pos >= len(s.src) {
			return 0, false
		}
		c, w := utf8.DecodeRuneInString(s.src[pos:])
		if n == 0 {
			return c, true
		}
		pos += w
		n--
	}
}

// ScanRune consumes one rune for inclusion in the current token.
func (s *Scanner) ScanRune() bool {
	if s.EOF() {
		return false
	}
	c, w := utf8.DecodeRuneInString(s.src[s.pos:])
	s.pos += w
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return true
}

// Accept consumes the next rune when fn approves it.
func (s *Scanner) Accept(fn func(rune) bool) bool {
	c, ok := s.Peek()
	if !ok || !fn(c) {
		return false
	}
	return s.ScanRune()
}

// AcceptRune consumes the next rune when it equals c.
func (s *Scanner) AcceptRune(c rune) bool {
	return s.Accept(func(r rune) bool { return r == c })
}

// AcceptSeq consumes a run of runes approved by fn and returns its length.
func (s *Scanner) AcceptSeq(fn func(rune) bool) int {
	var n int
	for s.Accept(fn) {
		n++
	}
	return n
}

// Text returns the text scanned since the last call to either EmitToken or
// Ignore.
func (s *Scanner) Text() string {
	return s.src[s.start:s.pos]
}

// EmitToken returns a token containing the text scanned since the last call
// to either EmitToken or Ignore.
func (s *Scanner) EmitToken(typ Type) *Token {
	tok := &Token{
		Type:   typ,
		Text:   s.Text(),
		Source: s.LocStart(),
	}
	s.Ignore()
	return tok
}

// Ignore causes the scanner to discard all text scanned since the last call
// to either EmitToken or Ignore.
func (s *Scanner) Ignore() {
	s.start = s.pos
	s.startLine = s.line
	s.startCol = s.col
}

// LocStart returns a Location referencing the beginning of the current
// token, just beyond the end of the previous token.
func (s *Scanner) LocStart() *Location {
	return &Location{
		File: s.file,
		Path: s.path,
		Pos:  s.start,
		Line: s.startLine,
		Col:  s.startCol,
	}
}

// Loc returns a Location referencing the current scanner position.
func (s *Scanner) Loc() *Location {
	return &Location{
		File: s.file,
		Path: s.path,
		Pos:  s.pos,
		Line: s.line,
		Col:  s.col,
	}
}
