// Copyright © 2024 The libadalang-go authors

package parser

import (
	"github.com/Pateldisolution/libadalang/parser/lexer"
	"github.com/Pateldisolution/libadalang/parser/token"
)

// TokenStream is an arbitrary sequence of tokens.  Typically a TokenStream
// is a *lexer.Lexer, but other implementations can feed the parser from
// dynamic environments.
type TokenStream interface {
	// ReadToken returns the next token from an input source.  When no more
	// tokens can be produced ReadToken returns a token with type token.EOF
	// on every call.
	ReadToken() *token.Token
}

// TokenSource abstracts a TokenStream by adding one-token memory and
// convenience accept methods.  Trivia tokens are filtered here so parse
// functions only see syntactic tokens; the raw stream (with trivia) is
// still recorded for consumers that need the full token sequence.
type TokenSource struct {
	lex    TokenStream
	Token  *token.Token
	peek   *token.Token
	stream []*token.Token
}

// NewTokenStreamSource initializes a TokenSource reading from stream.
func NewTokenStreamSource(stream TokenStream) *TokenSource {
	return &TokenSource{lex: stream}
}

// NewTokenSource initializes a TokenSource that lexes src.
func NewTokenSource(scanner *token.Scanner) *TokenSource {
	return NewTokenStreamSource(lexer.New(scanner))
}

// Stream returns every token read so far, including trivia.
func (s *TokenSource) Stream() []*token.Token {
	return s.stream
}

func (s *TokenSource) Peek() *token.Token {
	if s.peek != nil {
		return s.peek
	}
	for {
		tok := s.lex.ReadToken()
		s.stream = append(s.stream, tok)
		if tok.Type.IsTrivia() {
			continue
		}
		s.peek = tok
		return tok
	}
}

// AcceptType consumes the next token when its type matches one of typ.
func (s *TokenSource) AcceptType(typ ...token.Type) bool {
	for _, typ := range typ {
		if s.Peek().Type == typ {
			s.scan()
			return true
		}
	}
	return false
}

// AcceptKeyword consumes the next token when it is a reserved word with one
// of the given (lower case) spellings.
func (s *TokenSource) AcceptKeyword(words ...string) bool {
	tok := s.Peek()
	if tok.Type != token.KEYWORD {
		return false
	}
	text := tok.Canonical()
	for _, w := range words {
		if text == w {
			s.scan()
			return true
		}
	}
	return false
}

// AcceptIdent consumes the next token when it is an identifier with one of
// the given (lower case) spellings.  Contextual keywords of later language
// revisions lex as identifiers and are matched here.
func (s *TokenSource) AcceptIdent(words ...string) bool {
	tok := s.Peek()
	if tok.Type != token.IDENT {
		return false
	}
	text := tok.Canonical()
	for _, w := range words {
		if text == w {
			s.scan()
			return true
		}
	}
	return false
}

// PeekKeyword reports whether the next token is the given reserved word.
func (s *TokenSource) PeekKeyword(word string) bool {
	tok := s.Peek()
	return tok.Type == token.KEYWORD && tok.Canonical() == word
}

func (s *TokenSource) Scan() bool {
	if s.IsEOF() {
		s.Token = s.Peek()
		return false
	}
	s.scan()
	return true
}

func (s *TokenSource) IsEOF() bool {
	return s.Peek().Type == token.EOF
}

func (s *TokenSource) scan() {
	s.Token = s.Peek()
	s.peek = nil
}
