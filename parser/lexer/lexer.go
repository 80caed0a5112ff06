// Copyright © 2024 The libadalang-go authors

// Package lexer tokenizes Ada source text.  Trivia (whitespace, comments)
// is emitted as ordinary tokens so downstream consumers can classify every
// token in the stream; the parser's token source filters trivia itself.
package lexer

import (
	"fmt"
	"unicode"

	"github.com/Pateldisolution/libadalang/parser/token"
)

type Lexer struct {
	scanner *token.Scanner
}

func New(s *token.Scanner) *Lexer {
	return &Lexer{scanner: s}
}

// ReadToken returns the next token in the stream.  At the end of input it
// returns an EOF token on every call.
func (lex *Lexer) ReadToken() *token.Token {
	s := lex.scanner
	if s.EOF() {
		return &token.Token{Type: token.EOF, Source: s.Loc()}
	}
	c, _ := s.Peek()
	switch {
	case unicode.IsSpace(c):
		s.AcceptSeq(unicode.IsSpace)
		return s.EmitToken(token.WHITESPACE)
	case c == '-':
		if c2, ok := s.PeekAt(1); ok && c2 == '-' {
			s.AcceptSeq(func(r rune) bool { return r != '\n' })
			return s.EmitToken(token.COMMENT)
		}
		s.ScanRune()
		return s.EmitToken(token.OPERATOR)
	case isWordStart(c):
		return lex.readWord()
	case isDigit(c):
		return lex.readNumber()
	case c == '"':
		return lex.readString()
	case c == '\'':
		return lex.readTickOrChar()
	default:
		return lex.readDelimiter(c)
	}
}

func (lex *Lexer) readWord() *token.Token {
	s := lex.scanner
	s.AcceptSeq(func(r rune) bool {
		return isWordStart(r) || isDigit(r) || r == '_'
	})
	if token.Reserved(s.Text()) {
		return s.EmitToken(token.KEYWORD)
	}
	return s.EmitToken(token.IDENT)
}

func (lex *Lexer) readNumber() *token.Token {
	s := lex.scanner
	digits := func(r rune) bool { return isDigit(r) || r == '_' }
	s.AcceptSeq(digits)
	// A lone '.' may begin a fraction, but '..' is a range delimiter.
	if c, ok := s.Peek(); ok && c == '.' {
		if c2, ok := s.PeekAt(1); ok && isDigit(c2) {
			s.ScanRune()
			s.AcceptSeq(digits)
		}
	}
	return s.EmitToken(token.NUMBER)
}

func (lex *Lexer) readString() *token.Token {
	s := lex.scanner
	s.ScanRune() // opening quote
	for {
		if s.AcceptRune('"') {
			// A doubled quote is an embedded quote character.
			if !s.AcceptRune('"') {
				return s.EmitToken(token.STRING)
			}
			continue
		}
		if !s.Accept(func(r rune) bool { return r != '\n' }) {
			return lex.errorf("unterminated string literal")
		}
	}
}

// readTickOrChar disambiguates character literals ('x') from the tick
// delimiter used in attributes and qualified expressions.
func (lex *Lexer) readTickOrChar() *token.Token {
	s := lex.scanner
	if c2, ok := s.PeekAt(2); ok && c2 == '\'' {
		s.ScanRune()
		s.ScanRune()
		s.ScanRune()
		return s.EmitToken(token.CHAR)
	}
	s.ScanRune()
	return s.EmitToken(token.TICK)
}

func (lex *Lexer) readDelimiter(c rune) *token.Token {
	s := lex.scanner
	s.ScanRune()
	switch c {
	case '.':
		if s.AcceptRune('.') {
			return s.EmitToken(token.DOUBLE_DOT)
		}
		return s.EmitToken(token.DOT)
	case ',':
		return s.EmitToken(token.COMMA)
	case ';':
		return s.EmitToken(token.SEMICOLON)
	case '(':
		return s.EmitToken(token.PAREN_L)
	case ')':
		return s.EmitToken(token.PAREN_R)
	case ':':
		if s.AcceptRune('=') {
			return s.EmitToken(token.ASSIGN)
		}
		return s.EmitToken(token.COLON)
	case '=':
		if s.AcceptRune('>') {
			return s.EmitToken(token.ARROW)
		}
		return s.EmitToken(token.OPERATOR)
	case '<':
		if s.AcceptRune('>') {
			return s.EmitToken(token.BOX)
		}
		s.AcceptRune('=')
		return s.EmitToken(token.OPERATOR)
	case '>', '+', '*', '/', '&', '|', '!':
		s.AcceptRune('=')
		return s.EmitToken(token.OPERATOR)
	default:
		return lex.errorf("unexpected character %q", c)
	}
}

func (lex *Lexer) errorf(format string, v ...interface{}) *token.Token {
	s := lex.scanner
	tok := s.EmitToken(token.ERROR)
	tok.Text = fmt.Sprintf(format, v...)
	return tok
}

func isWordStart(c rune) bool {
	return unicode.IsLetter(c)
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}
