// Copyright © 2024 The libadalang-go authors

// Package parser implements a recursive-descent parser for the Ada subset
// understood by the semantic layer: compilation units with context clauses,
// package and subprogram declarations and bodies, generic declarations,
// parameter specifications, type declarations (incomplete, private, and
// full views), object declarations, and simple statements.  Constructs
// outside the subset inside declarative regions are consumed as opaque
// token runs so a unit parse either yields a complete tree or an error.
package parser

import (
	"fmt"
	"os"

	"github.com/Pateldisolution/libadalang/ast"
	"github.com/Pateldisolution/libadalang/parser/token"
)

// Result is a successful parse: the tree root and the full token stream
// (including trivia) for token-level queries.
type Result struct {
	Root      *ast.Node
	Tokens    []*token.Token
	NodeCount int
}

// ParseFile reads and parses path as one compilation unit.
func ParseFile(path string) (*Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, src)
}

// Parse parses src as one compilation unit.
func Parse(name string, src []byte) (*Result, error) {
	p := New(token.NewScanner(name, src))
	root, err := p.ParseCompilationUnit()
	if err != nil {
		return nil, err
	}
	return &Result{
		Root:      root,
		Tokens:    p.src.Stream(),
		NodeCount: p.b.Count(),
	}, nil
}

// Parser is an Ada subset parser.
type Parser struct {
	src *TokenSource
	b   ast.Builder
}

// New initializes and returns a new Parser that reads tokens from scanner.
func New(scanner *token.Scanner) *Parser {
	return &Parser{src: NewTokenSource(scanner)}
}

// ParseCompilationUnit parses context clauses followed by one library item.
func (p *Parser) ParseCompilationUnit() (*ast.Node, error) {
	var children []*ast.Node
	for p.src.PeekKeyword("with") {
		w, err := p.parseWithClause()
		if err != nil {
			return nil, err
		}
		children = append(children, w)
	}
	// A private child unit carries a leading "private"; the marker is not
	// represented in the tree.
	p.src.AcceptKeyword("private")

	decl, err := p.parseBasicDecl()
	if err != nil {
		return nil, err
	}
	children = append(children, decl)
	if !p.src.IsEOF() {
		return nil, p.errorf("unexpected token after library item: %v", p.src.Peek().Type)
	}
	return p.b.New(ast.KindCompilationUnit, nil, children...), nil
}

func (p *Parser) parseWithClause() (*ast.Node, error) {
	if !p.src.AcceptKeyword("with") {
		return nil, p.errorf("expected with clause")
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if err := p.expectType(token.SEMICOLON); err != nil {
		return nil, err
	}
	return p.b.New(ast.KindWithClause, nil, name), nil
}

func (p *Parser) parseBasicDecl() (*ast.Node, error) {
	tok := p.src.Peek()
	switch {
	case p.src.PeekKeyword("package"):
		return p.parsePackage()
	case p.src.PeekKeyword("procedure"), p.src.PeekKeyword("function"):
		return p.parseSubp()
	case p.src.PeekKeyword("generic"):
		return p.parseGeneric()
	case p.src.PeekKeyword("type"):
		return p.parseTypeDecl()
	case tok.Type == token.IDENT:
		return p.parseObjectDecl()
	case tok.Type == token.ERROR, tok.Type == token.INVALID:
		p.src.Scan()
		return nil, p.errorf("scan error: %s", p.src.Token.Text)
	default:
		return nil, p.errorf("unexpected token: %v", tok.Type)
	}
}

func (p *Parser) parsePackage() (*ast.Node, error) {
	p.src.AcceptKeyword("package")
	if p.src.AcceptKeyword("body") {
		return p.parsePackageBody()
	}
	return p.parsePackageDecl()
}

func (p *Parser) parsePackageDecl() (*ast.Node, error) {
	name, err := p.parseDefiningName()
	if err != nil {
		return nil, err
	}
	if !p.src.AcceptKeyword("is") {
		return nil, p.errorf(`expected "is" in package declaration`)
	}
	decls, err := p.parseDeclList()
	if err != nil {
		return nil, err
	}
	var priv *ast.Node
	if p.src.AcceptKeyword("private") {
		privDecls, err := p.parseDeclList()
		if err != nil {
			return nil, err
		}
		priv = p.b.New(ast.KindPrivatePart, nil, privDecls...)
	}
	if err := p.parseEnd(); err != nil {
		return nil, err
	}
	declList := p.b.New(ast.KindDeclList, nil, decls...)
	return p.b.New(ast.KindPackageDecl, nil, name, declList, priv), nil
}

func (p *Parser) parsePackageBody() (*ast.Node, error) {
	name, err := p.parseDefiningName()
	if err != nil {
		return nil, err
	}
	if !p.src.AcceptKeyword("is") {
		return nil, p.errorf(`expected "is" in package body`)
	}
	decls, err := p.parseDeclList()
	if err != nil {
		return nil, err
	}
	var stmts *ast.Node
	if p.src.AcceptKeyword("begin") {
		stmts, err = p.parseStmtList()
		if err != nil {
			return nil, err
		}
	}
	if err := p.parseEnd(); err != nil {
		return nil, err
	}
	declList := p.b.New(ast.KindDeclList, nil, decls...)
	return p.b.New(ast.KindPackageBody, nil, name, declList, stmts), nil
}

func (p *Parser) parseSubp() (*ast.Node, error) {
	spec, err := p.parseSubpSpec()
	if err != nil {
		return nil, err
	}
	if p.src.AcceptType(token.SEMICOLON) {
		return p.b.New(ast.KindSubpDecl, nil, spec), nil
	}
	if !p.src.AcceptKeyword("is") {
		return nil, p.errorf(`expected ";" or "is" after subprogram specification`)
	}
	decls, err := p.parseDeclList()
	if err != nil {
		return nil, err
	}
	if !p.src.AcceptKeyword("begin") {
		return nil, p.errorf(`expected "begin" in subprogram body`)
	}
	stmts, err := p.parseStmtList()
	if err != nil {
		return nil, err
	}
	if err := p.parseEnd(); err != nil {
		return nil, err
	}
	declList := p.b.New(ast.KindDeclList, nil, decls...)
	return p.b.New(ast.KindSubpBody, nil, spec, declList, stmts), nil
}

func (p *Parser) parseSubpSpec() (*ast.Node, error) {
	isFunction := p.src.PeekKeyword("function")
	if !p.src.AcceptKeyword("procedure", "function") {
		return nil, p.errorf("expected subprogram specification")
	}
	name, err := p.parseDefiningName()
	if err != nil {
		return nil, err
	}
	var params *ast.Node
	if p.src.AcceptType(token.PAREN_L) {
		var specs []*ast.Node
		for {
			spec, err := p.parseParamSpec()
			if err != nil {
				return nil, err
			}
			specs = append(specs, spec)
			if p.src.AcceptType(token.SEMICOLON) {
				continue
			}
			break
		}
		if err := p.expectType(token.PAREN_R); err != nil {
			return nil, err
		}
		params = p.b.New(ast.KindParamList, nil, specs...)
	}
	var ret *ast.Node
	if isFunction {
		if !p.src.AcceptKeyword("return") {
			return nil, p.errorf(`expected "return" in function specification`)
		}
		ret, err = p.parseName()
		if err != nil {
			return nil, err
		}
	}
	return p.b.New(ast.KindSubpSpec, nil, name, params, ret), nil
}

func (p *Parser) parseParamSpec() (*ast.Node, error) {
	names, err := p.parseDefiningNameList()
	if err != nil {
		return nil, err
	}
	if err := p.expectType(token.COLON); err != nil {
		return nil, err
	}
	// Parameter modes are accepted but not represented.
	p.src.AcceptKeyword("in")
	p.src.AcceptKeyword("out")
	typ, err := p.parseName()
	if err != nil {
		return nil, err
	}
	var dflt *ast.Node
	if p.src.AcceptType(token.ASSIGN) {
		dflt = p.parseOpaqueExpr(token.SEMICOLON, token.PAREN_R)
	}
	return p.b.New(ast.KindParamSpec, nil, names, typ, dflt), nil
}

func (p *Parser) parseGeneric() (*ast.Node, error) {
	p.src.AcceptKeyword("generic")
	var formals []*ast.Node
	for {
		switch {
		case p.src.PeekKeyword("package"), p.src.PeekKeyword("procedure"),
			p.src.PeekKeyword("function"):
			formal := p.b.New(ast.KindGenericFormalPart, nil, formals...)
			inner, err := p.parseBasicDecl()
			if err != nil {
				return nil, err
			}
			kind := ast.KindGenericSubpDecl
			if inner.Kind() == ast.KindPackageDecl {
				kind = ast.KindGenericPackageDecl
			}
			return p.b.New(kind, nil, formal, inner), nil
		case p.src.PeekKeyword("type"):
			f, err := p.parseTypeDecl()
			if err != nil {
				return nil, err
			}
			formals = append(formals, f)
		case p.src.PeekKeyword("with"):
			// Formal subprogram: consumed opaquely.
			p.src.AcceptKeyword("with")
			f := p.parseOpaqueExpr(token.SEMICOLON)
			if err := p.expectType(token.SEMICOLON); err != nil {
				return nil, err
			}
			formals = append(formals, f)
		case p.src.Peek().Type == token.IDENT:
			f, err := p.parseObjectDecl()
			if err != nil {
				return nil, err
			}
			formals = append(formals, f)
		default:
			return nil, p.errorf("unexpected token in generic formal part: %v", p.src.Peek().Type)
		}
	}
}

func (p *Parser) parseTypeDecl() (*ast.Node, error) {
	p.src.AcceptKeyword("type")
	name, err := p.parseDefiningName()
	if err != nil {
		return nil, err
	}
	if p.src.AcceptType(token.SEMICOLON) {
		return p.b.New(ast.KindIncompleteTypeDecl, nil, name), nil
	}
	if !p.src.AcceptKeyword("is") {
		return nil, p.errorf(`expected ";" or "is" in type declaration`)
	}
	// "tagged" and "abstract" are contextual words and lex as identifiers.
	for p.src.AcceptKeyword("limited") || p.src.AcceptIdent("tagged", "abstract") {
	}
	if p.src.AcceptKeyword("private") {
		if err := p.expectType(token.SEMICOLON); err != nil {
			return nil, err
		}
		return p.b.New(ast.KindPrivateTypeDecl, nil, name), nil
	}
	def, err := p.parseOpaqueTypeDef()
	if err != nil {
		return nil, err
	}
	if err := p.expectType(token.SEMICOLON); err != nil {
		return nil, err
	}
	return p.b.New(ast.KindTypeDecl, nil, name, def), nil
}

// parseOpaqueTypeDef consumes a type definition up to its terminating
// semicolon, tracking record nesting so component semicolons do not
// terminate the definition.
func (p *Parser) parseOpaqueTypeDef() (*ast.Node, error) {
	first := p.src.Peek()
	depth := 0
	parens := 0
	for {
		tok := p.src.Peek()
		switch {
		case tok.Type == token.EOF:
			return nil, p.errorf("unterminated type definition")
		case tok.Type == token.PAREN_L:
			parens++
		case tok.Type == token.PAREN_R:
			parens--
		case tok.Type == token.SEMICOLON && depth == 0 && parens == 0:
			return p.b.New(ast.KindOpaqueExpr, first), nil
		case tok.Type == token.KEYWORD && tok.Canonical() == "record":
			depth++
		case tok.Type == token.KEYWORD && tok.Canonical() == "end":
			// "end record" closes one nesting level.
			p.src.Scan()
			p.src.AcceptKeyword("record")
			depth--
			continue
		}
		p.src.Scan()
	}
}

func (p *Parser) parseObjectDecl() (*ast.Node, error) {
	names, err := p.parseDefiningNameList()
	if err != nil {
		return nil, err
	}
	if err := p.expectType(token.COLON); err != nil {
		return nil, err
	}
	p.src.AcceptKeyword("constant")
	p.src.AcceptIdent("aliased")
	typ, err := p.parseName()
	if err != nil {
		return nil, err
	}
	var dflt *ast.Node
	if p.src.AcceptType(token.ASSIGN) {
		dflt = p.parseOpaqueExpr(token.SEMICOLON)
	}
	if err := p.expectType(token.SEMICOLON); err != nil {
		return nil, err
	}
	return p.b.New(ast.KindObjectDecl, nil, names, typ, dflt), nil
}

func (p *Parser) parseDeclList() ([]*ast.Node, error) {
	var decls []*ast.Node
	for {
		if p.src.IsEOF() || p.src.PeekKeyword("end") ||
			p.src.PeekKeyword("begin") || p.src.PeekKeyword("private") {
			return decls, nil
		}
		decl, err := p.parseBasicDecl()
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}
}

func (p *Parser) parseStmtList() (*ast.Node, error) {
	var stmts []*ast.Node
	for {
		switch {
		case p.src.IsEOF():
			return nil, p.errorf("unterminated statement list")
		case p.src.PeekKeyword("end"):
			return p.b.New(ast.KindStmtList, nil, stmts...), nil
		case p.src.AcceptKeyword("null"):
			if err := p.expectType(token.SEMICOLON); err != nil {
				return nil, err
			}
			stmts = append(stmts, p.b.New(ast.KindNullStmt, nil))
		case p.src.AcceptKeyword("return"):
			// The returned expression is consumed opaquely.
			expr := p.parseOpaqueExpr(token.SEMICOLON)
			if err := p.expectType(token.SEMICOLON); err != nil {
				return nil, err
			}
			stmts = append(stmts, p.b.New(ast.KindReturnStmt, nil, expr))
		case p.src.Peek().Type == token.IDENT:
			name, err := p.parseName()
			if err != nil {
				return nil, err
			}
			// Arguments and assignments are consumed opaquely.
			p.parseOpaqueExpr(token.SEMICOLON)
			if err := p.expectType(token.SEMICOLON); err != nil {
				return nil, err
			}
			stmts = append(stmts, p.b.New(ast.KindCallStmt, nil, name))
		default:
			return nil, p.errorf("unexpected token in statement list: %v", p.src.Peek().Type)
		}
	}
}

// parseEnd consumes "end", an optional closing name, and the terminating
// semicolon.
func (p *Parser) parseEnd() error {
	if !p.src.AcceptKeyword("end") {
		return p.errorf(`expected "end"`)
	}
	if p.src.Peek().Type == token.IDENT {
		if _, err := p.parseName(); err != nil {
			return err
		}
	}
	return p.expectType(token.SEMICOLON)
}

func (p *Parser) parseDefiningNameList() (*ast.Node, error) {
	var names []*ast.Node
	for {
		name, err := p.parseDefiningIdent()
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		if !p.src.AcceptType(token.COMMA) {
			return p.b.New(ast.KindDefiningNameList, nil, names...), nil
		}
	}
}

func (p *Parser) parseDefiningIdent() (*ast.Node, error) {
	if !p.src.AcceptType(token.IDENT) {
		return nil, p.errorf("expected identifier: %v", p.src.Peek().Type)
	}
	id := p.b.New(ast.KindIdentifier, p.src.Token)
	return p.b.New(ast.KindDefiningName, nil, id), nil
}

func (p *Parser) parseDefiningName() (*ast.Node, error) {
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	return p.b.New(ast.KindDefiningName, nil, name), nil
}

// parseName parses a possibly dotted name.  A single identifier yields an
// Identifier node; multiple components yield a DottedName whose children
// are the identifiers in order.
func (p *Parser) parseName() (*ast.Node, error) {
	var ids []*ast.Node
	for {
		if !p.src.AcceptType(token.IDENT) {
			return nil, p.errorf("expected identifier: %v", p.src.Peek().Type)
		}
		ids = append(ids, p.b.New(ast.KindIdentifier, p.src.Token))
		if !p.src.AcceptType(token.DOT) {
			break
		}
	}
	if len(ids) == 1 {
		return ids[0], nil
	}
	return p.b.New(ast.KindDottedName, nil, ids...), nil
}

// parseOpaqueExpr consumes tokens (balancing parentheses) until one of the
// stop types appears at depth zero.  The stop token is not consumed.
func (p *Parser) parseOpaqueExpr(stop ...token.Type) *ast.Node {
	first := p.src.Peek()
	depth := 0
	for {
		tok := p.src.Peek()
		if tok.Type == token.EOF {
			return p.b.New(ast.KindOpaqueExpr, first)
		}
		if depth == 0 {
			for _, typ := range stop {
				if tok.Type == typ {
					return p.b.New(ast.KindOpaqueExpr, first)
				}
			}
		}
		switch tok.Type {
		case token.PAREN_L:
			depth++
		case token.PAREN_R:
			depth--
		}
		p.src.Scan()
	}
}

func (p *Parser) expectType(typ token.Type) error {
	if !p.src.AcceptType(typ) {
		return p.errorf("expected %v: %v", typ, p.src.Peek().Type)
	}
	return nil
}

func (p *Parser) errorf(format string, v ...interface{}) error {
	return token.ErrorAt(fmt.Errorf(format, v...), p.src.Peek().Source)
}
