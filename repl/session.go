// Copyright © 2024 The libadalang-go authors

package repl

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"github.com/Pateldisolution/libadalang/ast"
	"github.com/Pateldisolution/libadalang/astutil"
	"github.com/Pateldisolution/libadalang/parser/lexer"
	"github.com/Pateldisolution/libadalang/parser/token"
	"github.com/Pateldisolution/libadalang/sem"
)

var errQuit = errors.New("quit")

// Session holds the shell's state: the analysis context and the current
// declaration selection that navigation commands operate on.
type Session struct {
	ctx *sem.Context
	out io.Writer
	sel *ast.Node
}

// NewSession returns a session over ctx writing to out.
func NewSession(ctx *sem.Context, out io.Writer) *Session {
	return &Session{ctx: ctx, out: out}
}

// Context returns the session's analysis context.
func (s *Session) Context() *sem.Context { return s.ctx }

// Selection returns the currently selected declaration, or nil.
func (s *Session) Selection() *ast.Node { return s.sel }

type command struct {
	name string
	args string
	help string
	run  func(*Session, []string) error
}

// commands is populated in init because cmdHelp iterates the table.
var commands []command

func init() {
	commands = []command{
		{"help", "", "Show this command summary.", (*Session).cmdHelp},
		{"load", "FILE", "Parse FILE and register its compilation unit.", (*Session).cmdLoad},
		{"units", "", "List the loaded units.", (*Session).cmdUnits},
		{"find", "NAME", "Select the first declaration named NAME across loaded units.", (*Session).cmdFind},
		{"spec", "", "Navigate from the selected body to its separate declaration.", (*Session).cmdSpec},
		{"body", "", "Navigate from the selected declaration to its completing body.", (*Session).cmdBody},
		{"unwrap", "", "Navigate from the selected generic wrapper to the wrapped declaration.", (*Session).cmdUnwrap},
		{"full", "", "Navigate from the selected private or incomplete type to its full view.", (*Session).cmdFull},
		{"param", "N", "Navigate from parameter N (1-based) of the selection to its counterpart.", (*Session).cmdParam},
		{"image", "", "Print the short image of the selection.", (*Session).cmdImage},
		{"keyword", "WORD [VERSION]", "Report whether WORD is reserved under VERSION (default: context dialect).", (*Session).cmdKeyword},
		{"reload", "NAME KIND", "Reload the unit NAME of KIND (spec or body) from disk.", (*Session).cmdReload},
		{"quit", "", "Exit the shell.", (*Session).cmdQuit},
	}
}

// Dispatch runs one command line.
func (s *Session) Dispatch(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name, args := fields[0], fields[1:]
	for _, cmd := range commands {
		if cmd.name == name {
			return cmd.run(s, args)
		}
	}
	return fmt.Errorf("unknown command %q (try \"help\")", name)
}

func (s *Session) printf(format string, v ...interface{}) {
	fmt.Fprintf(s.out, format+"\n", v...) //nolint:errcheck // best-effort REPL output
}

func (s *Session) cmdHelp([]string) error {
	for _, cmd := range commands {
		head := cmd.name
		if cmd.args != "" {
			head += " " + cmd.args
		}
		s.printf("%s", head)
		s.printf("%s", indent.String(wordwrap.String(cmd.help, 72), 2))
	}
	return nil
}

func (s *Session) cmdQuit([]string) error {
	return errQuit
}

func (s *Session) cmdLoad(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: load FILE")
	}
	u, err := s.ctx.GetUnitFromFile(args[0])
	if err != nil {
		return err
	}
	s.printf("loaded %s from %s", u, u.Filename())
	return nil
}

func (s *Session) cmdUnits([]string) error {
	units := s.ctx.Units()
	if len(units) == 0 {
		s.printf("no units loaded")
		return nil
	}
	for _, u := range units {
		s.printf("%-30s %s", u, u.Filename())
	}
	return nil
}

func (s *Session) cmdFind(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: find NAME")
	}
	want := strings.ToLower(args[0])
	for _, u := range s.ctx.Units() {
		for _, d := range astutil.Decls(u.Root()) {
			for _, name := range d.DefiningNames() {
				if name == nil {
					continue
				}
				if strings.ToLower(ast.NameText(ast.NameLeaf(name))) == want {
					s.sel = d
					s.printf("%s", sem.ShortImage(d))
					return nil
				}
			}
		}
	}
	return fmt.Errorf("no declaration named %q", args[0])
}

// navigate applies a correspondence to the selection and reselects.
func (s *Session) navigate(kind sem.CorrespondenceKind) error {
	if s.sel == nil {
		return errors.New("no selection (try \"find NAME\")")
	}
	target := s.ctx.Correspond(kind, s.sel)
	if target == nil {
		s.printf("no %s correspondence for %s", kind, sem.ShortImage(s.sel))
		return nil
	}
	// Defining-name results reselect their declaration.
	if target.Kind() == ast.KindDefiningName {
		if d := ast.DeclOf(target); d != nil {
			target = d
		}
	}
	s.sel = target
	s.printf("%s", sem.ShortImage(target))
	return nil
}

func (s *Session) cmdSpec([]string) error   { return s.navigate(sem.BodyToSpec) }
func (s *Session) cmdBody([]string) error   { return s.navigate(sem.SpecToBody) }
func (s *Session) cmdUnwrap([]string) error { return s.navigate(sem.GenericUnwrap) }
func (s *Session) cmdFull([]string) error   { return s.navigate(sem.PrivateToFull) }

func (s *Session) cmdParam(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: param N")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return errors.New("param: N must be a positive integer")
	}
	if s.sel == nil {
		return errors.New("no selection (try \"find NAME\")")
	}
	switch s.sel.Kind() {
	case ast.KindSubpDecl, ast.KindSubpBody:
	default:
		return fmt.Errorf("param: %s is not a subprogram", sem.ShortImage(s.sel))
	}
	params := s.sel.SubpSpec().Params()
	if n > len(params) {
		return fmt.Errorf("param: %s has %d parameters", sem.ShortImage(s.sel), len(params))
	}
	target := s.ctx.Correspond(sem.FormalParameter, params[n-1])
	if target == nil {
		s.printf("no counterpart for parameter %d of %s", n, sem.ShortImage(s.sel))
		return nil
	}
	s.printf("%s", sem.ShortImage(ast.DeclOf(target)))
	return nil
}

func (s *Session) cmdImage([]string) error {
	if s.sel == nil {
		return errors.New("no selection (try \"find NAME\")")
	}
	s.printf("%s", sem.ShortImage(s.sel))
	return nil
}

func (s *Session) cmdKeyword(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: keyword WORD [VERSION]")
	}
	v := s.ctx.Dialect()
	if len(args) == 2 {
		var err error
		v, err = sem.ParseVersion(args[1])
		if err != nil {
			return err
		}
	}
	lex := lexer.New(token.NewScanner("keyword", []byte(args[0])))
	tok := lex.ReadToken()
	s.printf("%s under %s: %v", args[0], v, s.ctx.IsKeyword(tok, v))
	return nil
}

func (s *Session) cmdReload(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: reload NAME KIND")
	}
	var kind sem.UnitKind
	switch strings.ToLower(args[1]) {
	case "spec":
		kind = sem.UnitSpec
	case "body":
		kind = sem.UnitBody
	default:
		return errors.New("reload: KIND must be spec or body")
	}
	u := s.ctx.Unit(args[0], kind)
	if u == nil {
		return fmt.Errorf("reload: unit %s (%s) is not loaded", args[0], kind)
	}
	if err := u.Reload(); err != nil {
		return err
	}
	s.sel = nil // the old tree is gone
	s.printf("reloaded %s", u)
	return nil
}
