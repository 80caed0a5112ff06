// Copyright © 2024 The libadalang-go authors

package repl

import (
	"sort"
	"strings"

	"github.com/Pateldisolution/libadalang/ast"
	"github.com/Pateldisolution/libadalang/astutil"
)

// commandCompleter implements readline.AutoComplete by enumerating
// command names at the start of the line and declaration or unit names
// for command arguments.
type commandCompleter struct {
	session *Session
}

func (c *commandCompleter) Do(line []rune, pos int) ([][]rune, int) {
	start := pos
	for start > 0 {
		ch := line[start-1]
		if ch == ' ' || ch == '\t' {
			break
		}
		start--
	}
	prefix := string(line[start:pos])
	var candidates []string
	if start == 0 {
		candidates = commandNames(prefix)
	} else {
		candidates = c.argumentNames(strings.Fields(string(line[:start])), prefix)
	}
	if len(candidates) == 0 {
		return nil, 0
	}
	result := make([][]rune, 0, len(candidates))
	for _, name := range candidates {
		result = append(result, []rune(name[len(prefix):]))
	}
	return result, len(prefix)
}

func commandNames(prefix string) []string {
	var names []string
	for _, cmd := range commands {
		if strings.HasPrefix(cmd.name, prefix) {
			names = append(names, cmd.name)
		}
	}
	return names
}

func (c *commandCompleter) argumentNames(fields []string, prefix string) []string {
	if len(fields) == 0 {
		return nil
	}
	switch fields[0] {
	case "find":
		return c.declNames(prefix)
	case "reload":
		if len(fields) == 1 {
			return c.unitNames(prefix)
		}
		return matchPrefix([]string{"spec", "body"}, prefix)
	case "keyword":
		if len(fields) >= 2 {
			return matchPrefix([]string{"Ada_83", "Ada_95", "Ada_2005", "Ada_2012", "Ada_2022"}, prefix)
		}
	}
	return nil
}

func (c *commandCompleter) unitNames(prefix string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, u := range c.session.Context().Units() {
		if strings.HasPrefix(u.Name(), prefix) && !seen[u.Name()] {
			seen[u.Name()] = true
			names = append(names, u.Name())
		}
	}
	sort.Strings(names)
	return names
}

func (c *commandCompleter) declNames(prefix string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, u := range c.session.Context().Units() {
		for _, d := range astutil.Decls(u.Root()) {
			for _, name := range d.DefiningNames() {
				if name == nil {
					continue
				}
				text := ast.NameText(ast.NameLeaf(name))
				if strings.HasPrefix(text, prefix) && !seen[text] {
					seen[text] = true
					names = append(names, text)
				}
			}
		}
	}
	sort.Strings(names)
	return names
}

func matchPrefix(options []string, prefix string) []string {
	var names []string
	for _, opt := range options {
		if strings.HasPrefix(opt, prefix) {
			names = append(names, opt)
		}
	}
	return names
}
