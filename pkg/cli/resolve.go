// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"sort"

	"github.com/remorses/goke/pkg/argv"
)

// match is a resolved command plus the tokenization produced under that
// command's own boolean/alias declarations.
type match struct {
	cmd    *Command
	tokens argv.Result
}

// tokenize runs the tokenizer with the boolean and alias sets of the global
// options merged with cmd's local options. Each candidate gets its own pass
// because those sets change how ambiguous tokens classify.
func (c *CLI) tokenize(args []string, cmd *Command) argv.Result {
	var local []*Option
	if cmd != nil {
		local = cmd.options
	}
	booleans, aliases := mergeOptionMaps(c.globals, local)
	return argv.Parse(args, argv.Options{Booleans: booleans, Aliases: aliases})
}

// resolve decides which command the argument list names. Candidates are
// tried longest name first, so "mcp login" wins over "mcp" when both could
// match. The default command is considered last, and deliberately not when
// the first token is the first word of some named command: that input is
// more likely a mistyped subcommand than default-command arguments.
func (c *CLI) resolve(args []string) (*match, error) {
	ordered := make([]*Command, len(c.commands))
	copy(ordered, c.commands)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].nameParts) > len(ordered[j].nameParts)
	})

	for _, cmd := range ordered {
		tok := c.tokenize(args, cmd)
		if matchesName(cmd, tok.Positionals) {
			return &match{cmd: cmd, tokens: tok}, nil
		}
	}

	first := firstPositional(c.tokenize(args, nil))

	if c.def != nil && (first == "" || !c.prefixesNamedCommand(first)) {
		return &match{cmd: c.def, tokens: c.tokenize(args, c.def)}, nil
	}

	var candidates []string
	if first != "" {
		for _, cmd := range c.commands {
			if cmd.matchesFirstWord(first) {
				candidates = append(candidates, cmd.Name())
			}
		}
	}
	return nil, &UnresolvedCommandError{Token: first, Candidates: candidates}
}

// matchesName reports whether the leading positional tokens spell out the
// command's name words, allowing an alias in the first position.
func matchesName(cmd *Command, positionals []string) bool {
	if cmd.IsDefault() || len(positionals) < len(cmd.nameParts) {
		return false
	}
	if !cmd.matchesFirstWord(positionals[0]) {
		return false
	}
	for i := 1; i < len(cmd.nameParts); i++ {
		if positionals[i] != cmd.nameParts[i] {
			return false
		}
	}
	return true
}

func (c *CLI) prefixesNamedCommand(tok string) bool {
	for _, cmd := range c.commands {
		if cmd.matchesFirstWord(tok) {
			return true
		}
	}
	return false
}

func firstPositional(tok argv.Result) string {
	if len(tok.Positionals) == 0 {
		return ""
	}
	return tok.Positionals[0]
}
