// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"context"
	"fmt"
	"strings"
)

// Handler runs a matched command. Validation errors and handler errors
// surface on the same channel: the error returned by Parse.
type Handler func(ctx context.Context, inv *Invocation) error

// positional is one declared argument slot.
type positional struct {
	name     string
	required bool
	variadic bool
}

// Command is one declared command: a possibly multi-word name, its positional
// shape, command-local options, first-word aliases, and a handler. Commands
// are built at registration time and treated as immutable once parsing
// starts.
type Command struct {
	raw         string
	nameParts   []string
	positionals []positional
	options     []*Option
	aliases     []string
	desc        string
	handler     Handler
	cli         *CLI
}

// newCommand parses a raw declaration like "remote add <name> [...flags]".
// Leading bare words form the (possibly multi-word) name; an empty name
// declares the default command. Bracketed words declare positional slots:
// <x> required, [x] optional, [...x] variadic. A variadic slot must be last
// and there can be at most one; violations panic at registration time.
func newCommand(raw, desc string, c *CLI) *Command {
	cmd := &Command{raw: raw, desc: desc, cli: c}

	for _, tok := range strings.Fields(raw) {
		switch {
		case strings.HasPrefix(tok, "<"):
			cmd.positionals = append(cmd.positionals, positional{
				name:     strings.Trim(tok, "<>"),
				required: true,
			})
		case strings.HasPrefix(tok, "["):
			name := strings.Trim(tok, "[]")
			variadic := strings.HasPrefix(name, "...")
			cmd.positionals = append(cmd.positionals, positional{
				name:     strings.TrimPrefix(name, "..."),
				variadic: variadic,
			})
		default:
			if len(cmd.positionals) > 0 {
				panic(fmt.Sprintf("cli: command %q declares a name word after a positional", raw))
			}
			cmd.nameParts = append(cmd.nameParts, tok)
		}
	}

	for i, p := range cmd.positionals {
		if p.variadic && i != len(cmd.positionals)-1 {
			panic(fmt.Sprintf("cli: command %q declares a variadic slot before the last position", raw))
		}
	}

	return cmd
}

// Option declares a command-local option. See CLI.Option for the declaration
// syntax.
func (cmd *Command) Option(raw string, desc any) *Command {
	cmd.cli.ensureMutable()
	cmd.options = append(cmd.options, newOption(raw, desc))
	return cmd
}

// Alias registers an alternate spelling accepted in place of the command's
// first name word.
func (cmd *Command) Alias(name string) *Command {
	cmd.cli.ensureMutable()
	cmd.aliases = append(cmd.aliases, name)
	return cmd
}

// Action attaches the handler invoked when the command matches.
func (cmd *Command) Action(h Handler) *Command {
	cmd.cli.ensureMutable()
	cmd.handler = h
	return cmd
}

// Name returns the space-joined command name, empty for the default command.
func (cmd *Command) Name() string {
	return strings.Join(cmd.nameParts, " ")
}

// IsDefault reports whether this is the default (empty-name) command.
func (cmd *Command) IsDefault() bool {
	return len(cmd.nameParts) == 0
}

// requiredArgs counts positional slots that must be filled.
func (cmd *Command) requiredArgs() int {
	n := 0
	for _, p := range cmd.positionals {
		if p.required {
			n++
		}
	}
	return n
}

// variadicSlot returns the index of the variadic slot, or -1.
func (cmd *Command) variadicSlot() int {
	for i, p := range cmd.positionals {
		if p.variadic {
			return i
		}
	}
	return -1
}

// matchesFirstWord reports whether tok equals the command's first name word
// or one of its aliases.
func (cmd *Command) matchesFirstWord(tok string) bool {
	if cmd.IsDefault() {
		return false
	}
	if cmd.nameParts[0] == tok {
		return true
	}
	for _, alias := range cmd.aliases {
		if alias == tok {
			return true
		}
	}
	return false
}

// usageArgs renders the positional spec for help output.
func (cmd *Command) usageArgs() string {
	parts := make([]string, 0, len(cmd.positionals))
	for _, p := range cmd.positionals {
		switch {
		case p.variadic:
			parts = append(parts, fmt.Sprintf("[...%s]", p.name))
		case p.required:
			parts = append(parts, fmt.Sprintf("<%s>", p.name))
		default:
			parts = append(parts, fmt.Sprintf("[%s]", p.name))
		}
	}
	return strings.Join(parts, " ")
}
