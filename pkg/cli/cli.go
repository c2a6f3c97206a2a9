// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"
)

// Sentinel errors for built-in flag handling.
var (
	// ErrHelp is returned by Parse when --help or -h was requested; the
	// rendered text is in Result.HelpText.
	ErrHelp = errors.New("help requested")

	// ErrVersion is returned by Parse when --version was requested; the
	// rendered text is in Result.HelpText.
	ErrVersion = errors.New("version requested")
)

// CLI is the command and option registry plus the parse entry point. Build it
// up front with Option/Command/Default, then call Parse; the registry is
// frozen on the first Parse call so concurrent parses share it safely.
type CLI struct {
	name    string
	version string
	out     io.Writer

	globals  []*Option
	commands []*Command
	def      *Command

	frozen atomic.Bool
}

// New returns an empty registry for the named program.
func New(name string) *CLI {
	return &CLI{name: name, out: os.Stdout}
}

// SetOutput redirects help and version text, which default to stdout.
func (c *CLI) SetOutput(w io.Writer) *CLI {
	c.out = w
	return c
}

// Version registers the string printed for --version.
func (c *CLI) Version(v string) *CLI {
	c.ensureMutable()
	c.version = v
	return c
}

// Option declares a global option, visible to every command. The raw
// declaration lists dash-prefixed aliases followed by an optional bracket
// spec: "<x>" requires a value, "[x]" makes it optional, none declares a
// boolean switch. desc is a plain description string or a schema value.
func (c *CLI) Option(raw string, desc any) *CLI {
	c.ensureMutable()
	c.globals = append(c.globals, newOption(raw, desc))
	return c
}

// Command declares a command. raw may contain space-separated words for
// multi-word commands plus bracketed positional specs, e.g.
// "remote add <name> [...flags]".
func (c *CLI) Command(raw, desc string) *Command {
	c.ensureMutable()
	cmd := newCommand(raw, desc, c)
	if cmd.IsDefault() {
		c.def = cmd
		return cmd
	}
	c.commands = append(c.commands, cmd)
	return cmd
}

// Default declares the command that runs when no named command matches. raw
// holds only bracketed positional specs, e.g. "[...files]".
func (c *CLI) Default(raw, desc string) *Command {
	c.ensureMutable()
	cmd := newCommand(raw, desc, c)
	if !cmd.IsDefault() {
		panic(fmt.Sprintf("cli: default command declaration %q names a command word", raw))
	}
	c.def = cmd
	return cmd
}

func (c *CLI) ensureMutable() {
	if c.frozen.Load() {
		panic("cli: registry mutated after the first Parse call")
	}
}

// ParseOptions controls a single Parse call.
type ParseOptions struct {
	// Run invokes the matched handler and honors the built-in --help and
	// --version flags. With Run false, Parse resolves and validates only,
	// which is what help layers use for introspection.
	Run bool
}

// Invocation is the validated input handed to a command handler. It is owned
// by a single Parse call and carries no cross-invocation state.
type Invocation struct {
	// Args holds the positional tokens after the command name words.
	Args []string
	// Rest holds the tokens absorbed by a variadic slot, if one is declared.
	Rest []string
	// Tail holds the tokens after a bare "--", verbatim.
	Tail []string
	// Options is the assembled option map: typed values, nested under
	// dot-path names, mirrored to every alias.
	Options Options
}

// Result is the outcome of one Parse call.
type Result struct {
	*Invocation
	// Command is the matched command.
	Command *Command
	// MatchedName is the canonical space-joined command name, empty for the
	// default command.
	MatchedName string
	// HelpText carries rendered help or version output when Parse returns
	// ErrHelp or ErrVersion.
	HelpText string
}

// Parse resolves argv (the post-program-name argument list) against the
// registry, validates the match, and, when opts.Run is set, invokes the
// matched handler. Handler errors and validation errors arrive on the same
// error return.
func (c *CLI) Parse(ctx context.Context, argv []string, opts ParseOptions) (*Result, error) {
	c.frozen.Store(true)

	if opts.Run {
		if r, err := c.builtin(argv); r != nil {
			return r, err
		}
	}

	m, err := c.resolve(argv)
	if err != nil {
		return nil, err
	}
	return c.dispatch(ctx, m, opts.Run)
}

// builtin intercepts --help/-h and --version before resolution. Tokens after
// "--" belong to the invocation and never trigger built-ins.
func (c *CLI) builtin(argv []string) (*Result, error) {
	for _, tok := range argv {
		switch tok {
		case "--":
			return nil, nil
		case "--help", "-h":
			text := c.Usage()
			if m, err := c.resolve(argv); err == nil && !m.cmd.IsDefault() {
				text = c.HelpFor(m.cmd)
			}
			fmt.Fprint(c.out, text)
			return &Result{HelpText: text}, ErrHelp
		case "--version":
			if c.version == "" {
				continue
			}
			text := fmt.Sprintf("%s/%s\n", c.name, c.version)
			fmt.Fprint(c.out, text)
			return &Result{HelpText: text}, ErrVersion
		}
	}
	return nil, nil
}
