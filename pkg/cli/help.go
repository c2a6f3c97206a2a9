// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"sort"
	"strings"
)

// Usage renders the global help text: registered commands plus global
// options.
func (c *CLI) Usage() string {
	var b strings.Builder

	b.WriteString(c.name)
	b.WriteString("\n\n")

	b.WriteString("USAGE:\n")
	fmt.Fprintf(&b, "    %s [OPTIONS] COMMAND [ARGS...]\n", c.name)
	if c.def != nil {
		if args := c.def.usageArgs(); args != "" {
			fmt.Fprintf(&b, "    %s [OPTIONS] %s\n", c.name, args)
		}
	}
	b.WriteString("\n")

	if len(c.commands) > 0 {
		names := make([]string, len(c.commands))
		byName := make(map[string]*Command, len(c.commands))
		for i, cmd := range c.commands {
			names[i] = cmd.Name()
			byName[cmd.Name()] = cmd
		}
		sort.Strings(names)

		b.WriteString("COMMANDS:\n")
		for _, name := range names {
			fmt.Fprintf(&b, "    %-16s %s\n", name, describeWithAliases(byName[name]))
		}
		b.WriteString("\n")
	}

	writeOptions(&b, "OPTIONS:", c.globals)

	fmt.Fprintf(&b, "Run '%s COMMAND --help' for more information on a specific command.\n", c.name)
	return b.String()
}

// HelpFor renders help for one command: usage line with its positional spec,
// its local options, then the global options.
func (c *CLI) HelpFor(cmd *Command) string {
	var b strings.Builder

	header := cmd.Name()
	if header == "" {
		header = c.name
	}
	b.WriteString(header)
	if cmd.desc != "" {
		b.WriteString(" - ")
		b.WriteString(cmd.desc)
	}
	b.WriteString("\n\n")

	b.WriteString("USAGE:\n")
	usage := "    " + c.name
	if cmd.Name() != "" {
		usage += " " + cmd.Name()
	}
	if args := cmd.usageArgs(); args != "" {
		usage += " " + args
	}
	usage += " [OPTIONS]"
	b.WriteString(usage + "\n\n")

	if len(cmd.aliases) > 0 {
		fmt.Fprintf(&b, "ALIASES:\n    %s\n\n", strings.Join(cmd.aliases, ", "))
	}

	writeOptions(&b, "OPTIONS:", cmd.options)
	writeOptions(&b, "GLOBAL OPTIONS:", c.globals)

	return b.String()
}

func describeWithAliases(cmd *Command) string {
	if len(cmd.aliases) == 0 {
		return cmd.desc
	}
	suffix := fmt.Sprintf("(aliases: %s)", strings.Join(cmd.aliases, ", "))
	if cmd.desc == "" {
		return suffix
	}
	return cmd.desc + " " + suffix
}

func writeOptions(b *strings.Builder, heading string, opts []*Option) {
	if len(opts) == 0 {
		return
	}
	b.WriteString(heading + "\n")
	for _, o := range opts {
		decl := "    " + o.usage()
		desc := o.Description()
		if o.Deprecated() {
			desc = strings.TrimSpace("(deprecated) " + desc)
		}
		if desc == "" {
			b.WriteString(decl)
		} else {
			fmt.Fprintf(b, "%-32s %s", decl, desc)
		}
		if def, ok := o.Default(); ok {
			fmt.Fprintf(b, " (default: %v)", def)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}
