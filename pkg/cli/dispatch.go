// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"context"
	"sort"

	"github.com/remorses/goke/pkg/argv"
	"github.com/remorses/goke/pkg/schema"
)

// dispatch validates the resolved match and, when run is set, invokes the
// handler. Checks run in a fixed order: unknown options, then option
// assembly (where coercion failures surface), then missing required values,
// then required positionals.
func (c *CLI) dispatch(ctx context.Context, m *match, run bool) (*Result, error) {
	cmd := m.cmd
	declared := make([]*Option, 0, len(c.globals)+len(cmd.options))
	declared = append(declared, c.globals...)
	declared = append(declared, cmd.options...)

	if err := checkUnknown(m.tokens.Flags, declared, cmd.Name()); err != nil {
		return nil, err
	}

	opts, err := assembleOptions(m.tokens.Flags, declared)
	if err != nil {
		return nil, err
	}

	// A required-arity option that resolved to a bare sentinel never received
	// a real value. The check runs on the assembled map so dot-named options
	// are traversed the same way handlers read them.
	for _, o := range declared {
		if o.Arity() != ArityRequired {
			continue
		}
		if v, ok := opts.Get(o.Name()); ok {
			if _, isBool := v.(bool); isBool {
				return nil, &MissingValueError{Option: o.Name()}
			}
		}
	}

	args := m.tokens.Positionals[len(cmd.nameParts):]
	if need := cmd.requiredArgs(); len(args) < need {
		return nil, &MissingArgsError{Command: cmd.Name(), Expected: need, Got: len(args)}
	}

	inv := &Invocation{Args: args, Options: opts}
	if vi := cmd.variadicSlot(); vi != -1 && len(args) > vi {
		inv.Rest = args[vi:]
	}
	if tail, ok := m.tokens.Flags[argv.Rest].(argv.List); ok {
		inv.Tail = []string(tail)
		opts[argv.Rest] = []string(tail)
	}

	res := &Result{Invocation: inv, Command: cmd, MatchedName: cmd.Name()}
	if run && cmd.handler != nil {
		if err := cmd.handler(ctx, inv); err != nil {
			return res, err
		}
	}
	return res, nil
}

// checkUnknown rejects any parsed flag not declared on the matched command or
// globally. The reserved "--" bucket is not a flag. Keys are visited in
// sorted order so the same input always names the same offender.
func checkUnknown(flags map[string]argv.Value, declared []*Option, command string) error {
	known := make(map[string]bool)
	for _, o := range declared {
		for _, n := range o.Names() {
			known[n] = true
		}
	}

	names := make([]string, 0, len(flags))
	for name := range flags {
		if name != argv.Rest {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		if !known[name] {
			return &UnknownOptionError{Name: name, Command: command}
		}
	}
	return nil
}

// assembleOptions builds the options map handed to the handler: defaults for
// absent options, sentinel collapsing, schema coercion, dot-path expansion,
// and mirroring of the final value onto every declared alias.
func assembleOptions(flags map[string]argv.Value, declared []*Option) (Options, error) {
	opts := make(Options)

	for _, o := range declared {
		raw, seen := flags[o.Name()]

		var resolved any
		switch {
		case !seen:
			def, has := o.Default()
			if !has {
				continue
			}
			resolved = def
		default:
			switch v := raw.(type) {
			case argv.String:
				resolved = string(v)
			case argv.Bool:
				resolved = bool(v)
			case argv.List:
				resolved = []string(v)
			}

			if _, isSentinel := resolved.(bool); isSentinel && o.Arity() != ArityBoolean {
				// A value-taking flag given without a value. With a schema the
				// option resolves to nothing at all; the required-value check
				// later trips on the kept sentinel for required arity.
				if o.Schema() != nil {
					if o.Arity() == ArityOptional {
						continue
					}
					break
				}
				break
			}

			if s := o.Schema(); s != nil {
				coerced, err := schema.Coerce(resolved, s, formatFlagName(o.Name()))
				if err != nil {
					return nil, err
				}
				resolved = coerced
			}
		}

		for _, name := range o.Names() {
			setPath(opts, name, resolved)
		}
	}

	return opts, nil
}
