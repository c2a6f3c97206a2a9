// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"strings"
)

// UnknownOptionError is returned when a parsed flag is declared neither on
// the matched command nor globally.
type UnknownOptionError struct {
	Name    string // canonical flag name without dashes
	Command string // matched command name, empty for the default command
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("unknown option %s", formatFlagName(e.Name))
}

// MissingValueError is returned when an option that requires a value resolved
// to the bare presence sentinel.
type MissingValueError struct {
	Option string // canonical option name without dashes
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("option %s value is missing", formatFlagName(e.Option))
}

// MissingArgsError is returned when fewer positional arguments were supplied
// than the matched command requires.
type MissingArgsError struct {
	Command  string
	Expected int
	Got      int
}

func (e *MissingArgsError) Error() string {
	name := e.Command
	if name == "" {
		name = "this command"
	}
	return fmt.Sprintf("'%s' requires at least %d argument(s), got %d", name, e.Expected, e.Got)
}

// UnresolvedCommandError is returned when no registered command (default
// included) matched the input. Candidates lists registered commands sharing
// the first input word, for "did you mean" presentation by the caller.
type UnresolvedCommandError struct {
	Token      string
	Candidates []string
}

func (e *UnresolvedCommandError) Error() string {
	if len(e.Candidates) == 0 {
		if e.Token == "" {
			return "no command matched"
		}
		return fmt.Sprintf("no command matched: %s", e.Token)
	}
	return fmt.Sprintf("no command matched: %s (did you mean: %s)", e.Token, strings.Join(e.Candidates, ", "))
}

// formatFlagName renders a flag name with the dash count its length implies.
func formatFlagName(name string) string {
	if len(name) == 1 {
		return "-" + name
	}
	return "--" + name
}
