// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolveGreedyMatching(t *testing.T) {
	c := New("test")
	c.Command("mcp", "manage servers")
	c.Command("mcp login <server>", "authenticate")

	m, err := c.resolve([]string{"mcp", "login", "prod"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if m.cmd.Name() != "mcp login" {
		t.Errorf("resolved %q, want %q", m.cmd.Name(), "mcp login")
	}

	// Registration order must not matter; the longer name still wins.
	c2 := New("test")
	c2.Command("mcp login <server>", "authenticate")
	c2.Command("mcp", "manage servers")
	m, err = c2.resolve([]string{"mcp", "login", "prod"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if m.cmd.Name() != "mcp login" {
		t.Errorf("resolved %q, want %q", m.cmd.Name(), "mcp login")
	}
}

func TestResolveAlias(t *testing.T) {
	c := New("test")
	c.Command("status", "show status").Alias("st")

	m, err := c.resolve([]string{"st"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if m.cmd.Name() != "status" {
		t.Errorf("resolved %q, want %q", m.cmd.Name(), "status")
	}
}

func TestResolveDefaultFallback(t *testing.T) {
	c := New("test")
	c.Command("build <target>", "build a target")
	c.Default("[...files]", "process files")

	m, err := c.resolve([]string{"a.txt", "b.txt"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !m.cmd.IsDefault() {
		t.Errorf("resolved %q, want the default command", m.cmd.Name())
	}

	m, err = c.resolve(nil)
	if err != nil {
		t.Fatalf("resolve with no args: %v", err)
	}
	if !m.cmd.IsDefault() {
		t.Errorf("resolved %q with no args, want the default command", m.cmd.Name())
	}
}

func TestResolveBlockedDefault(t *testing.T) {
	// "mcp" alone matches neither "mcp login" (too few tokens) nor the
	// default command, because it is the first word of a real command.
	c := New("test")
	c.Command("mcp login <server>", "authenticate")
	c.Default("[...files]", "process files")

	_, err := c.resolve([]string{"mcp"})
	var unresolved *UnresolvedCommandError
	if !errors.As(err, &unresolved) {
		t.Fatalf("resolve = %v, want UnresolvedCommandError", err)
	}
	if unresolved.Token != "mcp" {
		t.Errorf("Token = %q, want %q", unresolved.Token, "mcp")
	}
	if diff := cmp.Diff([]string{"mcp login"}, unresolved.Candidates); diff != "" {
		t.Errorf("Candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveNoMatchNoDefault(t *testing.T) {
	c := New("test")
	c.Command("build <target>", "build a target")

	_, err := c.resolve([]string{"deploy"})
	var unresolved *UnresolvedCommandError
	if !errors.As(err, &unresolved) {
		t.Fatalf("resolve = %v, want UnresolvedCommandError", err)
	}
	if unresolved.Token != "deploy" {
		t.Errorf("Token = %q, want %q", unresolved.Token, "deploy")
	}
	if len(unresolved.Candidates) != 0 {
		t.Errorf("Candidates = %v, want none", unresolved.Candidates)
	}
}

func TestResolvePerCommandTokenization(t *testing.T) {
	// "run" declares --watch boolean, so "--watch serve" leaves "serve" a
	// positional under run's tokenization. A command without that declaration
	// would consume "serve" as the flag's value.
	c := New("test")
	c.Command("run <task>", "run a task").Option("--watch", "rerun on change")

	m, err := c.resolve([]string{"run", "--watch", "serve"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if m.cmd.Name() != "run" {
		t.Fatalf("resolved %q, want %q", m.cmd.Name(), "run")
	}
	if diff := cmp.Diff([]string{"run", "serve"}, m.tokens.Positionals); diff != "" {
		t.Errorf("positionals mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveFlagBeforeCommandName(t *testing.T) {
	// A value-taking global flag may swallow what looks like the command
	// word; resolution still finds the command when the flag is boolean.
	c := New("test")
	c.Option("--verbose", "noisy output")
	c.Command("status", "show status")

	m, err := c.resolve([]string{"--verbose", "status"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if m.cmd.Name() != "status" {
		t.Errorf("resolved %q, want %q", m.cmd.Name(), "status")
	}
}
