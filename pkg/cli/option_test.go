// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/remorses/goke/pkg/schema"
)

func TestNewOption(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		desc      any
		wantNames []string
		wantName  string
		wantArity Arity
	}{
		{
			name:      "boolean switch",
			raw:       "--force",
			wantNames: []string{"force"},
			wantName:  "force",
			wantArity: ArityBoolean,
		},
		{
			name:      "required value with short alias",
			raw:       "-t, --tag <tag>",
			wantNames: []string{"t", "tag"},
			wantName:  "tag",
			wantArity: ArityRequired,
		},
		{
			name:      "optional value",
			raw:       "--mode [mode]",
			wantNames: []string{"mode"},
			wantName:  "mode",
			wantArity: ArityOptional,
		},
		{
			name:      "longest alias is canonical regardless of order",
			raw:       "--verbose, -v",
			wantNames: []string{"verbose", "v"},
			wantName:  "verbose",
			wantArity: ArityBoolean,
		},
		{
			name:      "dot name",
			raw:       "--env.key <value>",
			wantNames: []string{"env.key"},
			wantName:  "env.key",
			wantArity: ArityRequired,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newOption(tt.raw, tt.desc)
			if diff := cmp.Diff(tt.wantNames, o.Names()); diff != "" {
				t.Errorf("names mismatch (-want +got):\n%s", diff)
			}
			if o.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", o.Name(), tt.wantName)
			}
			if o.Arity() != tt.wantArity {
				t.Errorf("Arity() = %v, want %v", o.Arity(), tt.wantArity)
			}
		})
	}
}

func TestNewOptionSchemaMetadata(t *testing.T) {
	s := &schema.Schema{
		Type:        []string{"string"},
		Description: "build target",
		Default:     "linux",
		Deprecated:  true,
	}
	o := newOption("--target <target>", s)

	if o.Schema() != s {
		t.Error("schema not attached")
	}
	if o.Description() != "build target" {
		t.Errorf("Description() = %q", o.Description())
	}
	if def, ok := o.Default(); !ok || def != "linux" {
		t.Errorf("Default() = %v, %v", def, ok)
	}
	if !o.Deprecated() {
		t.Error("Deprecated() = false")
	}
}

func TestNewOptionStringDescription(t *testing.T) {
	o := newOption("--quiet", "suppress output")
	if o.Description() != "suppress output" {
		t.Errorf("Description() = %q", o.Description())
	}
	if o.Schema() != nil {
		t.Error("string description produced a schema")
	}
	if _, ok := o.Default(); ok {
		t.Error("string description produced a default")
	}
}

func TestNewOptionPanics(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		desc any
	}{
		{name: "no flag name", raw: "<value>"},
		{name: "bare word", raw: "force"},
		{name: "empty dashes", raw: "--"},
		{name: "bad description type", raw: "--x", desc: 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("newOption(%q, %v) did not panic", tt.raw, tt.desc)
				}
			}()
			newOption(tt.raw, tt.desc)
		})
	}
}

func TestOptionUsage(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"-t, --tag <tag>", "-t, --tag <value>"},
		{"--mode [mode]", "--mode [value]"},
		{"--force", "--force"},
	}
	for _, tt := range tests {
		if got := newOption(tt.raw, nil).usage(); got != tt.want {
			t.Errorf("usage(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestMergeOptionMaps(t *testing.T) {
	globals := []*Option{newOption("--verbose, -v", nil)}
	locals := []*Option{newOption("-t, --tag <tag>", nil)}

	booleans, aliases := mergeOptionMaps(globals, locals)

	if !booleans["verbose"] {
		t.Error("verbose not registered as boolean")
	}
	if booleans["tag"] {
		t.Error("value-taking tag registered as boolean")
	}
	wantAliases := map[string]string{"v": "verbose", "t": "tag"}
	if diff := cmp.Diff(wantAliases, aliases); diff != "" {
		t.Errorf("aliases mismatch (-want +got):\n%s", diff)
	}
}
