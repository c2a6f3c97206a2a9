// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"bytes"
	"testing"
)

func TestColorizerWrap(t *testing.T) {
	on := Colorizer{Enabled: true}
	if got := on.Wrap(ColorRed, "boom"); got != ColorRed+"boom"+ColorReset {
		t.Errorf("Wrap = %q", got)
	}
	if got := on.Wrap("", "plain"); got != "plain" {
		t.Errorf("Wrap with empty code = %q", got)
	}

	off := Colorizer{}
	if got := off.Wrap(ColorRed, "boom"); got != "boom" {
		t.Errorf("disabled Wrap = %q", got)
	}
}

func TestNewColorizerEnvGating(t *testing.T) {
	t.Setenv("TERM", "xterm-256color")
	t.Setenv("NO_COLOR", "")
	if !NewColorizer(true).Enabled {
		t.Error("expected colors enabled")
	}

	t.Setenv("NO_COLOR", "1")
	if NewColorizer(true).Enabled {
		t.Error("NO_COLOR did not disable colors")
	}

	t.Setenv("NO_COLOR", "")
	t.Setenv("TERM", "dumb")
	if NewColorizer(true).Enabled {
		t.Error("dumb terminal did not disable colors")
	}
}

func TestDetectNonTerminal(t *testing.T) {
	if Detect(&bytes.Buffer{}).Enabled {
		t.Error("buffer writer detected as a terminal")
	}
}
