// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tui holds small terminal presentation helpers used by binaries
// built on the cli package. The parsing layers never import it.
package tui

import (
	"io"
	"os"

	"golang.org/x/term"
)

const (
	ColorReset  = "\x1b[0m"
	ColorRed    = "\x1b[31m"
	ColorGreen  = "\x1b[32m"
	ColorYellow = "\x1b[33m"
	ColorCyan   = "\x1b[36m"
	ColorDim    = "\x1b[90m"
)

type Colorizer struct {
	Enabled bool
}

// Detect returns a Colorizer enabled only when w is a real terminal and the
// environment does not opt out (NO_COLOR set, or TERM empty/dumb).
func Detect(w io.Writer) Colorizer {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return Colorizer{}
	}
	return NewColorizer(true)
}

func NewColorizer(enabled bool) Colorizer {
	if !enabled {
		return Colorizer{}
	}
	if os.Getenv("NO_COLOR") != "" {
		return Colorizer{}
	}
	t := os.Getenv("TERM")
	if t == "" || t == "dumb" {
		return Colorizer{}
	}
	return Colorizer{Enabled: true}
}

func (c Colorizer) Wrap(code, text string) string {
	if !c.Enabled || code == "" {
		return text
	}
	return code + text + ColorReset
}
