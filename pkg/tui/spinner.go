// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Style configures a Spinner. The zero value means braille frames at 120ms
// with no coloring.
type Style struct {
	Frames   []string
	Interval time.Duration
	Color    Colorizer
	Code     string
}

var defaultFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner renders a single-line progress indicator. Start/Update/Stop are
// safe to call from different goroutines.
type Spinner struct {
	out   io.Writer
	style Style

	mu   sync.Mutex
	msg  string
	idx  int
	done chan struct{}
}

func NewSpinner(out io.Writer, style Style) *Spinner {
	if len(style.Frames) == 0 {
		style.Frames = defaultFrames
	}
	if style.Interval <= 0 {
		style.Interval = 120 * time.Millisecond
	}
	return &Spinner{out: out, style: style}
}

// Start begins animating with msg. Calling Start on a running spinner only
// replaces the message.
func (s *Spinner) Start(msg string) {
	s.mu.Lock()
	s.msg = msg
	if s.done != nil {
		s.mu.Unlock()
		return
	}
	s.done = make(chan struct{})
	done := s.done
	s.mu.Unlock()

	s.render()
	go func() {
		ticker := time.NewTicker(s.style.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.advance()
			case <-done:
				return
			}
		}
	}()
}

// Update replaces the message without restarting the animation.
func (s *Spinner) Update(msg string) {
	s.mu.Lock()
	s.msg = msg
	running := s.done != nil
	s.mu.Unlock()
	if running {
		s.render()
	}
}

// Stop halts the animation and either clears the line or finishes it with a
// newline.
func (s *Spinner) Stop(clear bool) {
	s.mu.Lock()
	if s.done == nil {
		s.mu.Unlock()
		return
	}
	close(s.done)
	s.done = nil
	s.mu.Unlock()

	if clear {
		fmt.Fprint(s.out, "\r\x1b[K")
		return
	}
	fmt.Fprintln(s.out)
}

func (s *Spinner) advance() {
	s.mu.Lock()
	s.idx = (s.idx + 1) % len(s.style.Frames)
	s.mu.Unlock()
	s.render()
}

func (s *Spinner) render() {
	s.mu.Lock()
	frame := s.style.Frames[s.idx]
	msg := s.msg
	s.mu.Unlock()

	line := s.style.Color.Wrap(s.style.Code, frame)
	if msg != "" {
		line += " " + msg
	}
	fmt.Fprintf(s.out, "\r\x1b[K%s", line)
}
