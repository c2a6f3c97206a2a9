// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command taskctl is a small task runner demonstrating the cli package:
// multi-word commands, schema-typed options, variadic positionals, and the
// "--" pass-through bucket. Task definitions come from an optional
// taskctl.toml in the working directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/fatih/color"
	"github.com/remorses/goke/pkg/cli"
	"github.com/remorses/goke/pkg/schema"
	"github.com/remorses/goke/pkg/tui"
	"golang.org/x/sync/errgroup"
)

type taskFile struct {
	Tasks map[string]task `toml:"tasks"`
}

type task struct {
	Command string `toml:"command"`
}

func loadTasks() map[string]task {
	var tf taskFile
	if _, err := toml.DecodeFile("taskctl.toml", &tf); err != nil {
		return nil
	}
	return tf.Tasks
}

func main() {
	c := cli.New("taskctl").Version("0.3.0")

	c.Option("--verbose", "print each step as it runs")
	c.Option("-j, --jobs <jobs>", &schema.Schema{
		Type:        []string{"integer"},
		Description: "maximum parallel jobs",
		Default:     float64(4),
	})

	c.Command("run <task> [...args]", "run a task, passing extra args through").
		Alias("r").
		Option("--watch", "rerun when inputs change").
		Option("--env.key <value>", &schema.Schema{
			Type:        []string{"string"},
			Description: "extra environment entry",
		}).
		Action(runTask)

	c.Command("cache clear", "drop the local task cache").
		Action(func(ctx context.Context, inv *cli.Invocation) error {
			fmt.Println("cache cleared")
			return nil
		})

	c.Command("cache stats", "show cache hit rates").
		Option("--format <format>", &schema.Schema{
			Enum:    []any{"table", "json"},
			Default: "table",
		}).
		Action(func(ctx context.Context, inv *cli.Invocation) error {
			fmt.Printf("cache stats (%s)\n", inv.Options.String("format"))
			return nil
		})

	c.Default("[...tasks]", "run the listed tasks in parallel").
		Action(runAll)

	_, err := c.Parse(context.Background(), os.Args[1:], cli.ParseOptions{Run: true})
	switch {
	case err == nil:
	case errors.Is(err, cli.ErrHelp), errors.Is(err, cli.ErrVersion):
		return
	default:
		fmt.Fprintln(os.Stderr, color.RedString("taskctl: %v", err))
		var unresolved *cli.UnresolvedCommandError
		if errors.As(err, &unresolved) {
			// Input never resolved to a command; a usage hint helps more
			// than the bare error.
			fmt.Fprintf(os.Stderr, "\nRun 'taskctl --help' for usage.\n")
		}
		os.Exit(1)
	}
}

func runTask(ctx context.Context, inv *cli.Invocation) error {
	name := inv.Args[0]
	if err := runOne(name, inv); err != nil {
		return err
	}
	if inv.Options.Bool("watch") {
		fmt.Println(color.YellowString("watch mode not wired to a file watcher yet"))
	}
	return nil
}

// runAll runs every listed task, at most --jobs at a time.
func runAll(ctx context.Context, inv *cli.Invocation) error {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(int(inv.Options.Int("jobs")))
	for _, name := range inv.Rest {
		name := name
		g.Go(func() error {
			return runOne(name, inv)
		})
	}
	return g.Wait()
}

func runOne(name string, inv *cli.Invocation) error {
	defs := loadTasks()
	command := name
	if t, ok := defs[name]; ok {
		command = t.Command
	}

	if inv.Options.Bool("verbose") {
		fmt.Printf("running %s: %s\n", name, command)
		if len(inv.Tail) > 0 {
			fmt.Printf("pass-through args: %s\n", strings.Join(inv.Tail, " "))
		}
	}

	spin := tui.NewSpinner(os.Stderr, tui.Style{
		Color: tui.Detect(os.Stderr),
		Code:  tui.ColorCyan,
	})
	spin.Start(name)
	time.Sleep(300 * time.Millisecond) // stand-in for real task execution
	spin.Stop(true)

	fmt.Println(color.GreenString("✓ %s", name))
	return nil
}
