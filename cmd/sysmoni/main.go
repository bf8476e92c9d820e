package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sysmoni/sysmoni/internal/collector"
	"github.com/sysmoni/sysmoni/internal/config"
	"github.com/sysmoni/sysmoni/internal/errs"
	"github.com/sysmoni/sysmoni/internal/ui"
)

func main() {
	defer terminalRecovery()

	cfg := config.Default()
	if err := newRootCmd(&cfg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "sysmoni:", err)
		os.Exit(1)
	}
}

// run dispatches to one-shot/streaming JSON mode, or the interactive TUI
// when stdout is a terminal, grounded on joyshmitz's cmd/sysmoni/main.go
// isTTY gate.
func run(cfg config.Config) error {
	if cfg.JSON || cfg.JSONStream || !isTTY(os.Stdout) {
		return runJSON(cfg)
	}
	return ui.RunTUI(cfg)
}

func runJSON(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := collector.Options{
		WidgetsEnabled: map[string]bool{"gpu": cfg.EnableGPU, "battery": cfg.EnableBatt},
		TempUnit:       cfg.TempUnit,
	}
	switch {
	case cfg.CPUCurrentUsage:
		opts.CPUMode = collector.CurrentUsage
	case !cfg.CPUNormalized:
		opts.CPUMode = collector.Unnormalized
	}
	col := collector.New(opts)
	if err := col.Init(ctx); err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		s := col.Collect(ctx)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("%w: writing sample to stdout: %v", errs.ErrIO, err)
		}
		if !cfg.JSONStream {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(cfg.Interval):
		}
	}
}

func isTTY(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// terminalRecovery is the panic hook spec.md §7 requires: terminal
// restoration always attempted before the panic propagates. It first asks
// the running program to Kill (which restores raw mode/alt screen through
// bubbletea's own teardown), then writes the same escape codes directly as
// a fallback in case no program is active or its teardown can't run.
func terminalRecovery() {
	if r := recover(); r != nil {
		if prog := ui.ActiveProgram(); prog != nil {
			prog.Kill()
		}
		fmt.Fprint(os.Stderr, "\x1b[?1049l\x1b[?25h") // exit alt screen, show cursor
		panic(r)
	}
}
