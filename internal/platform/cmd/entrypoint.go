// Package cmd carries the helpers every command entry point shares: loading
// configuration from the environment, layering flag overrides on top, and
// running the command body with the trace pipeline attached.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sweeplab/minesweeper/internal/platform/config"
	"github.com/sweeplab/minesweeper/internal/platform/otel"
)

// ServiceMinesweeper identifies the game command for startup telemetry and
// CLI naming consistency.
const ServiceMinesweeper = "minesweeper"

// telemetryShutdownTimeout bounds the final span flush on exit.
const telemetryShutdownTimeout = 5 * time.Second

// ParseConfig fills cfg with environment-tagged defaults.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnv(cfg)
}

// ParseArgs applies command-line overrides through fs.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// ParseConfigFromArgs chains ParseConfig and ParseArgs for one-call setup.
func ParseConfigFromArgs[T any](cfg *T, fs *flag.FlagSet, args []string) error {
	if err := ParseConfig(cfg); err != nil {
		return err
	}
	return ParseArgs(fs, args)
}

// RunWithTelemetry starts the trace pipeline, executes run, and flushes the
// pipeline when run returns. The flush is bounded so a hung collector cannot
// wedge process exit.
func RunWithTelemetry(ctx context.Context, service string, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return fmt.Errorf("service name is required")
	}
	if run == nil {
		return fmt.Errorf("run function is required")
	}

	shutdown, err := otel.Setup(ctx, service)
	if err != nil {
		return fmt.Errorf("telemetry setup: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), telemetryShutdownTimeout)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			log.Printf("%s telemetry shutdown: %v", service, err)
		}
	}()

	return run(ctx)
}
