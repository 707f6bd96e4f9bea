package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"yuanc/internal/trace"
)

// setupTracing parses --trace-*/--verbose and attaches a Tracer and Logger
// to cmd's context, so every downstream trace.FromContext/LoggerFromContext
// call (buildOptions, the driver pipeline) sees them without threading them
// through as explicit parameters.
func setupTracing(cmd *cobra.Command) error {
	verbose, err := cmd.Root().PersistentFlags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("read --verbose: %w", err)
	}
	logger := trace.NewLogger(os.Stderr, verbose)

	tracer, err := buildTracer(cmd)
	if err != nil {
		return err
	}

	ctx := trace.WithLogger(trace.WithTracer(cmd.Context(), tracer), logger)
	cmd.SetContext(ctx)
	return nil
}

// buildTracer constructs a trace.Tracer from --trace-level/--trace-mode/
// --trace-format/--trace-output, defaulting to trace.Nop when --trace-level
// is "off" (the default), so a plain `yuanc file.yu` pays no tracing cost.
func buildTracer(cmd *cobra.Command) (trace.Tracer, error) {
	levelName, err := cmd.Root().PersistentFlags().GetString("trace-level")
	if err != nil {
		return nil, fmt.Errorf("read --trace-level: %w", err)
	}
	level, err := trace.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	if level == trace.LevelOff {
		return trace.Nop, nil
	}

	modeName, err := cmd.Root().PersistentFlags().GetString("trace-mode")
	if err != nil {
		return nil, fmt.Errorf("read --trace-mode: %w", err)
	}
	mode, err := trace.ParseMode(modeName)
	if err != nil {
		return nil, err
	}

	formatName, err := cmd.Root().PersistentFlags().GetString("trace-format")
	if err != nil {
		return nil, fmt.Errorf("read --trace-format: %w", err)
	}
	format, err := trace.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}

	outputPath, err := cmd.Root().PersistentFlags().GetString("trace-output")
	if err != nil {
		return nil, fmt.Errorf("read --trace-output: %w", err)
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: outputPath,
	})
	if err != nil {
		return nil, fmt.Errorf("build tracer: %w", err)
	}
	return tracer, nil
}
