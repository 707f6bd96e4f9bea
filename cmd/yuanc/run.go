package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"yuanc/internal/driver"
	"yuanc/internal/source"
	"yuanc/internal/trace"
)

// runCompile is the root command's default action: compile every input
// path to the depth --emit requires, one input at a time (spec §4.8:
// multi-file compilations analyze each unit independently), and return an
// error naming the worst outcome's Status when any input did not succeed.
func runCompile(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	if err := setupTracing(cmd); err != nil {
		return err
	}
	logger := trace.LoggerFromContext(cmd.Context())

	opts, err := buildOptions(cmd)
	if err != nil {
		return err
	}

	logger.Debug("compiling", "files", len(args), "emit", opts.Action)

	fs := source.NewFileSet()
	worst := driver.Success
	for _, path := range args {
		res, err := driver.CompileFile(fs, path, opts)
		if err != nil && res.Status != driver.CodeGenError {
			logger.Error("compile failed", "path", path, "error", err)
			return fmt.Errorf("%s: %w", path, err)
		}
		if werr := writeResult(cmd, res, opts.Action); werr != nil {
			return werr
		}
		if statusRank(res.Status) > statusRank(worst) {
			worst = res.Status
		}
	}

	if worst != driver.Success {
		logger.Warn("compilation failed", "status", worst.String())
		return fmt.Errorf("compilation failed: %s", worst)
	}
	return nil
}

func statusRank(s driver.Status) int {
	switch s {
	case driver.Success:
		return 0
	case driver.LexerError:
		return 1
	case driver.ParserError:
		return 2
	case driver.SemanticError:
		return 3
	case driver.CodeGenError:
		return 4
	case driver.LinkError:
		return 5
	case driver.IOError:
		return 6
	case driver.InternalError:
		return 7
	default:
		return 8
	}
}
