package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"yuanc/internal/diagfmt"
	"yuanc/internal/driver"
	"yuanc/internal/project"
	"yuanc/internal/trace"
	"yuanc/internal/types"
)

// buildOptions assembles driver.Options from the persistent/compile flags
// and, when present, yuan.toml — CLI flags always override manifest values
// (SPEC_FULL's Configuration section).
func buildOptions(cmd *cobra.Command) (driver.Options, error) {
	action, err := flagAction(cmd)
	if err != nil {
		return driver.Options{}, err
	}
	maxDiag, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, fmt.Errorf("read --max-diagnostics: %w", err)
	}
	errType, err := cmd.Flags().GetString("error-type")
	if err != nil {
		return driver.Options{}, fmt.Errorf("read --error-type: %w", err)
	}

	opts := driver.Options{
		Action:         action,
		MaxDiagnostics: maxDiag,
		ErrorTypeName:  errType,
		Tracer:         trace.FromContext(cmd.Context()),
	}

	if manifest, ok, err := project.LoadProjectManifest("."); err == nil && ok {
		if manifest.Package.PointerWidth != 0 {
			opts.PointerWidth = pointerWidthFromBits(manifest.Package.PointerWidth)
		}
	}

	cacheDir, err := cmd.Root().PersistentFlags().GetString("cache")
	if err != nil {
		return driver.Options{}, fmt.Errorf("read --cache: %w", err)
	}
	if cacheDir != "" {
		cache, err := driver.OpenTokenCache(cacheDir)
		if err != nil {
			return driver.Options{}, fmt.Errorf("open --cache directory: %w", err)
		}
		opts.Cache = cache
	}

	return opts, nil
}

func flagAction(cmd *cobra.Command) (driver.Action, error) {
	name, err := cmd.Flags().GetString("emit")
	if err != nil {
		return 0, fmt.Errorf("read --emit: %w", err)
	}
	action, err := driver.ParseAction(name)
	if err != nil {
		return 0, err
	}
	return action, nil
}

func pointerWidthFromBits(bits int) types.Width {
	switch bits {
	case 32:
		return types.Width32
	case 64:
		return types.Width64
	default:
		return 0
	}
}

// writeResult renders one file's Result according to the requested
// action: diagnostics always go to stderr first, then the emit-specific
// payload goes to the command's output writer (stdout unless replaced via
// cmd.SetOut). The --output flag is not read here.
func writeResult(cmd *cobra.Command, res *driver.Result, action driver.Action) error {
	color, err := useColor(cmd, os.Stderr)
	if err != nil {
		return err
	}
	if res.Bag != nil && (res.Bag.HasErrors() || res.Bag.WarningCount() > 0) {
		diagfmt.Pretty(os.Stderr, res.Bag, res.FileSet, diagfmt.PrettyOpts{Color: color, ContextLines: 1})
	}

	out := cmd.OutOrStdout()
	switch action {
	case driver.ActionTokens:
		return driver.WriteTokens(out, res.Tokens)
	case driver.ActionAST:
		dumpColor, err := useColor(cmd, os.Stdout)
		if err != nil {
			return err
		}
		driver.WriteAST(out, res.Ctx, res.File, diagfmt.DumpOpts{Color: dumpColor})
		return nil
	case driver.ActionPretty:
		sf := res.FileSet.Get(res.FileID)
		return driver.WritePretty(out, res.Ctx, res.File, sf)
	default:
		return nil
	}
}
