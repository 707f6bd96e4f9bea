// Command yuanc is the frontend driver for the Yuan compiler: it lexes,
// parses, and semantically analyzes source files, emitting tokens, an
// AST dump, round-tripped surface syntax, or diagnostics — and hands an
// analyzed AST to an external codegen.Backend for the emit actions this
// binary never implements itself.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"yuanc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:     "yuanc [flags] <file.yu>...",
	Short:   "Yuan compiler frontend",
	Long:    "yuanc lexes, parses, and checks Yuan source files, stopping at whatever depth --emit requires.",
	Args:    cobra.ArbitraryArgs,
	RunE:    runCompile,
	Version: version.Version,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize diagnostic output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("verbose", false, "raise the internal logger to debug level")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum diagnostics to accumulate before cutting off (0 = unlimited)")
	rootCmd.PersistentFlags().String("cache", "", "directory for the on-disk token cache (disabled if empty)")

	rootCmd.PersistentFlags().String("emit", "check", "how far to run the pipeline (tokens|ast|pretty|check|llvm|obj|exe)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output path for emit actions that produce a file")
	rootCmd.PersistentFlags().IntP("opt", "O", 0, "optimization level passed to the codegen backend")
	rootCmd.PersistentFlags().StringArrayP("include", "I", nil, "additional search path for the stdlib/manifest resolver")
	rootCmd.PersistentFlags().StringArrayP("libpath", "L", nil, "additional library search path passed to the linker")
	rootCmd.PersistentFlags().StringArrayP("lib", "l", nil, "library name passed to the linker")
	rootCmd.PersistentFlags().String("stdlib", "", "override the stdlib search path (defaults to yuan.toml's)")
	rootCmd.PersistentFlags().String("error-type", "Error", "name of the builtin tagged-error type error-propagation binds to")

	rootCmd.PersistentFlags().String("trace-level", "off", "pipeline trace detail (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace event encoding (auto|text|ndjson)")
	rootCmd.PersistentFlags().String("trace-output", "", "trace output path (defaults to stderr)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("read --color: %w", err)
	}
	switch colorFlag {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return isTerminal(f), nil
	default:
		return false, fmt.Errorf("unsupported --color value %q (want auto|on|off)", colorFlag)
	}
}
