package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"yuanc/internal/driver"
	"yuanc/internal/project"
	"yuanc/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file.yu>...",
	Short: "Recompile on change, showing live per-file progress",
	Long:  "watch recompiles the given files to --emit's depth every time one of them changes, rendering a spinner and per-file status list.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWatch,
}

// runWatch polls args' mtimes (no filesystem-event library is part of
// this codebase's dependency stack) and recompiles whenever one changes,
// driving a bubbletea progress view off the same driver.CompileProject
// path the non-interactive command uses underneath.
func runWatch(cmd *cobra.Command, args []string) error {
	if err := setupTracing(cmd); err != nil {
		return err
	}

	opts, err := buildOptions(cmd)
	if err != nil {
		return err
	}

	manifest, _, _ := project.LoadProjectManifest(".")

	mtimes := make(map[string]time.Time, len(args))
	for _, p := range args {
		mtimes[p] = statMTime(p)
	}

	if err := runWatchPass(cmd, args, opts, manifest); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
	}

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	for range ticker.C {
		changed := false
		for _, p := range args {
			if m := statMTime(p); m.After(mtimes[p]) {
				mtimes[p] = m
				changed = true
			}
		}
		if !changed {
			continue
		}
		if err := runWatchPass(cmd, args, opts, manifest); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
		}
	}
	return nil
}

func runWatchPass(cmd *cobra.Command, paths []string, opts driver.Options, manifest *project.Manifest) error {
	events := make(chan driver.Event, 256)
	type outcome struct {
		results []driver.ProjectResult
		status  driver.Status
	}
	done := make(chan outcome, 1)

	go func() {
		projOpts := driver.ProjectOptions{Options: opts, Manifest: manifest}
		projOpts.Progress = driver.ChannelSink{Ch: events}
		results, status := driver.CompileProject(cmd.Context(), paths, projOpts)
		done <- outcome{results: results, status: status}
		close(events)
	}()

	model := ui.NewProgressModel("yuanc watch", paths, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	out := <-done
	if uiErr != nil {
		return uiErr
	}

	for _, r := range out.results {
		if r.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Path, r.Err)
			continue
		}
		if err := writeResult(cmd, r.Result, opts.Action); err != nil {
			return err
		}
	}
	if out.status != driver.Success {
		return fmt.Errorf("watch: last pass failed: %s", out.status)
	}
	return nil
}

func statMTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
