package main

import (
	"testing"

	"yuanc/internal/trace"
)

func TestBuildTracerDefaultsToNop(t *testing.T) {
	tr, err := buildTracer(rootCmd)
	if err != nil {
		t.Fatalf("buildTracer: %v", err)
	}
	if tr != trace.Tracer(trace.Nop) {
		t.Fatalf("default --trace-level should build trace.Nop")
	}
}

func TestBuildTracerHonorsLevelAndMode(t *testing.T) {
	flags := rootCmd.PersistentFlags()
	if err := flags.Set("trace-level", "phase"); err != nil {
		t.Fatalf("set --trace-level: %v", err)
	}
	if err := flags.Set("trace-mode", "ring"); err != nil {
		t.Fatalf("set --trace-mode: %v", err)
	}
	defer flags.Set("trace-level", "off")
	defer flags.Set("trace-mode", "stream")

	tr, err := buildTracer(rootCmd)
	if err != nil {
		t.Fatalf("buildTracer: %v", err)
	}
	if _, ok := tr.(*trace.RingTracer); !ok {
		t.Fatalf("buildTracer with --trace-mode=ring = %T, want *trace.RingTracer", tr)
	}
}

func TestSetupTracingAttachesTracerAndLogger(t *testing.T) {
	if err := setupTracing(rootCmd); err != nil {
		t.Fatalf("setupTracing: %v", err)
	}
	if trace.LoggerFromContext(rootCmd.Context()) == nil {
		t.Fatal("expected a Logger attached to the command context")
	}
}
