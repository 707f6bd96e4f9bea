package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"yuanc/internal/driver"
)

func TestFlagActionDefaultsToCheck(t *testing.T) {
	action, err := flagAction(rootCmd)
	if err != nil {
		t.Fatalf("flagAction: %v", err)
	}
	if action != driver.ActionCheck {
		t.Fatalf("default action = %v, want ActionCheck", action)
	}
}

func TestPointerWidthFromBits(t *testing.T) {
	cases := map[int]bool{32: true, 64: true, 0: false, 16: false}
	for bits, nonZero := range cases {
		w := pointerWidthFromBits(bits)
		if (w != 0) != nonZero {
			t.Fatalf("pointerWidthFromBits(%d) = %v, want nonzero=%v", bits, w, nonZero)
		}
	}
}

func TestRunCompileTokensAction(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.yu")
	if err := os.WriteFile(path, []byte("func main() {\n}\n"), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}

	if err := rootCmd.PersistentFlags().Set("emit", "tokens"); err != nil {
		t.Fatalf("set --emit: %v", err)
	}
	defer rootCmd.PersistentFlags().Set("emit", "check")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	defer rootCmd.SetOut(nil)

	if err := runCompile(rootCmd, []string{path}); err != nil {
		t.Fatalf("runCompile: %v", err)
	}
	if out.Len() == 0 {
		t.Fatalf("expected token dump output")
	}
}

func TestStatusRankOrdering(t *testing.T) {
	prev := -1
	for _, s := range []driver.Status{
		driver.Success, driver.LexerError, driver.ParserError, driver.SemanticError,
		driver.CodeGenError, driver.LinkError, driver.IOError, driver.InternalError,
	} {
		rank := statusRank(s)
		if rank <= prev {
			t.Fatalf("statusRank(%v) = %d, want > %d", s, rank, prev)
		}
		prev = rank
	}
}
