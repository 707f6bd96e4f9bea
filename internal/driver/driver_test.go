package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"yuanc/internal/token"
)

const sampleSource = "func main() {\n}\n"

func TestCompileTokensOnly(t *testing.T) {
	res, err := Compile("sample.yu", []byte(sampleSource), Options{Action: ActionTokens})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if res.Status != Success {
		t.Fatalf("status = %v, want Success", res.Status)
	}
	if len(res.Tokens) == 0 || res.Tokens[len(res.Tokens)-1].Kind != token.EOF {
		t.Fatalf("expected a token stream ending in EOF, got %v", res.Tokens)
	}
	if res.Ctx != nil {
		t.Fatalf("ActionTokens should not build an AST context")
	}
}

func TestCompileAST(t *testing.T) {
	res, err := Compile("sample.yu", []byte(sampleSource), Options{Action: ActionAST})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", res.Bag.Items())
	}
	if res.File == nil || len(res.File.Decls) != 1 {
		t.Fatalf("expected exactly one top-level decl, got %#v", res.File)
	}
}

func TestCompileCheck(t *testing.T) {
	res, err := Compile("sample.yu", []byte(sampleSource), Options{Action: ActionCheck})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if res.Status != Success {
		t.Fatalf("status = %v, want Success; diagnostics: %v", res.Status, res.Bag.Items())
	}
}

func TestCompileEmitWithoutBackendReportsCodeGenError(t *testing.T) {
	res, err := Compile("sample.yu", []byte(sampleSource), Options{Action: ActionEmitLLVM})
	if err == nil {
		t.Fatalf("expected an error from the missing backend")
	}
	if res.Status != CodeGenError {
		t.Fatalf("status = %v, want CodeGenError", res.Status)
	}
}

func TestActionStringRoundTrip(t *testing.T) {
	actions := []Action{ActionTokens, ActionAST, ActionPretty, ActionCheck, ActionEmitLLVM, ActionEmitObject, ActionEmitExecutable}
	for _, a := range actions {
		got, err := ParseAction(a.String())
		if err != nil {
			t.Fatalf("ParseAction(%q): %v", a.String(), err)
		}
		if got != a {
			t.Fatalf("ParseAction(%q) = %v, want %v", a.String(), got, a)
		}
	}
	if _, err := ParseAction("bogus"); err == nil {
		t.Fatalf("expected an error for an unknown action")
	}
}

func TestStatusExitCode(t *testing.T) {
	if Success.ExitCode() != 0 {
		t.Fatalf("Success.ExitCode() = %d, want 0", Success.ExitCode())
	}
	seen := map[int]bool{0: true}
	for _, s := range []Status{LexerError, ParserError, SemanticError, CodeGenError, LinkError, IOError, InternalError} {
		code := s.ExitCode()
		if code == 0 {
			t.Fatalf("%v.ExitCode() = 0, want nonzero", s)
		}
		if seen[code] {
			t.Fatalf("%v.ExitCode() = %d, collides with an earlier status", s, code)
		}
		seen[code] = true
	}
}

func TestTokenCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cache, err := OpenTokenCache(dir)
	if err != nil {
		t.Fatalf("OpenTokenCache: %v", err)
	}

	content := []byte(sampleSource)
	if _, ok := cache.Get(content); ok {
		t.Fatalf("expected a cache miss before any Put")
	}

	res, err := Compile("sample.yu", content, Options{Action: ActionTokens, Cache: cache})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	toks, ok := cache.Get(content)
	if !ok {
		t.Fatalf("expected a cache hit after Compile populated the cache")
	}
	if len(toks) != len(res.Tokens) {
		t.Fatalf("cached token count = %d, want %d", len(toks), len(res.Tokens))
	}
	for i := range toks {
		if toks[i].Kind != res.Tokens[i].Kind || toks[i].Text != res.Tokens[i].Text {
			t.Fatalf("token %d = %+v, want %+v", i, toks[i], res.Tokens[i])
		}
	}
}

func TestWriteTokensAndPretty(t *testing.T) {
	res, err := Compile("sample.yu", []byte(sampleSource), Options{Action: ActionPretty})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteTokens(&buf, res.Tokens); err != nil {
		t.Fatalf("WriteTokens: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected non-empty token dump")
	}

	sf := res.FileSet.Get(res.FileID)
	buf.Reset()
	if err := WritePretty(&buf, res.Ctx, res.File, sf); err != nil {
		t.Fatalf("WritePretty: %v", err)
	}
	if buf.String() != sampleSource {
		t.Fatalf("pretty output = %q, want %q", buf.String(), sampleSource)
	}
}

func TestCompileProjectIndependentUnits(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.yu")
	pathB := filepath.Join(dir, "b.yu")
	if err := os.WriteFile(pathA, []byte(sampleSource), 0o644); err != nil {
		t.Fatalf("write a.yu: %v", err)
	}
	if err := os.WriteFile(pathB, []byte(sampleSource), 0o644); err != nil {
		t.Fatalf("write b.yu: %v", err)
	}

	results, status := CompileProject(context.Background(), []string{pathA, pathB}, ProjectOptions{
		Options: Options{Action: ActionCheck},
	})
	if status != Success {
		t.Fatalf("overall status = %v, want Success", status)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("%s: unexpected error: %v", r.Path, r.Err)
		}
		if r.Result.Status != Success {
			t.Fatalf("%s: status = %v, want Success", r.Path, r.Result.Status)
		}
	}
}
