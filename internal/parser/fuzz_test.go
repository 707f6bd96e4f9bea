package parser

import (
	"context"
	"testing"
	"time"

	"yuanc/internal/ast"
	"yuanc/internal/diag"
	"yuanc/internal/lexer"
	"yuanc/internal/source"
	"yuanc/internal/types"
)

const parseFuzzTimeout = 5 * time.Second

// FuzzParserNoHang feeds arbitrary byte input through ParseFile under a
// deadline: malformed input should always produce diagnostics and return,
// never loop forever in error recovery.
func FuzzParserNoHang(f *testing.F) {
	f.Add([]byte("func main() {\n}\n"))
	f.Add([]byte("func f(a: i32, b: i32) -> i32 { a + b }"))
	f.Add([]byte("func f() { let x = 1\nlet y = 2 }"))
	f.Add([]byte("func f() { { { { } } } }"))
	f.Add([]byte("func f() { match x { } }"))
	f.Add([]byte("struct S { x: i32, y"))
	f.Add([]byte(""))

	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > 1<<16 {
			input = input[:1<<16]
		}

		ctx, cancel := context.WithTimeout(context.Background(), parseFuzzTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)

			fs := source.NewFileSet()
			fileID := fs.Add("fuzz.yu", input, 0)
			bag := diag.NewBag(diag.Ignoring{})
			bag.SetErrorLimit(200)

			lx := lexer.New(fileID, input, bag)
			actx := ast.NewContext(types.Width64)
			_ = ParseFile(lx, actx, bag, fileID, Options{MaxErrors: 200})
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected on %d-byte input", len(input))
		}
	})
}
