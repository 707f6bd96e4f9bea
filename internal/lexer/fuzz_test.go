package lexer

import (
	"testing"

	"yuanc/internal/diag"
	"yuanc/internal/source"
	"yuanc/internal/token"
)

const maxFuzzInput = 1 << 16

// FuzzLexerNeverPanics feeds arbitrary byte input to the lexer and checks
// only that it always terminates with an EOF token rather than panicking
// or looping; it asserts nothing about the resulting token kinds, since
// most fuzz-generated input is not valid Yuan source.
func FuzzLexerNeverPanics(f *testing.F) {
	f.Add([]byte("func main() {\n}\n"))
	f.Add([]byte("let x: i32 = 1 + 2 * (3 - 4);"))
	f.Add([]byte("\"unterminated string"))
	f.Add([]byte("/* unterminated block comment"))
	f.Add([]byte("0x 0b 1_000_000u64 1.5e10f32"))
	f.Add([]byte("'\\u{1F600}'"))
	f.Add([]byte(""))

	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = input[:maxFuzzInput]
		}

		fs := source.NewFileSet()
		fileID := fs.Add("fuzz.yu", input, 0)
		bag := diag.NewBag(diag.Ignoring{})

		lx := New(fileID, input, bag)
		seen := 0
		for {
			tok := lx.Next()
			seen++
			if tok.Kind == token.EOF {
				break
			}
			if seen > len(input)+maxFuzzInput {
				t.Fatalf("lexer did not reach EOF after %d tokens on %d-byte input", seen, len(input))
			}
		}
	})
}
