package token

import "yuanc/internal/source"

// Token is one lexed unit: a kind, the span of its first byte through its
// last, the verbatim source text, and an optional doc comment the lexer
// attached from a preceding `///` run.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	Doc  string
}

// String renders a token for debugging/diagnostics, e.g. `Ident(foo)`.
func (t Token) String() string {
	if t.Text == "" {
		return t.Kind.String()
	}
	return t.Kind.String() + "(" + t.Text + ")"
}
