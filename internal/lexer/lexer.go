// Package lexer turns source bytes into a token stream. It runs
// single-threaded and cooperatively: callers pull tokens one at a time via
// Next, with unbounded lookahead available through Peek.
package lexer

import (
	"yuanc/internal/diag"
	"yuanc/internal/source"
	"yuanc/internal/token"
)

// Lexer scans one file's content into tokens on demand.
type Lexer struct {
	cur  *cursor
	bag  *diag.Bag
	file source.FileID

	doc token.DocBuffer

	lookahead []token.Token // pending tokens already scanned for Peek
	pendingGT int           // re-injected '>' tokens owed after a Shr/>>-split
}

// New returns a Lexer scanning content, attributing spans to file and
// reporting lexical errors to bag.
func New(file source.FileID, content []byte, bag *diag.Bag) *Lexer {
	return &Lexer{
		cur:  newCursor(content),
		bag:  bag,
		file: file,
	}
}

// Next consumes and returns the next token, including a trailing EOF token
// once the content is exhausted. Subsequent calls after EOF keep returning EOF.
func (l *Lexer) Next() token.Token {
	if len(l.lookahead) > 0 {
		t := l.lookahead[0]
		l.lookahead = l.lookahead[1:]
		return t
	}
	return l.scanToken()
}

// Peek returns the token n positions ahead without consuming it; Peek(0) is
// equivalent to what the next Next() call would return.
func (l *Lexer) Peek(n int) token.Token {
	for len(l.lookahead) <= n {
		l.lookahead = append(l.lookahead, l.scanToken())
	}
	return l.lookahead[n]
}

// SplitShr re-injects a closing '>' after a '>>' token was consumed as a
// single Shr but the parser determined, from nested generic-argument depth,
// that it should have been two separate '>' tokens. It must be called
// immediately after Next() returned the Shr token being split, before any
// further lookahead has been requested.
func (l *Lexer) SplitShr(shr token.Token) token.Token {
	second := token.Token{
		Kind: token.Gt,
		Span: source.Span{File: shr.Span.File, Start: shr.Span.Start + 1, End: shr.Span.End},
		Text: ">",
	}
	l.lookahead = append([]token.Token{second}, l.lookahead...)
	return token.Token{
		Kind: token.Gt,
		Span: source.Span{File: shr.Span.File, Start: shr.Span.Start, End: shr.Span.Start + 1},
		Text: ">",
	}
}

// scanToken skips trivia, attaches any accumulated doc comment, and
// dispatches to the appropriate scan* routine for the next significant byte.
func (l *Lexer) scanToken() token.Token {
	l.skipTrivia()

	start := l.cur.offset()
	if l.cur.atEnd() {
		return token.Token{Kind: token.EOF, Span: source.Span{File: l.file, Start: start, End: start}}
	}

	b := l.cur.peekByte(0)

	switch {
	case isASCIIDigit(b):
		t := l.scanNumber()
		return l.withDoc(t)
	case b == '"':
		if l.cur.peekByte(1) == '"' && l.cur.peekByte(2) == '"' {
			l.cur.advanceByte()
			l.cur.advanceByte()
			l.cur.advanceByte()
			return l.withDoc(l.scanMultilineString(start))
		}
		l.cur.advanceByte()
		return l.withDoc(l.scanString(start))
	case b == '\'':
		l.cur.advanceByte()
		return l.withDoc(l.scanChar(start))
	case b == 'r' && (l.cur.peekByte(1) == '"' || (l.cur.peekByte(1) == '#' && isRawStringLead(l.cur))):
		return l.withDoc(l.scanRawStringLiteral(start))
	case b == '@' && l.cur.peekByte(1) < 0x80 && IsIdentStart(rune(l.cur.peekByte(1))):
		return l.withDoc(l.scanIdent(start))
	case IsIdentStart(runeAt(l.cur)):
		return l.withDoc(l.scanIdent(start))
	default:
		return l.withDoc(l.scanOperator(start))
	}
}

// withDoc attaches (and clears) any pending doc-comment text to t, unless t
// is itself insignificant trivia (never reached here, since skipTrivia has
// already consumed all trivia before this call).
func (l *Lexer) withDoc(t token.Token) token.Token {
	if d := l.doc.Take(); d != "" {
		t.Doc = d
	}
	return t
}

// isRawStringLead reports whether the bytes at the cursor look like
// `r#"` or `r##"` etc — a run of one or more '#' followed by '"'.
func isRawStringLead(c *cursor) bool {
	i := 1
	for c.peekByte(i) == '#' {
		i++
	}
	return c.peekByte(i) == '"'
}

// scanRawStringLiteral consumes the leading 'r' and hash run, then delegates
// to scanRawString for the quoted body.
func (l *Lexer) scanRawStringLiteral(start uint32) token.Token {
	l.cur.advanceByte() // 'r'
	hashCount := 0
	for l.cur.peekByte(0) == '#' {
		hashCount++
		l.cur.advanceByte()
	}
	l.cur.advanceByte() // opening '"'
	return l.scanRawString(start, hashCount)
}

// scanIdent consumes a maximal identifier run and classifies it as a
// keyword or plain identifier. A leading '@' marks a builtin identifier,
// escaping keyword classification entirely (e.g. `@type`).
func (l *Lexer) scanIdent(start uint32) token.Token {
	builtin := false
	if l.cur.peekByte(0) == '@' {
		builtin = true
		l.cur.advanceByte()
	}
	for IsIdentContinue(runeAt(l.cur)) {
		l.cur.advanceRune()
	}
	span := l.spanFrom(start)
	raw := l.textFrom(start)
	if builtin {
		return token.Token{Kind: token.BuiltinIdent, Span: span, Text: raw}
	}
	word := raw
	if kind, ok := token.LookupKeyword(word); ok {
		return token.Token{Kind: kind, Span: span, Text: word}
	}
	return token.Token{Kind: token.Ident, Span: span, Text: word}
}

// skipTrivia consumes whitespace and comments, accumulating consecutive
// `///` lines into the pending doc buffer. Plain `//` and block comments
// leave the doc buffer untouched, so pending doc text attaches to the next
// significant token whatever comments lie in between.
func (l *Lexer) skipTrivia() {
	for {
		if l.cur.atEnd() {
			return
		}
		b := l.cur.peekByte(0)
		switch {
		case b == ' ' || b == '\t' || b == '\r':
			l.cur.advanceByte()
		case b == '\n':
			l.cur.advanceByte()
		case b == '/' && l.cur.peekByte(1) == '/':
			l.skipLineComment()
		case b == '/' && l.cur.peekByte(1) == '*':
			l.skipBlockComment()
		default:
			return
		}
	}
}

// skipLineComment consumes a `//...` run through (not including) the
// newline. A `///` run (but not `////`) is accumulated as a doc comment line.
func (l *Lexer) skipLineComment() {
	isDoc := l.cur.peekByte(2) == '/' && l.cur.peekByte(3) != '/'
	l.cur.advanceByte()
	l.cur.advanceByte()
	start := l.cur.pos
	for !l.cur.atEnd() && l.cur.peekByte(0) != '\n' {
		l.cur.advanceByte()
	}
	if isDoc {
		line := string(l.cur.content[start+1 : l.cur.pos]) // skip the third '/'
		l.doc.Add(line)
	}
}

// skipBlockComment consumes a `/* ... */` run, supporting nesting. An
// unterminated comment is reported once at its opening position.
func (l *Lexer) skipBlockComment() {
	start := l.cur.offset()
	l.cur.advanceByte()
	l.cur.advanceByte()
	depth := 1
	for depth > 0 {
		if l.cur.atEnd() {
			l.errorAt(diag.LexUnterminatedBlockComment, source.Span{File: l.file, Start: start, End: start + 2})
			return
		}
		if l.cur.peekByte(0) == '/' && l.cur.peekByte(1) == '*' {
			depth++
			l.cur.advanceByte()
			l.cur.advanceByte()
			continue
		}
		if l.cur.peekByte(0) == '*' && l.cur.peekByte(1) == '/' {
			depth--
			l.cur.advanceByte()
			l.cur.advanceByte()
			continue
		}
		l.cur.advanceByte()
	}
}

// spanFrom builds a span from start through the cursor's current offset.
func (l *Lexer) spanFrom(start uint32) source.Span {
	return source.Span{File: l.file, Start: start, End: l.cur.offset()}
}

// textFrom returns the verbatim source text from start through the
// cursor's current position.
func (l *Lexer) textFrom(start uint32) string {
	return string(l.cur.content[start:l.cur.pos])
}

// errorAt reports a zero-argument diagnostic at span and emits it immediately.
func (l *Lexer) errorAt(code diag.Code, span source.Span) {
	l.bag.Report(code, span).Emit()
}

// errorAt1 reports a one-argument diagnostic at span and emits it immediately.
func (l *Lexer) errorAt1(code diag.Code, span source.Span, a string) {
	l.bag.Report(code, span).Arg(a).Emit()
}

// errorAt2 reports a two-argument diagnostic at span and emits it immediately.
func (l *Lexer) errorAt2(code diag.Code, span source.Span, a, b string) {
	l.bag.Report(code, span).Arg(a).Arg(b).Emit()
}

// runeAt decodes (without consuming) the rune at the cursor's position.
func runeAt(c *cursor) rune {
	r, _ := c.peekRune()
	return r
}
