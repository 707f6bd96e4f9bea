package lexer

import (
	"yuanc/internal/diag"
	"yuanc/internal/token"
)

// opEntry pairs a byte sequence with the Kind it produces, used to drive
// maximal-munch matching in scanOperator's fixed preference order.
type opEntry struct {
	text string
	kind token.Kind
}

// operators is ordered longest-first within each starting byte so maximal
// munch falls out of a simple linear scan.
var operators = []opEntry{
	{"...", token.Ellipsis},
	{"..=", token.DotDotEq},
	{"..", token.DotDot},
	{"<<=", token.ShlEq},
	{">>=", token.ShrEq},
	{"<<", token.Shl},
	{">>", token.Shr},
	{"&&", token.AmpAmp},
	{"||", token.PipePipe},
	{"==", token.EqEq},
	{"!=", token.BangEq},
	{"<=", token.LtEq},
	{">=", token.GtEq},
	{"+=", token.PlusEq},
	{"-=", token.MinusEq},
	{"*=", token.StarEq},
	{"/=", token.SlashEq},
	{"%=", token.PercentEq},
	{"&=", token.AmpEq},
	{"|=", token.PipeEq},
	{"^=", token.CaretEq},
	{"->", token.Arrow},
	{"=>", token.FatArrow},
	{"?.", token.QuestionDot},
	{"::", token.ColonColon},
	{"+", token.Plus},
	{"-", token.Minus},
	{"*", token.Star},
	{"/", token.Slash},
	{"%", token.Percent},
	{"&", token.Amp},
	{"|", token.Pipe},
	{"^", token.Caret},
	{"~", token.Tilde},
	{"!", token.Bang},
	{"=", token.Assign},
	{"<", token.Lt},
	{">", token.Gt},
	{"?", token.Question},
	{"(", token.LParen},
	{")", token.RParen},
	{"[", token.LBracket},
	{"]", token.RBracket},
	{"{", token.LBrace},
	{"}", token.RBrace},
	{",", token.Comma},
	{":", token.Colon},
	{";", token.Semicolon},
	{".", token.Dot},
	{"@", token.At},
	{"_", token.Underscore},
}

// scanOperator performs maximal-munch matching against the fixed operator
// and punctuation table. An unrecognized byte is reported and consumed as
// a single invalid token so the lexer always makes forward progress.
func (l *Lexer) scanOperator(start uint32) token.Token {
	for _, e := range operators {
		if l.matchesAt(e.text) {
			for range e.text {
				l.cur.advanceByte()
			}
			return token.Token{Kind: e.kind, Span: l.spanFrom(start), Text: e.text}
		}
	}

	r, _ := l.cur.peekRune()
	l.errorAt1(diag.LexInvalidCharacter, l.spanOne(), string(r))
	l.cur.advanceRune()
	return token.Token{Kind: token.Invalid, Span: l.spanFrom(start), Text: string(r)}
}

// matchesAt reports whether text matches the bytes at the cursor's current
// position, without consuming anything.
func (l *Lexer) matchesAt(text string) bool {
	for i := 0; i < len(text); i++ {
		if l.cur.peekByte(i) != text[i] {
			return false
		}
	}
	return true
}
