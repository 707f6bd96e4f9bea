package lexer

import (
	"strings"

	"yuanc/internal/diag"
	"yuanc/internal/source"
	"yuanc/internal/token"
)

// scanNumber consumes an integer or float literal starting at the current
// position (the caller has already verified the byte at pos is a digit).
func (l *Lexer) scanNumber() token.Token {
	start := l.cur.offset()
	isFloat := false

	base := 10
	digits := "0123456789"
	if l.cur.peekByte(0) == '0' {
		switch l.cur.peekByte(1) {
		case 'x', 'X':
			base, digits = 16, "0123456789abcdefABCDEF"
			l.cur.advanceByte()
			l.cur.advanceByte()
		case 'o', 'O':
			base, digits = 8, "01234567"
			l.cur.advanceByte()
			l.cur.advanceByte()
		case 'b', 'B':
			base, digits = 2, "01"
			l.cur.advanceByte()
			l.cur.advanceByte()
		}
	}

	l.scanDigitRun(digits, base)

	// Fractional part: only in decimal literals, and only when a digit follows the dot.
	if base == 10 && l.cur.peekByte(0) == '.' && isASCIIDigit(l.cur.peekByte(1)) {
		isFloat = true
		l.cur.advanceByte() // '.'
		l.scanDigitRun(digits, base)
		if l.cur.peekByte(0) == '.' {
			l.errorAt(diag.LexInvalidNumberLiteral, l.spanFrom(start))
		}
	}

	// Exponent: decimal only.
	if base == 10 && (l.cur.peekByte(0) == 'e' || l.cur.peekByte(0) == 'E') {
		isFloat = true
		l.cur.advanceByte()
		if l.cur.peekByte(0) == '+' || l.cur.peekByte(0) == '-' {
			l.cur.advanceByte()
		}
		l.scanDigitRun(digits, base)
	}

	// Type suffix.
	suffixStart := l.cur.pos
	for IsIdentContinue(runeAt(l.cur)) {
		l.cur.advanceRune()
	}
	suffix := string(l.cur.content[suffixStart:l.cur.pos])

	span := l.spanFrom(start)
	text := string(l.cur.content[start:l.cur.pos])

	kind := token.IntLit
	if suffix != "" {
		if _, ok := token.FloatSuffixes[suffix]; ok {
			kind = token.FloatLit
		} else if _, ok := token.IntSuffixes[suffix]; ok {
			if isFloat {
				l.bag.Report(diag.LexInvalidNumberSuffix, span).Arg(suffix).Emit()
			}
			kind = token.IntLit
		} else {
			l.bag.Report(diag.LexInvalidNumberSuffix, span).Arg(suffix).Emit()
		}
	} else if isFloat {
		kind = token.FloatLit
	}

	return token.Token{Kind: kind, Span: span, Text: text}
}

// scanDigitRun consumes a run of digits valid for base, allowing '_' as a
// separator. Leading, trailing, or doubled '_' is reported but recovered
// from by simply continuing to scan.
func (l *Lexer) scanDigitRun(digits string, base int) {
	sawDigit := false
	lastWasSep := false
	first := true
	for {
		b := l.cur.peekByte(0)
		if b == '_' {
			if first || lastWasSep {
				l.errorAt(diag.LexInvalidNumberLiteral, l.spanOne())
			}
			lastWasSep = true
			first = false
			l.cur.advanceByte()
			continue
		}
		if strings.IndexByte(digits, b) < 0 {
			if isASCIIDigit(b) {
				l.errorAt2(diag.LexInvalidDigitForBase, l.spanOne(), string(b), itoaBase(base))
				l.cur.advanceByte()
				sawDigit = true
				continue
			}
			break
		}
		sawDigit = true
		lastWasSep = false
		first = false
		l.cur.advanceByte()
	}
	if lastWasSep {
		l.errorAt(diag.LexInvalidNumberLiteral, l.spanOne())
	}
	_ = sawDigit
}

func isASCIIDigit(b byte) bool { return b >= '0' && b <= '9' }
func isASCIIAlnum(b byte) bool {
	return isASCIIDigit(b) || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
func lowerASCII(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

func itoaBase(base int) string {
	switch base {
	case 2:
		return "2"
	case 8:
		return "8"
	case 16:
		return "16"
	default:
		return "10"
	}
}

func (l *Lexer) spanOne() source.Span {
	off := l.cur.offset()
	return source.Span{File: l.file, Start: off, End: off + 1}
}
