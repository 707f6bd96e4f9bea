package lexer

import (
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// identStartTables lists the Unicode scripts spec §4.3 requires an
// identifier to be able to start with, beyond plain ASCII letters and '_'.
var identStartTables = rangetable.Merge(
	unicode.Latin,
	unicode.Cyrillic,
	unicode.Greek,
	unicode.Hebrew,
	unicode.Arabic,
	unicode.Han, // covers CJK unified ideographs including extension A/B
	unicode.Hiragana,
	unicode.Katakana,
	unicode.Hangul,
)

// identContinueExtra lists codepoint classes allowed to continue (but not
// start) an identifier: full-width and Arabic-Indic digits, plus combining marks.
var identContinueExtra = rangetable.Merge(
	unicode.Nd, // decimal digit number, covers full-width/Arabic-Indic digits
	unicode.Mn, // combining marks, nonspacing
	unicode.Mc, // combining marks, spacing
)

// IsIdentStart reports whether r may begin an identifier.
func IsIdentStart(r rune) bool {
	if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
		return true
	}
	return r >= 0x80 && unicode.Is(identStartTables, r)
}

// IsIdentContinue reports whether r may continue an identifier already begun.
func IsIdentContinue(r rune) bool {
	if IsIdentStart(r) || (r >= '0' && r <= '9') {
		return true
	}
	return r >= 0x80 && unicode.Is(identContinueExtra, r)
}
