package lexer

import (
	"unicode/utf8"

	"fortio.org/safecast"
)

// cursor walks a file's byte content, decoding runes on demand and
// exposing the running byte offset as a uint32 to match source.Span.
type cursor struct {
	content []byte
	pos     int // byte offset, 0-based
}

func newCursor(content []byte) *cursor {
	return &cursor{content: content}
}

// offset returns the current byte offset as a source.Span-compatible uint32.
func (c *cursor) offset() uint32 {
	n, err := safecast.Conv[uint32](c.pos)
	if err != nil {
		panic(err)
	}
	return n
}

// atEnd reports whether the cursor has consumed all content.
func (c *cursor) atEnd() bool { return c.pos >= len(c.content) }

// peekByte returns the byte at pos+ahead, or 0 past the end.
func (c *cursor) peekByte(ahead int) byte {
	i := c.pos + ahead
	if i < 0 || i >= len(c.content) {
		return 0
	}
	return c.content[i]
}

// peekRune decodes the rune starting at pos without consuming it, along
// with its encoded byte width. Invalid UTF-8 decodes to utf8.RuneError
// with width 1, per spec's "advance one byte and continue" recovery rule.
func (c *cursor) peekRune() (rune, int) {
	if c.atEnd() {
		return 0, 0
	}
	r, size := utf8.DecodeRune(c.content[c.pos:])
	return r, size
}

// advanceByte consumes exactly one byte.
func (c *cursor) advanceByte() {
	if !c.atEnd() {
		c.pos++
	}
}

// advanceRune consumes the rune at the cursor (whatever width peekRune reported).
func (c *cursor) advanceRune() {
	_, size := c.peekRune()
	if size == 0 {
		size = 1
	}
	c.pos += size
}
