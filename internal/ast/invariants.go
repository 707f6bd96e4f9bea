package ast

import (
	"fmt"

	"fortio.org/safecast"

	"yuanc/internal/source"
)

// CheckSpanInvariants validates the span bookkeeping of a parsed file
// against its backing source.File: every top-level decl's span must be
// non-empty, belong to sf, and fall within sf's content bounds, and
// consecutive decls must not overlap. It exists for test and tooling use
// (sema and the driver do not call it on the hot path).
func (c *Context) CheckSpanInvariants(f *File, sf *source.File) error {
	if f == nil || sf == nil {
		return fmt.Errorf("nil file or source file")
	}
	contentLen, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("content length overflow: %w", err)
	}

	var prevEnd uint32
	for i, id := range f.Decls {
		d := c.Decls.Get(id)
		if d == nil {
			return fmt.Errorf("decl[%d]: nil node for id=%d", i, id)
		}
		sp := d.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("decl[%d]: empty span %v", i, sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("decl[%d]: span file mismatch: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.End > contentLen {
			return fmt.Errorf("decl[%d]: span end %d beyond content length %d", i, sp.End, contentLen)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("decl[%d]: span %v overlaps previous decl ending at %d", i, sp, prevEnd)
		}
		prevEnd = sp.End
	}
	return nil
}
