package diag

import "yuanc/internal/source"

// Builder accumulates a diagnostic's arguments and notes before it is
// committed to a Bag. It mirrors the "report, then stream-append, then
// emit" idiom of the reference compiler's diagnostic builder: callers get
// one back from Bag.Report and must call Emit (there is no destructor to
// do it for them).
type Builder struct {
	bag     *Bag
	code    Code
	primary source.Span
	ranges  []source.Span
	args    []string
	notes   []Note
	fixes   []Fix
}

// Arg appends the next `{n}` substitution argument.
func (b *Builder) Arg(s string) *Builder {
	b.args = append(b.args, s)
	return b
}

// Range attaches an extra highlight range alongside the primary location.
func (b *Builder) Range(span source.Span) *Builder {
	b.ranges = append(b.ranges, span)
	return b
}

// Note attaches an auxiliary note at span.
func (b *Builder) Note(span source.Span, msg string, args ...string) *Builder {
	b.notes = append(b.notes, Note{Span: span, Msg: format(msg, args)})
	return b
}

// Fix attaches a suggested repair.
func (b *Builder) Fix(title string, edits ...TextEdit) *Builder {
	b.fixes = append(b.fixes, Fix{Title: title, Edits: edits})
	return b
}

// Emit formats the accumulated message and commits the diagnostic to the bag.
func (b *Builder) Emit() {
	b.bag.commit(Diagnostic{
		Code:    b.code,
		Primary: b.primary,
		Ranges:  b.ranges,
		Message: format(b.code.Format(), b.args),
		Notes:   b.notes,
		Fixes:   b.fixes,
	})
}
