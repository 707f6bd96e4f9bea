package diag

import "yuanc/internal/source"

// Bag is the diagnostic engine: it accumulates diagnostics in the order
// their primary location is first encountered, tracks error/warning
// counts, and enforces an optional error limit.
type Bag struct {
	items          []Diagnostic
	errorCount     int
	warningCount   int
	warningsAsErrors bool
	errorLimit     int // 0 means unlimited
	consumer       Consumer
}

// NewBag returns an empty diagnostic engine reporting to consumer.
// A nil consumer is equivalent to an Ignoring consumer.
func NewBag(consumer Consumer) *Bag {
	if consumer == nil {
		consumer = Ignoring{}
	}
	return &Bag{consumer: consumer}
}

// SetWarningsAsErrors promotes every subsequently reported warning to an error count.
func (b *Bag) SetWarningsAsErrors(v bool) { b.warningsAsErrors = v }

// SetErrorLimit bounds how many errors before HasReachedErrorLimit reports true.
func (b *Bag) SetErrorLimit(n int) { b.errorLimit = n }

// Report begins a new diagnostic at primary with code. Call Emit on the
// returned Builder (directly or via its chained Arg/Note/Fix calls) to
// commit it.
func (b *Bag) Report(code Code, primary source.Span) *Builder {
	return &Builder{bag: b, code: code, primary: primary}
}

// commit finalizes a diagnostic, updates counters, and forwards it to the consumer.
func (b *Bag) commit(d Diagnostic) {
	b.items = append(b.items, d)
	switch d.Severity() {
	case SevError, SevFatal:
		b.errorCount++
	case SevWarning:
		if b.warningsAsErrors {
			b.errorCount++
		} else {
			b.warningCount++
		}
	}
	b.consumer.HandleDiagnostic(d)
}

// HasErrors reports whether any Error or Fatal diagnostic (or, with
// warnings-as-errors, any Warning) was reported.
func (b *Bag) HasErrors() bool { return b.errorCount > 0 }

// ErrorCount returns the number of error-severity diagnostics reported so far.
func (b *Bag) ErrorCount() int { return b.errorCount }

// WarningCount returns the number of warning-severity diagnostics reported so far.
func (b *Bag) WarningCount() int { return b.warningCount }

// HasReachedErrorLimit reports whether ErrorCount has met a configured,
// nonzero error limit. Reporting never aborts on its own; callers check
// this to decide whether to stop producing new diagnostics.
func (b *Bag) HasReachedErrorLimit() bool {
	return b.errorLimit > 0 && b.errorCount >= b.errorLimit
}

// Items returns every diagnostic committed so far, in report order.
func (b *Bag) Items() []Diagnostic { return b.items }

// Finish notifies the consumer that no more diagnostics will be reported.
func (b *Bag) Finish() { b.consumer.Finish() }
