package diag

// Consumer receives diagnostics as they are committed. Implementations
// must not retain the Diagnostic's slices beyond the call if they intend
// to mutate them later, since Bag does not copy on report.
type Consumer interface {
	HandleDiagnostic(d Diagnostic)
	Finish()
}

// Ignoring discards every diagnostic. Useful for drivers that only care
// about Bag's counters (e.g. a "syntax check only, no output" mode).
type Ignoring struct{}

func (Ignoring) HandleDiagnostic(Diagnostic) {}
func (Ignoring) Finish()                     {}

// Storing retains every diagnostic for later inspection (golden-file
// comparisons, LSP-style publishDiagnostics batching by some future
// collaborator).
type Storing struct {
	Diagnostics []Diagnostic
}

func (s *Storing) HandleDiagnostic(d Diagnostic) { s.Diagnostics = append(s.Diagnostics, d) }
func (s *Storing) Finish()                       {}

// Multi fans a diagnostic out to every consumer in order.
type Multi struct {
	Consumers []Consumer
}

func (m Multi) HandleDiagnostic(d Diagnostic) {
	for _, c := range m.Consumers {
		c.HandleDiagnostic(d)
	}
}

func (m Multi) Finish() {
	for _, c := range m.Consumers {
		c.Finish()
	}
}
