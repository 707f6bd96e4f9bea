package token

import "strings"

// DocBuffer accumulates consecutive `///` doc-comment lines until they are
// attached to the next significant token. A doc comment is only ever
// attached once: Take clears the buffer.
type DocBuffer struct {
	lines []string
}

// Add appends one `///`-stripped line to the pending doc comment.
func (d *DocBuffer) Add(line string) {
	d.lines = append(d.lines, strings.TrimPrefix(line, " "))
}

// Take returns the accumulated doc text (lines joined by '\n') and clears
// the buffer. Returns "" if nothing was pending.
func (d *DocBuffer) Take() string {
	if len(d.lines) == 0 {
		return ""
	}
	text := strings.Join(d.lines, "\n")
	d.lines = nil
	return text
}
