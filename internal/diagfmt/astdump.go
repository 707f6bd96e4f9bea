package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DumpNode is the minimal shape the AST-dump renderer needs from an
// ast.Node: a kind name, an attribute string, and edge-labeled children.
// internal/ast builds this tree from the real node graph; diagfmt only
// knows how to lay it out.
type DumpNode struct {
	Kind     string
	Attrs    string
	Children []DumpEdge
}

// DumpEdge labels a child with the edge name shown in the dump
// (e.g. "left", "rhs", "arm[0]", "decl[2]").
type DumpEdge struct {
	Label string
	Node  *DumpNode
}

var (
	guideStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	kindStyle  = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Italic(true)
	attrStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// DumpOpts configures the AST dump renderer.
type DumpOpts struct {
	Color bool
}

// Dump writes n as a stable, indented tree suitable for golden-file
// comparison: `Kind(attrs)` followed by edge-labeled children, one per
// line, each indented under a `├─`/`└─` tree guide.
func Dump(w io.Writer, n *DumpNode, opts DumpOpts) {
	dumpNode(w, n, "", true, "", opts)
}

func dumpNode(w io.Writer, n *DumpNode, prefix string, last bool, edge string, opts DumpOpts) {
	if n == nil {
		fmt.Fprintf(w, "%s%s<nil>\n", prefix, connector(last, opts))
		return
	}
	line := renderHeader(n, edge, opts)
	fmt.Fprintf(w, "%s%s%s\n", prefix, connector(last, opts), line)

	childPrefix := prefix + continuation(last, opts)
	for i, child := range n.Children {
		dumpNode(w, child.Node, childPrefix, i == len(n.Children)-1, child.Label, opts)
	}
}

func renderHeader(n *DumpNode, edge string, opts DumpOpts) string {
	var b strings.Builder
	if edge != "" {
		if opts.Color {
			b.WriteString(labelStyle.Render(edge))
		} else {
			b.WriteString(edge)
		}
		b.WriteString(": ")
	}
	if opts.Color {
		b.WriteString(kindStyle.Render(n.Kind))
	} else {
		b.WriteString(n.Kind)
	}
	if n.Attrs != "" {
		b.WriteString("(")
		if opts.Color {
			b.WriteString(attrStyle.Render(n.Attrs))
		} else {
			b.WriteString(n.Attrs)
		}
		b.WriteString(")")
	}
	return b.String()
}

func connector(last bool, opts DumpOpts) string {
	glyph := "├─ "
	if last {
		glyph = "└─ "
	}
	if opts.Color {
		return guideStyle.Render(glyph)
	}
	return glyph
}

func continuation(last bool, opts DumpOpts) string {
	glyph := "│  "
	if last {
		glyph = "   "
	}
	if opts.Color {
		return guideStyle.Render(glyph)
	}
	return glyph
}
