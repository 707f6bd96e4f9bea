package dag

import (
	"slices"

	"yuanc/internal/diag"
	"yuanc/internal/project"
)

// Graph is a module dependency graph over an Index's dense IDs.
type Graph struct {
	Edges   [][]ModuleID // Edges[from] = its import targets, sorted
	Indeg   []int        // in-degree, counting only edges into Present modules
	Present []bool       // true once a module with this ID was actually declared
}

// Node pairs one module's metadata with the bag any diagnostics about it
// should land in (the bag belonging to the file the module was parsed from).
type Node struct {
	Meta project.ModuleMeta
	Bag  *diag.Bag
}

// Slot is one module's resolved graph membership: its metadata, whether it
// was actually declared (Present) as opposed to only referenced by an
// import, and whether it failed to load at all (Broken).
type Slot struct {
	Meta    project.ModuleMeta
	Bag     *diag.Bag
	Present bool
	Broken  bool
}

// BuildGraph assigns every node to its slot (reporting a duplicate-module
// diagnostic if two nodes claim the same path) and resolves import edges
// between present modules (reporting a missing-module diagnostic for an
// import with no matching declaration, and rejecting a module importing
// itself).
func BuildGraph(idx Index, nodes []Node) (Graph, []Slot) {
	nodeCount := len(idx.IDToName)
	g := Graph{
		Edges:   make([][]ModuleID, nodeCount),
		Indeg:   make([]int, nodeCount),
		Present: make([]bool, nodeCount),
	}
	slots := make([]Slot, nodeCount)
	for i, name := range idx.IDToName {
		slots[i].Meta.Path = name
	}

	for _, node := range nodes {
		meta := node.Meta
		if meta.Path == "" {
			continue
		}
		id, ok := idx.NameToID[meta.Path]
		if !ok {
			continue // BuildIndex is built from the same metas; should not happen
		}
		slot := &slots[int(id)]
		if slot.Present {
			if node.Bag != nil {
				b := node.Bag.Report(diag.SemaRedefinition, meta.Span).Arg(meta.Path)
				if slot.Meta.Span.Valid() {
					b.Note(slot.Meta.Span, "previous declaration of '{0}'", slot.Meta.Path)
				}
				b.Emit()
			}
			continue
		}
		slot.Meta = meta
		slot.Bag = node.Bag
		slot.Present = true
		g.Present[int(id)] = true
	}

	for from := range slots {
		slot := &slots[from]
		if !slot.Present || len(slot.Meta.Imports) == 0 {
			continue
		}
		seen := make(map[ModuleID]struct{}, len(slot.Meta.Imports))
		for _, dep := range slot.Meta.Imports {
			if dep.Path == "" {
				continue
			}
			toID, ok := idx.NameToID[dep.Path]
			if !ok {
				if slot.Bag != nil {
					slot.Bag.Report(diag.SemaModuleNotFound, dep.Span).Arg(dep.Path).Emit()
				}
				continue
			}
			if ModuleID(from) == toID {
				if slot.Bag != nil {
					slot.Bag.Report(diag.SemaCircularImport, dep.Span).Arg(slot.Meta.Path).Emit()
				}
				continue
			}
			if _, dup := seen[toID]; dup {
				continue
			}
			seen[toID] = struct{}{}

			g.Edges[from] = append(g.Edges[from], toID)
			if g.Present[int(toID)] {
				g.Indeg[int(toID)]++
			} else if slot.Bag != nil {
				slot.Bag.Report(diag.SemaModuleNotFound, dep.Span).Arg(idx.IDToName[int(toID)]).Emit()
			}
		}
		if len(g.Edges[from]) > 1 {
			slices.Sort(g.Edges[from])
		}
	}

	return g, slots
}

// ReportCycles emits a circular-import diagnostic against every module
// topo found still stuck in a cycle, naming the whole cycle in the message.
func ReportCycles(idx Index, slots []Slot, topo *Topo) {
	if !topo.Cyclic || len(topo.Cycles) == 0 {
		return
	}
	names := make([]string, 0, len(topo.Cycles))
	for _, id := range topo.Cycles {
		names = append(names, idx.IDToName[int(id)])
	}
	summary := joinArrow(names)

	for _, id := range topo.Cycles {
		slot := slots[int(id)]
		if !slot.Present || slot.Bag == nil {
			continue
		}
		slot.Bag.Report(diag.SemaCircularImport, slot.Meta.Span).Arg(summary).Emit()
	}
}

// SkipBroken returns the set of present modules that failed to load or
// transitively depend on one that did, so the driver can skip running
// Sema on them. It emits no diagnostic: a dependency's own errors already
// surfaced where they belong.
func SkipBroken(g Graph, slots []Slot) map[ModuleID]bool {
	skip := make(map[ModuleID]bool)
	for i := range slots {
		if slots[i].Present && slots[i].Broken {
			skip[ModuleID(i)] = true
		}
	}
	changed := true
	for changed {
		changed = false
		for from := range g.Edges {
			if skip[ModuleID(from)] {
				continue
			}
			for _, to := range g.Edges[from] {
				if skip[to] {
					skip[ModuleID(from)] = true
					changed = true
					break
				}
			}
		}
	}
	return skip
}

func joinArrow(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += " -> "
		}
		out += n
	}
	return out
}
