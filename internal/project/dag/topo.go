package dag

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"yuanc/internal/project"
)

// Topo is a Kahn's-algorithm topological ordering of a Graph's present
// modules, batched into independent waves (every module in Batches[i] can
// be processed concurrently once Batches[0..i-1] are done).
type Topo struct {
	Order   []ModuleID
	Batches [][]ModuleID
	Cyclic  bool
	Cycles  []ModuleID // present modules that never reached zero in-degree
}

// ToposortKahn computes a dependency-respecting order over g's present
// modules. A cycle leaves the cyclic members out of Order/Batches and
// recorded in Cycles instead of silently dropping or misordering them.
func ToposortKahn(g Graph) *Topo {
	nodeCount := len(g.Edges)
	indeg := make([]int, len(g.Indeg))
	copy(indeg, g.Indeg)

	topo := &Topo{
		Order:   make([]ModuleID, 0, nodeCount),
		Batches: make([][]ModuleID, 0),
	}

	active := 0
	for i := range nodeCount {
		if g.Present[i] {
			active++
		}
	}

	current := make([]ModuleID, 0, nodeCount)
	for i := range nodeCount {
		if g.Present[i] && indeg[i] == 0 {
			id, err := safecast.Conv[ModuleID](i)
			if err != nil {
				panic(fmt.Errorf("project/dag: module id overflow: %w", err))
			}
			current = append(current, id)
		}
	}
	slices.Sort(current)

	visited := 0
	for len(current) > 0 {
		batch := make([]ModuleID, len(current))
		copy(batch, current)
		topo.Batches = append(topo.Batches, batch)

		next := make([]ModuleID, 0)
		for _, id := range batch {
			topo.Order = append(topo.Order, id)
			visited++
			for _, to := range g.Edges[int(id)] {
				if !g.Present[int(to)] {
					continue
				}
				indeg[int(to)]--
				if indeg[int(to)] == 0 {
					next = append(next, to)
				}
			}
		}
		slices.Sort(next)
		current = next
	}

	if visited != active {
		topo.Cyclic = true
		for i := range nodeCount {
			if g.Present[i] && indeg[i] > 0 {
				id, err := safecast.Conv[ModuleID](i)
				if err != nil {
					panic(fmt.Errorf("project/dag: module id overflow: %w", err))
				}
				topo.Cycles = append(topo.Cycles, id)
			}
		}
		slices.Sort(topo.Cycles)
	}

	return topo
}

// ComputeModuleHashes fills in ModuleHash for every present node:
// H(content || dep1 || dep2 ...), where dep* are the already-computed
// hashes of that module's dependencies. Requires an acyclic topo — a
// cyclic graph leaves every hash in the cycle zero.
func ComputeModuleHashes(g Graph, slots []Slot, topo *Topo) {
	if topo == nil || topo.Cyclic {
		return
	}
	// Edges[from] lists from's dependencies, so walking topo.Order in
	// reverse guarantees every dependency's hash is already computed by
	// the time its dependent is processed.
	for i := len(topo.Order) - 1; i >= 0; i-- {
		id := topo.Order[i]
		slot := &slots[int(id)]
		if !slot.Present {
			continue
		}
		deps := make([]project.Digest, 0, len(g.Edges[int(id)]))
		for _, to := range g.Edges[int(id)] {
			if g.Present[int(to)] {
				deps = append(deps, slots[int(to)].Meta.ModuleHash)
			}
		}
		slot.Meta.ModuleHash = project.Combine(slot.Meta.ContentHash, deps...)
	}
}
