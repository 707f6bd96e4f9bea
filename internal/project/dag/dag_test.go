package dag

import (
	"testing"

	"yuanc/internal/diag"
	"yuanc/internal/project"
	"yuanc/internal/source"
)

func idsToNames(idx Index, ids []ModuleID) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = idx.IDToName[int(id)]
	}
	return names
}

func batchesToNames(idx Index, batches [][]ModuleID) [][]string {
	out := make([][]string, len(batches))
	for i, batch := range batches {
		out[i] = idsToNames(idx, batch)
	}
	return out
}

func TestBuildIndexIncludesImports(t *testing.T) {
	metas := []project.ModuleMeta{
		{Path: "app", Imports: []project.ImportMeta{{Path: "core"}, {Path: "util"}}},
		{Path: "core", Imports: []project.ImportMeta{{Path: "util"}}},
	}

	idx := BuildIndex(metas)

	if len(idx.IDToName) != 3 {
		t.Fatalf("IDToName = %v, want 3 entries", idx.IDToName)
	}
	for _, name := range []string{"app", "core", "util"} {
		if _, ok := idx.NameToID[name]; !ok {
			t.Fatalf("missing id for %q", name)
		}
	}
}

func TestBuildGraphReportsMissingModules(t *testing.T) {
	appSpan := source.Span{File: 1, Start: 0, End: 10}
	coreSpan := source.Span{File: 2, Start: 0, End: 8}
	utilImportSpan := source.Span{File: 1, Start: 5, End: 8}

	appMeta := project.ModuleMeta{
		Path: "app",
		Span: appSpan,
		Imports: []project.ImportMeta{
			{Path: "core", Span: source.Span{File: 1, Start: 1, End: 4}},
			{Path: "util", Span: utilImportSpan},
		},
	}
	coreMeta := project.ModuleMeta{
		Path: "core",
		Span: coreSpan,
		Imports: []project.ImportMeta{
			{Path: "util", Span: source.Span{File: 2, Start: 2, End: 5}},
		},
	}

	bagApp := diag.NewBag(diag.Ignoring{})
	bagCore := diag.NewBag(diag.Ignoring{})

	nodes := []Node{
		{Meta: appMeta, Bag: bagApp},
		{Meta: coreMeta, Bag: bagCore},
	}
	idx := BuildIndex([]project.ModuleMeta{appMeta, coreMeta})
	graph, _ := BuildGraph(idx, nodes)

	appID := idx.NameToID["app"]
	coreID := idx.NameToID["core"]
	utilID := idx.NameToID["util"]

	appDeps := graph.Edges[int(appID)]
	if len(appDeps) != 2 || appDeps[0] != coreID || appDeps[1] != utilID {
		t.Fatalf("app deps = %v, want [%v %v]", appDeps, coreID, utilID)
	}

	coreDeps := graph.Edges[int(coreID)]
	if len(coreDeps) != 1 || coreDeps[0] != utilID {
		t.Fatalf("core deps = %v, want [%v]", coreDeps, utilID)
	}

	if !graph.Present[int(appID)] || !graph.Present[int(coreID)] || graph.Present[int(utilID)] {
		t.Fatalf("unexpected Present flags: %v", graph.Present)
	}

	if len(bagApp.Items()) != 1 {
		t.Fatalf("app diagnostics = %d, want 1", len(bagApp.Items()))
	}
	if bagApp.Items()[0].Code != diag.SemaModuleNotFound {
		t.Fatalf("app diag code = %v, want %v", bagApp.Items()[0].Code, diag.SemaModuleNotFound)
	}

	if len(bagCore.Items()) != 1 {
		t.Fatalf("core diagnostics = %d, want 1", len(bagCore.Items()))
	}
	if bagCore.Items()[0].Code != diag.SemaModuleNotFound {
		t.Fatalf("core diag code = %v, want %v", bagCore.Items()[0].Code, diag.SemaModuleNotFound)
	}
}

func TestBuildGraphDuplicateModules(t *testing.T) {
	spanA := source.Span{File: 1, Start: 0, End: 5}
	spanB := source.Span{File: 2, Start: 0, End: 5}

	metaA := project.ModuleMeta{Path: "dup/mod", Span: spanA}
	metaB := project.ModuleMeta{Path: "dup/mod", Span: spanB}

	bagA := diag.NewBag(diag.Ignoring{})
	bagB := diag.NewBag(diag.Ignoring{})

	nodes := []Node{
		{Meta: metaA, Bag: bagA},
		{Meta: metaB, Bag: bagB},
	}

	idx := BuildIndex([]project.ModuleMeta{metaA, metaB})
	graph, slots := BuildGraph(idx, nodes)

	if !graph.Present[idx.NameToID["dup/mod"]] {
		t.Fatalf("expected module to be present")
	}

	if len(bagA.Items()) != 0 {
		t.Fatalf("unexpected diagnostics for first module: %v", bagA.Items())
	}
	if len(bagB.Items()) != 1 {
		t.Fatalf("expected one diagnostic for duplicate, got %d", len(bagB.Items()))
	}
	if bagB.Items()[0].Code != diag.SemaRedefinition {
		t.Fatalf("duplicate code = %v, want %v", bagB.Items()[0].Code, diag.SemaRedefinition)
	}

	slot := slots[int(idx.NameToID["dup/mod"])]
	if !slot.Present || slot.Meta.Span != spanA {
		t.Fatalf("expected slot to hold first module metadata")
	}
}

func TestToposortKahnBatches(t *testing.T) {
	metas := []project.ModuleMeta{
		{Path: "b", Imports: []project.ImportMeta{{Path: "c"}}},
		{Path: "a"},
		{Path: "c"},
	}

	nodes := []Node{
		{Meta: metas[0]},
		{Meta: metas[1]},
		{Meta: metas[2]},
	}

	idx := BuildIndex(metas)
	graph, _ := BuildGraph(idx, nodes)

	topo := ToposortKahn(graph)
	if topo.Cyclic {
		t.Fatalf("expected acyclic graph")
	}

	orderNames := idsToNames(idx, topo.Order)
	if len(orderNames) != 3 {
		t.Fatalf("order len = %d, want 3", len(orderNames))
	}
	wantOrder := []string{"a", "b", "c"}
	for i, want := range wantOrder {
		if orderNames[i] != want {
			t.Fatalf("order[%d] = %q, want %q", i, orderNames[i], want)
		}
	}

	batches := batchesToNames(idx, topo.Batches)
	wantBatches := [][]string{{"a", "b"}, {"c"}}
	if len(batches) != len(wantBatches) {
		t.Fatalf("batches len = %d, want %d", len(batches), len(wantBatches))
	}
	for i := range wantBatches {
		if len(batches[i]) != len(wantBatches[i]) {
			t.Fatalf("batch[%d] len = %d, want %d", i, len(batches[i]), len(wantBatches[i]))
		}
		for j, want := range wantBatches[i] {
			if batches[i][j] != want {
				t.Fatalf("batch[%d][%d] = %q, want %q", i, j, batches[i][j], want)
			}
		}
	}
}

func TestReportCycles(t *testing.T) {
	spanA := source.Span{File: 1, Start: 0, End: 4}
	spanB := source.Span{File: 2, Start: 0, End: 4}

	metaA := project.ModuleMeta{
		Path: "a",
		Span: spanA,
		Imports: []project.ImportMeta{
			{Path: "b", Span: spanA},
		},
	}
	metaB := project.ModuleMeta{
		Path: "b",
		Span: spanB,
		Imports: []project.ImportMeta{
			{Path: "a", Span: spanB},
		},
	}

	bagA := diag.NewBag(diag.Ignoring{})
	bagB := diag.NewBag(diag.Ignoring{})

	nodes := []Node{
		{Meta: metaA, Bag: bagA},
		{Meta: metaB, Bag: bagB},
	}

	idx := BuildIndex([]project.ModuleMeta{metaA, metaB})
	graph, slots := BuildGraph(idx, nodes)

	topo := ToposortKahn(graph)
	if !topo.Cyclic || len(topo.Cycles) != 2 {
		t.Fatalf("expected cycle with two modules, got %+v", topo)
	}

	ReportCycles(idx, slots, topo)

	if len(bagA.Items()) != 1 || bagA.Items()[0].Code != diag.SemaCircularImport {
		t.Fatalf("module a diagnostics = %v", bagA.Items())
	}
	if len(bagB.Items()) != 1 || bagB.Items()[0].Code != diag.SemaCircularImport {
		t.Fatalf("module b diagnostics = %v", bagB.Items())
	}
}

func TestComputeModuleHashes(t *testing.T) {
	metas := []project.ModuleMeta{
		{Path: "leaf", ContentHash: project.Digest{1}},
		{Path: "root", ContentHash: project.Digest{2}, Imports: []project.ImportMeta{{Path: "leaf"}}},
	}
	nodes := []Node{{Meta: metas[0]}, {Meta: metas[1]}}

	idx := BuildIndex(metas)
	graph, slots := BuildGraph(idx, nodes)
	topo := ToposortKahn(graph)
	if topo.Cyclic {
		t.Fatalf("expected acyclic graph")
	}

	ComputeModuleHashes(graph, slots, topo)

	leaf := slots[int(idx.NameToID["leaf"])]
	root := slots[int(idx.NameToID["root"])]

	wantLeafHash := project.Combine(leaf.Meta.ContentHash)
	if leaf.Meta.ModuleHash != wantLeafHash {
		t.Fatalf("leaf hash = %x, want %x", leaf.Meta.ModuleHash, wantLeafHash)
	}
	wantRootHash := project.Combine(root.Meta.ContentHash, leaf.Meta.ModuleHash)
	if root.Meta.ModuleHash != wantRootHash {
		t.Fatalf("root hash = %x, want %x", root.Meta.ModuleHash, wantRootHash)
	}
}

func TestSkipBrokenPropagatesTransitively(t *testing.T) {
	metas := []project.ModuleMeta{
		{Path: "a", Imports: []project.ImportMeta{{Path: "b"}}},
		{Path: "b", Imports: []project.ImportMeta{{Path: "c"}}},
		{Path: "c"},
	}
	nodes := []Node{{Meta: metas[0]}, {Meta: metas[1]}, {Meta: metas[2]}}

	idx := BuildIndex(metas)
	graph, slots := BuildGraph(idx, nodes)
	slots[int(idx.NameToID["c"])].Broken = true

	skip := SkipBroken(graph, slots)

	for _, name := range []string{"a", "b", "c"} {
		if !skip[idx.NameToID[name]] {
			t.Fatalf("expected %q to be marked skipped", name)
		}
	}
}
