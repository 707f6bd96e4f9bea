package driver

import (
	"context"
	"crypto/sha256"
	"os"

	"golang.org/x/sync/errgroup"

	"yuanc/internal/diag"
	"yuanc/internal/project"
	"yuanc/internal/project/dag"
	"yuanc/internal/source"
)

// ProjectOptions configures a multi-file Compile run.
type ProjectOptions struct {
	Options

	// Manifest, when non-nil, supplies named modules and their declared
	// dependencies (yuan.toml's [[module]] table); a nil Manifest treats
	// every input path as its own standalone module with no dependencies.
	Manifest *project.Manifest
}

// ProjectResult is one input file's Result alongside its resolved module
// path, keyed the same way the dependency graph keys it.
type ProjectResult struct {
	Path   string
	Result *Result
	Err    error
}

// CompileProject loads every path in paths concurrently (one errgroup
// goroutine per path — the teacher's errgroup idiom — never concurrent
// lexing or parsing, per spec §5's single-threaded-core requirement),
// builds the project's module dependency graph (its order, cycle
// diagnostics and module hashes are not returned or used further), and
// compiles each file independently, in input order, to opts.Action's depth.
//
// Multi-file compilations analyze each unit independently: a file's Sema
// never reaches across to another file's declarations, matching spec
// §4.8's "multi-file compilations analyze each unit independently".
func CompileProject(ctx context.Context, paths []string, opts ProjectOptions) ([]ProjectResult, Status) {
	results := make([]ProjectResult, len(paths))
	contents := make([][]byte, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	fs := source.NewFileSet()
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := readFile(p)
			if err != nil {
				results[i] = ProjectResult{Path: p, Err: err}
				return nil // collected per-file; don't abort the whole group
			}
			contents[i] = data
			return nil
		})
	}
	_ = g.Wait()

	metas := make([]project.ModuleMeta, len(paths))
	for i, p := range paths {
		metas[i].Path = p
		if contents[i] != nil {
			metas[i].ContentHash = sha256.Sum256(contents[i])
		}
	}
	if opts.Manifest != nil {
		applyManifestImports(metas, opts.Manifest)
	}

	idx := dag.BuildIndex(metas)
	nodes := make([]dag.Node, len(metas))
	for i, m := range metas {
		nodes[i] = dag.Node{Meta: m, Bag: diag.NewBag(diag.Ignoring{})}
	}
	graph, slots := dag.BuildGraph(idx, nodes)
	topo := dag.ToposortKahn(graph)
	dag.ReportCycles(idx, slots, topo)
	dag.ComputeModuleHashes(graph, slots, topo)

	for _, p := range paths {
		if opts.Progress != nil {
			opts.Progress.Report(Event{File: p, Stage: StageLex, Status: ProgressQueued})
		}
	}

	overall := Success
	for i, p := range paths {
		if results[i].Err != nil {
			if overall == Success {
				overall = IOError
			}
			continue
		}
		res, err := compile(fs, fs.Add(p, contents[i], 0), opts.Options)
		results[i] = ProjectResult{Path: p, Result: res, Err: err}
		if res != nil && res.Status != Success && statusRank(res.Status) > statusRank(overall) {
			overall = res.Status
		}
		if err != nil && overall == Success {
			overall = IOError
		}
	}
	return results, overall
}

// applyManifestImports copies each manifest module's declared dependency
// list onto the matching metas entry by path, leaving unmatched inputs
// (paths the manifest doesn't name) with no imports.
func applyManifestImports(metas []project.ModuleMeta, m *project.Manifest) {
	byPath := make(map[string]*project.ModuleMeta, len(metas))
	for i := range metas {
		byPath[metas[i].Path] = &metas[i]
	}
	for _, decl := range m.Modules {
		meta, ok := byPath[decl.Path]
		if !ok {
			continue
		}
		meta.Name = decl.Name
		for _, dep := range decl.Imports {
			meta.Imports = append(meta.Imports, project.ImportMeta{Path: dep})
		}
	}
}

// statusRank orders Status by severity so CompileProject can report the
// worst outcome across every input.
func statusRank(s Status) int {
	switch s {
	case Success:
		return 0
	case LexerError:
		return 1
	case ParserError:
		return 2
	case SemanticError:
		return 3
	case CodeGenError:
		return 4
	case LinkError:
		return 5
	case IOError:
		return 6
	case InternalError:
		return 7
	default:
		return 8
	}
}

func readFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
