package dag

import (
	"fmt"
	"sort"

	"fortio.org/safecast"

	"yuanc/internal/project"
)

// ModuleID is a module's dense index within one Graph/Index pair.
type ModuleID uint32

// Index maps module paths to their dense ModuleIDs, assigned by sorted
// path order so the same set of modules always gets the same IDs.
type Index struct {
	NameToID map[string]ModuleID
	IDToName []string
}

// BuildIndex collects every module path that appears either as a
// declared module or as some other module's import target, and assigns
// each a stable ID.
func BuildIndex(metas []project.ModuleMeta) Index {
	uniq := make(map[string]struct{}, len(metas))
	for _, meta := range metas {
		if meta.Path != "" {
			uniq[meta.Path] = struct{}{}
		}
		for _, dep := range meta.Imports {
			if dep.Path != "" {
				uniq[dep.Path] = struct{}{}
			}
		}
	}

	paths := make([]string, 0, len(uniq))
	for path := range uniq {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	nameToID := make(map[string]ModuleID, len(paths))
	for i, path := range paths {
		id, err := safecast.Conv[ModuleID](i)
		if err != nil {
			panic(fmt.Errorf("project/dag: module id overflow: %w", err))
		}
		nameToID[path] = id
	}

	return Index{NameToID: nameToID, IDToName: paths}
}
