package project

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"yuanc/internal/source"
)

// ImportMeta is one module-level import, as parsed but before the
// dependency it names is known to exist.
type ImportMeta struct {
	Path string
	Span source.Span
}

// ModuleKind distinguishes a library module from a binary entry point.
type ModuleKind uint8

const (
	ModuleKindUnknown ModuleKind = iota
	ModuleKindModule
	ModuleKindBinary
)

// ModuleFileMeta is one source file contributing to a module.
type ModuleFileMeta struct {
	Path string
	Span source.Span
	Hash Digest
}

// ModuleMeta is everything the project graph needs about one module,
// independent of whether its declaration or any of its files have
// actually been loaded yet (see ModuleSlot.Present in the dag package).
type ModuleMeta struct {
	Name            string
	Path            string // normalized module path, e.g. "a/b"
	Dir             string // normalized directory path, e.g. "a/b"
	Kind            ModuleKind
	HasModulePragma bool
	Span            source.Span // span of the whole file, or the module declaration
	Imports         []ImportMeta
	Files           []ModuleFileMeta
	ContentHash     Digest
	ModuleHash      Digest // aggregated hash including every dependency's hash
}

// IsValidModuleIdent reports whether name is a valid bare module/segment
// identifier: ASCII letters, digits, and underscore, not starting with a digit.
func IsValidModuleIdent(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r > unicode.MaxASCII {
			return false
		}
		if i == 0 && r != '_' && !unicode.IsLetter(r) {
			return false
		}
		if i > 0 && r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// NormalizeModulePath reduces a module path (an import target, or a source
// file's own logical path) to its canonical "a/b" form: strips a trailing
// ".yu" extension, converts backslashes to forward slashes, and rejects
// empty segments, ".", and "..".
func NormalizeModulePath(path string) (string, error) {
	const ext = ".yu"
	if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
		path = path[:len(path)-len(ext)]
	}
	for path != "" && (path[0] == '/' || path[0] == '\\') {
		path = path[1:]
	}

	var segments []string
	curr := ""
	for _, r := range path {
		if r == '\\' || r == '/' {
			if curr == "" {
				return "", errors.New("invalid module path")
			}
			segments = append(segments, curr)
			curr = ""
			continue
		}
		curr += string(r)
	}
	if curr != "" {
		segments = append(segments, curr)
	}
	if len(segments) == 0 {
		return "", errors.New("invalid module path")
	}
	for _, seg := range segments {
		if seg == "" || seg == "." || seg == ".." {
			return "", errors.New("invalid module path")
		}
	}
	return strings.Join(segments, "/"), nil
}

// ResolveImportPath normalizes an import's segments (which may include "."
// and "..") relative to the importing module's own path and the project's
// base directory, producing the canonical path of the target module.
func ResolveImportPath(modulePath, basePath string, segments []string) (string, error) {
	if len(segments) == 0 {
		return "", errors.New("empty import path")
	}

	joined := strings.Join(segments, "/")
	if segments[0] == "stdlib" || segments[0] == "core" {
		return NormalizeModulePath(joined)
	}

	var baseSegments []string
	if clean := strings.Trim(basePath, "/"); clean != "" {
		baseSegments = strings.Split(strings.ReplaceAll(clean, "\\", "/"), "/")
	}

	var moduleDir []string
	if modulePath != "" {
		parts := strings.Split(modulePath, "/")
		if len(parts) > 1 {
			moduleDir = append(moduleDir, parts[:len(parts)-1]...)
		}
	}

	target := make([]string, 0, len(moduleDir)+len(segments))
	target = append(target, moduleDir...)

	useRelative := segments[0] == "." || segments[0] == ".."
	if !useRelative {
		absolute := false
		if len(baseSegments) > 0 && len(segments) >= len(baseSegments) {
			absolute = true
			for i := range baseSegments {
				if segments[i] != baseSegments[i] {
					absolute = false
					break
				}
			}
		}
		if !absolute && len(segments) >= len(moduleDir) {
			absolute = true
			for i := range moduleDir {
				if moduleDir[i] != segments[i] {
					absolute = false
					break
				}
			}
		}
		if !absolute && len(moduleDir) > 0 {
			parent := moduleDir[:len(moduleDir)-1]
			if len(parent) > 0 && len(segments) >= len(parent) {
				absolute = true
				for i := range parent {
					if parent[i] != segments[i] {
						absolute = false
						break
					}
				}
			}
		}
		if absolute {
			target = target[:0]
		}
	}

	for _, seg := range segments {
		switch seg {
		case "":
			return "", errors.New("empty import segment")
		case ".":
			continue
		case "..":
			if len(target) == 0 {
				return "", errors.New("import path escapes project root")
			}
			target = target[:len(target)-1]
		default:
			if strings.Contains(seg, "/") {
				return "", fmt.Errorf("import segment %q contains '/'", seg)
			}
			target = append(target, seg)
		}
	}

	if len(target) == 0 {
		return "", errors.New("import resolves to empty path")
	}
	return NormalizeModulePath(strings.Join(target, "/"))
}
