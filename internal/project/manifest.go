package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is the parsed content of a project's yuan.toml.
type Manifest struct {
	Path    string
	Root    string
	Package PackageConfig
	Modules []ModuleDecl
}

// PackageConfig is yuan.toml's [package] table.
type PackageConfig struct {
	Name         string `toml:"name"`
	PointerWidth int    `toml:"pointer_width"` // 32 or 64; 0 keeps the driver default (64-bit)
	StdlibPath   string `toml:"stdlib_path"`
}

// ModuleDecl is one entry of yuan.toml's optional [[module]] array,
// naming a source file (or directory treated as one compilation unit)
// and the other declared modules it depends on. This is project-level
// bookkeeping only — spec.md's language has no import statement, so
// these edges never affect a single file's own Sema; they exist purely
// to let the dependency graph in project/dag order multi-module builds
// and compute aggregate (content + dependency) module hashes.
type ModuleDecl struct {
	Name    string   `toml:"name"`
	Path    string   `toml:"path"`
	Imports []string `toml:"imports"`
}

type manifestFile struct {
	Package PackageConfig `toml:"package"`
	Module  []ModuleDecl  `toml:"module"`
}

// LoadManifest parses yuan.toml at path, discarding its [[module]] table.
func LoadManifest(path string) (PackageConfig, error) {
	pkg, _, err := loadManifestFile(path)
	return pkg, err
}

// LoadProjectManifest finds and parses the nearest yuan.toml above startDir.
func LoadProjectManifest(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	pkg, mods, err := loadManifestFile(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: manifestPath, Root: filepath.Dir(manifestPath), Package: pkg, Modules: mods}, true, nil
}

func loadManifestFile(path string) (PackageConfig, []ModuleDecl, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return PackageConfig{}, nil, fmt.Errorf("%s: parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return PackageConfig{}, nil, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return PackageConfig{}, nil, fmt.Errorf("%s: missing [package].name", path)
	}
	if cfg.Package.PointerWidth != 0 && cfg.Package.PointerWidth != 32 && cfg.Package.PointerWidth != 64 {
		return PackageConfig{}, nil, fmt.Errorf("%s: [package].pointer_width must be 32 or 64, got %d", path, cfg.Package.PointerWidth)
	}
	return cfg.Package, cfg.Module, nil
}
