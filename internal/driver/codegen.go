package driver

import (
	"errors"

	"yuanc/internal/ast"
)

// Backend is the codegen collaborator spec §6 describes: it consumes a
// read-only, Sema-analyzed AST and the canonical type registry and is
// responsible for everything downstream of analysis — IR emission,
// object emission, and linking. The frontend never assumes a concrete
// backend; it only calls through this interface.
type Backend interface {
	GenerateDecl(ctx *ast.Context, decl ast.DeclID) error
	Verify() error
	EmitIR(path string) error
	EmitObject(path string, optLevel int) error
	LinkExecutable(objects []string, path string) error
}

// ErrNoBackend is returned by NoBackend's methods: this repository's scope
// ends at analysis, so any --emit value beyond check has nothing to hand
// the AST to.
var ErrNoBackend = errors.New("driver: no codegen backend configured")

// NoBackend is the zero-value Backend: every method reports ErrNoBackend,
// which the driver surfaces as CodeGenError. It exists so ActionEmitLLVM /
// ActionEmitObject / ActionEmitExecutable have somewhere defined to go
// rather than a nil-pointer panic, without this repository implementing
// any actual code generation.
type NoBackend struct{}

func (NoBackend) GenerateDecl(*ast.Context, ast.DeclID) error { return ErrNoBackend }
func (NoBackend) Verify() error                               { return ErrNoBackend }
func (NoBackend) EmitIR(string) error                          { return ErrNoBackend }
func (NoBackend) EmitObject(string, int) error                 { return ErrNoBackend }
func (NoBackend) LinkExecutable([]string, string) error        { return ErrNoBackend }
