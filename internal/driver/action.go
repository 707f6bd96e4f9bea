// Package driver orchestrates the frontend pipeline — SourceManager load,
// lex, parse, and (when the action requires it) Sema — over one or more
// input files, and reports a single terminal Status per spec §4.8.
package driver

import "fmt"

// Action selects how far the pipeline runs for one input.
type Action uint8

const (
	// ActionTokens lexes only and dumps the token stream.
	ActionTokens Action = iota
	// ActionAST parses only and dumps the AST tree; no Sema.
	ActionAST
	// ActionPretty parses only and re-emits valid surface syntax.
	ActionPretty
	// ActionCheck parses and runs Sema; no codegen.
	ActionCheck
	// ActionEmitLLVM parses, runs Sema, and hands the AST to the external
	// codegen.Backend to emit LLVM IR.
	ActionEmitLLVM
	// ActionEmitObject parses, runs Sema, and hands the AST to the
	// external codegen.Backend to emit a native object file.
	ActionEmitObject
	// ActionEmitExecutable additionally links the emitted objects.
	ActionEmitExecutable
)

// String names the action the way it appears on the CLI (--emit=<name>).
func (a Action) String() string {
	switch a {
	case ActionTokens:
		return "tokens"
	case ActionAST:
		return "ast"
	case ActionPretty:
		return "pretty"
	case ActionCheck:
		return "check"
	case ActionEmitLLVM:
		return "llvm"
	case ActionEmitObject:
		return "obj"
	case ActionEmitExecutable:
		return "exe"
	default:
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
}

// ParseAction maps a --emit value to its Action.
func ParseAction(s string) (Action, error) {
	switch s {
	case "tokens":
		return ActionTokens, nil
	case "ast":
		return ActionAST, nil
	case "pretty":
		return ActionPretty, nil
	case "check":
		return ActionCheck, nil
	case "llvm":
		return ActionEmitLLVM, nil
	case "obj":
		return ActionEmitObject, nil
	case "exe":
		return ActionEmitExecutable, nil
	default:
		return 0, fmt.Errorf("unknown --emit action %q", s)
	}
}

// needsParse reports whether a carries the pipeline at least through parsing.
func (a Action) needsParse() bool { return a != ActionTokens }

// needsSema reports whether a carries the pipeline through semantic analysis.
func (a Action) needsSema() bool {
	switch a {
	case ActionCheck, ActionEmitLLVM, ActionEmitObject, ActionEmitExecutable:
		return true
	default:
		return false
	}
}

// needsCodegen reports whether a hands the analyzed AST to codegen.Backend.
func (a Action) needsCodegen() bool {
	switch a {
	case ActionEmitLLVM, ActionEmitObject, ActionEmitExecutable:
		return true
	default:
		return false
	}
}

// Status is the terminal outcome of one driver run, drawn from the closed
// set spec §4.8 names.
type Status uint8

const (
	Success Status = iota
	LexerError
	ParserError
	SemanticError
	CodeGenError
	LinkError
	IOError
	InternalError
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case LexerError:
		return "lexer-error"
	case ParserError:
		return "parser-error"
	case SemanticError:
		return "semantic-error"
	case CodeGenError:
		return "codegen-error"
	case LinkError:
		return "link-error"
	case IOError:
		return "io-error"
	case InternalError:
		return "internal-error"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// ExitCode maps a Status to a process exit code: 0 on Success, a distinct
// nonzero code per failure kind (stable within a build, per spec §6).
func (s Status) ExitCode() int {
	if s == Success {
		return 0
	}
	return int(s) + 1
}
