package driver

import (
	"fmt"
	"io"

	"yuanc/internal/ast"
	"yuanc/internal/diag"
	"yuanc/internal/diagfmt"
	"yuanc/internal/lexer"
	"yuanc/internal/parser"
	"yuanc/internal/sema"
	"yuanc/internal/source"
	"yuanc/internal/symbols"
	"yuanc/internal/token"
	"yuanc/internal/trace"
	"yuanc/internal/types"
)

// Options configures one Compile run.
type Options struct {
	Action Action

	// PointerWidth selects isize/usize's width; zero means types.Width64.
	PointerWidth types.Width

	// ErrorTypeName names the builtin tagged-error type Sema seeds into
	// global scope; empty seeds none (see sema.Options).
	ErrorTypeName string

	// MaxDiagnostics is the bag's error limit (HasReachedErrorLimit reports
	// true once this many errors are collected) and the parser's MaxErrors;
	// 0 means unlimited.
	MaxDiagnostics int

	// Backend receives the analyzed AST for emit actions; NoBackend{} if nil.
	Backend Backend

	// Cache, if non-nil, is consulted for a cached token dump before
	// lexing and populated with the result afterward.
	Cache *TokenCache

	// Tracer, if non-nil, receives a Begin/End span around each phase
	// (lex, parse, sema, codegen) at trace.ScopePass.
	Tracer trace.Tracer

	// Progress, if non-nil, receives a working Event as each phase this run
	// reaches starts, and one done/error Event for the last phase reached;
	// watch mode's UI is the only consumer today.
	Progress ProgressSink
}

// Result is one input's outcome: its file set, analyzed AST (when the
// action ran that far), collected diagnostics, and terminal status.
type Result struct {
	FileSet *source.FileSet
	FileID  source.FileID
	Ctx     *ast.Context
	File    *ast.File
	Tokens  []token.Token
	Bag     *diag.Bag
	Status  Status
}

// Compile runs the pipeline over one file's content through the depth
// opts.Action requires, single-threaded throughout (lex/parse/Sema never
// run concurrently with themselves or each other, per spec §5).
func Compile(path string, content []byte, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	fileID := fs.Add(path, content, 0)
	return compile(fs, fileID, opts)
}

// CompileFile is Compile, loading content from disk via fs.Load.
func CompileFile(fs *source.FileSet, path string, opts Options) (*Result, error) {
	fileID, err := fs.Load(path)
	if err != nil {
		return &Result{FileSet: fs, Status: IOError}, fmt.Errorf("load %s: %w", path, err)
	}
	return compile(fs, fileID, opts)
}

func compile(fs *source.FileSet, fileID source.FileID, opts Options) (*Result, error) {
	file := fs.Get(fileID)
	if file == nil {
		return &Result{FileSet: fs, Status: InternalError}, fmt.Errorf("driver: file %d not registered", fileID)
	}

	bag := diag.NewBag(diag.Ignoring{})
	bag.SetErrorLimit(opts.MaxDiagnostics)

	res := &Result{FileSet: fs, FileID: fileID, Bag: bag, Status: Success}
	report := opts.Progress
	reportPhase(report, file.Path, StageLex, ProgressWorking)

	lexSpan := trace.Begin(opts.Tracer, trace.ScopePass, "lex", 0)
	if toks, ok := loadCachedTokens(opts.Cache, file); ok {
		res.Tokens = toks
		lexSpan.WithExtra("cache", "hit")
	} else {
		res.Tokens = lexAll(fileID, file.Content, bag)
		storeCachedTokens(opts.Cache, file, res.Tokens)
		lexSpan.WithExtra("cache", "miss")
	}
	lexSpan.End(file.Path)
	if bag.HasErrors() {
		res.Status = LexerError
	}
	if opts.Action == ActionTokens {
		reportDone(report, file.Path, StageLex, res.Status)
		return res, nil
	}

	width := opts.PointerWidth
	if width == 0 {
		width = types.Width64
	}
	ctx := ast.NewContext(width)
	lx := lexer.New(fileID, file.Content, bag)
	reportPhase(report, file.Path, StageParse, ProgressWorking)
	parseSpan := trace.Begin(opts.Tracer, trace.ScopePass, "parse", 0)
	pf := parser.ParseFile(lx, ctx, bag, fileID, parser.Options{MaxErrors: opts.MaxDiagnostics})
	parseSpan.End(file.Path)
	res.Ctx = ctx
	res.File = pf
	if bag.HasErrors() && res.Status == Success {
		res.Status = ParserError
	}
	if opts.Action == ActionAST || opts.Action == ActionPretty {
		reportDone(report, file.Path, StageParse, res.Status)
		return res, nil
	}

	syms := symbols.NewTable(ctx.Strings)
	reportPhase(report, file.Path, StageSema, ProgressWorking)
	semaSpan := trace.Begin(opts.Tracer, trace.ScopePass, "sema", 0)
	sema.Check(ctx, pf, bag, syms, sema.Options{ErrorTypeName: opts.ErrorTypeName})
	semaSpan.End(file.Path)
	if bag.HasErrors() && res.Status == Success {
		res.Status = SemanticError
	}
	if !opts.Action.needsCodegen() {
		reportDone(report, file.Path, StageSema, res.Status)
		return res, nil
	}

	backend := opts.Backend
	if backend == nil {
		backend = NoBackend{}
	}
	if res.Status != Success {
		reportDone(report, file.Path, StageSema, res.Status)
		return res, nil
	}
	reportPhase(report, file.Path, StageCodegen, ProgressWorking)
	if err := runCodegen(ctx, pf, backend, opts.Action); err != nil {
		res.Status = CodeGenError
		reportDone(report, file.Path, StageCodegen, res.Status)
		return res, err
	}
	reportDone(report, file.Path, StageCodegen, res.Status)
	return res, nil
}

func reportPhase(sink ProgressSink, path string, stage Stage, status ProgressStatus) {
	if sink == nil {
		return
	}
	sink.Report(Event{File: path, Stage: stage, Status: status})
}

func reportDone(sink ProgressSink, path string, stage Stage, status Status) {
	if sink == nil {
		return
	}
	if status == Success {
		sink.Report(Event{File: path, Stage: stage, Status: ProgressDone})
	} else {
		sink.Report(Event{File: path, Stage: stage, Status: ProgressError})
	}
}

func lexAll(fileID source.FileID, content []byte, bag *diag.Bag) []token.Token {
	lx := lexer.New(fileID, content, bag)
	var toks []token.Token
	for {
		t := lx.Next()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			break
		}
	}
	return toks
}

func runCodegen(ctx *ast.Context, file *ast.File, backend Backend, action Action) error {
	for _, id := range file.Decls {
		if err := backend.GenerateDecl(ctx, id); err != nil {
			return err
		}
	}
	if err := backend.Verify(); err != nil {
		return err
	}
	if action == ActionEmitLLVM {
		return nil
	}
	return ErrNoBackend
}

// WriteTokens writes res.Tokens, one per line, in the driver's stable
// dump form (`Kind(text)` per token.Token.String).
func WriteTokens(w io.Writer, toks []token.Token) error {
	for _, t := range toks {
		if _, err := fmt.Fprintln(w, t.String()); err != nil {
			return err
		}
	}
	return nil
}

// WriteAST renders res.Ctx/res.File as the stable AST-dump tree.
func WriteAST(w io.Writer, ctx *ast.Context, file *ast.File, opts diagfmt.DumpOpts) {
	diagfmt.Dump(w, ctx.DumpFile(file), opts)
}

// WritePretty renders res.Ctx/res.File as round-tripping surface syntax.
func WritePretty(w io.Writer, ctx *ast.Context, file *ast.File, sf *source.File) error {
	_, err := w.Write(ctx.PrintFile(file, sf))
	return err
}

// WriteDiagnostics renders res.Bag in the Clang-style positional text form.
func WriteDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts diagfmt.PrettyOpts) {
	diagfmt.Pretty(w, bag, fs, opts)
}
