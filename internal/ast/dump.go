package ast

import (
	"fmt"

	"yuanc/internal/diagfmt"
)

// DumpFile renders a parsed file's top-level declarations as a
// diagfmt.DumpNode tree, suitable for the driver's AST-dump action.
func (c *Context) DumpFile(f *File) *diagfmt.DumpNode {
	root := &diagfmt.DumpNode{Kind: "File"}
	for i, d := range f.Decls {
		root.Children = append(root.Children, diagfmt.DumpEdge{
			Label: fmt.Sprintf("decl[%d]", i),
			Node:  c.dumpDecl(d),
		})
	}
	return root
}

func (c *Context) dumpDecl(id DeclID) *diagfmt.DumpNode {
	n := c.Decls.Get(id)
	if n == nil {
		return &diagfmt.DumpNode{Kind: "<nil decl>"}
	}
	switch n.Kind {
	case DeclVar:
		d, _ := c.Decls.Var(id)
		node := &diagfmt.DumpNode{Kind: "VarDecl", Attrs: fmt.Sprintf("name=%s mut=%v", c.Strings.Lookup(d.Name), d.Mutable)}
		if d.Annotation.IsValid() {
			node.Children = append(node.Children, diagfmt.DumpEdge{Label: "type", Node: c.dumpTypeExpr(d.Annotation)})
		}
		if d.Init.IsValid() {
			node.Children = append(node.Children, diagfmt.DumpEdge{Label: "init", Node: c.dumpExpr(d.Init)})
		}
		return node
	case DeclConst:
		d, _ := c.Decls.Const(id)
		node := &diagfmt.DumpNode{Kind: "ConstDecl", Attrs: fmt.Sprintf("name=%s", c.Strings.Lookup(d.Name))}
		if d.Init.IsValid() {
			node.Children = append(node.Children, diagfmt.DumpEdge{Label: "init", Node: c.dumpExpr(d.Init)})
		}
		return node
	case DeclFunc:
		d, _ := c.Decls.Func(id)
		node := &diagfmt.DumpNode{Kind: "FuncDecl", Attrs: fmt.Sprintf("name=%s async=%v errorRet=%v params=%d", c.Strings.Lookup(d.Name), d.Async, d.ErrorRet, len(d.Params))}
		if d.Body.IsValid() {
			node.Children = append(node.Children, diagfmt.DumpEdge{Label: "body", Node: c.dumpStmt(d.Body)})
		}
		return node
	case DeclStruct:
		d, _ := c.Decls.Struct(id)
		node := &diagfmt.DumpNode{Kind: "StructDecl", Attrs: fmt.Sprintf("name=%s fields=%d", c.Strings.Lookup(d.Name), len(d.Fields))}
		for _, fid := range d.Fields {
			f := c.Decls.Field(fid)
			node.Children = append(node.Children, diagfmt.DumpEdge{
				Label: "field",
				Node:  &diagfmt.DumpNode{Kind: "FieldDecl", Attrs: c.Strings.Lookup(f.Name), Children: []diagfmt.DumpEdge{{Label: "type", Node: c.dumpTypeExpr(f.Type)}}},
			})
		}
		return node
	case DeclEnum:
		d, _ := c.Decls.Enum(id)
		node := &diagfmt.DumpNode{Kind: "EnumDecl", Attrs: fmt.Sprintf("name=%s variants=%d", c.Strings.Lookup(d.Name), len(d.Variants))}
		return node
	case DeclTypeAlias:
		d, _ := c.Decls.TypeAlias(id)
		node := &diagfmt.DumpNode{Kind: "TypeAliasDecl", Attrs: c.Strings.Lookup(d.Name)}
		if d.Aliased.IsValid() {
			node.Children = append(node.Children, diagfmt.DumpEdge{Label: "aliased", Node: c.dumpTypeExpr(d.Aliased)})
		}
		return node
	case DeclTrait:
		d, _ := c.Decls.Trait(id)
		return &diagfmt.DumpNode{Kind: "TraitDecl", Attrs: fmt.Sprintf("name=%s methods=%d", c.Strings.Lookup(d.Name), len(d.Methods))}
	case DeclImpl:
		d, _ := c.Decls.Impl(id)
		attrs := "inherent"
		if d.HasTrait {
			attrs = "trait=" + c.Strings.Lookup(d.TraitName)
		}
		node := &diagfmt.DumpNode{Kind: "ImplDecl", Attrs: attrs}
		node.Children = append(node.Children, diagfmt.DumpEdge{Label: "target", Node: c.dumpTypeExpr(d.Target)})
		for _, m := range d.Methods {
			node.Children = append(node.Children, diagfmt.DumpEdge{Label: "method", Node: c.dumpDecl(m)})
		}
		return node
	default:
		return &diagfmt.DumpNode{Kind: "UnknownDecl"}
	}
}

func (c *Context) dumpStmt(id StmtID) *diagfmt.DumpNode {
	n := c.Stmts.Get(id)
	if n == nil {
		return &diagfmt.DumpNode{Kind: "<nil stmt>"}
	}
	switch n.Kind {
	case StmtLocalDecl:
		d, _ := c.Stmts.LocalDecl(id)
		return &diagfmt.DumpNode{Kind: "LocalDecl", Children: []diagfmt.DumpEdge{{Node: c.dumpDecl(d.Decl)}}}
	case StmtExpr:
		d, _ := c.Stmts.ExprStmt(id)
		return &diagfmt.DumpNode{Kind: "ExprStmt", Children: []diagfmt.DumpEdge{{Node: c.dumpExpr(d.Expr)}}}
	case StmtReturn:
		d, _ := c.Stmts.Return(id)
		node := &diagfmt.DumpNode{Kind: "ReturnStmt"}
		if d.Value.IsValid() {
			node.Children = append(node.Children, diagfmt.DumpEdge{Node: c.dumpExpr(d.Value)})
		}
		return node
	case StmtBreak:
		return &diagfmt.DumpNode{Kind: "BreakStmt"}
	case StmtContinue:
		return &diagfmt.DumpNode{Kind: "ContinueStmt"}
	case StmtDefer:
		d, _ := c.Stmts.Defer(id)
		return &diagfmt.DumpNode{Kind: "DeferStmt", Children: []diagfmt.DumpEdge{{Node: c.dumpExpr(d.Expr)}}}
	default:
		return &diagfmt.DumpNode{Kind: "UnknownStmt"}
	}
}

func (c *Context) dumpExpr(id ExprID) *diagfmt.DumpNode {
	n := c.Exprs.Get(id)
	if n == nil {
		return &diagfmt.DumpNode{Kind: "<nil expr>"}
	}
	switch n.Kind {
	case ExprLiteral:
		d, _ := c.Exprs.Literal(id)
		return &diagfmt.DumpNode{Kind: "Literal", Attrs: c.Strings.Lookup(d.Text)}
	case ExprNone:
		return &diagfmt.DumpNode{Kind: "None"}
	case ExprIdent:
		d, _ := c.Exprs.Ident(id)
		return &diagfmt.DumpNode{Kind: "Ident", Attrs: c.Strings.Lookup(d.Name)}
	case ExprBinary:
		d, _ := c.Exprs.Binary(id)
		return &diagfmt.DumpNode{Kind: "Binary", Attrs: fmt.Sprintf("op=%d", d.Op), Children: []diagfmt.DumpEdge{
			{Label: "left", Node: c.dumpExpr(d.Left)},
			{Label: "right", Node: c.dumpExpr(d.Right)},
		}}
	case ExprUnary:
		d, _ := c.Exprs.Unary(id)
		return &diagfmt.DumpNode{Kind: "Unary", Attrs: fmt.Sprintf("op=%d", d.Op), Children: []diagfmt.DumpEdge{{Node: c.dumpExpr(d.Operand)}}}
	case ExprAssign:
		d, _ := c.Exprs.Assign(id)
		return &diagfmt.DumpNode{Kind: "Assign", Attrs: fmt.Sprintf("op=%d", d.Op), Children: []diagfmt.DumpEdge{
			{Label: "target", Node: c.dumpExpr(d.Target)},
			{Label: "rhs", Node: c.dumpExpr(d.Rhs)},
		}}
	case ExprCall:
		d, _ := c.Exprs.Call(id)
		node := &diagfmt.DumpNode{Kind: "Call", Attrs: fmt.Sprintf("args=%d", len(d.Args))}
		node.Children = append(node.Children, diagfmt.DumpEdge{Label: "callee", Node: c.dumpExpr(d.Callee)})
		for i, a := range d.Args {
			node.Children = append(node.Children, diagfmt.DumpEdge{Label: fmt.Sprintf("arg[%d]", i), Node: c.dumpExpr(a.Value)})
		}
		return node
	case ExprMember:
		d, _ := c.Exprs.Member(id)
		return &diagfmt.DumpNode{Kind: "Member", Attrs: c.Strings.Lookup(d.Name), Children: []diagfmt.DumpEdge{{Node: c.dumpExpr(d.Target)}}}
	case ExprIndex:
		d, _ := c.Exprs.Index(id)
		return &diagfmt.DumpNode{Kind: "Index", Children: []diagfmt.DumpEdge{
			{Label: "target", Node: c.dumpExpr(d.Target)},
			{Label: "index", Node: c.dumpExpr(d.Index)},
		}}
	case ExprCast:
		d, _ := c.Exprs.Cast(id)
		return &diagfmt.DumpNode{Kind: "Cast", Children: []diagfmt.DumpEdge{
			{Label: "value", Node: c.dumpExpr(d.Value)},
			{Label: "type", Node: c.dumpTypeExpr(d.Type)},
		}}
	case ExprIf:
		d, _ := c.Exprs.If(id)
		node := &diagfmt.DumpNode{Kind: "If", Children: []diagfmt.DumpEdge{
			{Label: "cond", Node: c.dumpExpr(d.Cond)},
			{Label: "then", Node: c.dumpExpr(d.Then)},
		}}
		if d.Else.IsValid() {
			node.Children = append(node.Children, diagfmt.DumpEdge{Label: "else", Node: c.dumpExpr(d.Else)})
		}
		return node
	case ExprMatch:
		d, _ := c.Exprs.Match(id)
		node := &diagfmt.DumpNode{Kind: "Match", Children: []diagfmt.DumpEdge{{Label: "scrutinee", Node: c.dumpExpr(d.Scrutinee)}}}
		for i, arm := range d.Arms {
			node.Children = append(node.Children, diagfmt.DumpEdge{Label: fmt.Sprintf("arm[%d]", i), Node: c.dumpExpr(arm.Body)})
		}
		return node
	case ExprBlock:
		d, _ := c.Exprs.Block(id)
		node := &diagfmt.DumpNode{Kind: "Block", Attrs: fmt.Sprintf("stmts=%d", len(d.Stmts))}
		for i, s := range d.Stmts {
			node.Children = append(node.Children, diagfmt.DumpEdge{Label: fmt.Sprintf("stmt[%d]", i), Node: c.dumpStmt(s)})
		}
		if d.Result.IsValid() {
			node.Children = append(node.Children, diagfmt.DumpEdge{Label: "result", Node: c.dumpExpr(d.Result)})
		}
		return node
	case ExprLoop:
		d, _ := c.Exprs.Loop(id)
		node := &diagfmt.DumpNode{Kind: "Loop", Attrs: fmt.Sprintf("kind=%d", d.Kind)}
		if d.Cond.IsValid() {
			node.Children = append(node.Children, diagfmt.DumpEdge{Label: "cond", Node: c.dumpExpr(d.Cond)})
		}
		if d.Iter.IsValid() {
			node.Children = append(node.Children, diagfmt.DumpEdge{Label: "iter", Node: c.dumpExpr(d.Iter)})
		}
		node.Children = append(node.Children, diagfmt.DumpEdge{Label: "body", Node: c.dumpExpr(d.Body)})
		return node
	case ExprClosure:
		d, _ := c.Exprs.Closure(id)
		return &diagfmt.DumpNode{Kind: "Closure", Attrs: fmt.Sprintf("params=%d", len(d.Params)), Children: []diagfmt.DumpEdge{{Label: "body", Node: c.dumpExpr(d.Body)}}}
	case ExprArray:
		d, _ := c.Exprs.Array(id)
		node := &diagfmt.DumpNode{Kind: "Array"}
		for _, e := range d.Elems {
			node.Children = append(node.Children, diagfmt.DumpEdge{Node: c.dumpExpr(e)})
		}
		return node
	case ExprTuple:
		d, _ := c.Exprs.Tuple(id)
		node := &diagfmt.DumpNode{Kind: "Tuple"}
		for _, e := range d.Elems {
			node.Children = append(node.Children, diagfmt.DumpEdge{Node: c.dumpExpr(e)})
		}
		return node
	case ExprStructLit:
		d, _ := c.Exprs.StructLit(id)
		node := &diagfmt.DumpNode{Kind: "StructLit"}
		for _, f := range d.Fields {
			node.Children = append(node.Children, diagfmt.DumpEdge{Label: c.Strings.Lookup(f.Name), Node: c.dumpExpr(f.Value)})
		}
		return node
	case ExprRange:
		d, _ := c.Exprs.Range(id)
		node := &diagfmt.DumpNode{Kind: "Range", Attrs: fmt.Sprintf("inclusive=%v", d.Inclusive)}
		if d.Low.IsValid() {
			node.Children = append(node.Children, diagfmt.DumpEdge{Label: "low", Node: c.dumpExpr(d.Low)})
		}
		if d.High.IsValid() {
			node.Children = append(node.Children, diagfmt.DumpEdge{Label: "high", Node: c.dumpExpr(d.High)})
		}
		return node
	case ExprAwait:
		d, _ := c.Exprs.Await(id)
		return &diagfmt.DumpNode{Kind: "Await", Children: []diagfmt.DumpEdge{{Node: c.dumpExpr(d.Value)}}}
	case ExprErrorPropagate:
		d, _ := c.Exprs.ErrorPropagate(id)
		return &diagfmt.DumpNode{Kind: "ErrorPropagate", Children: []diagfmt.DumpEdge{{Node: c.dumpExpr(d.Value)}}}
	case ExprErrorHandle:
		d, _ := c.Exprs.ErrorHandle(id)
		return &diagfmt.DumpNode{Kind: "ErrorHandle", Children: []diagfmt.DumpEdge{
			{Label: "value", Node: c.dumpExpr(d.Value)},
			{Label: "body", Node: c.dumpExpr(d.Body)},
		}}
	default:
		return &diagfmt.DumpNode{Kind: "UnknownExpr"}
	}
}

func (c *Context) dumpTypeExpr(id TypeExprID) *diagfmt.DumpNode {
	n := c.TypeExprs.Get(id)
	if n == nil {
		return &diagfmt.DumpNode{Kind: "<nil type>"}
	}
	switch n.Kind {
	case TypeExprIdent:
		d, _ := c.TypeExprs.Ident(id)
		return &diagfmt.DumpNode{Kind: "TypeIdent", Attrs: c.Strings.Lookup(d.Name)}
	case TypeExprReference:
		d, _ := c.TypeExprs.Reference(id)
		return &diagfmt.DumpNode{Kind: "TypeReference", Attrs: fmt.Sprintf("mut=%v", d.Mutable), Children: []diagfmt.DumpEdge{{Node: c.dumpTypeExpr(d.Pointee)}}}
	case TypeExprPointer:
		d, _ := c.TypeExprs.Pointer(id)
		return &diagfmt.DumpNode{Kind: "TypePointer", Attrs: fmt.Sprintf("mut=%v", d.Mutable), Children: []diagfmt.DumpEdge{{Node: c.dumpTypeExpr(d.Pointee)}}}
	case TypeExprArray:
		d, _ := c.TypeExprs.Array(id)
		return &diagfmt.DumpNode{Kind: "TypeArray", Children: []diagfmt.DumpEdge{{Node: c.dumpTypeExpr(d.Elem)}}}
	case TypeExprSlice:
		d, _ := c.TypeExprs.Slice(id)
		return &diagfmt.DumpNode{Kind: "TypeSlice", Children: []diagfmt.DumpEdge{{Node: c.dumpTypeExpr(d.Elem)}}}
	case TypeExprOptional:
		d, _ := c.TypeExprs.Optional(id)
		return &diagfmt.DumpNode{Kind: "TypeOptional", Children: []diagfmt.DumpEdge{{Node: c.dumpTypeExpr(d.Inner)}}}
	case TypeExprTuple:
		d, _ := c.TypeExprs.Tuple(id)
		node := &diagfmt.DumpNode{Kind: "TypeTuple"}
		for _, e := range d.Elems {
			node.Children = append(node.Children, diagfmt.DumpEdge{Node: c.dumpTypeExpr(e)})
		}
		return node
	case TypeExprFunction:
		d, _ := c.TypeExprs.Function(id)
		node := &diagfmt.DumpNode{Kind: "TypeFunction"}
		for i, p := range d.Params {
			node.Children = append(node.Children, diagfmt.DumpEdge{Label: fmt.Sprintf("param[%d]", i), Node: c.dumpTypeExpr(p)})
		}
		if d.Return.IsValid() {
			node.Children = append(node.Children, diagfmt.DumpEdge{Label: "return", Node: c.dumpTypeExpr(d.Return)})
		}
		return node
	default:
		return &diagfmt.DumpNode{Kind: "UnknownTypeExpr"}
	}
}
