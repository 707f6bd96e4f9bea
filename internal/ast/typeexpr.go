package ast

import (
	"yuanc/internal/source"
	"yuanc/internal/types"
)

// TypeExprKind enumerates the surface-syntax type forms the parser builds;
// Sema resolves each into a canonical types.TypeID.
type TypeExprKind uint8

const (
	TypeExprIdent TypeExprKind = iota // a name, optionally with generic arguments
	TypeExprReference
	TypeExprPointer
	TypeExprArray
	TypeExprSlice
	TypeExprTuple
	TypeExprOptional
	TypeExprFunction
)

type TypeExpr struct {
	Kind     TypeExprKind
	Span     source.Span
	Payload  PayloadID
	Resolved types.TypeID // filled in by Sema's type-resolution pass
}

type TypeExprIdentData struct {
	Name     source.StringID
	Args     []TypeExprID // generic arguments, empty if none
}

type TypeExprReferenceData struct {
	Mutable bool
	Pointee TypeExprID
}

type TypeExprPointerData struct {
	Mutable bool
	Pointee TypeExprID
}

type TypeExprArrayData struct {
	Elem TypeExprID
	Size ExprID // a constant expression
}

type TypeExprSliceData struct {
	Elem    TypeExprID
	Mutable bool
}

type TypeExprTupleData struct {
	Elems []TypeExprID
}

type TypeExprOptionalData struct {
	Inner TypeExprID
}

type TypeExprFunctionData struct {
	Params []TypeExprID
	Return TypeExprID // NoTypeExprID means void
}

type TypeExprs struct {
	Arena *Arena[TypeExpr]

	Idents     *Arena[TypeExprIdentData]
	References *Arena[TypeExprReferenceData]
	Pointers   *Arena[TypeExprPointerData]
	Arrays     *Arena[TypeExprArrayData]
	Slices     *Arena[TypeExprSliceData]
	Tuples     *Arena[TypeExprTupleData]
	Optionals  *Arena[TypeExprOptionalData]
	Functions  *Arena[TypeExprFunctionData]
}

func NewTypeExprs(capHint uint) *TypeExprs {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &TypeExprs{
		Arena:      NewArena[TypeExpr](capHint),
		Idents:     NewArena[TypeExprIdentData](capHint),
		References: NewArena[TypeExprReferenceData](capHint / 4),
		Pointers:   NewArena[TypeExprPointerData](capHint / 8),
		Arrays:     NewArena[TypeExprArrayData](capHint / 8),
		Slices:     NewArena[TypeExprSliceData](capHint / 8),
		Tuples:     NewArena[TypeExprTupleData](capHint / 8),
		Optionals:  NewArena[TypeExprOptionalData](capHint / 8),
		Functions:  NewArena[TypeExprFunctionData](capHint / 16),
	}
}

func (t *TypeExprs) new(kind TypeExprKind, span source.Span, payload PayloadID) TypeExprID {
	return TypeExprID(t.Arena.Allocate(TypeExpr{Kind: kind, Span: span, Payload: payload}))
}

func (t *TypeExprs) Get(id TypeExprID) *TypeExpr { return t.Arena.Get(uint32(id)) }

func (t *TypeExprs) SetResolved(id TypeExprID, resolved types.TypeID) {
	if n := t.Get(id); n != nil {
		n.Resolved = resolved
	}
}

func (t *TypeExprs) NewIdent(span source.Span, name source.StringID, args []TypeExprID) TypeExprID {
	data := TypeExprIdentData{Name: name, Args: append([]TypeExprID(nil), args...)}
	return t.new(TypeExprIdent, span, PayloadID(t.Idents.Allocate(data)))
}
func (t *TypeExprs) Ident(id TypeExprID) (*TypeExprIdentData, bool) {
	n := t.Get(id)
	if n == nil || n.Kind != TypeExprIdent {
		return nil, false
	}
	return t.Idents.Get(uint32(n.Payload)), true
}

func (t *TypeExprs) NewReference(span source.Span, mutable bool, pointee TypeExprID) TypeExprID {
	data := TypeExprReferenceData{Mutable: mutable, Pointee: pointee}
	return t.new(TypeExprReference, span, PayloadID(t.References.Allocate(data)))
}
func (t *TypeExprs) Reference(id TypeExprID) (*TypeExprReferenceData, bool) {
	n := t.Get(id)
	if n == nil || n.Kind != TypeExprReference {
		return nil, false
	}
	return t.References.Get(uint32(n.Payload)), true
}

func (t *TypeExprs) NewPointer(span source.Span, mutable bool, pointee TypeExprID) TypeExprID {
	data := TypeExprPointerData{Mutable: mutable, Pointee: pointee}
	return t.new(TypeExprPointer, span, PayloadID(t.Pointers.Allocate(data)))
}
func (t *TypeExprs) Pointer(id TypeExprID) (*TypeExprPointerData, bool) {
	n := t.Get(id)
	if n == nil || n.Kind != TypeExprPointer {
		return nil, false
	}
	return t.Pointers.Get(uint32(n.Payload)), true
}

func (t *TypeExprs) NewArray(span source.Span, elem TypeExprID, size ExprID) TypeExprID {
	data := TypeExprArrayData{Elem: elem, Size: size}
	return t.new(TypeExprArray, span, PayloadID(t.Arrays.Allocate(data)))
}
func (t *TypeExprs) Array(id TypeExprID) (*TypeExprArrayData, bool) {
	n := t.Get(id)
	if n == nil || n.Kind != TypeExprArray {
		return nil, false
	}
	return t.Arrays.Get(uint32(n.Payload)), true
}

func (t *TypeExprs) NewSlice(span source.Span, elem TypeExprID, mutable bool) TypeExprID {
	data := TypeExprSliceData{Elem: elem, Mutable: mutable}
	return t.new(TypeExprSlice, span, PayloadID(t.Slices.Allocate(data)))
}
func (t *TypeExprs) Slice(id TypeExprID) (*TypeExprSliceData, bool) {
	n := t.Get(id)
	if n == nil || n.Kind != TypeExprSlice {
		return nil, false
	}
	return t.Slices.Get(uint32(n.Payload)), true
}

func (t *TypeExprs) NewTuple(span source.Span, elems []TypeExprID) TypeExprID {
	data := TypeExprTupleData{Elems: append([]TypeExprID(nil), elems...)}
	return t.new(TypeExprTuple, span, PayloadID(t.Tuples.Allocate(data)))
}
func (t *TypeExprs) Tuple(id TypeExprID) (*TypeExprTupleData, bool) {
	n := t.Get(id)
	if n == nil || n.Kind != TypeExprTuple {
		return nil, false
	}
	return t.Tuples.Get(uint32(n.Payload)), true
}

func (t *TypeExprs) NewOptional(span source.Span, inner TypeExprID) TypeExprID {
	data := TypeExprOptionalData{Inner: inner}
	return t.new(TypeExprOptional, span, PayloadID(t.Optionals.Allocate(data)))
}
func (t *TypeExprs) Optional(id TypeExprID) (*TypeExprOptionalData, bool) {
	n := t.Get(id)
	if n == nil || n.Kind != TypeExprOptional {
		return nil, false
	}
	return t.Optionals.Get(uint32(n.Payload)), true
}

func (t *TypeExprs) NewFunction(span source.Span, params []TypeExprID, ret TypeExprID) TypeExprID {
	data := TypeExprFunctionData{Params: append([]TypeExprID(nil), params...), Return: ret}
	return t.new(TypeExprFunction, span, PayloadID(t.Functions.Allocate(data)))
}
func (t *TypeExprs) Function(id TypeExprID) (*TypeExprFunctionData, bool) {
	n := t.Get(id)
	if n == nil || n.Kind != TypeExprFunction {
		return nil, false
	}
	return t.Functions.Get(uint32(n.Payload)), true
}
