package ast

import (
	"yuanc/internal/source"
	"yuanc/internal/types"
)

// DeclKind tags the variant stored in a Decl's Payload arena.
type DeclKind uint8

const (
	DeclVar DeclKind = iota
	DeclConst
	DeclFunc
	DeclStruct
	DeclEnum
	DeclTypeAlias
	DeclTrait
	DeclImpl
)

// Visibility is shared by every declaration kind that spec §3 says carries one.
type Visibility uint8

const (
	VisPriv Visibility = iota
	VisPub
	VisInternal
)

// Decl is the uniform node shape for every declaration kind; the concrete
// fields live in the per-kind Data struct reached through Payload.
type Decl struct {
	Kind    DeclKind
	Span    source.Span
	Payload PayloadID
	Type    types.TypeID // the declared entity's own type, once Sema resolves it
}

// PayloadID indexes into whichever per-kind arena a node's Kind selects.
type PayloadID uint32

// NoPayloadID marks a node kind that carries no extra payload (e.g. ExprNone).
const NoPayloadID PayloadID = 0

// ParamKind classifies a function parameter per spec §3.
type ParamKind uint8

const (
	ParamNormal ParamKind = iota
	ParamSelf
	ParamRefSelf
	ParamMutRefSelf
	ParamVariadic
)

// Param is a function parameter; it is not itself a Decl (it never appears
// standalone), but is addressed by ParamID from FuncDeclData.
type Param struct {
	Name      source.StringID
	Span      source.Span
	Type      TypeExprID
	Default   ExprID // NoExprID if absent
	Mutable   bool
	Kind      ParamKind
	ResolvedType types.TypeID
}

// GenericParam is a declared type parameter with optional trait bounds.
type GenericParam struct {
	Name   source.StringID
	Span   source.Span
	Bounds []source.StringID // named trait bounds, resolved later by Sema
}

type VarDeclData struct {
	Name       source.StringID
	Annotation TypeExprID // NoTypeExprID if omitted
	Init       ExprID     // NoExprID if omitted
	Pattern    PatternID  // NoPatternID unless a destructuring pattern is used
	Mutable    bool
	Vis        Visibility
}

type ConstDeclData struct {
	Name       source.StringID
	Annotation TypeExprID
	Init       ExprID
	Vis        Visibility
}

type FuncDeclData struct {
	Name       source.StringID
	Params     []ParamID
	ReturnType TypeExprID // NoTypeExprID means void
	Body       StmtID     // NoStmtID for a declaration-only (extern) function
	Async      bool
	ErrorRet   bool // declared with `-> T!` / raises an ErrorType
	Vis        Visibility
	Generics   []GenericParamID
	LinkName   string // optional external link name, "" if absent
}

type FieldDeclData struct {
	Name source.StringID
	Span source.Span
	Type TypeExprID
	Vis  Visibility
}

type StructDeclData struct {
	Name     source.StringID
	Fields   []FieldID
	Vis      Visibility
	Generics []GenericParamID
}

// EnumVariantKind distinguishes the three variant payload shapes.
type EnumVariantKind uint8

const (
	VariantUnit EnumVariantKind = iota
	VariantTuple
	VariantStruct
)

type EnumVariantDeclData struct {
	Name         source.StringID
	Span         source.Span
	Kind         EnumVariantKind
	TupleFields  []TypeExprID // VariantTuple
	StructFields []FieldID    // VariantStruct
	Discriminant ExprID       // NoExprID unless explicit
}

type EnumDeclData struct {
	Name     source.StringID
	Variants []VariantID
	Vis      Visibility
	Generics []GenericParamID
}

type TypeAliasDeclData struct {
	Name     source.StringID
	Aliased  TypeExprID // NoTypeExprID for an abstract associated-type declaration
	Vis      Visibility
	Generics []GenericParamID
}

type TraitDeclData struct {
	Name        source.StringID
	Methods     []DeclID // FuncDecl nodes, body optional (default methods unsupported, spec 3041)
	AssocTypes  []DeclID // TypeAliasDecl nodes with Aliased == NoTypeExprID
	SuperTraits []source.StringID
	Generics    []GenericParamID
	Vis         Visibility
}

type ImplDeclData struct {
	Target     TypeExprID
	TraitName  source.StringID // zero StringID if this is an inherent impl
	HasTrait   bool
	Methods    []DeclID
	AssocTypes []DeclID
	Generics   []GenericParamID
}

// Decls owns every declaration node and its per-kind payload data.
type Decls struct {
	Arena *Arena[Decl]

	Vars        *Arena[VarDeclData]
	Consts      *Arena[ConstDeclData]
	Funcs       *Arena[FuncDeclData]
	Structs     *Arena[StructDeclData]
	Enums       *Arena[EnumDeclData]
	TypeAliases *Arena[TypeAliasDeclData]
	Traits      *Arena[TraitDeclData]
	Impls       *Arena[ImplDeclData]

	Params   *Arena[Param]
	Fields   *Arena[FieldDeclData]
	Variants *Arena[EnumVariantDeclData]
	Generics *Arena[GenericParam]
}

func NewDecls(capHint uint) *Decls {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Decls{
		Arena:       NewArena[Decl](capHint),
		Vars:        NewArena[VarDeclData](capHint),
		Consts:      NewArena[ConstDeclData](capHint),
		Funcs:       NewArena[FuncDeclData](capHint),
		Structs:     NewArena[StructDeclData](capHint),
		Enums:       NewArena[EnumDeclData](capHint),
		TypeAliases: NewArena[TypeAliasDeclData](capHint),
		Traits:      NewArena[TraitDeclData](capHint),
		Impls:       NewArena[ImplDeclData](capHint),
		Params:      NewArena[Param](capHint),
		Fields:      NewArena[FieldDeclData](capHint),
		Variants:    NewArena[EnumVariantDeclData](capHint),
		Generics:    NewArena[GenericParam](capHint),
	}
}

func (d *Decls) new(kind DeclKind, span source.Span, payload PayloadID) DeclID {
	return DeclID(d.Arena.Allocate(Decl{Kind: kind, Span: span, Payload: payload}))
}

func (d *Decls) Get(id DeclID) *Decl { return d.Arena.Get(uint32(id)) }

func (d *Decls) NewVar(span source.Span, data VarDeclData) DeclID {
	return d.new(DeclVar, span, PayloadID(d.Vars.Allocate(data)))
}
func (d *Decls) Var(id DeclID) (*VarDeclData, bool) {
	n := d.Get(id)
	if n == nil || n.Kind != DeclVar {
		return nil, false
	}
	return d.Vars.Get(uint32(n.Payload)), true
}

func (d *Decls) NewConst(span source.Span, data ConstDeclData) DeclID {
	return d.new(DeclConst, span, PayloadID(d.Consts.Allocate(data)))
}
func (d *Decls) Const(id DeclID) (*ConstDeclData, bool) {
	n := d.Get(id)
	if n == nil || n.Kind != DeclConst {
		return nil, false
	}
	return d.Consts.Get(uint32(n.Payload)), true
}

func (d *Decls) NewFunc(span source.Span, data FuncDeclData) DeclID {
	return d.new(DeclFunc, span, PayloadID(d.Funcs.Allocate(data)))
}
func (d *Decls) Func(id DeclID) (*FuncDeclData, bool) {
	n := d.Get(id)
	if n == nil || n.Kind != DeclFunc {
		return nil, false
	}
	return d.Funcs.Get(uint32(n.Payload)), true
}

func (d *Decls) NewStruct(span source.Span, data StructDeclData) DeclID {
	return d.new(DeclStruct, span, PayloadID(d.Structs.Allocate(data)))
}
func (d *Decls) Struct(id DeclID) (*StructDeclData, bool) {
	n := d.Get(id)
	if n == nil || n.Kind != DeclStruct {
		return nil, false
	}
	return d.Structs.Get(uint32(n.Payload)), true
}

func (d *Decls) NewEnum(span source.Span, data EnumDeclData) DeclID {
	return d.new(DeclEnum, span, PayloadID(d.Enums.Allocate(data)))
}
func (d *Decls) Enum(id DeclID) (*EnumDeclData, bool) {
	n := d.Get(id)
	if n == nil || n.Kind != DeclEnum {
		return nil, false
	}
	return d.Enums.Get(uint32(n.Payload)), true
}

func (d *Decls) NewTypeAlias(span source.Span, data TypeAliasDeclData) DeclID {
	return d.new(DeclTypeAlias, span, PayloadID(d.TypeAliases.Allocate(data)))
}
func (d *Decls) TypeAlias(id DeclID) (*TypeAliasDeclData, bool) {
	n := d.Get(id)
	if n == nil || n.Kind != DeclTypeAlias {
		return nil, false
	}
	return d.TypeAliases.Get(uint32(n.Payload)), true
}

func (d *Decls) NewTrait(span source.Span, data TraitDeclData) DeclID {
	return d.new(DeclTrait, span, PayloadID(d.Traits.Allocate(data)))
}
func (d *Decls) Trait(id DeclID) (*TraitDeclData, bool) {
	n := d.Get(id)
	if n == nil || n.Kind != DeclTrait {
		return nil, false
	}
	return d.Traits.Get(uint32(n.Payload)), true
}

func (d *Decls) NewImpl(span source.Span, data ImplDeclData) DeclID {
	return d.new(DeclImpl, span, PayloadID(d.Impls.Allocate(data)))
}
func (d *Decls) Impl(id DeclID) (*ImplDeclData, bool) {
	n := d.Get(id)
	if n == nil || n.Kind != DeclImpl {
		return nil, false
	}
	return d.Impls.Get(uint32(n.Payload)), true
}

func (d *Decls) NewParam(p Param) ParamID             { return ParamID(d.Params.Allocate(p)) }
func (d *Decls) Param(id ParamID) *Param               { return d.Params.Get(uint32(id)) }
func (d *Decls) NewField(f FieldDeclData) FieldID       { return FieldID(d.Fields.Allocate(f)) }
func (d *Decls) Field(id FieldID) *FieldDeclData        { return d.Fields.Get(uint32(id)) }
func (d *Decls) NewVariant(v EnumVariantDeclData) VariantID {
	return VariantID(d.Variants.Allocate(v))
}
func (d *Decls) Variant(id VariantID) *EnumVariantDeclData { return d.Variants.Get(uint32(id)) }
func (d *Decls) NewGeneric(g GenericParam) GenericParamID  { return GenericParamID(d.Generics.Allocate(g)) }
func (d *Decls) Generic(id GenericParamID) *GenericParam   { return d.Generics.Get(uint32(id)) }
