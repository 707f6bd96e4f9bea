package ast

import (
	"yuanc/internal/source"
	"yuanc/internal/types"
)

type PatternKind uint8

const (
	PatternWildcard PatternKind = iota
	PatternIdent
	PatternLiteral
	PatternTuple
	PatternStruct
	PatternEnumVariant
	PatternRange
	PatternOr
	PatternBind
)

type Pattern struct {
	Kind     PatternKind
	Span     source.Span
	Payload  PayloadID
	Resolved types.TypeID
}

type PatternIdentData struct {
	Name       source.StringID
	Mutable    bool
	Annotation TypeExprID // NoTypeExprID if omitted
}

type PatternLiteralData struct {
	Literal ExprID // an ExprLiteral or ExprNone node
}

type PatternTupleData struct {
	Elems []PatternID
}

// PatternStructField is one `name: pattern` entry; Shorthand marks a bare
// `name` field pattern binding a variable of the same name.
type PatternStructField struct {
	Name      source.StringID
	Pattern   PatternID
	Shorthand bool
}

type PatternStructData struct {
	Type   TypeExprID
	Fields []PatternStructField
	Rest   bool // true when a trailing `..` is present
}

// PatternEnumVariantData matches `Enum.Variant(payload...)` or `Enum.Variant { fields }`.
type PatternEnumVariantData struct {
	EnumName    source.StringID // zero StringID if the variant is unqualified
	VariantName source.StringID
	TuplePats   []PatternID          // for a tuple-payload variant
	StructPats  []PatternStructField // for a struct-payload variant
	Rest        bool
}

type PatternRangeData struct {
	Low, High ExprID
	Inclusive bool
}

type PatternOrData struct {
	Alternatives []PatternID
}

type PatternBindData struct {
	Name    source.StringID
	Mutable bool
	Inner   PatternID
}

type Patterns struct {
	Arena *Arena[Pattern]

	Idents       *Arena[PatternIdentData]
	Literals     *Arena[PatternLiteralData]
	Tuples       *Arena[PatternTupleData]
	Structs      *Arena[PatternStructData]
	EnumVariants *Arena[PatternEnumVariantData]
	Ranges       *Arena[PatternRangeData]
	Ors          *Arena[PatternOrData]
	Binds        *Arena[PatternBindData]
}

func NewPatterns(capHint uint) *Patterns {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Patterns{
		Arena:        NewArena[Pattern](capHint),
		Idents:       NewArena[PatternIdentData](capHint),
		Literals:     NewArena[PatternLiteralData](capHint / 2),
		Tuples:       NewArena[PatternTupleData](capHint / 4),
		Structs:      NewArena[PatternStructData](capHint / 4),
		EnumVariants: NewArena[PatternEnumVariantData](capHint / 4),
		Ranges:       NewArena[PatternRangeData](capHint / 8),
		Ors:          NewArena[PatternOrData](capHint / 8),
		Binds:        NewArena[PatternBindData](capHint / 8),
	}
}

func (p *Patterns) new(kind PatternKind, span source.Span, payload PayloadID) PatternID {
	return PatternID(p.Arena.Allocate(Pattern{Kind: kind, Span: span, Payload: payload}))
}

func (p *Patterns) Get(id PatternID) *Pattern { return p.Arena.Get(uint32(id)) }

func (p *Patterns) NewWildcard(span source.Span) PatternID {
	return p.new(PatternWildcard, span, NoPayloadID)
}

func (p *Patterns) NewIdent(span source.Span, data PatternIdentData) PatternID {
	return p.new(PatternIdent, span, PayloadID(p.Idents.Allocate(data)))
}
func (p *Patterns) Ident(id PatternID) (*PatternIdentData, bool) {
	n := p.Get(id)
	if n == nil || n.Kind != PatternIdent {
		return nil, false
	}
	return p.Idents.Get(uint32(n.Payload)), true
}

func (p *Patterns) NewLiteral(span source.Span, lit ExprID) PatternID {
	return p.new(PatternLiteral, span, PayloadID(p.Literals.Allocate(PatternLiteralData{Literal: lit})))
}
func (p *Patterns) Literal(id PatternID) (*PatternLiteralData, bool) {
	n := p.Get(id)
	if n == nil || n.Kind != PatternLiteral {
		return nil, false
	}
	return p.Literals.Get(uint32(n.Payload)), true
}

func (p *Patterns) NewTuple(span source.Span, elems []PatternID) PatternID {
	data := PatternTupleData{Elems: append([]PatternID(nil), elems...)}
	return p.new(PatternTuple, span, PayloadID(p.Tuples.Allocate(data)))
}
func (p *Patterns) Tuple(id PatternID) (*PatternTupleData, bool) {
	n := p.Get(id)
	if n == nil || n.Kind != PatternTuple {
		return nil, false
	}
	return p.Tuples.Get(uint32(n.Payload)), true
}

func (p *Patterns) NewStruct(span source.Span, typ TypeExprID, fields []PatternStructField, rest bool) PatternID {
	data := PatternStructData{Type: typ, Fields: append([]PatternStructField(nil), fields...), Rest: rest}
	return p.new(PatternStruct, span, PayloadID(p.Structs.Allocate(data)))
}
func (p *Patterns) Struct(id PatternID) (*PatternStructData, bool) {
	n := p.Get(id)
	if n == nil || n.Kind != PatternStruct {
		return nil, false
	}
	return p.Structs.Get(uint32(n.Payload)), true
}

func (p *Patterns) NewEnumVariant(span source.Span, data PatternEnumVariantData) PatternID {
	return p.new(PatternEnumVariant, span, PayloadID(p.EnumVariants.Allocate(data)))
}
func (p *Patterns) EnumVariant(id PatternID) (*PatternEnumVariantData, bool) {
	n := p.Get(id)
	if n == nil || n.Kind != PatternEnumVariant {
		return nil, false
	}
	return p.EnumVariants.Get(uint32(n.Payload)), true
}

func (p *Patterns) NewRange(span source.Span, low, high ExprID, inclusive bool) PatternID {
	data := PatternRangeData{Low: low, High: high, Inclusive: inclusive}
	return p.new(PatternRange, span, PayloadID(p.Ranges.Allocate(data)))
}
func (p *Patterns) Range(id PatternID) (*PatternRangeData, bool) {
	n := p.Get(id)
	if n == nil || n.Kind != PatternRange {
		return nil, false
	}
	return p.Ranges.Get(uint32(n.Payload)), true
}

func (p *Patterns) NewOr(span source.Span, alts []PatternID) PatternID {
	data := PatternOrData{Alternatives: append([]PatternID(nil), alts...)}
	return p.new(PatternOr, span, PayloadID(p.Ors.Allocate(data)))
}
func (p *Patterns) Or(id PatternID) (*PatternOrData, bool) {
	n := p.Get(id)
	if n == nil || n.Kind != PatternOr {
		return nil, false
	}
	return p.Ors.Get(uint32(n.Payload)), true
}

func (p *Patterns) NewBind(span source.Span, name source.StringID, mutable bool, inner PatternID) PatternID {
	data := PatternBindData{Name: name, Mutable: mutable, Inner: inner}
	return p.new(PatternBind, span, PayloadID(p.Binds.Allocate(data)))
}
func (p *Patterns) Bind(id PatternID) (*PatternBindData, bool) {
	n := p.Get(id)
	if n == nil || n.Kind != PatternBind {
		return nil, false
	}
	return p.Binds.Get(uint32(n.Payload)), true
}
