package types

import "yuanc/internal/source"

// StructField is one ordered, named field of a Struct type. Offset is left
// at 0; no pass computes struct layouts.
type StructField struct {
	Name   source.StringID
	Type   TypeID
	Offset uint32
}

// StructInfo backs a Kind == KindStruct Type's Payload.
type StructInfo struct {
	Name   source.StringID
	Fields []StructField
}

// EnumVariantInfo is one ordered variant of an Enum type: unit variants
// carry NoTypeID as Payload, others point at a Tuple or Struct payload type.
type EnumVariantInfo struct {
	Name    source.StringID
	Payload TypeID // NoTypeID for a unit variant
}

// EnumInfo backs a Kind == KindEnum Type's Payload.
type EnumInfo struct {
	Name     source.StringID
	Variants []EnumVariantInfo
}

// AliasInfo backs a Kind == KindTypeAlias Type's Payload. Aliased is
// NoTypeID for an abstract associated-type declaration.
type AliasInfo struct {
	Name    source.StringID
	Aliased TypeID
}

// TupleInfo backs a Kind == KindTuple Type's Payload.
type TupleInfo struct {
	Elems []TypeID
}

// FuncInfo backs a Kind == KindFunction Type's Payload.
type FuncInfo struct {
	Params   []TypeID
	Return   TypeID
	Variadic bool
}

// GenericInfo backs a Kind == KindGeneric Type's Payload: a declared type
// parameter together with the trait names it is bound by.
type GenericInfo struct {
	Name   source.StringID
	Bounds []source.StringID
}

// GenericInstanceInfo backs a Kind == KindGenericInstance Type's Payload:
// a concrete instantiation of a generic base type (e.g. List<i32>).
type GenericInstanceInfo struct {
	Base TypeID
	Args []TypeID
}
