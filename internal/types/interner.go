package types

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

// Builtins holds the TypeIDs for the primitives every program can use
// without declaring them, resolved once at interner construction.
type Builtins struct {
	Void   TypeID
	Bool   TypeID
	Char   TypeID
	String TypeID

	I8, I16, I32, I64, I128, Isize TypeID
	U8, U16, U32, U64, U128, Usize TypeID
	F32, F64                       TypeID
}

// Interner is the AST context's canonical-type store: structural types
// (arrays, tuples, optionals, references, pointers, functions, generic
// instances) are hash-consed by content; nominal types (struct, enum,
// alias, generic parameter) are allocated once per declaration and never
// deduplicated against each other, since their identity IS their declaration.
type Interner struct {
	types []Type
	index map[string]TypeID

	structs          []StructInfo
	enums            []EnumInfo
	aliases          []AliasInfo
	tuples           []TupleInfo
	funcs            []FuncInfo
	generics         []GenericInfo
	genericInstances []GenericInstanceInfo

	builtins   Builtins
	pointerWidth Width // configured by the driver prior to Sema; governs isize/usize

	copyTypes map[TypeID]struct{}
}

// NewInterner constructs an interner seeded with every builtin primitive.
// pointerWidth records the width isize/usize stand for (Width32 or
// Width64), which PointerWidth reports; their Type itself carries
// WidthPointer, and there is no setter.
func NewInterner(pointerWidth Width) *Interner {
	in := &Interner{
		index:        make(map[string]TypeID, 256),
		pointerWidth: pointerWidth,
	}
	in.structs = append(in.structs, StructInfo{})
	in.enums = append(in.enums, EnumInfo{})
	in.aliases = append(in.aliases, AliasInfo{})
	in.tuples = append(in.tuples, TupleInfo{})
	in.funcs = append(in.funcs, FuncInfo{})
	in.generics = append(in.generics, GenericInfo{})
	in.genericInstances = append(in.genericInstances, GenericInstanceInfo{})

	in.builtins.Void = in.Intern(Type{Kind: KindVoid})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.Char = in.Intern(Type{Kind: KindChar})
	in.builtins.String = in.Intern(Type{Kind: KindString})
	in.builtins.I8 = in.Intern(MakeInteger(Width8, true))
	in.builtins.I16 = in.Intern(MakeInteger(Width16, true))
	in.builtins.I32 = in.Intern(MakeInteger(Width32, true))
	in.builtins.I64 = in.Intern(MakeInteger(Width64, true))
	in.builtins.I128 = in.Intern(MakeInteger(Width128, true))
	in.builtins.Isize = in.Intern(MakeInteger(WidthPointer, true))
	in.builtins.U8 = in.Intern(MakeInteger(Width8, false))
	in.builtins.U16 = in.Intern(MakeInteger(Width16, false))
	in.builtins.U32 = in.Intern(MakeInteger(Width32, false))
	in.builtins.U64 = in.Intern(MakeInteger(Width64, false))
	in.builtins.U128 = in.Intern(MakeInteger(Width128, false))
	in.builtins.Usize = in.Intern(MakeInteger(WidthPointer, false))
	in.builtins.F32 = in.Intern(MakeFloat(Width32))
	in.builtins.F64 = in.Intern(MakeFloat(Width64))
	for _, id := range []TypeID{
		in.builtins.Bool, in.builtins.Char,
		in.builtins.I8, in.builtins.I16, in.builtins.I32, in.builtins.I64, in.builtins.I128, in.builtins.Isize,
		in.builtins.U8, in.builtins.U16, in.builtins.U32, in.builtins.U64, in.builtins.U128, in.builtins.Usize,
		in.builtins.F32, in.builtins.F64, in.builtins.Void,
	} {
		in.MarkCopyType(id)
	}
	return in
}

func (in *Interner) Builtins() Builtins { return in.builtins }

// PointerWidth reports the driver-configured width isize/usize resolve to.
func (in *Interner) PointerWidth() Width { return in.pointerWidth }

func (in *Interner) structuralKey(t Type) string {
	var b strings.Builder
	b.WriteByte(byte(t.Kind))
	b.WriteByte(':')
	b.WriteString(strconv.FormatUint(uint64(t.Elem), 10))
	b.WriteByte(',')
	b.WriteString(strconv.FormatUint(uint64(t.Count), 10))
	b.WriteByte(',')
	b.WriteString(strconv.FormatUint(uint64(t.Width), 10))
	b.WriteByte(',')
	if t.Signed {
		b.WriteByte('s')
	}
	if t.Mutable {
		b.WriteByte('m')
	}
	b.WriteByte(',')
	b.WriteString(strconv.FormatUint(uint64(t.Name), 10))
	b.WriteByte(',')
	b.WriteString(strconv.FormatUint(uint64(t.Payload), 10))
	return b.String()
}

// Intern hash-conses a structural Type descriptor. Nominal kinds (Struct,
// Enum, TypeAlias, Generic) should instead go through NewStruct/NewEnum/
// NewAlias/NewGeneric, which never dedup against each other.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := in.structuralKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t, key)
}

func (in *Interner) internRaw(t Type, key string) TypeID {
	n, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("types: interner overflow: %w", err))
	}
	id := TypeID(n)
	in.types = append(in.types, t)
	in.index[key] = id
	return id
}

// Lookup returns the descriptor for id.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics if id is not a valid, previously interned TypeID.
func (in *Interner) MustLookup(id TypeID) Type {
	t, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return t
}

// NewStruct allocates a fresh nominal struct type; it is never deduplicated
// against another struct, even one with identical fields.
func (in *Interner) NewStruct(info StructInfo) TypeID {
	idx, err := safecast.Conv[uint32](len(in.structs))
	if err != nil {
		panic(fmt.Errorf("types: struct table overflow: %w", err))
	}
	in.structs = append(in.structs, info)
	return in.internRaw(Type{Kind: KindStruct, Name: uint32(info.Name), Payload: idx}, fmt.Sprintf("struct#%d", idx))
}

func (in *Interner) Struct(id TypeID) (*StructInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindStruct {
		return nil, false
	}
	return &in.structs[t.Payload], true
}

// SetStructFields fills in a struct type's fields after declaration
// collection, once field type expressions are resolvable (a struct may
// reference a type declared later in the same file).
func (in *Interner) SetStructFields(id TypeID, fields []StructField) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindStruct {
		return
	}
	in.structs[t.Payload].Fields = fields
}

// NewEnum allocates a fresh nominal enum type.
func (in *Interner) NewEnum(info EnumInfo) TypeID {
	idx, err := safecast.Conv[uint32](len(in.enums))
	if err != nil {
		panic(fmt.Errorf("types: enum table overflow: %w", err))
	}
	in.enums = append(in.enums, info)
	return in.internRaw(Type{Kind: KindEnum, Name: uint32(info.Name), Payload: idx}, fmt.Sprintf("enum#%d", idx))
}

func (in *Interner) Enum(id TypeID) (*EnumInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindEnum {
		return nil, false
	}
	return &in.enums[t.Payload], true
}

// SetEnumVariants fills in an enum type's variants after declaration
// collection, for the same forward-reference reason as SetStructFields.
func (in *Interner) SetEnumVariants(id TypeID, variants []EnumVariantInfo) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindEnum {
		return
	}
	in.enums[t.Payload].Variants = variants
}

// NewAlias allocates a fresh type-alias type.
func (in *Interner) NewAlias(info AliasInfo) TypeID {
	idx, err := safecast.Conv[uint32](len(in.aliases))
	if err != nil {
		panic(fmt.Errorf("types: alias table overflow: %w", err))
	}
	in.aliases = append(in.aliases, info)
	return in.internRaw(Type{Kind: KindTypeAlias, Name: uint32(info.Name), Payload: idx}, fmt.Sprintf("alias#%d", idx))
}

func (in *Interner) Alias(id TypeID) (*AliasInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindTypeAlias {
		return nil, false
	}
	return &in.aliases[t.Payload], true
}

// SetAliasTarget fills in a type alias's aliased type once it is resolvable.
func (in *Interner) SetAliasTarget(id TypeID, aliased TypeID) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindTypeAlias {
		return
	}
	in.aliases[t.Payload].Aliased = aliased
}

// NewGeneric allocates a fresh generic-parameter type.
func (in *Interner) NewGeneric(info GenericInfo) TypeID {
	idx, err := safecast.Conv[uint32](len(in.generics))
	if err != nil {
		panic(fmt.Errorf("types: generic table overflow: %w", err))
	}
	in.generics = append(in.generics, info)
	return in.internRaw(Type{Kind: KindGeneric, Name: uint32(info.Name), Payload: idx}, fmt.Sprintf("generic#%d", idx))
}

func (in *Interner) Generic(id TypeID) (*GenericInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindGeneric {
		return nil, false
	}
	return &in.generics[t.Payload], true
}

// InternTuple hash-conses a tuple type by its ordered element types.
func (in *Interner) InternTuple(elems []TypeID) TypeID {
	key := tupleKey(elems)
	if id, ok := in.index[key]; ok {
		return id
	}
	idx, err := safecast.Conv[uint32](len(in.tuples))
	if err != nil {
		panic(fmt.Errorf("types: tuple table overflow: %w", err))
	}
	in.tuples = append(in.tuples, TupleInfo{Elems: append([]TypeID(nil), elems...)})
	return in.internRaw(Type{Kind: KindTuple, Payload: idx, Count: uint32(len(elems))}, key)
}

func tupleKey(elems []TypeID) string {
	var b strings.Builder
	b.WriteString("tuple:")
	for i, e := range elems {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(e), 10))
	}
	return b.String()
}

func (in *Interner) Tuple(id TypeID) (*TupleInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindTuple {
		return nil, false
	}
	return &in.tuples[t.Payload], true
}

// InternFunction hash-conses a function type by its signature.
func (in *Interner) InternFunction(params []TypeID, ret TypeID, variadic bool) TypeID {
	key := funcKey(params, ret, variadic)
	if id, ok := in.index[key]; ok {
		return id
	}
	idx, err := safecast.Conv[uint32](len(in.funcs))
	if err != nil {
		panic(fmt.Errorf("types: function table overflow: %w", err))
	}
	in.funcs = append(in.funcs, FuncInfo{Params: append([]TypeID(nil), params...), Return: ret, Variadic: variadic})
	return in.internRaw(Type{Kind: KindFunction, Payload: idx, Elem: ret, Count: uint32(len(params))}, key)
}

func funcKey(params []TypeID, ret TypeID, variadic bool) string {
	var b strings.Builder
	b.WriteString("fn:")
	for _, p := range params {
		b.WriteString(strconv.FormatUint(uint64(p), 10))
		b.WriteByte(',')
	}
	b.WriteString("->")
	b.WriteString(strconv.FormatUint(uint64(ret), 10))
	if variadic {
		b.WriteString(",variadic")
	}
	return b.String()
}

func (in *Interner) Function(id TypeID) (*FuncInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindFunction {
		return nil, false
	}
	return &in.funcs[t.Payload], true
}

// InternGenericInstance hash-conses a concrete instantiation of a generic base.
func (in *Interner) InternGenericInstance(base TypeID, args []TypeID) TypeID {
	key := genericInstanceKey(base, args)
	if id, ok := in.index[key]; ok {
		return id
	}
	idx, err := safecast.Conv[uint32](len(in.genericInstances))
	if err != nil {
		panic(fmt.Errorf("types: generic-instance table overflow: %w", err))
	}
	in.genericInstances = append(in.genericInstances, GenericInstanceInfo{Base: base, Args: append([]TypeID(nil), args...)})
	return in.internRaw(Type{Kind: KindGenericInstance, Payload: idx, Elem: base, Count: uint32(len(args))}, key)
}

func genericInstanceKey(base TypeID, args []TypeID) string {
	var b strings.Builder
	b.WriteString("inst:")
	b.WriteString(strconv.FormatUint(uint64(base), 10))
	for _, a := range args {
		b.WriteByte(',')
		b.WriteString(strconv.FormatUint(uint64(a), 10))
	}
	return b.String()
}

func (in *Interner) GenericInstance(id TypeID) (*GenericInstanceInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindGenericInstance {
		return nil, false
	}
	return &in.genericInstances[t.Payload], true
}

// IsCopy reports whether values of type id are implicitly copied rather
// than moved, per spec §4.7's Copy rule.
func (in *Interner) IsCopy(id TypeID) bool {
	if id == NoTypeID {
		return false
	}
	if _, ok := in.copyTypes[id]; ok {
		return true
	}
	t, ok := in.Lookup(id)
	if !ok {
		return false
	}
	switch t.Kind {
	case KindBool, KindChar, KindInteger, KindFloat, KindVoid:
		return true
	case KindPointer:
		return true
	case KindReference:
		return !t.Mutable
	case KindTuple:
		info, _ := in.Tuple(id)
		for _, e := range info.Elems {
			if !in.IsCopy(e) {
				return false
			}
		}
		return true
	case KindStruct:
		info, _ := in.Struct(id)
		for _, f := range info.Fields {
			if !in.IsCopy(f.Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// MarkCopyType records id as a Copy type; NewInterner marks every scalar
// builtin this way.
func (in *Interner) MarkCopyType(id TypeID) {
	if id == NoTypeID {
		return
	}
	if in.copyTypes == nil {
		in.copyTypes = make(map[TypeID]struct{}, 64)
	}
	in.copyTypes[id] = struct{}{}
}

// UnwrapAliases follows TypeAlias chains to the underlying type, per
// invariant 3: aliases are transparent to structural queries.
func (in *Interner) UnwrapAliases(id TypeID) TypeID {
	seen := map[TypeID]struct{}{}
	for {
		t, ok := in.Lookup(id)
		if !ok || t.Kind != KindTypeAlias {
			return id
		}
		if _, loop := seen[id]; loop {
			return id // recursive alias; Sema reports err 3018 separately
		}
		seen[id] = struct{}{}
		info, _ := in.Alias(id)
		if info.Aliased == NoTypeID {
			return id // abstract associated type: nothing further to unwrap
		}
		id = info.Aliased
	}
}
