package ast

import (
	"yuanc/internal/source"
	"yuanc/internal/types"
)

type ExprKind uint8

const (
	ExprLiteral ExprKind = iota
	ExprNone                // the `None` literal
	ExprIdent
	ExprBinary
	ExprUnary
	ExprAssign
	ExprCall
	ExprBuiltinCall
	ExprMember
	ExprIndex
	ExprSlice
	ExprCast
	ExprIf
	ExprMatch
	ExprBlock
	ExprLoop
	ExprClosure
	ExprArray
	ExprArrayRepeat
	ExprTuple
	ExprStructLit
	ExprRange
	ExprAwait
	ExprErrorPropagate
	ExprErrorHandle
)

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
	Type    types.TypeID // filled in by Sema; NoTypeID until then
}

// LiteralKind distinguishes the scalar literal forms spec §3 lists.
type LiteralKind uint8

const (
	LitInt LiteralKind = iota
	LitFloat
	LitBool
	LitChar
	LitString
)

type LiteralData struct {
	Kind LiteralKind
	Text source.StringID // verbatim digits/text; Sema parses the concrete value
	// Suffix names the declared width/signedness suffix on an int/float
	// literal (e.g. "i32", "u8", "f64"), or zero StringID if absent.
	Suffix source.StringID
}

type IdentData struct {
	Name source.StringID
}

type BinaryOp uint8

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinBitAnd
	BinBitOr
	BinBitXor
	BinShl
	BinShr
	BinAnd
	BinOr
	BinEq
	BinNotEq
	BinLt
	BinLtEq
	BinGt
	BinGtEq
	// BinOrElse is the `orelse` optional-coalescing operator: Left must be
	// an Optional<T>, Right (of type T) supplies the fallback when Left
	// holds no value.
	BinOrElse
)

type BinaryData struct {
	Op          BinaryOp
	Left, Right ExprID
}

type UnaryOp uint8

const (
	UnaryNeg UnaryOp = iota
	UnaryNot
	UnaryBitNot
	UnaryRef
	UnaryRefMut
	UnaryDeref
)

type UnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

// AssignOp distinguishes plain `=` from a compound assignment; the BinaryOp
// table in this file supplies the underlying operator for the compound forms.
type AssignOp uint8

const (
	AssignPlain AssignOp = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
	AssignMod
	AssignBitAnd
	AssignBitOr
	AssignBitXor
	AssignShl
	AssignShr
)

type AssignData struct {
	Op          AssignOp
	Target, Rhs ExprID
}

// CallArg is one call argument; Spread marks `name...` expansion of a
// variadic collection into the call's trailing arguments.
type CallArg struct {
	Value  ExprID
	Spread bool
}

type CallData struct {
	Callee   ExprID
	Args     []CallArg
	TypeArgs []TypeExprID
}

type BuiltinCallData struct {
	Name source.StringID // the identifier following '@'
	Args []ExprID
}

type MemberData struct {
	Target   ExprID
	Name     source.StringID
	Optional bool // true for `?.`
}

type IndexData struct {
	Target, Index ExprID
}

type SliceData struct {
	Target   ExprID
	Low, High ExprID // NoExprID when omitted (`a[..hi]`, `a[lo..]`, `a[..]`)
}

type CastData struct {
	Value ExprID
	Type  TypeExprID
}

type IfData struct {
	Cond ExprID
	Then ExprID // always an ExprBlock
	Else ExprID // NoExprID, an ExprIf (elif chain), or an ExprBlock
}

type MatchArm struct {
	Pattern PatternID
	Guard   ExprID // NoExprID if absent
	Body    ExprID
}

type MatchData struct {
	Scrutinee ExprID
	Arms      []MatchArm
}

type BlockData struct {
	Stmts  []StmtID
	Result ExprID // NoExprID if the block has no trailing result expression
}

// LoopKind distinguishes the three surface loop forms, all modeled as the
// same break-with-value-capable expression.
type LoopKind uint8

const (
	LoopPlain LoopKind = iota // `loop { ... }`
	LoopWhile                 // `while cond { ... }`
	LoopForIn                 // `for pat in iter { ... }`
)

type LoopData struct {
	Kind  LoopKind
	Label source.StringID // zero StringID if unlabeled
	Cond  ExprID           // LoopWhile's condition
	Pat   PatternID        // LoopForIn's binding pattern
	Iter  ExprID           // LoopForIn's iterator expression
	Body  ExprID           // always an ExprBlock
}

type ClosureData struct {
	Params     []ParamID
	ReturnType TypeExprID
	Body       ExprID
}

type ArrayData struct {
	Elems []ExprID
}

type ArrayRepeatData struct {
	Value ExprID
	Count ExprID
}

type TupleData struct {
	Elems []ExprID
}

// StructLitField is one `name: value` entry in a struct literal.
type StructLitField struct {
	Name  source.StringID
	Value ExprID
}

type StructLitData struct {
	Type   TypeExprID
	Fields []StructLitField
	Base   ExprID // NoExprID unless `..base` functional-update is present
}

type RangeData struct {
	Low, High ExprID // either may be NoExprID for an open range
	Inclusive bool
}

type AwaitData struct {
	Value ExprID
}

type ErrorPropagateData struct {
	Value ExprID
}

type ErrorHandleData struct {
	Value ExprID
	Err   source.StringID // the `err` binding name, conventionally "err"
	Body  ExprID          // always an ExprBlock
}

type Exprs struct {
	Arena *Arena[Expr]

	Literals       *Arena[LiteralData]
	Idents         *Arena[IdentData]
	Binaries       *Arena[BinaryData]
	Unaries        *Arena[UnaryData]
	Assigns        *Arena[AssignData]
	Calls          *Arena[CallData]
	BuiltinCalls   *Arena[BuiltinCallData]
	Members        *Arena[MemberData]
	Indices        *Arena[IndexData]
	Slices         *Arena[SliceData]
	Casts          *Arena[CastData]
	Ifs            *Arena[IfData]
	Matches        *Arena[MatchData]
	Blocks         *Arena[BlockData]
	Loops          *Arena[LoopData]
	Closures       *Arena[ClosureData]
	Arrays         *Arena[ArrayData]
	ArrayRepeats   *Arena[ArrayRepeatData]
	Tuples         *Arena[TupleData]
	StructLits     *Arena[StructLitData]
	Ranges         *Arena[RangeData]
	Awaits         *Arena[AwaitData]
	ErrorPropagates *Arena[ErrorPropagateData]
	ErrorHandles   *Arena[ErrorHandleData]
}

func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 9
	}
	return &Exprs{
		Arena:           NewArena[Expr](capHint),
		Literals:        NewArena[LiteralData](capHint),
		Idents:          NewArena[IdentData](capHint),
		Binaries:        NewArena[BinaryData](capHint),
		Unaries:         NewArena[UnaryData](capHint / 2),
		Assigns:         NewArena[AssignData](capHint / 4),
		Calls:           NewArena[CallData](capHint / 2),
		BuiltinCalls:    NewArena[BuiltinCallData](capHint / 8),
		Members:         NewArena[MemberData](capHint / 2),
		Indices:         NewArena[IndexData](capHint / 4),
		Slices:          NewArena[SliceData](capHint / 8),
		Casts:           NewArena[CastData](capHint / 8),
		Ifs:             NewArena[IfData](capHint / 4),
		Matches:         NewArena[MatchData](capHint / 8),
		Blocks:          NewArena[BlockData](capHint / 2),
		Loops:           NewArena[LoopData](capHint / 8),
		Closures:        NewArena[ClosureData](capHint / 8),
		Arrays:          NewArena[ArrayData](capHint / 8),
		ArrayRepeats:    NewArena[ArrayRepeatData](capHint / 16),
		Tuples:          NewArena[TupleData](capHint / 8),
		StructLits:      NewArena[StructLitData](capHint / 8),
		Ranges:          NewArena[RangeData](capHint / 8),
		Awaits:          NewArena[AwaitData](capHint / 16),
		ErrorPropagates: NewArena[ErrorPropagateData](capHint / 16),
		ErrorHandles:    NewArena[ErrorHandleData](capHint / 16),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: kind, Span: span, Payload: payload}))
}

func (e *Exprs) Get(id ExprID) *Expr { return e.Arena.Get(uint32(id)) }

// SetType records a node's canonical semantic type, as computed by Sema.
func (e *Exprs) SetType(id ExprID, t types.TypeID) {
	if n := e.Get(id); n != nil {
		n.Type = t
	}
}

func (e *Exprs) NewLiteral(span source.Span, data LiteralData) ExprID {
	return e.new(ExprLiteral, span, PayloadID(e.Literals.Allocate(data)))
}
func (e *Exprs) Literal(id ExprID) (*LiteralData, bool) {
	n := e.Get(id)
	if n == nil || n.Kind != ExprLiteral {
		return nil, false
	}
	return e.Literals.Get(uint32(n.Payload)), true
}

func (e *Exprs) NewNone(span source.Span) ExprID {
	return e.new(ExprNone, span, NoPayloadID)
}

func (e *Exprs) NewIdent(span source.Span, name source.StringID) ExprID {
	return e.new(ExprIdent, span, PayloadID(e.Idents.Allocate(IdentData{Name: name})))
}
func (e *Exprs) Ident(id ExprID) (*IdentData, bool) {
	n := e.Get(id)
	if n == nil || n.Kind != ExprIdent {
		return nil, false
	}
	return e.Idents.Get(uint32(n.Payload)), true
}

func (e *Exprs) NewBinary(span source.Span, op BinaryOp, left, right ExprID) ExprID {
	return e.new(ExprBinary, span, PayloadID(e.Binaries.Allocate(BinaryData{Op: op, Left: left, Right: right})))
}
func (e *Exprs) Binary(id ExprID) (*BinaryData, bool) {
	n := e.Get(id)
	if n == nil || n.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(uint32(n.Payload)), true
}

func (e *Exprs) NewUnary(span source.Span, op UnaryOp, operand ExprID) ExprID {
	return e.new(ExprUnary, span, PayloadID(e.Unaries.Allocate(UnaryData{Op: op, Operand: operand})))
}
func (e *Exprs) Unary(id ExprID) (*UnaryData, bool) {
	n := e.Get(id)
	if n == nil || n.Kind != ExprUnary {
		return nil, false
	}
	return e.Unaries.Get(uint32(n.Payload)), true
}

func (e *Exprs) NewAssign(span source.Span, op AssignOp, target, rhs ExprID) ExprID {
	return e.new(ExprAssign, span, PayloadID(e.Assigns.Allocate(AssignData{Op: op, Target: target, Rhs: rhs})))
}
func (e *Exprs) Assign(id ExprID) (*AssignData, bool) {
	n := e.Get(id)
	if n == nil || n.Kind != ExprAssign {
		return nil, false
	}
	return e.Assigns.Get(uint32(n.Payload)), true
}

func (e *Exprs) NewCall(span source.Span, callee ExprID, args []CallArg, typeArgs []TypeExprID) ExprID {
	data := CallData{Callee: callee, Args: append([]CallArg(nil), args...), TypeArgs: append([]TypeExprID(nil), typeArgs...)}
	return e.new(ExprCall, span, PayloadID(e.Calls.Allocate(data)))
}
func (e *Exprs) Call(id ExprID) (*CallData, bool) {
	n := e.Get(id)
	if n == nil || n.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(uint32(n.Payload)), true
}

func (e *Exprs) NewBuiltinCall(span source.Span, name source.StringID, args []ExprID) ExprID {
	data := BuiltinCallData{Name: name, Args: append([]ExprID(nil), args...)}
	return e.new(ExprBuiltinCall, span, PayloadID(e.BuiltinCalls.Allocate(data)))
}
func (e *Exprs) BuiltinCall(id ExprID) (*BuiltinCallData, bool) {
	n := e.Get(id)
	if n == nil || n.Kind != ExprBuiltinCall {
		return nil, false
	}
	return e.BuiltinCalls.Get(uint32(n.Payload)), true
}

func (e *Exprs) NewMember(span source.Span, target ExprID, name source.StringID, optional bool) ExprID {
	data := MemberData{Target: target, Name: name, Optional: optional}
	return e.new(ExprMember, span, PayloadID(e.Members.Allocate(data)))
}
func (e *Exprs) Member(id ExprID) (*MemberData, bool) {
	n := e.Get(id)
	if n == nil || n.Kind != ExprMember {
		return nil, false
	}
	return e.Members.Get(uint32(n.Payload)), true
}

func (e *Exprs) NewIndex(span source.Span, target, index ExprID) ExprID {
	return e.new(ExprIndex, span, PayloadID(e.Indices.Allocate(IndexData{Target: target, Index: index})))
}
func (e *Exprs) Index(id ExprID) (*IndexData, bool) {
	n := e.Get(id)
	if n == nil || n.Kind != ExprIndex {
		return nil, false
	}
	return e.Indices.Get(uint32(n.Payload)), true
}

func (e *Exprs) NewSlice(span source.Span, target, low, high ExprID) ExprID {
	data := SliceData{Target: target, Low: low, High: high}
	return e.new(ExprSlice, span, PayloadID(e.Slices.Allocate(data)))
}
func (e *Exprs) Slice(id ExprID) (*SliceData, bool) {
	n := e.Get(id)
	if n == nil || n.Kind != ExprSlice {
		return nil, false
	}
	return e.Slices.Get(uint32(n.Payload)), true
}

func (e *Exprs) NewCast(span source.Span, value ExprID, typ TypeExprID) ExprID {
	return e.new(ExprCast, span, PayloadID(e.Casts.Allocate(CastData{Value: value, Type: typ})))
}
func (e *Exprs) Cast(id ExprID) (*CastData, bool) {
	n := e.Get(id)
	if n == nil || n.Kind != ExprCast {
		return nil, false
	}
	return e.Casts.Get(uint32(n.Payload)), true
}

func (e *Exprs) NewIf(span source.Span, cond, then, els ExprID) ExprID {
	return e.new(ExprIf, span, PayloadID(e.Ifs.Allocate(IfData{Cond: cond, Then: then, Else: els})))
}
func (e *Exprs) If(id ExprID) (*IfData, bool) {
	n := e.Get(id)
	if n == nil || n.Kind != ExprIf {
		return nil, false
	}
	return e.Ifs.Get(uint32(n.Payload)), true
}

func (e *Exprs) NewMatch(span source.Span, scrutinee ExprID, arms []MatchArm) ExprID {
	data := MatchData{Scrutinee: scrutinee, Arms: append([]MatchArm(nil), arms...)}
	return e.new(ExprMatch, span, PayloadID(e.Matches.Allocate(data)))
}
func (e *Exprs) Match(id ExprID) (*MatchData, bool) {
	n := e.Get(id)
	if n == nil || n.Kind != ExprMatch {
		return nil, false
	}
	return e.Matches.Get(uint32(n.Payload)), true
}

func (e *Exprs) NewBlock(span source.Span, stmts []StmtID, result ExprID) ExprID {
	data := BlockData{Stmts: append([]StmtID(nil), stmts...), Result: result}
	return e.new(ExprBlock, span, PayloadID(e.Blocks.Allocate(data)))
}
func (e *Exprs) Block(id ExprID) (*BlockData, bool) {
	n := e.Get(id)
	if n == nil || n.Kind != ExprBlock {
		return nil, false
	}
	return e.Blocks.Get(uint32(n.Payload)), true
}

func (e *Exprs) NewLoop(span source.Span, data LoopData) ExprID {
	return e.new(ExprLoop, span, PayloadID(e.Loops.Allocate(data)))
}
func (e *Exprs) Loop(id ExprID) (*LoopData, bool) {
	n := e.Get(id)
	if n == nil || n.Kind != ExprLoop {
		return nil, false
	}
	return e.Loops.Get(uint32(n.Payload)), true
}

func (e *Exprs) NewClosure(span source.Span, params []ParamID, ret TypeExprID, body ExprID) ExprID {
	data := ClosureData{Params: append([]ParamID(nil), params...), ReturnType: ret, Body: body}
	return e.new(ExprClosure, span, PayloadID(e.Closures.Allocate(data)))
}
func (e *Exprs) Closure(id ExprID) (*ClosureData, bool) {
	n := e.Get(id)
	if n == nil || n.Kind != ExprClosure {
		return nil, false
	}
	return e.Closures.Get(uint32(n.Payload)), true
}

func (e *Exprs) NewArray(span source.Span, elems []ExprID) ExprID {
	data := ArrayData{Elems: append([]ExprID(nil), elems...)}
	return e.new(ExprArray, span, PayloadID(e.Arrays.Allocate(data)))
}
func (e *Exprs) Array(id ExprID) (*ArrayData, bool) {
	n := e.Get(id)
	if n == nil || n.Kind != ExprArray {
		return nil, false
	}
	return e.Arrays.Get(uint32(n.Payload)), true
}

func (e *Exprs) NewArrayRepeat(span source.Span, value, count ExprID) ExprID {
	data := ArrayRepeatData{Value: value, Count: count}
	return e.new(ExprArrayRepeat, span, PayloadID(e.ArrayRepeats.Allocate(data)))
}
func (e *Exprs) ArrayRepeat(id ExprID) (*ArrayRepeatData, bool) {
	n := e.Get(id)
	if n == nil || n.Kind != ExprArrayRepeat {
		return nil, false
	}
	return e.ArrayRepeats.Get(uint32(n.Payload)), true
}

func (e *Exprs) NewTuple(span source.Span, elems []ExprID) ExprID {
	data := TupleData{Elems: append([]ExprID(nil), elems...)}
	return e.new(ExprTuple, span, PayloadID(e.Tuples.Allocate(data)))
}
func (e *Exprs) Tuple(id ExprID) (*TupleData, bool) {
	n := e.Get(id)
	if n == nil || n.Kind != ExprTuple {
		return nil, false
	}
	return e.Tuples.Get(uint32(n.Payload)), true
}

func (e *Exprs) NewStructLit(span source.Span, typ TypeExprID, fields []StructLitField, base ExprID) ExprID {
	data := StructLitData{Type: typ, Fields: append([]StructLitField(nil), fields...), Base: base}
	return e.new(ExprStructLit, span, PayloadID(e.StructLits.Allocate(data)))
}
func (e *Exprs) StructLit(id ExprID) (*StructLitData, bool) {
	n := e.Get(id)
	if n == nil || n.Kind != ExprStructLit {
		return nil, false
	}
	return e.StructLits.Get(uint32(n.Payload)), true
}

func (e *Exprs) NewRange(span source.Span, low, high ExprID, inclusive bool) ExprID {
	data := RangeData{Low: low, High: high, Inclusive: inclusive}
	return e.new(ExprRange, span, PayloadID(e.Ranges.Allocate(data)))
}
func (e *Exprs) Range(id ExprID) (*RangeData, bool) {
	n := e.Get(id)
	if n == nil || n.Kind != ExprRange {
		return nil, false
	}
	return e.Ranges.Get(uint32(n.Payload)), true
}

func (e *Exprs) NewAwait(span source.Span, value ExprID) ExprID {
	return e.new(ExprAwait, span, PayloadID(e.Awaits.Allocate(AwaitData{Value: value})))
}
func (e *Exprs) Await(id ExprID) (*AwaitData, bool) {
	n := e.Get(id)
	if n == nil || n.Kind != ExprAwait {
		return nil, false
	}
	return e.Awaits.Get(uint32(n.Payload)), true
}

func (e *Exprs) NewErrorPropagate(span source.Span, value ExprID) ExprID {
	data := ErrorPropagateData{Value: value}
	return e.new(ExprErrorPropagate, span, PayloadID(e.ErrorPropagates.Allocate(data)))
}
func (e *Exprs) ErrorPropagate(id ExprID) (*ErrorPropagateData, bool) {
	n := e.Get(id)
	if n == nil || n.Kind != ExprErrorPropagate {
		return nil, false
	}
	return e.ErrorPropagates.Get(uint32(n.Payload)), true
}

func (e *Exprs) NewErrorHandle(span source.Span, value ExprID, errName source.StringID, body ExprID) ExprID {
	data := ErrorHandleData{Value: value, Err: errName, Body: body}
	return e.new(ExprErrorHandle, span, PayloadID(e.ErrorHandles.Allocate(data)))
}
func (e *Exprs) ErrorHandle(id ExprID) (*ErrorHandleData, bool) {
	n := e.Get(id)
	if n == nil || n.Kind != ExprErrorHandle {
		return nil, false
	}
	return e.ErrorHandles.Get(uint32(n.Payload)), true
}
