// Package token defines the closed token vocabulary produced by the lexer.
package token

// Kind categorizes a lexed token. The set is closed per spec §6.
type Kind uint8

const (
	Invalid Kind = iota
	EOF

	Ident
	BuiltinIdent // @-prefixed

	// Keywords
	KwVar
	KwConst
	KwFunc
	KwReturn
	KwStruct
	KwEnum
	KwTrait
	KwImpl
	KwPub
	KwPriv
	KwInternal
	KwIf
	KwElif
	KwElse
	KwMatch
	KwWhile
	KwLoop
	KwFor
	KwIn
	KwBreak
	KwContinue
	KwTrue
	KwFalse
	KwAsync
	KwAwait
	KwAs
	KwSelf
	KwSelfType
	KwMut
	KwRef
	KwPtr
	KwVoid
	KwDefer
	KwType
	KwWhere
	KwNone
	KwOrelse

	// Builtin type keywords
	KwI8
	KwI16
	KwI32
	KwI64
	KwI128
	KwIsize
	KwU8
	KwU16
	KwU32
	KwU64
	KwU128
	KwUsize
	KwF32
	KwF64
	KwBool
	KwChar
	KwStr

	// Literals
	IntLit
	FloatLit
	CharLit
	StringLit
	RawStringLit
	MultilineStringLit

	// Operators
	Plus
	Minus
	Star
	Slash
	Percent
	Amp
	Pipe
	Caret
	Tilde
	Shl
	Shr
	AmpAmp
	PipePipe
	Bang
	Assign
	EqEq
	BangEq
	Lt
	Gt
	LtEq
	GtEq
	PlusEq
	MinusEq
	StarEq
	SlashEq
	PercentEq
	AmpEq
	PipeEq
	CaretEq
	ShlEq
	ShrEq
	Arrow     // ->
	FatArrow  // =>
	DotDot    // ..
	DotDotEq  // ..=
	Ellipsis  // ...
	Question  // ?
	QuestionDot // ?.

	// Punctuation
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Comma
	Colon
	ColonColon
	Semicolon
	Dot
	At
	Underscore
)

// IsKeyword reports whether k is one of the reserved keyword kinds.
func (k Kind) IsKeyword() bool {
	return k >= KwVar && k <= KwStr
}

//go:generate stringer -type=Kind
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "<invalid-kind>"
}

var names = map[Kind]string{
	Invalid: "Invalid", EOF: "EOF", Ident: "Ident", BuiltinIdent: "BuiltinIdent",
	KwVar: "var", KwConst: "const", KwFunc: "func", KwReturn: "return",
	KwStruct: "struct", KwEnum: "enum", KwTrait: "trait", KwImpl: "impl",
	KwPub: "pub", KwPriv: "priv", KwInternal: "internal",
	KwIf: "if", KwElif: "elif", KwElse: "else", KwMatch: "match",
	KwWhile: "while", KwLoop: "loop", KwFor: "for", KwIn: "in",
	KwBreak: "break", KwContinue: "continue", KwTrue: "true", KwFalse: "false",
	KwAsync: "async", KwAwait: "await", KwAs: "as",
	KwSelf: "self", KwSelfType: "Self", KwMut: "mut", KwRef: "ref", KwPtr: "ptr",
	KwVoid: "void", KwDefer: "defer", KwType: "type", KwWhere: "where",
	KwNone: "None", KwOrelse: "orelse",
	KwI8: "i8", KwI16: "i16", KwI32: "i32", KwI64: "i64", KwI128: "i128", KwIsize: "isize",
	KwU8: "u8", KwU16: "u16", KwU32: "u32", KwU64: "u64", KwU128: "u128", KwUsize: "usize",
	KwF32: "f32", KwF64: "f64", KwBool: "bool", KwChar: "char", KwStr: "str",
	IntLit: "IntLit", FloatLit: "FloatLit", CharLit: "CharLit", StringLit: "StringLit",
	RawStringLit: "RawStringLit", MultilineStringLit: "MultilineStringLit",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	Amp: "&", Pipe: "|", Caret: "^", Tilde: "~", Shl: "<<", Shr: ">>",
	AmpAmp: "&&", PipePipe: "||", Bang: "!", Assign: "=",
	EqEq: "==", BangEq: "!=", Lt: "<", Gt: ">", LtEq: "<=", GtEq: ">=",
	PlusEq: "+=", MinusEq: "-=", StarEq: "*=", SlashEq: "/=", PercentEq: "%=",
	AmpEq: "&=", PipeEq: "|=", CaretEq: "^=", ShlEq: "<<=", ShrEq: ">>=",
	Arrow: "->", FatArrow: "=>", DotDot: "..", DotDotEq: "..=", Ellipsis: "...",
	Question: "?", QuestionDot: "?.",
	LParen: "(", RParen: ")", LBracket: "[", RBracket: "]", LBrace: "{", RBrace: "}",
	Comma: ",", Colon: ":", ColonColon: "::", Semicolon: ";", Dot: ".", At: "@",
	Underscore: "_",
}
