package token

// keywords maps every reserved word to its Kind. Lookup happens after the
// lexer has already scanned a maximal identifier-shaped run of bytes.
var keywords = map[string]Kind{
	"var": KwVar, "const": KwConst, "func": KwFunc, "return": KwReturn,
	"struct": KwStruct, "enum": KwEnum, "trait": KwTrait, "impl": KwImpl,
	"pub": KwPub, "priv": KwPriv, "internal": KwInternal,
	"if": KwIf, "elif": KwElif, "else": KwElse, "match": KwMatch,
	"while": KwWhile, "loop": KwLoop, "for": KwFor, "in": KwIn,
	"break": KwBreak, "continue": KwContinue, "true": KwTrue, "false": KwFalse,
	"async": KwAsync, "await": KwAwait, "as": KwAs,
	"self": KwSelf, "Self": KwSelfType, "mut": KwMut, "ref": KwRef, "ptr": KwPtr,
	"void": KwVoid, "defer": KwDefer, "type": KwType, "where": KwWhere,
	"None": KwNone, "orelse": KwOrelse,
	"i8": KwI8, "i16": KwI16, "i32": KwI32, "i64": KwI64, "i128": KwI128, "isize": KwIsize,
	"u8": KwU8, "u16": KwU16, "u32": KwU32, "u64": KwU64, "u128": KwU128, "usize": KwUsize,
	"f32": KwF32, "f64": KwF64, "bool": KwBool, "char": KwChar, "str": KwStr,
}

// LookupKeyword returns the keyword Kind for word, or (Ident, false) if
// word is an ordinary identifier.
func LookupKeyword(word string) (Kind, bool) {
	k, ok := keywords[word]
	if !ok {
		return Ident, false
	}
	return k, true
}

// IntSuffixes enumerates the fixed integer-suffix keyword kinds, used by the
// lexer to validate number-literal suffixes.
var IntSuffixes = map[string]Kind{
	"i8": KwI8, "i16": KwI16, "i32": KwI32, "i64": KwI64, "i128": KwI128, "isize": KwIsize,
	"u8": KwU8, "u16": KwU16, "u32": KwU32, "u64": KwU64, "u128": KwU128, "usize": KwUsize,
}

// FloatSuffixes enumerates the fixed float-suffix keyword kinds.
var FloatSuffixes = map[string]Kind{
	"f32": KwF32, "f64": KwF64,
}
