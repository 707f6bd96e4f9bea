package parser

import (
	"yuanc/internal/ast"
	"yuanc/internal/token"
)

// Precedence levels for parseBinaryExpr's precedence-climbing loop, lowest
// binding first. `orelse` sits just looser than logical-or (an optional
// chain's fallback binds looser than boolean combination of the
// optional's presence, and looser than the comparisons/arithmetic that
// typically produce the optional itself); range and cast have no level
// here, since they are not ordinary left-assoc binary operators and are
// parsed by their own productions.
const (
	precNone           = 0
	precOrElse         = 2
	precLogicalOr      = 3
	precLogicalAnd     = 4
	precEquality       = 5
	precRelational     = 6
	precBitwiseOr      = 7
	precBitwiseXor     = 8
	precBitwiseAnd     = 9
	precShift          = 10
	precAdditive       = 12
	precMultiplicative = 13
)

// Every level reached through getBinaryOperatorPrec is left-associative;
// assignment is parsed by its own right-associative production
// (parseAssignment) outside the table.

// getBinaryOperatorPrec reports the precedence of kind as an ordinary
// binary operator, and whether kind is a binary operator at all. Range
// (`..`/`..=`) and `as`-casts are deliberately excluded: both are parsed
// by dedicated productions (parseRangeExpr, parseCastExpr) rather than folded into
// this left-associative climb.
func getBinaryOperatorPrec(kind token.Kind) (int, bool) {
	switch kind {
	case token.KwOrelse:
		return precOrElse, true
	case token.PipePipe:
		return precLogicalOr, true
	case token.AmpAmp:
		return precLogicalAnd, true
	case token.EqEq, token.BangEq:
		return precEquality, true
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precRelational, true
	case token.Pipe:
		return precBitwiseOr, true
	case token.Caret:
		return precBitwiseXor, true
	case token.Amp:
		return precBitwiseAnd, true
	case token.Shl, token.Shr:
		return precShift, true
	case token.Plus, token.Minus:
		return precAdditive, true
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative, true
	default:
		return precNone, false
	}
}

// tokenKindToBinaryOp maps a binary operator token to its AST operator.
// Callers must already know kind passed getBinaryOperatorPrec.
func tokenKindToBinaryOp(kind token.Kind) ast.BinaryOp {
	switch kind {
	case token.KwOrelse:
		return ast.BinOrElse
	case token.PipePipe:
		return ast.BinOr
	case token.AmpAmp:
		return ast.BinAnd
	case token.EqEq:
		return ast.BinEq
	case token.BangEq:
		return ast.BinNotEq
	case token.Lt:
		return ast.BinLt
	case token.LtEq:
		return ast.BinLtEq
	case token.Gt:
		return ast.BinGt
	case token.GtEq:
		return ast.BinGtEq
	case token.Pipe:
		return ast.BinBitOr
	case token.Caret:
		return ast.BinBitXor
	case token.Amp:
		return ast.BinBitAnd
	case token.Shl:
		return ast.BinShl
	case token.Shr:
		return ast.BinShr
	case token.Plus:
		return ast.BinAdd
	case token.Minus:
		return ast.BinSub
	case token.Star:
		return ast.BinMul
	case token.Slash:
		return ast.BinDiv
	case token.Percent:
		return ast.BinMod
	default:
		return ast.BinAdd // unreachable for a validated kind
	}
}

// getUnaryOperator maps a prefix token to its AST unary operator.
func getUnaryOperator(kind token.Kind) (ast.UnaryOp, bool) {
	switch kind {
	case token.Minus:
		return ast.UnaryNeg, true
	case token.Bang:
		return ast.UnaryNot, true
	case token.Tilde:
		return ast.UnaryBitNot, true
	case token.Star:
		return ast.UnaryDeref, true
	default:
		return 0, false
	}
}

// assignOpFromToken maps a (possibly compound) assignment token to its
// AST operator.
func assignOpFromToken(kind token.Kind) (ast.AssignOp, bool) {
	switch kind {
	case token.Assign:
		return ast.AssignPlain, true
	case token.PlusEq:
		return ast.AssignAdd, true
	case token.MinusEq:
		return ast.AssignSub, true
	case token.StarEq:
		return ast.AssignMul, true
	case token.SlashEq:
		return ast.AssignDiv, true
	case token.PercentEq:
		return ast.AssignMod, true
	case token.AmpEq:
		return ast.AssignBitAnd, true
	case token.PipeEq:
		return ast.AssignBitOr, true
	case token.CaretEq:
		return ast.AssignBitXor, true
	case token.ShlEq:
		return ast.AssignShl, true
	case token.ShrEq:
		return ast.AssignShr, true
	default:
		return 0, false
	}
}
