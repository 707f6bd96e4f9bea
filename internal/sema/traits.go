package sema

import "yuanc/internal/types"

// operatorTraitNames is the fixed list of trait names spec treats as
// operator overloads, which registration rejects up front on a builtin
// target type (err 3048).
var operatorTraitNames = map[string]bool{
	"Add": true, "Sub": true, "Mul": true, "Div": true, "Mod": true,
	"Eq": true, "Ne": true, "Lt": true, "Le": true, "Gt": true, "Ge": true,
	"Neg": true, "Not": true, "BitNot": true,
}

func isOperatorTraitName(name string) bool { return operatorTraitNames[name] }

// isBuiltinOperatorForbiddenTarget reports whether target (after unwrapping
// aliases) is one of the scalar builtin kinds operator traits may never be
// implemented for.
func (c *Checker) isBuiltinOperatorForbiddenTarget(target types.TypeID) bool {
	base := c.ctx.Types.UnwrapAliases(target)
	t, ok := c.ctx.Types.Lookup(base)
	if !ok {
		return false
	}
	switch t.Kind {
	case types.KindInteger, types.KindFloat, types.KindBool, types.KindChar, types.KindString:
		return true
	default:
		return false
	}
}

// unwrapValueType strips aliases then references, mirroring the lookup
// preprocessing spec's trait/impl resolution applies to a registration or
// query target.
func (c *Checker) unwrapValueType(t types.TypeID) types.TypeID {
	cur := c.ctx.Types.UnwrapAliases(t)
	for {
		ty, ok := c.ctx.Types.Lookup(cur)
		if !ok || ty.Kind != types.KindReference {
			return cur
		}
		cur = c.ctx.Types.UnwrapAliases(ty.Elem)
	}
}
