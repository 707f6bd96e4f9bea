package sema

import "yuanc/internal/types"

// commonType implements spec's common-type rule, used wherever two
// branches of the same expression (if/else, match arms, a loop's
// break-with-value sites) must agree on one result type:
//
//	common(T, T)             = T
//	common(int_a, int_b)     = the wider of the two, same signedness
//	common(float_a, float_b) = the wider of the two
//	common(float, int)       = float
//	common(T?, T)            = T?
//
// Anything else is undefined and reported by the caller as err 3003.
func (c *Checker) commonType(a, b types.TypeID) (types.TypeID, bool) {
	if a == b {
		return a, true
	}
	if a == types.NoTypeID {
		return b, true
	}
	if b == types.NoTypeID {
		return a, true
	}

	au := c.ctx.Types.UnwrapAliases(a)
	bu := c.ctx.Types.UnwrapAliases(b)
	at, aok := c.ctx.Types.Lookup(au)
	bt, bok := c.ctx.Types.Lookup(bu)
	if !aok || !bok {
		return types.NoTypeID, false
	}

	// T? vs T, either direction: the optional wins.
	if at.Kind == types.KindOptional && at.Elem == bu {
		return a, true
	}
	if bt.Kind == types.KindOptional && bt.Elem == au {
		return b, true
	}

	if at.Kind == types.KindInteger && bt.Kind == types.KindInteger && at.Signed == bt.Signed {
		if at.Width >= bt.Width {
			return a, true
		}
		return b, true
	}

	if at.Kind == types.KindFloat && bt.Kind == types.KindFloat {
		if at.Width >= bt.Width {
			return a, true
		}
		return b, true
	}

	if at.Kind == types.KindFloat && bt.Kind == types.KindInteger {
		return a, true
	}
	if at.Kind == types.KindInteger && bt.Kind == types.KindFloat {
		return b, true
	}

	return types.NoTypeID, false
}

// isNumericType reports whether t (after unwrapping aliases) is an integer
// or float type, the domain the common-type rule's widening case covers.
func (c *Checker) isNumericType(t types.TypeID) bool {
	ty, ok := c.ctx.Types.Lookup(c.ctx.Types.UnwrapAliases(t))
	if !ok {
		return false
	}
	return ty.Kind == types.KindInteger || ty.Kind == types.KindFloat
}

// assignable reports whether a value of type src may be used where dst is
// expected: exact match, same-signedness narrow-to-wide integer widening,
// src assignable into dst's optional wrapper per spec's "Optional T? is a
// supertype of T at assignment sites" rule, or an implicit borrow of src
// where dst is a reference to src's type (the `self` method-call case).
func (c *Checker) assignable(dst, src types.TypeID) bool {
	if dst == src {
		return true
	}
	if dst == types.NoTypeID || src == types.NoTypeID {
		return false
	}
	dst = c.ctx.Types.UnwrapAliases(dst)
	src = c.ctx.Types.UnwrapAliases(src)
	if dst == src {
		return true
	}
	dt, ok := c.ctx.Types.Lookup(dst)
	if !ok {
		return false
	}
	st, sok := c.ctx.Types.Lookup(src)
	if !sok {
		return false
	}

	// Integer widening: same signedness, strictly narrower source.
	if dt.Kind == types.KindInteger && st.Kind == types.KindInteger {
		if dt.Signed == st.Signed && dt.Width > st.Width {
			return true
		}
	}

	// Implicit borrow: a value of T is assignable where &T (or &mut T from
	// an immutable ref is still rejected) is expected, covering bare `self`
	// arguments at method call sites.
	if dt.Kind == types.KindReference {
		pointee := c.ctx.Types.UnwrapAliases(dt.Elem)
		if pointee == src {
			return true
		}
	}

	if dt.Kind == types.KindOptional {
		if dt.Elem == src {
			return true
		}
		if st.Kind == types.KindOptional && st.Elem == dt.Elem {
			return true
		}
		// None (Optional<void>) is assignable to any Optional<T>.
		if st.Kind == types.KindOptional {
			inner, iok := c.ctx.Types.Lookup(st.Elem)
			if iok && inner.Kind == types.KindVoid {
				return true
			}
		}
	}
	return false
}
