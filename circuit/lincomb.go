package circuit

import "github.com/consensys/gnark-layered/field"

// LinCombTerm is one coef*var addend of a linear combination.
type LinCombTerm struct {
	Coef field.Element
	Var  uint32
}

// LinComb is a finite affine combination of variables over the field. Terms
// need not be deduplicated; evaluation sums them literally, term by term.
type LinComb struct {
	Terms    []LinCombTerm
	Constant field.Element
}

// Eval sums the linear combination's terms against values, where values[v]
// is the already-resolved value of variable v (values[0] must be one).
func (lc LinComb) Eval(values []field.Element) field.Element {
	res := lc.Constant
	for _, t := range lc.Terms {
		res = res.Add(t.Coef.Mul(values[t.Var]))
	}
	return res
}

// IsCopy reports whether lc is exactly `1*v + 0`: the identity rewrite used
// to bind a renamed variable without injecting new arithmetic.
func (lc LinComb) IsCopy() (uint32, bool) {
	if len(lc.Terms) == 1 && lc.Terms[0].Coef.Equal(field.One()) && lc.Constant.IsZero() {
		return lc.Terms[0].Var, true
	}
	return 0, false
}

// Vars returns every variable lc references, in term order.
func (lc LinComb) Vars() []uint32 {
	vars := make([]uint32, len(lc.Terms))
	for i, t := range lc.Terms {
		vars[i] = t.Var
	}
	return vars
}
