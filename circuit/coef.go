// Package circuit holds the IR substrate shared by every stage of the
// compiler: linear combinations, coefficients, the instruction/constraint
// interfaces every IR stage's concrete instruction set implements, and the
// root-circuit container itself. Variables are 1-based dense indices within
// a circuit; index 0 is the reserved constant-one slot.
package circuit

import "github.com/consensys/gnark-layered/field"

// CoefKind distinguishes a literal field element from a symbolic marker
// asking the evaluator for a fresh random witness value.
type CoefKind uint8

const (
	CoefConstant CoefKind = iota
	CoefRandom
)

// Coef is the compiler's Coefficient: either a literal element of the field,
// fixed at compile time, or an opaque Random marker.
type Coef struct {
	Kind  CoefKind
	Value field.Element // meaningful only when Kind == CoefConstant
}

// ConstantCoef wraps a literal field element.
func ConstantCoef(v field.Element) Coef {
	return Coef{Kind: CoefConstant, Value: v}
}

// RandomCoef returns the symbolic random marker.
func RandomCoef() Coef {
	return Coef{Kind: CoefRandom}
}

// IsConstant reports whether c carries a literal value.
func (c Coef) IsConstant() bool {
	return c.Kind == CoefConstant
}
