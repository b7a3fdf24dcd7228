package source

import (
	"fmt"

	"github.com/consensys/gnark-layered/circuit"
)

// ConstraintType distinguishes Source-IR's three constraint flavors.
type ConstraintType uint8

const (
	Zero ConstraintType = iota
	Bool
	NonZero
)

func (t ConstraintType) String() string {
	switch t {
	case Zero:
		return "Zero"
	case Bool:
		return "Bool"
	case NonZero:
		return "NonZero"
	default:
		return "ConstraintType(unknown)"
	}
}

// Constraint is a Source-IR (var, type) constraint.
type Constraint struct {
	Var  uint32
	Type ConstraintType
}

func (c Constraint) InputVar() uint32 { return c.Var }

func (c Constraint) Check(ctx *circuit.EvalContext) error {
	v := ctx.Values[c.Var]
	switch c.Type {
	case Zero:
		if !v.IsZero() {
			return fmt.Errorf("zero constraint violated: var %d = %s, want 0", c.Var, v)
		}
	case Bool:
		if !v.IsZero() && !v.IsOne() {
			return fmt.Errorf("bool constraint violated: var %d = %s, want 0 or 1", c.Var, v)
		}
	case NonZero:
		if v.IsZero() {
			return fmt.Errorf("non-zero constraint violated: var %d = 0", c.Var)
		}
	default:
		return fmt.Errorf("constraint %d: unknown constraint type %v", c.Var, c.Type)
	}
	return nil
}
