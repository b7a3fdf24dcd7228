// Package hintnormalized is the Hint-Normalized-IR instruction set: the
// strict subset of five instruction kinds hint normalization ever emits, and
// the single RawConstraint constraint kind it ever emits. No other tags may
// appear here; that invariant is enforced at runtime by ValidateShape
// instead of by the Go type system, which has no closed sum type to lean on.
package hintnormalized

import (
	"fmt"

	"github.com/consensys/gnark-layered/circuit"
	"github.com/consensys/gnark-layered/field"
)

// LinComb emits the field value of LC.
type LinComb struct {
	LC circuit.LinComb
}

func (i LinComb) NumOutputs() int      { return 1 }
func (i LinComb) InputVars() []uint32  { return i.LC.Vars() }
func (i LinComb) SubCircuit() (uint64, bool) { return 0, false }
func (i LinComb) Eval(ctx *circuit.EvalContext) ([]field.Element, error) {
	return []field.Element{i.LC.Eval(ctx.Values)}, nil
}

// Mul emits the product of Vars (at least two operands).
type Mul struct {
	Vars []uint32
}

func (i Mul) NumOutputs() int      { return 1 }
func (i Mul) InputVars() []uint32  { return i.Vars }
func (i Mul) SubCircuit() (uint64, bool) { return 0, false }
func (i Mul) Eval(ctx *circuit.EvalContext) ([]field.Element, error) {
	if len(i.Vars) < 2 {
		return nil, fmt.Errorf("mul: need at least two operands, got %d", len(i.Vars))
	}
	res := ctx.Values[i.Vars[0]]
	for _, v := range i.Vars[1:] {
		res = res.Mul(ctx.Values[v])
	}
	return []field.Element{res}, nil
}

// Hint emits NumOut untrusted witness values computed by the named builtin
// oracle. Soundness comes entirely from whatever RawConstraints the rewrite
// that introduced this Hint also emitted, never from this instruction alone.
type Hint struct {
	HintID uint32
	Inputs []uint32
	NumOut int
}

func (i Hint) NumOutputs() int      { return i.NumOut }
func (i Hint) InputVars() []uint32  { return i.Inputs }
func (i Hint) SubCircuit() (uint64, bool) { return 0, false }
func (i Hint) Eval(ctx *circuit.EvalContext) ([]field.Element, error) {
	if ctx.Hint == nil {
		return nil, fmt.Errorf("hint: no hint resolver configured for hint id %d", i.HintID)
	}
	return ctx.Hint(i.HintID, ctx.Resolve(i.Inputs), i.NumOut)
}

// ConstantOrRandom emits a compile-time literal, or a fresh uniformly random
// witness value sampled at evaluation time.
type ConstantOrRandom struct {
	Coef circuit.Coef
}

func (i ConstantOrRandom) NumOutputs() int      { return 1 }
func (i ConstantOrRandom) InputVars() []uint32  { return nil }
func (i ConstantOrRandom) SubCircuit() (uint64, bool) { return 0, false }
func (i ConstantOrRandom) Eval(ctx *circuit.EvalContext) ([]field.Element, error) {
	if i.Coef.IsConstant() {
		return []field.Element{i.Coef.Value}, nil
	}
	return []field.Element{field.Random()}, nil
}

// SubCircuitCall invokes sub-circuit SubCircuitID with Inputs, which for a
// callee with non-zero hint inputs is the callee's explicit inputs followed
// by its hint inputs (spec.md's instruction table does not split the two;
// see circuit.Eval's doc comment for the full convention).
type SubCircuitCall struct {
	SubCircuitID uint64
	Inputs       []uint32
	NumOut       int
}

func (i SubCircuitCall) NumOutputs() int      { return i.NumOut }
func (i SubCircuitCall) InputVars() []uint32  { return i.Inputs }
func (i SubCircuitCall) SubCircuit() (uint64, bool) { return i.SubCircuitID, true }
func (i SubCircuitCall) Eval(ctx *circuit.EvalContext) ([]field.Element, error) {
	if ctx.SubCircuit == nil {
		return nil, fmt.Errorf("sub_circuit_call: no sub-circuit evaluator configured")
	}
	return ctx.SubCircuit(i.SubCircuitID, ctx.Resolve(i.Inputs))
}

// RawConstraint is Hint-Normalized-IR's single constraint kind: the named
// variable's value must be zero.
type RawConstraint struct {
	Var uint32
}

func (c RawConstraint) InputVar() uint32 { return c.Var }
func (c RawConstraint) Check(ctx *circuit.EvalContext) error {
	if !ctx.Values[c.Var].IsZero() {
		return fmt.Errorf("raw constraint violated: var %d = %s, want 0", c.Var, ctx.Values[c.Var])
	}
	return nil
}

// ValidateShape reports an error if def contains any instruction or
// constraint outside Hint-Normalized-IR's five-kind instruction set /
// single-kind constraint set — the runtime stand-in for the closed sum type
// Go's type system cannot express here.
func ValidateShape(def *circuit.Def) error {
	for i, insn := range def.Instructions {
		switch insn.(type) {
		case LinComb, Mul, Hint, ConstantOrRandom, SubCircuitCall:
		default:
			return fmt.Errorf("instruction %d has kind %T, not part of hint-normalized IR", i, insn)
		}
	}
	for i, con := range def.Constraints {
		if _, ok := con.(RawConstraint); !ok {
			return fmt.Errorf("constraint %d has kind %T, not RawConstraint", i, con)
		}
	}
	return nil
}
