// Package source is the Source-IR instruction set: the eleven instruction
// kinds a front-end may emit, before hint normalization lowers them into
// package hintnormalized's five-kind subset.
package source

import (
	"fmt"

	"github.com/consensys/gnark-layered/circuit"
	"github.com/consensys/gnark-layered/field"
	"github.com/consensys/gnark-layered/hint"
)

// LinComb emits the field value of LC.
type LinComb struct {
	LC circuit.LinComb
}

func (i LinComb) NumOutputs() int            { return 1 }
func (i LinComb) InputVars() []uint32        { return i.LC.Vars() }
func (i LinComb) SubCircuit() (uint64, bool) { return 0, false }
func (i LinComb) Eval(ctx *circuit.EvalContext) ([]field.Element, error) {
	return []field.Element{i.LC.Eval(ctx.Values)}, nil
}

// Mul emits the product of Vars (at least two operands).
type Mul struct {
	Vars []uint32
}

func (i Mul) NumOutputs() int            { return 1 }
func (i Mul) InputVars() []uint32        { return i.Vars }
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

// Div divides X by Y. Checked requires Y != 0 (a constraint hint
// normalization will add); unchecked yields 0 when Y is zero.
type Div struct {
	X, Y    uint32
	Checked bool
}

func (i Div) NumOutputs() int            { return 1 }
func (i Div) InputVars() []uint32        { return []uint32{i.X, i.Y} }
func (i Div) SubCircuit() (uint64, bool) { return 0, false }
func (i Div) Eval(ctx *circuit.EvalContext) ([]field.Element, error) {
	x, y := ctx.Values[i.X], ctx.Values[i.Y]
	if y.IsZero() {
		if i.Checked {
			return nil, fmt.Errorf("div: checked division by zero")
		}
		return []field.Element{field.Zero()}, nil
	}
	inv, _ := y.Inv()
	return []field.Element{x.Mul(inv)}, nil
}

// BoolOp is the boolean binary operator of a BoolBinOp instruction.
type BoolOp uint8

const (
	BoolAnd BoolOp = iota
	BoolOr
	BoolXor
)

func (op BoolOp) String() string {
	switch op {
	case BoolAnd:
		return "And"
	case BoolOr:
		return "Or"
	case BoolXor:
		return "Xor"
	default:
		return "BoolOp(unknown)"
	}
}

// BoolBinOp requires X, Y to be boolean-valued and emits the boolean result
// of applying Op.
type BoolBinOp struct {
	X, Y uint32
	Op   BoolOp
}

func (i BoolBinOp) NumOutputs() int            { return 1 }
func (i BoolBinOp) InputVars() []uint32        { return []uint32{i.X, i.Y} }
func (i BoolBinOp) SubCircuit() (uint64, bool) { return 0, false }
func (i BoolBinOp) Eval(ctx *circuit.EvalContext) ([]field.Element, error) {
	x, y := ctx.Values[i.X], ctx.Values[i.Y]
	if !isBoolElem(x) || !isBoolElem(y) {
		return nil, fmt.Errorf("bool_bin_op: operands must be boolean")
	}
	switch i.Op {
	case BoolAnd:
		return []field.Element{boolElem(!x.IsZero() && !y.IsZero())}, nil
	case BoolOr:
		return []field.Element{boolElem(!x.IsZero() || !y.IsZero())}, nil
	case BoolXor:
		return []field.Element{boolElem(!x.IsZero() != !y.IsZero())}, nil
	default:
		return nil, fmt.Errorf("bool_bin_op: unknown op %v", i.Op)
	}
}

// IsZero emits 1 iff X is zero, else 0.
type IsZero struct {
	X uint32
}

func (i IsZero) NumOutputs() int            { return 1 }
func (i IsZero) InputVars() []uint32        { return []uint32{i.X} }
func (i IsZero) SubCircuit() (uint64, bool) { return 0, false }
func (i IsZero) Eval(ctx *circuit.EvalContext) ([]field.Element, error) {
	return []field.Element{boolElem(ctx.Values[i.X].IsZero())}, nil
}

// Commit is reserved and out of scope: hint normalization always rejects it.
type Commit struct {
	X uint32
}

func (i Commit) NumOutputs() int            { return 1 }
func (i Commit) InputVars() []uint32        { return []uint32{i.X} }
func (i Commit) SubCircuit() (uint64, bool) { return 0, false }
func (i Commit) Eval(ctx *circuit.EvalContext) ([]field.Element, error) {
	return nil, fmt.Errorf("commit: unimplemented, out of scope")
}

// Hint emits n untrusted witness values computed by the named builtin
// oracle.
type Hint struct {
	HintID hint.BuiltinID
	Inputs []uint32
	NumOut int
}

func (i Hint) NumOutputs() int            { return i.NumOut }
func (i Hint) InputVars() []uint32        { return i.Inputs }
func (i Hint) SubCircuit() (uint64, bool) { return 0, false }
func (i Hint) Eval(ctx *circuit.EvalContext) ([]field.Element, error) {
	if ctx.Hint == nil {
		return nil, fmt.Errorf("hint: no hint resolver configured for hint id %s", i.HintID)
	}
	return ctx.Hint(uint32(i.HintID), ctx.Resolve(i.Inputs), i.NumOut)
}

// ConstantOrRandom emits a compile-time literal, or a fresh random witness.
type ConstantOrRandom struct {
	Coef circuit.Coef
}

func (i ConstantOrRandom) NumOutputs() int            { return 1 }
func (i ConstantOrRandom) InputVars() []uint32        { return nil }
func (i ConstantOrRandom) SubCircuit() (uint64, bool) { return 0, false }
func (i ConstantOrRandom) Eval(ctx *circuit.EvalContext) ([]field.Element, error) {
	if i.Coef.IsConstant() {
		return []field.Element{i.Coef.Value}, nil
	}
	return []field.Element{field.Random()}, nil
}

// SubCircuitCall invokes sub-circuit SubCircuitID with Inputs.
type SubCircuitCall struct {
	SubCircuitID uint64
	Inputs       []uint32
	NumOut       int
}

func (i SubCircuitCall) NumOutputs() int            { return i.NumOut }
func (i SubCircuitCall) InputVars() []uint32        { return i.Inputs }
func (i SubCircuitCall) SubCircuit() (uint64, bool) { return i.SubCircuitID, true }
func (i SubCircuitCall) Eval(ctx *circuit.EvalContext) ([]field.Element, error) {
	if ctx.SubCircuit == nil {
		return nil, fmt.Errorf("sub_circuit_call: no sub-circuit evaluator configured")
	}
	return ctx.SubCircuit(i.SubCircuitID, ctx.Resolve(i.Inputs))
}

// UnconstrainedBinOp computes a free-form integer-style binary op by hint,
// with no arithmetic constraint tying its output to its inputs.
type UnconstrainedBinOp struct {
	X, Y uint32
	Op   hint.BuiltinID
}

func (i UnconstrainedBinOp) NumOutputs() int            { return 1 }
func (i UnconstrainedBinOp) InputVars() []uint32        { return []uint32{i.X, i.Y} }
func (i UnconstrainedBinOp) SubCircuit() (uint64, bool) { return 0, false }
func (i UnconstrainedBinOp) Eval(ctx *circuit.EvalContext) ([]field.Element, error) {
	v, err := hint.Eval(i.Op, ctx.Values[i.X], ctx.Values[i.Y])
	if err != nil {
		return nil, fmt.Errorf("unconstrained_bin_op: %w", err)
	}
	return []field.Element{v}, nil
}

// UnconstrainedSelect returns T if C is non-zero, else F, computed by hint.
type UnconstrainedSelect struct {
	C, T, F uint32
}

func (i UnconstrainedSelect) NumOutputs() int            { return 1 }
func (i UnconstrainedSelect) InputVars() []uint32        { return []uint32{i.C, i.T, i.F} }
func (i UnconstrainedSelect) SubCircuit() (uint64, bool) { return 0, false }
func (i UnconstrainedSelect) Eval(ctx *circuit.EvalContext) ([]field.Element, error) {
	return []field.Element{hint.Select(ctx.Values[i.C], ctx.Values[i.T], ctx.Values[i.F])}, nil
}

func isBoolElem(v field.Element) bool {
	return v.IsZero() || v.IsOne()
}

func boolElem(b bool) field.Element {
	if b {
		return field.One()
	}
	return field.Zero()
}
