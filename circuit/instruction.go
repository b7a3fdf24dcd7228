package circuit

import "github.com/consensys/gnark-layered/field"

// EvalContext carries everything an Instruction or Constraint needs to
// resolve itself against a concrete input assignment: the variable values
// resolved so far, and the two external oracles named in spec §6 ("the
// builder machinery providing... are interfaces, not implementations"):
// a hint resolver and a sub-circuit evaluator.
type EvalContext struct {
	// Values holds resolved variable values for the circuit being
	// evaluated; index 0 is always the reserved constant one.
	Values []field.Element

	// Hint resolves a builtin hint id's outputs from its inputs. The
	// reference implementation in package hint recomputes the canonical
	// math for every builtin id, so evaluation can be fully deterministic
	// without trusting a caller-supplied witness.
	Hint func(hintID uint32, inputs []field.Element, numOutputs int) ([]field.Element, error)

	// SubCircuit evaluates a callee circuit's outputs given its inputs: the
	// explicit inputs followed by any hint inputs.
	SubCircuit func(id uint64, inputs []field.Element) ([]field.Element, error)
}

// Resolve looks up the values of a list of variables.
func (ctx *EvalContext) Resolve(vars []uint32) []field.Element {
	out := make([]field.Element, len(vars))
	for i, v := range vars {
		out[i] = ctx.Values[v]
	}
	return out
}

// Instruction is the interface every Source-IR and Hint-Normalized-IR
// instruction satisfies. A fixed, statically known number of output
// variables (NumOutputs) are appended to the circuit's variable list
// whenever an instruction is evaluated, in instruction order.
type Instruction interface {
	// NumOutputs is the number of variables this instruction emits.
	NumOutputs() int
	// InputVars lists every already-defined variable this instruction
	// reads, used to check the "every var read is already defined"
	// invariant.
	InputVars() []uint32
	// SubCircuit reports the callee id when this instruction invokes a
	// named sub-circuit.
	SubCircuit() (id uint64, ok bool)
	// Eval produces the instruction's output values in order.
	Eval(ctx *EvalContext) ([]field.Element, error)
}

// Constraint is satisfied by both Source-IR's typed (Zero/Bool/NonZero)
// constraints and Hint-Normalized-IR's RawConstraint.
type Constraint interface {
	// InputVar is the variable this constraint checks.
	InputVar() uint32
	// Check reports a non-nil error if the constraint is violated under
	// ctx's resolved values.
	Check(ctx *EvalContext) error
}
