package circuit

import (
	"fmt"

	"github.com/consensys/gnark-layered/field"
)

// HintFunc resolves a builtin hint id's outputs from its inputs.
type HintFunc func(hintID uint32, inputs []field.Element, numOutputs int) ([]field.Element, error)

// Eval evaluates circuit id in root against explicit inputs x, re-deriving
// every hint value through hintFn rather than trusting a caller-supplied
// witness, and returns the circuit's declared outputs. It is the evaluator
// spec.md §8's semantic-equivalence property is checked against: the same
// driver runs against both a Source-IR root and its Hint-Normalized-IR
// image, and their outputs must match for every input on which the former
// succeeds.
// x must supply exactly def.NumInputs + def.NumHintInputs values: the
// circuit's explicit inputs followed by its hint inputs. For the entry
// circuit (conventionally id 0) hint inputs are ordinarily absent; a
// sub-circuit called with non-zero NumHintInputs receives them as the tail
// of the single combined input list a SubCircuitCall instruction carries
// (spec.md's instruction table does not split the two), pre-computed by
// whatever Hint instructions its caller ran.
func Eval(rc *RootCircuit, id uint64, x []field.Element, hintFn HintFunc) ([]field.Element, error) {
	def, ok := rc.Circuits[id]
	if !ok {
		return nil, fmt.Errorf("eval: circuit %d not found", id)
	}
	want := def.NumInputs + def.NumHintInputs
	if len(x) != want {
		return nil, fmt.Errorf("eval: circuit %d expects %d inputs (%d explicit + %d hint), got %d", id, want, def.NumInputs, def.NumHintInputs, len(x))
	}

	values := make([]field.Element, 1, def.NumVars())
	values[0] = field.One()
	values = append(values, x...)

	ctx := &EvalContext{Values: values, Hint: hintFn}
	ctx.SubCircuit = func(subID uint64, inputs []field.Element) ([]field.Element, error) {
		return Eval(rc, subID, inputs, hintFn)
	}

	for i, insn := range def.Instructions {
		out, err := insn.Eval(ctx)
		if err != nil {
			return nil, fmt.Errorf("circuit %d: instruction %d: %w", id, i, err)
		}
		if len(out) != insn.NumOutputs() {
			return nil, fmt.Errorf("circuit %d: instruction %d: produced %d outputs, declared %d", id, i, len(out), insn.NumOutputs())
		}
		ctx.Values = append(ctx.Values, out...)
	}
	for i, con := range def.Constraints {
		if err := con.Check(ctx); err != nil {
			return nil, fmt.Errorf("circuit %d: constraint %d: %w", id, i, err)
		}
	}

	outputs := make([]field.Element, len(def.Outputs))
	for i, v := range def.Outputs {
		outputs[i] = ctx.Values[v]
	}
	return outputs, nil
}
