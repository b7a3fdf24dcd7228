// Package builder implements the hint-normalization pass: it rewrites a
// Source-IR root circuit into an equisatisfiable Hint-Normalized-IR root
// circuit, per the rewrite table of spec.md §4.1.
package builder

import (
	"github.com/consensys/gnark-layered/circuit"
	"github.com/consensys/gnark-layered/circuit/hintnormalized"
	"github.com/consensys/gnark-layered/field"
)

// builder is the incremental per-circuit rewrite state: it appends rewritten
// instructions to an output circuit, tracks the new variable id each
// original variable id has been substituted with, and tracks which new
// variables carry a known compile-time constant value (forward-propagated
// from ConstantOrRandom instructions with a literal coefficient).
type builder struct {
	numInputs     int
	numHintInputs int

	instructions []circuit.Instruction
	constraints  []circuit.Constraint
	markedBools  []uint32

	// oldToNew translates a variable id of the circuit being rewritten into
	// its substitute in the circuit being built. It is seeded with the
	// identity map over the reserved constant-one slot, the explicit
	// inputs, and the hint inputs, since hint normalization never renames or
	// adds to those.
	oldToNew map[uint32]uint32

	// constVal holds the known literal value of every *new* variable that
	// was bound by a constant ConstantOrRandom instruction.
	constVal map[uint32]field.Element

	nextVar uint32
}

func newBuilder(numInputs, numHintInputs int) *builder {
	b := &builder{
		numInputs:     numInputs,
		numHintInputs: numHintInputs,
		oldToNew:      make(map[uint32]uint32),
		constVal:      make(map[uint32]field.Element),
	}
	n := uint32(1 + numInputs + numHintInputs)
	for v := uint32(0); v < n; v++ {
		b.oldToNew[v] = v
	}
	b.nextVar = n
	return b
}

// translate maps a slice of original variable ids to their substitutes.
func (b *builder) translate(oldVars []uint32) []uint32 {
	out := make([]uint32, len(oldVars))
	for i, v := range oldVars {
		out[i] = b.oldToNew[v]
	}
	return out
}

// bind records the substitute new variable id for each of a rewritten
// instruction's original output variable ids, in order.
func (b *builder) bind(oldVars []uint32, newVars []uint32) {
	for i, v := range oldVars {
		b.oldToNew[v] = newVars[i]
	}
}

// pushInsn appends insn to the output circuit and returns the fresh output
// variable ids it was assigned, in order.
func (b *builder) pushInsn(insn circuit.Instruction) []uint32 {
	n := insn.NumOutputs()
	ids := make([]uint32, n)
	for i := 0; i < n; i++ {
		ids[i] = b.nextVar
		b.nextVar++
	}
	b.instructions = append(b.instructions, insn)
	return ids
}

func (b *builder) addLinComb(lc circuit.LinComb) uint32 {
	return b.pushInsn(hintnormalized.LinComb{LC: lc})[0]
}

func (b *builder) addMul(vars []uint32) uint32 {
	return b.pushInsn(hintnormalized.Mul{Vars: vars})[0]
}

func (b *builder) addHint(id uint32, inputs []uint32, n int) []uint32 {
	return b.pushInsn(hintnormalized.Hint{HintID: id, Inputs: inputs, NumOut: n})
}

func (b *builder) addConst(coef circuit.Coef) uint32 {
	v := b.pushInsn(hintnormalized.ConstantOrRandom{Coef: coef})[0]
	if coef.IsConstant() {
		b.constVal[v] = coef.Value
	}
	return v
}

func (b *builder) addSubCircuitCall(id uint64, inputs []uint32, n int) []uint32 {
	return b.pushInsn(hintnormalized.SubCircuitCall{SubCircuitID: id, Inputs: inputs, NumOut: n})
}

// constantValue reports the known literal value of new variable v, if any.
func (b *builder) constantValue(v uint32) (field.Element, bool) {
	val, ok := b.constVal[v]
	return val, ok
}

// assert enqueues a Zero(v) raw constraint.
func (b *builder) assert(v uint32) {
	b.constraints = append(b.constraints, hintnormalized.RawConstraint{Var: v})
}

// markBool enqueues a Zero(v*(v-1)) raw constraint and records v as a known
// boolean for the layering pass.
func (b *builder) markBool(v uint32) {
	negOne := field.One().Neg()
	lc := circuit.LinComb{
		Terms:    []circuit.LinCombTerm{{Coef: field.One(), Var: v}},
		Constant: negOne,
	}
	diff := b.addLinComb(lc)
	prod := b.addMul([]uint32{v, diff})
	b.assert(prod)
	b.markedBools = append(b.markedBools, v)
}

// copy emits the identity LinComb `1*v + 0`, used where the rewrite table
// calls for passing a value through under a fresh variable id.
func (b *builder) copy(v uint32) uint32 {
	lc := circuit.LinComb{Terms: []circuit.LinCombTerm{{Coef: field.One(), Var: v}}}
	return b.addLinComb(lc)
}

func (b *builder) build() *circuit.Def {
	return &circuit.Def{
		NumInputs:     b.numInputs,
		NumHintInputs: b.numHintInputs,
		Instructions:  b.instructions,
		Constraints:   b.constraints,
		MarkedBools:   b.markedBools,
	}
}
