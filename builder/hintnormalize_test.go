package builder_test

import (
	"math/rand"
	"testing"

	"github.com/consensys/gnark-layered/builder"
	"github.com/consensys/gnark-layered/circuit"
	"github.com/consensys/gnark-layered/circuit/hintnormalized"
	"github.com/consensys/gnark-layered/circuit/source"
	"github.com/consensys/gnark-layered/field"
	"github.com/consensys/gnark-layered/hint"
	"github.com/stretchr/testify/require"
)

// scenario 1: a pass-through LinComb appears bit-identical at the same
// position in the output, and Zero(3) becomes RawConstraint(3).
func TestLinCombPassThroughAndZeroConstraint(t *testing.T) {
	lc := circuit.LinComb{
		Terms: []circuit.LinCombTerm{
			{Coef: field.One(), Var: 1},
			{Coef: field.One(), Var: 2},
		},
		Constant: field.One(),
	}
	src := &circuit.Def{
		NumInputs:    2,
		Instructions: []circuit.Instruction{source.LinComb{LC: lc}},
		Constraints:  []circuit.Constraint{source.Constraint{Var: 3, Type: source.Zero}},
		Outputs:      []uint32{3},
	}
	rc := circuit.NewRootCircuit()
	rc.Circuits[0] = src

	out, err := builder.NormalizeHints(rc)
	require.NoError(t, err)

	def := out.Circuits[0]
	require.Len(t, def.Instructions, 1)
	got, ok := def.Instructions[0].(hintnormalized.LinComb)
	require.True(t, ok)
	require.Equal(t, lc, got.LC)

	require.Len(t, def.Constraints, 1)
	require.Equal(t, hintnormalized.RawConstraint{Var: 3}, def.Constraints[0])
}

// scenario 2: Div{x, y literal, checked=false} becomes Mul(x, const(y^-1))
// with no new constraint.
func TestDivByLiteralBecomesMul(t *testing.T) {
	yVal := field.FromUint64(7)
	src := &circuit.Def{
		NumInputs: 1,
		Instructions: []circuit.Instruction{
			source.ConstantOrRandom{Coef: circuit.ConstantCoef(yVal)},
			source.Div{X: 1, Y: 2, Checked: false},
		},
		Outputs: []uint32{3},
	}
	rc := circuit.NewRootCircuit()
	rc.Circuits[0] = src

	out, err := builder.NormalizeHints(rc)
	require.NoError(t, err)
	def := out.Circuits[0]
	require.Empty(t, def.Constraints)

	var foundMul bool
	for _, insn := range def.Instructions {
		if m, ok := insn.(hintnormalized.Mul); ok {
			foundMul = true
			require.Len(t, m.Vars, 2)
		}
	}
	require.True(t, foundMul)

	res, err := circuit.Eval(out, 0, []field.Element{field.FromUint64(21)}, nil)
	require.NoError(t, err)
	require.True(t, res[0].Equal(field.FromUint64(3)))
}

// scenario 3: IsZero(x) on random x produces 1 when x=0, 0 otherwise, and
// the x*m=0 constraint holds unconditionally.
func TestIsZeroGeneral(t *testing.T) {
	src := &circuit.Def{
		NumInputs:    1,
		Instructions: []circuit.Instruction{source.IsZero{X: 1}},
		Outputs:      []uint32{2},
	}
	rc := circuit.NewRootCircuit()
	rc.Circuits[0] = src

	out, err := builder.NormalizeHints(rc)
	require.NoError(t, err)
	require.NoError(t, out.Validate())

	hintFn := func(id uint32, inputs []field.Element, n int) ([]field.Element, error) {
		res := make([]field.Element, n)
		err := hint.ReferenceFunction(hint.BuiltinID(id))(inputs, res)
		return res, err
	}

	res, err := circuit.Eval(out, 0, []field.Element{field.Zero()}, hintFn)
	require.NoError(t, err)
	require.True(t, res[0].Equal(field.One()))

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		x := field.FromUint64(uint64(rng.Int63n(1_000_000) + 1))
		res, err := circuit.Eval(out, 0, []field.Element{x}, hintFn)
		require.NoError(t, err)
		require.True(t, res[0].IsZero())
	}
}

// BoolBinOp asserts booleanity on both operands regardless of op: an
// unconstrained input must not be able to slip a non-boolean value into an
// Or or Xor gate and still satisfy the compiled constraint system.
func TestBoolBinOpAssertsOperandBoolean(t *testing.T) {
	for _, op := range []source.BoolOp{source.BoolOr, source.BoolXor} {
		src := &circuit.Def{
			NumInputs:    2,
			Instructions: []circuit.Instruction{source.BoolBinOp{X: 1, Y: 2, Op: op}},
			Outputs:      []uint32{3},
		}
		rc := circuit.NewRootCircuit()
		rc.Circuits[0] = src

		out, err := builder.NormalizeHints(rc)
		require.NoError(t, err)

		def := out.Circuits[0]
		require.Len(t, def.MarkedBools, 3, "op %v: expected x, y, and the bin-op output marked boolean", op)

		hintFn := func(id uint32, inputs []field.Element, n int) ([]field.Element, error) {
			res := make([]field.Element, n)
			err := hint.ReferenceFunction(hint.BuiltinID(id))(inputs, res)
			return res, err
		}
		_, err = circuit.Eval(out, 0, []field.Element{field.FromUint64(2), field.One()}, hintFn)
		require.Error(t, err, "op %v: non-boolean x must violate a raw constraint", op)
	}
}

// scenario 4: BoolBinOp{Xor, 1, 1} with both operands = 1 evaluates to 0.
func TestBoolXorSelfIsZero(t *testing.T) {
	src := &circuit.Def{
		NumInputs:    1,
		Instructions: []circuit.Instruction{source.BoolBinOp{X: 1, Y: 1, Op: source.BoolXor}},
		Outputs:      []uint32{2},
	}
	rc := circuit.NewRootCircuit()
	rc.Circuits[0] = src

	out, err := builder.NormalizeHints(rc)
	require.NoError(t, err)

	res, err := circuit.Eval(out, 0, []field.Element{field.One()}, nil)
	require.NoError(t, err)
	require.True(t, res[0].IsZero())
}

// scenario 2b: Div{x, y non-constant, checked=false} rewrites to a hint q
// plus an assert(y*q - x = 0), and evaluates correctly for y != 0.
func TestDivByVariableUsesHintAssert(t *testing.T) {
	src := &circuit.Def{
		NumInputs:    2,
		Instructions: []circuit.Instruction{source.Div{X: 1, Y: 2, Checked: false}},
		Outputs:      []uint32{3},
	}
	rc := circuit.NewRootCircuit()
	rc.Circuits[0] = src

	out, err := builder.NormalizeHints(rc)
	require.NoError(t, err)
	require.NotEmpty(t, out.Circuits[0].Constraints)

	hintFn := func(id uint32, inputs []field.Element, n int) ([]field.Element, error) {
		res := make([]field.Element, n)
		err := hint.ReferenceFunction(hint.BuiltinID(id))(inputs, res)
		return res, err
	}

	res, err := circuit.Eval(out, 0, []field.Element{field.FromUint64(21), field.FromUint64(7)}, hintFn)
	require.NoError(t, err)
	require.True(t, res[0].Equal(field.FromUint64(3)))
}

func TestDivByZeroConstantFails(t *testing.T) {
	src := &circuit.Def{
		NumInputs: 1,
		Instructions: []circuit.Instruction{
			source.ConstantOrRandom{Coef: circuit.ConstantCoef(field.Zero())},
			source.Div{X: 1, Y: 2, Checked: false},
		},
		Outputs: []uint32{3},
	}
	rc := circuit.NewRootCircuit()
	rc.Circuits[0] = src

	_, err := builder.NormalizeHints(rc)
	require.ErrorIs(t, err, builder.ErrDivByZeroConstant)
}

func TestCommitRejected(t *testing.T) {
	src := &circuit.Def{
		NumInputs:    1,
		Instructions: []circuit.Instruction{source.Commit{X: 1}},
		Outputs:      []uint32{2},
	}
	rc := circuit.NewRootCircuit()
	rc.Circuits[0] = src

	_, err := builder.NormalizeHints(rc)
	require.ErrorIs(t, err, builder.ErrCommitUnimplemented)
}
