package builder

import (
	"fmt"

	"github.com/consensys/gnark-layered/circuit"
	"github.com/consensys/gnark-layered/circuit/source"
	"github.com/consensys/gnark-layered/field"
	"github.com/consensys/gnark-layered/hint"
	"github.com/consensys/gnark-layered/internal/logger"
)

// NormalizeHints rewrites every circuit of a Source-IR root into its
// Hint-Normalized-IR image, per the rewrite table of spec.md §4.1. Circuit
// ids are preserved; a circuit's sub-circuit calls therefore still resolve
// correctly in the output root.
func NormalizeHints(src *circuit.RootCircuit) (*circuit.RootCircuit, error) {
	logger.Logger.Debug().
		Int("num_circuits", len(src.Circuits)).
		Str("field", circuit.BN254Config{}.Name()).
		Msg("hint normalization starting")
	out := circuit.NewRootCircuit()
	for id, def := range src.Circuits {
		rewritten, err := transformCircuit(def)
		if err != nil {
			logger.Logger.Error().Uint64("circuit", id).Err(err).Msg("hint normalization failed")
			return nil, fmt.Errorf("circuit %d: %w", id, err)
		}
		out.Circuits[id] = rewritten
	}
	return out, nil
}

// transformCircuit walks def's instructions in order and rewrites each one
// per the table, translating variable references through the builder's
// old-to-new map as it goes.
func transformCircuit(def *circuit.Def) (*circuit.Def, error) {
	b := newBuilder(def.NumInputs, def.NumHintInputs)

	oldVar := uint32(1 + def.NumInputs + def.NumHintInputs)
	for i, insn := range def.Instructions {
		n := insn.NumOutputs()
		oldOutVars := make([]uint32, n)
		for j := 0; j < n; j++ {
			oldOutVars[j] = oldVar + uint32(j)
		}

		newOutVars, err := rewriteInstruction(b, insn)
		if err != nil {
			return nil, fmt.Errorf("instruction %d: %w", i, err)
		}
		if len(newOutVars) != n {
			return nil, fmt.Errorf("instruction %d: rewrite produced %d outputs, want %d", i, len(newOutVars), n)
		}
		b.bind(oldOutVars, newOutVars)
		oldVar += uint32(n)
	}

	for i, con := range def.Constraints {
		sc, ok := con.(source.Constraint)
		if !ok {
			return nil, fmt.Errorf("constraint %d: %w", i, ErrUnknownInstruction)
		}
		v := b.oldToNew[sc.Var]
		switch sc.Type {
		case source.Zero:
			b.assert(v)
		case source.Bool:
			b.markBool(v)
		case source.NonZero:
			inv := b.addHint(uint32(hint.Div), []uint32{0, v}, 1)[0]
			prod := b.addMul([]uint32{v, inv})
			diff := b.addLinComb(circuit.LinComb{
				Terms:    []circuit.LinCombTerm{{Coef: field.One(), Var: prod}},
				Constant: field.One().Neg(),
			})
			b.assert(diff)
		default:
			return nil, fmt.Errorf("constraint %d: unknown constraint type %v", i, sc.Type)
		}
	}

	result := b.build()
	result.Outputs = b.translate(def.Outputs)
	return result, nil
}

// rewriteInstruction applies the single-instruction rewrite table, given
// that insn's input variable ids are still in the *old* numbering (they are
// translated here, not by the caller).
func rewriteInstruction(b *builder, insn circuit.Instruction) ([]uint32, error) {
	switch ins := insn.(type) {
	case source.LinComb:
		lc := translateLinComb(b, ins.LC)
		return []uint32{b.addLinComb(lc)}, nil

	case source.Mul:
		return []uint32{b.addMul(b.translate(ins.Vars))}, nil

	case source.Div:
		return rewriteDiv(b, ins)

	case source.BoolBinOp:
		return rewriteBoolBinOp(b, ins)

	case source.IsZero:
		return rewriteIsZero(b, ins)

	case source.Commit:
		return nil, ErrCommitUnimplemented

	case source.Hint:
		return b.addHint(uint32(ins.HintID), b.translate(ins.Inputs), ins.NumOut), nil

	case source.ConstantOrRandom:
		return []uint32{b.addConst(ins.Coef)}, nil

	case source.SubCircuitCall:
		return b.addSubCircuitCall(ins.SubCircuitID, b.translate(ins.Inputs), ins.NumOut), nil

	case source.UnconstrainedBinOp:
		return rewriteUnconstrainedBinOp(b, ins)

	case source.UnconstrainedSelect:
		return rewriteUnconstrainedSelect(b, ins)

	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownInstruction, insn)
	}
}

func translateLinComb(b *builder, lc circuit.LinComb) circuit.LinComb {
	terms := make([]circuit.LinCombTerm, len(lc.Terms))
	for i, t := range lc.Terms {
		terms[i] = circuit.LinCombTerm{Coef: t.Coef, Var: b.oldToNew[t.Var]}
	}
	return circuit.LinComb{Terms: terms, Constant: lc.Constant}
}

func rewriteDiv(b *builder, ins source.Div) ([]uint32, error) {
	x, y := b.oldToNew[ins.X], b.oldToNew[ins.Y]

	if yv, ok := b.constantValue(y); ok {
		if yv.IsZero() {
			return nil, ErrDivByZeroConstant
		}
		inv, _ := yv.Inv()
		return []uint32{b.addMul([]uint32{x, b.addConst(circuit.ConstantCoef(inv))})}, nil
	}

	if !ins.Checked {
		q := b.addHint(uint32(hint.Div), []uint32{x, y}, 1)[0]
		prod := b.addMul([]uint32{y, q})
		diff := b.addLinComb(circuit.LinComb{
			Terms: []circuit.LinCombTerm{
				{Coef: field.One(), Var: prod},
				{Coef: field.One().Neg(), Var: x},
			},
		})
		b.assert(diff)
		return []uint32{q}, nil
	}

	inv := b.addHint(uint32(hint.Div), []uint32{0, y}, 1)[0]
	prod := b.addMul([]uint32{y, inv})
	diff := b.addLinComb(circuit.LinComb{
		Terms:    []circuit.LinCombTerm{{Coef: field.One(), Var: prod}},
		Constant: field.One().Neg(),
	})
	b.assert(diff)
	return []uint32{b.addMul([]uint32{x, inv})}, nil
}

func rewriteBoolBinOp(b *builder, ins source.BoolBinOp) ([]uint32, error) {
	x, y := b.oldToNew[ins.X], b.oldToNew[ins.Y]
	b.markBool(x)
	b.markBool(y)

	switch ins.Op {
	case source.BoolAnd:
		out := b.addMul([]uint32{x, y})
		b.markBool(out)
		return []uint32{out}, nil

	case source.BoolOr:
		xy := b.addMul([]uint32{x, y})
		lc := circuit.LinComb{
			Terms: []circuit.LinCombTerm{
				{Coef: field.One(), Var: x},
				{Coef: field.One(), Var: y},
				{Coef: field.One().Neg(), Var: xy},
			},
		}
		out := b.addLinComb(lc)
		b.markBool(out)
		return []uint32{out}, nil

	case source.BoolXor:
		xy := b.addMul([]uint32{x, y})
		two := field.FromUint64(2)
		lc := circuit.LinComb{
			Terms: []circuit.LinCombTerm{
				{Coef: field.One(), Var: x},
				{Coef: field.One(), Var: y},
				{Coef: two.Neg(), Var: xy},
			},
		}
		out := b.addLinComb(lc)
		b.markBool(out)
		return []uint32{out}, nil

	default:
		return nil, fmt.Errorf("bool_bin_op: unknown op %v", ins.Op)
	}
}

func rewriteIsZero(b *builder, ins source.IsZero) ([]uint32, error) {
	x := b.oldToNew[ins.X]

	if xv, ok := b.constantValue(x); ok {
		if xv.IsZero() {
			return []uint32{b.addConst(circuit.ConstantCoef(field.One()))}, nil
		}
		return []uint32{b.addConst(circuit.ConstantCoef(field.Zero()))}, nil
	}

	inv := b.addHint(uint32(hint.Div), []uint32{0, x}, 1)[0]
	xInv := b.addMul([]uint32{x, inv})
	m := b.addLinComb(circuit.LinComb{
		Terms:    []circuit.LinCombTerm{{Coef: field.One().Neg(), Var: xInv}},
		Constant: field.One(),
	})
	xm := b.addMul([]uint32{x, m})
	b.assert(xm)
	b.markBool(m)
	return []uint32{m}, nil
}

func rewriteUnconstrainedBinOp(b *builder, ins source.UnconstrainedBinOp) ([]uint32, error) {
	x, y := b.oldToNew[ins.X], b.oldToNew[ins.Y]
	xv, xConst := b.constantValue(x)
	yv, yConst := b.constantValue(y)
	if xConst && yConst {
		v, err := hint.Eval(ins.Op, xv, yv)
		if err != nil {
			return nil, fmt.Errorf("unconstrained_bin_op: %w", err)
		}
		return []uint32{b.addConst(circuit.ConstantCoef(v))}, nil
	}
	return b.addHint(uint32(ins.Op), []uint32{x, y}, 1), nil
}

func rewriteUnconstrainedSelect(b *builder, ins source.UnconstrainedSelect) ([]uint32, error) {
	c, t, f := b.oldToNew[ins.C], b.oldToNew[ins.T], b.oldToNew[ins.F]
	if cv, ok := b.constantValue(c); ok {
		if cv.IsZero() {
			return []uint32{b.copy(f)}, nil
		}
		return []uint32{b.copy(t)}, nil
	}
	return b.addHint(uint32(hint.Select), []uint32{c, t, f}, 1), nil
}
