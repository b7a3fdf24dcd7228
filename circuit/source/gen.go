package source

import (
	"math/rand"

	"github.com/consensys/gnark-layered/circuit"
	"github.com/consensys/gnark-layered/field"
	"github.com/consensys/gnark-layered/hint"
)

// GenParams bounds a randomly generated Source-IR root circuit.
type GenParams struct {
	NumCircuits     int
	NumInstructions int
	SubCallProb     float64
}

// binaryHintOps lists every BuiltinID valid as an UnconstrainedBinOp or
// general Hint operand pair; Div and Select are excluded since they have
// their own dedicated Source-IR instruction kinds.
var binaryHintOps = []hint.BuiltinID{
	hint.Pow, hint.IntDiv, hint.Mod, hint.ShiftL, hint.ShiftR,
	hint.LesserEq, hint.GreaterEq, hint.Lesser, hint.Greater,
	hint.Eq, hint.NotEq, hint.BoolOr, hint.BoolAnd,
	hint.BitOr, hint.BitAnd, hint.BitXor,
}

// GenerateRandom builds a small, acyclic Source-IR root circuit exercising
// every instruction kind, driven entirely by rnd so a caller can reproduce a
// failure from its seed. Circuit ids are assigned so that circuit i may only
// call a circuit with a strictly higher id, guaranteeing acyclicity by
// construction rather than by a post-hoc check.
func GenerateRandom(rnd *rand.Rand, p GenParams) *circuit.RootCircuit {
	n := p.NumCircuits
	if n < 1 {
		n = 1
	}
	rc := circuit.NewRootCircuit()
	for id := n - 1; id >= 0; id-- {
		rc.Circuits[uint64(id)] = genDef(rnd, rc, uint64(id), n, p)
	}
	return rc
}

func genDef(rnd *rand.Rand, rc *circuit.RootCircuit, id uint64, n int, p GenParams) *circuit.Def {
	numInputs := 1 + rnd.Intn(3)
	def := &circuit.Def{NumInputs: numInputs}
	numVars := 1 + numInputs

	emit := func(insn circuit.Instruction, numOut int) []uint32 {
		def.Instructions = append(def.Instructions, insn)
		out := make([]uint32, numOut)
		for i := range out {
			out[i] = uint32(numVars)
			numVars++
		}
		return out
	}
	randVar := func() uint32 {
		return uint32(1 + rnd.Intn(numVars-1))
	}

	// Seed two known-boolean variables up front so BoolBinOp never has to
	// gamble on an arbitrary variable happening to be 0 or 1.
	zero := emit(ConstantOrRandom{Coef: circuit.ConstantCoef(field.Zero())}, 1)
	one := emit(ConstantOrRandom{Coef: circuit.ConstantCoef(field.One())}, 1)
	boolVars := []uint32{zero[0], one[0]}
	randBoolVar := func() uint32 { return boolVars[rnd.Intn(len(boolVars))] }

	// trueOne is also always exactly 1 at runtime, but reached through a Mul
	// rather than a literal ConstantOrRandom, so hint normalization's
	// constant-folding never recognizes it as a compile-time constant: a
	// divisor built from it drives the generic hint-based Div rewrite
	// instead of always taking the literal-divisor shortcut.
	trueOne := emit(Mul{Vars: []uint32{one[0], one[0]}}, 1)

	numInsn := p.NumInstructions
	if numInsn < 1 {
		numInsn = 1
	}
	for i := 0; i < numInsn; i++ {
		if id+1 < uint64(n) && rnd.Float64() < p.SubCallProb {
			calleeID := id + 1 + uint64(rnd.Intn(n-int(id)-1))
			callee := rc.Circuits[calleeID]
			inputs := make([]uint32, callee.NumInputs)
			for j := range inputs {
				inputs[j] = randVar()
			}
			emit(SubCircuitCall{SubCircuitID: calleeID, Inputs: inputs, NumOut: len(callee.Outputs)}, len(callee.Outputs))
			continue
		}

		switch rnd.Intn(10) {
		case 0: // LinComb
			lc := circuit.LinComb{Constant: randField(rnd)}
			for j, t := 0, 1+rnd.Intn(3); j < t; j++ {
				lc.Terms = append(lc.Terms, circuit.LinCombTerm{Coef: randField(rnd), Var: randVar()})
			}
			emit(LinComb{LC: lc}, 1)
		case 1: // Mul
			vars := make([]uint32, 2+rnd.Intn(2))
			for j := range vars {
				vars[j] = randVar()
			}
			emit(Mul{Vars: vars}, 1)
		case 2: // Div, unchecked, always by trueOne: a random divisor can land
			// on zero for some input vector, and unchecked division's
			// hint-normalized image is only equivalent to its Source-IR
			// definition away from that edge, which would make the
			// equivalence property flaky rather than exercise anything new.
			emit(Div{X: randVar(), Y: trueOne[0], Checked: false}, 1)
		case 3: // BoolBinOp
			out := emit(BoolBinOp{X: randBoolVar(), Y: randBoolVar(), Op: BoolOp(rnd.Intn(3))}, 1)
			boolVars = append(boolVars, out[0])
		case 4: // IsZero
			out := emit(IsZero{X: randVar()}, 1)
			boolVars = append(boolVars, out[0])
		case 5: // ConstantOrRandom
			coef := circuit.ConstantCoef(randField(rnd))
			if rnd.Intn(2) == 0 {
				coef = circuit.RandomCoef()
			}
			emit(ConstantOrRandom{Coef: coef}, 1)
		case 6: // UnconstrainedBinOp
			op := binaryHintOps[rnd.Intn(len(binaryHintOps))]
			emit(UnconstrainedBinOp{X: randVar(), Y: randVar(), Op: op}, 1)
		case 7: // UnconstrainedSelect
			emit(UnconstrainedSelect{C: randVar(), T: randVar(), F: randVar()}, 1)
		case 8: // Hint
			op := binaryHintOps[rnd.Intn(len(binaryHintOps))]
			emit(Hint{HintID: op, Inputs: []uint32{randVar(), randVar()}, NumOut: 1}, 1)
		default: // Commit: reserved, always rejected by hint normalization
			emit(Commit{X: randVar()}, 1)
		}
	}

	def.Constraints = append(def.Constraints, Constraint{Var: randBoolVar(), Type: Bool})

	outputs := make([]uint32, 1+rnd.Intn(2))
	for i := range outputs {
		outputs[i] = randVar()
	}
	def.Outputs = outputs
	return def
}

func randField(rnd *rand.Rand) field.Element {
	return field.FromInt64(int64(rnd.Intn(2000) - 1000))
}
