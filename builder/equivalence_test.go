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
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// referenceHintFn re-derives every hint value through the builtin reference
// table, never trusting a caller-supplied witness: the same discipline
// circuit.Eval's own doc comment calls out as what this property checks
// against.
func referenceHintFn(hintID uint32, inputs []field.Element, numOutputs int) ([]field.Element, error) {
	res := make([]field.Element, numOutputs)
	if err := hint.ReferenceFunction(hint.BuiltinID(hintID))(inputs, res); err != nil {
		return nil, err
	}
	return res, nil
}

// checkSeed builds a random Source-IR root from seed, normalizes it, and
// checks that either normalization itself errs (an accepted outcome, e.g. a
// generated Commit instruction) or the normalized root validates and agrees
// with the Source-IR root on five random input vectors.
func checkSeed(seed int64) bool {
	rnd := rand.New(rand.NewSource(seed))
	root := source.GenerateRandom(rnd, source.GenParams{
		NumCircuits:     1 + rnd.Intn(10),
		NumInstructions: 10,
		SubCallProb:     0.5,
	})

	normalized, err := builder.NormalizeHints(root)
	if err != nil {
		return true
	}
	if err := normalized.Validate(); err != nil {
		return false
	}
	for _, def := range normalized.Circuits {
		if err := hintnormalized.ValidateShape(def); err != nil {
			return false
		}
	}

	entry := root.Circuits[0]
	for i := 0; i < 5; i++ {
		x := make([]field.Element, entry.NumInputs)
		for j := range x {
			x[j] = field.FromInt64(int64(rnd.Intn(2000) - 1000))
		}
		wantOut, wantErr := circuit.Eval(root, 0, x, referenceHintFn)
		gotOut, gotErr := circuit.Eval(normalized, 0, x, referenceHintFn)
		if (wantErr == nil) != (gotErr == nil) {
			return false
		}
		if wantErr != nil {
			continue
		}
		if len(wantOut) != len(gotOut) {
			return false
		}
		for k := range wantOut {
			if !wantOut[k].Equal(gotOut[k]) {
				return false
			}
		}
	}
	return true
}

func TestHintNormalizationPreservesSemantics(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 3000
	properties := gopter.NewProperties(parameters)

	properties.Property("hint normalization preserves evaluation semantics", prop.ForAll(
		checkSeed,
		gen.Int64(),
	))

	properties.TestingRun(t)
}
