package layering_test

import (
	"testing"

	"github.com/consensys/gnark-layered/internal/utils"
	"github.com/consensys/gnark-layered/layering"
	"github.com/stretchr/testify/require"
)

func leafCircuit(id uint64, numOutputs int) *layering.CompiledCircuit {
	numVars := 1 + numOutputs
	outputs := make([]uint32, numOutputs)
	minLayer := make([]int, numVars)
	maxLayer := make([]int, numVars)
	for i := 0; i < numOutputs; i++ {
		outputs[i] = uint32(i + 1)
		minLayer[i+1] = 0
		maxLayer[i+1] = 0
	}
	return &layering.CompiledCircuit{
		CircuitID:   id,
		OutputLayer: 0,
		NumInputs:   numOutputs,
		NumVars:     numVars,
		MinLayer:    minLayer,
		MaxLayer:    maxLayer,
		Outputs:     outputs,
	}
}

// scenario 6: a layer fed by two sub-calls of output width 4 and 2, plus one
// loose variable, yields a dense layout of size 8 with the width-4 region
// aligned to a multiple of 4 and the width-2 region aligned to a multiple
// of 2.
func TestLayoutSolverDenseGroupAlignment(t *testing.T) {
	const (
		rootID   = uint64(1)
		calleeA  = uint64(100)
		calleeB  = uint64(101)
		numVars  = 14 // 0 (const) + 6 inputs + 7 outputs (7..13)
		numCalls = 2
	)

	minLayer := make([]int, numVars)
	maxLayer := make([]int, numVars)
	for v := 1; v <= 6; v++ {
		// explicit inputs: fully consumed as sub-call wiring, never
		// independently live at any layer.
		minLayer[v], maxLayer[v] = 1, 0
	}
	for v := 7; v <= 13; v++ {
		minLayer[v], maxLayer[v] = 0, 0
	}

	root := &layering.CompiledCircuit{
		CircuitID:       rootID,
		OutputLayer:     0,
		NumInputs:       6,
		NumVars:         numVars,
		NumInstructions: numCalls,
		MinLayer:        minLayer,
		MaxLayer:        maxLayer,
		Outputs:         []uint32{7, 8, 9, 10, 11, 12, 13},
		SubCircuitCalls: []layering.SubCircuitCall{
			{InsnID: 0, SubCircuitID: calleeA, InputLayer: 0, Inputs: []uint32{1, 2, 3, 4}, Outputs: []uint32{7, 8, 9, 10}},
			{InsnID: 1, SubCircuitID: calleeB, InputLayer: 0, Inputs: []uint32{5, 6}, Outputs: []uint32{11, 12}},
		},
	}

	circuits := map[uint64]*layering.CompiledCircuit{
		rootID:  root,
		calleeA: leafCircuit(calleeA, 4),
		calleeB: leafCircuit(calleeB, 2),
	}
	require.NoError(t, layering.Validate(circuits))

	solver := layering.NewSolver(circuits)
	id := solver.Solve(layering.LayerReq{CircuitID: rootID, Layer: 0})
	layout := solver.Pool.Get(id)

	require.Equal(t, 8, layout.Size)
	require.True(t, utils.IsPowerOfTwo(layout.Size))
	require.NotNil(t, layout.Dense)

	// Dense holds positions into the layer's variable pool (built in
	// Outputs order: 7,8,9,10,11,12,13), so call0's 4-wide output group
	// appears as the contiguous run 0,1,2,3 and call1's 2-wide group as
	// the contiguous run 4,5.
	widthFourOffset := indexOf(layout.Dense, 0)
	require.True(t, widthFourOffset == 0 || widthFourOffset == 4, "width-4 region at offset %d", widthFourOffset)
	for i := 0; i < 4; i++ {
		require.Equal(t, uint32(i), layout.Dense[widthFourOffset+i])
	}

	widthTwoOffset := indexOf(layout.Dense, 4)
	require.Equal(t, 0, widthTwoOffset%2, "width-2 region at offset %d must be even", widthTwoOffset)
	for i := 0; i < 2; i++ {
		require.Equal(t, uint32(4+i), layout.Dense[widthTwoOffset+i])
	}
}

func indexOf(s []uint32, v uint32) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

func TestLayoutPoolDedup(t *testing.T) {
	circuits := map[uint64]*layering.CompiledCircuit{
		10: leafCircuit(10, 2),
	}
	solver := layering.NewSolver(circuits)
	a := solver.Solve(layering.LayerReq{CircuitID: 10, Layer: 0})
	b := solver.Solve(layering.LayerReq{CircuitID: 10, Layer: 0})
	require.Equal(t, a, b)
}

func TestHintRelayLayoutDense(t *testing.T) {
	cc := &layering.CompiledCircuit{
		CircuitID:     20,
		OutputLayer:   0,
		NumInputs:     1,
		NumHintInputs: 3,
		NumVars:       5,
		MinLayer:      make([]int, 5),
		MaxLayer:      make([]int, 5),
		Outputs:       []uint32{1},
	}
	circuits := map[uint64]*layering.CompiledCircuit{20: cc}
	solver := layering.NewSolver(circuits)
	id := solver.Solve(layering.LayerReq{CircuitID: 20, Layer: -1})
	layout := solver.Pool.Get(id)
	require.Equal(t, 4, layout.Size)
	require.Equal(t, []uint32{0, 1, 2, layering.EMPTY}, layout.Dense)
}
