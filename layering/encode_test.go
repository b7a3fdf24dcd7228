package layering_test

import (
	"testing"

	"github.com/consensys/gnark-layered/layering"
	"github.com/stretchr/testify/require"
)

func TestLayoutPoolCBORRoundTrip(t *testing.T) {
	circuits := map[uint64]*layering.CompiledCircuit{
		10: leafCircuit(10, 2),
		11: leafCircuit(11, 3),
	}
	solver := layering.NewSolver(circuits)
	solver.Solve(layering.LayerReq{CircuitID: 10, Layer: 0})
	solver.Solve(layering.LayerReq{CircuitID: 11, Layer: 0})
	solver.Solve(layering.LayerReq{CircuitID: 10, Layer: -1})

	data, err := solver.Pool.MarshalCBOR()
	require.NoError(t, err)

	got := layering.NewLayoutPool()
	require.NoError(t, got.UnmarshalCBOR(data))

	require.Equal(t, solver.Pool.Len(), got.Len())
	for i := 0; i < solver.Pool.Len(); i++ {
		require.Equal(t, solver.Pool.Get(i), got.Get(i))
	}
}
