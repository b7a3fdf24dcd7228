// Package layering implements the layer layout solver: given a compiled
// circuit context (per-variable layer bounds and sub-circuit call wiring,
// produced upstream of this module), it computes a dense or sparse slot
// placement for every `(circuit_id, layer)` pair, memoized and deduplicated
// through a shared layout pool.
package layering

import "github.com/consensys/gnark-layered/internal/utils"

// EMPTY is the sentinel marking an unoccupied placement slot: an
// out-of-range id, not a nullable wrapper, since placement arrays are hot.
const EMPTY = ^uint32(0)

// SubCircuitCall is one ordered sub-circuit invocation within a compiled
// circuit: its instruction id, the layer its explicit inputs live at, the
// callee it invokes, and the caller-local variable ids wired to the
// callee's explicit inputs, hint inputs, and outputs.
type SubCircuitCall struct {
	InsnID       uint32
	SubCircuitID uint64
	InputLayer   int
	Inputs       []uint32
	HintInputs   []uint32
	Outputs      []uint32
}

// CompiledCircuit is the layer layout solver's input surface for one
// circuit: its highest used layer, each variable's live-layer range, its
// ordered sub-circuit calls, and (optionally) a per-layer combined
// constraint variable id.
type CompiledCircuit struct {
	CircuitID     uint64
	OutputLayer   int
	NumInputs     int
	NumHintInputs int
	NumVars       int
	// NumInstructions sizes the offset used to distinguish a sub-call's real
	// instruction id from its hint-relay pseudo-producer id (InsnID +
	// NumInstructions): the two id spaces must not collide.
	NumInstructions int
	// MinLayer/MaxLayer are indexed by variable id (entry 0 is unused, inputs
	// and hint inputs included): variable v is live at every layer in
	// [MinLayer[v], MaxLayer[v]], and MinLayer[v] > MaxLayer[v] keeps it out
	// of every layer.
	MinLayer      []int
	MaxLayer      []int
	Outputs       []uint32

	// CombinedConstraints[l], if non-nil, names a single aggregate
	// constraint variable the solver must keep live at layer l.
	CombinedConstraints []*uint32

	SubCircuitCalls []SubCircuitCall
}

// PlacementRequest is a request to place a sub-call's input variables
// contiguously, considered in `(InsnID, InputIDs)` lexicographic order so
// placement-group construction is deterministic.
type PlacementRequest struct {
	InsnID   uint32
	InputIDs []uint32
}

// LayerLayoutContext is the per-layer working state §4.2 builds while
// preparing a circuit for layout solving.
type LayerLayoutContext struct {
	Vars               *utils.Pool[uint32]
	PrevCircuitInsnIDs map[uint32]uint32 // var id -> id of the sub-call (or hint-relay pseudo-call) that produced it
	PrevCircuitNumOut  map[uint32]int    // insn id -> number of outputs of that sub-call
	PrevCircuitSubcPos map[uint32]int    // insn id -> index into CompiledCircuit.SubCircuitCalls
	Placement          map[uint32]int    // var id -> placement group id
	Parent             []int             // placement group id -> parent group id; group 0 is the root
	Req                []PlacementRequest
	MiddleSubCircuits  []int // indices into SubCircuitCalls whose call spans through this layer
}

func newLayerLayoutContext() *LayerLayoutContext {
	return &LayerLayoutContext{
		Vars:               utils.NewPool[uint32](),
		PrevCircuitInsnIDs: make(map[uint32]uint32),
		PrevCircuitNumOut:  make(map[uint32]int),
		PrevCircuitSubcPos: make(map[uint32]int),
		Placement:          make(map[uint32]int),
	}
}

// LayerReq is a memoization key: solve the layout of circuit_id at layer.
// Layer -1 denotes the synthetic hint-relay layer.
type LayerReq struct {
	CircuitID uint64
	Layer     int
}

// SubLayout is one middle sub-circuit's placement within a sparse layer
// layout: id is a handle into the layout pool.
type SubLayout struct {
	ID     int
	Offset int
	InsnID uint32
}

// LayerLayout is the solved placement of one `(circuit_id, layer)`. Dense
// is non-nil for a dense layout; SparsePlacement/SubLayouts are used for a
// sparse one. Exactly one of the two representations is populated.
type LayerLayout struct {
	CircuitID uint64
	Layer     int
	Size      int

	Dense []uint32 // placement[i] = variable id at slot i, or EMPTY

	SparsePlacement map[int]uint32 // slot -> variable id, only occupied slots
	SubLayouts      []SubLayout
}

func (l *LayerLayout) isSparse() bool {
	return l.Dense == nil
}
