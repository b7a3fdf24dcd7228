package layering

import (
	"fmt"
	"sort"

	"github.com/consensys/gnark-layered/circuit"
	"github.com/consensys/gnark-layered/internal/logger"
	"github.com/consensys/gnark-layered/internal/utils"
)

// Solver drives the recursive, memoized layer layout solve of spec.md
// §4.2.2 over a fixed set of compiled circuits. It owns the per-circuit
// per-layer working contexts and the deduplicating layout pool; per
// spec.md §5 it is strictly single-threaded and holds the whole circuit
// set for its entire lifetime (no cross-circuit recursive call targets the
// circuit currently "checked out", which is safe because the sub-circuit
// graph is acyclic).
type Solver struct {
	compiled map[uint64]*CompiledCircuit
	lcs      map[uint64][]*LayerLayoutContext
	lcHint   map[uint64]*LayerLayoutContext
	memo     map[LayerReq]int
	Pool     *LayoutPool
}

// NewSolver prepares layout context for every circuit in circuits. circuits
// must already be closed under sub-circuit reference (every callee id a
// call names must be present).
func NewSolver(circuits map[uint64]*CompiledCircuit) *Solver {
	s := &Solver{
		compiled: circuits,
		lcs:      make(map[uint64][]*LayerLayoutContext, len(circuits)),
		lcHint:   make(map[uint64]*LayerLayoutContext, len(circuits)),
		memo:     make(map[LayerReq]int),
		Pool:     NewLayoutPool(),
	}
	for id, cc := range circuits {
		lcs, lcHint := prepareLayerLayoutContext(cc, circuits)
		s.lcs[id] = lcs
		s.lcHint[id] = lcHint
	}
	return s
}

// Solve returns the pool handle of req's layout, solving and memoizing it
// first if this is the first time req has been requested.
func (s *Solver) Solve(req LayerReq) int {
	if id, ok := s.memo[req]; ok {
		return id
	}
	var res *LayerLayout
	if req.Layer >= 0 {
		res = s.solveNormal(req)
	} else {
		res = s.solveHintRelay(req)
	}
	id := s.Pool.Add(res)
	s.memo[req] = id
	logger.Logger.Debug().
		Uint64("circuit", req.CircuitID).
		Int("layer", req.Layer).
		Int("size", res.Size).
		Str("field", circuit.BN254Config{}.Name()).
		Msg("layer layout solved")
	return id
}

func (s *Solver) solveHintRelay(req LayerReq) *LayerLayout {
	lcHint := s.lcHint[req.CircuitID]
	n := lcHint.Vars.Len()
	seq := make([]uint32, n)
	for i := range seq {
		seq[i] = uint32(i)
	}
	placement := mergeLayouts(nil, seq)
	return &LayerLayout{CircuitID: req.CircuitID, Layer: -1, Size: len(placement), Dense: placement}
}

// outputOrder maps a callee-global variable id to its position in the
// callee's own declared Outputs list.
func outputOrder(cc *CompiledCircuit) map[uint32]int {
	m := make(map[uint32]int, len(cc.Outputs))
	for i, v := range cc.Outputs {
		m[v] = i
	}
	return m
}

// hintInputsMap maps a callee-global hint-input variable id to its
// canonical 0-based position among the callee's hint inputs.
func hintInputsMap(cc *CompiledCircuit) map[uint32]int {
	m := make(map[uint32]int, cc.NumHintInputs)
	for i := 0; i < cc.NumHintInputs; i++ {
		m[uint32(cc.NumInputs+1+i)] = i
	}
	return m
}

func (s *Solver) solveNormal(req LayerReq) *LayerLayout {
	cc := s.compiled[req.CircuitID]
	lc := s.lcs[req.CircuitID][req.Layer]

	layouts := make(map[uint32][]uint32)
	layoutsSubsArr := make(map[uint32][]uint32)

	for prodID := range lc.PrevCircuitNumOut {
		subcPos := lc.PrevCircuitSubcPos[prodID]
		call := cc.SubCircuitCalls[subcPos]
		callee := s.compiled[call.SubCircuitID]

		var subLayer int
		var x uint32
		if int(prodID) >= cc.NumInstructions {
			x = prodID - uint32(cc.NumInstructions)
			subLayer = -1
		} else {
			x = prodID
			subLayer = callee.OutputLayer
		}

		layoutID := s.Solve(LayerReq{CircuitID: call.SubCircuitID, Layer: subLayer})
		layout := s.Pool.Get(layoutID)
		if layout.isSparse() {
			panic("layering: unexpected sparse layout where dense was required")
		}
		la := append([]uint32(nil), layout.Dense...)

		var subsArrTail []uint32
		if subLayer >= 0 {
			subsArray(la, s.lcs[call.SubCircuitID][subLayer].Vars.Vec())
			subsMap(la, outputOrder(callee))
			subsArray(la, call.Outputs)
			subsArrTail = call.Outputs
		} else {
			subsArray(la, s.lcHint[call.SubCircuitID].Vars.Vec())
			subsMap(la, hintInputsMap(callee))
			subsArray(la, call.HintInputs)
			subsArrTail = call.HintInputs
		}
		subsMap(la, lc.Vars.Map())

		layouts[x] = la
		layoutsSubsArr[x] = subsArrTail
	}

	numGroups := len(lc.Parent)
	childrenVariables := make([][]uint32, numGroups)
	for i, x := range lc.Vars.Vec() {
		if _, ok := lc.PrevCircuitInsnIDs[x]; !ok {
			g := lc.Placement[x]
			childrenVariables[g] = append(childrenVariables[g], uint32(i))
		}
	}
	childrenPrevCircuits := make([][][]uint32, numGroups)
	for x, layout := range layouts {
		v := layoutsSubsArr[x]
		if len(v) > 0 {
			g := lc.Placement[v[0]]
			childrenPrevCircuits[g] = append(childrenPrevCircuits[g], layout)
		}
	}
	childrenNodes := make([][]int, numGroups)
	for i, parent := range lc.Parent {
		if i == 0 {
			continue
		}
		childrenNodes[parent] = append(childrenNodes[parent], i)
	}

	placements := make([][]uint32, numGroups)
	for i := numGroups - 1; i >= 0; i-- {
		groups := make([][]uint32, 0, len(childrenNodes[i])+len(childrenPrevCircuits[i]))
		for _, child := range childrenNodes[i] {
			groups = append(groups, placements[child])
		}
		groups = append(groups, childrenPrevCircuits[i]...)
		placements[i] = mergeLayouts(groups, childrenVariables[i])
	}

	if len(lc.MiddleSubCircuits) == 0 {
		return &LayerLayout{
			CircuitID: req.CircuitID,
			Layer:     req.Layer,
			Size:      len(placements[0]),
			Dense:     placements[0],
		}
	}

	middleLayouts := make([]int, len(lc.MiddleSubCircuits))
	for i, pos := range lc.MiddleSubCircuits {
		call := cc.SubCircuitCalls[pos]
		startLayer := call.InputLayer
		reqLayer := req.Layer - startLayer
		if req.Layer < startLayer {
			reqLayer = -1
		}
		middleLayouts[i] = s.Solve(LayerReq{CircuitID: call.SubCircuitID, Layer: reqLayer})
	}

	sizes := make([]int, len(middleLayouts)+1)
	sizes[0] = len(placements[0])
	for i, id := range middleLayouts {
		sizes[i+1] = s.Pool.Get(id).Size
	}
	order := make([]int, len(sizes))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		i, j := order[a], order[b]
		if sizes[i] != sizes[j] {
			return sizes[j] < sizes[i]
		}
		return i < j
	})

	cur := 0
	sparsePlacement := make(map[int]uint32)
	var subLayouts []SubLayout
	for _, i := range order {
		if i == 0 {
			found := false
			for j, x := range placements[0] {
				if x != EMPTY {
					found = true
					sparsePlacement[cur+j] = x
				}
			}
			if !found {
				continue
			}
		} else {
			pos := lc.MiddleSubCircuits[i-1]
			subLayouts = append(subLayouts, SubLayout{
				ID:     middleLayouts[i-1],
				Offset: cur,
				InsnID: cc.SubCircuitCalls[pos].InsnID,
			})
		}
		cur += sizes[i]
	}

	return &LayerLayout{
		CircuitID:       req.CircuitID,
		Layer:           req.Layer,
		Size:            utils.NextPowerOfTwo(cur),
		SparsePlacement: sparsePlacement,
		SubLayouts:      subLayouts,
	}
}

// Validate reports a sub-circuit call whose callee id is missing from
// circuits. The solver treats its inputs as pre-validated and aborts loudly
// rather than retrying; NewSolver and Solve do not call Validate.
func Validate(circuits map[uint64]*CompiledCircuit) error {
	for id, cc := range circuits {
		for _, call := range cc.SubCircuitCalls {
			if _, ok := circuits[call.SubCircuitID]; !ok {
				return fmt.Errorf("layering: circuit %d calls undefined sub-circuit %d", id, call.SubCircuitID)
			}
		}
	}
	return nil
}
