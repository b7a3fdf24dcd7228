package layering

import "sort"

// prepareLayerLayoutContext builds the per-layer LayerLayoutContext values
// of spec.md §4.2 (plus the synthetic hint-relay context), including the
// greedy placement-group construction of §4.2.1.
func prepareLayerLayoutContext(cc *CompiledCircuit, callees map[uint64]*CompiledCircuit) ([]*LayerLayoutContext, *LayerLayoutContext) {
	lcs := make([]*LayerLayoutContext, cc.OutputLayer+1)
	for i := range lcs {
		lcs[i] = newLayerLayoutContext()
	}
	lcHint := newLayerLayoutContext()

	for i := 0; i <= cc.OutputLayer; i++ {
		if i < len(cc.CombinedConstraints) && cc.CombinedConstraints[i] != nil {
			lcs[i].Vars.Add(*cc.CombinedConstraints[i])
		}
	}
	for _, v := range cc.Outputs {
		lcs[cc.OutputLayer].Vars.Add(v)
	}
	for v := uint32(1); int(v) < cc.NumVars; v++ {
		for l := cc.MinLayer[v]; l <= cc.MaxLayer[v]; l++ {
			lcs[l].Vars.Add(v)
		}
	}
	for _, call := range cc.SubCircuitCalls {
		inputLayer := call.InputLayer
		for _, x := range call.HintInputs {
			lcs[0].Vars.Add(x)
			if inputLayer > 0 {
				lcs[inputLayer].Vars.Add(x)
			}
		}
	}

	for v := uint32(cc.NumInputs + 1); int(v) <= cc.NumInputs+cc.NumHintInputs; v++ {
		lcHint.Vars.Add(v)
	}
	for _, call := range cc.SubCircuitCalls {
		if len(call.HintInputs) > 0 {
			for _, x := range call.HintInputs {
				lcHint.Vars.Add(x)
			}
		}
	}

	for pos, call := range cc.SubCircuitCalls {
		insnID := call.InsnID
		inputLayer := call.InputLayer
		callee := callees[call.SubCircuitID]
		outputLayer := callee.OutputLayer + inputLayer

		lcs[inputLayer].Req = append(lcs[inputLayer].Req, PlacementRequest{InsnID: insnID, InputIDs: call.Inputs})

		for _, x := range call.Outputs {
			lcs[outputLayer].PrevCircuitInsnIDs[x] = insnID
		}
		lcs[outputLayer].PrevCircuitNumOut[insnID] = len(call.Outputs)
		lcs[outputLayer].PrevCircuitSubcPos[insnID] = pos

		if len(call.HintInputs) > 0 {
			relayID := insnID + uint32(cc.NumInstructions)
			for _, x := range call.HintInputs {
				lcs[inputLayer].PrevCircuitInsnIDs[x] = relayID
			}
			lcs[inputLayer].PrevCircuitNumOut[relayID] = len(call.HintInputs)
			lcs[inputLayer].PrevCircuitSubcPos[relayID] = pos
			for j := 1; j < inputLayer; j++ {
				lcs[j].MiddleSubCircuits = append(lcs[j].MiddleSubCircuits, pos)
			}
		}
		for j := inputLayer + 1; j < outputLayer; j++ {
			lcs[j].MiddleSubCircuits = append(lcs[j].MiddleSubCircuits, pos)
		}
	}

	for i := 0; i <= cc.OutputLayer; i++ {
		lc := lcs[i]
		for _, x := range lc.Vars.Vec() {
			lc.Placement[x] = 0
		}
		lc.Parent = append(lc.Parent, 0)
		sort.Slice(lc.Req, func(a, b int) bool {
			ra, rb := lc.Req[a], lc.Req[b]
			if ra.InsnID != rb.InsnID {
				return ra.InsnID < rb.InsnID
			}
			return lessUint32Slice(ra.InputIDs, rb.InputIDs)
		})

		for _, req := range lc.Req {
			pcCnt := make(map[uint32]int)
			plCnt := make(map[int]int)
			for _, x := range req.InputIDs {
				if pc, ok := lc.PrevCircuitInsnIDs[x]; ok {
					pcCnt[pc] = 0
				}
				plCnt[lc.Placement[x]] = 0
			}
			for _, x := range req.InputIDs {
				if pc, ok := lc.PrevCircuitInsnIDs[x]; ok {
					pcCnt[pc]++
				}
				plCnt[lc.Placement[x]]++
			}
			flag := len(plCnt) == 1
			for k, v := range pcCnt {
				if v != lc.PrevCircuitNumOut[k] {
					flag = false
				}
			}
			if flag {
				np := len(lc.Parent)
				var parent int
				for k := range plCnt {
					parent = k
				}
				for _, x := range req.InputIDs {
					lc.Placement[x] = np
				}
				lc.Parent = append(lc.Parent, parent)
			}
		}
	}

	return lcs, lcHint
}

func lessUint32Slice(a, b []uint32) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
