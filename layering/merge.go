package layering

import (
	"sort"

	"github.com/consensys/gnark-layered/internal/utils"
)

// mergeLayouts implements spec.md §4.2.3: pack groups (each a power-of-two
// length placement array) greedily by descending size, overlaying onto
// non-conflicting strides of the accumulator, then slot in the loose
// additional variables, finally padding to the next power of two.
func mergeLayouts(groups [][]uint32, additional []uint32) []uint32 {
	for _, g := range groups {
		if !utils.IsPowerOfTwo(len(g)) && len(g) != 0 {
			panic("layering: merge_layouts: placement group size must be a power of two")
		}
	}

	order := make([]int, 0, len(groups))
	for i, g := range groups {
		if len(g) != 0 {
			order = append(order, i)
		}
	}
	sort.Slice(order, func(a, b int) bool {
		i, j := order[a], order[b]
		if len(groups[i]) != len(groups[j]) {
			return len(groups[i]) > len(groups[j])
		}
		return i < j
	})

	res := make([]uint32, 0)
	for _, idx := range order {
		pg := groups[idx]
		if len(res)%len(pg) != 0 {
			panic("layering: merge_layouts: accumulator length not aligned to group length")
		}
		placed := false
		for i := 0; i+len(pg) <= len(res) && !placed; i += len(pg) {
			ok := true
			for j := range pg {
				if res[i+j] != EMPTY && pg[j] != EMPTY {
					ok = false
					break
				}
			}
			if ok {
				for j := range pg {
					if pg[j] != EMPTY {
						res[i+j] = pg[j]
					}
				}
				placed = true
			}
		}
		if !placed {
			res = append(res, pg...)
		}
	}

	slot := 0
	for _, v := range additional {
		for slot < len(res) && res[slot] != EMPTY {
			slot++
		}
		if slot >= len(res) {
			res = append(res, v)
		} else {
			res[slot] = v
		}
		slot++
	}

	pad := utils.NextPowerOfTwo(len(res)) - len(res)
	for i := 0; i < pad; i++ {
		res = append(res, EMPTY)
	}
	return res
}

// subsArray replaces every non-EMPTY entry of l with s[l[i]] in place.
func subsArray(l []uint32, s []uint32) {
	for i, v := range l {
		if v != EMPTY {
			l[i] = s[v]
		}
	}
}

// subsMap replaces every non-EMPTY entry of l with m[l[i]] in place, or
// EMPTY if l[i] has no entry in m (e.g. a callee output the caller does not
// keep at this layer).
func subsMap(l []uint32, m map[uint32]int) {
	for i, v := range l {
		if v == EMPTY {
			continue
		}
		if nv, ok := m[v]; ok {
			l[i] = uint32(nv)
		} else {
			l[i] = EMPTY
		}
	}
}
