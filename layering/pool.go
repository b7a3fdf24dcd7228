package layering

import (
	"encoding/binary"
	"hash/fnv"
	"sort"
)

// LayoutPool deduplicates LayerLayout values by structural equality,
// handing out stable integer handles (spec.md §4.3). Go's map keys must be
// comparable, and LayerLayout holds slices and maps, so dedup is done by
// hand: a structural hash buckets candidates, and a hash collision falls
// back to a full structural equality check.
type LayoutPool struct {
	items   []*LayerLayout
	buckets map[uint64][]int
}

// NewLayoutPool returns an empty pool.
func NewLayoutPool() *LayoutPool {
	return &LayoutPool{buckets: make(map[uint64][]int)}
}

// Add returns the existing handle for a structurally identical layout
// already in the pool, or inserts l and returns its new handle.
func (p *LayoutPool) Add(l *LayerLayout) int {
	h := hashLayout(l)
	for _, idx := range p.buckets[h] {
		if layoutsEqual(p.items[idx], l) {
			return idx
		}
	}
	idx := len(p.items)
	p.items = append(p.items, l)
	p.buckets[h] = append(p.buckets[h], idx)
	return idx
}

// Get returns the layout registered at handle id.
func (p *LayoutPool) Get(id int) *LayerLayout {
	return p.items[id]
}

// Len reports how many distinct layouts the pool holds.
func (p *LayoutPool) Len() int {
	return len(p.items)
}

func hashLayout(l *LayerLayout) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	writeUint := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	writeUint(l.CircuitID)
	writeUint(uint64(l.Layer))
	writeUint(uint64(l.Size))
	if l.isSparse() {
		writeUint(0)
		keys := make([]int, 0, len(l.SparsePlacement))
		for k := range l.SparsePlacement {
			keys = append(keys, k)
		}
		sort.Ints(keys)
		for _, k := range keys {
			writeUint(uint64(k))
			writeUint(uint64(l.SparsePlacement[k]))
		}
		writeUint(uint64(len(l.SubLayouts)))
		for _, sl := range l.SubLayouts {
			writeUint(uint64(sl.ID))
			writeUint(uint64(sl.Offset))
			writeUint(uint64(sl.InsnID))
		}
	} else {
		writeUint(1)
		for _, v := range l.Dense {
			writeUint(uint64(v))
		}
	}
	return h.Sum64()
}

func layoutsEqual(a, b *LayerLayout) bool {
	if a.CircuitID != b.CircuitID || a.Layer != b.Layer {
		return false
	}
	if a.Size != b.Size || a.isSparse() != b.isSparse() {
		return false
	}
	if !a.isSparse() {
		if len(a.Dense) != len(b.Dense) {
			return false
		}
		for i, v := range a.Dense {
			if b.Dense[i] != v {
				return false
			}
		}
		return true
	}
	if len(a.SparsePlacement) != len(b.SparsePlacement) {
		return false
	}
	for k, v := range a.SparsePlacement {
		if bv, ok := b.SparsePlacement[k]; !ok || bv != v {
			return false
		}
	}
	if len(a.SubLayouts) != len(b.SubLayouts) {
		return false
	}
	for i, sl := range a.SubLayouts {
		if b.SubLayouts[i] != sl {
			return false
		}
	}
	return true
}
