package layering

import "github.com/fxamacker/cbor/v2"

// MarshalCBOR encodes the pool's distinct layouts, in handle order, so a
// pool computed once can be cached across repeated compiles of the same
// root circuit instead of re-solving it from scratch.
func (p *LayoutPool) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(p.items)
}

// UnmarshalCBOR rebuilds a pool from data produced by MarshalCBOR. Every
// layout is re-inserted through Add, in its original handle order, so
// decoding reassigns handle 0 to the first stored layout and so on, and any
// structurally identical entries collapse exactly as a fresh NewSolver run
// over the same circuit set would have deduplicated them.
func (p *LayoutPool) UnmarshalCBOR(data []byte) error {
	var items []*LayerLayout
	if err := cbor.Unmarshal(data, &items); err != nil {
		return err
	}
	*p = *NewLayoutPool()
	for _, l := range items {
		p.Add(l)
	}
	return nil
}
