package utils

import "testing"

func TestNextPowerOfTwo(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 4: 4, 5: 8, 8: 8, 9: 16}
	for in, want := range cases {
		if got := NextPowerOfTwo(in); got != want {
			t.Errorf("NextPowerOfTwo(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestPoolDedup(t *testing.T) {
	p := NewPool[uint32]()
	if idx := p.Add(7); idx != 0 {
		t.Fatalf("first add index = %d, want 0", idx)
	}
	if idx := p.Add(9); idx != 1 {
		t.Fatalf("second add index = %d, want 1", idx)
	}
	if idx := p.Add(7); idx != 0 {
		t.Fatalf("re-add index = %d, want 0", idx)
	}
	if p.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", p.Len())
	}
}
