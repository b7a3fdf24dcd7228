package field

import "testing"

func TestInvZero(t *testing.T) {
	if _, ok := Zero().Inv(); ok {
		t.Fatal("Inv of zero must report false")
	}
}

func TestInvRoundTrip(t *testing.T) {
	a := FromUint64(7)
	inv, ok := a.Inv()
	if !ok {
		t.Fatal("Inv of 7 should succeed")
	}
	if got := a.Mul(inv); !got.Equal(One()) {
		t.Fatalf("a * a^-1 = %s, want 1", got)
	}
}

func TestArithmetic(t *testing.T) {
	a := FromUint64(3)
	b := FromUint64(5)
	if got := a.Add(b); !got.Equal(FromUint64(8)) {
		t.Fatalf("3+5 = %s, want 8", got)
	}
	if got := a.Mul(b); !got.Equal(FromUint64(15)) {
		t.Fatalf("3*5 = %s, want 15", got)
	}
	if got := b.Sub(a); !got.Equal(FromUint64(2)) {
		t.Fatalf("5-3 = %s, want 2", got)
	}
	if got := a.Neg().Add(a); !got.IsZero() {
		t.Fatalf("a + (-a) should be zero, got %s", got)
	}
}
