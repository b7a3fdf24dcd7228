package hint

import (
	"testing"

	"github.com/consensys/gnark-layered/field"
)

func TestDivByZeroIsZero(t *testing.T) {
	v, err := Eval(Div, field.FromUint64(5), field.Zero())
	if err != nil {
		t.Fatal(err)
	}
	if !v.IsZero() {
		t.Fatalf("Div(5,0) = %s, want 0", v)
	}
}

func TestDivRoundTrip(t *testing.T) {
	v, err := Eval(Div, field.FromUint64(10), field.FromUint64(2))
	if err != nil {
		t.Fatal(err)
	}
	if !v.Equal(field.FromUint64(5)) {
		t.Fatalf("Div(10,2) = %s, want 5", v)
	}
}

func TestComparisons(t *testing.T) {
	v, _ := Eval(Lesser, field.FromUint64(3), field.FromUint64(5))
	if !v.Equal(field.One()) {
		t.Fatalf("3 < 5 should be 1, got %s", v)
	}
	v, _ = Eval(Greater, field.FromUint64(3), field.FromUint64(5))
	if !v.IsZero() {
		t.Fatalf("3 > 5 should be 0, got %s", v)
	}
}

func TestSelect(t *testing.T) {
	if got := Select(field.Zero(), field.FromUint64(1), field.FromUint64(2)); !got.Equal(field.FromUint64(2)) {
		t.Fatalf("Select(0,1,2) = %s, want 2", got)
	}
	if got := Select(field.One(), field.FromUint64(1), field.FromUint64(2)); !got.Equal(field.FromUint64(1)) {
		t.Fatalf("Select(1,1,2) = %s, want 1", got)
	}
}

func TestReferenceFunction(t *testing.T) {
	fn := ReferenceFunction(BitXor)
	res := make([]field.Element, 1)
	if err := fn([]field.Element{field.FromUint64(6), field.FromUint64(3)}, res); err != nil {
		t.Fatal(err)
	}
	if !res[0].Equal(field.FromUint64(5)) {
		t.Fatalf("6 xor 3 = %s, want 5", res[0])
	}
}
