// Package field provides the prime field arithmetic circuits in this module
// are compiled over. It wraps gnark-crypto's bn254 scalar field element, the
// same type gnark's own R1CS solver uses on its hot path.
package field

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Element is a single element of the field. The zero value is the additive
// identity.
type Element struct {
	inner fr.Element
}

// Zero returns the additive identity.
func Zero() Element { return Element{} }

// One returns the multiplicative identity.
func One() Element {
	var e Element
	e.inner.SetOne()
	return e
}

// FromUint64 embeds a small unsigned integer into the field.
func FromUint64(v uint64) Element {
	var e Element
	e.inner.SetUint64(v)
	return e
}

// FromInt64 embeds a small signed integer into the field.
func FromInt64(v int64) Element {
	var e Element
	e.inner.SetInt64(v)
	return e
}

// FromBigInt reduces v modulo the field's modulus.
func FromBigInt(v *big.Int) Element {
	var e Element
	e.inner.SetBigInt(v)
	return e
}

// Add returns a+b.
func (a Element) Add(b Element) Element {
	var r Element
	r.inner.Add(&a.inner, &b.inner)
	return r
}

// Sub returns a-b.
func (a Element) Sub(b Element) Element {
	var r Element
	r.inner.Sub(&a.inner, &b.inner)
	return r
}

// Mul returns a*b.
func (a Element) Mul(b Element) Element {
	var r Element
	r.inner.Mul(&a.inner, &b.inner)
	return r
}

// Neg returns -a.
func (a Element) Neg() Element {
	var r Element
	r.inner.Neg(&a.inner)
	return r
}

// Inv returns the multiplicative inverse of a. The second return value is
// false when a is zero, in which case the first is the zero element; callers
// must check it rather than treat the result as a total function, matching
// the partial `inv()` capability of the abstract field.
func (a Element) Inv() (Element, bool) {
	if a.inner.IsZero() {
		return Element{}, false
	}
	var r Element
	r.inner.Inverse(&a.inner)
	return r, true
}

// IsZero reports whether a is the additive identity.
func (a Element) IsZero() bool {
	return a.inner.IsZero()
}

// IsOne reports whether a is the multiplicative identity.
func (a Element) IsOne() bool {
	return a.inner.IsOne()
}

// Equal reports whether a and b represent the same field element.
func (a Element) Equal(b Element) bool {
	return a.inner.Equal(&b.inner)
}

// Random draws a uniformly random field element from a cryptographically
// secure source. It is the realization of the abstract field's
// `random_unsafe` sampling capability (unsafe in the sense that it is not
// bound to any transcript/randomness-beacon discipline, same caveat gnark
// itself carries on fr.Element.SetRandom).
func Random() Element {
	var e Element
	if _, err := e.inner.SetRandom(); err != nil {
		panic(fmt.Sprintf("field: SetRandom: %v", err))
	}
	return e
}

// BigInt returns the canonical unsigned big.Int representative of a, in
// [0, modulus). It is used by the unconstrained-operation reference
// evaluator (package hint) to give integer-style ops a concrete semantics.
func (a Element) BigInt() *big.Int {
	var z big.Int
	a.inner.BigInt(&z)
	return &z
}

func (a Element) String() string {
	return a.inner.String()
}
