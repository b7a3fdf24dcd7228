package hint

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-layered/field"
)

// maxShift bounds the shift amount the reference evaluator will carry out
// literally; beyond this a shift is defined to produce zero rather than
// allocate an enormous big.Int.
const maxShift = 4096

// Eval computes the canonical reference result of applying the binary op id
// to field elements a and b, interpreting them — where the op calls for it —
// as their canonical unsigned big.Int representative in [0, modulus). It
// underlies both the hint-normalization pass's literal-operand folding
// (UnconstrainedBinOp with two compile-time-constant operands) and this
// module's reference hint evaluator, which tests use to re-derive hint
// values deterministically when checking semantic equivalence.
func Eval(id BuiltinID, a, b field.Element) (field.Element, error) {
	switch id {
	case Div:
		return divide(a, b), nil
	case Pow:
		return power(a, b), nil
	case IntDiv:
		return intDivide(a, b), nil
	case Mod:
		return mod(a, b), nil
	case ShiftL:
		return shift(a, b, true), nil
	case ShiftR:
		return shift(a, b, false), nil
	case LesserEq:
		return boolElem(a.BigInt().Cmp(b.BigInt()) <= 0), nil
	case GreaterEq:
		return boolElem(a.BigInt().Cmp(b.BigInt()) >= 0), nil
	case Lesser:
		return boolElem(a.BigInt().Cmp(b.BigInt()) < 0), nil
	case Greater:
		return boolElem(a.BigInt().Cmp(b.BigInt()) > 0), nil
	case Eq:
		return boolElem(a.Equal(b)), nil
	case NotEq:
		return boolElem(!a.Equal(b)), nil
	case BoolOr:
		return boolElem(!a.IsZero() || !b.IsZero()), nil
	case BoolAnd:
		return boolElem(!a.IsZero() && !b.IsZero()), nil
	case BitOr:
		return field.FromBigInt(new(big.Int).Or(a.BigInt(), b.BigInt())), nil
	case BitAnd:
		return field.FromBigInt(new(big.Int).And(a.BigInt(), b.BigInt())), nil
	case BitXor:
		return field.FromBigInt(new(big.Int).Xor(a.BigInt(), b.BigInt())), nil
	default:
		return field.Element{}, fmt.Errorf("hint: %s is not a binary op", id)
	}
}

// Select computes the reference result of the ternary Select hint: t if c is
// non-zero, else f.
func Select(c, t, f field.Element) field.Element {
	if c.IsZero() {
		return f
	}
	return t
}

// ReferenceFunction returns the canonical Function for a builtin id,
// suitable for registering with a Registry in tests, or for driving a
// from-scratch circuit evaluator that must re-derive hint outputs rather
// than trust a caller-supplied oracle.
func ReferenceFunction(id BuiltinID) Function {
	if id == Select {
		return func(inputs []field.Element, res []field.Element) error {
			if len(inputs) != 3 || len(res) != 1 {
				return fmt.Errorf("hint: Select expects 3 inputs and 1 output")
			}
			res[0] = Select(inputs[0], inputs[1], inputs[2])
			return nil
		}
	}
	return func(inputs []field.Element, res []field.Element) error {
		if len(inputs) != 2 || len(res) != 1 {
			return fmt.Errorf("hint: %s expects 2 inputs and 1 output", id)
		}
		v, err := Eval(id, inputs[0], inputs[1])
		if err != nil {
			return err
		}
		res[0] = v
		return nil
	}
}

func boolElem(b bool) field.Element {
	if b {
		return field.One()
	}
	return field.Zero()
}

// divide returns a/b in the field, or zero when b is zero — the "unchecked"
// division convention this module's Div hint follows everywhere it is used
// (general unchecked Div, the inverse leg of checked Div, and IsZero/NonZero).
func divide(a, b field.Element) field.Element {
	if b.IsZero() {
		return field.Zero()
	}
	inv, _ := b.Inv()
	return a.Mul(inv)
}

func shift(a, b field.Element, left bool) field.Element {
	n := b.BigInt()
	if !n.IsUint64() || n.Uint64() > maxShift {
		return field.Zero()
	}
	shiftN := uint(n.Uint64())
	z := new(big.Int)
	if left {
		z.Lsh(a.BigInt(), shiftN)
	} else {
		z.Rsh(a.BigInt(), shiftN)
	}
	return field.FromBigInt(z)
}

func intDivide(a, b field.Element) field.Element {
	bb := b.BigInt()
	if bb.Sign() == 0 {
		return field.Zero()
	}
	return field.FromBigInt(new(big.Int).Quo(a.BigInt(), bb))
}

func mod(a, b field.Element) field.Element {
	bb := b.BigInt()
	if bb.Sign() == 0 {
		return field.Zero()
	}
	return field.FromBigInt(new(big.Int).Mod(a.BigInt(), bb))
}

func power(a, b field.Element) field.Element {
	exp := b.BigInt()
	result := field.One()
	base := a
	bitLen := exp.BitLen()
	for i := 0; i < bitLen; i++ {
		if exp.Bit(i) == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
	}
	return result
}
