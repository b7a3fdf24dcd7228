// Package hint identifies and resolves the witness-producing oracles that
// hint normalization introduces. The split between a stable id and a
// registered evaluator mirrors gnark's own backend/hint package: circuits
// reference hints by id so that the id survives compilation, while the
// concrete Go function computing a hint's value is supplied separately at
// proving/evaluation time.
package hint

import "github.com/consensys/gnark-layered/field"

// BuiltinID identifies one of the fixed hint oracles hint normalization
// lowers non-affine/non-multiplicative primitives into. These ids are
// wire-stable: they are part of this module's external interface and must
// never be renumbered once a circuit has been compiled against them.
type BuiltinID uint32

const (
	Div BuiltinID = iota
	Pow
	IntDiv
	Mod
	ShiftL
	ShiftR
	LesserEq
	GreaterEq
	Lesser
	Greater
	Eq
	NotEq
	BoolOr
	BoolAnd
	BitOr
	BitAnd
	BitXor
	Select
)

var names = [...]string{
	"Div", "Pow", "IntDiv", "Mod", "ShiftL", "ShiftR",
	"LesserEq", "GreaterEq", "Lesser", "Greater", "Eq", "NotEq",
	"BoolOr", "BoolAnd", "BitOr", "BitAnd", "BitXor", "Select",
}

func (id BuiltinID) String() string {
	if int(id) < len(names) {
		return names[id]
	}
	return "BuiltinID(unknown)"
}

// Function computes a hint's outputs from its inputs. res is pre-sized to
// the hint's declared output count and every element already initialized
// (zero); a non-nil error aborts the solver invoking it.
type Function func(inputs []field.Element, res []field.Element) error

// Registry is a lookup table of hint evaluators keyed by BuiltinID, used by
// a downstream solver to resolve the Hint instructions hint normalization
// emits. Hint normalization itself never consults the registry: the two
// passes in scope only ever name hints by id.
type Registry struct {
	fns map[BuiltinID]Function
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{fns: make(map[BuiltinID]Function)}
}

// Register installs fn as the evaluator for id, replacing any previous one.
func (r *Registry) Register(id BuiltinID, fn Function) {
	r.fns[id] = fn
}

// Lookup returns the evaluator registered for id, if any.
func (r *Registry) Lookup(id BuiltinID) (Function, bool) {
	fn, ok := r.fns[id]
	return fn, ok
}
