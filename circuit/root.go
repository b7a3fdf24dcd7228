package circuit

import "fmt"

// Def is one circuit definition: its explicit/hint input counts, its
// instructions, its constraints, and its declared outputs. Variables are
// 1-based dense indices; index 0 is the reserved constant-one slot, never
// assigned by an instruction.
//
// Def is used, unchanged in shape, by every IR stage (Source-IR and
// Hint-Normalized-IR); what varies between stages is only which concrete
// Instruction/Constraint implementations a Def's slices are allowed to hold
// — Source-IR's eleven instruction kinds versus Hint-Normalized-IR's five.
// Go has no closed sum type to enforce that membership statically;
// circuit/hintnormalized's ValidateShape checks it at runtime for
// Hint-Normalized-IR. Source-IR membership is not checked.
type Def struct {
	NumInputs     int
	NumHintInputs int
	Instructions  []Instruction
	Constraints   []Constraint
	Outputs       []uint32

	// MarkedBools records variables hint normalization's mark_bool primitive
	// touched: each one also carries an ordinary RawConstraint enforcing
	// v*(v-1) = 0 (redundant with soundness in some callers, e.g. the Or/Xor
	// rewrites, but emitted regardless per the rewrite table), and is
	// additionally listed here so the layering pass can treat it as
	// boolean-valued without re-deriving that fact from the constraint set.
	MarkedBools []uint32
}

// NumVars returns the number of variables defined in this circuit: the
// reserved constant-one slot, the inputs, the hint inputs, and every
// instruction output.
func (d *Def) NumVars() int {
	n := 1 + d.NumInputs + d.NumHintInputs
	for _, insn := range d.Instructions {
		n += insn.NumOutputs()
	}
	return n
}

// RootCircuit maps circuit id to definition.
type RootCircuit struct {
	Circuits map[uint64]*Def
}

// NewRootCircuit returns an empty root circuit.
func NewRootCircuit() *RootCircuit {
	return &RootCircuit{Circuits: make(map[uint64]*Def)}
}

// Validate checks the structural invariants of spec.md §3: every variable an
// instruction/constraint/output references must already be defined at that
// point, every sub-circuit call must reference an existing circuit id, and
// the sub-circuit reference graph must be acyclic.
func (rc *RootCircuit) Validate() error {
	for id, def := range rc.Circuits {
		if err := rc.validateDef(id, def); err != nil {
			return err
		}
	}
	return rc.validateAcyclic()
}

func (rc *RootCircuit) validateDef(id uint64, def *Def) error {
	defined := 1 + def.NumInputs + def.NumHintInputs
	for i, insn := range def.Instructions {
		for _, v := range insn.InputVars() {
			if int(v) >= defined {
				return fmt.Errorf("circuit %d: instruction %d reads undefined variable %d", id, i, v)
			}
		}
		if subID, ok := insn.SubCircuit(); ok {
			if _, exists := rc.Circuits[subID]; !exists {
				return fmt.Errorf("circuit %d: instruction %d calls undefined sub-circuit %d", id, i, subID)
			}
		}
		defined += insn.NumOutputs()
	}
	for i, con := range def.Constraints {
		if int(con.InputVar()) >= defined {
			return fmt.Errorf("circuit %d: constraint %d references undefined variable %d", id, i, con.InputVar())
		}
	}
	for i, v := range def.Outputs {
		if int(v) >= defined {
			return fmt.Errorf("circuit %d: output %d references undefined variable %d", id, i, v)
		}
	}
	return nil
}

func (rc *RootCircuit) validateAcyclic() error {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[uint64]int, len(rc.Circuits))
	var visit func(id uint64) error
	visit = func(id uint64) error {
		switch color[id] {
		case black:
			return nil
		case gray:
			return fmt.Errorf("cyclic sub-circuit reference involving circuit %d", id)
		}
		color[id] = gray
		def, ok := rc.Circuits[id]
		if !ok {
			return fmt.Errorf("sub-circuit %d referenced but not defined", id)
		}
		for _, insn := range def.Instructions {
			if subID, ok := insn.SubCircuit(); ok {
				if err := visit(subID); err != nil {
					return err
				}
			}
		}
		color[id] = black
		return nil
	}
	for id := range rc.Circuits {
		if err := visit(id); err != nil {
			return err
		}
	}
	return nil
}

// InputSize returns the total number of explicit inputs of circuit id 0,
// the conventional entry circuit.
func (rc *RootCircuit) InputSize() int {
	def, ok := rc.Circuits[0]
	if !ok {
		return 0
	}
	return def.NumInputs
}
