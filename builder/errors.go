package builder

import "errors"

// ErrCommitUnimplemented is returned when a Source-IR circuit contains a
// Commit instruction; spec scope treats Commit as reserved and rejects it.
var ErrCommitUnimplemented = errors.New("builder: commit instruction is unimplemented and out of scope")

// ErrDivByZeroConstant is returned for an unchecked Div whose literal
// divisor is the zero constant.
var ErrDivByZeroConstant = errors.New("builder: division by zero constant")

// ErrUnknownInstruction is returned when a circuit contains an instruction
// kind hint normalization does not know how to rewrite.
var ErrUnknownInstruction = errors.New("builder: unrecognized source instruction kind")
