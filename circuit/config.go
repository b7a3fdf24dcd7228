package circuit

import "github.com/consensys/gnark-crypto/ecc"

// Config names the curve/field a root circuit is compiled against, mirroring
// the teacher's ecc.ID used throughout frontend.API.Compile and the
// per-curve internal/backend packages to tag a constraint system with its
// field without threading a type parameter through every caller.
type Config interface {
	// ID returns the curve identifying this config's field.
	ID() ecc.ID
	// Name is a short human-readable label used in log lines.
	Name() string
}

// BN254Config is the one Config this module ships, bound to field.Element's
// underlying bn254 scalar field.
type BN254Config struct{}

func (BN254Config) ID() ecc.ID   { return ecc.BN254 }
func (BN254Config) Name() string { return "bn254" }
