// Package logger provides the package-level structured logger shared by the
// hint normalization and layer layout passes, grounded on gnark's own choice
// of github.com/rs/zerolog for leveled, structured diagnostics. Logging here
// is purely observational: neither pass inspects the logger to make a
// decision.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is shared by every package in this module.
var Logger = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel)

// SetLevel adjusts the minimum level emitted, e.g. zerolog.DebugLevel for
// verbose per-circuit/per-layer tracing during development.
func SetLevel(lvl zerolog.Level) {
	Logger = Logger.Level(lvl)
}
