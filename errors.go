package colocate

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// Error kind sentinels, per the taxonomy in §7 of the specification.
// Classify a returned error with errors.Is(err, colocate.ErrConfigInvalid)
// and friends; eris preserves the causal chain and a stack trace for
// diagnostics without needing bespoke wrapper types.
var (
	// ErrConfigInvalid marks a non-positive neighbor distance, a min-prev
	// outside (0,1], or any other malformed configuration value.
	ErrConfigInvalid = eris.New("colocate: config invalid")

	// ErrInputMalformed marks an instance record with non-finite
	// coordinates, an empty id/type, or a duplicate id.
	ErrInputMalformed = eris.New("colocate: input malformed")

	// ErrInternalInvariant marks a violated data-model invariant (§3) found
	// at runtime, such as a candidate with duplicate feature types. It
	// indicates a programmer bug, not a bad input, and is always fatal.
	ErrInternalInvariant = eris.New("colocate: internal invariant violated")
)

// invariantViolation wraps ErrInternalInvariant naming the violated
// invariant, so the panic/return message is self-diagnosing.
func invariantViolation(format string, args ...any) error {
	return eris.Wrap(ErrInternalInvariant, fmt.Sprintf(format, args...))
}

func configInvalidf(format string, args ...any) error {
	return eris.Wrap(ErrConfigInvalid, fmt.Sprintf(format, args...))
}

func inputMalformedf(format string, args ...any) error {
	return eris.Wrap(ErrInputMalformed, fmt.Sprintf(format, args...))
}
