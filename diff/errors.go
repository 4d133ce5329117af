package diff

import (
	"errors"
	"fmt"
)

var (
	// ErrBackendUnavailable is returned when a diff engine is requested that is unknown or not
	// compiled into the binary.
	ErrBackendUnavailable = errors.New("diff engine unavailable")

	// ErrMalformedPatch is returned when a patch can't be parsed.
	ErrMalformedPatch = errors.New("malformed patch")

	// ErrInputMismatch is returned when the inputs of a mapped diff don't line up.
	ErrInputMismatch = errors.New("input mismatch")
)

// PatchError describes a problem found while parsing a patch.
type PatchError struct {
	Line int    // 1-based line number in the patch text
	Text string // Offending line
	Msg  string
}

func (e *PatchError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Msg, e.Text)
}

func (e *PatchError) Is(target error) bool { return target == ErrMalformedPatch }
