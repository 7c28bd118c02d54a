/*

Error kinds reported by the decoders.

*/

package stormprot

import (
	"errors"
	"fmt"
)

// ErrTruncated is reported when a read runs past the end of the input buffer.
var ErrTruncated = errors.New("truncated data")

// CorruptedError is reported on a mismatch between the wire data and the
// type info tables: unknown choice tag, unknown event id, a versioned kind
// tag not matching the expected shape, or bounds violated.
type CorruptedError struct {
	Context string // Describes the mismatch, with the bit offset where available
}

func (e *CorruptedError) Error() string {
	return "corrupted data: " + e.Context
}

// ProtocolNotFoundError is reported when no type info table set is registered
// for the replay's base build.
type ProtocolNotFoundError struct {
	BaseBuild int // The base build of the replay
}

func (e *ProtocolNotFoundError) Error() string {
	return fmt.Sprintf("protocol not found for base build %d", e.BaseBuild)
}

// corrupted panics with a CorruptedError. The decoders are written without
// error returns on their hot paths; exported operations recover the panic
// into an error (see recoverError).
func corrupted(format string, args ...interface{}) {
	panic(&CorruptedError{Context: fmt.Sprintf(format, args...)})
}

// recoverError converts a panic raised during decoding into an error.
// Decoder-raised errors are kept as-is, anything else (e.g. a runtime error
// from indexing with a bad typeid) is wrapped into a CorruptedError.
func recoverError(errp *error) {
	r := recover()
	if r == nil {
		return
	}

	if e, ok := r.(error); ok {
		if errors.Is(e, ErrTruncated) {
			*errp = e
			return
		}
		var ce *CorruptedError
		if errors.As(e, &ce) {
			*errp = e
			return
		}
		var pe *ProtocolNotFoundError
		if errors.As(e, &pe) {
			*errp = e
			return
		}
		*errp = &CorruptedError{Context: e.Error()}
		return
	}

	*errp = &CorruptedError{Context: fmt.Sprint(r)}
}
