package resources

import "fmt"

// SourceReadError means the underlying bytes could not be retrieved
// (missing file, interrupted read). The slot it was loading into is
// left empty.
type SourceReadError struct {
	Source string
	Err    error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("failed to read source %q: %v", e.Source, e.Err)
}

func (e *SourceReadError) Unwrap() error { return e.Err }

// DecodeError means the bytes were retrieved but rejected by the
// decoder. Same slot-emptying behavior as a read failure.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %q: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
