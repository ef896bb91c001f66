package scx

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrHeader marks an outer header whose fields contradict each other.
	ErrHeader = errors.New("malformed header")
	// ErrSentinel marks a checkpoint value that did not match. The field
	// layout has desynchronized and nothing after it can be trusted.
	ErrSentinel = errors.New("sentinel mismatch")
	// ErrTruncated marks a read past the end of the stream.
	ErrTruncated = errors.New("truncated stream")
	// ErrDecompress marks a payload that could not be inflated.
	ErrDecompress = errors.New("decompress payload")
	// ErrTooLarge marks a value that does not fit its length prefix on encode.
	ErrTooLarge = errors.New("value too large")
)

// FormatError locates a decode or encode failure within the file.
type FormatError struct {
	Stage   string // section being processed, e.g. "players" or "triggers"
	Field   string // checkpoint or field name, may be empty
	Trigger int    // trigger index, -1 outside the trigger section
	Offset  int64  // byte offset within the header or the decompressed payload
	Err     error
}

func (e *FormatError) Error() string {
	var sb strings.Builder
	sb.WriteString("scx: ")
	sb.WriteString(e.Stage)
	if e.Trigger >= 0 {
		fmt.Fprintf(&sb, " [trigger %d]", e.Trigger)
	}
	if e.Field != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Field)
	}
	fmt.Fprintf(&sb, " at offset %d: %v", e.Offset, e.Err)
	return sb.String()
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func sentinelError(want, got int64) error {
	return fmt.Errorf("%w: expected %d, got %d", ErrSentinel, want, got)
}
