package nbt

import (
	"github.com/eluv-io/errors-go"
)

// Reason classifies codec failures beyond the generic errors-go kind. It is
// attached to every error produced by this package as the "reason" field, so
// callers can distinguish e.g. a truncated stream from malformed UTF-8
// without string matching.
type Reason string

const (
	// MalformedLength marks a negative or otherwise implausible count read
	// from the stream.
	MalformedLength Reason = "malformed length"

	// UnexpectedEndOfStream marks input truncated mid-read. Decoding never
	// returns a partial tree.
	UnexpectedEndOfStream Reason = "unexpected end of stream"

	// InvalidEncoding marks string payload bytes that are not valid UTF-8.
	InvalidEncoding Reason = "invalid encoding"

	// InvalidTag marks a structural invariant violation: an unknown type ID,
	// a heterogeneous list, or a nonzero-length list of End.
	InvalidTag Reason = "invalid tag"

	// DuplicateKey marks a compound key collision on decode.
	DuplicateKey Reason = "duplicate key"

	// StringTooLong marks a string whose UTF-8 byte length exceeds the
	// unsigned 16-bit wire limit on encode.
	StringTooLong Reason = "string too long"

	// CollectionTooLarge marks an array or list whose element count exceeds
	// the signed 32-bit wire limit on encode.
	CollectionTooLarge Reason = "collection too large"

	// NestingTooDeep marks a tree or stream exceeding the configured maximum
	// nesting depth.
	NestingTooDeep Reason = "nesting too deep"
)

// ErrorReason returns the Reason attached to an error produced by this
// package, or the empty Reason if err carries none.
func ErrorReason(err error) Reason {
	r, _ := errors.Field(err, "reason").(Reason)
	return r
}

// IsReason reports whether err carries the given Reason.
func IsReason(err error, r Reason) bool {
	return err != nil && ErrorReason(err) == r
}

// ErrorOffset returns the byte offset attached to a decode error, or -1 if
// err carries none.
func ErrorOffset(err error) int64 {
	off, ok := errors.Field(err, "offset").(int64)
	if !ok {
		return -1
	}
	return off
}

// ErrorPath returns the tag path attached to a decode error: the ordered
// sequence of compound keys and list indices traversed to reach the failure.
func ErrorPath(err error) string {
	p, _ := errors.Field(err, "path").(string)
	return p
}
