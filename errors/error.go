package errors

import (
	"fmt"
)

// IncompatibleAccumulatorError occurs when an Accumulator of the wrong
// concrete type is merged into a union State
type IncompatibleAccumulatorError struct{}

// Error returns a textual representation of this IncompatibleAccumulatorError
func (e IncompatibleAccumulatorError) Error() string {
	return "Incoming accumulator is not a union State"
}

// MismatchedEngineError occurs when two States built against different
// Engines are merged
type MismatchedEngineError struct{}

// Error returns a textual representation of this MismatchedEngineError
func (e MismatchedEngineError) Error() string {
	return "States built against different engines cannot be merged"
}

// TruncatedPayloadError occurs when a serialized State payload is shorter
// than its fixed-width header
type TruncatedPayloadError struct{ Len int }

// Error returns a textual representation of this TruncatedPayloadError
func (e TruncatedPayloadError) Error() string {
	return fmt.Sprintf("Serialized state payload is truncated (%d bytes)", e.Len)
}

// EmptyTransferFrameError occurs when a transfer frame declares a
// zero-length payload
type EmptyTransferFrameError struct{}

// Error returns a textual representation of this EmptyTransferFrameError
func (e EmptyTransferFrameError) Error() string {
	return "Transfer frame contains no payload"
}

// ChecksumMismatchError occurs when a transfer frame's payload does not
// match its recorded checksum
type ChecksumMismatchError struct{ Expected, Actual uint64 }

// Error returns a textual representation of this ChecksumMismatchError
func (e ChecksumMismatchError) Error() string {
	return fmt.Sprintf("Transfer frame checksum mismatch (expected %x, got %x)", e.Expected, e.Actual)
}

// NotGeoJSONError occurs when the GeoJSON datasource is fed input which is
// not a FeatureCollection, Feature or geometry object
type NotGeoJSONError struct{ Type string }

// Error returns a textual representation of this NotGeoJSONError
func (e NotGeoJSONError) Error() string {
	return fmt.Sprintf("Input is not a GeoJSON document (type %q)", e.Type)
}
