// Package errs defines the sentinel errors shared across the decoding
// packages. Callers match them with errors.Is; fatal errors abort the
// whole decode and never yield partial results.
package errs

import "errors"

var (
	// ErrUnexpectedEndOfConfig indicates the configuration stream ended
	// before a required line was read.
	ErrUnexpectedEndOfConfig = errors.New("unexpected end of configuration")

	// ErrInvalidFieldCount indicates a line is missing a field whose
	// value is semantically required and cannot be defaulted.
	ErrInvalidFieldCount = errors.New("invalid field count")

	// ErrInvalidNumber indicates a required numeric field could not be
	// converted.
	ErrInvalidNumber = errors.New("invalid numeric field")

	// ErrChannelCountMismatch indicates the declared total channel count
	// does not equal the sum of analog and status counts.
	ErrChannelCountMismatch = errors.New("channel count mismatch")

	// ErrInvalidSampleRates indicates the sample-rate segments are not
	// ordered by non-decreasing end-sample index.
	ErrInvalidSampleRates = errors.New("sample rate end samples must be non-decreasing")

	// ErrUnknownDataFormat indicates the data-format tag matches none of
	// ASCII, BINARY, BINARY32 or FLOAT32.
	ErrUnknownDataFormat = errors.New("unknown data file format")

	// ErrMissingSampleRate indicates a sample time had to be computed
	// from the sampling rate, but the applicable rate is zero.
	ErrMissingSampleRate = errors.New("missing timestamp and no sample rate provided")

	// ErrMissingContainerConfig indicates a combined file carries no CFG
	// section.
	ErrMissingContainerConfig = errors.New("combined file has no CFG section")

	// ErrUnknownFileExtension indicates a load path is neither a .cfg
	// nor a .cff file.
	ErrUnknownFileExtension = errors.New("expected a .cfg or .cff file path")

	// ErrUnknownCompression indicates an unsupported compression type.
	ErrUnknownCompression = errors.New("unsupported compression type")
)
