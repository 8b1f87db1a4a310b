// Package cfg parses COMTRADE configuration (.cfg) data.
//
// The configuration grammar is positional and revision-dependent: each
// line's meaning is determined by how many channel and rate lines have
// already been consumed and by the standard revision declared on the
// first line. The parser is therefore a small state machine over an
// ordered line sequence rather than a line-at-a-time grammar.
package cfg

import (
	"time"

	"github.com/gridsignal/comtrade/format"
)

// Time base units for raw data-file timestamps, derived from the
// sub-second resolution of the configured start/trigger timestamps.
const (
	TimeBaseMicrosecond = 1e-6
	TimeBaseNanosecond  = 1e-9
)

// AnalogChannel describes one analog channel. Physical values are
// reconstructed from raw samples as A*raw + B. Immutable once parsed.
type AnalogChannel struct {
	Index     int     // channel number as declared (1-based, not used for addressing)
	Name      string  // channel identifier
	Phase     string  // phase identification
	Circuit   string  // monitored circuit/component
	Unit      string  // unit string (e.g. kV, A)
	A         float64 // scale factor
	B         float64 // offset
	Skew      float64 // sampling skew in microseconds
	Min       float64 // minimum raw value range
	Max       float64 // maximum raw value range
	Primary   float64 // transformer ratio primary factor
	Secondary float64 // transformer ratio secondary factor
	// PrimaryOrSecondary indicates whether scaled values are primary
	// ("P") or secondary ("S") side quantities.
	PrimaryOrSecondary string
}

// StatusChannel describes one status (digital) channel.
// Immutable once parsed.
type StatusChannel struct {
	Index   int    // channel number as declared (1-based, not used for addressing)
	Name    string // channel identifier
	Phase   string // phase identification
	Circuit string // monitored circuit/component
	Normal  int    // normal state of the channel, 0 or 1
}

// SampleRate is one segment of the piecewise-constant sampling rate:
// Rate applies to all samples up to and including EndSample.
type SampleRate struct {
	Rate      float64 // sampling rate in Hz
	EndSample int     // last sample index covered by this rate (1-based)
}

// Config is the decoded configuration file. It is built once by Parse
// and read-only afterwards; sample decoders reference it without
// copying.
type Config struct {
	StationName string
	RecDevID    string

	// RevisionTag is the raw revision field from line 1 ("" when the
	// field was absent); Revision is its parsed value, with absent tags
	// defaulting to format.DefaultRevision.
	RevisionTag string
	Revision    format.Revision

	// ChannelsCount is the declared total; it always equals
	// len(AnalogChannels) + len(StatusChannels) after a successful
	// parse.
	ChannelsCount  int
	AnalogChannels []AnalogChannel
	StatusChannels []StatusChannel

	// Frequency is the nominal line frequency in Hz (0 when the line
	// was blank).
	Frequency float64

	// SampleRates holds the rate segments in file order.
	// TimestampCritical is set when the rate-count line carried the 0
	// sentinel: the single declared rate is implicit and per-sample
	// timestamps in the data file are authoritative.
	SampleRates       []SampleRate
	TimestampCritical bool

	StartTimestamp   time.Time
	TriggerTimestamp time.Time

	// TimeBase is the unit of raw data-file timestamps in seconds:
	// TimeBaseNanosecond when either configured timestamp carried more
	// than six fractional digits, TimeBaseMicrosecond otherwise.
	TimeBase float64

	// Format selects the data-file decoder.
	Format format.DataType

	// TimeMult scales raw data-file timestamps; present only for 1999
	// and 2013 revisions, 1.0 otherwise.
	TimeMult float64

	// 2013-revision time quality metadata, kept as raw fields.
	TimeCode   string
	LocalCode  string
	TmqCode    string
	LeapSecond string

	// Warnings collected while parsing; empty when warnings were
	// suppressed.
	Warnings []Warning
}

// AnalogCount returns the number of analog channels.
func (c *Config) AnalogCount() int {
	return len(c.AnalogChannels)
}

// StatusCount returns the number of status channels.
func (c *Config) StatusCount() int {
	return len(c.StatusChannels)
}

// TotalSamples returns the per-channel sample count of the data file:
// the last rate segment's end-sample index, or 0 when no segments were
// declared.
func (c *Config) TotalSamples() int {
	if len(c.SampleRates) == 0 {
		return 0
	}

	return c.SampleRates[len(c.SampleRates)-1].EndSample
}

// RateAt returns the sampling rate applying to the 1-based sample index
// n: the first segment whose EndSample bound reaches n. Indexes past
// the last bound fall into the last segment.
func (c *Config) RateAt(n int) float64 {
	for _, sr := range c.SampleRates {
		if n <= sr.EndSample {
			return sr.Rate
		}
	}
	if len(c.SampleRates) > 0 {
		return c.SampleRates[len(c.SampleRates)-1].Rate
	}

	return 0
}
