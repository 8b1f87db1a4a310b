// Package dat decodes COMTRADE data (.dat) streams.
//
// One decoder exists per data-file format (ASCII, BINARY, BINARY32,
// FLOAT32), selected once from the configuration's format tag. All
// decoders share the same contract: output arrays are pre-sized to the
// configured sample count, exactly that many records are decoded,
// trailing data is ignored, and a short or empty trailing read ends
// decoding cleanly.
package dat

import (
	"fmt"
	"io"

	"github.com/gridsignal/comtrade/cfg"
	"github.com/gridsignal/comtrade/endian"
	"github.com/gridsignal/comtrade/errs"
	"github.com/gridsignal/comtrade/format"
)

// timestampMissing is the reserved raw timestamp value meaning
// "timestamp not provided, use computed time".
const timestampMissing = 0xFFFFFFFF

// Record holds the decoded sample arrays. Time, every Analog array and
// every Status array share the same length, TotalSamples. Ownership
// transfers to the caller; the decoder keeps no reference.
type Record struct {
	// Time holds per-sample times in seconds relative to the start
	// timestamp.
	Time []float64

	// Analog holds one physical-value array per analog channel, in
	// declaration order.
	Analog [][]float64

	// Status holds one 0/1 array per status channel, in declaration
	// order.
	Status [][]int32

	// TotalSamples is the per-channel sample count.
	TotalSamples int
}

// Decoder decodes one data stream against a parsed configuration.
//
// Decoders are stateless and may be reused, but a single Decode call
// owns its reader: decoding is strictly sequential and single-threaded.
type Decoder interface {
	Decode(r io.Reader, c *cfg.Config) (*Record, error)
}

// NewDecoder selects the decoder for a data-file format. A nil engine
// selects little-endian, the conventional byte order for COMTRADE
// binary files.
func NewDecoder(ft format.DataType, engine endian.EndianEngine) (Decoder, error) {
	if engine == nil {
		engine = endian.GetLittleEndianEngine()
	}

	switch ft {
	case format.TypeASCII:
		return &asciiDecoder{}, nil
	case format.TypeBinary:
		return &binaryDecoder{engine: engine, analogBytes: 2, kind: analogInt16}, nil
	case format.TypeBinary32:
		return &binaryDecoder{engine: engine, analogBytes: 4, kind: analogInt32}, nil
	case format.TypeFloat32:
		return &binaryDecoder{engine: engine, analogBytes: 4, kind: analogFloat32}, nil
	default:
		return nil, fmt.Errorf("%w: %d", errs.ErrUnknownDataFormat, ft)
	}
}

// newRecord pre-sizes all output arrays to the configured sample count.
func newRecord(c *cfg.Config) *Record {
	total := c.TotalSamples()
	rec := &Record{
		Time:         make([]float64, total),
		Analog:       make([][]float64, c.AnalogCount()),
		Status:       make([][]int32, c.StatusCount()),
		TotalSamples: total,
	}
	for i := range rec.Analog {
		rec.Analog[i] = make([]float64, total)
	}
	for i := range rec.Status {
		rec.Status[i] = make([]int32, total)
	}

	return rec
}

// resolveTime reconstructs the time of the 1-based sample n. When the
// configuration declared explicit rate segments the time is computed
// from the applicable sampling rate, as it is when the raw timestamp
// carries the missing-value sentinel; otherwise the data file's
// timestamps are authoritative and raw*timeBase*timeMult applies.
func resolveTime(c *cfg.Config, n int, raw float64, missing bool) (float64, error) {
	if !c.TimestampCritical || missing {
		rate := c.RateAt(n)
		if rate == 0 {
			return 0, fmt.Errorf("sample %d: %w", n, errs.ErrMissingSampleRate)
		}

		return float64(n-1) / rate, nil
	}

	return raw * c.TimeBase * c.TimeMult, nil
}

// gains extracts the per-channel scale and offset vectors once per
// decode.
func gains(c *cfg.Config) (a, b []float64) {
	a = make([]float64, c.AnalogCount())
	b = make([]float64, c.AnalogCount())
	for i, ch := range c.AnalogChannels {
		a[i] = ch.A
		b[i] = ch.B
	}

	return a, b
}
