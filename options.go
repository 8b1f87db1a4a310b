package comtrade

import (
	"github.com/gridsignal/comtrade/endian"
	"github.com/gridsignal/comtrade/internal/options"
)

// decodeConfig carries per-call decode settings. There is no
// process-wide decode state: every Load/Read call owns its own
// configuration.
type decodeConfig struct {
	suppressWarnings bool
	engine           endian.EndianEngine
	datPath          string
	hdrPath          string
	infPath          string
}

// Option configures a single decode call.
type Option = options.Option[*decodeConfig]

func newDecodeConfig() *decodeConfig {
	return &decodeConfig{
		engine: endian.GetLittleEndianEngine(),
	}
}

// WithIgnoreWarnings suppresses warning collection for this decode.
// Errors are never suppressible.
func WithIgnoreWarnings() Option {
	return options.NoError(func(dc *decodeConfig) {
		dc.suppressWarnings = true
	})
}

// WithLittleEndian selects little-endian binary data interpretation,
// the COMTRADE convention and the default.
func WithLittleEndian() Option {
	return options.NoError(func(dc *decodeConfig) {
		dc.engine = endian.GetLittleEndianEngine()
	})
}

// WithBigEndian selects big-endian binary data interpretation, for
// recordings produced on big-endian acquisition hardware. The standard
// does not negotiate byte order, so this is strictly a per-file
// compatibility escape hatch.
func WithBigEndian() Option {
	return options.NoError(func(dc *decodeConfig) {
		dc.engine = endian.GetBigEndianEngine()
	})
}

// WithDatPath overrides the data file path for Load, when it does not
// follow the configuration file's name.
func WithDatPath(path string) Option {
	return options.NoError(func(dc *decodeConfig) {
		dc.datPath = path
	})
}

// WithHdrPath overrides the header file path for Load.
func WithHdrPath(path string) Option {
	return options.NoError(func(dc *decodeConfig) {
		dc.hdrPath = path
	})
}

// WithInfPath overrides the information file path for Load.
func WithInfPath(path string) Option {
	return options.NoError(func(dc *decodeConfig) {
		dc.infPath = path
	})
}
