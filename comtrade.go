// Package comtrade decodes power-system disturbance recordings in the
// COMTRADE exchange format (IEEE C37.111 / IEC 60255-24).
//
// A recording is a file pair: a textual configuration file (.cfg)
// describing channels, sampling rates and timing, and a data file
// (.dat) holding the sampled values in one of four encodings (ASCII,
// BINARY, BINARY32, FLOAT32). Optional header (.hdr) and information
// (.inf) text files accompany the pair, and a combined file (.cff)
// multiplexes all of them into one stream.
//
// # Basic Usage
//
// Decoding a recording from disk:
//
//	import "github.com/gridsignal/comtrade"
//
//	rec, err := comtrade.Load("fault.cfg")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for i, name := range rec.AnalogNames() {
//	    fmt.Printf("%s: %d samples\n", name, len(rec.Analog[i]))
//	}
//
// Combined files use the same entry point:
//
//	rec, err := comtrade.Load("fault.cff")
//
// Decoding from already-open streams:
//
//	rec, err := comtrade.Read(cfgFile, datFile)
//
// Input files compressed with gzip, Zstandard, S2/Snappy or LZ4 are
// detected by magic number and decompressed transparently.
//
// # Decoding model
//
// Decoding is fully synchronous and one-shot: the configuration is
// parsed first, then the data stream is consumed in a single sequential
// pass. Fatal conditions (structural configuration defects, an unknown
// data format tag, a missing input file) abort the decode with no
// partial result. Non-fatal conditions (unknown revision tags,
// timestamp precision loss, defaulted date fields) are collected as
// warnings on the Record and can be suppressed per call with
// WithIgnoreWarnings.
package comtrade

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gridsignal/comtrade/cff"
	"github.com/gridsignal/comtrade/cfg"
	"github.com/gridsignal/comtrade/compress"
	"github.com/gridsignal/comtrade/dat"
	"github.com/gridsignal/comtrade/errs"
	"github.com/gridsignal/comtrade/internal/options"
)

// compressionSuffixes are the file-name suffixes recognized (and
// stripped) when determining a file's role; actual decompression is
// always driven by content sniffing, never by name.
var compressionSuffixes = []string{".gz", ".zst", ".lz4", ".s2"}

// Load decodes a recording from disk.
//
// A .cfg path loads the file pair: the companion .dat file is resolved
// by replacing the extension (case-tolerant), and optional .hdr/.inf
// files are picked up when present. A .cff path loads a combined file.
// Compressed inputs (gzip, zstd, S2/Snappy, LZ4) are decompressed
// transparently, and compression suffixes are ignored when classifying
// the path, so "fault.cfg.gz" loads like "fault.cfg".
//
// A missing configuration or data file fails before any parsing with an
// error wrapping fs.ErrNotExist.
func Load(path string, opts ...Option) (*Record, error) {
	dc := newDecodeConfig()
	if err := applyOptions(dc, opts); err != nil {
		return nil, err
	}

	switch roleExt(path) {
	case ".cfg":
		return loadPair(path, dc)
	case ".cff":
		return loadCombined(path, dc)
	default:
		return nil, fmt.Errorf("%w: got %q", errs.ErrUnknownFileExtension, path)
	}
}

// Read decodes a recording from open configuration and data streams.
// Both streams are consumed exactly once; closing them remains the
// caller's responsibility.
func Read(cfgr, datr io.Reader, opts ...Option) (*Record, error) {
	dc := newDecodeConfig()
	if err := applyOptions(dc, opts); err != nil {
		return nil, err
	}

	c, err := parseConfig(cfgr, dc)
	if err != nil {
		return nil, err
	}

	d, err := decodeData(datr, c, dc)
	if err != nil {
		return nil, err
	}

	return newRecord(c, d, "", ""), nil
}

// ReadContainer decodes a combined (.cff) file image held in memory.
// The whole image is required up front because binary data sections are
// anchored to the end of the physical file.
func ReadContainer(data []byte, opts ...Option) (*Record, error) {
	dc := newDecodeConfig()
	if err := applyOptions(dc, opts); err != nil {
		return nil, err
	}

	return readContainer(data, dc)
}

func loadPair(cfgPath string, dc *decodeConfig) (*Record, error) {
	c, err := parseConfigFile(cfgPath, dc)
	if err != nil {
		return nil, err
	}

	datPath := dc.datPath
	if datPath == "" {
		datPath = companionPath(cfgPath, "dat")
	}
	d, err := decodeDataFile(datPath, c, dc)
	if err != nil {
		return nil, err
	}

	hdrPath := dc.hdrPath
	if hdrPath == "" {
		hdrPath = companionPath(cfgPath, "hdr")
	}
	hdr, err := readOptionalText(hdrPath)
	if err != nil {
		return nil, err
	}

	infPath := dc.infPath
	if infPath == "" {
		infPath = companionPath(cfgPath, "inf")
	}
	inf, err := readOptionalText(infPath)
	if err != nil {
		return nil, err
	}

	return newRecord(c, d, hdr, inf), nil
}

func loadCombined(path string, dc *decodeConfig) (*Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening combined file: %w", err)
	}

	data, _, err := compress.DecompressAll(raw)
	if err != nil {
		return nil, err
	}

	return readContainer(data, dc)
}

func readContainer(data []byte, dc *decodeConfig) (*Record, error) {
	sections, err := cff.Demux(data)
	if err != nil {
		return nil, err
	}

	c, err := cfg.Parse(bytes.NewReader(sections.CFG), dc.suppressWarnings)
	if err != nil {
		return nil, err
	}

	d, err := decodeData(bytes.NewReader(sections.DAT), c, dc)
	if err != nil {
		return nil, err
	}

	return newRecord(c, d, string(sections.HDR), string(sections.INF)), nil
}

func parseConfigFile(path string, dc *decodeConfig) (*cfg.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening configuration file: %w", err)
	}
	defer f.Close()

	return parseConfig(f, dc)
}

func parseConfig(r io.Reader, dc *decodeConfig) (*cfg.Config, error) {
	dr, _, err := compress.NewReader(r)
	if err != nil {
		return nil, err
	}

	return cfg.Parse(dr, dc.suppressWarnings)
}

func decodeDataFile(path string, c *cfg.Config, dc *decodeConfig) (*dat.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening data file: %w", err)
	}
	defer f.Close()

	return decodeData(f, c, dc)
}

func decodeData(r io.Reader, c *cfg.Config, dc *decodeConfig) (*dat.Record, error) {
	decoder, err := dat.NewDecoder(c.Format, dc.engine)
	if err != nil {
		return nil, err
	}

	dr, _, err := compress.NewReader(r)
	if err != nil {
		return nil, err
	}

	return decoder.Decode(dr, c)
}

// readOptionalText reads an auxiliary text file; a missing file is not
// an error.
func readOptionalText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}

		return "", fmt.Errorf("opening auxiliary file: %w", err)
	}
	defer f.Close()

	dr, _, err := compress.NewReader(f)
	if err != nil {
		return "", err
	}
	text, err := io.ReadAll(dr)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	return string(text), nil
}

// roleExt classifies a path by its role extension, ignoring a trailing
// compression suffix.
func roleExt(path string) string {
	name := strings.ToLower(filepath.Base(path))
	for _, suffix := range compressionSuffixes {
		if strings.HasSuffix(name, suffix) {
			name = strings.TrimSuffix(name, suffix)
			break
		}
	}

	return filepath.Ext(name)
}

// companionPath resolves a sibling file of the configuration file by
// swapping the role extension. Lower- and upper-case extensions and
// compressed variants are probed in order; when nothing exists the
// plain lower-case candidate is returned and the caller's open reports
// the missing file.
func companionPath(cfgPath, role string) string {
	base := cfgPath
	lower := strings.ToLower(base)
	for _, suffix := range compressionSuffixes {
		if strings.HasSuffix(lower, suffix) {
			base = base[:len(base)-len(suffix)]
			break
		}
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))

	for _, ext := range []string{"." + role, "." + strings.ToUpper(role)} {
		for _, suffix := range append([]string{""}, compressionSuffixes...) {
			candidate := base + ext + suffix
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}

	return base + "." + role
}

func applyOptions(dc *decodeConfig, opts []Option) error {
	return options.Apply(dc, opts...)
}
