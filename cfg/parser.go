package cfg

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/gridsignal/comtrade/errs"
	"github.com/gridsignal/comtrade/format"
)

// separator joins the fields of configuration and ASCII data lines.
const separator = ","

// maxLineSize bounds a single configuration or data line; generously
// sized for files with thousands of declared channels.
const maxLineSize = 1 << 20

// ParseError is a structural configuration failure. It identifies the
// failing line and field and unwraps to one of the errs sentinels.
type ParseError struct {
	Line  int    // 1-based line number in the configuration stream
	Field string // grammar name of the offending field or line
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cfg line %d (%s): %v", e.Line, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parser consumes a configuration stream line by line. Each parser is
// single-use: create one per Parse call.
type Parser struct {
	scanner *bufio.Scanner
	lineNum int
	sink    warningSink
}

// Parse reads a complete configuration stream. Warnings (unknown
// revision tag, timestamp precision loss, defaulted date fields) are
// collected on the returned Config unless suppressWarnings is set;
// structural failures abort with a *ParseError and no partial result.
func Parse(r io.Reader, suppressWarnings bool) (*Config, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	p := &Parser{
		scanner: scanner,
		sink:    warningSink{suppress: suppressWarnings},
	}

	cfg, err := p.parse()
	if err != nil {
		return nil, err
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}

	cfg.Warnings = p.sink.warnings

	return cfg, nil
}

func (p *Parser) parse() (*Config, error) {
	cfg := &Config{TimeMult: 1.0}

	if err := p.parseStationLine(cfg); err != nil {
		return nil, err
	}
	if err := p.parseCountsLine(cfg); err != nil {
		return nil, err
	}
	if err := p.parseAnalogChannels(cfg); err != nil {
		return nil, err
	}
	if err := p.parseStatusChannels(cfg); err != nil {
		return nil, err
	}
	if err := p.parseFrequencyLine(cfg); err != nil {
		return nil, err
	}
	if err := p.parseSampleRates(cfg); err != nil {
		return nil, err
	}
	if err := p.parseTimestamps(cfg); err != nil {
		return nil, err
	}
	if err := p.parseFormatLine(cfg); err != nil {
		return nil, err
	}
	if err := p.parseTimeMultLine(cfg); err != nil {
		return nil, err
	}
	if err := p.parseTimeQualityLines(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// nextLine returns the next line, or "" with ok=false at end of stream.
func (p *Parser) nextLine() (string, bool) {
	if !p.scanner.Scan() {
		return "", false
	}
	p.lineNum++

	return p.scanner.Text(), true
}

// requireLine is nextLine for lines whose absence is structural.
func (p *Parser) requireLine(field string) (string, error) {
	line, ok := p.nextLine()
	if !ok {
		return "", &ParseError{Line: p.lineNum + 1, Field: field, Err: errs.ErrUnexpectedEndOfConfig}
	}

	return line, nil
}

// parseStationLine handles line 1: station,device[,revision]. A missing
// revision field selects format.DefaultRevision; an unrecognized tag is
// reported as a warning and decoded with best-effort (oldest) layout.
func (p *Parser) parseStationLine(cfg *Config) error {
	line, err := p.requireLine("station line")
	if err != nil {
		return err
	}

	values := readSepValues(line, -1, "")
	if len(values) < 2 {
		return &ParseError{Line: p.lineNum, Field: "station line", Err: errs.ErrInvalidFieldCount}
	}

	cfg.StationName = values[0]
	cfg.RecDevID = values[1]
	if len(values) >= 3 {
		cfg.RevisionTag = values[2]
		cfg.Revision = format.ParseRevision(cfg.RevisionTag)
		if cfg.Revision == format.RevisionOther {
			p.sink.add(WarnUnknownRevision, "unknown standard revision %q", cfg.RevisionTag)
		}
	} else {
		cfg.Revision = format.DefaultRevision
	}

	return nil
}

// parseCountsLine handles line 2: total,<n>A,<n>D. The analog/status
// counts carry a one-character type suffix that is stripped before
// conversion.
func (p *Parser) parseCountsLine(cfg *Config) error {
	line, err := p.requireLine("channel counts")
	if err != nil {
		return err
	}

	values := readSepValues(line, 3, "0")

	total, err := p.intField(values[0], "total channel count")
	if err != nil {
		return err
	}
	analog, err := p.countField(values[1], "analog channel count")
	if err != nil {
		return err
	}
	status, err := p.countField(values[2], "status channel count")
	if err != nil {
		return err
	}

	if analog+status != total {
		return &ParseError{Line: p.lineNum, Field: "channel counts", Err: errs.ErrChannelCountMismatch}
	}

	cfg.ChannelsCount = total
	cfg.AnalogChannels = make([]AnalogChannel, 0, analog)
	cfg.StatusChannels = make([]StatusChannel, 0, status)

	return nil
}

func (p *Parser) parseAnalogChannels(cfg *Config) error {
	for i := 0; i < cap(cfg.AnalogChannels); i++ {
		line, err := p.requireLine("analog channel")
		if err != nil {
			return err
		}
		values := readSepValues(line, 13, "0")

		ch := AnalogChannel{
			Name:               values[1],
			Phase:              values[2],
			Circuit:            values[3],
			Unit:               values[4],
			PrimaryOrSecondary: values[12],
		}
		if ch.Index, err = p.intField(values[0], "analog channel index"); err != nil {
			return err
		}
		if ch.A, err = p.floatField(values[5], "analog scale a"); err != nil {
			return err
		}
		// Blank offset and skew default to zero rather than failing.
		if ch.B, err = p.floatOrDefault(values[6], 0.0, "analog offset b"); err != nil {
			return err
		}
		if ch.Skew, err = p.floatOrDefault(values[7], 0.0, "analog skew"); err != nil {
			return err
		}
		if ch.Min, err = p.floatField(values[8], "analog min"); err != nil {
			return err
		}
		if ch.Max, err = p.floatField(values[9], "analog max"); err != nil {
			return err
		}
		if ch.Primary, err = p.floatField(values[10], "analog primary ratio"); err != nil {
			return err
		}
		if ch.Secondary, err = p.floatField(values[11], "analog secondary ratio"); err != nil {
			return err
		}

		cfg.AnalogChannels = append(cfg.AnalogChannels, ch)
	}

	return nil
}

func (p *Parser) parseStatusChannels(cfg *Config) error {
	for i := 0; i < cap(cfg.StatusChannels); i++ {
		line, err := p.requireLine("status channel")
		if err != nil {
			return err
		}
		values := readSepValues(line, 5, "0")

		ch := StatusChannel{
			Name:    values[1],
			Phase:   values[2],
			Circuit: values[3],
		}
		if ch.Index, err = p.intField(values[0], "status channel index"); err != nil {
			return err
		}
		if ch.Normal, err = p.intOrDefault(values[4], 0, "status normal state"); err != nil {
			return err
		}

		cfg.StatusChannels = append(cfg.StatusChannels, ch)
	}

	return nil
}

func (p *Parser) parseFrequencyLine(cfg *Config) error {
	line, ok := p.nextLine()
	if !ok {
		return &ParseError{Line: p.lineNum + 1, Field: "line frequency", Err: errs.ErrUnexpectedEndOfConfig}
	}

	// A blank frequency line is tolerated.
	freq, err := p.floatOrDefault(line, 0.0, "line frequency")
	if err != nil {
		return err
	}
	cfg.Frequency = freq

	return nil
}

// parseSampleRates handles the rate-count line and the rate segments.
// A rate count of 0 is a sentinel: exactly one rate line still follows,
// but it is implicit and per-sample timestamps in the data file are
// authoritative rather than computed.
func (p *Parser) parseSampleRates(cfg *Config) error {
	line, err := p.requireLine("sample rate count")
	if err != nil {
		return err
	}

	nrates, err := p.intField(line, "sample rate count")
	if err != nil {
		return err
	}
	if nrates == 0 {
		nrates = 1
		cfg.TimestampCritical = true
	}

	cfg.SampleRates = make([]SampleRate, 0, nrates)
	lastEnd := 0
	for i := 0; i < nrates; i++ {
		line, err := p.requireLine("sample rate")
		if err != nil {
			return err
		}
		values := readSepValues(line, 2, "")

		rate, err := p.floatField(values[0], "sample rate hz")
		if err != nil {
			return err
		}
		endSample, err := p.intField(values[1], "sample rate end sample")
		if err != nil {
			return err
		}
		if endSample < lastEnd {
			return &ParseError{Line: p.lineNum, Field: "sample rate end sample", Err: errs.ErrInvalidSampleRates}
		}
		lastEnd = endSample

		cfg.SampleRates = append(cfg.SampleRates, SampleRate{Rate: rate, EndSample: endSample})
	}

	return nil
}

// parseTimestamps handles the start and trigger timestamp lines. The
// overall time base is the finer of the two resolutions: a nanosecond
// fraction on either timestamp selects the nanosecond base.
func (p *Parser) parseTimestamps(cfg *Config) error {
	startLine, _ := p.nextLine()
	start, startNano := parseTimestamp(strings.TrimSpace(startLine), cfg.Revision, &p.sink)

	triggerLine, _ := p.nextLine()
	trigger, triggerNano := parseTimestamp(strings.TrimSpace(triggerLine), cfg.Revision, &p.sink)

	cfg.StartTimestamp = start
	cfg.TriggerTimestamp = trigger
	cfg.TimeBase = math.Min(timeBase(startNano), timeBase(triggerNano))

	return nil
}

func (p *Parser) parseFormatLine(cfg *Config) error {
	line, _ := p.nextLine()

	ft, err := format.ParseDataType(line)
	if err != nil {
		return &ParseError{
			Line:  p.lineNum,
			Field: "data file format",
			Err:   fmt.Errorf("%w: %q", errs.ErrUnknownDataFormat, strings.TrimSpace(line)),
		}
	}
	cfg.Format = ft

	return nil
}

// parseTimeMultLine handles the timestamp multiplication factor,
// present only for the 1999 and 2013 revisions. A blank or missing
// value defaults to 1.0.
func (p *Parser) parseTimeMultLine(cfg *Config) error {
	if cfg.Revision != format.Rev1999 && cfg.Revision != format.Rev2013 {
		return nil
	}

	line, ok := p.nextLine()
	if !ok || strings.TrimSpace(line) == "" {
		cfg.TimeMult = 1.0
		return nil
	}

	mult, err := p.floatField(line, "time multiplier")
	if err != nil {
		return err
	}
	cfg.TimeMult = mult

	return nil
}

// parseTimeQualityLines handles the two 2013-only metadata lines
// (time_code,local_code and tmq_code,leapsec). The fields are kept as
// raw strings; absent lines are tolerated.
func (p *Parser) parseTimeQualityLines(cfg *Config) error {
	if cfg.Revision != format.Rev2013 {
		return nil
	}

	line, ok := p.nextLine()
	if !ok || strings.TrimSpace(line) == "" {
		return nil
	}
	values := readSepValues(line, 2, "")
	cfg.TimeCode, cfg.LocalCode = values[0], values[1]

	line, ok = p.nextLine()
	if !ok {
		return nil
	}
	values = readSepValues(line, 2, "")
	cfg.TmqCode, cfg.LeapSecond = values[0], values[1]

	return nil
}

// readSepValues splits a comma-separated line into trimmed fields. With
// expected >= 0 the result is padded with def (short lines) or
// truncated (long lines) to exactly expected fields.
func readSepValues(line string, expected int, def string) []string {
	parts := strings.Split(line, separator)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if expected < 0 || len(parts) == expected {
		return parts
	}

	values := make([]string, expected)
	for i := range values {
		if i < len(parts) {
			values[i] = parts[i]
		} else {
			values[i] = def
		}
	}

	return values
}

func (p *Parser) intField(s, field string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &ParseError{Line: p.lineNum, Field: field, Err: fmt.Errorf("%w: %q", errs.ErrInvalidNumber, s)}
	}

	return v, nil
}

func (p *Parser) floatField(s, field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &ParseError{Line: p.lineNum, Field: field, Err: fmt.Errorf("%w: %q", errs.ErrInvalidNumber, s)}
	}

	return v, nil
}

func (p *Parser) intOrDefault(s string, def int, field string) (int, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}

	return p.intField(s, field)
}

func (p *Parser) floatOrDefault(s string, def float64, field string) (float64, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}

	return p.floatField(s, field)
}

// countField converts a channel-count field of the form "12A" or "3D",
// stripping the one-character type suffix when present.
func (p *Parser) countField(s, field string) (int, error) {
	s = strings.TrimSpace(s)
	if s != "" {
		if last := rune(s[len(s)-1]); unicode.IsLetter(last) {
			s = s[:len(s)-1]
		}
	}

	return p.intField(s, field)
}
