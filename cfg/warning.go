package cfg

import "fmt"

// WarningCode classifies the non-fatal conditions a parse can report.
type WarningCode uint8

const (
	// WarnUnknownRevision reports a revision tag outside the known
	// 1991/1999/2013 set; parsing proceeds with best-effort layout.
	WarnUnknownRevision WarningCode = iota + 1

	// WarnPrecisionLoss reports a nanosecond-resolution timestamp
	// truncated to microsecond precision for storage.
	WarnPrecisionLoss

	// WarnDefaultSubstitution reports missing date components replaced
	// with minimum calendar values.
	WarnDefaultSubstitution
)

func (c WarningCode) String() string {
	switch c {
	case WarnUnknownRevision:
		return "UnknownRevision"
	case WarnPrecisionLoss:
		return "PrecisionLoss"
	case WarnDefaultSubstitution:
		return "DefaultSubstitution"
	default:
		return "Unknown"
	}
}

// Warning is a non-fatal condition recorded during parsing. Warnings
// never abort a decode and are collected per call; there is no
// process-wide warning state.
type Warning struct {
	Code    WarningCode
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// warningSink collects warnings unless suppressed.
type warningSink struct {
	suppress bool
	warnings []Warning
}

func (s *warningSink) add(code WarningCode, msg string, args ...any) {
	if s.suppress {
		return
	}
	s.warnings = append(s.warnings, Warning{Code: code, Message: fmt.Sprintf(msg, args...)})
}
