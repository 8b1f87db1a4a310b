package cfg

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gridsignal/comtrade/format"
)

var (
	reDate = regexp.MustCompile(`^([0-9]{1,2})/([0-9]{1,2})/([0-9]{2,4})`)
	reTime = regexp.MustCompile(`^([0-9]{1,2}):([0-9]{2}):([0-9]{2})(\.([0-9]{1,12}))?`)
)

// parseTimestamp parses a "date,time" configuration cell into a
// calendar timestamp, reporting whether the source fraction carried
// nanosecond resolution.
//
// Dates are day/month/year, except 1991-revision files which use
// month/day/year. The seconds fraction (1-12 digits) is right-padded
// with zeros to 6 digits (microsecond base) or, when longer than 6
// digits, to 9 digits (nanosecond base); nanosecond values are
// truncated to microseconds for storage and the loss is reported as a
// warning. Missing date components default to the minimum calendar
// values, also reported as a warning. An empty cell yields the minimum
// timestamp.
func parseTimestamp(cell string, rev format.Revision, sink *warningSink) (time.Time, bool) {
	var day, month, year, hour, minute, second, microsecond int
	nanosec := false

	if strings.TrimSpace(cell) != "" {
		values := readSepValues(cell, 2, "")
		dateStr, timeStr := values[0], values[1]

		if strings.TrimSpace(dateStr) != "" {
			if rev == format.Rev1991 {
				month, day, year = parseDateCell(dateStr)
			} else {
				day, month, year = parseDateCell(dateStr)
			}
		}
		if strings.TrimSpace(timeStr) != "" {
			hour, minute, second, microsecond, nanosec = parseTimeCell(timeStr, sink)
		}
	}

	usingMinData := false
	if year <= 0 {
		year = 1
		usingMinData = true
	}
	if month <= 0 {
		month = 1
		usingMinData = true
	}
	if day <= 0 {
		day = 1
		usingMinData = true
	}

	ts := time.Date(year, time.Month(month), day, hour, minute, second, microsecond*1000, time.UTC)
	if usingMinData {
		sink.add(WarnDefaultSubstitution, "missing date values, using minimum values: %s", ts.Format("2006-01-02 15:04:05.000000"))
	}

	return ts, nanosec
}

// parseDateCell returns the three slash-separated date components in
// file order, or zeros when the cell does not look like a date.
func parseDateCell(s string) (first, second, third int) {
	m := reDate.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, 0
	}

	first, _ = strconv.Atoi(m[1])
	second, _ = strconv.Atoi(m[2])
	third, _ = strconv.Atoi(m[3])

	return first, second, third
}

func parseTimeCell(s string, sink *warningSink) (hour, minute, second, microsecond int, nanosec bool) {
	m := reTime.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, 0, 0, false
	}

	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	second, _ = strconv.Atoi(m[3])

	frac := m[5]
	if frac == "" {
		return hour, minute, second, 0, false
	}

	// Pad the fraction with zeros to the right: up to 6 digits it is a
	// microsecond value, beyond that a nanosecond value.
	if len(frac) <= 6 {
		frac = padRight(frac, 6)
	} else {
		frac = padRight(frac, 9)
		nanosec = true
	}

	fracValue, _ := strconv.Atoi(frac)
	microsecond = fracValue
	if nanosec {
		sink.add(WarnPrecisionLoss, "nanosecond timestamp resolution truncated to microseconds")
		microsecond = fracValue / 1000
	}

	return hour, minute, second, microsecond, nanosec
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}

	return s + strings.Repeat("0", width-len(s))
}

// timeBase maps a fraction resolution to the raw-timestamp unit.
func timeBase(nanosec bool) float64 {
	if nanosec {
		return TimeBaseNanosecond
	}

	return TimeBaseMicrosecond
}
