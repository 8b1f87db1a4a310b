package cfg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gridsignal/comtrade/format"
)

func TestParseTimestamp_MicrosecondFraction(t *testing.T) {
	sink := &warningSink{}

	ts, nano := parseTimestamp("01/01/2000,10:30:00.228000", format.Rev1999, sink)
	require.False(t, nano)
	require.Empty(t, sink.warnings)

	want := time.Date(2000, time.January, 1, 10, 30, 0, 228000000, time.UTC)
	require.Equal(t, want, ts)
}

func TestParseTimestamp_ShortFractionPadsRight(t *testing.T) {
	sink := &warningSink{}

	// ".2" means 200000 microseconds, not 2.
	ts, nano := parseTimestamp("01/01/2000,10:30:00.2", format.Rev1999, sink)
	require.False(t, nano)
	require.Equal(t, 200000000, ts.Nanosecond())
}

func TestParseTimestamp_NanosecondTruncation(t *testing.T) {
	sink := &warningSink{}

	ts, nano := parseTimestamp("01/01/2000,10:30:00.228123456", format.Rev1999, sink)
	require.True(t, nano)

	// Stored at microsecond precision; the sub-microsecond digits are
	// dropped and the loss is reported.
	require.Equal(t, 228123000, ts.Nanosecond())
	require.Len(t, sink.warnings, 1)
	require.Equal(t, WarnPrecisionLoss, sink.warnings[0].Code)
}

func TestParseTimestamp_DateOrderByRevision(t *testing.T) {
	sink := &warningSink{}

	t.Run("1991 uses month/day/year", func(t *testing.T) {
		ts, _ := parseTimestamp("04/05/1995,00:00:00", format.Rev1991, sink)
		require.Equal(t, time.April, ts.Month())
		require.Equal(t, 5, ts.Day())
	})

	t.Run("1999 uses day/month/year", func(t *testing.T) {
		ts, _ := parseTimestamp("04/05/1999,00:00:00", format.Rev1999, sink)
		require.Equal(t, time.May, ts.Month())
		require.Equal(t, 4, ts.Day())
	})

	t.Run("unknown revision uses day/month/year", func(t *testing.T) {
		ts, _ := parseTimestamp("04/05/2020,00:00:00", format.RevisionOther, sink)
		require.Equal(t, time.May, ts.Month())
		require.Equal(t, 4, ts.Day())
	})
}

func TestParseTimestamp_EmptyCellYieldsMinimum(t *testing.T) {
	sink := &warningSink{}

	ts, nano := parseTimestamp("", format.Rev1999, sink)
	require.False(t, nano)
	require.Equal(t, time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC), ts)

	require.Len(t, sink.warnings, 1)
	require.Equal(t, WarnDefaultSubstitution, sink.warnings[0].Code)
}

func TestParseTimestamp_MissingDateComponent(t *testing.T) {
	sink := &warningSink{}

	ts, _ := parseTimestamp(",10:30:00", format.Rev1999, sink)
	require.Equal(t, 1, ts.Year())
	require.Equal(t, 10, ts.Hour())
	require.Equal(t, 30, ts.Minute())

	require.NotEmpty(t, sink.warnings)
	require.Equal(t, WarnDefaultSubstitution, sink.warnings[0].Code)
}

func TestParseTimestamp_SuppressedSink(t *testing.T) {
	sink := &warningSink{suppress: true}

	parseTimestamp("", format.Rev1999, sink)
	require.Empty(t, sink.warnings)
}

func TestTimeBase(t *testing.T) {
	require.Equal(t, TimeBaseMicrosecond, timeBase(false))
	require.Equal(t, TimeBaseNanosecond, timeBase(true))
	require.Less(t, TimeBaseNanosecond, TimeBaseMicrosecond)
}
