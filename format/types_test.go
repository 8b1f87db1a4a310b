package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDataType(t *testing.T) {
	cases := map[string]DataType{
		"ASCII":      TypeASCII,
		"ascii":      TypeASCII,
		" Binary ":   TypeBinary,
		"BINARY32":   TypeBinary32,
		"float32":    TypeFloat32,
		"  FLOAT32 ": TypeFloat32,
	}
	for tag, want := range cases {
		ft, err := ParseDataType(tag)
		require.NoError(t, err, "tag %q", tag)
		require.Equal(t, want, ft, "tag %q", tag)
	}

	t.Run("unknown tag", func(t *testing.T) {
		_, err := ParseDataType("EBCDIC")
		require.Error(t, err)
		require.Contains(t, err.Error(), "EBCDIC")
	})
}

func TestParseRevision(t *testing.T) {
	require.Equal(t, Rev1991, ParseRevision("1991"))
	require.Equal(t, Rev1999, ParseRevision(" 1999 "))
	require.Equal(t, Rev2013, ParseRevision("2013"))
	require.Equal(t, RevisionOther, ParseRevision("2037"))
	require.Equal(t, RevisionOther, ParseRevision(""))
}

func TestStringers(t *testing.T) {
	require.Equal(t, "ASCII", TypeASCII.String())
	require.Equal(t, "BINARY32", TypeBinary32.String())
	require.Equal(t, "1999", Rev1999.String())
	require.Equal(t, "Unknown", RevisionOther.String())
	require.Equal(t, "Gzip", CompressionGzip.String())
	require.Equal(t, "Unknown", CompressionType(0xEE).String())
}
