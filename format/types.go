// Package format defines the closed enumerations that drive decoding:
// the COMTRADE standard revision, the data-file format tag, and the
// transparent input compression type.
package format

import (
	"fmt"
	"strings"
)

type (
	DataType        uint8
	Revision        uint8
	CompressionType uint8
)

const (
	TypeASCII    DataType = 0x1 // TypeASCII represents comma-delimited text data files.
	TypeBinary   DataType = 0x2 // TypeBinary represents 16-bit signed binary data files.
	TypeBinary32 DataType = 0x3 // TypeBinary32 represents 32-bit signed binary data files.
	TypeFloat32  DataType = 0x4 // TypeFloat32 represents IEEE-754 single precision data files.

	Rev1991       Revision = 0x1 // Rev1991 is the original 1991 standard revision.
	Rev1999       Revision = 0x2 // Rev1999 is the 1999 standard revision.
	Rev2013       Revision = 0x3 // Rev2013 is the 2013 standard revision.
	RevisionOther Revision = 0xF // RevisionOther marks an unrecognized revision tag.

	CompressionNone CompressionType = 0x1 // CompressionNone represents uncompressed input.
	CompressionGzip CompressionType = 0x2 // CompressionGzip represents gzip-compressed input.
	CompressionZstd CompressionType = 0x3 // CompressionZstd represents Zstandard-compressed input.
	CompressionS2   CompressionType = 0x4 // CompressionS2 represents S2/Snappy framed input.
	CompressionLZ4  CompressionType = 0x5 // CompressionLZ4 represents LZ4 framed input.
)

// DefaultRevision is the revision assumed when the first configuration
// line carries no revision field. Legacy two-field first lines predate
// the 1999 revision, so the oldest standard applies.
const DefaultRevision = Rev1991

func (t DataType) String() string {
	switch t {
	case TypeASCII:
		return "ASCII"
	case TypeBinary:
		return "BINARY"
	case TypeBinary32:
		return "BINARY32"
	case TypeFloat32:
		return "FLOAT32"
	default:
		return "Unknown"
	}
}

// ParseDataType matches a data-format tag case-insensitively against the
// four known formats. An unknown tag is a fatal condition for decoding.
func ParseDataType(tag string) (DataType, error) {
	switch strings.ToUpper(strings.TrimSpace(tag)) {
	case "ASCII":
		return TypeASCII, nil
	case "BINARY":
		return TypeBinary, nil
	case "BINARY32":
		return TypeBinary32, nil
	case "FLOAT32":
		return TypeFloat32, nil
	default:
		return 0, fmt.Errorf("unsupported data file format: %q", tag)
	}
}

func (r Revision) String() string {
	switch r {
	case Rev1991:
		return "1991"
	case Rev1999:
		return "1999"
	case Rev2013:
		return "2013"
	default:
		return "Unknown"
	}
}

// ParseRevision maps a revision tag to its enumeration value. Tags
// outside the three known revisions yield RevisionOther; callers decide
// whether that is worth a warning, decoding proceeds either way.
func ParseRevision(tag string) Revision {
	switch strings.TrimSpace(tag) {
	case "1991":
		return Rev1991
	case "1999":
		return Rev1999
	case "2013":
		return Rev2013
	default:
		return RevisionOther
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionGzip:
		return "Gzip"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
