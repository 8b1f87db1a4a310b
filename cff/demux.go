// Package cff demultiplexes COMTRADE combined (.cff) files.
//
// A combined file multiplexes the configuration, data and auxiliary
// text files into one stream. Each logical file starts with a header
// line of the form
//
//	--- file type: CFG ---
//	--- file type: DAT BINARY: 1344 ---
//
// Text sections are accumulated line by line. A binary DAT section
// cannot be located by text scanning — its bytes may contain
// header-like sequences — so its declared byte count anchors it to the
// end of the physical file instead.
package cff

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gridsignal/comtrade/errs"
	"github.com/gridsignal/comtrade/format"
)

// headerPattern recognizes section header lines, matched against
// trimmed, upper-cased lines: the section type, an optional data
// subformat and an optional byte count.
var headerPattern = regexp.MustCompile(`^--- FILE TYPE: ([A-Z]+)(?:\s+([A-Z0-9]+)(?:\s*:\s*([0-9]+))?)? ---$`)

// maxLineSize bounds one text line during section scanning.
const maxLineSize = 1 << 20

// Sections holds the demultiplexed sub-streams of a combined file.
type Sections struct {
	// CFG is the configuration text, forwarded verbatim to the
	// configuration parser.
	CFG []byte

	// DAT is the data sub-stream: joined text rows for ASCII sections,
	// or the raw byte range for binary sections.
	DAT []byte

	// HDR and INF are opaque text sections, forwarded to callers
	// verbatim; nil when absent.
	HDR []byte
	INF []byte

	// DataFormat is the subformat declared on the DAT header line, when
	// present and recognized.
	DataFormat format.DataType

	// DataBytes is the byte count declared for a binary DAT section.
	DataBytes int

	// BinaryData reports whether the DAT section was binary (anchored
	// by byte count) rather than textual.
	BinaryData bool
}

// Demux splits a combined file into its logical sub-streams. The whole
// file must be in memory: a binary DAT section is located from the end
// of the physical buffer, not by text scanning.
func Demux(data []byte) (*Sections, error) {
	s := &Sections{}

	var cfgLines, datLines, hdrLines, infLines []string
	section := ""

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

scan:
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if m := headerPattern.FindStringSubmatch(strings.ToUpper(line)); m != nil {
			section = m[1]
			if section == "DAT" {
				if m[2] != "" {
					if ft, err := format.ParseDataType(m[2]); err == nil {
						s.DataFormat = ft
					}
				}
				if m[3] != "" {
					// The pattern guarantees digits.
					s.DataBytes, _ = strconv.Atoi(m[3])
				}
				if s.DataFormat != format.TypeASCII {
					// Binary data follows; text scanning stops here.
					s.BinaryData = true
					break scan
				}
			}

			continue
		}

		switch section {
		case "CFG":
			cfgLines = append(cfgLines, line)
		case "DAT":
			datLines = append(datLines, line)
		case "HDR":
			hdrLines = append(hdrLines, line)
		case "INF":
			infLines = append(infLines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning combined file: %w", err)
	}

	if len(cfgLines) == 0 {
		return nil, errs.ErrMissingContainerConfig
	}
	s.CFG = joinLines(cfgLines)

	if s.BinaryData {
		if s.DataBytes > len(data) {
			return nil, fmt.Errorf("combined file declares %d data bytes but holds %d bytes total", s.DataBytes, len(data))
		}
		// The binary segment is the last DataBytes bytes of the file.
		s.DAT = data[len(data)-s.DataBytes:]
	} else {
		s.DAT = joinLines(datLines)
	}

	s.HDR = joinLines(hdrLines)
	s.INF = joinLines(infLines)

	return s, nil
}

// joinLines rejoins accumulated section lines, preserving order; empty
// sections stay nil.
func joinLines(lines []string) []byte {
	if len(lines) == 0 {
		return nil
	}

	return []byte(strings.Join(lines, "\n"))
}
