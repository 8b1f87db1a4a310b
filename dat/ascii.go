package dat

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gridsignal/comtrade/cfg"
	"github.com/gridsignal/comtrade/errs"
)

// maxRowSize bounds one ASCII data row; generously sized for files with
// thousands of declared channels.
const maxRowSize = 1 << 20

// asciiDecoder decodes comma-delimited text rows of the form
// "n, timestamp, analog..., status...".
type asciiDecoder struct{}

func (d *asciiDecoder) Decode(r io.Reader, c *cfg.Config) (*Record, error) {
	rec := newRecord(c)
	analogCount := c.AnalogCount()
	statusCount := c.StatusCount()
	a, b := gains(c)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxRowSize)

	row := 0
	for scanner.Scan() && row < rec.TotalSamples {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		values := strings.Split(line, ",")
		// Status values occupy the final statusCount fields of the row
		// regardless of the declared analog count, so they are indexed
		// from the row's end.
		if len(values) < 2+analogCount || len(values)-statusCount < 2 {
			return nil, fmt.Errorf("data row %d: %w: got %d fields", row+1, errs.ErrInvalidFieldCount, len(values))
		}

		n, err := strconv.Atoi(strings.TrimSpace(values[0]))
		if err != nil {
			return nil, fmt.Errorf("data row %d: sample number: %w: %q", row+1, errs.ErrInvalidNumber, values[0])
		}
		rawTs, err := strconv.ParseFloat(strings.TrimSpace(values[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("data row %d: timestamp: %w: %q", row+1, errs.ErrInvalidNumber, values[1])
		}

		ts, err := resolveTime(c, n, rawTs, rawTs == float64(uint32(timestampMissing)))
		if err != nil {
			return nil, err
		}
		rec.Time[row] = ts

		for i := 0; i < analogCount; i++ {
			raw, err := strconv.ParseFloat(strings.TrimSpace(values[2+i]), 64)
			if err != nil {
				return nil, fmt.Errorf("data row %d: analog %d: %w: %q", row+1, i+1, errs.ErrInvalidNumber, values[2+i])
			}
			rec.Analog[i][row] = a[i]*raw + b[i]
		}

		base := len(values) - statusCount
		for i := 0; i < statusCount; i++ {
			v, err := strconv.Atoi(strings.TrimSpace(values[base+i]))
			if err != nil {
				return nil, fmt.Errorf("data row %d: status %d: %w: %q", row+1, i+1, errs.ErrInvalidNumber, values[base+i])
			}
			rec.Status[i][row] = int32(v)
		}

		row++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading data rows: %w", err)
	}

	return rec, nil
}
