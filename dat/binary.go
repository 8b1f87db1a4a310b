package dat

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/gridsignal/comtrade/cfg"
	"github.com/gridsignal/comtrade/endian"
	"github.com/gridsignal/comtrade/internal/pool"
)

// analogKind selects the binary analog field interpretation.
type analogKind uint8

const (
	analogInt16   analogKind = iota + 1 // 16-bit signed integers (BINARY)
	analogInt32                         // 32-bit signed integers (BINARY32)
	analogFloat32                       // IEEE-754 single precision (FLOAT32)
)

// binaryDecoder decodes the three fixed-width binary layouts. Every row
// is a 4-byte sample number, a 4-byte timestamp, analogCount analog
// fields and ceil(statusCount/16) 16-bit status groups.
type binaryDecoder struct {
	engine      endian.EndianEngine
	analogBytes int
	kind        analogKind
}

func (d *binaryDecoder) Decode(r io.Reader, c *cfg.Config) (*Record, error) {
	rec := newRecord(c)
	analogCount := c.AnalogCount()
	statusCount := c.StatusCount()
	groups := (statusCount + 15) / 16
	rowSize := 8 + analogCount*d.analogBytes + 2*groups
	a, b := gains(c)

	bb := pool.GetByteBuffer()
	defer pool.PutByteBuffer(bb)
	row := bb.Sized(rowSize)

	for i := 0; i < rec.TotalSamples; i++ {
		if _, err := io.ReadFull(r, row); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				// Short or empty trailing reads end decoding cleanly.
				break
			}

			return nil, fmt.Errorf("reading data row %d: %w", i+1, err)
		}

		n := d.engine.Uint32(row[0:4])
		rawTs := d.engine.Uint32(row[4:8])
		ts, err := resolveTime(c, int(n), float64(rawTs), rawTs == timestampMissing)
		if err != nil {
			return nil, err
		}
		rec.Time[i] = ts

		off := 8
		for ch := 0; ch < analogCount; ch++ {
			var raw float64
			switch d.kind {
			case analogInt16:
				raw = float64(int16(d.engine.Uint16(row[off : off+2])))
			case analogInt32:
				raw = float64(int32(d.engine.Uint32(row[off : off+4])))
			case analogFloat32:
				raw = float64(math.Float32frombits(d.engine.Uint32(row[off : off+4])))
			}
			rec.Analog[ch][i] = a[ch]*raw + b[ch]
			off += d.analogBytes
		}

		// Status bits are packed LSB-first: channel k reads bit k%16 of
		// group k/16.
		for g := 0; g < groups; g++ {
			group := d.engine.Uint16(row[off : off+2])
			off += 2

			last := (g + 1) * 16
			if last > statusCount {
				last = statusCount
			}
			for ch := g * 16; ch < last; ch++ {
				rec.Status[ch][i] = int32((group >> (ch - g*16)) & 1)
			}
		}
	}

	return rec, nil
}
