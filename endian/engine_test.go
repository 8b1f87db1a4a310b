package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetEngines(t *testing.T) {
	require.Equal(t, binary.LittleEndian, GetLittleEndianEngine())
	require.Equal(t, binary.BigEndian, GetBigEndianEngine())
}

func TestEngineRoundTrip(t *testing.T) {
	engines := map[string]EndianEngine{
		"little": GetLittleEndianEngine(),
		"big":    GetBigEndianEngine(),
	}

	for name, engine := range engines {
		t.Run(name, func(t *testing.T) {
			buf := engine.AppendUint32(nil, 0xDEADBEEF)
			require.Len(t, buf, 4)
			require.Equal(t, uint32(0xDEADBEEF), engine.Uint32(buf))

			buf = engine.AppendUint16(nil, 0xBEEF)
			require.Len(t, buf, 2)
			require.Equal(t, uint16(0xBEEF), engine.Uint16(buf))
		})
	}
}

func TestCheckEndianness(t *testing.T) {
	order := CheckEndianness()
	require.NotNil(t, order)

	// Exactly one of the two predicates holds on any host.
	require.NotEqual(t, IsNativeLittleEndian(), IsNativeBigEndian())
	if IsNativeLittleEndian() {
		require.Equal(t, binary.LittleEndian, order)
	} else {
		require.Equal(t, binary.BigEndian, order)
	}
}
