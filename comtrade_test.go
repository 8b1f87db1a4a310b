package comtrade

import (
	"bytes"
	"encoding/binary"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gridsignal/comtrade/compress"
	"github.com/gridsignal/comtrade/errs"
	"github.com/gridsignal/comtrade/format"
)

const testConfigText = `STATION_A,DEV01,1999
3,2A,1D
1,IA,A,L1,A,2.762,0,0,-32768,32767,400,5,P
2,VA,A,L1,kV,0.005,0,0,-32768,32767,100000,100,S
1,BREAKER,A,L1,0
60
1
1000,4
01/01/2000,10:30:00.228000
01/01/2000,10:30:00.722000
ASCII
1
`

const testDataText = `1,0,100,200,0
2,1000,101,201,1
3,2000,102,202,1
4,3000,103,203,0
`

// writeRecording writes a cfg/dat pair into dir and returns the cfg path.
func writeRecording(t *testing.T, dir string) string {
	t.Helper()

	cfgPath := filepath.Join(dir, "fault.cfg")
	require.NoError(t, os.WriteFile(cfgPath, []byte(testConfigText), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fault.dat"), []byte(testDataText), 0o644))

	return cfgPath
}

func verifyTestRecord(t *testing.T, rec *Record) {
	t.Helper()

	require.Equal(t, "STATION_A", rec.Config.StationName)
	require.Equal(t, 4, rec.TotalSamples)
	require.Len(t, rec.Analog, 2)
	require.Len(t, rec.Status, 1)
	require.InDelta(t, 2.762*100, rec.Analog[0][0], 1e-9)
	require.Equal(t, []int32{0, 1, 1, 0}, rec.Status[0])
	require.InDelta(t, 0.494, rec.TriggerTime(), 1e-9)
}

func TestLoad_FilePair(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeRecording(t, dir)

	rec, err := Load(cfgPath)
	require.NoError(t, err)
	verifyTestRecord(t, rec)
	require.Empty(t, rec.HDR)
	require.Empty(t, rec.INF)
}

func TestLoad_WithAuxiliaryFiles(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeRecording(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fault.hdr"), []byte("operator notes\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fault.inf"), []byte("extra=1\n"), 0o644))

	rec, err := Load(cfgPath)
	require.NoError(t, err)
	require.Equal(t, "operator notes\n", rec.HDR)
	require.Equal(t, "extra=1\n", rec.INF)
}

func TestLoad_CompressedDataFile(t *testing.T) {
	dir := t.TempDir()

	cfgPath := filepath.Join(dir, "fault.cfg")
	require.NoError(t, os.WriteFile(cfgPath, []byte(testConfigText), 0o644))

	codec, err := compress.GetCodec(format.CompressionGzip)
	require.NoError(t, err)
	compressed, err := codec.Compress([]byte(testDataText))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fault.dat.gz"), compressed, 0o644))

	rec, err := Load(cfgPath)
	require.NoError(t, err)
	verifyTestRecord(t, rec)
}

func TestLoad_UppercaseCompanionExtension(t *testing.T) {
	dir := t.TempDir()

	cfgPath := filepath.Join(dir, "fault.cfg")
	require.NoError(t, os.WriteFile(cfgPath, []byte(testConfigText), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fault.DAT"), []byte(testDataText), 0o644))

	rec, err := Load(cfgPath)
	require.NoError(t, err)
	verifyTestRecord(t, rec)
}

func TestLoad_ExplicitDatPath(t *testing.T) {
	dir := t.TempDir()

	cfgPath := filepath.Join(dir, "fault.cfg")
	datPath := filepath.Join(dir, "samples.bin")
	require.NoError(t, os.WriteFile(cfgPath, []byte(testConfigText), 0o644))
	require.NoError(t, os.WriteFile(datPath, []byte(testDataText), 0o644))

	rec, err := Load(cfgPath, WithDatPath(datPath))
	require.NoError(t, err)
	verifyTestRecord(t, rec)
}

func TestLoad_MissingFiles(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing configuration", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.cfg"))
		require.Error(t, err)
		require.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("missing data file", func(t *testing.T) {
		cfgPath := filepath.Join(dir, "lonely.cfg")
		require.NoError(t, os.WriteFile(cfgPath, []byte(testConfigText), 0o644))

		_, err := Load(cfgPath)
		require.Error(t, err)
		require.ErrorIs(t, err, fs.ErrNotExist)
	})
}

func TestLoad_UnknownExtension(t *testing.T) {
	_, err := Load("recording.xml")
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrUnknownFileExtension)
}

func TestRead_Streams(t *testing.T) {
	rec, err := Read(strings.NewReader(testConfigText), strings.NewReader(testDataText))
	require.NoError(t, err)
	verifyTestRecord(t, rec)
}

func TestRead_IgnoreWarnings(t *testing.T) {
	config := strings.Replace(testConfigText, ",1999", ",2037", 1)

	rec, err := Read(strings.NewReader(config), strings.NewReader(testDataText), WithIgnoreWarnings())
	require.NoError(t, err)
	require.Empty(t, rec.Warnings())

	rec, err = Read(strings.NewReader(config), strings.NewReader(testDataText))
	require.NoError(t, err)
	require.NotEmpty(t, rec.Warnings())
}

func buildContainer(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("--- file type: CFG ---\n")
	buf.WriteString(testConfigText)
	buf.WriteString("--- file type: HDR ---\n")
	buf.WriteString("combined recording\n")
	buf.WriteString("--- file type: DAT ASCII ---\n")
	buf.WriteString(testDataText)

	return buf.Bytes()
}

func TestReadContainer_ASCII(t *testing.T) {
	rec, err := ReadContainer(buildContainer(t))
	require.NoError(t, err)
	verifyTestRecord(t, rec)
	require.Equal(t, "combined recording", rec.HDR)
}

func TestReadContainer_Binary(t *testing.T) {
	config := strings.Replace(testConfigText, "ASCII", "BINARY", 1)

	// 4 rows: sample number, timestamp, 2 analog int16, 1 status group.
	var payload bytes.Buffer
	for i := 0; i < 4; i++ {
		var row [14]byte
		binary.LittleEndian.PutUint32(row[0:4], uint32(i+1))
		binary.LittleEndian.PutUint32(row[4:8], uint32(i*1000))
		binary.LittleEndian.PutUint16(row[8:10], uint16(100+i))
		binary.LittleEndian.PutUint16(row[10:12], uint16(200+i))
		var status uint16
		if i == 1 || i == 2 {
			status = 1
		}
		binary.LittleEndian.PutUint16(row[12:14], status)
		payload.Write(row[:])
	}

	var buf bytes.Buffer
	buf.WriteString("--- file type: CFG ---\n")
	buf.WriteString(config)
	buf.WriteString("--- file type: DAT BINARY: 56 ---\n")
	buf.Write(payload.Bytes())

	rec, err := ReadContainer(buf.Bytes())
	require.NoError(t, err)
	verifyTestRecord(t, rec)
}

func TestLoad_CombinedFile(t *testing.T) {
	dir := t.TempDir()
	cffPath := filepath.Join(dir, "fault.cff")
	require.NoError(t, os.WriteFile(cffPath, buildContainer(t), 0o644))

	rec, err := Load(cffPath)
	require.NoError(t, err)
	verifyTestRecord(t, rec)
}

func TestLoad_CompressedCombinedFile(t *testing.T) {
	dir := t.TempDir()

	codec, err := compress.GetCodec(format.CompressionZstd)
	require.NoError(t, err)
	compressed, err := codec.Compress(buildContainer(t))
	require.NoError(t, err)

	cffPath := filepath.Join(dir, "fault.cff.zst")
	require.NoError(t, os.WriteFile(cffPath, compressed, 0o644))

	rec, err := Load(cffPath)
	require.NoError(t, err)
	verifyTestRecord(t, rec)
}

func TestRecord_ChannelLookup(t *testing.T) {
	rec, err := Read(strings.NewReader(testConfigText), strings.NewReader(testDataText))
	require.NoError(t, err)

	require.Equal(t, []string{"IA", "VA"}, rec.AnalogNames())
	require.Equal(t, []string{"BREAKER"}, rec.StatusNames())

	t.Run("analog by name", func(t *testing.T) {
		values, ok := rec.AnalogByName("VA")
		require.True(t, ok)
		require.InDelta(t, 0.005*200, values[0], 1e-9)
	})

	t.Run("status by name", func(t *testing.T) {
		values, ok := rec.StatusByName("BREAKER")
		require.True(t, ok)
		require.Equal(t, []int32{0, 1, 1, 0}, values)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, ok := rec.AnalogByName("NO_SUCH_CHANNEL")
		require.False(t, ok)
		_, ok = rec.StatusByName("NO_SUCH_CHANNEL")
		require.False(t, ok)
	})

	t.Run("channel id is stable", func(t *testing.T) {
		require.Equal(t, ChannelID("IA"), ChannelID("IA"))
		require.NotEqual(t, ChannelID("IA"), ChannelID("VA"))
	})
}

func TestBigEndianOption(t *testing.T) {
	config := strings.Replace(testConfigText, "ASCII", "BINARY", 1)
	config = strings.Replace(config, "3,2A,1D", "1,1A,0D", 1)
	config = strings.Replace(config, "2,VA,A,L1,kV,0.005,0,0,-32768,32767,100000,100,S\n", "", 1)
	config = strings.Replace(config, "1,BREAKER,A,L1,0\n", "", 1)

	var row [10]byte
	binary.BigEndian.PutUint32(row[0:4], 1)
	binary.BigEndian.PutUint32(row[4:8], 0)
	binary.BigEndian.PutUint16(row[8:10], uint16(int16(100)))

	rec, err := Read(strings.NewReader(config), bytes.NewReader(row[:]), WithBigEndian())
	require.NoError(t, err)
	require.InDelta(t, 2.762*100, rec.Analog[0][0], 1e-9)
}

func TestRoleExt(t *testing.T) {
	require.Equal(t, ".cfg", roleExt("/data/fault.cfg"))
	require.Equal(t, ".cfg", roleExt("/data/FAULT.CFG"))
	require.Equal(t, ".cfg", roleExt("fault.cfg.gz"))
	require.Equal(t, ".cff", roleExt("fault.cff.zst"))
	require.Equal(t, ".dat", roleExt("fault.dat.lz4"))
	require.Equal(t, "", roleExt("README"))
}
