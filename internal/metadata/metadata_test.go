package metadata

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadJPEGExif(t *testing.T) {
	analysis, err := Read(bytes.NewReader(buildJPEGWithExif()))
	require.NoError(t, err)
	assert.True(t, analysis.HasExif())
	assert.Equal(t, "RICOH THETA", analysis.Model)
	assert.Equal(t, "2024:01:02 03:04:05", analysis.Timestamp)
}

func TestReadWithoutExif(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 2, 1))))

	analysis, err := Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.False(t, analysis.HasExif())
	assert.Empty(t, Insights(analysis))
}

func TestInsights(t *testing.T) {
	insights := Insights(Analysis{
		Make:      "RICOH",
		Model:     "RICOH THETA Z1",
		Timestamp: "2024:05:06 07:08:09",
		Latitude:  "[37/1 46/1 2914/100]",
		LatRef:    "N",
		Longitude: "[122/1 25/1 0/1]",
		LonRef:    "W",
	})

	require.Len(t, insights, 3)
	assert.Equal(t, Insight{Kind: "Device", Message: "Device: RICOH RICOH THETA Z1 (360 camera)"}, insights[0])
	assert.Equal(t, "Captured: 2024-05-06 07:08:09 (timezone unknown)", insights[1].Message)
	assert.Equal(t, "Approx location: 37.77476, -122.41667", insights[2].Message)
}

func TestInsightsSoftwareFallback(t *testing.T) {
	insights := Insights(Analysis{Software: "Hugin 2023.0"})
	require.Len(t, insights, 1)
	assert.Equal(t, "Device: Hugin 2023.0 (stitched panorama)", insights[0].Message)
}

func TestParseGPSCoordinate(t *testing.T) {
	v, ok := parseGPSCoordinate("[10/1 30/1]")
	require.True(t, ok)
	assert.InDelta(t, 10.5, v, 1e-9)

	v, ok = parseGPSCoordinate("12.25")
	require.True(t, ok)
	assert.InDelta(t, 12.25, v, 1e-9)

	_, ok = parseGPSCoordinate("[1/0]")
	assert.False(t, ok)
	_, ok = parseGPSCoordinate("")
	assert.False(t, ok)
}

// buildJPEGWithExif returns a minimal JPEG carrying an APP1 EXIF segment
// with Model and DateTime tags in IFD0.
func buildJPEGWithExif() []byte {
	exifData := buildExifTIFF()
	payload := append([]byte("Exif\x00\x00"), exifData...)

	var buf bytes.Buffer
	buf.Write([]byte{0xff, 0xd8})
	buf.Write([]byte{0xff, 0xe1})
	_ = binary.Write(&buf, binary.BigEndian, uint16(len(payload)+2))
	buf.Write(payload)
	buf.Write([]byte{0xff, 0xd9})
	return buf.Bytes()
}

func buildExifTIFF() []byte {
	model := "RICOH THETA\x00"
	stamp := "2024:01:02 03:04:05\x00"
	const ifdStart = 8
	const entries = 2
	dataStart := ifdStart + 2 + entries*12 + 4

	var tiff bytes.Buffer
	tiff.Write([]byte{0x49, 0x49, 0x2a, 0x00})
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(ifdStart))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(entries))
	// Model, ASCII
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(0x0110))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(2))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(len(model)))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(dataStart))
	// DateTime, ASCII
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(0x0132))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(2))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(len(stamp)))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(dataStart+len(model)))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(0))
	tiff.WriteString(model)
	tiff.WriteString(stamp)
	return tiff.Bytes()
}

func TestReadPNGText(t *testing.T) {
	data := buildPNGWithText(t,
		pngChunk("tEXt", []byte("Software\x00Hugin 2023.0")),
		pngChunk("iTXt", []byte("Creation Time\x00\x00\x00en\x00\x002024:03:04 05:06:07")),
		pngChunk("iTXt", []byte("Comment\x00\x01\x00\x00\x00compressed")),
	)

	text, err := ReadPNGText(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "Hugin 2023.0", text["Software"])
	assert.Equal(t, "2024:03:04 05:06:07", text["Creation Time"])
	assert.NotContains(t, text, "Comment")

	analysis, err := Read(bytes.NewReader(data))
	require.NoError(t, err)
	assert.False(t, analysis.HasExif())
	assert.Equal(t, "Hugin 2023.0", analysis.Software)
	assert.Equal(t, "2024:03:04 05:06:07", analysis.Timestamp)
}

func TestReadPNGTextRejectsOtherFormats(t *testing.T) {
	_, err := ReadPNGText(bytes.NewReader(buildJPEGWithExif()))
	assert.Error(t, err)
}

func buildPNGWithText(t *testing.T, chunks ...[]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 2, 1))))
	data := buf.Bytes()
	// insert before IEND
	insertAt := len(data) - 12
	out := append([]byte{}, data[:insertAt]...)
	for _, c := range chunks {
		out = append(out, c...)
	}
	return append(out, data[insertAt:]...)
}

func pngChunk(chunkType string, data []byte) []byte {
	chunk := make([]byte, 8, 12+len(data))
	binary.BigEndian.PutUint32(chunk[:4], uint32(len(data)))
	copy(chunk[4:], chunkType)
	chunk = append(chunk, data...)
	crc := crc32.ChecksumIEEE(chunk[4:])
	return binary.BigEndian.AppendUint32(chunk, crc)
}
