package metadata

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

var pngSignature = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}

// ReadPNGText collects uncompressed tEXt and iTXt entries from a PNG.
// Stitchers such as Hugin record their name under "Software" here.
func ReadPNGText(rs io.ReadSeeker) (map[string]string, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	br := bufio.NewReader(rs)

	sig := make([]byte, len(pngSignature))
	if _, err := io.ReadFull(br, sig); err != nil {
		return nil, err
	}
	if !bytes.Equal(sig, pngSignature) {
		return nil, errors.New("invalid PNG signature")
	}

	text := make(map[string]string)
	header := make([]byte, 8)
	for {
		if _, err := io.ReadFull(br, header); err != nil {
			if err == io.EOF {
				return text, nil
			}
			return text, err
		}
		length := binary.BigEndian.Uint32(header[:4])
		chunkName := string(header[4:])

		switch chunkName {
		case "tEXt", "iTXt":
			data := make([]byte, length)
			if _, err := io.ReadFull(br, data); err != nil {
				return text, err
			}
			if _, err := io.CopyN(io.Discard, br, 4); err != nil {
				return text, err
			}
			if key, value, ok := parseTextChunk(chunkName, data); ok {
				text[key] = value
			}
		case "IEND":
			return text, nil
		default:
			if _, err := io.CopyN(io.Discard, br, int64(length)+4); err != nil {
				return text, err
			}
		}
	}
}

func parseTextChunk(chunkName string, data []byte) (string, string, bool) {
	key, rest, ok := bytes.Cut(data, []byte{0})
	if !ok || len(key) == 0 {
		return "", "", false
	}
	if chunkName == "tEXt" {
		return string(key), string(rest), true
	}

	// iTXt: compression flag, method, language\0, translated keyword\0, text
	if len(rest) < 2 || rest[0] != 0 {
		return "", "", false
	}
	_, rest, ok = bytes.Cut(rest[2:], []byte{0})
	if !ok {
		return "", "", false
	}
	_, value, ok := bytes.Cut(rest, []byte{0})
	if !ok {
		return "", "", false
	}
	return string(key), string(value), true
}

func mergePNGText(analysis *Analysis, text map[string]string) {
	if analysis.Software == "" {
		analysis.Software = text["Software"]
	}
	if analysis.Model == "" {
		analysis.Model = text["Model"]
	}
	if analysis.Timestamp == "" {
		analysis.Timestamp = text["Creation Time"]
	}
}
