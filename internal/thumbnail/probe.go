package thumbnail

import (
	"fmt"
	"image"
	"io"
	"os"

	"panothumb/pkg/imgutil"
)

// Eligible reports whether width x height is exactly 2:1. Empty rasters
// are never eligible.
func Eligible(width, height int) bool {
	return height > 0 && width == height*2
}

// Probe reads the format and dimensions of path without decoding pixels.
func Probe(path string) (image.Config, imgutil.Kind, error) {
	file, err := os.Open(path)
	if err != nil {
		return image.Config{}, imgutil.KindUnknown, err
	}
	defer file.Close()

	kind, err := imgutil.SniffReader(file)
	if err != nil {
		return image.Config{}, imgutil.KindUnknown, err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return image.Config{}, kind, err
	}

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return image.Config{}, kind, fmt.Errorf("decode %s: %w", kind, err)
	}
	return cfg, kind, nil
}
