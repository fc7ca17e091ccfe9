package metadata

import (
	"io"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"

	"panothumb/pkg/imgutil"
)

// Analysis holds the EXIF fields relevant to a panorama's provenance.
type Analysis struct {
	Make      string
	Model     string
	Software  string
	Timestamp string
	Latitude  string
	LatRef    string
	Longitude string
	LonRef    string
	TagCount  int
}

// HasExif reports whether any EXIF tags were found.
func (a Analysis) HasExif() bool {
	return a.TagCount > 0
}

// Read scans rs for EXIF data, plus text chunks for PNGs. Files without
// metadata yield an empty Analysis and no error.
func Read(rs io.ReadSeeker) (Analysis, error) {
	analysis, err := readExif(rs)
	if err != nil {
		return analysis, err
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return analysis, err
	}
	kind, err := imgutil.SniffReader(rs)
	if err != nil || kind != imgutil.KindPNG {
		return analysis, err
	}
	text, err := ReadPNGText(rs)
	if err != nil {
		return analysis, err
	}
	mergePNGText(&analysis, text)
	return analysis, nil
}

func readExif(rs io.ReadSeeker) (Analysis, error) {
	analysis := Analysis{}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return analysis, err
	}

	tags, _, err := exif.GetFlatExifDataUniversalSearchWithReadSeeker(rs, nil, true)
	if err != nil {
		if isNoExif(err) {
			return analysis, nil
		}
		return analysis, err
	}

	analysis.TagCount = len(tags)
	for _, tag := range tags {
		value := strings.TrimSpace(tag.Formatted)
		switch tag.TagName {
		case "Make":
			analysis.Make = value
		case "Model", "CameraModelName":
			if analysis.Model == "" {
				analysis.Model = value
			}
		case "Software":
			analysis.Software = value
		case "DateTimeOriginal":
			analysis.Timestamp = value
		case "DateTimeDigitized", "DateTime":
			if analysis.Timestamp == "" {
				analysis.Timestamp = value
			}
		case "GPSLatitude":
			analysis.Latitude = value
		case "GPSLatitudeRef":
			analysis.LatRef = value
		case "GPSLongitude":
			analysis.Longitude = value
		case "GPSLongitudeRef":
			analysis.LonRef = value
		}
	}

	return analysis, nil
}

func isNoExif(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "no exif")
}
