package metadata

import (
	"fmt"
	"strconv"
	"strings"
)

type Insight struct {
	Kind    string
	Message string
}

// Insights summarises an Analysis as short human-readable lines.
func Insights(a Analysis) []Insight {
	var insights []Insight

	if device := deviceInsight(a); device != nil {
		insights = append(insights, *device)
	}
	if a.Timestamp != "" {
		formatted := replaceFirstN(a.Timestamp, ":", "-", 2)
		insights = append(insights, Insight{Kind: "Timeline", Message: fmt.Sprintf("Captured: %s (timezone unknown)", formatted)})
	}
	if gps := gpsInsight(a); gps != nil {
		insights = append(insights, *gps)
	}

	return insights
}

func deviceInsight(a Analysis) *Insight {
	device := strings.TrimSpace(a.Make + " " + a.Model)
	if device == "" {
		device = a.Software
	}
	if device == "" {
		return nil
	}

	msg := fmt.Sprintf("Device: %s", device)
	if deviceType := inferDeviceType(strings.ToLower(device + " " + a.Software)); deviceType != "" {
		msg += fmt.Sprintf(" (%s)", deviceType)
	}
	return &Insight{Kind: "Device", Message: msg}
}

func gpsInsight(a Analysis) *Insight {
	if a.Latitude == "" || a.Longitude == "" {
		return nil
	}
	lat, okLat := parseGPSCoordinate(a.Latitude)
	lon, okLon := parseGPSCoordinate(a.Longitude)
	if !okLat || !okLon {
		return nil
	}

	if a.LatRef == "S" {
		lat = -lat
	}
	if a.LonRef == "W" {
		lon = -lon
	}

	return &Insight{Kind: "Location", Message: fmt.Sprintf("Approx location: %.5f, %.5f", lat, lon)}
}

func parseGPSCoordinate(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "[")
	raw = strings.TrimSuffix(raw, "]")
	parts := strings.Fields(raw)
	if len(parts) == 0 {
		return 0, false
	}

	values := make([]float64, 0, len(parts))
	for _, part := range parts {
		value, ok := parseRational(part)
		if !ok {
			return 0, false
		}
		values = append(values, value)
	}

	switch len(values) {
	case 3:
		return values[0] + values[1]/60.0 + values[2]/3600.0, true
	case 2:
		return values[0] + values[1]/60.0, true
	default:
		return values[0], true
	}
}

func parseRational(part string) (float64, bool) {
	part = strings.TrimSpace(part)
	if part == "" {
		return 0, false
	}
	if num, den, ok := strings.Cut(part, "/"); ok {
		n, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, false
		}
		d, err := strconv.ParseFloat(den, 64)
		if err != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}

	value, err := strconv.ParseFloat(part, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func inferDeviceType(device string) string {
	switch {
	case strings.Contains(device, "theta"),
		strings.Contains(device, "insta360"),
		strings.Contains(device, "gopro max"),
		strings.Contains(device, "gear 360"),
		strings.Contains(device, "qoocam"):
		return "360 camera"
	case strings.Contains(device, "iphone"),
		strings.Contains(device, "pixel"),
		strings.Contains(device, "galaxy"),
		strings.Contains(device, "android"):
		return "smartphone"
	case strings.Contains(device, "dji"):
		return "drone"
	case strings.Contains(device, "hugin"),
		strings.Contains(device, "ptgui"),
		strings.Contains(device, "autopano"):
		return "stitched panorama"
	case strings.Contains(device, "canon"),
		strings.Contains(device, "nikon"),
		strings.Contains(device, "sony"),
		strings.Contains(device, "fujifilm"),
		strings.Contains(device, "panasonic"),
		strings.Contains(device, "olympus"),
		strings.Contains(device, "leica"):
		return "camera"
	default:
		return ""
	}
}

func replaceFirstN(s, old, new string, n int) string {
	if n <= 0 || old == "" {
		return s
	}
	out := s
	for i := 0; i < n; i++ {
		idx := strings.Index(out, old)
		if idx < 0 {
			break
		}
		out = out[:idx] + new + out[idx+len(old):]
	}
	return out
}
