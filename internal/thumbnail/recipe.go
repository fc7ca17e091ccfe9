package thumbnail

import (
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// Variant describes one derived image.
type Variant struct {
	Suffix string
	Width  int
	Height int
}

var (
	VariantResized = Variant{Suffix: "", Width: 2048, Height: 1024}
	VariantLeft    = Variant{Suffix: " - Left", Width: 1024, Height: 1024}
	VariantRight   = Variant{Suffix: " - Right", Width: 1024, Height: 1024}
	VariantSmall   = Variant{Suffix: " - Small", Width: 1024, Height: 512}
)

// Variants lists the derived images in save order.
var Variants = []Variant{VariantResized, VariantLeft, VariantRight, VariantSmall}

// Derived pairs a variant with its pixels.
type Derived struct {
	Variant Variant
	Image   *image.NRGBA
}

// Derive builds the four derived images from src. Crops come from the
// resized image; the small image is resampled from src directly.
func Derive(src image.Image, filter imaging.ResampleFilter) []Derived {
	resized := imaging.Resize(src, VariantResized.Width, VariantResized.Height, filter)
	left := imaging.Crop(resized, image.Rect(0, 0, VariantLeft.Width, VariantLeft.Height))
	right := imaging.Crop(resized, image.Rect(VariantLeft.Width, 0, VariantLeft.Width+VariantRight.Width, VariantRight.Height))
	small := imaging.Resize(src, VariantSmall.Width, VariantSmall.Height, filter)

	return []Derived{
		{Variant: VariantResized, Image: resized},
		{Variant: VariantLeft, Image: left},
		{Variant: VariantRight, Image: right},
		{Variant: VariantSmall, Image: small},
	}
}

// DerivedPath returns "<dir>/<stem><suffix>.png" for the input path.
func DerivedPath(path, suffix string) string {
	dir, name := filepath.Split(path)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if stem == "" {
		// dotfiles such as ".pano" keep their whole name
		stem = name
	}
	return filepath.Join(dir, stem+suffix+".png")
}

// DerivedPaths returns the output paths for every variant, in save order.
func DerivedPaths(path string) []string {
	paths := make([]string, 0, len(Variants))
	for _, v := range Variants {
		paths = append(paths, DerivedPath(path, v.Suffix))
	}
	return paths
}
