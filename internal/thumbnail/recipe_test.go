package thumbnail

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panothumb/pkg/imgutil"
)

func TestDeriveDimensions(t *testing.T) {
	derived := Derive(gradient(64, 32), imaging.Lanczos)
	require.Len(t, derived, len(Variants))

	for i, d := range derived {
		assert.Equal(t, Variants[i], d.Variant)
		b := d.Image.Bounds()
		assert.Equal(t, 0, b.Min.X)
		assert.Equal(t, 0, b.Min.Y)
		assert.Equal(t, d.Variant.Width, b.Dx(), d.Variant.Suffix)
		assert.Equal(t, d.Variant.Height, b.Dy(), d.Variant.Suffix)
	}
}

func TestDeriveCropsAreHalvesOfResized(t *testing.T) {
	derived := Derive(gradient(64, 32), imaging.Lanczos)
	resized, left, right := derived[0].Image, derived[1].Image, derived[2].Image

	for y := 0; y < 1024; y += 7 {
		for x := 0; x < 1024; x += 5 {
			require.Equal(t, resized.NRGBAAt(x, y), left.NRGBAAt(x, y), "left %d,%d", x, y)
			require.Equal(t, resized.NRGBAAt(x+1024, y), right.NRGBAAt(x, y), "right %d,%d", x, y)
		}
	}
	// last column and row of each half
	assert.Equal(t, resized.NRGBAAt(1023, 1023), left.NRGBAAt(1023, 1023))
	assert.Equal(t, resized.NRGBAAt(2047, 1023), right.NRGBAAt(1023, 1023))
}

func TestDeriveSmallComesFromSource(t *testing.T) {
	src := gradient(64, 32)
	derived := Derive(src, imaging.Lanczos)
	want := imaging.Resize(src, 1024, 512, imaging.Lanczos)
	assert.Equal(t, want.Pix, derived[3].Image.Pix)
}

func TestProbe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "probe.jpg")
	writeJPEG(t, path, 30, 15)

	cfg, kind, err := Probe(path)
	require.NoError(t, err)
	assert.Equal(t, imgutil.KindJPEG, kind)
	assert.Equal(t, 30, cfg.Width)
	assert.Equal(t, 15, cfg.Height)
	assert.True(t, Eligible(cfg.Width, cfg.Height))
	assert.False(t, Eligible(30, 16))
	assert.False(t, Eligible(0, 0))

	text := filepath.Join(t.TempDir(), "x.txt")
	require.NoError(t, os.WriteFile(text, []byte("hello"), 0o644))
	_, kind, err = Probe(text)
	assert.Error(t, err)
	assert.Equal(t, imgutil.KindUnknown, kind)
}
