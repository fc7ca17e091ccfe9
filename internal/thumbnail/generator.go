package thumbnail

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	// register the decoders image.Decode lacks for formats the sniffer knows
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"panothumb/pkg/imgutil"
)

// Generator turns one 2:1 panorama into its derived thumbnails.
// The zero value is usable: lenient saves, Lanczos resampling, no logging.
type Generator struct {
	Logger     *zap.Logger
	SavePolicy SavePolicy

	// NoClobber refuses files whose derived outputs already exist,
	// checked before the original is deleted.
	NoClobber bool

	// Filter overrides the resampling kernel. Zero means imaging.Lanczos.
	Filter imaging.ResampleFilter
}

// Process decodes, validates, deletes and regenerates the file at path.
// It never returns an error; failures are reported through Result.
func (g *Generator) Process(path string) Result {
	log := g.logger().With(zap.String("path", path))
	res := Result{Path: path}

	img, kind, err := decodeFile(path)
	res.Kind = kind
	if err != nil {
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			res.Outcome = ReadFailed
		} else {
			res.Outcome = NotAnImage
		}
		res.Err = err
		log.Info("decode failed", zap.Stringer("outcome", res.Outcome), zap.Error(err))
		return res
	}

	bounds := img.Bounds()
	res.Width, res.Height = bounds.Dx(), bounds.Dy()
	log = log.With(zap.Int("width", res.Width), zap.Int("height", res.Height), zap.Stringer("format", kind))

	if !Eligible(res.Width, res.Height) {
		res.Outcome = RejectedAspectRatio
		res.Err = fmt.Errorf("%dx%d: %w", res.Width, res.Height, ErrAspectRatio)
		log.Info("rejected", zap.Error(res.Err))
		return res
	}

	if g.NoClobber {
		if existing := existingOutputs(path); len(existing) > 0 {
			res.Outcome = OutputExists
			res.Err = fmt.Errorf("%s: %w", existing[0], ErrOutputExists)
			log.Info("refusing to overwrite", zap.Strings("existing", existing))
			return res
		}
	}

	if err := os.Remove(path); err != nil {
		res.Outcome = DeleteFailed
		res.Err = err
		log.Warn("delete failed", zap.Error(err))
		return res
	}

	for _, d := range Derive(img, g.filter()) {
		dest := DerivedPath(path, d.Variant.Suffix)
		err := savePNG(d.Image, dest)
		res.Saves = append(res.Saves, SaveResult{Path: dest, Err: err})
		if err != nil {
			log.Warn("save failed", zap.String("dest", dest), zap.Error(err))
			continue
		}
		log.Debug("saved", zap.String("dest", dest))
	}

	res.Outcome = Succeeded
	if failed := res.FailedSaves(); len(failed) > 0 {
		res.Err = fmt.Errorf("%d of %d saves failed: %w", len(failed), len(res.Saves), failed[0].Err)
		if g.SavePolicy == SavePolicyStrict {
			res.Outcome = SaveFailed
		}
	}
	return res
}

func (g *Generator) logger() *zap.Logger {
	if g.Logger == nil {
		return zap.NewNop()
	}
	return g.Logger
}

func (g *Generator) filter() imaging.ResampleFilter {
	if g.Filter.Kernel == nil {
		return imaging.Lanczos
	}
	return g.Filter
}

func decodeFile(path string) (image.Image, imgutil.Kind, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, imgutil.KindUnknown, err
	}
	defer file.Close()

	kind, err := imgutil.SniffReader(file)
	if err != nil {
		return nil, imgutil.KindUnknown, fmt.Errorf("sniff: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, kind, fmt.Errorf("seek: %w", err)
	}

	img, err := imaging.Decode(file)
	if err != nil {
		return nil, kind, fmt.Errorf("decode %s: %w", kind, err)
	}
	return img, kind, nil
}

func existingOutputs(path string) []string {
	var existing []string
	for _, dest := range DerivedPaths(path) {
		if filepath.Clean(dest) == filepath.Clean(path) {
			continue
		}
		if _, err := os.Lstat(dest); err == nil {
			existing = append(existing, dest)
		}
	}
	return existing
}

// savePNG encodes img next to dest and renames it into place, so a failed
// write never leaves a truncated file at dest.
func savePNG(img image.Image, dest string) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(dest), ".panothumb-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmpFile.Name())

	if err := tmpFile.Chmod(0o644); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := imaging.Encode(tmpFile, img, imaging.PNG); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}

	return replaceFile(tmpFile.Name(), dest)
}

// replaceFile only clears a regular file out of the way; anything else
// at destPath is left alone and the rename error is returned.
func replaceFile(tmpPath, destPath string) error {
	renameErr := os.Rename(tmpPath, destPath)
	if renameErr == nil {
		return nil
	}
	info, err := os.Lstat(destPath)
	if err != nil || !info.Mode().IsRegular() {
		return renameErr
	}
	if err := os.Remove(destPath); err != nil {
		return err
	}
	return os.Rename(tmpPath, destPath)
}
