// Package upload stores the contents of multipart/form-data POST payloads.
package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/tinyhttpd/config"
	"github.com/indigo-web/tinyhttpd/imaging"
	"github.com/indigo-web/tinyhttpd/internal/formdata"
	"github.com/indigo-web/tinyhttpd/internal/logging"
)

// Extractor picks a single part of the form and stores it. Parts are considered in the
// following order, the first matching one wins:
//  1. the image field: runs the image job over the previously uploaded file it names;
//  2. the first part carrying a filename: stores the file;
//  3. the text field: stores its value.
//
// Everything else is ignored.
type Extractor struct {
	cfg       *config.Config
	transform imaging.Transform
	logger    logging.Logger
}

func NewExtractor(cfg *config.Config, transform imaging.Transform, logger logging.Logger) *Extractor {
	if transform == nil {
		transform = imaging.NewGamma(cfg.Image.Gamma)
	}

	return &Extractor{
		cfg:       cfg,
		transform: transform,
		logger:    logging.OrDefault(logger),
	}
}

// Extract processes the payload. The content type is the value of the request's
// Content-Type header, which carries the boundary.
func (e *Extractor) Extract(contentType string, payload []byte) Outcome {
	boundary, ok := formdata.Boundary(contentType)
	if !ok {
		return NotMultipart
	}

	parts := slices.Collect(formdata.Parts(payload, boundary))

	if i := slices.IndexFunc(parts, func(p formdata.Part) bool {
		return p.Name == e.cfg.Form.ImageField
	}); i != -1 {
		return e.imageJob(parts[i])
	}

	if i := slices.IndexFunc(parts, func(p formdata.Part) bool {
		return p.HasFilename
	}); i != -1 {
		return e.storeFile(parts[i])
	}

	if i := slices.IndexFunc(parts, func(p formdata.Part) bool {
		return p.Name == e.cfg.Form.TextField
	}); i != -1 {
		return e.storeText(parts[i])
	}

	return NotMultipart
}

func (e *Extractor) storeFile(part formdata.Part) Outcome {
	name := baseName(part.Filename)
	if len(name) == 0 {
		return NoFileSelected
	}

	if ext := filepath.Ext(name); ext == ".png" || ext == ".PNG" {
		return e.storePNG(part)
	}

	if name == "." || name == ".." {
		return NameConflict
	}

	if err := os.MkdirAll(e.cfg.FS.UploadDir, 0755); err != nil {
		e.logger.Printf("upload: creating %s: %s", e.cfg.FS.UploadDir, err)
		return StorageFailed
	}

	path := filepath.Join(e.cfg.FS.UploadDir, name)
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		e.logger.Printf("upload: creating %s: %s", path, err)
		return NameConflict
	}

	if !part.Complete {
		e.discard(file)
		return TooLarge
	}

	if _, err = io.WriteString(file, part.Value); err != nil {
		e.logger.Printf("upload: writing %s: %s", path, err)
		e.discard(file)
		return StorageFailed
	}

	if err = file.Close(); err != nil {
		e.logger.Printf("upload: writing %s: %s", path, err)
		return StorageFailed
	}

	return StoredFile
}

// storePNG replaces the PNG target. A truncated upload leaves the previous file intact.
func (e *Extractor) storePNG(part formdata.Part) Outcome {
	if !part.Complete {
		return TooLarge
	}

	if err := replaceFile(e.cfg.FS.PNGTarget, part.Value); err != nil {
		e.logger.Printf("upload: %s", err)
		return StorageFailed
	}

	return StoredFile
}

func (e *Extractor) storeText(part formdata.Part) Outcome {
	if !part.Complete {
		return TooLarge
	}

	if err := replaceFile(e.cfg.FS.TextTarget, part.Value); err != nil {
		e.logger.Printf("upload: %s", err)
		return StorageFailed
	}

	return TextField
}

// imageJob reads the bitmap named by the part's value from the upload directory, transforms
// it and stores the result.
func (e *Extractor) imageJob(part formdata.Part) Outcome {
	if !part.Complete {
		return TooLarge
	}

	name := baseName(strings.TrimSpace(part.Value))
	if len(name) == 0 || name == "." || name == ".." {
		return SourceMissing
	}

	geometry := e.cfg.Image
	source := filepath.Join(e.cfg.FS.UploadDir, name)
	pix, err := readExactly(source, geometry.BitmapSize())
	if err != nil {
		e.logger.Printf("upload: image job: %s", err)
		return SourceMissing
	}

	bitmap, err := imaging.NewBitmap(geometry.Width, geometry.Height, geometry.Channels, pix)
	if err != nil {
		e.logger.Printf("upload: image job: %s", err)
		return SourceMissing
	}

	bitmap.Apply(e.transform)

	if err = replaceFile(e.cfg.FS.ImageOutput, string(bitmap.Pix)); err != nil {
		e.logger.Printf("upload: image job: %s", err)
		return StorageFailed
	}

	return ImageJobAccepted
}

func (e *Extractor) discard(file *os.File) {
	_ = file.Close()
	if err := os.Remove(file.Name()); err != nil {
		e.logger.Printf("upload: removing %s: %s", file.Name(), err)
	}
}

// replaceFile writes the data into a temporary sibling of the path and renames it over
// the path, so readers never observe a partially written file.
func replaceFile(path, data string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uniuri.New())
	if err := os.WriteFile(tmp, []byte(data), 0644); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	return nil
}

func readExactly(path string, n int) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = file.Close()
	}()

	buff := make([]byte, n)
	if _, err = io.ReadFull(file, buff); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: source is shorter than a bitmap: %w", path, err)
		}

		return nil, err
	}

	return buff, nil
}

// baseName strips any directory components, including the ones browsers on Windows send.
func baseName(filename string) string {
	if i := strings.LastIndexAny(filename, `/\`); i != -1 {
		filename = filename[i+1:]
	}

	return filename
}
