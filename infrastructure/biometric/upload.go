package biometric

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"atmsecurity.io/infrastructure/logger"
	"github.com/google/uuid"
)

var allowedExtensions = []string{".jpg", ".jpeg", ".png"}

// ValidateExtension checks the uploaded file extension against the allow-list.
// The comparison is case-insensitive and the leading dot is optional.
func ValidateExtension(ext string) error {
	ext = NormaliseExtension(ext)
	for _, allowed := range allowedExtensions {
		if ext == allowed {
			return nil
		}
	}
	return ErrUnsupportedExtension
}

func NormaliseExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// VerifyImage reads only the image header, rejecting payloads that are not
// a decodable jpeg or png.
func VerifyImage(data []byte) (err error) {
	if len(data) == 0 {
		return ErrInvalidImage
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: decoder panic: %v", ErrInvalidImage, r)
		}
	}()
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidImage, err.Error())
	}
	return nil
}

// DecodeImage fully decodes the payload. Truncated or corrupted pixel data is
// reported as ErrInvalidImage.
func DecodeImage(data []byte) (img image.Image, err error) {
	if err = VerifyImage(data); err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			img = nil
			err = fmt.Errorf("%w: decoder panic: %v", ErrInvalidImage, r)
		}
	}()
	img, _, err = image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidImage, err.Error())
	}
	if img.Bounds().Empty() {
		return nil, ErrInvalidImage
	}
	return img, nil
}

func DecodeImageFile(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeImage(data)
}

// ToGray converts an image to its single-channel intensity grid.
func ToGray(img image.Image) *image.Gray {
	if gray, ok := img.(*image.Gray); ok {
		return gray
	}
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, img, bounds.Min, draw.Src)
	return gray
}

// ScratchSpace holds uploads on disk for the lifetime of a single request.
// Every file gets a unique name so concurrent requests never share one.
type ScratchSpace struct {
	Dir string
}

func NewScratchSpace(dir string) (*ScratchSpace, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "atmsecurity-uploads")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &ScratchSpace{Dir: dir}, nil
}

// Persist writes data to a fresh scratch file. The returned release func must
// be called on every exit path; it is safe to call more than once.
func (ss *ScratchSpace) Persist(data []byte, ext string) (string, func(), error) {
	path := filepath.Join(ss.Dir, uuid.NewString()+NormaliseExtension(ext))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		os.Remove(path)
		return "", func() {}, err
	}
	release := func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warning("could not remove scratch file", logger.LoggerOptions{
				Key:  "path",
				Data: path,
			}, logger.LoggerOptions{
				Key:  "error",
				Data: err,
			})
		}
	}
	return path, release, nil
}
