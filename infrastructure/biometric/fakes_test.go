package biometric

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"atmsecurity.io/infrastructure/biometric/types"
)

type fakeLocator struct {
	regions []image.Rectangle
	err     error
	panics  bool
}

func (fl *fakeLocator) Locate(gray *image.Gray) ([]image.Rectangle, error) {
	if fl.panics {
		panic("locator exploded")
	}
	return fl.regions, fl.err
}

type fakeLandmarks struct {
	err error
}

func (fl *fakeLandmarks) Predict(gray *image.Gray, region image.Rectangle) (*types.Shape, error) {
	if fl.err != nil {
		return nil, fl.err
	}
	return &types.Shape{Region: region, Points: []image.Point{region.Min, region.Max}}, nil
}

// fakeDescriptor derives a descriptor from the selected region and the pixel
// under its top left corner, so different faces give different vectors.
type fakeDescriptor struct {
	dimension int
	err       error
}

func (fd *fakeDescriptor) Describe(img image.Image, shape *types.Shape) ([]float64, error) {
	if fd.err != nil {
		return nil, fd.err
	}
	descriptor := make([]float64, fd.dimension)
	r, g, b, _ := img.At(shape.Region.Min.X, shape.Region.Min.Y).RGBA()
	for i := range descriptor {
		descriptor[i] = float64(shape.Region.Min.X+i)/1000 + float64(r+g+b)/(3*65535*1000)
	}
	return descriptor, nil
}

func newFakeModels(regions []image.Rectangle) (*types.Models, *fakeLocator, *fakeDescriptor) {
	locator := &fakeLocator{regions: regions}
	descriptor := &fakeDescriptor{dimension: types.DescriptorSize}
	return types.NewModels("fake", locator, &fakeLandmarks{}, descriptor, nil), locator, descriptor
}

func newTestExtractor(t *testing.T, models *types.Models) (*Extractor, string) {
	t.Helper()
	dir := t.TempDir()
	scratch, err := NewScratchSpace(dir)
	if err != nil {
		t.Fatalf("could not create scratch space: %v", err)
	}
	return NewExtractor(models, scratch, types.DescriptorSize), dir
}

func testImage(shade uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{R: shade, G: uint8(x * 4), B: uint8(y * 4), A: 255})
		}
	}
	return img
}

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("could not encode png: %v", err)
	}
	return buf.Bytes()
}

func jpegBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("could not encode jpeg: %v", err)
	}
	return buf.Bytes()
}

var errModel = errors.New("model failure")

// vectorAt returns a descriptor whose distance from the zero vector is d.
func vectorAt(d float64) types.Descriptor {
	v := make(types.Descriptor, types.DescriptorSize)
	v[0] = d
	return v
}
