// Package dlib adapts the dlib HOG frontal face detector, the 5 point shape
// predictor and the resnet face descriptor (through go-face) to the biometric
// model interfaces.
package dlib

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"sync"

	"atmsecurity.io/infrastructure/biometric/types"
	"atmsecurity.io/infrastructure/logger"
	"github.com/Kagami/go-face"
)

// cropMargin widens a face region before it is handed back to dlib, which
// needs some context around the face to detect it again.
const cropMargin = 0.35

type Backend struct {
	rec *face.Recognizer
	mu  sync.Mutex
}

// Load reads shape_predictor_5_face_landmarks.dat and
// dlib_face_recognition_resnet_model_v1.dat from modelsDir.
func Load(modelsDir string) (*types.Models, error) {
	rec, err := face.NewRecognizer(modelsDir)
	if err != nil {
		return nil, fmt.Errorf("could not load dlib models from %s: %w", modelsDir, err)
	}
	backend := &Backend{rec: rec}
	logger.Info("dlib face models loaded", logger.LoggerOptions{
		Key:  "modelsDir",
		Data: modelsDir,
	})
	return types.NewModels("dlib", backend, backend, backend, backend.Close), nil
}

func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.rec != nil {
		b.rec.Close()
		b.rec = nil
	}
	return nil
}

func (b *Backend) Locate(gray *image.Gray) ([]image.Rectangle, error) {
	faces, err := b.recognize(gray)
	if err != nil {
		return nil, err
	}
	regions := make([]image.Rectangle, 0, len(faces))
	for _, f := range faces {
		regions = append(regions, f.Rectangle.Add(gray.Bounds().Min))
	}
	return regions, nil
}

func (b *Backend) Predict(gray *image.Gray, region image.Rectangle) (*types.Shape, error) {
	crop, origin := cropAround(gray, region)
	faces, err := b.recognize(crop)
	if err != nil {
		return nil, err
	}
	shape := &types.Shape{Region: region}
	if len(faces) == 0 {
		return shape, nil
	}
	for _, p := range faces[0].Shapes {
		shape.Points = append(shape.Points, p.Add(origin))
	}
	return shape, nil
}

// Describe returns the descriptor of the face inside shape.Region. An empty
// result means dlib could not find the face again in the crop.
func (b *Backend) Describe(img image.Image, shape *types.Shape) ([]float64, error) {
	if shape == nil {
		return nil, errors.New("missing face shape")
	}
	crop, _ := cropAround(img, shape.Region)
	faces, err := b.recognize(crop)
	if err != nil {
		return nil, err
	}
	if len(faces) == 0 {
		return nil, nil
	}
	descriptor := make([]float64, len(faces[0].Descriptor))
	for i, v := range faces[0].Descriptor {
		descriptor[i] = float64(v)
	}
	return descriptor, nil
}

func (b *Backend) recognize(img image.Image) ([]face.Face, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		return nil, fmt.Errorf("could not transcode image for dlib: %w", err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.rec == nil {
		return nil, errors.New("dlib recognizer is closed")
	}
	return b.rec.Recognize(buf.Bytes())
}

func cropAround(img image.Image, region image.Rectangle) (image.Image, image.Point) {
	dx := int(float64(region.Dx()) * cropMargin)
	dy := int(float64(region.Dy()) * cropMargin)
	rect := image.Rect(region.Min.X-dx, region.Min.Y-dy, region.Max.X+dx, region.Max.Y+dy).Intersect(img.Bounds())
	if rect.Empty() {
		rect = img.Bounds()
	}

	// jpeg encoding reads from Bounds().Min, so copy into a zero-origin canvas
	canvas := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(canvas, canvas.Bounds(), img, rect.Min, draw.Src)
	return canvas, rect.Min
}
