package biometric

import (
	"context"
	"fmt"
	"image"

	"atmsecurity.io/infrastructure/biometric/types"
	"atmsecurity.io/infrastructure/logger"
)

// FacePolicy decides which located region is used when an image contains
// more than one face.
type FacePolicy int

const (
	// RecognitionPolicy takes the first region the locator returns.
	RecognitionPolicy FacePolicy = iota
	// EnrollmentPolicy rejects images with more than one face.
	EnrollmentPolicy
)

func (fp FacePolicy) String() string {
	if fp == EnrollmentPolicy {
		return "enrollment"
	}
	return "recognition"
}

func (fp FacePolicy) selectRegion(regions []image.Rectangle) (image.Rectangle, error) {
	if len(regions) == 0 {
		return image.Rectangle{}, ErrNoFaceDetected
	}
	if fp == EnrollmentPolicy && len(regions) > 1 {
		return image.Rectangle{}, ErrAmbiguousFace
	}
	return regions[0], nil
}

// Extractor turns an uploaded image into a face descriptor. It holds no
// per-request state and is safe for concurrent use as long as the injected
// models are.
type Extractor struct {
	models    *types.Models
	scratch   *ScratchSpace
	dimension int
}

func NewExtractor(models *types.Models, scratch *ScratchSpace, dimension int) *Extractor {
	if dimension <= 0 {
		dimension = types.DescriptorSize
	}
	return &Extractor{models: models, scratch: scratch, dimension: dimension}
}

func (e *Extractor) Dimension() int {
	return e.dimension
}

// Extract validates, decodes and describes the single face selected by policy.
func (e *Extractor) Extract(ctx context.Context, data []byte, ext string, policy FacePolicy) (types.Descriptor, error) {
	if err := ValidateExtension(ext); err != nil {
		return nil, err
	}
	if err := VerifyImage(data); err != nil {
		return nil, err
	}

	path, release, err := e.scratch.Persist(data, ext)
	defer release()
	if err != nil {
		return nil, fmt.Errorf("%w: could not persist upload: %s", ErrInternal, err.Error())
	}

	img, err := DecodeImageFile(path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.describe(img, policy)
}

// ExtractImage runs the pipeline on an already decoded image.
func (e *Extractor) ExtractImage(img image.Image, policy FacePolicy) (types.Descriptor, error) {
	return e.describe(img, policy)
}

func (e *Extractor) describe(img image.Image, policy FacePolicy) (descriptor types.Descriptor, err error) {
	defer func() {
		if r := recover(); r != nil {
			descriptor = nil
			err = fmt.Errorf("%w: model panic: %v", ErrInternal, r)
		}
	}()

	gray := ToGray(img)
	regions, err := e.models.Locator.Locate(gray)
	if err != nil {
		return nil, fmt.Errorf("%w: face locator: %s", ErrInternal, err.Error())
	}
	region, err := policy.selectRegion(regions)
	if err != nil {
		logger.Info("face region policy rejected image", logger.LoggerOptions{
			Key: "details",
			Data: map[string]interface{}{
				"policy":  policy.String(),
				"regions": len(regions),
			},
		})
		return nil, err
	}

	shape, err := e.models.Landmarks.Predict(gray, region)
	if err != nil {
		return nil, fmt.Errorf("%w: landmark predictor: %s", ErrInternal, err.Error())
	}
	raw, err := e.models.Descriptor.Describe(img, shape)
	if err != nil {
		return nil, fmt.Errorf("%w: descriptor model: %s", ErrInternal, err.Error())
	}
	if len(raw) != e.dimension {
		logger.Warning("descriptor model returned unexpected dimension", logger.LoggerOptions{
			Key:  "dimension",
			Data: len(raw),
		})
		return nil, ErrEncodingFailed
	}
	return types.Descriptor(raw), nil
}
