package biometric

import (
	"errors"
)

var (
	ErrUnsupportedExtension = errors.New("invalid image format. only jpg, jpeg and png are allowed")
	ErrInvalidImage         = errors.New("invalid or corrupted image")
	ErrNoFaceDetected       = errors.New("no face detected in the uploaded image")
	ErrAmbiguousFace        = errors.New("multiple faces detected. please upload an image with only one face")
	ErrEncodingFailed       = errors.New("face encoding extraction failed")
	ErrNoMatch              = errors.New("face does not match any registered profiles")
	ErrInternal             = errors.New("an internal error occured while processing the image")
)

const (
	KindInvalidImage   = "invalid_image"
	KindNoFaceDetected = "no_face_detected"
	KindAmbiguousFace  = "ambiguous_face"
	KindEncodingFailed = "encoding_failed"
	KindNoMatch        = "no_match"
	KindInternal       = "internal_error"
)

// Kind maps an error returned by this package to its stable outcome name.
// Errors that did not originate here are internal.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrUnsupportedExtension), errors.Is(err, ErrInvalidImage):
		return KindInvalidImage
	case errors.Is(err, ErrNoFaceDetected):
		return KindNoFaceDetected
	case errors.Is(err, ErrAmbiguousFace):
		return KindAmbiguousFace
	case errors.Is(err, ErrEncodingFailed):
		return KindEncodingFailed
	case errors.Is(err, ErrNoMatch):
		return KindNoMatch
	default:
		return KindInternal
	}
}

// IsClientError reports whether err was caused by the uploaded image rather
// than by the service.
func IsClientError(err error) bool {
	kind := Kind(err)
	return kind != KindInternal && kind != KindNoMatch
}
