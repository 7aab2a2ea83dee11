package types

import (
	"image"
)

// DescriptorSize is the length of every descriptor produced by the
// pretrained descriptor models this service ships with.
const DescriptorSize = 128

// Descriptor is a face embedding. Two descriptors of the same person are
// close in Euclidean distance.
type Descriptor []float64

// Valid reports whether the descriptor has the expected dimension.
func (d Descriptor) Valid(dimension int) bool {
	return len(d) == dimension
}

// Shape is the landmark geometry of a single face.
type Shape struct {
	Region image.Rectangle `json:"region"`
	Points []image.Point   `json:"points"`
}

// Candidate is a stored identity that a query descriptor can be matched against.
type Candidate struct {
	IdentityID  string     `json:"identity_id"`
	DisplayName string     `json:"display_name"`
	Email       string     `json:"email"`
	Username    string     `json:"username"`
	Descriptor  Descriptor `json:"descriptor"`
}

type MatchResult struct {
	Matched   bool       `json:"matched"`
	Candidate *Candidate `json:"candidate,omitempty"`
	Distance  float64    `json:"distance"`
}

// Confidence is the display value shown to operators. It is never used to
// decide a match.
func (mr MatchResult) Confidence() float64 {
	return 1 - mr.Distance
}

type FaceLocator interface {
	Locate(gray *image.Gray) ([]image.Rectangle, error)
}

type LandmarkPredictor interface {
	Predict(gray *image.Gray, region image.Rectangle) (*Shape, error)
}

type DescriptorModel interface {
	Describe(img image.Image, shape *Shape) ([]float64, error)
}

// Models bundles the three pretrained components. It is loaded once at
// startup and only read afterwards.
type Models struct {
	Locator    FaceLocator
	Landmarks  LandmarkPredictor
	Descriptor DescriptorModel
	Name       string
	closer     func() error
}

func NewModels(name string, locator FaceLocator, landmarks LandmarkPredictor, descriptor DescriptorModel, closer func() error) *Models {
	return &Models{
		Name:       name,
		Locator:    locator,
		Landmarks:  landmarks,
		Descriptor: descriptor,
		closer:     closer,
	}
}

func (m *Models) Close() error {
	if m == nil || m.closer == nil {
		return nil
	}
	return m.closer()
}
