package opencv

import (
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"
)

type cascadeLocator struct {
	classifier gocv.CascadeClassifier
	mutex      sync.Mutex
}

func newCascadeLocator(path string) (*cascadeLocator, error) {
	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(path) {
		classifier.Close()
		return nil, fmt.Errorf("failed to load face cascade classifier from %s", path)
	}
	return &cascadeLocator{classifier: classifier}, nil
}

func (cl *cascadeLocator) Locate(gray *image.Gray) ([]image.Rectangle, error) {
	mat, err := gocv.ImageGrayToMatGray(gray)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	equalized := gocv.NewMat()
	defer equalized.Close()
	gocv.EqualizeHist(mat, &equalized)

	cl.mutex.Lock()
	defer cl.mutex.Unlock()
	faces := cl.classifier.DetectMultiScaleWithParams(
		equalized,
		1.1,
		3,
		0,
		image.Pt(30, 30),
		image.Pt(0, 0),
	)

	offset := gray.Bounds().Min
	regions := make([]image.Rectangle, 0, len(faces))
	for _, face := range faces {
		regions = append(regions, face.Add(offset))
	}
	return regions, nil
}

func (cl *cascadeLocator) Close() error {
	cl.mutex.Lock()
	defer cl.mutex.Unlock()
	return cl.classifier.Close()
}
