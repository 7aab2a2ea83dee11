package opencv

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sync"

	"atmsecurity.io/infrastructure/biometric/types"
	"gocv.io/x/gocv"
)

// sfaceDescriptor computes L2 normalised 128-d embeddings with the SFace
// ONNX network.
type sfaceDescriptor struct {
	net       gocv.Net
	inputSize image.Point
	mutex     sync.Mutex
}

func newSFaceDescriptor(modelPath string, backend gocv.NetBackendType, target gocv.NetTargetType) (*sfaceDescriptor, error) {
	net := gocv.ReadNet(modelPath, "")
	if net.Empty() {
		return nil, fmt.Errorf("failed to load SFace model from %s", modelPath)
	}
	net.SetPreferableBackend(backend)
	net.SetPreferableTarget(target)
	return &sfaceDescriptor{net: net, inputSize: image.Pt(112, 112)}, nil
}

func (sd *sfaceDescriptor) Describe(img image.Image, shape *types.Shape) ([]float64, error) {
	if shape == nil {
		return nil, errors.New("missing face shape")
	}
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	rect := cropRect(shape.Region, img.Bounds(), 0.1).Sub(img.Bounds().Min)
	face := mat.Region(rect)
	defer face.Close()

	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(face, &resized, sd.inputSize, 0, 0, gocv.InterpolationLinear)

	blob := gocv.BlobFromImage(resized, 1.0/127.5, sd.inputSize, gocv.NewScalar(127.5, 127.5, 127.5, 0), true, false)
	defer blob.Close()

	sd.mutex.Lock()
	sd.net.SetInput(blob, "")
	output := sd.net.Forward("")
	sd.mutex.Unlock()
	defer output.Close()

	size := output.Total()
	embedding := make([]float64, size)
	var norm float64
	for i := 0; i < size; i++ {
		embedding[i] = float64(output.GetFloatAt(0, i))
		norm += embedding[i] * embedding[i]
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return nil, errors.New("sface returned a zero embedding")
	}
	for i := range embedding {
		embedding[i] /= norm
	}
	return embedding, nil
}

func (sd *sfaceDescriptor) Close() error {
	sd.mutex.Lock()
	defer sd.mutex.Unlock()
	return sd.net.Close()
}
