package opencv

import (
	"image"
	"sync"

	"atmsecurity.io/infrastructure/biometric/types"
	"gocv.io/x/gocv"
)

// yunetPredictor runs YuNet inside a located region and keeps its five
// landmarks: right eye, left eye, nose tip, right and left mouth corner.
type yunetPredictor struct {
	detector gocv.FaceDetectorYN
	mutex    sync.Mutex
}

func newYuNetPredictor(modelPath string, inputSize image.Point) *yunetPredictor {
	detector := gocv.NewFaceDetectorYN(modelPath, "", inputSize)
	detector.SetScoreThreshold(0.6)
	detector.SetNMSThreshold(0.3)
	detector.SetTopK(5000)
	return &yunetPredictor{detector: detector}
}

func (yp *yunetPredictor) Predict(gray *image.Gray, region image.Rectangle) (*types.Shape, error) {
	shape := &types.Shape{Region: region}
	rect := cropRect(region, gray.Bounds(), 0.35)

	grayMat, err := gocv.ImageGrayToMatGray(gray)
	if err != nil {
		return nil, err
	}
	defer grayMat.Close()
	local := rect.Sub(gray.Bounds().Min)
	cropped := grayMat.Region(local)
	defer cropped.Close()

	// YuNet expects three channels
	bgr := gocv.NewMat()
	defer bgr.Close()
	gocv.CvtColor(cropped, &bgr, gocv.ColorGrayToBGR)

	facesMat := gocv.NewMat()
	defer facesMat.Close()

	yp.mutex.Lock()
	yp.detector.SetInputSize(image.Pt(bgr.Cols(), bgr.Rows()))
	yp.detector.Detect(bgr, &facesMat)
	yp.mutex.Unlock()

	if facesMat.Empty() || facesMat.Rows() == 0 {
		return shape, nil
	}

	// rows are x, y, w, h, five landmark pairs, score
	best := 0
	for i := 1; i < facesMat.Rows(); i++ {
		if facesMat.GetFloatAt(i, 14) > facesMat.GetFloatAt(best, 14) {
			best = i
		}
	}
	for col := 4; col < 14; col += 2 {
		shape.Points = append(shape.Points, image.Pt(
			int(facesMat.GetFloatAt(best, col))+rect.Min.X,
			int(facesMat.GetFloatAt(best, col+1))+rect.Min.Y,
		))
	}
	return shape, nil
}

func (yp *yunetPredictor) Close() error {
	yp.mutex.Lock()
	defer yp.mutex.Unlock()
	yp.detector.Close()
	return nil
}
