// Package opencv provides the gocv model backend: a Haar cascade face
// locator, YuNet landmarks and an SFace descriptor network.
package opencv

import (
	"errors"
	"image"
	"os"

	"atmsecurity.io/infrastructure/biometric/types"
	"atmsecurity.io/infrastructure/logger"
	"gocv.io/x/gocv"
)

type Config struct {
	CascadePath    string
	YuNetModelPath string
	SFaceModelPath string
	Backend        gocv.NetBackendType
	Target         gocv.NetTargetType
}

func DefaultConfig() Config {
	return Config{
		CascadePath:    "./models/haarcascades/haarcascade_frontalface_alt.xml",
		YuNetModelPath: "./models/yunet/face_detection_yunet_2023mar.onnx",
		SFaceModelPath: "./models/sface/face_recognition_sface_2021dec.onnx",
		Backend:        gocv.NetBackendDefault,
		Target:         gocv.NetTargetCPU,
	}
}

// Load reads all three models. Nothing is returned unless every model loaded.
func Load(cfg Config) (*types.Models, error) {
	defaults := DefaultConfig()
	if cfg.CascadePath == "" {
		cfg.CascadePath = defaults.CascadePath
	}
	if cfg.YuNetModelPath == "" {
		cfg.YuNetModelPath = defaults.YuNetModelPath
	}
	if cfg.SFaceModelPath == "" {
		cfg.SFaceModelPath = defaults.SFaceModelPath
	}
	for _, path := range []string{cfg.CascadePath, cfg.YuNetModelPath, cfg.SFaceModelPath} {
		if _, err := os.Stat(path); err != nil {
			return nil, err
		}
	}

	locator, err := newCascadeLocator(cfg.CascadePath)
	if err != nil {
		return nil, err
	}
	landmarks := newYuNetPredictor(cfg.YuNetModelPath, image.Pt(320, 320))
	descriptor, err := newSFaceDescriptor(cfg.SFaceModelPath, cfg.Backend, cfg.Target)
	if err != nil {
		locator.Close()
		landmarks.Close()
		return nil, err
	}

	logger.Info("opencv face models loaded", logger.LoggerOptions{
		Key: "model_info",
		Data: map[string]interface{}{
			"cascade": cfg.CascadePath,
			"yunet":   cfg.YuNetModelPath,
			"sface":   cfg.SFaceModelPath,
		},
	})
	closer := func() error {
		return errors.Join(locator.Close(), landmarks.Close(), descriptor.Close())
	}
	return types.NewModels("opencv", locator, landmarks, descriptor, closer), nil
}

// cropRect widens region by margin on every side, clipped to bounds.
func cropRect(region image.Rectangle, bounds image.Rectangle, margin float64) image.Rectangle {
	dx := int(float64(region.Dx()) * margin)
	dy := int(float64(region.Dy()) * margin)
	rect := image.Rect(region.Min.X-dx, region.Min.Y-dy, region.Max.X+dx, region.Max.Y+dy).Intersect(bounds)
	if rect.Empty() {
		return bounds
	}
	return rect
}
