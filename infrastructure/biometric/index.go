package biometric

import (
	"fmt"

	"atmsecurity.io/infrastructure/biometric/types"
	"atmsecurity.io/infrastructure/env"
	"atmsecurity.io/infrastructure/logger"
)

var (
	LoadedModels  *types.Models
	FaceExtractor *Extractor
	FaceMatcher   *Matcher
)

// InitialiseBiometricService takes ownership of the loaded face models. The
// extractor and matcher built here are shared by every request.
func InitialiseBiometricService(models *types.Models, cfg *env.Config) error {
	scratch, err := NewScratchSpace(cfg.UploadTempDir)
	if err != nil {
		models.Close()
		return fmt.Errorf("could not prepare upload scratch space: %w", err)
	}

	LoadedModels = models
	FaceExtractor = NewExtractor(models, scratch, cfg.DescriptorSize)
	FaceMatcher = NewMatcher(cfg.MatchThreshold, cfg.DescriptorSize)
	logger.Info("biometric service initialised", logger.LoggerOptions{
		Key: "config",
		Data: map[string]interface{}{
			"backend":        models.Name,
			"threshold":      FaceMatcher.Threshold,
			"descriptorSize": FaceMatcher.Dimension,
			"scratchDir":     scratch.Dir,
		},
	})
	return nil
}

func CleanUp() {
	if err := LoadedModels.Close(); err != nil {
		logger.Error("error releasing face models", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	}
}
