package startup

import (
	"context"
	"fmt"
	"time"

	"atmsecurity.io/application/repository"
	"atmsecurity.io/application/services/recognition"
	"atmsecurity.io/infrastructure/biometric"
	"atmsecurity.io/infrastructure/biometric/dlib"
	"atmsecurity.io/infrastructure/biometric/opencv"
	"atmsecurity.io/infrastructure/biometric/types"
	"atmsecurity.io/infrastructure/database"
	"atmsecurity.io/infrastructure/env"
	fileupload "atmsecurity.io/infrastructure/file_upload"
	"atmsecurity.io/infrastructure/logger"
	messagequeue "atmsecurity.io/infrastructure/message_queue"
)

// Used to start services such as loggers, databases, queues, etc.
func StartServices() error {
	logger.InitializeLogger()
	cfg := env.Settings

	if err := database.SetUpDatabase(); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := fileupload.InitialiseFileStore(ctx, cfg); err != nil {
		return fmt.Errorf("file store: %w", err)
	}

	models, err := loadFaceModels(cfg)
	if err != nil {
		return fmt.Errorf("face models: %w", err)
	}
	if err := biometric.InitialiseBiometricService(models, cfg); err != nil {
		return fmt.Errorf("biometric service: %w", err)
	}
	recognition.InitialiseRecognitionService(repository.UserCandidateStore{}, repository.UserFaceStore{}, fileupload.FileStore)

	messagequeue.SetUpQueue(cfg)
	return nil
}

func loadFaceModels(cfg *env.Config) (*types.Models, error) {
	switch cfg.BiometricBackend {
	case "opencv":
		opencvCfg := opencv.DefaultConfig()
		opencvCfg.CascadePath = cfg.CascadePath
		opencvCfg.YuNetModelPath = cfg.YuNetModelPath
		opencvCfg.SFaceModelPath = cfg.SFaceModelPath
		return opencv.Load(opencvCfg)
	default:
		return dlib.Load(cfg.DlibModelsDir)
	}
}

// Used to clean up after services that have been shutdown.
func CleanUpServices() {
	biometric.CleanUp()
	database.CleanUp()
	logger.Sync()
}
