package fileupload

import (
	"context"
	"fmt"
	"path"
	"strings"

	"atmsecurity.io/infrastructure/env"
	"atmsecurity.io/infrastructure/file_upload/azure"
	"atmsecurity.io/infrastructure/file_upload/minio"
	"atmsecurity.io/infrastructure/file_upload/types"
)

var FileStore types.FileStore

func InitialiseFileStore(ctx context.Context, cfg *env.Config) error {
	switch cfg.FileStore {
	case "azure":
		store, err := azure.NewAzureBlobStore(cfg.AzureAccountName, cfg.AzureAccountKey, cfg.AzureContainerName)
		if err != nil {
			return err
		}
		FileStore = store
	default:
		store, err := minio.NewMinioStore(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			return err
		}
		FileStore = store
	}
	return nil
}

// ReferenceImageKey is the object key of a user's reference face image.
// A new key is used for every upload so the previous image can be removed
// only after the new descriptor is stored.
func ReferenceImageKey(userID string, version string, ext string) string {
	return path.Join("faces", userID, fmt.Sprintf("%s%s", version, strings.ToLower(ext)))
}

func ContentType(ext string) string {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "png":
		return "image/png"
	default:
		return "image/jpeg"
	}
}
