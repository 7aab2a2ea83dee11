package minio

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"time"

	"atmsecurity.io/infrastructure/file_upload/types"
	"atmsecurity.io/infrastructure/logger"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioStore struct {
	client *minio.Client
	bucket string
}

func NewMinioStore(ctx context.Context, endpoint string, accessKey string, secretKey string, bucket string, useSSL bool) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
		logger.Info("created minio bucket", logger.LoggerOptions{Key: "bucket", Data: bucket})
	}
	return &MinioStore{client: client, bucket: bucket}, nil
}

func isNotFound(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NotFound"
}

func (store *MinioStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := store.client.PutObject(ctx, store.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		logger.Error("error uploading object to minio", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
	}
	return err
}

func (store *MinioStore) Download(ctx context.Context, key string) ([]byte, error) {
	obj, err := store.client.GetObject(ctx, store.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil, types.ErrFileNotFound
		}
		return nil, err
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		if isNotFound(err) {
			return nil, types.ErrFileNotFound
		}
		return nil, err
	}
	return data, nil
}

func (store *MinioStore) Delete(ctx context.Context, key string) error {
	err := store.client.RemoveObject(ctx, store.bucket, key, minio.RemoveObjectOptions{})
	if err != nil && !isNotFound(err) {
		return err
	}
	return nil
}

func (store *MinioStore) CheckFileExists(ctx context.Context, key string) (bool, error) {
	_, err := store.client.StatObject(ctx, store.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (store *MinioStore) GenerateDownloadURL(ctx context.Context, key string, expiry time.Duration) (*string, error) {
	signed, err := store.client.PresignedGetObject(ctx, store.bucket, key, expiry, url.Values{})
	if err != nil {
		return nil, err
	}
	link := signed.String()
	return &link, nil
}
