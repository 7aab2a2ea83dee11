package azure

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"atmsecurity.io/infrastructure/file_upload/types"
	"atmsecurity.io/infrastructure/logger"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	azblob_sas "github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/sas"
)

type AzureBlobStore struct {
	AccountName   string
	ContainerName string
	credential    *azblob.SharedKeyCredential
	client        *azblob.Client
}

func NewAzureBlobStore(accountName string, accountKey string, containerName string) (*AzureBlobStore, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		logger.Error("error generating azblob shared key credential", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	client, err := azblob.NewClientWithSharedKeyCredential(fmt.Sprintf("https://%s.blob.core.windows.net/", accountName), credential, nil)
	if err != nil {
		return nil, err
	}
	return &AzureBlobStore{
		AccountName:   accountName,
		ContainerName: containerName,
		credential:    credential,
		client:        client,
	}, nil
}

func (store *AzureBlobStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := store.client.UploadStream(ctx, store.ContainerName, key, bytes.NewReader(data), &azblob.UploadStreamOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: &contentType},
	})
	if err != nil {
		logger.Error("error uploading blob to azure", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
	}
	return err
}

func (store *AzureBlobStore) Download(ctx context.Context, key string) ([]byte, error) {
	resp, err := store.client.DownloadStream(ctx, store.ContainerName, key, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil, types.ErrFileNotFound
		}
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func (store *AzureBlobStore) Delete(ctx context.Context, key string) error {
	_, err := store.client.DeleteBlob(ctx, store.ContainerName, key, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.BlobNotFound) {
		logger.Error("error deleting azure blob", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return err
	}
	return nil
}

func (store *AzureBlobStore) CheckFileExists(ctx context.Context, key string) (bool, error) {
	blobClient := store.client.ServiceClient().NewContainerClient(store.ContainerName).NewBlobClient(key)
	_, err := blobClient.GetProperties(ctx, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GenerateDownloadURL signs a read-only SAS url for the blob.
func (store *AzureBlobStore) GenerateDownloadURL(ctx context.Context, key string, expiry time.Duration) (*string, error) {
	sasQueryParams, err := azblob_sas.BlobSignatureValues{
		Protocol:      azblob_sas.ProtocolHTTPS,
		StartTime:     time.Now().UTC(),
		ExpiryTime:    time.Now().UTC().Add(expiry),
		Permissions:   (&azblob_sas.BlobPermissions{Read: true}).String(),
		ContainerName: store.ContainerName,
		BlobName:      key,
	}.SignWithSharedKey(store.credential)
	if err != nil {
		logger.Error("error signing blob signature values", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	sasURL := fmt.Sprintf("https://%s.blob.core.windows.net/%s/%s?%s", store.AccountName, store.ContainerName, key, sasQueryParams.Encode())
	return &sasURL, nil
}
