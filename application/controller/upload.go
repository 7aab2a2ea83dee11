package controller

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"

	"atmsecurity.io/application/controller/dto"
)

var (
	ErrNoImage        = errors.New("no image file provided")
	ErrUploadTooLarge = errors.New("uploaded file is too large")
)

// readImageUpload reads an uploaded file into memory, refusing files larger
// than limit bytes. The extension comes from the client's file name.
func readImageUpload(header *multipart.FileHeader, limit int64) (*dto.ImageUpload, error) {
	if header == nil || header.Filename == "" {
		return nil, ErrNoImage
	}
	if header.Size > limit {
		return nil, ErrUploadTooLarge
	}
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("could not open upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, fmt.Errorf("could not read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, ErrUploadTooLarge
	}
	return &dto.ImageUpload{Data: data, Ext: filepath.Ext(header.Filename)}, nil
}

func pageParams(page int64, pageSize int64, defaultSize int64, maxSize int64) (int64, int64) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultSize
	}
	if pageSize > maxSize {
		pageSize = maxSize
	}
	return page, pageSize
}
