package dto

import (
	"mime/multipart"
	"time"
)

type RecognitionResponse struct {
	UserID     string  `json:"user_id"`
	Username   string  `json:"username"`
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	Distance   float64 `json:"distance"`
	Confidence float64 `json:"confidence"`
}

type EnrollmentResponse struct {
	DescriptorSize int `json:"descriptor_size"`
}

type ReferenceImageResponse struct {
	UserID         string `json:"user_id"`
	RegisteredFace string `json:"registered_face"`
}

type BackfillResponse struct {
	Enqueued int `json:"enqueued"`
}

type BackfillStatus struct {
	RunID     string    `json:"run_id"`
	Enqueued  int       `json:"enqueued"`
	Refreshed int       `json:"refreshed"`
	Skipped   int       `json:"skipped"`
	Failed    int       `json:"failed"`
	Running   bool      `json:"running"`
	QueuedAt  time.Time `json:"queued_at"`
}

// ImageUpload is an uploaded image read into memory.
type ImageUpload struct {
	Data []byte
	Ext  string
}

type FaceUploadDTO struct {
	Image *multipart.FileHeader `form:"image"`
}
