package recognition

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"atmsecurity.io/infrastructure/biometric"
	"atmsecurity.io/infrastructure/biometric/types"
	fileupload "atmsecurity.io/infrastructure/file_upload"
	file_upload_types "atmsecurity.io/infrastructure/file_upload/types"
	"atmsecurity.io/infrastructure/logger"
	"atmsecurity.io/infrastructure/metrics"
	"github.com/google/uuid"
)

var RecognitionService FaceService

type Service struct {
	extractor  DescriptorExtractor
	matcher    IdentityMatcher
	candidates CandidateStore
	faces      FaceRecordStore
	files      file_upload_types.FileStore
}

func NewService(extractor DescriptorExtractor, matcher IdentityMatcher, candidates CandidateStore, faces FaceRecordStore, files file_upload_types.FileStore) *Service {
	return &Service{
		extractor:  extractor,
		matcher:    matcher,
		candidates: candidates,
		faces:      faces,
		files:      files,
	}
}

func InitialiseRecognitionService(candidates CandidateStore, faces FaceRecordStore, files file_upload_types.FileStore) {
	RecognitionService = NewService(biometric.FaceExtractor, biometric.FaceMatcher, candidates, faces, files)
}

// Recognize identifies the first face found in the upload against every
// enrolled user. A failed match is returned as biometric.ErrNoMatch.
func (s *Service) Recognize(ctx context.Context, data []byte, ext string) (outcome *Outcome, err error) {
	defer func() { s.record("recognize", err) }()

	query, err := s.extract(ctx, "recognize", data, ext, biometric.RecognitionPolicy)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	candidates, err := s.candidates.FetchCandidates(ctx)
	if err != nil {
		logger.Error("could not load face candidates", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, fmt.Errorf("%w: loading candidates: %v", biometric.ErrInternal, err)
	}
	result := s.matcher.Match(query, candidates)
	metrics.MatchDuration.Observe(time.Since(start).Seconds())
	metrics.CandidatesScanned.Observe(float64(len(candidates)))

	if !result.Matched {
		logger.Info("face did not match any registered profile", logger.LoggerOptions{
			Key:  "candidates",
			Data: len(candidates),
		})
		return nil, biometric.ErrNoMatch
	}
	logger.Info("face recognised", logger.LoggerOptions{
		Key:  "userID",
		Data: result.Candidate.IdentityID,
	}, logger.LoggerOptions{
		Key:  "distance",
		Data: result.Distance,
	})
	return &Outcome{
		Kind:        KindSuccess,
		IdentityID:  result.Candidate.IdentityID,
		DisplayName: result.Candidate.DisplayName,
		Email:       result.Candidate.Email,
		Username:    result.Candidate.Username,
		Distance:    result.Distance,
		Confidence:  result.Confidence(),
	}, nil
}

// Enroll computes the descriptor to store for a new reference image. Images
// with more than one face are rejected.
func (s *Service) Enroll(ctx context.Context, data []byte, ext string) (descriptor types.Descriptor, err error) {
	defer func() { s.record("enroll", err) }()
	return s.extract(ctx, "enroll", data, ext, biometric.EnrollmentPolicy)
}

// UpdateReferenceImage replaces the reference image of a user. The new
// descriptor is computed before anything is written, so a rejected image
// leaves the stored record untouched. Returns the key of the new image.
func (s *Service) UpdateReferenceImage(ctx context.Context, userID string, data []byte, ext string) (key *string, err error) {
	defer func() { s.record("update_reference", err) }()

	previous, ok, err := s.faces.ReferenceImage(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: reading user: %v", biometric.ErrInternal, err)
	}
	if !ok {
		return nil, ErrUserNotFound
	}

	descriptor, err := s.extract(ctx, "update_reference", data, ext, biometric.EnrollmentPolicy)
	if err != nil {
		return nil, err
	}

	newKey := fileupload.ReferenceImageKey(userID, uuid.NewString(), biometric.NormaliseExtension(ext))
	if err = s.files.Upload(ctx, newKey, data, fileupload.ContentType(ext)); err != nil {
		logger.Error("could not upload reference image", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "userID",
			Data: userID,
		})
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	ok, err = s.faces.SaveFace(ctx, userID, previous, descriptor, newKey)
	if err != nil || !ok {
		s.deleteImage(newKey)
		if err != nil {
			return nil, fmt.Errorf("%w: saving descriptor: %v", biometric.ErrInternal, err)
		}
		return nil, s.saveConflict(ctx, userID)
	}

	if previous != nil && *previous != "" && *previous != newKey {
		s.deleteImage(*previous)
	}
	return &newKey, nil
}

// RefreshDescriptor recomputes a user's descriptor from the stored reference
// image. Used after the face models change.
func (s *Service) RefreshDescriptor(ctx context.Context, userID string) (err error) {
	defer func() { s.record("refresh", err) }()

	key, ok, err := s.faces.ReferenceImage(ctx, userID)
	if err != nil {
		return fmt.Errorf("%w: reading user: %v", biometric.ErrInternal, err)
	}
	if !ok {
		return ErrUserNotFound
	}
	if key == nil || *key == "" {
		return ErrNoReferenceImage
	}

	data, err := s.files.Download(ctx, *key)
	if err != nil {
		if errors.Is(err, file_upload_types.ErrFileNotFound) {
			return fmt.Errorf("%w: %s is missing from the file store", ErrNoReferenceImage, *key)
		}
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	descriptor, err := s.extract(ctx, "refresh", data, path.Ext(*key), biometric.EnrollmentPolicy)
	if err != nil {
		return err
	}
	ok, err = s.faces.SaveFace(ctx, userID, key, descriptor, *key)
	if err != nil {
		return fmt.Errorf("%w: saving descriptor: %v", biometric.ErrInternal, err)
	}
	if !ok {
		return s.saveConflict(ctx, userID)
	}
	return nil
}

// saveConflict explains a rejected SaveFace: either the user is gone or
// another request replaced the reference image first.
func (s *Service) saveConflict(ctx context.Context, userID string) error {
	_, exists, err := s.faces.ReferenceImage(ctx, userID)
	if err != nil {
		return fmt.Errorf("%w: reading user: %v", biometric.ErrInternal, err)
	}
	if !exists {
		return ErrUserNotFound
	}
	return ErrReferenceImageChanged
}

func (s *Service) extract(ctx context.Context, operation string, data []byte, ext string, policy biometric.FacePolicy) (types.Descriptor, error) {
	start := time.Now()
	descriptor, err := s.extractor.Extract(ctx, data, ext, policy)
	metrics.ExtractionDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil && !biometric.IsClientError(err) && !errors.Is(err, context.Canceled) {
		logger.Error("face extraction failed", logger.LoggerOptions{
			Key:  "operation",
			Data: operation,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	}
	return descriptor, err
}

func (s *Service) deleteImage(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.files.Delete(ctx, key); err != nil && !errors.Is(err, file_upload_types.ErrFileNotFound) {
		logger.Warning("could not delete reference image", logger.LoggerOptions{
			Key:  "key",
			Data: key,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	}
}

func (s *Service) record(operation string, err error) {
	kind := KindSuccess
	switch {
	case err == nil:
	case errors.Is(err, ErrUserNotFound):
		kind = "user_not_found"
	case errors.Is(err, ErrNoReferenceImage):
		kind = "no_reference_image"
	case errors.Is(err, ErrStorage):
		kind = "storage_error"
	case errors.Is(err, ErrReferenceImageChanged):
		kind = "reference_changed"
	default:
		kind = biometric.Kind(err)
	}
	metrics.FaceOutcomes.WithLabelValues(operation, kind).Inc()
}
