package recognition

import (
	"context"
	"errors"

	"atmsecurity.io/infrastructure/biometric"
	"atmsecurity.io/infrastructure/biometric/types"
)

const KindSuccess = "success"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrNoReferenceImage = errors.New("user has no reference image")
	ErrStorage          = errors.New("reference image storage is unavailable")
	// ErrReferenceImageChanged is returned when another request replaced the
	// reference image between reading and saving the record.
	ErrReferenceImageChanged = errors.New("reference image was replaced concurrently")
)

type DescriptorExtractor interface {
	Extract(ctx context.Context, data []byte, ext string, policy biometric.FacePolicy) (types.Descriptor, error)
}

type IdentityMatcher interface {
	Match(query types.Descriptor, candidates []types.Candidate) types.MatchResult
}

// CandidateStore returns every identity with a stored descriptor, ordered by
// ascending identity id.
type CandidateStore interface {
	FetchCandidates(ctx context.Context) ([]types.Candidate, error)
}

// FaceRecordStore reads and writes the face fields of a user record.
// SaveFace only writes when the stored image key still equals expectedKey
// (nil meaning no image) and reports ok false otherwise, including when no
// user has the given id.
type FaceRecordStore interface {
	ReferenceImage(ctx context.Context, userID string) (key *string, ok bool, err error)
	SaveFace(ctx context.Context, userID string, expectedKey *string, descriptor types.Descriptor, imageKey string) (ok bool, err error)
}

type Outcome struct {
	Kind        string  `json:"kind"`
	IdentityID  string  `json:"user_id"`
	DisplayName string  `json:"name"`
	Email       string  `json:"email"`
	Username    string  `json:"username"`
	Distance    float64 `json:"distance"`
	Confidence  float64 `json:"confidence"`
}

type FaceService interface {
	Recognize(ctx context.Context, data []byte, ext string) (*Outcome, error)
	Enroll(ctx context.Context, data []byte, ext string) (types.Descriptor, error)
	UpdateReferenceImage(ctx context.Context, userID string, data []byte, ext string) (*string, error)
	RefreshDescriptor(ctx context.Context, userID string) error
}
