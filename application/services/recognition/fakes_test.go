package recognition

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"atmsecurity.io/infrastructure/biometric"
	"atmsecurity.io/infrastructure/biometric/types"
	file_upload_types "atmsecurity.io/infrastructure/file_upload/types"
)

// fakeExtractor returns the descriptor registered for the upload bytes.
type fakeExtractor struct {
	descriptors map[string]types.Descriptor
	errs        map[string]error
	calls       []biometric.FacePolicy
}

func (fe *fakeExtractor) Extract(ctx context.Context, data []byte, ext string, policy biometric.FacePolicy) (types.Descriptor, error) {
	fe.calls = append(fe.calls, policy)
	if err := biometric.ValidateExtension(ext); err != nil {
		return nil, err
	}
	if err, ok := fe.errs[string(data)]; ok {
		return nil, err
	}
	descriptor, ok := fe.descriptors[string(data)]
	if !ok {
		return nil, biometric.ErrNoFaceDetected
	}
	return descriptor, nil
}

type storedUser struct {
	candidate types.Candidate
	imageKey  *string
}

type memoryUsers struct {
	mu      sync.Mutex
	users   map[string]*storedUser
	saveErr error
	readErr error
	// beforeSave runs once inside the next SaveFace, standing in for a
	// concurrent writer.
	beforeSave func(user *storedUser)
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: map[string]*storedUser{}}
}

func (mu *memoryUsers) add(id string, descriptor types.Descriptor, imageKey *string) {
	mu.mu.Lock()
	defer mu.mu.Unlock()
	mu.users[id] = &storedUser{
		candidate: types.Candidate{IdentityID: id, DisplayName: "User " + id, Email: id + "@example.com", Username: id, Descriptor: descriptor},
		imageKey:  imageKey,
	}
}

func (mu *memoryUsers) FetchCandidates(ctx context.Context) ([]types.Candidate, error) {
	mu.mu.Lock()
	defer mu.mu.Unlock()
	if mu.readErr != nil {
		return nil, mu.readErr
	}
	candidates := []types.Candidate{}
	for _, user := range mu.users {
		if user.candidate.Descriptor != nil {
			candidates = append(candidates, user.candidate)
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].IdentityID < candidates[j].IdentityID })
	return candidates, nil
}

func (mu *memoryUsers) ReferenceImage(ctx context.Context, userID string) (*string, bool, error) {
	mu.mu.Lock()
	defer mu.mu.Unlock()
	if mu.readErr != nil {
		return nil, false, mu.readErr
	}
	user, ok := mu.users[userID]
	if !ok {
		return nil, false, nil
	}
	return user.imageKey, true, nil
}

func (mu *memoryUsers) SaveFace(ctx context.Context, userID string, expectedKey *string, descriptor types.Descriptor, imageKey string) (bool, error) {
	mu.mu.Lock()
	defer mu.mu.Unlock()
	if mu.saveErr != nil {
		return false, mu.saveErr
	}
	user, ok := mu.users[userID]
	if !ok {
		return false, nil
	}
	if mu.beforeSave != nil {
		mu.beforeSave(user)
		mu.beforeSave = nil
	}
	if keyOf(user.imageKey) != keyOf(expectedKey) {
		return false, nil
	}
	user.candidate.Descriptor = descriptor
	user.imageKey = &imageKey
	return true, nil
}

func keyOf(key *string) string {
	if key == nil {
		return ""
	}
	return *key
}

type memoryFiles struct {
	mu        sync.Mutex
	objects   map[string][]byte
	uploadErr error
}

func newMemoryFiles() *memoryFiles {
	return &memoryFiles{objects: map[string][]byte{}}
}

func (mf *memoryFiles) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	mf.mu.Lock()
	defer mf.mu.Unlock()
	if mf.uploadErr != nil {
		return mf.uploadErr
	}
	mf.objects[key] = append([]byte(nil), data...)
	return nil
}

func (mf *memoryFiles) Download(ctx context.Context, key string) ([]byte, error) {
	mf.mu.Lock()
	defer mf.mu.Unlock()
	data, ok := mf.objects[key]
	if !ok {
		return nil, file_upload_types.ErrFileNotFound
	}
	return data, nil
}

func (mf *memoryFiles) Delete(ctx context.Context, key string) error {
	mf.mu.Lock()
	defer mf.mu.Unlock()
	if _, ok := mf.objects[key]; !ok {
		return file_upload_types.ErrFileNotFound
	}
	delete(mf.objects, key)
	return nil
}

func (mf *memoryFiles) CheckFileExists(ctx context.Context, key string) (bool, error) {
	mf.mu.Lock()
	defer mf.mu.Unlock()
	_, ok := mf.objects[key]
	return ok, nil
}

func (mf *memoryFiles) GenerateDownloadURL(ctx context.Context, key string, expiry time.Duration) (*string, error) {
	url := "memory://" + key
	return &url, nil
}

func (mf *memoryFiles) keys() []string {
	mf.mu.Lock()
	defer mf.mu.Unlock()
	keys := []string{}
	for key := range mf.objects {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

var errDatabase = errors.New("database unavailable")

// vectorAt returns a descriptor at euclidean distance d from the origin.
func vectorAt(d float64) types.Descriptor {
	descriptor := make(types.Descriptor, types.DescriptorSize)
	descriptor[0] = d
	return descriptor
}
