package repository

import (
	"context"

	"atmsecurity.io/infrastructure/biometric/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserFaceStore reads and writes the face fields of user records.
type UserFaceStore struct{}

func (UserFaceStore) ReferenceImage(ctx context.Context, userID string) (*string, bool, error) {
	user, err := UserRepo().FindByID(ctx, userID, options.FindOne().SetProjection(bson.M{"registeredFace": 1}))
	if err != nil {
		return nil, false, err
	}
	if user == nil {
		return nil, false, nil
	}
	return user.RegisteredFace, true, nil
}

// SaveFace writes the descriptor and image key only if the stored image key
// still equals expectedKey. A nil expectedKey matches a missing or null field.
func (UserFaceStore) SaveFace(ctx context.Context, userID string, expectedKey *string, descriptor types.Descriptor, imageKey string) (bool, error) {
	filter := bson.M{"_id": userID, "registeredFace": nil}
	if expectedKey != nil {
		filter["registeredFace"] = *expectedKey
	}
	matched, err := UserRepo().UpdatePartialByFilter(ctx, filter, map[string]any{
		"faceEncoding":   []float64(descriptor),
		"registeredFace": imageKey,
	})
	if err != nil {
		return false, err
	}
	return matched > 0, nil
}
