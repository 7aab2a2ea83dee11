package repository

import (
	"context"

	"atmsecurity.io/entities"
	"atmsecurity.io/infrastructure/biometric/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CandidateFilter selects users that have a stored face descriptor.
var CandidateFilter = bson.M{"faceEncoding": bson.M{"$ne": nil}}

// UserCandidateStore reads match candidates from the users collection.
type UserCandidateStore struct{}

// FetchCandidates returns a fresh snapshot on every call, ordered by
// ascending user id. User ids are ulids so this is registration order.
func (UserCandidateStore) FetchCandidates(ctx context.Context) ([]types.Candidate, error) {
	users, err := UserRepo().FindMany(ctx, CandidateFilter, options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetProjection(bson.M{"password": 0}))
	if err != nil {
		return nil, err
	}
	return UsersToCandidates(*users), nil
}

func UsersToCandidates(users []entities.User) []types.Candidate {
	candidates := make([]types.Candidate, 0, len(users))
	for _, user := range users {
		if !user.HasFaceEncoding() {
			continue
		}
		candidates = append(candidates, types.Candidate{
			IdentityID:  user.ID,
			DisplayName: user.FullName(),
			Email:       user.Email,
			Username:    user.Username,
			Descriptor:  types.Descriptor(user.FaceEncoding),
		})
	}
	return candidates
}
