package entities

import (
	"time"

	"atmsecurity.io/application/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Account struct {
	UserID        string               `bson:"userID" json:"userID"`
	AccountNumber string               `bson:"accountNumber" json:"accountNumber"`
	Balance       primitive.Decimal128 `bson:"balance" json:"balance"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (model Account) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		if model.ID == "" {
			model.ID = utils.GenerateUULDString()
		}
	}
	model.UpdatedAt = now
	return &model
}
