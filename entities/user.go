package entities

import (
	"strings"
	"time"

	"atmsecurity.io/application/utils"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleStaff   Role = "staff"
	RoleAdmin   Role = "admin"
)

var Roles = []string{string(RoleStudent), string(RoleStaff), string(RoleAdmin)}

// This represents a person registered to withdraw from the ATM.
type User struct {
	Email       string  `bson:"email" json:"email"`
	Username    string  `bson:"username" json:"username"`
	FirstName   string  `bson:"firstName" json:"firstName"`
	LastName    string  `bson:"lastName" json:"lastName"`
	Role        Role    `bson:"role" json:"role"`
	PhoneNumber *string `bson:"phoneNumber" json:"phoneNumber"`
	Address     *string `bson:"address" json:"address"`
	EmployeeID  *string `bson:"employeeID" json:"employeeID"`
	IsVerified  bool    `bson:"isVerified" json:"isVerified"`
	Password    string  `bson:"password" json:"-"`

	// RegisteredFace is the file store key of the reference image.
	RegisteredFace *string   `bson:"registeredFace" json:"registeredFace"`
	FaceEncoding   []float64 `bson:"faceEncoding" json:"-"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (model User) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		if model.ID == "" {
			model.ID = utils.GenerateUULDString()
		}
	}
	if model.Role == "" {
		model.Role = RoleStudent
	}
	model.Email = strings.ToLower(model.Email)
	model.UpdatedAt = now
	return &model
}

func (model User) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(model.FirstName) + " " + strings.TrimSpace(model.LastName))
}

// HasFaceEncoding reports whether the user can be recognised at the ATM.
func (model User) HasFaceEncoding() bool {
	return len(model.FaceEncoding) > 0
}
