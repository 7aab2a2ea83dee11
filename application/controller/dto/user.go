package dto

import (
	"mime/multipart"

	"atmsecurity.io/entities"
)

// CreateUserDTO is bound from a multipart form so a reference face can be
// uploaded with the registration.
type CreateUserDTO struct {
	Email       string  `form:"email" validate:"required,email"`
	Username    string  `form:"username" validate:"omitempty,min=3,max=50,alphanum"`
	FirstName   string  `form:"first_name" validate:"required,max=100,name_spacial_char"`
	LastName    string  `form:"last_name" validate:"required,max=100,name_spacial_char"`
	Role        string  `form:"role" validate:"omitempty,oneof=student staff admin"`
	PhoneNumber *string `form:"phone_number" validate:"omitempty,e164"`
	Address     *string `form:"address" validate:"omitempty,max=255"`
	EmployeeID  *string `form:"employee_id" validate:"omitempty,max=50"`
	Password    string  `form:"password" validate:"required,password"`

	RegisteredFace *multipart.FileHeader `form:"registered_face" validate:"-"`
}

type UpdateUserDTO struct {
	Username    *string `json:"username" validate:"omitempty,min=3,max=50,alphanum"`
	FirstName   *string `json:"first_name" validate:"omitempty,max=100,name_spacial_char"`
	LastName    *string `json:"last_name" validate:"omitempty,max=100,name_spacial_char"`
	Role        *string `json:"role" validate:"omitempty,oneof=student staff admin"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,e164"`
	Address     *string `json:"address" validate:"omitempty,max=255"`
	EmployeeID  *string `json:"employee_id" validate:"omitempty,max=50"`
	IsVerified  *bool   `json:"is_verified"`
}

type ListUsersQuery struct {
	Role     string `form:"role" validate:"omitempty,oneof=student staff admin"`
	Email    string `form:"email" validate:"omitempty,max=255"`
	Page     int64  `form:"page" validate:"omitempty,min=1"`
	PageSize int64  `form:"page_size" validate:"omitempty,min=1"`
}

type MassRegisterUserDTO struct {
	Email      string  `json:"email" validate:"required,email"`
	Username   string  `json:"username" validate:"omitempty,min=3,max=50"`
	FirstName  string  `json:"first_name" validate:"required,max=100"`
	LastName   string  `json:"last_name" validate:"required,max=100"`
	Role       string  `json:"role" validate:"omitempty,oneof=student staff admin"`
	EmployeeID *string `json:"employee_id" validate:"omitempty,max=50"`
}

type MassRegisterDTO struct {
	Users []MassRegisterUserDTO `json:"users" validate:"required,min=1,max=500,dive"`
}

type MassRegisterError struct {
	Index int    `json:"index"`
	Email string `json:"email"`
	Error string `json:"error"`
}

type MassRegisterResult struct {
	CreatedUsers []string            `json:"created_users"`
	Errors       []MassRegisterError `json:"errors"`
}

// UserDetailResponse is a user with a short-lived link to the reference image.
type UserDetailResponse struct {
	*entities.User
	RegisteredFaceURL *string `json:"registeredFaceURL,omitempty"`
}
