package user_usecases

import (
	"context"
	"errors"
	"strings"

	apperrors "atmsecurity.io/application/appErrors"
	"atmsecurity.io/application/controller/dto"
	"atmsecurity.io/application/repository"
	"atmsecurity.io/application/services/recognition"
	"atmsecurity.io/application/utils"
	"atmsecurity.io/entities"
	"atmsecurity.io/infrastructure/biometric"
	"atmsecurity.io/infrastructure/cryptography"
	"atmsecurity.io/infrastructure/database/repository/mongo"
	fileupload "atmsecurity.io/infrastructure/file_upload"
	"atmsecurity.io/infrastructure/logger"
	"github.com/google/uuid"
)

var ErrDuplicateUser = errors.New("a user with this email or employee id already exists")

// CreateUserUseCase registers a user. When a face image is supplied it must
// contain exactly one face; the descriptor is stored with the record so the
// user can be recognised immediately.
func CreateUserUseCase(ctx any, reqCtx context.Context, payload *dto.CreateUserDTO, face *dto.ImageUpload) (*entities.User, error) {
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))
	userRepo := repository.UserRepo()
	exists, err := userRepo.CountDocs(reqCtx, map[string]any{
		"email": payload.Email,
	})
	if err != nil {
		apperrors.UnknownError(ctx, err)
		return nil, err
	}
	if exists != 0 {
		apperrors.EntityAlreadyExistsError(ctx, "User with email already exists")
		return nil, ErrDuplicateUser
	}
	if payload.EmployeeID != nil && *payload.EmployeeID != "" {
		exists, err = userRepo.CountDocs(reqCtx, map[string]any{
			"employeeID": *payload.EmployeeID,
		})
		if err != nil {
			apperrors.UnknownError(ctx, err)
			return nil, err
		}
		if exists != 0 {
			apperrors.EntityAlreadyExistsError(ctx, "User with employee id already exists")
			return nil, ErrDuplicateUser
		}
	}

	user := newUser(payload.Email, payload.Username, payload.FirstName, payload.LastName, payload.Role, payload.EmployeeID)
	user.PhoneNumber = payload.PhoneNumber
	user.Address = payload.Address

	if face != nil {
		descriptor, err := recognition.RecognitionService.Enroll(reqCtx, face.Data, face.Ext)
		if err != nil {
			apperrors.FaceError(ctx, err)
			return nil, err
		}
		key := fileupload.ReferenceImageKey(user.ID, uuid.NewString(), biometric.NormaliseExtension(face.Ext))
		if err = fileupload.FileStore.Upload(reqCtx, key, face.Data, fileupload.ContentType(face.Ext)); err != nil {
			apperrors.ExternalDependencyError(ctx, "file store", "500", err)
			return nil, err
		}
		user.FaceEncoding = descriptor
		user.RegisteredFace = &key
	}

	hashedPassword, err := cryptography.CryptoHahser.HashString(payload.Password, nil)
	if err != nil {
		discardReferenceImage(user.RegisteredFace)
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}
	user.Password = string(hashedPassword)

	created, err := userRepo.CreateOne(reqCtx, user)
	if err != nil {
		discardReferenceImage(user.RegisteredFace)
		if mongo.IsDuplicateKeyError(err) {
			apperrors.EntityAlreadyExistsError(ctx, "User with email or employee id already exists")
			return nil, ErrDuplicateUser
		}
		apperrors.UnknownError(ctx, err)
		return nil, err
	}
	logger.Info("user registered", logger.LoggerOptions{
		Key:  "userID",
		Data: created.ID,
	}, logger.LoggerOptions{
		Key:  "withFace",
		Data: created.HasFaceEncoding(),
	})
	sendWelcomeEmail(created)
	return created, nil
}

func newUser(email string, username string, firstName string, lastName string, role string, employeeID *string) entities.User {
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" {
		username = utils.UsernameFromEmail(email)
	}
	if employeeID != nil && *employeeID == "" {
		employeeID = nil
	}
	return entities.User{
		ID:         utils.GenerateUULDString(),
		Email:      email,
		Username:   username,
		FirstName:  strings.TrimSpace(firstName),
		LastName:   strings.TrimSpace(lastName),
		Role:       entities.Role(role),
		EmployeeID: employeeID,
	}
}

func discardReferenceImage(key *string) {
	if key == nil {
		return
	}
	if err := fileupload.FileStore.Delete(context.Background(), *key); err != nil {
		logger.Warning("could not remove reference image of failed registration", logger.LoggerOptions{
			Key:  "key",
			Data: *key,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	}
}
