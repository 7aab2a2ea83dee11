package controller

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	apperrors "atmsecurity.io/application/appErrors"
	"atmsecurity.io/application/constants"
	"atmsecurity.io/application/controller/dto"
	"atmsecurity.io/application/interfaces"
	"atmsecurity.io/application/repository"
	account_usecases "atmsecurity.io/application/usecases/account"
	user_usecases "atmsecurity.io/application/usecases/user"
	"atmsecurity.io/infrastructure/database/repository/cache"
	"atmsecurity.io/infrastructure/database/repository/mongo"
	"atmsecurity.io/infrastructure/env"
	fileupload "atmsecurity.io/infrastructure/file_upload"
	"atmsecurity.io/infrastructure/logger"
	server_response "atmsecurity.io/infrastructure/serverResponse"
	"atmsecurity.io/infrastructure/validator"
	"go.mongodb.org/mongo-driver/bson"
)

const referenceImageURLExpiry = 15 * time.Minute

func CreateUser(ctx *interfaces.ApplicationContext[dto.CreateUserDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	var face *dto.ImageUpload
	if ctx.Body.RegisteredFace != nil {
		upload, err := readImageUpload(ctx.Body.RegisteredFace, env.Settings.MaxUploadBytes)
		if err != nil {
			if errors.Is(err, ErrUploadTooLarge) {
				apperrors.PayloadTooLarge(ctx.Ctx, env.Settings.MaxUploadBytes)
				return
			}
			apperrors.ErrorProcessingPayload(ctx.Ctx)
			return
		}
		face = upload
	}
	user, err := user_usecases.CreateUserUseCase(ctx.Ctx, ctx.Context(), ctx.Body, face)
	if err != nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "User created", user, nil, nil)
}

// UserListFilter builds the mongo filter for the user list endpoint.
func UserListFilter(query *dto.ListUsersQuery) bson.M {
	filter := bson.M{}
	if query.Role != "" {
		filter["role"] = query.Role
	}
	if email := strings.TrimSpace(query.Email); email != "" {
		filter["email"] = bson.M{"$regex": regexp.QuoteMeta(strings.ToLower(email)), "$options": "i"}
	}
	return filter
}

func ListUsers(ctx *interfaces.ApplicationContext[dto.ListUsersQuery]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	page, pageSize := pageParams(ctx.Body.Page, ctx.Body.PageSize, constants.DEFAULT_PAGE_SIZE, constants.MAX_PAGE_SIZE)
	users, err := repository.UserRepo().FindManyPaginated(ctx.Context(), UserListFilter(ctx.Body), page, pageSize, bson.D{{Key: "_id", Value: -1}})
	if err != nil {
		apperrors.UnknownError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "Users fetched", users, nil, nil)
}

func FetchUser(ctx *interfaces.ApplicationContext[any]) {
	user, err := repository.UserRepo().FindByID(ctx.Context(), ctx.GetStringParameter("id"))
	if err != nil {
		apperrors.UnknownError(ctx.Ctx, err)
		return
	}
	if user == nil {
		apperrors.NotFoundError(ctx.Ctx, "User does not exist")
		return
	}
	response := dto.UserDetailResponse{User: user}
	if user.RegisteredFace != nil {
		response.RegisteredFaceURL = referenceImageURL(ctx.Context(), *user.RegisteredFace)
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "User fetched", response, nil, nil)
}

// referenceImageURL signs a download link for key. A missing image or a
// store failure yields no link rather than failing the request.
func referenceImageURL(reqCtx context.Context, key string) *string {
	exists, err := fileupload.FileStore.CheckFileExists(reqCtx, key)
	if err != nil || !exists {
		logger.Warning("reference image unavailable", logger.LoggerOptions{
			Key:  "key",
			Data: key,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil
	}
	url, err := fileupload.FileStore.GenerateDownloadURL(reqCtx, key, referenceImageURLExpiry)
	if err != nil {
		return nil
	}
	return url
}

// UserUpdateFields converts a partial update into the fields to $set.
func UserUpdateFields(payload *dto.UpdateUserDTO) map[string]any {
	fields := map[string]any{}
	if payload.Username != nil {
		fields["username"] = *payload.Username
	}
	if payload.FirstName != nil {
		fields["firstName"] = strings.TrimSpace(*payload.FirstName)
	}
	if payload.LastName != nil {
		fields["lastName"] = strings.TrimSpace(*payload.LastName)
	}
	if payload.Role != nil {
		fields["role"] = *payload.Role
	}
	if payload.PhoneNumber != nil {
		fields["phoneNumber"] = *payload.PhoneNumber
	}
	if payload.Address != nil {
		fields["address"] = *payload.Address
	}
	if payload.EmployeeID != nil {
		if *payload.EmployeeID == "" {
			fields["employeeID"] = nil
		} else {
			fields["employeeID"] = *payload.EmployeeID
		}
	}
	if payload.IsVerified != nil {
		fields["isVerified"] = *payload.IsVerified
	}
	return fields
}

func UpdateUser(ctx *interfaces.ApplicationContext[dto.UpdateUserDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	fields := UserUpdateFields(ctx.Body)
	if len(fields) == 0 {
		apperrors.ClientError(ctx.Ctx, "Nothing to update", nil, nil)
		return
	}
	userRepo := repository.UserRepo()
	id := ctx.GetStringParameter("id")
	matched, err := userRepo.UpdatePartialByID(ctx.Context(), id, fields)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			apperrors.EntityAlreadyExistsError(ctx.Ctx, "User with employee id already exists")
			return
		}
		apperrors.UnknownError(ctx.Ctx, err)
		return
	}
	if matched == 0 {
		apperrors.NotFoundError(ctx.Ctx, "User does not exist")
		return
	}
	user, err := userRepo.FindByID(ctx.Context(), id)
	if err != nil {
		apperrors.UnknownError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "User updated", user, nil, nil)
}

func DeleteUser(ctx *interfaces.ApplicationContext[any]) {
	userRepo := repository.UserRepo()
	id := ctx.GetStringParameter("id")
	user, err := userRepo.FindByID(ctx.Context(), id)
	if err != nil {
		apperrors.UnknownError(ctx.Ctx, err)
		return
	}
	if user == nil {
		apperrors.NotFoundError(ctx.Ctx, "User does not exist")
		return
	}
	if _, err = userRepo.DeleteByID(ctx.Context(), id); err != nil {
		apperrors.UnknownError(ctx.Ctx, err)
		return
	}
	if err = account_usecases.DeleteAccountsOfUserUseCase(ctx.Context(), id); err != nil {
		logger.Error("could not remove the account of a deleted user", logger.LoggerOptions{
			Key:  "userID",
			Data: id,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	}
	if user.RegisteredFace != nil {
		go func(key string) {
			if err := fileupload.FileStore.Delete(context.Background(), key); err != nil {
				logger.Warning("could not delete reference image of removed user", logger.LoggerOptions{
					Key:  "key",
					Data: key,
				}, logger.LoggerOptions{
					Key:  "error",
					Data: err,
				})
			}
		}(*user.RegisteredFace)
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "User deleted", nil, nil, nil)
}

func MassRegisterUsers(ctx *interfaces.ApplicationContext[dto.MassRegisterDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	result := user_usecases.MassRegisterUseCase(ctx.Context(), ctx.Body)
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "Mass registration completed", result, nil, nil)
}

func BackfillDescriptors(ctx *interfaces.ApplicationContext[any]) {
	enqueued, err := user_usecases.BackfillDescriptorsUseCase(ctx.Context())
	if err != nil {
		if errors.Is(err, user_usecases.ErrBackfillInProgress) {
			server_response.Responder.Respond(ctx.Ctx, http.StatusConflict, "A descriptor backfill is already running", nil, nil, nil)
			return
		}
		if errors.Is(err, cache.ErrCacheUnavailable) {
			apperrors.ExternalDependencyError(ctx.Ctx, "redis", "500", err)
			return
		}
		apperrors.UnknownError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusAccepted, "Descriptor refresh queued", dto.BackfillResponse{
		Enqueued: enqueued,
	}, nil, nil)
}

func BackfillStatus(ctx *interfaces.ApplicationContext[any]) {
	status := user_usecases.BackfillStatusUseCase(ctx.Context())
	if status == nil {
		apperrors.NotFoundError(ctx.Ctx, "No descriptor backfill has been queued recently")
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "Descriptor backfill status fetched", status, nil, nil)
}
