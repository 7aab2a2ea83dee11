package controller

import (
	"net/http"

	apperrors "atmsecurity.io/application/appErrors"
	"atmsecurity.io/application/constants"
	"atmsecurity.io/application/controller/dto"
	"atmsecurity.io/application/interfaces"
	"atmsecurity.io/application/repository"
	account_usecases "atmsecurity.io/application/usecases/account"
	server_response "atmsecurity.io/infrastructure/serverResponse"
	"atmsecurity.io/infrastructure/validator"
	"go.mongodb.org/mongo-driver/bson"
)

func CreateAccount(ctx *interfaces.ApplicationContext[dto.CreateAccountDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	account, err := account_usecases.CreateAccountUseCase(ctx.Ctx, ctx.Context(), ctx.Body)
	if err != nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "Account created", account, nil, nil)
}

func ListAccounts(ctx *interfaces.ApplicationContext[dto.ListAccountsQuery]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	filter := bson.M{}
	if ctx.Body.UserID != "" {
		filter["userID"] = ctx.Body.UserID
	}
	page, pageSize := pageParams(ctx.Body.Page, ctx.Body.PageSize, constants.DEFAULT_PAGE_SIZE, constants.MAX_PAGE_SIZE)
	accounts, err := repository.AccountRepo().FindManyPaginated(ctx.Context(), filter, page, pageSize, bson.D{{Key: "_id", Value: -1}})
	if err != nil {
		apperrors.UnknownError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "Accounts fetched", accounts, nil, nil)
}

func FetchAccount(ctx *interfaces.ApplicationContext[any]) {
	account, err := repository.AccountRepo().FindByID(ctx.Context(), ctx.GetStringParameter("id"))
	if err != nil {
		apperrors.UnknownError(ctx.Ctx, err)
		return
	}
	if account == nil {
		apperrors.NotFoundError(ctx.Ctx, "Account does not exist")
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "Account fetched", account, nil, nil)
}

func DeleteAccount(ctx *interfaces.ApplicationContext[any]) {
	deleted, err := account_usecases.DeleteAccountUseCase(ctx.Context(), ctx.GetStringParameter("id"))
	if err != nil {
		apperrors.UnknownError(ctx.Ctx, err)
		return
	}
	if !deleted {
		apperrors.NotFoundError(ctx.Ctx, "Account does not exist")
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "Account deleted", nil, nil, nil)
}
