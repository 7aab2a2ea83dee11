package controller

import (
	"net/http"

	apperrors "atmsecurity.io/application/appErrors"
	"atmsecurity.io/application/constants"
	"atmsecurity.io/application/controller/dto"
	"atmsecurity.io/application/interfaces"
	"atmsecurity.io/application/repository"
	transaction_usecases "atmsecurity.io/application/usecases/transaction"
	server_response "atmsecurity.io/infrastructure/serverResponse"
	"atmsecurity.io/infrastructure/validator"
	"go.mongodb.org/mongo-driver/bson"
)

func CreateTransaction(ctx *interfaces.ApplicationContext[dto.CreateTransactionDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	trx, err := transaction_usecases.CreateTransactionUseCase(ctx.Ctx, ctx.Context(), ctx.Body)
	if err != nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "Transaction recorded", trx, nil, nil)
}

// TransactionListFilter builds the mongo filter for transaction lists.
func TransactionListFilter(query *dto.ListTransactionsQuery) bson.M {
	filter := bson.M{}
	if query.AccountID != "" {
		filter["accountID"] = query.AccountID
	}
	if query.Type != "" {
		filter["type"] = query.Type
	}
	return filter
}

func ListTransactions(ctx *interfaces.ApplicationContext[dto.ListTransactionsQuery]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	page, pageSize := pageParams(ctx.Body.Page, ctx.Body.PageSize, constants.DEFAULT_PAGE_SIZE, constants.MAX_PAGE_SIZE)
	transactions, err := repository.TransactionRepo().FindManyPaginated(ctx.Context(), TransactionListFilter(ctx.Body), page, pageSize,
		bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}})
	if err != nil {
		apperrors.UnknownError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "Transactions fetched", transactions, nil, nil)
}

func FetchTransaction(ctx *interfaces.ApplicationContext[any]) {
	trx, err := repository.TransactionRepo().FindByID(ctx.Context(), ctx.GetStringParameter("id"))
	if err != nil {
		apperrors.UnknownError(ctx.Ctx, err)
		return
	}
	if trx == nil {
		apperrors.NotFoundError(ctx.Ctx, "Transaction does not exist")
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "Transaction fetched", trx, nil, nil)
}

func DeleteTransaction(ctx *interfaces.ApplicationContext[any]) {
	deleted, err := repository.TransactionRepo().DeleteByID(ctx.Context(), ctx.GetStringParameter("id"))
	if err != nil {
		apperrors.UnknownError(ctx.Ctx, err)
		return
	}
	if deleted == 0 {
		apperrors.NotFoundError(ctx.Ctx, "Transaction does not exist")
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "Transaction deleted", nil, nil, nil)
}
