package transaction_usecases

import (
	"context"
	"errors"

	apperrors "atmsecurity.io/application/appErrors"
	"atmsecurity.io/application/controller/dto"
	"atmsecurity.io/application/repository"
	account_usecases "atmsecurity.io/application/usecases/account"
	"atmsecurity.io/entities"
)

// BuildTransaction turns a request into a transaction record and checks the
// fields its type requires.
func BuildTransaction(payload *dto.CreateTransactionDTO) (*entities.Transaction, error) {
	amount, err := account_usecases.ParseAmount(payload.Amount)
	if err != nil {
		return nil, err
	}
	trx := entities.Transaction{
		AccountID:          payload.AccountID,
		Type:               entities.TransactionType(payload.Type),
		Amount:             amount,
		ATMLocation:        payload.ATMLocation,
		Source:             payload.Source,
		RecipientAccountID: payload.RecipientAccountID,
		Note:               payload.Note,
		BillerName:         payload.BillerName,
		BillerAccount:      payload.BillerAccount,
	}
	if err := trx.ValidateDetails(); err != nil {
		return nil, err
	}
	return &trx, nil
}

// CreateTransactionUseCase records a transaction. Only the existence of the
// referenced accounts is checked; balances are not changed.
func CreateTransactionUseCase(ctx any, reqCtx context.Context, payload *dto.CreateTransactionDTO) (*entities.Transaction, error) {
	trx, err := BuildTransaction(payload)
	if err != nil {
		apperrors.ClientError(ctx, err.Error(), nil, nil)
		return nil, err
	}

	accountRepo := repository.AccountRepo()
	accountIDs := []string{trx.AccountID}
	if trx.RecipientAccountID != nil {
		accountIDs = append(accountIDs, *trx.RecipientAccountID)
	}
	for _, id := range accountIDs {
		count, err := accountRepo.CountDocs(reqCtx, map[string]any{"_id": id})
		if err != nil {
			apperrors.UnknownError(ctx, err)
			return nil, err
		}
		if count == 0 {
			apperrors.NotFoundError(ctx, "Account "+id+" does not exist")
			return nil, errors.New("account does not exist")
		}
	}

	created, err := repository.TransactionRepo().CreateOne(reqCtx, *trx)
	if err != nil {
		apperrors.UnknownError(ctx, err)
		return nil, err
	}
	return created, nil
}
