package account_usecases

import (
	"context"
	"errors"

	apperrors "atmsecurity.io/application/appErrors"
	"atmsecurity.io/application/controller/dto"
	"atmsecurity.io/application/repository"
	"atmsecurity.io/application/utils"
	"atmsecurity.io/entities"
	"atmsecurity.io/infrastructure/database/repository/mongo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const accountNumberAttempts = 5

var ErrAccountExists = errors.New("user already has an account")

// CreateAccountUseCase opens the single account a user may hold.
func CreateAccountUseCase(ctx any, reqCtx context.Context, payload *dto.CreateAccountDTO) (*entities.Account, error) {
	user, err := repository.UserRepo().FindByID(reqCtx, payload.UserID)
	if err != nil {
		apperrors.UnknownError(ctx, err)
		return nil, err
	}
	if user == nil {
		apperrors.NotFoundError(ctx, "User does not exist")
		return nil, errors.New("user does not exist")
	}

	balance, err := ParseAmount(payload.Balance)
	if err != nil {
		apperrors.ClientError(ctx, "Invalid balance", []error{err}, nil)
		return nil, err
	}

	accountRepo := repository.AccountRepo()
	for attempt := 0; attempt < accountNumberAttempts; attempt++ {
		accountNumber, err := utils.GenerateAccountNumber()
		if err != nil {
			apperrors.FatalServerError(ctx, err)
			return nil, err
		}
		account, err := accountRepo.CreateOne(reqCtx, entities.Account{
			UserID:        user.ID,
			AccountNumber: accountNumber,
			Balance:       balance,
		})
		if err == nil {
			return account, nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			apperrors.UnknownError(ctx, err)
			return nil, err
		}
		existing, findErr := accountRepo.CountDocs(reqCtx, map[string]any{"userID": user.ID})
		if findErr == nil && existing != 0 {
			apperrors.EntityAlreadyExistsError(ctx, "User already has an account")
			return nil, ErrAccountExists
		}
		// account number collision, try another
	}
	err = errors.New("could not allocate a unique account number")
	apperrors.FatalServerError(ctx, err)
	return nil, err
}

// ParseAmount converts a validated decimal string to Decimal128. An empty
// string is zero.
func ParseAmount(amount string) (primitive.Decimal128, error) {
	if amount == "" {
		amount = "0"
	}
	return primitive.ParseDecimal128(amount)
}
