package account_usecases

import (
	"context"

	"atmsecurity.io/application/repository"
	"atmsecurity.io/infrastructure/logger"
	"go.mongodb.org/mongo-driver/bson"
)

// DeleteAccountUseCase removes an account together with every transaction
// that debits or credits it. It reports false when the account does not exist.
func DeleteAccountUseCase(ctx context.Context, accountID string) (bool, error) {
	deleted, err := repository.AccountRepo().DeleteByID(ctx, accountID)
	if err != nil || deleted == 0 {
		return false, err
	}
	removed, err := repository.TransactionRepo().DeleteMany(ctx, TransactionsOfAccount(accountID))
	if err != nil {
		return true, err
	}
	logger.Info("account deleted", logger.LoggerOptions{
		Key:  "accountID",
		Data: accountID,
	}, logger.LoggerOptions{
		Key:  "transactionsRemoved",
		Data: removed,
	})
	return true, nil
}

// DeleteAccountsOfUserUseCase removes the account held by userID, if any.
func DeleteAccountsOfUserUseCase(ctx context.Context, userID string) error {
	account, err := repository.AccountRepo().FindOneByFilter(ctx, bson.M{"userID": userID})
	if err != nil || account == nil {
		return err
	}
	_, err = DeleteAccountUseCase(ctx, account.ID)
	return err
}

// TransactionsOfAccount matches transactions where accountID is either side.
func TransactionsOfAccount(accountID string) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"accountID": accountID},
		bson.M{"recipientAccountID": accountID},
	}}
}
