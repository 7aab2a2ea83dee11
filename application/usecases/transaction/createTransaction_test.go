package transaction_usecases

import (
	"testing"

	"atmsecurity.io/application/controller/dto"
	"atmsecurity.io/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(value string) *string {
	return &value
}

func TestBuildTransaction(t *testing.T) {
	trx, err := BuildTransaction(&dto.CreateTransactionDTO{AccountID: "01A", Type: "withdrawal", Amount: "120.50", ATMLocation: str("Library")})
	require.NoError(t, err)
	assert.Equal(t, entities.Withdrawal, trx.Type)
	assert.Equal(t, "120.50", trx.Amount.String())
	assert.Equal(t, "Library", *trx.ATMLocation)

	_, err = BuildTransaction(&dto.CreateTransactionDTO{AccountID: "01A", Type: "transfer", Amount: "5", RecipientAccountID: str("01A")})
	assert.Error(t, err)

	_, err = BuildTransaction(&dto.CreateTransactionDTO{AccountID: "01A", Type: "deposit", Amount: "not money", Source: str("cash")})
	assert.Error(t, err)
}
