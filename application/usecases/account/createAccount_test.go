package account_usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestParseAmount(t *testing.T) {
	zero, err := ParseAmount("")
	require.NoError(t, err)
	assert.Equal(t, "0", zero.String())

	amount, err := ParseAmount("1050.25")
	require.NoError(t, err)
	assert.Equal(t, "1050.25", amount.String())

	_, err = ParseAmount("ten")
	assert.Error(t, err)
}

func TestTransactionsOfAccountMatchesBothSides(t *testing.T) {
	filter := TransactionsOfAccount("01ACC")
	sides, ok := filter["$or"].(bson.A)
	require.True(t, ok)
	assert.Equal(t, bson.A{
		bson.M{"accountID": "01ACC"},
		bson.M{"recipientAccountID": "01ACC"},
	}, sides)
}
