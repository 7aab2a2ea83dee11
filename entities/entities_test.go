package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func str(value string) *string {
	return &value
}

func TestUserParseModel(t *testing.T) {
	parsed := User{Email: "Ada@Example.COM", FirstName: "Ada"}.ParseModel().(*User)
	assert.NotEmpty(t, parsed.ID)
	assert.Equal(t, "ada@example.com", parsed.Email)
	assert.Equal(t, RoleStudent, parsed.Role)
	assert.False(t, parsed.CreatedAt.IsZero())

	created := parsed.CreatedAt
	time.Sleep(time.Millisecond)
	reparsed := parsed.ParseModel().(*User)
	assert.Equal(t, parsed.ID, reparsed.ID)
	assert.Equal(t, created, reparsed.CreatedAt)
	assert.True(t, reparsed.UpdatedAt.After(created))
}

func TestUserFullName(t *testing.T) {
	tests := []struct {
		first, last, want string
	}{
		{first: "Ada", last: "Lovelace", want: "Ada Lovelace"},
		{first: "Ada", last: "", want: "Ada"},
		{first: "", last: "Lovelace", want: "Lovelace"},
		{first: " ", last: " ", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, User{FirstName: tt.first, LastName: tt.last}.FullName())
	}
}

func TestTransactionValidateDetails(t *testing.T) {
	tests := []struct {
		name    string
		trx     Transaction
		wantErr bool
	}{
		{name: "deposit with source", trx: Transaction{Type: Deposit, Source: str("cash")}},
		{name: "deposit without source", trx: Transaction{Type: Deposit}, wantErr: true},
		{name: "withdrawal with location", trx: Transaction{Type: Withdrawal, ATMLocation: str("Main hall")}},
		{name: "withdrawal with empty location", trx: Transaction{Type: Withdrawal, ATMLocation: str("")}, wantErr: true},
		{name: "transfer", trx: Transaction{Type: Transfer, AccountID: "a", RecipientAccountID: str("b")}},
		{name: "transfer to self", trx: Transaction{Type: Transfer, AccountID: "a", RecipientAccountID: str("a")}, wantErr: true},
		{name: "transfer without recipient", trx: Transaction{Type: Transfer, AccountID: "a"}, wantErr: true},
		{name: "bill payment", trx: Transaction{Type: BillPayment, BillerName: str("power"), BillerAccount: str("123")}},
		{name: "bill payment missing account", trx: Transaction{Type: BillPayment, BillerName: str("power")}, wantErr: true},
		{name: "unknown type", trx: Transaction{Type: "refund"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.trx.ValidateDetails()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransactionParseModelStampsTimestamp(t *testing.T) {
	parsed := Transaction{Type: Deposit}.ParseModel().(*Transaction)
	assert.NotEmpty(t, parsed.ID)
	assert.False(t, parsed.Timestamp.IsZero())

	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	parsed = Transaction{Type: Deposit, Timestamp: at}.ParseModel().(*Transaction)
	assert.Equal(t, at, parsed.Timestamp)
}
