package entities

import (
	"errors"
	"time"

	"atmsecurity.io/application/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TransactionType string

const (
	Deposit     TransactionType = "deposit"
	Withdrawal  TransactionType = "withdrawal"
	Transfer    TransactionType = "transfer"
	BillPayment TransactionType = "bill_payment"
)

var TransactionTypes = []string{string(Deposit), string(Withdrawal), string(Transfer), string(BillPayment)}

// Transaction is a record of an account movement. Balances are not
// recomputed from transactions.
type Transaction struct {
	AccountID string               `bson:"accountID" json:"accountID"`
	Type      TransactionType      `bson:"type" json:"type"`
	Amount    primitive.Decimal128 `bson:"amount" json:"amount"`
	Timestamp time.Time            `bson:"timestamp" json:"timestamp"`

	// withdrawal
	ATMLocation *string `bson:"atmLocation,omitempty" json:"atmLocation,omitempty"`
	// deposit
	Source *string `bson:"source,omitempty" json:"source,omitempty"`
	// transfer
	RecipientAccountID *string `bson:"recipientAccountID,omitempty" json:"recipientAccountID,omitempty"`
	Note               *string `bson:"note,omitempty" json:"note,omitempty"`
	// bill payment
	BillerName    *string `bson:"billerName,omitempty" json:"billerName,omitempty"`
	BillerAccount *string `bson:"billerAccount,omitempty" json:"billerAccount,omitempty"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (model Transaction) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		if model.ID == "" {
			model.ID = utils.GenerateUULDString()
		}
	}
	if model.Timestamp.IsZero() {
		model.Timestamp = now
	}
	model.UpdatedAt = now
	return &model
}

func empty(value *string) bool {
	return value == nil || *value == ""
}

// ValidateDetails checks that the fields required by the transaction type
// are present.
func (model Transaction) ValidateDetails() error {
	switch model.Type {
	case Deposit:
		if empty(model.Source) {
			return errors.New("deposits require a source")
		}
	case Withdrawal:
		if empty(model.ATMLocation) {
			return errors.New("withdrawals require an atm location")
		}
	case Transfer:
		if empty(model.RecipientAccountID) {
			return errors.New("transfers require a recipient account")
		}
		if *model.RecipientAccountID == model.AccountID {
			return errors.New("cannot transfer to the same account")
		}
	case BillPayment:
		if empty(model.BillerName) || empty(model.BillerAccount) {
			return errors.New("bill payments require a biller name and biller account")
		}
	default:
		return errors.New("unknown transaction type")
	}
	return nil
}
