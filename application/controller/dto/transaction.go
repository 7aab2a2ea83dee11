package dto

type CreateTransactionDTO struct {
	AccountID string `json:"account_id" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=deposit withdrawal transfer bill_payment"`
	Amount    string `json:"amount" validate:"required,decimal_amount"`

	ATMLocation        *string `json:"atm_location" validate:"omitempty,max=255"`
	Source             *string `json:"source" validate:"omitempty,max=100"`
	RecipientAccountID *string `json:"recipient_account_id"`
	Note               *string `json:"note" validate:"omitempty,max=255"`
	BillerName         *string `json:"biller_name" validate:"omitempty,max=100"`
	BillerAccount      *string `json:"biller_account" validate:"omitempty,max=50"`
}

type ListTransactionsQuery struct {
	AccountID string `form:"account_id"`
	Type      string `form:"type" validate:"omitempty,oneof=deposit withdrawal transfer bill_payment"`
	Page      int64  `form:"page" validate:"omitempty,min=1"`
	PageSize  int64  `form:"page_size" validate:"omitempty,min=1"`
}
