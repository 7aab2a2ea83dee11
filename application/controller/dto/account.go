package dto

type CreateAccountDTO struct {
	UserID  string `json:"user_id" validate:"required"`
	Balance string `json:"balance" validate:"omitempty,decimal_amount"`
}

type ListAccountsQuery struct {
	UserID   string `form:"user_id"`
	Page     int64  `form:"page" validate:"omitempty,min=1"`
	PageSize int64  `form:"page_size" validate:"omitempty,min=1"`
}
