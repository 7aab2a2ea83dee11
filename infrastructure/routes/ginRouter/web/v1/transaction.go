package routev1

import (
	apperrors "atmsecurity.io/application/appErrors"
	"atmsecurity.io/application/controller"
	"atmsecurity.io/application/controller/dto"
	"atmsecurity.io/entities"
	"github.com/gin-gonic/gin"
)

// transactionHandlers returns the list and create handlers. A non-empty
// fixedType pins the transaction type for the typed endpoints.
func transactionHandlers(fixedType entities.TransactionType) (gin.HandlerFunc, gin.HandlerFunc) {
	list := func(ctx *gin.Context) {
		var query dto.ListTransactionsQuery
		if err := ctx.ShouldBindQuery(&query); err != nil {
			apperrors.ErrorProcessingPayload(ctx)
			return
		}
		if fixedType != "" {
			query.Type = string(fixedType)
		}
		controller.ListTransactions(appContext(ctx, &query))
	}
	create := func(ctx *gin.Context) {
		var body dto.CreateTransactionDTO
		if err := ctx.ShouldBindJSON(&body); err != nil {
			apperrors.ErrorProcessingPayload(ctx)
			return
		}
		if fixedType != "" {
			body.Type = string(fixedType)
		}
		controller.CreateTransaction(appContext(ctx, &body))
	}
	return list, create
}

func TransactionRouter(router *gin.RouterGroup) {
	transactionRouter := router.Group("/transactions")
	{
		list, create := transactionHandlers("")
		transactionRouter.GET("", list)
		transactionRouter.POST("", create)

		transactionRouter.GET("/:id", func(ctx *gin.Context) {
			controller.FetchTransaction(appContext[any](ctx, nil))
		})

		transactionRouter.DELETE("/:id", func(ctx *gin.Context) {
			controller.DeleteTransaction(appContext[any](ctx, nil))
		})
	}

	typed := map[string]entities.TransactionType{
		"/withdrawals":   entities.Withdrawal,
		"/deposits":      entities.Deposit,
		"/transfers":     entities.Transfer,
		"/bill-payments": entities.BillPayment,
	}
	for path, trxType := range typed {
		list, create := transactionHandlers(trxType)
		group := router.Group(path)
		group.GET("", list)
		group.POST("", create)
	}
}
