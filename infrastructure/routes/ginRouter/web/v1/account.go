package routev1

import (
	apperrors "atmsecurity.io/application/appErrors"
	"atmsecurity.io/application/controller"
	"atmsecurity.io/application/controller/dto"
	"github.com/gin-gonic/gin"
)

func AccountRouter(router *gin.RouterGroup) {
	accountRouter := router.Group("/accounts")
	{
		accountRouter.POST("", func(ctx *gin.Context) {
			var body dto.CreateAccountDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.CreateAccount(appContext(ctx, &body))
		})

		accountRouter.GET("", func(ctx *gin.Context) {
			var query dto.ListAccountsQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.ListAccounts(appContext(ctx, &query))
		})

		accountRouter.GET("/:id", func(ctx *gin.Context) {
			controller.FetchAccount(appContext[any](ctx, nil))
		})

		accountRouter.DELETE("/:id", func(ctx *gin.Context) {
			controller.DeleteAccount(appContext[any](ctx, nil))
		})
	}
}
