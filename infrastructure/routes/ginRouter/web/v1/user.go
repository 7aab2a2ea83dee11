package routev1

import (
	apperrors "atmsecurity.io/application/appErrors"
	"atmsecurity.io/application/controller"
	"atmsecurity.io/application/controller/dto"
	middlewares "atmsecurity.io/infrastructure/middleware"
	"github.com/gin-gonic/gin"
)

func UserRouter(router *gin.RouterGroup) {
	userRouter := router.Group("/users")
	{
		userRouter.POST("", func(ctx *gin.Context) {
			var body dto.CreateUserDTO
			if err := ctx.ShouldBind(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.CreateUser(appContext(ctx, &body))
		})

		userRouter.GET("", func(ctx *gin.Context) {
			var query dto.ListUsersQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.ListUsers(appContext(ctx, &query))
		})

		userRouter.GET("/:id", func(ctx *gin.Context) {
			controller.FetchUser(appContext[any](ctx, nil))
		})

		userRouter.PATCH("/:id", func(ctx *gin.Context) {
			var body dto.UpdateUserDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.UpdateUser(appContext(ctx, &body))
		})

		userRouter.DELETE("/:id", func(ctx *gin.Context) {
			controller.DeleteUser(appContext[any](ctx, nil))
		})

		userRouter.PUT("/:id/face", func(ctx *gin.Context) {
			controller.UpdateUserFace(appContext(ctx, faceUploadBody(ctx)))
		})

		userRouter.POST("/mass-register", middlewares.AdminAuthenticationMiddleware(), func(ctx *gin.Context) {
			var body dto.MassRegisterDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.MassRegisterUsers(appContext(ctx, &body))
		})

		userRouter.POST("/face-descriptors/refresh", middlewares.AdminAuthenticationMiddleware(), func(ctx *gin.Context) {
			controller.BackfillDescriptors(appContext[any](ctx, nil))
		})

		userRouter.GET("/face-descriptors/refresh", middlewares.AdminAuthenticationMiddleware(), func(ctx *gin.Context) {
			controller.BackfillStatus(appContext[any](ctx, nil))
		})
	}
}
