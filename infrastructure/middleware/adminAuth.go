package middlewares

import (
	"atmsecurity.io/application/interfaces"
	"atmsecurity.io/application/middlewares"
	"atmsecurity.io/infrastructure/env"
	"github.com/gin-gonic/gin"
)

func AdminAuthenticationMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		savedCtx := (ctx.MustGet("AppContext")).(*interfaces.ApplicationContext[any])
		appContext, next := middlewares.AdminAuthenticationMiddleware(&interfaces.ApplicationContext[any]{
			Ctx:       ctx,
			Keys:      savedCtx.Keys,
			Header:    ctx.Request.Header,
			RequestID: savedCtx.RequestID,
			UserAgent: savedCtx.UserAgent,
		}, env.Settings.AdminAPIKey)
		if next {
			ctx.Set("AppContext", appContext)
			ctx.Next()
		}
	}
}
