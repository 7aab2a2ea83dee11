package middlewares

import (
	"time"

	"atmsecurity.io/application/interfaces"
	"atmsecurity.io/application/middlewares"
	"atmsecurity.io/infrastructure/logger"
	"github.com/gin-gonic/gin"
)

func RequestContextMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		appContext, next := middlewares.RequestContextMiddleware(&interfaces.ApplicationContext[any]{
			Ctx:       ctx,
			Keys:      ctx.Keys,
			Header:    ctx.Request.Header,
			UserAgent: ctx.Request.UserAgent(),
		})
		if !next {
			return
		}
		ctx.Header(middlewares.RequestIDHeader, appContext.RequestID)
		ctx.Set("AppContext", appContext)
		ctx.Next()
		logger.Info("request completed", logger.LoggerOptions{
			Key:  "requestID",
			Data: appContext.RequestID,
		}, logger.LoggerOptions{
			Key:  "method",
			Data: ctx.Request.Method,
		}, logger.LoggerOptions{
			Key:  "path",
			Data: ctx.Request.URL.Path,
		}, logger.LoggerOptions{
			Key:  "status",
			Data: ctx.Writer.Status(),
		}, logger.LoggerOptions{
			Key:  "latency",
			Data: time.Since(start).String(),
		})
	}
}
