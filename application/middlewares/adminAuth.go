package middlewares

import (
	apperrors "atmsecurity.io/application/appErrors"
	"atmsecurity.io/application/interfaces"
	"atmsecurity.io/infrastructure/cryptography"
	"atmsecurity.io/infrastructure/logger"
)

// AdminAuthenticationMiddleware guards bulk and maintenance endpoints with
// the shared admin api key.
func AdminAuthenticationMiddleware(ctx *interfaces.ApplicationContext[any], adminAPIKey string) (*interfaces.ApplicationContext[any], bool) {
	if adminAPIKey == "" {
		logger.Warning("admin endpoint called but ADMIN_API_KEY is not configured", logger.LoggerOptions{
			Key:  "requestID",
			Data: ctx.RequestID,
		})
		apperrors.AuthenticationError(ctx.Ctx, "admin access is disabled")
		return nil, false
	}
	apiKey := ctx.GetHeader("X-Api-Key")
	if apiKey == nil {
		apperrors.AuthenticationError(ctx.Ctx, "provide an api key")
		return nil, false
	}
	if !cryptography.SecureCompare(*apiKey, adminAPIKey) {
		apperrors.AuthenticationError(ctx.Ctx, "invalid credentials")
		return nil, false
	}
	ctx.SetContextData("Admin", "true")
	return ctx, true
}
