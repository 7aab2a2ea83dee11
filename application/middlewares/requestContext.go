package middlewares

import (
	"github.com/google/uuid"

	"atmsecurity.io/application/interfaces"
)

const RequestIDHeader = "X-Request-Id"

// RequestContextMiddleware tags the request with an id, reusing the one sent
// by the terminal when it is a valid uuid.
func RequestContextMiddleware(ctx *interfaces.ApplicationContext[any]) (*interfaces.ApplicationContext[any], bool) {
	requestID := ""
	if given := ctx.GetHeader(RequestIDHeader); given != nil {
		if parsed, err := uuid.Parse(*given); err == nil {
			requestID = parsed.String()
		}
	}
	if requestID == "" {
		requestID = uuid.NewString()
	}
	ctx.RequestID = requestID
	ctx.SetContextData("RequestID", requestID)
	return ctx, true
}
