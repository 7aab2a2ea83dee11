package routev1

import (
	"github.com/gin-gonic/gin"

	"atmsecurity.io/application/interfaces"
)

// appContext copies the request scoped values set by the request context
// middleware into a context for a controller with body type T.
func appContext[T any](ctx *gin.Context, body *T) *interfaces.ApplicationContext[T] {
	saved := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
	params := map[string]any{}
	for _, param := range ctx.Params {
		params[param.Key] = param.Value
	}
	return &interfaces.ApplicationContext[T]{
		Ctx:       ctx,
		Body:      body,
		Keys:      saved.Keys,
		Param:     params,
		Header:    ctx.Request.Header,
		RequestID: saved.RequestID,
		UserAgent: saved.UserAgent,
	}
}
