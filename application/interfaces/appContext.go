package interfaces

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ApplicationContext[T any] struct {
	Ctx       any
	Body      *T
	Keys      map[string]any
	Param     map[string]any
	Header    http.Header
	RequestID string
	UserAgent string
}

func (c *ApplicationContext[T]) GetStringContextData(key string) string {
	if c.Keys == nil {
		return ""
	}
	data, ok := c.Keys[key].(string)
	if !ok {
		return ""
	}
	return data
}

func (c *ApplicationContext[T]) SetContextData(key string, data any) {
	if c.Keys == nil {
		c.Keys = map[string]any{}
	}
	c.Keys[key] = data
}

func (c *ApplicationContext[T]) GetHeader(key string) *string {
	value := c.Header.Get(key)
	if value == "" {
		return nil
	}
	return &value
}

func (c *ApplicationContext[T]) GetStringParameter(key string) string {
	if c.Param == nil {
		return ""
	}
	data, ok := c.Param[key].(string)
	if !ok {
		return ""
	}
	return data
}

// Context returns the request context when Ctx is a gin context so
// cancellation reaches the database and the face models.
func (c *ApplicationContext[T]) Context() context.Context {
	if ginCtx, ok := c.Ctx.(*gin.Context); ok && ginCtx.Request != nil {
		return ginCtx.Request.Context()
	}
	return context.Background()
}
