package interfaces

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextData(t *testing.T) {
	appContext := ApplicationContext[any]{}
	assert.Equal(t, "", appContext.GetStringContextData("UserID"))

	appContext.SetContextData("UserID", "01HX")
	appContext.SetContextData("Count", 3)
	assert.Equal(t, "01HX", appContext.GetStringContextData("UserID"))
	assert.Equal(t, "", appContext.GetStringContextData("Count"))
}

func TestGetHeaderAndParameter(t *testing.T) {
	appContext := ApplicationContext[any]{
		Header: http.Header{"X-Request-Id": []string{"abc"}},
		Param:  map[string]any{"id": "42"},
	}
	require.NotNil(t, appContext.GetHeader("X-Request-Id"))
	assert.Equal(t, "abc", *appContext.GetHeader("X-Request-Id"))
	assert.Nil(t, appContext.GetHeader("X-Api-Key"))
	assert.Equal(t, "42", appContext.GetStringParameter("id"))
	assert.Equal(t, "", appContext.GetStringParameter("missing"))
}

type ctxKey struct{}

func TestContextFollowsRequest(t *testing.T) {
	assert.Equal(t, context.Background(), (&ApplicationContext[any]{}).Context())

	ginCtx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ginCtx.Request = httptest.NewRequest(http.MethodGet, "/", nil).WithContext(context.WithValue(context.Background(), ctxKey{}, "v"))
	appContext := ApplicationContext[any]{Ctx: ginCtx}
	assert.Equal(t, "v", appContext.Context().Value(ctxKey{}))
}
