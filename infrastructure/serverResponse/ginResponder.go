package server_response

import (
	"github.com/gin-gonic/gin"

	"atmsecurity.io/infrastructure/env"
	"atmsecurity.io/infrastructure/logger"
)

// envelope is the shape of every json response the api sends.
type envelope struct {
	Message      string   `json:"message"`
	Body         any      `json:"body"`
	ResponseCode *uint    `json:"response_code,omitempty"`
	Errors       []string `json:"errors,omitempty"`
}

type ginResponder struct{}

func (gr ginResponder) Respond(ctx interface{}, code int, message string, payload interface{}, errs []error, response_code *uint) {
	ginCtx, ok := ctx.(*gin.Context)
	if !ok {
		logger.Error("responder was handed a context that is not *gin.Context", logger.LoggerOptions{
			Key:  "payload",
			Data: ctx,
		})
		return
	}
	ginCtx.Abort()

	response := envelope{
		Message:      message,
		Body:         payload,
		ResponseCode: response_code,
	}
	for _, err := range errs {
		response.Errors = append(response.Errors, err.Error())
	}
	if !env.Settings.IsProduction() {
		logger.Debug("response", logger.LoggerOptions{
			Key:  "message",
			Data: message,
		}, logger.LoggerOptions{
			Key:  "code",
			Data: code,
		}, logger.LoggerOptions{
			Key:  "errors",
			Data: response.Errors,
		})
	}
	ginCtx.JSON(code, response)
}
