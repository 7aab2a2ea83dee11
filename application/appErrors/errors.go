package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"atmsecurity.io/application/constants"
	"atmsecurity.io/application/utils"
	"atmsecurity.io/infrastructure/biometric"
	"atmsecurity.io/infrastructure/logger"
	server_response "atmsecurity.io/infrastructure/serverResponse"
)

const genericServerMessage = "An unexpected error occurred. Please try again later."

func NotFoundError(ctx interface{}, message string) {
	server_response.Responder.Respond(ctx, http.StatusNotFound, message, nil, nil, nil)
}

func ValidationFailedError(ctx interface{}, errMessages *[]error) {
	server_response.Responder.Respond(ctx, http.StatusUnprocessableEntity, "Payload validation failed", nil, *errMessages, nil)
}

func EntityAlreadyExistsError(ctx interface{}, message string) {
	server_response.Responder.Respond(ctx, http.StatusConflict, message, nil, nil, utils.GetUIntPointer(constants.DUPLICATE_IDENTITY))
}

func AuthenticationError(ctx interface{}, message string) {
	server_response.Responder.Respond(ctx, http.StatusUnauthorized, message, nil, nil, nil)
}

func ExternalDependencyError(ctx interface{}, serviceName string, statusCode string, err error) {
	logger.Error(err.Error(), logger.LoggerOptions{
		Key: fmt.Sprintf("error with %s. status code %s", serviceName, statusCode),
	})
	server_response.Responder.Respond(ctx, http.StatusServiceUnavailable,
		"A dependency of this service is temporarily unavailable. Please try again later.", nil, nil, nil)
}

func ErrorProcessingPayload(ctx interface{}) {
	server_response.Responder.Respond(ctx, http.StatusBadRequest, "Abnormal payload passed", nil, nil, nil)
}

func FatalServerError(ctx interface{}, err error) {
	logger.Error("fatal server error", logger.LoggerOptions{
		Key:  "error",
		Data: err,
	})
	server_response.Responder.Respond(ctx, http.StatusInternalServerError, genericServerMessage, nil, nil, nil)
}

func UnknownError(ctx interface{}, err error) {
	logger.Error("unknown error", logger.LoggerOptions{
		Key:  "error",
		Data: err,
	})
	server_response.Responder.Respond(ctx, http.StatusInternalServerError, genericServerMessage, nil, nil, nil)
}

func ClientError(ctx interface{}, msg string, errs []error, responseCode *uint) {
	server_response.Responder.Respond(ctx, http.StatusBadRequest, msg, nil, errs, responseCode)
}

func PayloadTooLarge(ctx interface{}, limit int64) {
	server_response.Responder.Respond(ctx, http.StatusRequestEntityTooLarge,
		fmt.Sprintf("Uploaded file exceeds the %d byte limit", limit), nil, nil, utils.GetUIntPointer(constants.INVALID_IMAGE))
}

// FaceError sends the response for an error returned by the face pipeline.
// Client errors tell the terminal what to ask of the customer, a failed
// match is a 404 and anything else is logged and hidden behind a 500.
func FaceError(ctx interface{}, err error) {
	switch biometric.Kind(err) {
	case biometric.KindInvalidImage:
		message := "Invalid or corrupted image"
		if errors.Is(err, biometric.ErrUnsupportedExtension) {
			message = "Invalid image format. Only JPG, JPEG, PNG allowed."
		}
		ClientError(ctx, message, nil, utils.GetUIntPointer(constants.INVALID_IMAGE))
	case biometric.KindNoFaceDetected:
		ClientError(ctx, "No face detected in the uploaded image", nil, utils.GetUIntPointer(constants.NO_FACE_DETECTED))
	case biometric.KindAmbiguousFace:
		ClientError(ctx, "More than one face detected. Upload an image with only your face in it", nil, utils.GetUIntPointer(constants.AMBIGUOUS_FACE))
	case biometric.KindEncodingFailed:
		ClientError(ctx, "Face encoding extraction failed", nil, utils.GetUIntPointer(constants.ENCODING_FAILED))
	case biometric.KindNoMatch:
		server_response.Responder.Respond(ctx, http.StatusNotFound, "Face does not match any registered profiles", nil, nil, utils.GetUIntPointer(constants.NO_MATCH))
	default:
		FatalServerError(ctx, err)
	}
}
