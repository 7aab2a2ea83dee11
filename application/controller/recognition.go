package controller

import (
	"errors"
	"net/http"

	apperrors "atmsecurity.io/application/appErrors"
	"atmsecurity.io/application/controller/dto"
	"atmsecurity.io/application/interfaces"
	"atmsecurity.io/application/services/recognition"
	"atmsecurity.io/infrastructure/env"
	server_response "atmsecurity.io/infrastructure/serverResponse"
)

func faceUpload(ctx *interfaces.ApplicationContext[dto.FaceUploadDTO]) (*dto.ImageUpload, bool) {
	upload, err := readImageUpload(ctx.Body.Image, env.Settings.MaxUploadBytes)
	switch {
	case err == nil:
		return upload, true
	case errors.Is(err, ErrNoImage):
		apperrors.ClientError(ctx.Ctx, "No image file provided", nil, nil)
	case errors.Is(err, ErrUploadTooLarge):
		apperrors.PayloadTooLarge(ctx.Ctx, env.Settings.MaxUploadBytes)
	default:
		apperrors.ErrorProcessingPayload(ctx.Ctx)
	}
	return nil, false
}

// RecognizeFace identifies the customer standing at the ATM.
func RecognizeFace(ctx *interfaces.ApplicationContext[dto.FaceUploadDTO]) {
	upload, ok := faceUpload(ctx)
	if !ok {
		return
	}
	outcome, err := recognition.RecognitionService.Recognize(ctx.Context(), upload.Data, upload.Ext)
	if err != nil {
		apperrors.FaceError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "Face recognized successfully", dto.RecognitionResponse{
		UserID:     outcome.IdentityID,
		Username:   outcome.Username,
		Email:      outcome.Email,
		Name:       outcome.DisplayName,
		Distance:   outcome.Distance,
		Confidence: outcome.Confidence,
	}, nil, nil)
}

// CheckEnrollment tells an enrolment desk whether a photo can be used as a
// reference image before the registration is submitted.
func CheckEnrollment(ctx *interfaces.ApplicationContext[dto.FaceUploadDTO]) {
	upload, ok := faceUpload(ctx)
	if !ok {
		return
	}
	descriptor, err := recognition.RecognitionService.Enroll(ctx.Context(), upload.Data, upload.Ext)
	if err != nil {
		apperrors.FaceError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "Image is suitable for enrollment", dto.EnrollmentResponse{
		DescriptorSize: len(descriptor),
	}, nil, nil)
}

// UpdateUserFace replaces a user's reference image and descriptor.
func UpdateUserFace(ctx *interfaces.ApplicationContext[dto.FaceUploadDTO]) {
	upload, ok := faceUpload(ctx)
	if !ok {
		return
	}
	userID := ctx.GetStringParameter("id")
	key, err := recognition.RecognitionService.UpdateReferenceImage(ctx.Context(), userID, upload.Data, upload.Ext)
	switch {
	case err == nil:
	case errors.Is(err, recognition.ErrUserNotFound):
		apperrors.NotFoundError(ctx.Ctx, "User does not exist")
		return
	case errors.Is(err, recognition.ErrReferenceImageChanged):
		server_response.Responder.Respond(ctx.Ctx, http.StatusConflict, "The reference image was replaced by another request", nil, nil, nil)
		return
	case errors.Is(err, recognition.ErrStorage):
		apperrors.ExternalDependencyError(ctx.Ctx, "file store", "500", err)
		return
	default:
		apperrors.FaceError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "Reference image updated", dto.ReferenceImageResponse{
		UserID:         userID,
		RegisteredFace: *key,
	}, nil, nil)
}
