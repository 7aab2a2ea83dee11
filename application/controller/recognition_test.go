package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"atmsecurity.io/application/controller/dto"
	"atmsecurity.io/application/interfaces"
	"atmsecurity.io/application/services/recognition"
	"atmsecurity.io/infrastructure/biometric"
	"atmsecurity.io/infrastructure/biometric/types"
	"atmsecurity.io/infrastructure/env"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFaceService struct {
	outcome *recognition.Outcome
	key     *string
	err     error
	gotData []byte
	gotExt  string
	gotUser string
}

func (f *fakeFaceService) Recognize(ctx context.Context, data []byte, ext string) (*recognition.Outcome, error) {
	f.gotData, f.gotExt = data, ext
	return f.outcome, f.err
}

func (f *fakeFaceService) Enroll(ctx context.Context, data []byte, ext string) (types.Descriptor, error) {
	f.gotData, f.gotExt = data, ext
	if f.err != nil {
		return nil, f.err
	}
	return make(types.Descriptor, types.DescriptorSize), nil
}

func (f *fakeFaceService) UpdateReferenceImage(ctx context.Context, userID string, data []byte, ext string) (*string, error) {
	f.gotData, f.gotExt, f.gotUser = data, ext, userID
	return f.key, f.err
}

func (f *fakeFaceService) RefreshDescriptor(ctx context.Context, userID string) error {
	return f.err
}

func useFaceService(t *testing.T, service recognition.FaceService) {
	t.Helper()
	previousService, previousSettings := recognition.RecognitionService, env.Settings
	recognition.RecognitionService = service
	env.Settings = &env.Config{MaxUploadBytes: 1024}
	t.Cleanup(func() {
		recognition.RecognitionService = previousService
		env.Settings = previousSettings
	})
}

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handle := func(controller func(*interfaces.ApplicationContext[dto.FaceUploadDTO])) gin.HandlerFunc {
		return func(ctx *gin.Context) {
			var body dto.FaceUploadDTO
			body.Image, _ = ctx.FormFile("image")
			controller(&interfaces.ApplicationContext[dto.FaceUploadDTO]{
				Ctx:   ctx,
				Body:  &body,
				Param: map[string]any{"id": ctx.Param("id")},
			})
		}
	}
	router.POST("/recognize", handle(RecognizeFace))
	router.POST("/enroll", handle(CheckEnrollment))
	router.PUT("/users/:id/face", handle(UpdateUserFace))
	return router
}

func multipartRequest(t *testing.T, method string, target string, field string, filename string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if field != "" {
		part, err := writer.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	} else {
		require.NoError(t, writer.WriteField("note", "no file"))
	}
	require.NoError(t, writer.Close())
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRecognizeFace(t *testing.T) {
	service := &fakeFaceService{outcome: &recognition.Outcome{
		Kind:        recognition.KindSuccess,
		IdentityID:  "01A",
		DisplayName: "Ada Lovelace",
		Email:       "ada@example.com",
		Username:    "ada",
		Distance:    0.32,
		Confidence:  0.68,
	}}
	useFaceService(t, service)

	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, multipartRequest(t, http.MethodPost, "/recognize", "image", "capture.JPG", []byte("jpeg bytes")))

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Face recognized successfully", body["message"])
	assert.Equal(t, map[string]any{
		"user_id":    "01A",
		"username":   "ada",
		"email":      "ada@example.com",
		"name":       "Ada Lovelace",
		"distance":   0.32,
		"confidence": 0.68,
	}, body["body"])
	assert.Equal(t, []byte("jpeg bytes"), service.gotData)
	assert.Equal(t, ".JPG", service.gotExt)
}

func TestRecognizeFaceErrors(t *testing.T) {
	tests := []struct {
		name        string
		field       string
		data        []byte
		serviceErr  error
		wantStatus  int
		wantMessage string
	}{
		{name: "missing file", field: "", wantStatus: http.StatusBadRequest, wantMessage: "No image file provided"},
		{name: "file too large", field: "image", data: bytes.Repeat([]byte("a"), 2048), wantStatus: http.StatusRequestEntityTooLarge},
		{name: "no face", field: "image", data: []byte("x"), serviceErr: biometric.ErrNoFaceDetected, wantStatus: http.StatusBadRequest, wantMessage: "No face detected in the uploaded image"},
		{name: "no match", field: "image", data: []byte("x"), serviceErr: biometric.ErrNoMatch, wantStatus: http.StatusNotFound, wantMessage: "Face does not match any registered profiles"},
		{name: "internal", field: "image", data: []byte("x"), serviceErr: biometric.ErrInternal, wantStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useFaceService(t, &fakeFaceService{err: tt.serviceErr})
			w := httptest.NewRecorder()
			testRouter().ServeHTTP(w, multipartRequest(t, http.MethodPost, "/recognize", tt.field, "capture.png", tt.data))

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, decode(t, w)["message"])
			}
		})
	}
}

func TestCheckEnrollmentRejectsGroupPhoto(t *testing.T) {
	useFaceService(t, &fakeFaceService{err: biometric.ErrAmbiguousFace})
	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, multipartRequest(t, http.MethodPost, "/enroll", "image", "group.png", []byte("x")))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, float64(4121), decode(t, w)["response_code"])
}

func TestUpdateUserFace(t *testing.T) {
	key := "faces/01A/new.png"
	service := &fakeFaceService{key: &key}
	useFaceService(t, service)

	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, multipartRequest(t, http.MethodPut, "/users/01A/face", "image", "me.png", []byte("x")))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "01A", service.gotUser)
	assert.Equal(t, map[string]any{"user_id": "01A", "registered_face": key}, decode(t, w)["body"])

	useFaceService(t, &fakeFaceService{err: recognition.ErrUserNotFound})
	w = httptest.NewRecorder()
	testRouter().ServeHTTP(w, multipartRequest(t, http.MethodPut, "/users/nobody/face", "image", "me.png", []byte("x")))
	assert.Equal(t, http.StatusNotFound, w.Code)

	useFaceService(t, &fakeFaceService{err: recognition.ErrStorage})
	w = httptest.NewRecorder()
	testRouter().ServeHTTP(w, multipartRequest(t, http.MethodPut, "/users/01A/face", "image", "me.png", []byte("x")))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	useFaceService(t, &fakeFaceService{err: recognition.ErrReferenceImageChanged})
	w = httptest.NewRecorder()
	testRouter().ServeHTTP(w, multipartRequest(t, http.MethodPut, "/users/01A/face", "image", "me.png", []byte("x")))
	assert.Equal(t, http.StatusConflict, w.Code)
}
