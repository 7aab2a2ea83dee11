package apperrors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"atmsecurity.io/infrastructure/biometric"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFaceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name         string
		err          error
		wantStatus   int
		wantMessage  string
		wantRespCode float64
	}{
		{name: "unsupported extension", err: biometric.ErrUnsupportedExtension, wantStatus: http.StatusBadRequest, wantMessage: "Invalid image format. Only JPG, JPEG, PNG allowed.", wantRespCode: 4101},
		{name: "corrupt image", err: fmt.Errorf("%w: eof", biometric.ErrInvalidImage), wantStatus: http.StatusBadRequest, wantMessage: "Invalid or corrupted image", wantRespCode: 4101},
		{name: "no face", err: biometric.ErrNoFaceDetected, wantStatus: http.StatusBadRequest, wantMessage: "No face detected in the uploaded image", wantRespCode: 4111},
		{name: "two faces", err: biometric.ErrAmbiguousFace, wantStatus: http.StatusBadRequest, wantRespCode: 4121},
		{name: "encoding failed", err: biometric.ErrEncodingFailed, wantStatus: http.StatusBadRequest, wantMessage: "Face encoding extraction failed", wantRespCode: 4131},
		{name: "no match", err: biometric.ErrNoMatch, wantStatus: http.StatusNotFound, wantMessage: "Face does not match any registered profiles", wantRespCode: 4140},
		{name: "internal", err: fmt.Errorf("%w: dlib exploded", biometric.ErrInternal), wantStatus: http.StatusInternalServerError, wantMessage: genericServerMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(w)

			FaceError(ctx, tt.err)

			require.Equal(t, tt.wantStatus, w.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, body["message"])
			}
			if tt.wantRespCode != 0 {
				assert.Equal(t, tt.wantRespCode, body["response_code"])
			} else {
				assert.NotContains(t, body, "response_code")
				assert.NotContains(t, body["message"], "dlib")
			}
		})
	}
}

func TestValidationFailedErrorListsMessages(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	ValidationFailedError(ctx, &[]error{fmt.Errorf("Email is required")})

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []any{"Email is required"}, body["errors"])
}
