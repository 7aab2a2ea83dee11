package fileupload

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReferenceImageKey(t *testing.T) {
	assert.Equal(t, "faces/01USER/01VERSION.jpg", ReferenceImageKey("01USER", "01VERSION", ".JPG"))
	assert.Equal(t, "faces/01USER/v2.png", ReferenceImageKey("01USER", "v2", ".png"))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/png", ContentType(".PNG"))
	assert.Equal(t, "image/png", ContentType("png"))
	assert.Equal(t, "image/jpeg", ContentType(".jpg"))
	assert.Equal(t, "image/jpeg", ContentType(".jpeg"))
}
