package controller

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestErrorAndMessageResponses(t *testing.T) {
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ErrorResponse(ctx, http.StatusNotFound, "USER_NOT_FOUND", "User not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, map[string]interface{}{
		"status":  "error",
		"code":    "USER_NOT_FOUND",
		"message": "User not found",
	}, decode(t, w))

	w = httptest.NewRecorder()
	ctx, _ = gin.CreateTestContext(w)
	MessageResponse(ctx, http.StatusCreated, "Created")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, map[string]interface{}{"status": "success", "message": "Created"}, decode(t, w))
}

func TestProfileImage(t *testing.T) {
	t.Run("json body has no image", func(t *testing.T) {
		ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
		ctx.Request = httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString(`{}`))
		ctx.Request.Header.Set("Content-Type", "application/json")

		img, err := ProfileImage(ctx)
		require.NoError(t, err)
		assert.Nil(t, img)
	})

	t.Run("multipart upload is read", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile(ProfileImageField, "me.png")
		require.NoError(t, err)
		_, _ = part.Write([]byte("png-bytes"))
		require.NoError(t, mw.Close())

		ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
		ctx.Request = httptest.NewRequest(http.MethodPost, "/register", &buf)
		ctx.Request.Header.Set("Content-Type", mw.FormDataContentType())

		img, err := ProfileImage(ctx)
		require.NoError(t, err)
		require.NotNil(t, img)
		assert.Equal(t, "me.png", img.Filename)
		assert.Equal(t, []byte("png-bytes"), img.Data)
	})
}

func TestClientInfoPrefersForwardedFor(t *testing.T) {
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	ctx.Request.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	info := ClientInfo(ctx)
	assert.Equal(t, "203.0.113.7", info.IPAddress)
}
