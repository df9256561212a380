package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tranvuminh/papermind-be/service"
	"github.com/tranvuminh/papermind-be/types"
)

func newUploadRouter(maxBytes int64) (*gin.Engine, *service.SessionService) {
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	sessions := service.NewSessionService(logger)
	h := NewUploadHandler(
		service.NewExtractService(maxBytes, logger),
		service.NewChunkService(1000, 200),
		sessions,
		maxBytes,
	)

	router := gin.New()
	router.POST("/api/v1/upload", h.HandleUpload)
	return router, sessions
}

func multipartUpload(t *testing.T, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestHandleUploadText(t *testing.T) {
	router, sessions := newUploadRouter(1 << 20)
	body, contentType := multipartUpload(t, "paper.txt", []byte("An interesting result.\n"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp types.DataResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Status)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "paper.txt", data["original_name"])
	assert.Equal(t, "txt", data["format"])
	assert.Equal(t, float64(1), data["chunk_count"])
	assert.NotEmpty(t, data["document_id"])

	session, err := sessions.Current()
	require.NoError(t, err)
	assert.Equal(t, "An interesting result.", session.Text)
}

func TestHandleUploadReplacesPreviousDocument(t *testing.T) {
	router, sessions := newUploadRouter(1 << 20)

	for _, name := range []string{"first.txt", "second.txt"} {
		body, contentType := multipartUpload(t, name, []byte("content of "+name))
		req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	session, err := sessions.Current()
	require.NoError(t, err)
	assert.Equal(t, "second.txt", session.Document.FileName)
}

func TestHandleUploadRejectsOversizedFile(t *testing.T) {
	router, sessions := newUploadRouter(32)
	body, contentType := multipartUpload(t, "big.txt", []byte(strings.Repeat("a", 100)))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	_, err := sessions.Current()
	assert.ErrorIs(t, err, types.ErrNoDocument)
}

func TestHandleUploadRejectsUnsupportedFormat(t *testing.T) {
	router, _ := newUploadRouter(1 << 20)
	body, contentType := multipartUpload(t, "image.png", []byte{0x00, 0x01, 0x02, 0x00, 0xFF, 0x00})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleUploadMissingFile(t *testing.T) {
	router, _ := newUploadRouter(1 << 20)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
