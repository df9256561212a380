package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tranvuminh/papermind-be/service"
	"github.com/tranvuminh/papermind-be/types"
)

func newDocumentRouter() (*gin.Engine, *service.SessionService) {
	gin.SetMode(gin.TestMode)

	sessions := service.NewSessionService(zap.NewNop())
	h := NewDocumentHandler(sessions)

	router := gin.New()
	router.GET("/api/v1/document", h.HandleDocumentInfo)
	return router, sessions
}

func TestHandleDocumentInfoWithoutDocument(t *testing.T) {
	router, _ := newDocumentRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/document", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleDocumentInfo(t *testing.T) {
	router, sessions := newDocumentRouter()
	sessions.Replace(
		&types.Document{ID: "doc-1", FileName: "paper.docx", Format: types.FormatDOCX},
		"text",
		[]types.DocumentChunk{{Index: 0, Content: "text", Start: 0, End: 4}},
	)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/document", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp types.DataResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "doc-1", data["document_id"])
	assert.Equal(t, "paper.docx", data["file_name"])
	assert.Equal(t, "docx", data["format"])
	assert.Equal(t, float64(1), data["chunk_count"])
	assert.Equal(t, false, data["has_summary"])
}
