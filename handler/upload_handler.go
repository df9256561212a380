package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tranvuminh/papermind-be/service"
	"github.com/tranvuminh/papermind-be/types"
)

// UploadHandler runs the ingestion pipeline: extract the uploaded file
// into normalized text, chunk it, and install it as the active session.
type UploadHandler struct {
	extract  *service.ExtractService
	chunks   *service.ChunkService
	sessions *service.SessionService
	maxBytes int64
}

func NewUploadHandler(
	extract *service.ExtractService,
	chunks *service.ChunkService,
	sessions *service.SessionService,
	maxBytes int64,
) *UploadHandler {
	return &UploadHandler{
		extract:  extract,
		chunks:   chunks,
		sessions: sessions,
		maxBytes: maxBytes,
	}
}

func (h *UploadHandler) HandleUpload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid file",
		})
		return
	}
	defer file.Close()

	// Reject oversized uploads before reading the body; extraction is
	// never attempted for them.
	if header.Size > h.maxBytes {
		respondError(c, fmt.Errorf("%w: %d bytes exceeds limit of %d", types.ErrFileTooLarge, header.Size, h.maxBytes))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Failed to read file",
		})
		return
	}

	doc, text, err := h.extract.Extract(header.Filename, data)
	if err != nil {
		respondError(c, err)
		return
	}

	chunks := h.chunks.Split(text)
	h.sessions.Replace(doc, text, chunks)

	respondData(c, types.UploadResponse{
		DocumentID:   doc.ID,
		OriginalName: doc.FileName,
		Format:       doc.Format,
		ChunkCount:   len(chunks),
	})
}
