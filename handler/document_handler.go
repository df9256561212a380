package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/tranvuminh/papermind-be/service"
	"github.com/tranvuminh/papermind-be/types"
)

// DocumentHandler reports the currently loaded document.
type DocumentHandler struct {
	sessions *service.SessionService
}

func NewDocumentHandler(sessions *service.SessionService) *DocumentHandler {
	return &DocumentHandler{
		sessions: sessions,
	}
}

func (h *DocumentHandler) HandleDocumentInfo(c *gin.Context) {
	session, err := h.sessions.Current()
	if err != nil {
		respondError(c, err)
		return
	}
	_, hasSummary := h.sessions.CachedSummary()
	respondData(c, types.DocumentInfoResponse{
		DocumentID: session.Document.ID,
		FileName:   session.Document.FileName,
		Format:     session.Document.Format,
		ChunkCount: len(session.Chunks),
		HasSummary: hasSummary,
	})
}
