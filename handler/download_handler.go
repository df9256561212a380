package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tranvuminh/papermind-be/service"
	"github.com/tranvuminh/papermind-be/types"
	"github.com/tranvuminh/papermind-be/utils"
)

// DownloadHandler renders the cached summary or a posted paper body as
// a DOCX byte stream.
type DownloadHandler struct {
	sessions *service.SessionService
	export   *service.ExportService
}

func NewDownloadHandler(sessions *service.SessionService, export *service.ExportService) *DownloadHandler {
	return &DownloadHandler{
		sessions: sessions,
		export:   export,
	}
}

func (h *DownloadHandler) HandleDownload(c *gin.Context) {
	var req types.DownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}

	var body, fileName string
	switch req.Content {
	case types.DownloadContentSummary:
		session, err := h.sessions.Current()
		if err != nil {
			respondError(c, err)
			return
		}
		summary, ok := h.sessions.CachedSummary()
		if !ok {
			respondError(c, fmt.Errorf("%w: no summary generated yet", types.ErrFormattingFailed))
			return
		}
		body = summary
		fileName = utils.FileNameWithoutExt(session.Document.FileName) + "_summary.docx"
	case types.DownloadContentPaper:
		body = req.Body
		fileName = "paper.docx"
		if req.FileName != "" {
			fileName = utils.FileNameWithoutExt(req.FileName) + ".docx"
		}
	default:
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid content: expected summary or paper",
		})
		return
	}

	stream, err := h.export.BuildDOCX(body)
	if err != nil {
		respondError(c, err)
		return
	}

	fileName = utils.SanitizeFileName(fileName)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fileName))
	c.Data(http.StatusOK, service.DOCXContentType, stream)
}
