package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tranvuminh/papermind-be/service"
	"github.com/tranvuminh/papermind-be/types"
)

type GenerateHandler struct {
	papers *service.PaperService
}

func NewGenerateHandler(papers *service.PaperService) *GenerateHandler {
	return &GenerateHandler{
		papers: papers,
	}
}

func (h *GenerateHandler) HandleGenerate(c *gin.Context) {
	var req types.GeneratePaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}
	if !req.PaperType.Valid() {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid paper type: expected research, survey, methodology or case_study",
		})
		return
	}

	resp, err := h.papers.Generate(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, resp)
}
