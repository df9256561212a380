package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/tranvuminh/papermind-be/service"
)

type SummaryHandler struct {
	chat *service.ChatService
}

func NewSummaryHandler(chat *service.ChatService) *SummaryHandler {
	return &SummaryHandler{
		chat: chat,
	}
}

func (h *SummaryHandler) HandleSummary(c *gin.Context) {
	resp, err := h.chat.Summarize(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, resp)
}
