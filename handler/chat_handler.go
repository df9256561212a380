package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tranvuminh/papermind-be/service"
	"github.com/tranvuminh/papermind-be/types"
)

type ChatHandler struct {
	chat *service.ChatService
}

func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{
		chat: chat,
	}
}

func (h *ChatHandler) HandleChat(c *gin.Context) {
	var req types.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Question is required",
		})
		return
	}

	resp, err := h.chat.Ask(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, resp)
}
