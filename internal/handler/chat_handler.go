package handler

import (
	"net/http"

	"nexora-chat/internal/services"
	"nexora-chat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	responder
	service *services.UserService
}

func NewChatHandler(service *services.UserService, debug bool) *ChatHandler {
	return &ChatHandler{responder: responder{debug: debug}, service: service}
}

func (h *ChatHandler) Append(c *gin.Context) {
	var req httpdto.AppendChatRequest
	if !h.bindJSON(c, &req) {
		return
	}

	entry, err := h.service.AppendChat(c.Request.Context(), c.Param("userId"), req.Role, req.Content)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.AppendChatResponse{
		Success:   true,
		MessageID: entry.ID.String(),
		Timestamp: httpdto.FormatTime(entry.Timestamp),
	})
}

func (h *ChatHandler) List(c *gin.Context) {
	chats, err := h.service.ListChats(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.ChatHistoryResponse{
		Success: true,
		Chats:   httpdto.FromChatEntrySlice(chats),
		Count:   len(chats),
	})
}

func (h *ChatHandler) Clear(c *gin.Context) {
	if err := h.service.ClearChats(c.Request.Context(), c.Param("userId")); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.MessageResponse{Success: true, Message: "Chat history cleared"})
}
