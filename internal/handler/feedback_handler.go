package handler

import (
	"net/http"

	"nexora-chat/internal/services"
	"nexora-chat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	responder
	service *services.UserService
}

func NewFeedbackHandler(service *services.UserService, debug bool) *FeedbackHandler {
	return &FeedbackHandler{responder: responder{debug: debug}, service: service}
}

func (h *FeedbackHandler) Append(c *gin.Context) {
	var req httpdto.AppendFeedbackRequest
	if !h.bindJSON(c, &req) {
		return
	}

	entry, err := h.service.AppendFeedback(c.Request.Context(), c.Param("userId"), req.Rating, req.Comment)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.AppendFeedbackResponse{
		Success:  true,
		Feedback: httpdto.FromFeedbackEntry(entry),
	})
}

// List returns feedback newest first.
func (h *FeedbackHandler) List(c *gin.Context) {
	feedback, err := h.service.ListFeedback(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.FeedbackListResponse{
		Success:  true,
		Feedback: httpdto.FromFeedbackEntrySlice(feedback),
		Count:    len(feedback),
	})
}
