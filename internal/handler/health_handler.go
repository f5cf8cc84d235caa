package handler

import (
	"context"
	"net/http"
	"time"

	"nexora-chat/internal/services"
	"nexora-chat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	service *services.UserService
}

func NewHealthHandler(service *services.UserService) *HealthHandler {
	return &HealthHandler{service: service}
}

// Check reports process liveness and whether the store answers a ping. It
// never reads user data.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	storage := httpdto.StorageDisconnected
	if h.service.StorageConnected(ctx) {
		storage = httpdto.StorageConnected
	}

	c.JSON(http.StatusOK, httpdto.HealthResponse{
		Status:    "ok",
		Timestamp: httpdto.FormatTime(time.Now()),
		Storage:   storage,
	})
}
