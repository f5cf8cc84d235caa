package handler

import (
	"net/http"

	"nexora-chat/internal/services"
	"nexora-chat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	responder
	service *services.UserService
}

func NewUserHandler(service *services.UserService, debug bool) *UserHandler {
	return &UserHandler{responder: responder{debug: debug}, service: service}
}

// Register handles POST /api/register. Repeating a registration returns the
// existing id.
func (h *UserHandler) Register(c *gin.Context) {
	var req httpdto.RegisterRequest
	if !h.bindJSON(c, &req) {
		return
	}

	u, created, err := h.service.Register(c.Request.Context(), req.Email)
	if err != nil {
		h.fail(c, err)
		return
	}

	message := "User already registered"
	if created {
		message = "User registered"
	}
	c.JSON(http.StatusOK, httpdto.RegisterResponse{
		Success: true,
		UserID:  u.ID.String(),
		Message: message,
	})
}

// Get handles GET /api/users/:userId
func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.service.GetUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.UserResponse{Success: true, User: httpdto.FromUser(u)})
}
