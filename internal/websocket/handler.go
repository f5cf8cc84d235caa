package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"nexora-chat/internal/metrics"
	"nexora-chat/internal/ratelimit"
	"nexora-chat/internal/services"
	"nexora-chat/internal/transport/httpdto"
	nexora_errors "nexora-chat/pkg/errors"
	"nexora-chat/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	maxFrameSize   = 1 << 20
	processFailure = "Error processing message: "
)

type HandlerConfig struct {
	PingInterval time.Duration
	Debug        bool
}

type Handler struct {
	service  *services.UserService
	hub      *Hub
	limiter  ratelimit.Limiter
	log      *logger.Logger
	cfg      HandlerConfig
	upgrader websocket.Upgrader
}

func NewHandler(service *services.UserService, hub *Hub, limiter ratelimit.Limiter, l *logger.Logger, cfg HandlerConfig) *Handler {
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = 30 * time.Second
	}
	if limiter == nil {
		limiter = ratelimit.Disabled{}
	}
	return &Handler{
		service: service,
		hub:     hub,
		limiter: limiter,
		log:     l,
		cfg:     cfg,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Connect upgrades the request and serves the connection until it closes.
func (h *Handler) Connect(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warnf("websocket upgrade failed: %v", err)
		return
	}

	client := NewClient(conn, h.cfg.PingInterval)
	log := h.log.With(zap.String("client_id", client.ID), zap.String("remote_addr", c.Request.RemoteAddr))
	log.Infof("websocket connected on %s", c.Request.URL.Path)

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	h.hub.Register(client)
	defer h.hub.Unregister(client)
	defer client.Close()

	conn.SetReadLimit(maxFrameSize)
	conn.SetPongHandler(func(string) error {
		client.MarkAlive()
		return nil
	})

	h.send(client, ConnectionStatusFrame{Type: TypeConnectionStatus, Status: "connected"})
	go client.WriteLoop(ctx)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			switch {
			case client.Terminated():
				log.Infof("terminating inactive connection")
			case websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway):
				log.Warnf("websocket read error: %v", err)
			default:
				log.Infof("websocket disconnected")
			}
			return
		}
		h.dispatch(ctx, client, data)
	}
}

// dispatch handles one inbound frame. Failures are reported to the client
// as error frames and never close the connection; unknown types are
// ignored.
func (h *Handler) dispatch(ctx context.Context, client *Client, data []byte) {
	var frame InboundFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		h.send(client, ErrorFrame{Type: TypeError, Message: processFailure + err.Error()})
		return
	}

	switch frame.Type {
	case TypeChat:
		metrics.WSFrames.WithLabelValues(frame.Type).Inc()
		h.handleChat(ctx, client, frame)
	case TypeGetChatHistory:
		metrics.WSFrames.WithLabelValues(frame.Type).Inc()
		h.handleChatHistory(ctx, client, frame)
	default:
		metrics.WSFrames.WithLabelValues("unknown").Inc()
		h.log.Debugf("ignoring realtime frame of type %q", frame.Type)
	}
}

func (h *Handler) handleChat(ctx context.Context, client *Client, frame InboundFrame) {
	result, err := h.limiter.Allow(ctx, "chat:"+frame.UserID)
	if err == nil && !result.Allowed {
		h.send(client, ErrorFrame{Type: TypeError, Message: "Rate limit exceeded"})
		return
	}

	entry, err := h.service.AppendChat(ctx, frame.UserID, frame.Role, frame.Content)
	if err != nil {
		h.sendError(client, err)
		return
	}
	h.send(client, ChatSavedFrame{Type: TypeChatSaved, Success: true, MessageID: entry.ID.String()})
}

func (h *Handler) handleChatHistory(ctx context.Context, client *Client, frame InboundFrame) {
	chats, err := h.service.ListChats(ctx, frame.UserID)
	if err != nil {
		h.sendError(client, err)
		return
	}
	h.send(client, ChatHistoryFrame{
		Type:    TypeChatHistory,
		Success: true,
		Chats:   httpdto.FromChatEntrySlice(chats),
	})
}

func (h *Handler) sendError(client *Client, err error) {
	h.send(client, ErrorFrame{Type: TypeError, Message: h.errorMessage(err)})
}

func (h *Handler) errorMessage(err error) string {
	var vErr *nexora_errors.ValidationError
	switch {
	case errors.Is(err, nexora_errors.ErrNotFound):
		return "User not found"
	case errors.As(err, &vErr):
		return processFailure + vErr.Message
	case errors.Is(err, nexora_errors.ErrInvalidIdentifier):
		return processFailure + "invalid user id"
	default:
		h.log.Errorf("realtime storage failure: %v", err)
		if h.cfg.Debug {
			return processFailure + err.Error()
		}
		return processFailure + "storage error"
	}
}

func (h *Handler) send(client *Client, frame interface{}) {
	payload, err := json.Marshal(frame)
	if err != nil {
		h.log.Errorf("failed to encode realtime frame: %v", err)
		return
	}
	if !client.SendMessage(payload) {
		h.log.Warnf("dropped realtime frame for client %s", client.ID)
	}
}
