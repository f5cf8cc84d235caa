package websocket

import "nexora-chat/internal/transport/httpdto"

// Frame types exchanged over the realtime channel.
const (
	TypeConnectionStatus = "connection_status"
	TypeChat             = "chat"
	TypeChatSaved        = "chat_saved"
	TypeGetChatHistory   = "get_chat_history"
	TypeChatHistory      = "chat_history"
	TypeError            = "error"
)

// InboundFrame is any client→server frame. Fields unused by a type are left
// empty.
type InboundFrame struct {
	Type    string `json:"type"`
	UserID  string `json:"userId"`
	Role    string `json:"role,omitempty"`
	Content string `json:"content,omitempty"`
}

type ConnectionStatusFrame struct {
	Type   string `json:"type"`
	Status string `json:"status"`
}

type ChatSavedFrame struct {
	Type      string `json:"type"`
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
}

type ChatHistoryFrame struct {
	Type    string            `json:"type"`
	Success bool              `json:"success"`
	Chats   []httpdto.ChatDTO `json:"chats"`
}

type ErrorFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
