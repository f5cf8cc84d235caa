package httpdto

import "nexora-chat/internal/domain/user"

// AppendChatRequest is used for POST /api/chat/:userId
type AppendChatRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AppendChatResponse is returned after a chat entry is stored
type AppendChatResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
	Timestamp string `json:"timestamp"`
}

// ChatHistoryResponse is returned by GET /api/chat/:userId
type ChatHistoryResponse struct {
	Success bool      `json:"success"`
	Chats   []ChatDTO `json:"chats"`
	Count   int       `json:"count"`
}

// MessageResponse carries a human readable confirmation.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ChatDTO represents a chat entry in API responses and realtime frames
type ChatDTO struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

func FromChatEntry(c user.ChatEntry) ChatDTO {
	return ChatDTO{
		ID:        c.ID.String(),
		Role:      c.Role,
		Content:   c.Content,
		Timestamp: FormatTime(c.Timestamp),
	}
}

func FromChatEntrySlice(chats []user.ChatEntry) []ChatDTO {
	dtos := make([]ChatDTO, len(chats))
	for i, c := range chats {
		dtos[i] = FromChatEntry(c)
	}
	return dtos
}
