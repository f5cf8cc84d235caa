package httpdto

import (
	"time"

	"nexora-chat/internal/domain/user"
)

// RegisterRequest is used for POST /api/register
type RegisterRequest struct {
	Email string `json:"email"`
}

// RegisterResponse is returned by POST /api/register
type RegisterResponse struct {
	Success bool   `json:"success"`
	UserID  string `json:"userId"`
	Message string `json:"message,omitempty"`
}

// UserResponse is returned by GET /api/users/:userId
type UserResponse struct {
	Success bool    `json:"success"`
	User    UserDTO `json:"user"`
}

// UserDTO summarizes a user record without its entry sequences.
type UserDTO struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	CreatedAt     string `json:"createdAt"`
	ChatCount     int    `json:"chatCount"`
	FeedbackCount int    `json:"feedbackCount"`
}

// FromUser converts a domain user to UserDTO
func FromUser(u user.User) UserDTO {
	return UserDTO{
		ID:            u.ID.String(),
		Email:         u.Email,
		CreatedAt:     FormatTime(u.CreatedAt),
		ChatCount:     len(u.Chats),
		FeedbackCount: len(u.Feedback),
	}
}

// FormatTime renders timestamps with sub-second precision so clients can
// order entries created within the same second.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
