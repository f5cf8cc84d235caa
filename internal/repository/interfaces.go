package repository

import (
	"context"

	"nexora-chat/internal/domain/user"

	"github.com/google/uuid"
)

// UserRepository persists the user aggregate. Chat and feedback entries are
// appended as individual rows so concurrent writers never overwrite each
// other.
type UserRepository interface {
	CreateOrGetUser(ctx context.Context, email string) (user.User, bool, error)
	GetUser(ctx context.Context, id uuid.UUID) (user.User, error)

	AppendChat(ctx context.Context, id uuid.UUID, role, content string) (user.ChatEntry, error)
	ListChats(ctx context.Context, id uuid.UUID) ([]user.ChatEntry, error)
	ClearChats(ctx context.Context, id uuid.UUID) error

	AppendFeedback(ctx context.Context, id uuid.UUID, rating float64, comment string) (user.FeedbackEntry, error)
	ListFeedback(ctx context.Context, id uuid.UUID) ([]user.FeedbackEntry, error)

	Ping(ctx context.Context) error
}
