package services

import (
	"context"
	"strings"

	"nexora-chat/internal/domain/user"
	"nexora-chat/internal/repository"
	nexora_errors "nexora-chat/pkg/errors"

	"github.com/google/uuid"
)

// UserService validates transport input and forwards it to the repository.
// Both the REST handlers and the realtime channel go through it.
type UserService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ParseUserID rejects malformed identifiers before any query is issued.
func ParseUserID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, nexora_errors.ErrInvalidIdentifier
	}
	return id, nil
}

// Register is idempotent: a repeated email returns the original user with
// created set to false.
func (s *UserService) Register(ctx context.Context, email string) (user.User, bool, error) {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return user.User{}, false, nexora_errors.NewValidationError("email", "Email is required")
	}
	return s.repo.CreateOrGetUser(ctx, normalized)
}

func (s *UserService) GetUser(ctx context.Context, rawID string) (user.User, error) {
	id, err := ParseUserID(rawID)
	if err != nil {
		return user.User{}, err
	}
	return s.repo.GetUser(ctx, id)
}

func (s *UserService) AppendChat(ctx context.Context, rawID, role, content string) (user.ChatEntry, error) {
	if strings.TrimSpace(role) == "" || strings.TrimSpace(content) == "" {
		return user.ChatEntry{}, nexora_errors.NewValidationError("role", "Role and content are required")
	}
	id, err := ParseUserID(rawID)
	if err != nil {
		return user.ChatEntry{}, err
	}
	return s.repo.AppendChat(ctx, id, role, content)
}

func (s *UserService) ListChats(ctx context.Context, rawID string) ([]user.ChatEntry, error) {
	id, err := ParseUserID(rawID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListChats(ctx, id)
}

func (s *UserService) ClearChats(ctx context.Context, rawID string) error {
	id, err := ParseUserID(rawID)
	if err != nil {
		return err
	}
	return s.repo.ClearChats(ctx, id)
}

// AppendFeedback requires a rating in [1,5] and a non-blank comment. A nil
// rating means the field was absent from the request.
func (s *UserService) AppendFeedback(ctx context.Context, rawID string, rating *float64, comment string) (user.FeedbackEntry, error) {
	if rating == nil || strings.TrimSpace(comment) == "" {
		return user.FeedbackEntry{}, nexora_errors.NewValidationError("rating", "Rating and comment are required")
	}
	if *rating < user.MinRating || *rating > user.MaxRating {
		return user.FeedbackEntry{}, nexora_errors.NewValidationError("rating", "Rating must be between 1 and 5")
	}
	id, err := ParseUserID(rawID)
	if err != nil {
		return user.FeedbackEntry{}, err
	}
	return s.repo.AppendFeedback(ctx, id, *rating, comment)
}

func (s *UserService) ListFeedback(ctx context.Context, rawID string) ([]user.FeedbackEntry, error) {
	id, err := ParseUserID(rawID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListFeedback(ctx, id)
}

// StorageConnected reports whether the store answers a ping.
func (s *UserService) StorageConnected(ctx context.Context) bool {
	return s.repo.Ping(ctx) == nil
}
