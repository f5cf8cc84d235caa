package repository

import (
	"context"
	"errors"

	"nexora-chat/internal/domain/user"
	nexora_errors "nexora-chat/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// requireUser fails with ErrNotFound unless a user row with id exists.
func requireUser(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	var count int64
	if err := db.WithContext(ctx).Model(&user.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return nexora_errors.NewStorageError("find user", err)
	}
	if count == 0 {
		return nexora_errors.ErrNotFound
	}
	return nil
}

func newID() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}
