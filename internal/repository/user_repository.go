package repository

import (
	"context"
	"errors"
	"time"

	"nexora-chat/internal/domain/user"
	nexora_errors "nexora-chat/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormUserRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db, now: storedNow}
}

// storedNow matches the microsecond precision of postgres timestamps, so an
// entry reads back exactly as it was returned on write.
func storedNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// CreateOrGetUser returns the user registered under email, creating it when
// absent. The boolean reports whether a new row was written. email must
// already be normalized.
func (r *GormUserRepository) CreateOrGetUser(ctx context.Context, email string) (user.User, bool, error) {
	existing, err := r.findByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, nexora_errors.ErrNotFound) {
		return user.User{}, false, err
	}

	u := user.User{
		ID:        newID(),
		Email:     email,
		CreatedAt: r.now(),
	}
	if err := r.db.WithContext(ctx).Create(&u).Error; err != nil {
		if isUniqueViolation(err) {
			// Lost the race against a concurrent registration.
			winner, findErr := r.findByEmail(ctx, email)
			return winner, false, findErr
		}
		return user.User{}, false, nexora_errors.NewStorageError("create user", err)
	}
	return u, true, nil
}

func (r *GormUserRepository) GetUser(ctx context.Context, id uuid.UUID) (user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).
		Preload("Chats", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("Feedback", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		}).
		Where("id = ?", id).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, nexora_errors.ErrNotFound
		}
		return user.User{}, nexora_errors.NewStorageError("get user", err)
	}
	return u, nil
}

func (r *GormUserRepository) AppendChat(ctx context.Context, id uuid.UUID, role, content string) (user.ChatEntry, error) {
	entry := user.ChatEntry{
		ID:        newID(),
		UserID:    id,
		Role:      role,
		Content:   content,
		Timestamp: r.now(),
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireUser(ctx, tx, id); err != nil {
			return err
		}
		if err := tx.Create(&entry).Error; err != nil {
			return nexora_errors.NewStorageError("append chat", err)
		}
		return nil
	})
	if err != nil {
		return user.ChatEntry{}, asRepositoryError("append chat", err)
	}
	return entry, nil
}

func (r *GormUserRepository) ListChats(ctx context.Context, id uuid.UUID) ([]user.ChatEntry, error) {
	if err := requireUser(ctx, r.db, id); err != nil {
		return nil, err
	}
	chats := make([]user.ChatEntry, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", id).
		Order("created_at ASC, id ASC").
		Find(&chats).Error
	if err != nil {
		return nil, nexora_errors.NewStorageError("list chats", err)
	}
	return chats, nil
}

func (r *GormUserRepository) ClearChats(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireUser(ctx, tx, id); err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&user.ChatEntry{}).Error; err != nil {
			return nexora_errors.NewStorageError("clear chats", err)
		}
		return nil
	})
	return asRepositoryError("clear chats", err)
}

func (r *GormUserRepository) AppendFeedback(ctx context.Context, id uuid.UUID, rating float64, comment string) (user.FeedbackEntry, error) {
	entry := user.FeedbackEntry{
		ID:        newID(),
		UserID:    id,
		Rating:    rating,
		Comment:   comment,
		Timestamp: r.now(),
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireUser(ctx, tx, id); err != nil {
			return err
		}
		if err := tx.Create(&entry).Error; err != nil {
			return nexora_errors.NewStorageError("append feedback", err)
		}
		return nil
	})
	if err != nil {
		return user.FeedbackEntry{}, asRepositoryError("append feedback", err)
	}
	return entry, nil
}

func (r *GormUserRepository) ListFeedback(ctx context.Context, id uuid.UUID) ([]user.FeedbackEntry, error) {
	if err := requireUser(ctx, r.db, id); err != nil {
		return nil, err
	}
	feedback := make([]user.FeedbackEntry, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", id).
		Order("created_at DESC, id DESC").
		Find(&feedback).Error
	if err != nil {
		return nil, nexora_errors.NewStorageError("list feedback", err)
	}
	return feedback, nil
}

func (r *GormUserRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *GormUserRepository) findByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, nexora_errors.ErrNotFound
		}
		return user.User{}, nexora_errors.NewStorageError("find user by email", err)
	}
	return u, nil
}

// asRepositoryError keeps domain errors intact and wraps anything else (for
// example a failed commit) as a storage error.
func asRepositoryError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, nexora_errors.ErrNotFound) || errors.Is(err, nexora_errors.ErrStorage) {
		return err
	}
	return nexora_errors.NewStorageError(op, err)
}
