package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents the users table. Email is stored trimmed and lower-cased.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"type:text;not null;uniqueIndex:idx_users_email"`
	CreatedAt time.Time `gorm:"not null"`

	// Relationships
	Chats    []ChatEntry     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Feedback []FeedbackEntry `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// ChatEntry represents the chat_entries table. Rows are append-only.
type ChatEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_chat_entries_user_ts,priority:1"`
	Role      string    `gorm:"type:text;not null"`
	Content   string    `gorm:"type:text;not null"`
	Timestamp time.Time `gorm:"column:created_at;not null;index:idx_chat_entries_user_ts,priority:2"`
}

// FeedbackEntry represents the feedback_entries table. Rows are append-only.
type FeedbackEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_feedback_entries_user_ts,priority:1"`
	Rating    float64   `gorm:"type:double precision;not null"`
	Comment   string    `gorm:"type:text;not null"`
	Timestamp time.Time `gorm:"column:created_at;not null;index:idx_feedback_entries_user_ts,priority:2"`
}

const (
	MinRating = 1
	MaxRating = 5
)

// Models lists every table owned by this domain, in migration order.
func Models() []interface{} {
	return []interface{}{&User{}, &ChatEntry{}, &FeedbackEntry{}}
}
