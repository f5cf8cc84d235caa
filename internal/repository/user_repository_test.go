package repository

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"nexora-chat/internal/domain/user"
	"nexora-chat/internal/testutil"
	nexora_errors "nexora-chat/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *GormUserRepository {
	t.Helper()
	return NewUserRepository(testutil.NewTestDB(t)).(*GormUserRepository)
}

// fixedClock returns the given instants in order, repeating the last one.
func fixedClock(times ...time.Time) func() time.Time {
	var mu sync.Mutex
	i := 0
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		ts := times[i]
		if i < len(times)-1 {
			i++
		}
		return ts
	}
}

func TestCreateOrGetUser(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	first, created, err := repo.CreateOrGetUser(ctx, "a@example.com")
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, uuid.Nil, first.ID)

	second, created, err := repo.CreateOrGetUser(ctx, "a@example.com")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, repo.db.Model(&user.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGetUserNotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, nexora_errors.ErrNotFound)
}

func TestAppendToUnknownUser(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	missing := uuid.New()

	_, err := repo.AppendChat(ctx, missing, "user", "hi")
	assert.ErrorIs(t, err, nexora_errors.ErrNotFound)

	_, err = repo.AppendFeedback(ctx, missing, 4, "good")
	assert.ErrorIs(t, err, nexora_errors.ErrNotFound)

	assert.ErrorIs(t, repo.ClearChats(ctx, missing), nexora_errors.ErrNotFound)

	_, err = repo.ListChats(ctx, missing)
	assert.ErrorIs(t, err, nexora_errors.ErrNotFound)

	_, err = repo.ListFeedback(ctx, missing)
	assert.ErrorIs(t, err, nexora_errors.ErrNotFound)

	var chats, feedback int64
	require.NoError(t, repo.db.Model(&user.ChatEntry{}).Count(&chats).Error)
	require.NoError(t, repo.db.Model(&user.FeedbackEntry{}).Count(&feedback).Error)
	assert.Zero(t, chats)
	assert.Zero(t, feedback)
}

func TestChatOrdering(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	u, _, err := repo.CreateOrGetUser(ctx, "order@example.com")
	require.NoError(t, err)

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	// The third entry shares its timestamp with the second.
	repo.now = fixedClock(base.Add(2*time.Second), base, base)

	_, err = repo.AppendChat(ctx, u.ID, "user", "late")
	require.NoError(t, err)
	_, err = repo.AppendChat(ctx, u.ID, "assistant", "early")
	require.NoError(t, err)
	_, err = repo.AppendChat(ctx, u.ID, "user", "early-tie")
	require.NoError(t, err)

	chats, err := repo.ListChats(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, chats, 3)
	assert.Equal(t, []string{"early", "early-tie", "late"}, []string{chats[0].Content, chats[1].Content, chats[2].Content})
	for i := 1; i < len(chats); i++ {
		assert.False(t, chats[i].Timestamp.Before(chats[i-1].Timestamp))
	}
}

func TestFeedbackOrdering(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	u, _, err := repo.CreateOrGetUser(ctx, "fb@example.com")
	require.NoError(t, err)

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	repo.now = fixedClock(base, base.Add(time.Minute), base.Add(30*time.Second))

	for _, comment := range []string{"first", "newest", "middle"} {
		_, err := repo.AppendFeedback(ctx, u.ID, 3, comment)
		require.NoError(t, err)
	}

	feedback, err := repo.ListFeedback(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, feedback, 3)
	assert.Equal(t, "newest", feedback[0].Comment)
	assert.Equal(t, "middle", feedback[1].Comment)
	assert.Equal(t, "first", feedback[2].Comment)
}

func TestClearChatsKeepsFeedback(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	u, _, err := repo.CreateOrGetUser(ctx, "clear@example.com")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := repo.AppendChat(ctx, u.ID, "user", "msg")
		require.NoError(t, err)
	}
	_, err = repo.AppendFeedback(ctx, u.ID, 5, "great")
	require.NoError(t, err)

	require.NoError(t, repo.ClearChats(ctx, u.ID))

	loaded, err := repo.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Chats)
	assert.Len(t, loaded.Feedback, 1)
}

func TestConcurrentFeedbackAppends(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	u, _, err := repo.CreateOrGetUser(ctx, "race@example.com")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.AppendFeedback(ctx, u.ID, 4, "concurrent")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	feedback, err := repo.ListFeedback(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, feedback, 2)
}

func TestPing(t *testing.T) {
	repo := newTestRepository(t)
	assert.NoError(t, repo.Ping(context.Background()))
}

func TestAppendedTimestampMatchesStoredValue(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	u, _, err := repo.CreateOrGetUser(ctx, "precision@example.com")
	require.NoError(t, err)

	chat, err := repo.AppendChat(ctx, u.ID, "user", "hi")
	require.NoError(t, err)
	assert.Zero(t, chat.Timestamp.Nanosecond()%int(time.Microsecond))

	fb, err := repo.AppendFeedback(ctx, u.ID, 5, "ok")
	require.NoError(t, err)
	assert.Zero(t, fb.Timestamp.Nanosecond()%int(time.Microsecond))

	chats, err := repo.ListChats(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.True(t, chat.Timestamp.Equal(chats[0].Timestamp))
}

func TestLongRoleAndEmailAreStored(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	email := strings.Repeat("a", 400) + "@example.com"
	u, created, err := repo.CreateOrGetUser(ctx, email)
	require.NoError(t, err)
	assert.True(t, created)

	role := strings.Repeat("r", 200)
	_, err = repo.AppendChat(ctx, u.ID, role, "content")
	require.NoError(t, err)

	chats, err := repo.ListChats(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, role, chats[0].Role)

	// Free-form columns carry no length limit in the schema.
	for _, tc := range []struct {
		model  interface{}
		column string
	}{
		{&user.ChatEntry{}, "role"},
		{&user.User{}, "email"},
	} {
		columns, err := repo.db.Migrator().ColumnTypes(tc.model)
		require.NoError(t, err)
		found := false
		for _, col := range columns {
			if col.Name() == tc.column {
				found = true
				assert.True(t, strings.EqualFold("text", col.DatabaseTypeName()), col.DatabaseTypeName())
			}
		}
		assert.True(t, found, tc.column)
	}
}
