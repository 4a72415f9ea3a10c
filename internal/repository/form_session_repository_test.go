package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sadriving/sadriving-backend/internal/model"
	"github.com/stretchr/testify/require"
)

func TestMemoryFormSessionRepository_SaveAndGet(t *testing.T) {
	repo := NewMemoryFormSessionRepository(time.Hour)
	ctx := context.Background()

	session := &model.FormSession{ID: uuid.New(), Form: model.RegistrationForm{FirstName: "Jane"}}
	require.NoError(t, repo.Save(ctx, session))

	got, err := repo.Get(ctx, session.ID)
	require.NoError(t, err)
	require.Equal(t, "Jane", got.Form.FirstName)

	// The repository hands out copies.
	got.Form.FirstName = "Mutated"
	again, err := repo.Get(ctx, session.ID)
	require.NoError(t, err)
	require.Equal(t, "Jane", again.Form.FirstName)
}

func TestMemoryFormSessionRepository_UnknownSession(t *testing.T) {
	repo := NewMemoryFormSessionRepository(time.Hour)

	_, err := repo.Get(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrFormSessionNotFound)
}

func TestMemoryFormSessionRepository_Expiry(t *testing.T) {
	repo := NewMemoryFormSessionRepository(time.Minute)
	clock := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return clock }
	ctx := context.Background()

	live := &model.FormSession{ID: uuid.New()}
	stale := &model.FormSession{ID: uuid.New()}
	require.NoError(t, repo.Save(ctx, stale))

	clock = clock.Add(45 * time.Second)
	require.NoError(t, repo.Save(ctx, live))

	clock = clock.Add(30 * time.Second)
	_, err := repo.Get(ctx, stale.ID)
	require.ErrorIs(t, err, ErrFormSessionNotFound)

	_, err = repo.Get(ctx, live.ID)
	require.NoError(t, err)

	require.Equal(t, 1, repo.Sweep())
	require.Len(t, repo.sessions, 1)
}

func TestMemoryFormSessionRepository_JanitorStopsWithContext(t *testing.T) {
	repo := NewMemoryFormSessionRepository(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		repo.StartJanitor(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop after cancel")
	}
}
