package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colloq/colloq/internal/app/models"
)

type fakeLeaderboardStore struct {
	rows      []*models.LeaderboardRow
	userCount int64
	countErr  error
	gotLimit  uint64
}

func (f *fakeLeaderboardStore) GetLeaderboard(_ context.Context, limit uint64) ([]*models.LeaderboardRow, error) {
	f.gotLimit = limit
	return f.rows, nil
}

func (f *fakeLeaderboardStore) CountUsers(_ context.Context) (int64, error) {
	return f.userCount, f.countErr
}

type fakeUniversityCounter struct {
	count int64
	err   error
}

func (f *fakeUniversityCounter) CountUniversities(_ context.Context) (int64, error) {
	return f.count, f.err
}

type fakeNoteCounter struct {
	count int64
	err   error
}

func (f *fakeNoteCounter) CountApprovedNotes(_ context.Context) (int64, error) {
	return f.count, f.err
}

func TestLeaderboard_TopFive(t *testing.T) {
	store := &fakeLeaderboardStore{rows: []*models.LeaderboardRow{
		{UserID: 7, Nickname: "anka", NoteCount: 12},
		{UserID: 8, Nickname: "bartek", NoteCount: 9},
	}}
	svc := NewMetaService(store, &fakeUniversityCounter{}, &fakeNoteCounter{}, zerolog.Nop())

	entries, err := svc.Leaderboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, uint64(5), store.gotLimit)
	require.Len(t, entries, 2)
	assert.Equal(t, "anka", entries[0].Nickname)
	assert.Equal(t, int64(12), entries[0].NoteCount)
}

func TestHealth_OK(t *testing.T) {
	store := &fakeLeaderboardStore{userCount: 3}
	svc := NewMetaService(store, &fakeUniversityCounter{count: 16}, &fakeNoteCounter{count: 42}, zerolog.Nop())

	resp, err := svc.Health(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.Version)
	assert.Equal(t, int64(16), resp.Universities)
	assert.Equal(t, int64(42), resp.Notes)
	assert.Equal(t, int64(3), resp.Users)
}

func TestHealth_DegradesOnCountFailure(t *testing.T) {
	store := &fakeLeaderboardStore{userCount: 3}
	svc := NewMetaService(store, &fakeUniversityCounter{err: errors.New("db down")}, &fakeNoteCounter{count: 42}, zerolog.Nop())

	resp, err := svc.Health(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, int64(42), resp.Notes)
}
