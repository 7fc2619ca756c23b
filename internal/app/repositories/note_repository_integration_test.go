//go:build testutil
// +build testutil

package repositories_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colloq/colloq/internal/app/models"
	"github.com/colloq/colloq/internal/app/repositories"
	"github.com/colloq/colloq/internal/testutil/testdb"
)

type voteFixture struct {
	handle   *testdb.DBHandle
	notes    *repositories.NoteRepository
	users    *repositories.UserRepository
	noteID   int64
	authorID int64
}

func newVoteFixture(t *testing.T) *voteFixture {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	h, err := testdb.Start(ctx)
	require.NoError(t, err)
	t.Cleanup(h.Close)

	users := repositories.NewUserRepository(h.Pool)
	universities := repositories.NewUniversityRepository(h.Pool)
	notes := repositories.NewNoteRepository(h.Pool)

	authorID, err := users.CreateUser(ctx, &models.User{
		Email:    "author@colloq.pl",
		Password: "x",
		Nickname: "author",
		IsActive: true,
	})
	require.NoError(t, err)

	universityID, err := universities.CreateUniversity(ctx, &models.University{
		Name:       "Uniwersytet Testowy",
		IsApproved: true,
	})
	require.NoError(t, err)

	content := "lecture notes"
	noteID, err := notes.CreateNote(ctx, &models.Note{
		Content:      &content,
		AuthorID:     authorID,
		UniversityID: universityID,
		IsApproved:   true,
	})
	require.NoError(t, err)

	return &voteFixture{handle: h, notes: notes, users: users, noteID: noteID, authorID: authorID}
}

func (f *voteFixture) addVoter(t *testing.T, ctx context.Context, n int) int64 {
	t.Helper()
	id, err := f.users.CreateUser(ctx, &models.User{
		Email:    fmt.Sprintf("voter%d@colloq.pl", n),
		Password: "x",
		Nickname: fmt.Sprintf("voter%d", n),
		IsActive: true,
	})
	require.NoError(t, err)
	return id
}

func (f *voteFixture) voteRows(t *testing.T, ctx context.Context, userID int64) int {
	t.Helper()
	var count int
	err := f.handle.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM note_votes WHERE note_id = $1 AND user_id = $2`,
		f.noteID, userID).Scan(&count)
	require.NoError(t, err)
	return count
}

func (f *voteFixture) storedScore(t *testing.T, ctx context.Context) int {
	t.Helper()
	var score int
	err := f.handle.Pool.QueryRow(ctx,
		`SELECT score FROM notes WHERE id = $1`, f.noteID).Scan(&score)
	require.NoError(t, err)
	return score
}

func TestToggleVote_RoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newVoteFixture(t)
	voterID := f.addVoter(t, ctx, 1)

	active, score, err := f.notes.ToggleVote(ctx, f.noteID, voterID)
	require.NoError(t, err)
	assert.True(t, active)
	assert.Equal(t, 1, score)
	assert.Equal(t, 1, f.voteRows(t, ctx, voterID))

	active, score, err = f.notes.ToggleVote(ctx, f.noteID, voterID)
	require.NoError(t, err)
	assert.False(t, active)
	assert.Equal(t, 0, score)
	assert.Equal(t, 0, f.voteRows(t, ctx, voterID))
	assert.Equal(t, 0, f.storedScore(t, ctx))
}

func TestToggleVote_ConcurrentDistinctVoters(t *testing.T) {
	ctx := context.Background()
	f := newVoteFixture(t)

	const voters = 8
	ids := make([]int64, voters)
	for i := range ids {
		ids[i] = f.addVoter(t, ctx, i+1)
	}

	var wg sync.WaitGroup
	errs := make(chan error, voters)
	for _, id := range ids {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			_, _, err := f.notes.ToggleVote(ctx, f.noteID, userID)
			errs <- err
		}(id)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	assert.Equal(t, voters, f.storedScore(t, ctx))
	for _, id := range ids {
		assert.Equal(t, 1, f.voteRows(t, ctx, id))
	}
}

func TestToggleVote_ConcurrentSameVoter(t *testing.T) {
	ctx := context.Background()
	f := newVoteFixture(t)
	voterID := f.addVoter(t, ctx, 1)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := f.notes.ToggleVote(ctx, f.noteID, voterID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	// Whichever interleaving wins, the score must equal the number of vote
	// rows actually present.
	rows := f.voteRows(t, ctx, voterID)
	assert.LessOrEqual(t, rows, 1)
	assert.Equal(t, rows, f.storedScore(t, ctx))
}
