package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colloq/colloq/internal/app/models"
	"github.com/colloq/colloq/internal/app/models/dto"
	"github.com/colloq/colloq/internal/app/repositories"
	"github.com/colloq/colloq/internal/pkg/apperrors"
)

type fakeNoteStore struct {
	notes      map[int64]*models.Note
	nextID     int64
	createErr  error
	voteActive bool
	voteScore  int
	favActive  bool
	comments   []*models.Comment
	nicknames  map[int64]string
}

func (f *fakeNoteStore) CreateNote(_ context.Context, n *models.Note) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextID++
	n.ID = f.nextID
	if f.notes == nil {
		f.notes = map[int64]*models.Note{}
	}
	f.notes[n.ID] = n
	return n.ID, nil
}

func (f *fakeNoteStore) GetNoteByID(_ context.Context, id int64) (*models.Note, error) {
	if n, ok := f.notes[id]; ok {
		return n, nil
	}
	return nil, apperrors.ErrNoteNotFound
}

func (f *fakeNoteStore) ListNotes(_ context.Context, filter repositories.NoteFilter) ([]*models.Note, error) {
	out := make([]*models.Note, 0, len(f.notes))
	for _, n := range f.notes {
		if filter.ApprovedOnly && !n.IsApproved {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (f *fakeNoteStore) CountNotes(_ context.Context, filter repositories.NoteFilter) (int64, error) {
	var count int64
	for _, n := range f.notes {
		if filter.ApprovedOnly && !n.IsApproved {
			continue
		}
		count++
	}
	return count, nil
}

func (f *fakeNoteStore) ToggleVote(_ context.Context, _, _ int64) (bool, int, error) {
	return f.voteActive, f.voteScore, nil
}

func (f *fakeNoteStore) ToggleFavorite(_ context.Context, _, _ int64) (bool, error) {
	return f.favActive, nil
}

func (f *fakeNoteStore) CreateComment(_ context.Context, c *models.Comment) error {
	c.ID = int64(len(f.comments) + 1)
	f.comments = append(f.comments, c)
	return nil
}

func (f *fakeNoteStore) ListComments(_ context.Context, noteID int64) ([]*models.Comment, error) {
	out := []*models.Comment{}
	for _, c := range f.comments {
		if c.NoteID == noteID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeNoteStore) GetAuthorNicknames(_ context.Context, ids []int64) (map[int64]string, error) {
	out := map[int64]string{}
	for _, id := range ids {
		if nick, ok := f.nicknames[id]; ok {
			out[id] = nick
		}
	}
	return out, nil
}

type fakeSubjectLookup struct {
	subjects map[int64]*models.Subject
}

func (f *fakeSubjectLookup) GetSubjectByID(_ context.Context, id int64) (*models.Subject, error) {
	if s, ok := f.subjects[id]; ok {
		return s, nil
	}
	return nil, apperrors.ErrSubjectNotFound
}

type fakeVerifiedMarker struct {
	marked []int64
}

func (f *fakeVerifiedMarker) MarkVerified(_ context.Context, userID int64) error {
	f.marked = append(f.marked, userID)
	return nil
}

type fakeStorage struct {
	saved   []string
	deleted []string
	saveErr error
}

func (f *fakeStorage) SaveFile(_ *multipart.FileHeader, subPath string) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	path := subPath + "/image.png"
	f.saved = append(f.saved, path)
	return path, nil
}

func (f *fakeStorage) DeleteFile(path string) error {
	f.deleted = append(f.deleted, path)
	return nil
}

func strPtr(s string) *string { return &s }

func newTestNoteService(notes *fakeNoteStore, unis *fakeUniversityLookup, subjects *fakeSubjectLookup, users *fakeVerifiedMarker, storage *fakeStorage) NoteService {
	return NewNoteService(notes, unis, subjects, users, storage, zerolog.Nop())
}

func approvedUniversityLookup() *fakeUniversityLookup {
	return &fakeUniversityLookup{unis: map[int64]*models.University{
		1: {ID: 1, Name: "Uniwersytet Warszawski", IsApproved: true},
		2: {ID: 2, Name: "Pending University", IsApproved: false},
	}}
}

func TestCreateNote_ContentOrImageRequired(t *testing.T) {
	svc := newTestNoteService(&fakeNoteStore{}, approvedUniversityLookup(), &fakeSubjectLookup{}, &fakeVerifiedMarker{}, &fakeStorage{})

	req := dto.CreateNoteRequest{UniversityID: 1, Content: strPtr("   ")}
	_, err := svc.Create(context.Background(), req, nil, &models.User{ID: 7})
	assert.ErrorIs(t, err, apperrors.ErrNoteContentRequired)
}

func TestCreateNote_UnapprovedUniversity(t *testing.T) {
	svc := newTestNoteService(&fakeNoteStore{}, approvedUniversityLookup(), &fakeSubjectLookup{}, &fakeVerifiedMarker{}, &fakeStorage{})

	req := dto.CreateNoteRequest{UniversityID: 2, Content: strPtr("notes")}
	_, err := svc.Create(context.Background(), req, nil, &models.User{ID: 7})
	assert.ErrorIs(t, err, apperrors.ErrParentNotApproved)
}

func TestCreateNote_UnapprovedSubject(t *testing.T) {
	subjects := &fakeSubjectLookup{subjects: map[int64]*models.Subject{
		9: {ID: 9, Name: "Analiza", IsApproved: false},
	}}
	svc := newTestNoteService(&fakeNoteStore{}, approvedUniversityLookup(), subjects, &fakeVerifiedMarker{}, &fakeStorage{})

	subjectID := int64(9)
	req := dto.CreateNoteRequest{UniversityID: 1, SubjectID: &subjectID, Content: strPtr("notes")}
	_, err := svc.Create(context.Background(), req, nil, &models.User{ID: 7})
	assert.ErrorIs(t, err, apperrors.ErrParentNotApproved)
}

func TestCreateNote_FirstSubmissionVerifiesAuthor(t *testing.T) {
	notes := &fakeNoteStore{}
	users := &fakeVerifiedMarker{}
	svc := newTestNoteService(notes, approvedUniversityLookup(), &fakeSubjectLookup{}, users, &fakeStorage{})

	req := dto.CreateNoteRequest{UniversityID: 1, Content: strPtr("calculus notes")}
	note, err := svc.Create(context.Background(), req, nil, &models.User{ID: 7, IsVerified: false})
	require.NoError(t, err)

	assert.False(t, note.IsApproved)
	assert.Equal(t, 0, note.Score)
	assert.Equal(t, int64(7), note.AuthorID)
	assert.Equal(t, []int64{7}, users.marked)
}

func TestCreateNote_VerifiedAuthorNotMarkedAgain(t *testing.T) {
	users := &fakeVerifiedMarker{}
	svc := newTestNoteService(&fakeNoteStore{}, approvedUniversityLookup(), &fakeSubjectLookup{}, users, &fakeStorage{})

	req := dto.CreateNoteRequest{UniversityID: 1, Content: strPtr("calculus notes")}
	_, err := svc.Create(context.Background(), req, nil, &models.User{ID: 7, IsVerified: true})
	require.NoError(t, err)
	assert.Empty(t, users.marked)
}

func TestCreateNote_OrphanImageCleanedUp(t *testing.T) {
	notes := &fakeNoteStore{createErr: errors.New("insert failed")}
	storage := &fakeStorage{}
	svc := newTestNoteService(notes, approvedUniversityLookup(), &fakeSubjectLookup{}, &fakeVerifiedMarker{}, storage)

	req := dto.CreateNoteRequest{UniversityID: 1}
	_, err := svc.Create(context.Background(), req, &multipart.FileHeader{Filename: "image.png"}, &models.User{ID: 7})
	require.Error(t, err)
	assert.Equal(t, storage.saved, storage.deleted)
}

func TestToggleVote_UnknownNote(t *testing.T) {
	svc := newTestNoteService(&fakeNoteStore{}, approvedUniversityLookup(), &fakeSubjectLookup{}, &fakeVerifiedMarker{}, &fakeStorage{})

	_, err := svc.ToggleVote(context.Background(), 99, 7)
	assert.ErrorIs(t, err, apperrors.ErrNoteNotFound)
}

func TestToggleVote_ReportsNewState(t *testing.T) {
	notes := &fakeNoteStore{
		notes:      map[int64]*models.Note{11: {ID: 11, IsApproved: true}},
		voteActive: true,
		voteScore:  4,
	}
	svc := newTestNoteService(notes, approvedUniversityLookup(), &fakeSubjectLookup{}, &fakeVerifiedMarker{}, &fakeStorage{})

	resp, err := svc.ToggleVote(context.Background(), 11, 7)
	require.NoError(t, err)
	assert.Equal(t, dto.ToggleResponse{Active: true, Score: 4}, resp)
}

func TestAddComment_UnknownNote(t *testing.T) {
	svc := newTestNoteService(&fakeNoteStore{}, approvedUniversityLookup(), &fakeSubjectLookup{}, &fakeVerifiedMarker{}, &fakeStorage{})

	_, err := svc.AddComment(context.Background(), 99, 7, "hello")
	assert.ErrorIs(t, err, apperrors.ErrNoteNotFound)
}

func TestAddComment_TrimsContent(t *testing.T) {
	notes := &fakeNoteStore{notes: map[int64]*models.Note{11: {ID: 11}}}
	svc := newTestNoteService(notes, approvedUniversityLookup(), &fakeSubjectLookup{}, &fakeVerifiedMarker{}, &fakeStorage{})

	comment, err := svc.AddComment(context.Background(), 11, 7, "  hello  ")
	require.NoError(t, err)
	assert.Equal(t, "hello", comment.Content)
	assert.Equal(t, int64(11), comment.NoteID)
	assert.Equal(t, int64(7), comment.UserID)
}

func TestGetNote_HidesUnapprovedFromPublic(t *testing.T) {
	notes := &fakeNoteStore{
		notes:     map[int64]*models.Note{11: {ID: 11, AuthorID: 7, IsApproved: false}},
		nicknames: map[int64]string{7: "anka"},
	}
	svc := newTestNoteService(notes, approvedUniversityLookup(), &fakeSubjectLookup{}, &fakeVerifiedMarker{}, &fakeStorage{})

	_, err := svc.Get(context.Background(), 11, false)
	assert.ErrorIs(t, err, apperrors.ErrNoteNotFound)

	resp, err := svc.Get(context.Background(), 11, true)
	require.NoError(t, err)
	assert.Equal(t, "anka", resp.AuthorNickname)
}

func TestGetNote_Approved(t *testing.T) {
	notes := &fakeNoteStore{
		notes:     map[int64]*models.Note{11: {ID: 11, AuthorID: 7, IsApproved: true, Score: 3}},
		nicknames: map[int64]string{7: "anka"},
	}
	svc := newTestNoteService(notes, approvedUniversityLookup(), &fakeSubjectLookup{}, &fakeVerifiedMarker{}, &fakeStorage{})

	resp, err := svc.Get(context.Background(), 11, false)
	require.NoError(t, err)
	assert.Equal(t, int64(11), resp.ID)
	assert.Equal(t, 3, resp.Score)
}

func TestListNotes_AttachesNicknames(t *testing.T) {
	notes := &fakeNoteStore{
		notes: map[int64]*models.Note{
			11: {ID: 11, AuthorID: 7, IsApproved: true},
			12: {ID: 12, AuthorID: 8, IsApproved: false},
		},
		nicknames: map[int64]string{7: "anka"},
	}
	svc := newTestNoteService(notes, approvedUniversityLookup(), &fakeSubjectLookup{}, &fakeVerifiedMarker{}, &fakeStorage{})

	out, err := svc.List(context.Background(), 0, 0, "", 1, 20)
	require.NoError(t, err)

	items, ok := out.Items.([]dto.NoteResponse)
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, "anka", items[0].AuthorNickname)
	assert.Equal(t, int64(1), out.Pagination.TotalItems)
	assert.Equal(t, 1, out.Pagination.CurrentPage)
}
