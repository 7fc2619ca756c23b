package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colloq/colloq/internal/app/models"
	"github.com/colloq/colloq/internal/pkg/apperrors"
)

type fakeApprovalStore struct {
	approved []int64
	deleted  []int64
	err      error
}

func (f *fakeApprovalStore) Approve(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	f.approved = append(f.approved, id)
	return nil
}

func (f *fakeApprovalStore) Delete(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakePendingUniversities struct{ items []*models.University }

func (f *fakePendingUniversities) ListPending(_ context.Context) ([]*models.University, error) {
	return f.items, nil
}

type fakePendingFaculties struct{ items []*models.Faculty }

func (f *fakePendingFaculties) ListPending(_ context.Context) ([]*models.Faculty, error) {
	return f.items, nil
}

type fakePendingFields struct{ items []*models.FieldOfStudy }

func (f *fakePendingFields) ListPending(_ context.Context) ([]*models.FieldOfStudy, error) {
	return f.items, nil
}

type fakePendingSubjects struct{ items []*models.Subject }

func (f *fakePendingSubjects) ListPending(_ context.Context) ([]*models.Subject, error) {
	return f.items, nil
}

type fakePendingNotes struct{ items []*models.Note }

func (f *fakePendingNotes) ListPending(_ context.Context) ([]*models.Note, error) {
	return f.items, nil
}

type fakeImageRequestModerator struct {
	items    []*models.UniversityImageRequest
	approved []int64
	rejected []int64
	err      error
}

func (f *fakeImageRequestModerator) ListPending(_ context.Context) ([]*models.UniversityImageRequest, error) {
	return f.items, nil
}

func (f *fakeImageRequestModerator) Approve(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	f.approved = append(f.approved, id)
	return nil
}

func (f *fakeImageRequestModerator) Reject(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	f.rejected = append(f.rejected, id)
	return nil
}

type moderationFixture struct {
	svc      ModerationService
	stores   map[models.ModeratedKind]*fakeApprovalStore
	requests *fakeImageRequestModerator
}

func newModerationFixture() *moderationFixture {
	stores := map[models.ModeratedKind]*fakeApprovalStore{}
	dispatch := map[models.ModeratedKind]approvalStore{}
	for _, kind := range models.ModeratedKinds {
		st := &fakeApprovalStore{}
		stores[kind] = st
		dispatch[kind] = st
	}
	requests := &fakeImageRequestModerator{
		items: []*models.UniversityImageRequest{{ID: 31, UniversityID: 1, ImageURL: "https://img.example/uw.jpg"}},
	}
	svc := &moderationServiceImpl{
		stores: dispatch,
		listers: pendingListers{
			universities: &fakePendingUniversities{items: []*models.University{{ID: 2, Name: "Pending University"}}},
			faculties:    &fakePendingFaculties{},
			fields:       &fakePendingFields{},
			subjects:     &fakePendingSubjects{items: []*models.Subject{{ID: 9}, {ID: 10}}},
			notes:        &fakePendingNotes{items: []*models.Note{{ID: 11}}},
		},
		imageRequests: requests,
		logger:        zerolog.Nop(),
	}
	return &moderationFixture{svc: svc, stores: stores, requests: requests}
}

func TestModeration_ApproveDispatchesByKind(t *testing.T) {
	fx := newModerationFixture()

	require.NoError(t, fx.svc.Approve(context.Background(), models.KindFaculty, 3))
	assert.Equal(t, []int64{3}, fx.stores[models.KindFaculty].approved)
	assert.Empty(t, fx.stores[models.KindUniversity].approved)
	assert.Empty(t, fx.stores[models.KindFaculty].deleted)
}

func TestModeration_RejectDeletes(t *testing.T) {
	fx := newModerationFixture()

	require.NoError(t, fx.svc.Reject(context.Background(), models.KindNote, 11))
	assert.Equal(t, []int64{11}, fx.stores[models.KindNote].deleted)
	assert.Empty(t, fx.stores[models.KindNote].approved)
}

func TestModeration_UnknownKind(t *testing.T) {
	fx := newModerationFixture()

	err := fx.svc.Approve(context.Background(), models.ModeratedKind("review"), 1)
	assert.ErrorIs(t, err, apperrors.ErrUnknownModeratedKind)

	err = fx.svc.Reject(context.Background(), models.ModeratedKind(""), 1)
	assert.ErrorIs(t, err, apperrors.ErrUnknownModeratedKind)
}

func TestModeration_ListPendingAggregates(t *testing.T) {
	fx := newModerationFixture()

	resp, err := fx.svc.ListPending(context.Background())
	require.NoError(t, err)

	assert.Len(t, resp.Universities, 1)
	assert.Empty(t, resp.Faculties)
	assert.Empty(t, resp.Fields)
	assert.Len(t, resp.Subjects, 2)
	assert.Len(t, resp.Notes, 1)
	assert.Len(t, resp.ImageRequests, 1)
}

func TestModeration_ImageRequestSettlement(t *testing.T) {
	fx := newModerationFixture()

	require.NoError(t, fx.svc.ApproveImageRequest(context.Background(), 31))
	assert.Equal(t, []int64{31}, fx.requests.approved)

	require.NoError(t, fx.svc.RejectImageRequest(context.Background(), 32))
	assert.Equal(t, []int64{32}, fx.requests.rejected)
}

func TestModeration_ImageRequestAlreadySettled(t *testing.T) {
	fx := newModerationFixture()
	fx.requests.err = apperrors.ErrImageRequestSettled

	err := fx.svc.ApproveImageRequest(context.Background(), 31)
	assert.ErrorIs(t, err, apperrors.ErrImageRequestSettled)
}
