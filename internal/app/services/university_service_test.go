package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colloq/colloq/internal/app/models"
	"github.com/colloq/colloq/internal/app/models/dto"
	"github.com/colloq/colloq/internal/pkg/apperrors"
)

type fakeUniversityStore struct {
	*fakeUniversityLookup
	nextID    int64
	createErr error
}

func (f *fakeUniversityStore) CreateUniversity(_ context.Context, _ *models.University) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextID++
	return 100 + f.nextID, nil
}

func (f *fakeUniversityStore) ListApproved(_ context.Context, _ string) ([]*models.University, error) {
	out := []*models.University{}
	for _, u := range f.unis {
		if u.IsApproved {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeReviewStore struct {
	reviews []*models.Review
}

func (f *fakeReviewStore) CreateReview(_ context.Context, review *models.Review) error {
	review.ID = int64(len(f.reviews) + 1)
	f.reviews = append(f.reviews, review)
	return nil
}

func (f *fakeReviewStore) ListByUniversity(_ context.Context, universityID int64) ([]*models.Review, error) {
	out := []*models.Review{}
	for _, r := range f.reviews {
		if r.UniversityID == universityID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeImageRequestStore struct {
	created []*models.UniversityImageRequest
}

func (f *fakeImageRequestStore) Create(_ context.Context, req *models.UniversityImageRequest) (int64, error) {
	f.created = append(f.created, req)
	return int64(len(f.created)), nil
}

func newTestUniversityService(unis *fakeUniversityStore, reviews *fakeReviewStore, requests *fakeImageRequestStore) UniversityService {
	return NewUniversityService(unis, reviews, requests, zerolog.Nop())
}

func universityFixture() *fakeUniversityStore {
	return &fakeUniversityStore{fakeUniversityLookup: approvedUniversityLookup()}
}

func TestGetUniversity_UnapprovedHidden(t *testing.T) {
	svc := newTestUniversityService(universityFixture(), &fakeReviewStore{}, &fakeImageRequestStore{})

	_, err := svc.Get(context.Background(), 2)
	assert.ErrorIs(t, err, apperrors.ErrUniversityNotFound)

	u, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
}

func TestSubmitUniversity_StartsUnapproved(t *testing.T) {
	svc := newTestUniversityService(universityFixture(), &fakeReviewStore{}, &fakeImageRequestStore{})

	req := dto.CreateUniversityRequest{Name: "  Politechnika Warszawska  ", City: strPtr("Warszawa"), Region: strPtr("mazowieckie")}
	u, err := svc.Submit(context.Background(), req, 7)
	require.NoError(t, err)

	assert.Equal(t, "Politechnika Warszawska", u.Name)
	assert.False(t, u.IsApproved)
	require.NotNil(t, u.SubmittedByID)
	assert.Equal(t, int64(7), *u.SubmittedByID)
}

func TestAddReview_GatesOnApprovedUniversity(t *testing.T) {
	reviews := &fakeReviewStore{}
	svc := newTestUniversityService(universityFixture(), reviews, &fakeImageRequestStore{})

	req := dto.CreateReviewRequest{Rating: 5, Content: "  great library  "}
	_, err := svc.AddReview(context.Background(), 2, 7, req)
	assert.ErrorIs(t, err, apperrors.ErrUniversityNotFound)

	review, err := svc.AddReview(context.Background(), 1, 7, req)
	require.NoError(t, err)
	assert.Equal(t, "great library", review.Content)
	assert.Equal(t, 5, review.Rating)
	assert.Len(t, reviews.reviews, 1)
}

func TestRequestImage_StartsPending(t *testing.T) {
	requests := &fakeImageRequestStore{}
	svc := newTestUniversityService(universityFixture(), &fakeReviewStore{}, requests)

	req, err := svc.RequestImage(context.Background(), 1, 7, "https://img.example/uw.jpg")
	require.NoError(t, err)

	assert.Equal(t, models.ImageRequestPending, req.Status)
	assert.Equal(t, "https://img.example/uw.jpg", req.ImageURL)

	_, err = svc.RequestImage(context.Background(), 2, 7, "https://img.example/x.jpg")
	assert.ErrorIs(t, err, apperrors.ErrUniversityNotFound)
}
