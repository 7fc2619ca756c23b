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

type fakeUserStore struct {
	users   map[int64]*models.User
	updated *models.User
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, user *models.User) error {
	f.updated = user
	return nil
}

type fakeFavoriteLister struct {
	favorites []*models.Note
}

func (f *fakeFavoriteLister) ListFavoritesByUser(_ context.Context, _ int64) ([]*models.Note, error) {
	return f.favorites, nil
}

func newTestUserService(users *fakeUserStore) UserService {
	return NewUserService(users, approvedUniversityLookup(), &fakeFavoriteLister{}, zerolog.Nop())
}

func profileFixture() *fakeUserStore {
	bio := "stary opis"
	return &fakeUserStore{users: map[int64]*models.User{
		7: {ID: 7, Email: "student@colloq.pl", Nickname: "student42", Bio: &bio, IsActive: true},
	}}
}

func TestUpdateProfile_AppliesProvidedFields(t *testing.T) {
	users := profileFixture()
	svc := newTestUserService(users)

	req := dto.UpdateProfileRequest{
		Nickname:  strPtr("  anka  "),
		Bio:       strPtr("nowy opis"),
		AvatarURL: strPtr("https://cdn.colloq.pl/avatars/anka.png"),
	}
	user, err := svc.UpdateProfile(context.Background(), 7, req)
	require.NoError(t, err)

	assert.Equal(t, "anka", user.Nickname)
	assert.Equal(t, "nowy opis", *user.Bio)
	require.NotNil(t, user.AvatarURL)
	assert.Equal(t, "https://cdn.colloq.pl/avatars/anka.png", *user.AvatarURL)
	require.NotNil(t, users.updated)
	assert.Equal(t, user.AvatarURL, users.updated.AvatarURL)
}

func TestUpdateProfile_NilFieldsKeepCurrentValues(t *testing.T) {
	users := profileFixture()
	svc := newTestUserService(users)

	user, err := svc.UpdateProfile(context.Background(), 7, dto.UpdateProfileRequest{})
	require.NoError(t, err)

	assert.Equal(t, "student42", user.Nickname)
	assert.Equal(t, "stary opis", *user.Bio)
	assert.Nil(t, user.AvatarURL)
}

func TestUpdateProfile_UnknownUniversity(t *testing.T) {
	svc := newTestUserService(profileFixture())

	uniID := int64(99)
	_, err := svc.UpdateProfile(context.Background(), 7, dto.UpdateProfileRequest{UniversityID: &uniID})
	assert.ErrorIs(t, err, apperrors.ErrUniversityNotFound)
}

func TestUpdateProfile_UnknownUser(t *testing.T) {
	svc := newTestUserService(&fakeUserStore{})

	_, err := svc.UpdateProfile(context.Background(), 99, dto.UpdateProfileRequest{})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
