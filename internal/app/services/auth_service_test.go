package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colloq/colloq/internal/app/models"
	"github.com/colloq/colloq/internal/app/models/dto"
	"github.com/colloq/colloq/internal/pkg/apperrors"
	"github.com/colloq/colloq/internal/pkg/auth"
)

type fakeAuthUserStore struct {
	usersByEmail map[string]*models.User
	created      []*models.User
	nextID       int64
	createErr    error
}

func (f *fakeAuthUserStore) CreateUser(_ context.Context, user *models.User) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextID++
	f.created = append(f.created, user)
	return f.nextID, nil
}

func (f *fakeAuthUserStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	for _, u := range f.usersByEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeAuthUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := f.usersByEmail[email]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

type fakeUniversityLookup struct {
	unis map[int64]*models.University
}

func (f *fakeUniversityLookup) GetUniversityByID(_ context.Context, id int64) (*models.University, error) {
	if u, ok := f.unis[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUniversityNotFound
}

type fakeCaptchaVerifier struct {
	err error
}

func (f *fakeCaptchaVerifier) Verify(_ context.Context, _ string) error {
	return f.err
}

func newTestAuthService(users *fakeAuthUserStore, unis *fakeUniversityLookup, captchaErr error) AuthService {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "colloq-test",
	})
	return NewAuthService(users, unis, jwtService, &fakeCaptchaVerifier{err: captchaErr}, zerolog.Nop())
}

func registerRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:        "  Student@Colloq.PL ",
		Password:     "s3cret-password",
		Nickname:     "student42",
		CaptchaToken: "token",
	}
}

func TestRegister_CaptchaFailure(t *testing.T) {
	svc := newTestAuthService(&fakeAuthUserStore{}, &fakeUniversityLookup{}, apperrors.ErrCaptchaFailed)

	_, err := svc.Register(context.Background(), registerRequest())
	assert.ErrorIs(t, err, apperrors.ErrCaptchaFailed)
}

func TestRegister_Success(t *testing.T) {
	users := &fakeAuthUserStore{}
	svc := newTestAuthService(users, &fakeUniversityLookup{}, nil)

	user, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "student@colloq.pl", user.Email)
	assert.Equal(t, "student42", user.Nickname)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsAdmin)
	assert.False(t, user.IsVerified)
	assert.NotEqual(t, "s3cret-password", user.Password)
	assert.True(t, auth.CheckPassword(user.Password, "s3cret-password"))
}

func TestRegister_NicknameDefaultsToEmailLocalPart(t *testing.T) {
	svc := newTestAuthService(&fakeAuthUserStore{}, &fakeUniversityLookup{}, nil)

	req := registerRequest()
	req.Nickname = "  "

	user, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "student", user.Nickname)
}

func TestRegister_UnknownUniversity(t *testing.T) {
	svc := newTestAuthService(&fakeAuthUserStore{}, &fakeUniversityLookup{}, nil)

	req := registerRequest()
	uniID := int64(99)
	req.UniversityID = &uniID

	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrUniversityNotFound)
}

func TestLogin_Success(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-password")
	require.NoError(t, err)

	users := &fakeAuthUserStore{usersByEmail: map[string]*models.User{
		"student@colloq.pl": {ID: 7, Email: "student@colloq.pl", Password: hash, Nickname: "student42", IsActive: true},
	}}
	svc := newTestAuthService(users, &fakeUniversityLookup{}, nil)

	user, token, err := svc.Login(context.Background(), "Student@Colloq.PL", "s3cret-password")
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, int64(3600), token.ExpiresIn)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-password")
	require.NoError(t, err)

	users := &fakeAuthUserStore{usersByEmail: map[string]*models.User{
		"student@colloq.pl": {ID: 7, Email: "student@colloq.pl", Password: hash, IsActive: true},
	}}
	svc := newTestAuthService(users, &fakeUniversityLookup{}, nil)

	// unknown email and wrong password produce the same error
	_, _, err = svc.Login(context.Background(), "nobody@colloq.pl", "s3cret-password")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "student@colloq.pl", "wrong-password")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_DisabledAccount(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-password")
	require.NoError(t, err)

	users := &fakeAuthUserStore{usersByEmail: map[string]*models.User{
		"student@colloq.pl": {ID: 7, Email: "student@colloq.pl", Password: hash, IsActive: false},
	}}
	svc := newTestAuthService(users, &fakeUniversityLookup{}, nil)

	_, _, err = svc.Login(context.Background(), "student@colloq.pl", "s3cret-password")
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}
