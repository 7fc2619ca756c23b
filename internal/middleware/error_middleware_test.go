package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/colloq/colloq/internal/pkg/apperrors"
)

func handleErr(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	HandleAPIError(c, err)
	return rec
}

func TestHandleAPIError_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid credentials", err: apperrors.ErrInvalidCredentials, want: http.StatusUnauthorized},
		{name: "disabled account", err: apperrors.ErrAccountDisabled, want: http.StatusForbidden},
		{name: "university not found", err: apperrors.ErrUniversityNotFound, want: http.StatusNotFound},
		{name: "parent not approved", err: apperrors.ErrParentNotApproved, want: http.StatusNotFound},
		{name: "email exists", err: apperrors.ErrEmailAlreadyExists, want: http.StatusConflict},
		{name: "settled image request", err: apperrors.ErrImageRequestSettled, want: http.StatusConflict},
		{name: "nickname conflict", err: apperrors.NewConflictError("Nickname is already taken"), want: http.StatusConflict},
		{name: "note content required", err: apperrors.ErrNoteContentRequired, want: http.StatusBadRequest},
		{name: "captcha failed", err: apperrors.ErrCaptchaFailed, want: http.StatusBadRequest},
		{name: "unknown moderated kind", err: fmt.Errorf("%w: %q", apperrors.ErrUnknownModeratedKind, "review"), want: http.StatusBadRequest},
		{name: "upstream unavailable", err: apperrors.ErrUpstreamUnavailable, want: http.StatusServiceUnavailable},
		{name: "unclassified", err: errors.New("boom"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := handleErr(tt.err)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandleAPIError_CustomMessageOverride(t *testing.T) {
	rec := handleErr(apperrors.NewConflictError("Nickname is already taken"))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nickname is already taken")
}

func TestHandleAPIError_WrappedSentinel(t *testing.T) {
	wrapped := fmt.Errorf("listing faculties: %w", apperrors.ErrFacultyNotFound)
	rec := handleErr(wrapped)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
