package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colloq/colloq/internal/pkg/apperrors"
)

func TestParseModeratedKind(t *testing.T) {
	for _, k := range ModeratedKinds {
		got, err := ParseModeratedKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
}

func TestParseModeratedKind_Unknown(t *testing.T) {
	for _, raw := range []string{"", "review", "University", "note "} {
		_, err := ParseModeratedKind(raw)
		assert.ErrorIs(t, err, apperrors.ErrUnknownModeratedKind, "raw=%q", raw)
	}
}
