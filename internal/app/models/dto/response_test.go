package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAPIResponse(t *testing.T) {
	payload := SuccessResponse{Message: "Entity approved"}

	resp := NewAPIResponse(payload)

	assert.True(t, resp.Success)
	assert.Equal(t, payload, resp.Data)
	assert.Nil(t, resp.Error)
	assert.False(t, resp.Timestamp.IsZero())
}
