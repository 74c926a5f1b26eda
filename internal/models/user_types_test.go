package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordSetAndMatches(t *testing.T) {
	var p Password
	require.NoError(t, p.Set("rahasia-banget"))
	require.NotEmpty(t, p.Hash)
	assert.NotEqual(t, "rahasia-banget", p.Hash)

	match, err := p.Matches("rahasia-banget")
	require.NoError(t, err)
	assert.True(t, match)

	match, err = p.Matches("salah")
	require.NoError(t, err)
	assert.False(t, match)
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []string{OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled} {
		assert.True(t, ValidOrderStatus(s), s)
	}
	for _, s := range []string{"", "pending", "SHIPPED", "DONE"} {
		assert.False(t, ValidOrderStatus(s), s)
	}
}
