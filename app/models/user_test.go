package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserIssueAPIKey(t *testing.T) {
	user := &User{ID: 1}

	key, err := user.IssueAPIKey()
	require.NoError(t, err)
	require.NotEmpty(t, key)

	assert.True(t, strings.HasPrefix(key, "bix_"))
	assert.Equal(t, HashAPIKey(key), user.APIKeyHash)
	assert.NotNil(t, user.APIKeyCreatedAt)
	assert.Nil(t, user.APIKeyLastUsedAt)
}

func TestUserIssueAPIKeyIsUnique(t *testing.T) {
	user := &User{ID: 1}
	first, err := user.IssueAPIKey()
	require.NoError(t, err)
	second, err := user.IssueAPIKey()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestHashAPIKeyIgnoresSurroundingWhitespace(t *testing.T) {
	assert.Equal(t, HashAPIKey("bix_abc"), HashAPIKey("  bix_abc \n"))
	assert.Len(t, HashAPIKey("bix_abc"), 64)
}

func TestUserIsActive(t *testing.T) {
	assert.True(t, (&User{Status: STATUS_ACTIVE}).IsActive())
	assert.False(t, (&User{Status: STATUS_DISABLED}).IsActive())
}
