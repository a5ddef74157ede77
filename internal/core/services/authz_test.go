package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jedzonko/recipes-api/internal/core/domain"
)

func TestAuthorizeOwner(t *testing.T) {
	require.NoError(t, AuthorizeOwner("alice@example.com", "alice@example.com"))

	err := AuthorizeOwner("bob@example.com", "alice@example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
