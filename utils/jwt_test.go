package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndExtractToken(t *testing.T) {
	token, err := GenerateToken("farmer-123", "farmer")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, role, err := ExtractIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "farmer-123", id)
	assert.Equal(t, "farmer", role)
}

func TestValidateToken_RejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)

	_, _, err = ExtractIDFromToken("")
	assert.Error(t, err)
}

func TestHashToken_Deterministic(t *testing.T) {
	a := HashToken("token-value")
	b := HashToken("token-value")
	c := HashToken("other-value")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
