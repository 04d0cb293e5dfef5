package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	h := HashPassword("correct horse battery staple")
	require.NotEmpty(t, h)
	assert.NotContains(t, h, "correct horse")

	assert.True(t, CheckPassword("correct horse battery staple", h))
	assert.False(t, CheckPassword("wrong password", h))
	assert.False(t, CheckPassword("", h))
}

func TestPasswordHashIsSalted(t *testing.T) {
	a := HashPassword("samepassword")
	b := HashPassword("samepassword")
	assert.NotEqual(t, a, b)
}
