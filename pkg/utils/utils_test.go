package utils

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	h, err := HashPassword("password1")
	require.NoError(t, err)
	assert.NotEqual(t, "password1", h)

	assert.True(t, CheckPassword("password1", h))
	assert.False(t, CheckPassword("password2", h))
	assert.False(t, CheckPassword("password1", "not-a-hash"))
}

func TestHashPasswordIsSalted(t *testing.T) {
	a, err := HashPassword("same-password")
	require.NoError(t, err)
	b, err := HashPassword("same-password")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHashPasswordLongerThan72Bytes(t *testing.T) {
	long := strings.Repeat("p", 80)
	h, err := HashPassword(long)
	require.NoError(t, err)
	assert.True(t, CheckPassword(long, h))
	// 超出 72 字节的部分不参与比较
	assert.True(t, CheckPassword(long[:72], h))
	assert.False(t, CheckPassword(long[:71], h))
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	assert.NoError(t, err)
}
