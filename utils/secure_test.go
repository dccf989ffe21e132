package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()

	salt1 := GenerateSalt()
	salt2 := GenerateSalt()

	assert.Equal(t, HashPassword("test", salt1), HashPassword("test", salt1))
	assert.NotEqual(t, HashPassword("test", salt1), HashPassword("test", salt2))
	assert.NotEqual(t, HashPassword("test", salt1), HashPassword("other", salt1))
}
