package crypto

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomBase36(t *testing.T) {
	s, err := RandomBase36(12)
	require.NoError(t, err)
	assert.Len(t, s, 12)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-z]+$`), s)

	other, err := RandomBase36(12)
	require.NoError(t, err)
	assert.NotEqual(t, s, other)

	empty, err := RandomBase36(0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
