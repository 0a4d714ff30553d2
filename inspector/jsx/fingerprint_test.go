package jsx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint(t *testing.T) {
	source := []byte("export const key = 'a';")
	first, err := Fingerprint(source)
	require.NoError(t, err)
	second, err := Fingerprint(append([]byte(nil), source...))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	changed, err := Fingerprint([]byte("export const key = 'b';"))
	require.NoError(t, err)
	assert.NotEqual(t, first, changed)
}
