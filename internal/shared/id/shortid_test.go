package id

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_LengthAndAlphabet(t *testing.T) {
	for _, length := range []int{1, 6, 12, 32} {
		s, err := Generate(length)
		require.NoError(t, err)
		assert.Len(t, s, length)
		for _, r := range s {
			assert.True(t, strings.ContainsRune(Base62Alphabet, r), "unexpected rune %q", r)
		}
	}
}

func TestGenerate_DefaultLength(t *testing.T) {
	s, err := Generate(0)
	require.NoError(t, err)
	assert.Len(t, s, DefaultLength)
}

func TestGenerateFrom_EmptyAlphabet(t *testing.T) {
	_, err := GenerateFrom("", 4)
	assert.Error(t, err)
}

func TestNewReportCode_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^TF-[0-9A-Z]{6}$`)
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code, err := NewReportCode("TF")
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
		seen[code] = true
	}
	// 36^6 possibilities; 200 draws colliding more than once would indicate a broken source.
	assert.Greater(t, len(seen), 198)
}
