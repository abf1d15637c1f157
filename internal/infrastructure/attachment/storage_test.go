package attachment

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/techflow/techflow/internal/shared/errors"
	"github.com/techflow/techflow/internal/shared/logger"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), bytes.Repeat([]byte{0}, 32)...)

func newTestStorage(t *testing.T, maxBytes int64) *Storage {
	t.Helper()
	return NewStorage(filepath.Join(t.TempDir(), "uploads"), maxBytes, logger.NewLogger())
}

func TestStorage_SaveAndPath(t *testing.T) {
	s := newTestStorage(t, 5<<20)

	name, err := s.Save(context.Background(), "Gate Photo (1).PNG", int64(len(pngBytes)), bytes.NewReader(pngBytes))
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d+_[0-9a-f]{8}_Gate_Photo_1\.png$`), name)

	path, err := s.Path(name)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)
}

func TestStorage_SaveRejects(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int64
		content  []byte
		maxBytes int64
	}{
		{name: "extension", filename: "notes.pdf", size: 10, content: pngBytes, maxBytes: 1 << 20},
		{name: "declared size", filename: "a.png", size: 2 << 20, content: pngBytes, maxBytes: 1 << 20},
		{name: "actual size", filename: "a.png", size: 1, content: bytes.Repeat(pngBytes, 100), maxBytes: 1024},
		{name: "not an image", filename: "a.jpg", size: 11, content: []byte("hello world"), maxBytes: 1 << 20},
		{name: "empty", filename: "a.gif", size: 0, content: nil, maxBytes: 1 << 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStorage(t, tt.maxBytes)
			_, err := s.Save(context.Background(), tt.filename, tt.size, bytes.NewReader(tt.content))
			require.Error(t, err)
			assert.True(t, apperrors.IsValidationError(err))
		})
	}
}

func TestStorage_PathRejectsTraversal(t *testing.T) {
	s := newTestStorage(t, 1<<20)

	for _, name := range []string{"../secret.png", "a/b.png", `..\x.png`, ""} {
		_, err := s.Path(name)
		assert.True(t, apperrors.IsValidationError(err), name)
	}

	_, err := s.Path("missing.png")
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestStorage_RemoveAndClear(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t, 1<<20)

	a, err := s.Save(ctx, "a.png", int64(len(pngBytes)), bytes.NewReader(pngBytes))
	require.NoError(t, err)
	b, err := s.Save(ctx, "b.png", int64(len(pngBytes)), bytes.NewReader(pngBytes))
	require.NoError(t, err)

	require.NoError(t, s.Remove(a, "never-existed.png"))
	_, err = s.Path(a)
	assert.Error(t, err)

	require.NoError(t, s.Clear())
	_, err = s.Path(b)
	assert.Error(t, err)

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStoredName(t *testing.T) {
	now := time.Unix(1700000000, 0)
	assert.Regexp(t, `^1700000000_[0-9a-f]{8}_image\.webp$`, storedName("???.webp", now))
	assert.Regexp(t, `^1700000000_[0-9a-f]{8}_evil\.jpg$`, storedName("../../evil.jpg", now))
}

func TestAllowedExtension(t *testing.T) {
	assert.True(t, AllowedExtension("x.JPEG"))
	assert.True(t, AllowedExtension("x.webp"))
	assert.False(t, AllowedExtension("x.svg"))
	assert.False(t, AllowedExtension("png"))
}
