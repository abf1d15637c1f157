// Package attachment stores uploaded issue images on the local filesystem.
package attachment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	apperrors "github.com/techflow/techflow/internal/shared/errors"
	"github.com/techflow/techflow/internal/shared/logger"
)

const maxOriginalNameLen = 64

// AllowedExtensions lists the accepted file extensions, lower case and without a dot.
var AllowedExtensions = []string{"png", "jpg", "jpeg", "gif", "webp"}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

type Storage struct {
	dir      string
	maxBytes int64
	logger   logger.Interface
}

func NewStorage(dir string, maxBytes int64, log logger.Interface) *Storage {
	return &Storage{dir: dir, maxBytes: maxBytes, logger: log}
}

func (s *Storage) Dir() string {
	return s.dir
}

// AllowedExtension reports whether name carries an accepted image extension.
func AllowedExtension(name string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// Save validates and writes one upload, returning the stored file name. The content
// must sniff as an image regardless of the extension.
func (s *Storage) Save(ctx context.Context, originalName string, size int64, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if !AllowedExtension(originalName) {
		return "", apperrors.NewValidationError(
			fmt.Sprintf("file %q has an unsupported type", originalName),
			"allowed types: "+strings.Join(AllowedExtensions, ", "))
	}
	if size > s.maxBytes {
		return "", s.tooLarge(originalName)
	}

	content, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(content)) > s.maxBytes {
		return "", s.tooLarge(originalName)
	}
	if len(content) == 0 {
		return "", apperrors.NewValidationError(fmt.Sprintf("file %q is empty", originalName))
	}

	detected := mimetype.Detect(content)
	if !strings.HasPrefix(detected.String(), "image/") {
		s.logger.Warnw("rejected upload with non-image content",
			"filename", originalName,
			"detected_mime", detected.String())
		return "", apperrors.NewValidationError(fmt.Sprintf("file %q is not an image", originalName))
	}

	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := storedName(originalName, time.Now())
	if err := os.WriteFile(filepath.Join(s.dir, name), content, 0o640); err != nil {
		return "", fmt.Errorf("failed to save upload: %w", err)
	}

	return name, nil
}

func (s *Storage) tooLarge(name string) error {
	return apperrors.NewValidationError(
		fmt.Sprintf("file %q exceeds the %d MB limit", name, s.maxBytes/(1024*1024)))
}

// Remove deletes stored files. Missing files are ignored.
func (s *Storage) Remove(names ...string) error {
	var errs []error
	for _, name := range names {
		path, err := s.resolve(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Clear deletes every stored file and recreates the empty directory.
func (s *Storage) Clear() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("failed to remove upload directory: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("failed to recreate upload directory: %w", err)
	}
	return nil
}

// Path returns the location of a stored file for download.
func (s *Storage) Path(name string) (string, error) {
	path, err := s.resolve(name)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", apperrors.NewNotFoundError("attachment not found")
	}
	return path, nil
}

func (s *Storage) resolve(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return "", apperrors.NewValidationError("invalid attachment name")
	}
	return filepath.Join(s.dir, name), nil
}

// storedName builds "<unix-ts>_<uuid8>_<sanitized-original>".
func storedName(original string, now time.Time) string {
	base := filepath.Base(strings.ReplaceAll(original, `\`, "/"))
	ext := strings.ToLower(filepath.Ext(base))
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = strings.Trim(unsafeNameChars.ReplaceAllString(stem, "_"), "._")
	if stem == "" {
		stem = "image"
	}
	if len(stem) > maxOriginalNameLen {
		stem = stem[:maxOriginalNameLen]
	}
	return fmt.Sprintf("%d_%s_%s%s", now.Unix(), uuid.NewString()[:8], stem, ext)
}
