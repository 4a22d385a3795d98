package media

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	apperrors "foodgram/internal/errors"
)

// ErrInvalidImage is returned when the payload is not a decodable
// base64 image data URI. It is the domain sentinel, so handlers map it
// to a validation error rather than an internal one.
var ErrInvalidImage = apperrors.ErrInvalidImage

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Store persists uploaded recipe images on the local filesystem under
// a media directory. Serving them (CDN, static file handler) is the
// delivery layer's concern.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dir, "recipes"), 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// SaveBase64 decodes a "data:image/...;base64,..." payload and writes
// it under recipes/ with a random name. It returns the path relative
// to the media dir, which is what gets stored on the recipe row.
func (s *Store) SaveBase64(data string) (string, error) {
	mediaType, encoded, ok := splitDataURI(data)
	if !ok {
		return "", ErrInvalidImage
	}
	ext, ok := extensions[mediaType]
	if !ok {
		return "", ErrInvalidImage
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidImage
	}

	rel := filepath.Join("recipes", uuid.New().String()+ext)
	if err := os.WriteFile(filepath.Join(s.dir, rel), raw, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return rel, nil
}

// Remove deletes a previously stored image; a missing file is not an
// error, the reference is stale either way.
func (s *Store) Remove(rel string) error {
	if rel == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, rel))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func splitDataURI(data string) (mediaType, encoded string, ok bool) {
	rest, found := strings.CutPrefix(data, "data:")
	if !found {
		return "", "", false
	}
	meta, encoded, found := strings.Cut(rest, ",")
	if !found {
		return "", "", false
	}
	mediaType, found = strings.CutSuffix(meta, ";base64")
	if !found {
		return "", "", false
	}
	return mediaType, encoded, true
}
