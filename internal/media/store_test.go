package media

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testDataURI(mediaType string, raw []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(raw)
}

func TestStore_SaveBase64(t *testing.T) {
	store, err := NewStore(t.TempDir())
	assert.NoError(t, err)

	raw := []byte("not a real jpeg but the store does not care")
	rel, err := store.SaveBase64(testDataURI("image/jpeg", raw))

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "recipes"+string(filepath.Separator)))
	assert.True(t, strings.HasSuffix(rel, ".jpg"))

	written, err := os.ReadFile(filepath.Join(store.dir, rel))
	assert.NoError(t, err)
	assert.Equal(t, raw, written)
}

func TestStore_SaveBase64_Invalid(t *testing.T) {
	store, err := NewStore(t.TempDir())
	assert.NoError(t, err)

	tests := []struct {
		name string
		data string
	}{
		{name: "empty", data: ""},
		{name: "no data prefix", data: "image/jpeg;base64,AAAA"},
		{name: "no comma", data: "data:image/jpeg;base64"},
		{name: "not base64 marked", data: "data:image/jpeg,AAAA"},
		{name: "unsupported media type", data: testDataURI("application/pdf", []byte("x"))},
		{name: "bad base64 payload", data: "data:image/png;base64,!!!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.SaveBase64(tt.data)
			assert.ErrorIs(t, err, ErrInvalidImage)
		})
	}
}

func TestStore_Remove(t *testing.T) {
	store, err := NewStore(t.TempDir())
	assert.NoError(t, err)

	rel, err := store.SaveBase64(testDataURI("image/png", []byte("png bytes")))
	assert.NoError(t, err)

	assert.NoError(t, store.Remove(rel))
	_, err = os.Stat(filepath.Join(store.dir, rel))
	assert.True(t, os.IsNotExist(err))

	// Removing again (or removing nothing) is not an error.
	assert.NoError(t, store.Remove(rel))
	assert.NoError(t, store.Remove(""))
}
