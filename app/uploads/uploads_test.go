package uploads

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartFile(t *testing.T, field, filename, content string) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	r := httptest.NewRequest("POST", "/dashboard", &body)
	r.Header.Set("Content-Type", writer.FormDataContentType())

	file, header, err := r.FormFile(field)
	require.NoError(t, err)
	return file, header
}

func TestSaverSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	saver, err := NewSaver(dir)
	require.NoError(t, err)

	file, header := multipartFile(t, "file", "picture.png", "not really a png")
	defer file.Close()

	url, err := saver.Save(file, header)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/uploads/"), "got %q", url)
	assert.True(t, strings.HasSuffix(url, ".png"), "extension should survive, got %q", url)

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, "not really a png", string(data))
}

func TestSaverUniqueNames(t *testing.T) {
	saver, err := NewSaver(t.TempDir())
	require.NoError(t, err)

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		file, header := multipartFile(t, "file", "same.txt", "same content")
		url, err := saver.Save(file, header)
		file.Close()
		require.NoError(t, err)
		assert.False(t, seen[url], "duplicate upload name %q", url)
		seen[url] = true
	}
}
