package storage

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

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// fileHeader builds a *multipart.FileHeader the way echo hands one to the
// handlers: through a parsed multipart request.
func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	fhs := req.MultipartForm.File["file"]
	require.Len(t, fhs, 1)
	return fhs[0]
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir(), 1024, "http://localhost:8080")
	require.NoError(t, err)
	return s
}

func TestAllowedImageMIME(t *testing.T) {
	assert.True(t, AllowedImageMIME("image/png"))
	assert.True(t, AllowedImageMIME("image/jpeg"))
	assert.True(t, AllowedImageMIME(" IMAGE/WEBP ")) // normalized before lookup
	assert.True(t, AllowedImageMIME("image/webp"))
	assert.False(t, AllowedImageMIME("application/pdf"))
	assert.False(t, AllowedImageMIME("text/plain"))
	assert.False(t, AllowedImageMIME(""))
}

func TestSaveImagePNG(t *testing.T) {
	s := newTestStore(t)
	content := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 64)...)

	url, err := s.SaveImage(fileHeader(t, "photo.png", content))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".png"))
	// The stored name is random, not the client-supplied one.
	assert.NotContains(t, url, "photo")

	name := filepath.Base(url)
	saved, err := os.ReadFile(filepath.Join(s.Dir, name))
	require.NoError(t, err)
	assert.Equal(t, content, saved)
}

func TestSaveImageRejectsNonImage(t *testing.T) {
	s := newTestStore(t)
	_, err := s.SaveImage(fileHeader(t, "notes.txt", []byte("just some text, not an image")))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestSaveImageRejectsSpoofedExtension(t *testing.T) {
	s := newTestStore(t)
	// Content sniffing, not the file name, decides the type.
	_, err := s.SaveImage(fileHeader(t, "malware.png", []byte("#!/bin/sh\necho pwned")))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestSaveImageRejectsTooLarge(t *testing.T) {
	s := newTestStore(t)
	content := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 2048)...)
	_, err := s.SaveImage(fileHeader(t, "big.png", content))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)
	content := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 16)...)
	url, err := s.SaveImage(fileHeader(t, "gone.png", content))
	require.NoError(t, err)

	s.Remove(url)
	_, statErr := os.Stat(filepath.Join(s.Dir, filepath.Base(url)))
	assert.True(t, os.IsNotExist(statErr))

	// Removing twice is harmless.
	s.Remove(url)
}
