package filestorage

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

func uploadHeader(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File[field][0]
}

func TestSaveAndDeleteFile(t *testing.T) {
	root := t.TempDir()
	ls, err := NewLocalStorage(root, "media/")
	require.NoError(t, err)

	rel, err := ls.SaveFileWithPath(uploadHeader(t, "image1", "Phone.JPG", []byte("jpeg")), DirProducts)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "products/"))
	assert.True(t, strings.HasSuffix(rel, ".jpg"))

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))

	assert.Equal(t, "/media/"+rel, ls.PublicPath(rel))

	require.NoError(t, ls.DeleteFile(rel))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	assert.True(t, os.IsNotExist(err))

	// Deleting twice is a no-op.
	assert.NoError(t, ls.DeleteFile(rel))
}

func TestSaveNilHeader(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), "/media")
	require.NoError(t, err)

	rel, err := ls.SaveFileWithPath(nil, DirBlogs)
	require.NoError(t, err)
	assert.Empty(t, rel)
	assert.Empty(t, ls.PublicPath(""))
}

func TestDeleteFileStaysInsideRoot(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "media")
	ls, err := NewLocalStorage(root, "/media")
	require.NoError(t, err)

	outside := filepath.Join(parent, "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o600))

	require.NoError(t, ls.DeleteFile("../secret.txt"))
	_, err = os.Stat(outside)
	assert.NoError(t, err)

	assert.ErrorIs(t, ls.DeleteFile("/"), ErrInvalidPath)
}
