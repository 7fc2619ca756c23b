package filestorage

import (
	"bytes"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["image"]
	require.Len(t, files, 1)
	return files[0]
}

// storedPath maps a public reference back to where the file should live on
// disk, independently of the implementation under test.
func storedPath(basePath, subPath, ref string) string {
	return filepath.Join(basePath, subPath, path.Base(ref))
}

func TestSaveAndDeleteFile_Subdirectory(t *testing.T) {
	base := t.TempDir()
	storage, err := NewLocalStorage(base, "http://localhost:8080/uploads")
	require.NoError(t, err)

	ref, err := storage.SaveFile(newFileHeader(t, "notes.png", "png-bytes"), "notes")
	require.NoError(t, err)
	assert.Contains(t, ref, "http://localhost:8080/uploads/notes/")

	onDisk := storedPath(base, "notes", ref)
	_, err = os.Stat(onDisk)
	require.NoError(t, err, "saved file must exist under basePath/notes")

	require.NoError(t, storage.DeleteFile(ref))
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err), "deleted file must be gone from disk")
}

func TestSaveAndDeleteFile_NoBaseURL(t *testing.T) {
	base := t.TempDir()
	storage, err := NewLocalStorage(base, "")
	require.NoError(t, err)

	ref, err := storage.SaveFile(newFileHeader(t, "avatar.jpg", "jpg-bytes"), "avatars")
	require.NoError(t, err)

	onDisk := storedPath(base, "avatars", ref)
	_, err = os.Stat(onDisk)
	require.NoError(t, err)

	require.NoError(t, storage.DeleteFile(ref))
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteFile_MissingIsNoError(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	assert.NoError(t, storage.DeleteFile("http://localhost:8080/uploads/notes/gone.png"))
}

func TestDeleteFile_RejectsTraversal(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	assert.Error(t, storage.DeleteFile("http://localhost:8080/uploads/../../etc/passwd"))
	assert.NoError(t, storage.DeleteFile(""))
}
