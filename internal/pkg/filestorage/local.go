package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/colloq/colloq/internal/pkg/logger"
)

// Storage abstracts saving and removing uploaded files. Services depend on
// this interface so tests can swap in a fake.
type Storage interface {
	SaveFile(fileHeader *multipart.FileHeader, subPath string) (string, error)
	DeleteFile(filePath string) error
}

// LocalStorage stores uploaded files on the local filesystem, mirrored under
// a public URL prefix.
type LocalStorage struct {
	basePath string
	baseURL  string
}

var _ Storage = (*LocalStorage)(nil)

// NewLocalStorage creates a LocalStorage rooted at basePath. baseURL, if set,
// is prepended to the returned file references.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

// SaveFile writes the uploaded file under an optional subdirectory and
// returns its public reference. Filenames are replaced with a UUID to avoid
// collisions between uploads.
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	fullDirPath := ls.basePath
	if subPath != "" {
		fullDirPath = filepath.Join(ls.basePath, subPath)
		if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
			return "", fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	ext := filepath.Ext(fileHeader.Filename)
	uniqueFilename := uuid.New().String() + ext
	dstPath := filepath.Join(fullDirPath, uniqueFilename)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	var ref string
	if ls.baseURL != "" {
		parts := []string{strings.TrimRight(ls.baseURL, "/")}
		if subPath != "" {
			parts = append(parts, subPath)
		}
		parts = append(parts, uniqueFilename)
		ref = strings.Join(parts, "/")
	} else if subPath != "" {
		ref = filepath.Join("uploads", subPath, uniqueFilename)
	} else {
		ref = filepath.Join("uploads", uniqueFilename)
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("savedAs", uniqueFilename).Msg("File saved")
	return ref, nil
}

// DeleteFile removes a stored file given its public reference, mapping it
// back under basePath with any subdirectory intact. Missing files are not an
// error.
func (ls *LocalStorage) DeleteFile(fileRef string) error {
	if fileRef == "" {
		return nil
	}

	rel := fileRef
	if ls.baseURL != "" {
		rel = strings.TrimPrefix(rel, strings.TrimRight(ls.baseURL, "/"))
	}
	rel = strings.TrimPrefix(strings.TrimPrefix(rel, "/"), "uploads/")
	rel = filepath.Clean(filepath.FromSlash(rel))
	if rel == "" || rel == "." || rel == string(filepath.Separator) || strings.Contains(rel, "..") {
		return fmt.Errorf("invalid file reference: %s", fileRef)
	}

	fullPath := filepath.Join(ls.basePath, rel)
	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete file %s: %w", fullPath, err)
	}
	return nil
}
