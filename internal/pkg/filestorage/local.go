package filestorage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/sembesalum/tu-chat-api/internal/pkg/logger"
)

// ErrInvalidPath is returned for paths escaping the storage root.
var ErrInvalidPath = errors.New("invalid file path")

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath  string
	urlPrefix string
}

// NewLocalStorage creates the storage root if needed. urlPrefix is the route
// the root is served under, e.g. "/media".
func NewLocalStorage(basePath, urlPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	return &LocalStorage{
		basePath:  basePath,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
	}, nil
}

// BasePath is the directory files are written to.
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

// URLPrefix is the route files are served under.
func (ls *LocalStorage) URLPrefix() string {
	return ls.urlPrefix
}

// SaveFileWithPath saves a file to a specified subdirectory
func (ls *LocalStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	subPath = strings.Trim(path.Clean("/"+filepath.ToSlash(subPath)), "/")
	dir := filepath.Join(ls.basePath, filepath.FromSlash(subPath))
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create subdirectory: %w", err)
	}

	name := uuid.New().String() + strings.ToLower(filepath.Ext(fileHeader.Filename))
	dstPath := filepath.Join(dir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	rel := path.Join(subPath, name)
	logger.Debug().Str("filename", fileHeader.Filename).Str("stored_as", rel).Msg("File saved")
	return rel, nil
}

// DeleteFile removes a file from the storage filesystem.
func (ls *LocalStorage) DeleteFile(filePath string) error {
	if filePath == "" {
		return nil
	}

	physical, err := ls.physicalPath(filePath)
	if err != nil {
		return err
	}

	if err := os.Remove(physical); err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("path", physical).Msg("File to delete does not exist")
			return nil
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Debug().Str("path", physical).Msg("File deleted")
	return nil
}

// PublicPath maps a stored relative path to its URL path.
func (ls *LocalStorage) PublicPath(filePath string) string {
	if filePath == "" {
		return ""
	}
	return ls.urlPrefix + "/" + strings.TrimLeft(filepath.ToSlash(filePath), "/")
}

func (ls *LocalStorage) physicalPath(filePath string) (string, error) {
	clean := path.Clean("/" + filepath.ToSlash(filePath))
	if clean == "/" {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, filePath)
	}
	return filepath.Join(ls.basePath, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}
