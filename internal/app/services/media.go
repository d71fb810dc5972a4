package services

import (
	"context"
	"mime/multipart"

	"github.com/sembesalum/tu-chat-api/internal/pkg/filestorage"
	"github.com/sembesalum/tu-chat-api/internal/pkg/helpers"
	"github.com/sembesalum/tu-chat-api/internal/pkg/logger"
)

// mediaURL renders a stored path as an absolute URL, or nil when nothing is stored.
func mediaURL(ctx context.Context, storage filestorage.FileStorage, stored *string) *string {
	if stored == nil || *stored == "" {
		return nil
	}
	u := helpers.AbsoluteURL(ctx, storage.PublicPath(*stored))
	return &u
}

// saveOptional stores fh when present and returns its relative path.
func saveOptional(storage filestorage.FileStorage, fh *multipart.FileHeader, dir string) (*string, error) {
	if fh == nil {
		return nil, nil
	}
	path, err := storage.SaveFileWithPath(fh, dir)
	if err != nil {
		return nil, err
	}
	return &path, nil
}

// discard removes stored files, logging failures. Used after the database no
// longer references them, or to undo a save when the insert fails.
func discard(storage filestorage.FileStorage, paths ...*string) {
	for _, p := range paths {
		if p == nil || *p == "" {
			continue
		}
		if err := storage.DeleteFile(*p); err != nil {
			logger.Warn().Err(err).Str("path", *p).Msg("Failed to delete stored file")
		}
	}
}
