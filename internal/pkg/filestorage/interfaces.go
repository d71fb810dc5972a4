package filestorage

import (
	"mime/multipart"
)

// Upload directories
const (
	DirMaterials       = "materials"
	DirEvents          = "events"
	DirBlogs           = "blogs"
	DirLeaders         = "leaders"
	DirGroups          = "group_pictures"
	DirProducts        = "products"
	DirProfilePictures = "profile_pictures"
)

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFileWithPath stores the upload under subPath and returns the path
	// relative to the storage root. A nil header stores nothing and returns "".
	SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes a stored file by its relative path. Missing files are not an error.
	DeleteFile(filePath string) error

	// PublicPath maps a stored relative path to the URL path it is served under.
	PublicPath(filePath string) string
}
