// Package media stores uploaded thumbnails on an external object host.
package media

import (
	"context"

	"github.com/gabriel-vasile/mimetype"
)

// Upload folders.
const (
	FolderPosts    = "portfolio-posts"
	FolderProjects = "portfolio-projects"
)

// AllowedTypes are the image types accepted as thumbnails.
var AllowedTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

// File is an uploaded file held in memory.
type File struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Asset is a stored file: where it is served from and the handle to delete it by.
type Asset struct {
	URL      string
	PublicID string
}

// Host stores and removes binary assets.
type Host interface {
	Upload(ctx context.Context, folder string, f *File) (*Asset, error)
	Delete(ctx context.Context, publicID string) error
	// PublicID recovers the delete handle from a URL this host produced.
	PublicID(url string) (string, bool)
}

// Detect sniffs the content type and canonical extension from the file bytes.
func Detect(data []byte) (contentType, ext string) {
	m := mimetype.Detect(data)
	return m.String(), m.Extension()
}

// Allowed reports whether contentType is an accepted thumbnail type.
func Allowed(contentType string) bool {
	for _, t := range AllowedTypes {
		if t == contentType {
			return true
		}
	}
	return false
}
