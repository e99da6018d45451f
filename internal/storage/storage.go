package storage

import (
	"context"
	"mime"
	"path/filepath"
	"strings"
)

// Publisher makes a local file available under objectName and returns the
// URL clients should use to fetch it. Publishing an existing name overwrites it.
type Publisher interface {
	Publish(ctx context.Context, localPath, objectName string) (string, error)
}

func contentType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".mp4":
		return "video/mp4"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
