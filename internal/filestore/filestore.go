// Package filestore holds the uploaded-image backends. Records reference
// images by the public path returned from Save ("/uploads/<name>"); the disk
// backend serves that path directly, the MinIO backend redirects it to a
// presigned object URL.
package filestore

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

const publicPrefix = "/uploads/"

type Store interface {
	// Save streams r into the backend under a freshly generated name derived
	// from originalName, and returns the public path to store on the record.
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)

	// Remove deletes the file behind a public path. Removing a path whose
	// file is already gone is not an error.
	Remove(ctx context.Context, publicPath string) error
}

// genName builds "<unix-ms>-<random>-<original>" so concurrent uploads of the
// same file never collide.
func genName(originalName string) string {
	base := path.Base(strings.ReplaceAll(originalName, "\\", "/"))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" || base == "." {
		base = "upload"
	}
	return fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), uuid.NewString()[:8], base)
}

// objectName strips the public prefix off a stored path.
func objectName(publicPath string) string {
	return strings.TrimPrefix(publicPath, publicPrefix)
}
