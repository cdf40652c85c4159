// Package storage defines the interface for asset storage operations.
// Swap implementations by changing the concrete type injected at startup;
// the GitHub backend commits assets to a repository, the MinIO backend works
// with any S3-compatible provider.
//
// Both operations are best-effort from the caller's point of view: an error
// means "the operation did not happen" and must never fail the document write
// that triggered it. Callers check the upload result before persisting a new
// URL and never rely on Delete succeeding.
package storage

import (
	"context"
	"fmt"
	"regexp"
	"time"
)

// Storage is the interface for uploading and deleting assets.
type Storage interface {
	// Upload stores data under a fresh key derived from originalName and
	// returns the stable public URL of the new asset.
	Upload(ctx context.Context, data []byte, originalName string) (string, error)
	// Delete removes the asset a previous Upload returned url for. Empty or
	// foreign URLs are ignored; an already-deleted asset is not an error.
	Delete(ctx context.Context, url string) error
}

var whitespaceRuns = regexp.MustCompile(`\s+`)

// SanitizeName collapses whitespace runs in a filename to single hyphens.
func SanitizeName(name string) string {
	return whitespaceRuns.ReplaceAllString(name, "-")
}

// ObjectKey builds the upload key for a file: a millisecond timestamp prefix
// keeps keys unique and defeats CDN caching of replaced assets.
func ObjectKey(now time.Time, originalName string) string {
	return fmt.Sprintf("uploads/%d-%s", now.UnixMilli(), SanitizeName(originalName))
}
