package app

import "context"

// ImageUploader stores a local image and returns a reference usable in a comment.
// Encoding and transport are the uploader's concern; callers only see the URL.
type ImageUploader interface {
	Upload(ctx context.Context, path string) (string, error)
}
