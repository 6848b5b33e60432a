package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

// maxImageBytes bounds uploads before they leave the machine.
const maxImageBytes = 10 << 20

// imageUploader implements app.ImageUploader by posting a multipart form.
type imageUploader struct {
	client *Client
}

// NewImageUploader creates an ImageUploader backed by the REST API.
func NewImageUploader(client *Client) *imageUploader {
	return &imageUploader{client: client}
}

func (u *imageUploader) Upload(ctx context.Context, path string) (string, error) {
	path = strings.TrimSpace(path)
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("reading image: %w", err)
	}
	if info.Size() > maxImageBytes {
		return "", fmt.Errorf("image %s is larger than %d bytes", filepath.Base(path), maxImageBytes)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("building upload: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("building upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("building upload: %w", err)
	}

	data, err := u.client.PostRaw(ctx, "/api/images", &buf, mw.FormDataContentType())
	if err != nil {
		return "", fmt.Errorf("uploading image: %w", err)
	}
	var resp struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("parsing upload response: %w", err)
	}
	if resp.URL == "" {
		return "", fmt.Errorf("upload response has no url")
	}
	return resp.URL, nil
}
