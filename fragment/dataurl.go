package fragment

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

var (
	ErrEmptyFile = errors.New("fragment: empty file")
	ErrNotImage  = errors.New("fragment: not an image")
)

// DataURL inlines data as a base64 data URL. The media type comes from the
// file extension when it names an image, otherwise it is sniffed.
func DataURL(data []byte, name string) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = http.DetectContentType(data[:min(512, len(data))])
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return "", fmt.Errorf("%w: %s", ErrNotImage, mimeType)
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// ReadDataURL reads path with read and inlines it. A cancelled ctx wins over
// a completed read.
func ReadDataURL(ctx context.Context, path string, read func(string) ([]byte, error)) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := read(path)
	if err != nil {
		return "", fmt.Errorf("read image %s: %w", filepath.Base(path), err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return DataURL(data, path)
}
