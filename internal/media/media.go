// Package media stores uploaded product images and returns their public URLs.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// sniffLen is the number of leading bytes http.DetectContentType inspects.
const sniffLen = 512

// ErrNotImage is returned for uploads whose content is not an accepted image.
var ErrNotImage = errors.New("content is not an accepted image type")

// Store persists a blob under name and returns the URL it is served from.
type Store interface {
	Put(ctx context.Context, name, contentType string, body io.Reader) (string, error)
}

// imageExtensions lists the accepted sniffed content types. Formats that can
// carry script, such as SVG, are deliberately absent.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// DetectImage sniffs the content type of r from its leading bytes. It returns
// the detected type and a reader yielding the full, unconsumed content, or
// ErrNotImage when the content is not an accepted image.
func DetectImage(r io.Reader) (string, io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", nil, fmt.Errorf("failed to read upload: %w", err)
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	if _, ok := imageExtensions[contentType]; !ok {
		return "", nil, ErrNotImage
	}
	return contentType, io.MultiReader(bytes.NewReader(head), r), nil
}

// ObjectName builds a unique object name for an upload. The extension always
// follows the detected content type, never the client-supplied file name.
func ObjectName(contentType string, now time.Time) string {
	return fmt.Sprintf("image-%d-%s%s", now.UnixMilli(), uuid.NewString()[:8], imageExtensions[contentType])
}
