package app

import (
	"encoding/base64"
	"net/http"
	"strings"

	"quizflow/internal/domain"
)

// encodeImageDataURI turns uploaded bytes into an embeddable data URI.
// Uploads are sniffed and must be images; maxBytes caps the raw size because
// the URI is stored inline in the document row.
func encodeImageDataURI(data []byte, maxBytes int64) (string, error) {
	if len(data) == 0 {
		return "", domain.ErrNotImage
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return "", domain.ErrImageTooLarge
	}
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", domain.ErrNotImage
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
