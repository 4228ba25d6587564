package httpapi

import (
	"errors"
	"io"
	"mime/multipart"
)

var errUnauthenticated = errors.New("authentication required")

// readUpload drains a multipart file and returns its bytes with the
// declared content type (image/png when the client sent none).
func readUpload(header *multipart.FileHeader) ([]byte, string, error) {
	f, err := header.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/png"
	}
	return data, mimeType, nil
}
