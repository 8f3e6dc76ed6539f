package barcodeapi

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/google/uuid"
)

const (
	imageField    = "image"
	imageFilename = "image.png"
	csvField      = "csvFile"
	csvFilename   = "bulk.csv"
)

// newBoundary returns a multipart boundary unique to one request.
func newBoundary() string {
	return "barcodeapi-" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// buildMultipart encodes a multipart/form-data body holding a single file
// part and returns the body with its Content-Type header value.
func buildMultipart(field, filename, partType string, data []byte) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.SetBoundary(newBoundary()); err != nil {
		return nil, "", fmt.Errorf("set multipart boundary: %w", err)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, filename))
	h.Set("Content-Type", partType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("create multipart part %s: %w", field, err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("write multipart part %s: %w", field, err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
