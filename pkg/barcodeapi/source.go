package barcodeapi

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Source supplies the bytes of an uploaded file. The set of sources is
// closed: use Bytes, File or Reader.
type Source interface {
	resolve() ([]byte, error)
}

type bytesSource []byte

// Bytes uses an in-memory buffer as the upload content.
func Bytes(b []byte) Source { return bytesSource(b) }

func (s bytesSource) resolve() ([]byte, error) {
	if s == nil {
		return nil, invalidInput("nil byte buffer")
	}
	return []byte(s), nil
}

type fileSource string

// File reads the upload content from disk when the call is made.
func File(path string) Source { return fileSource(path) }

func (s fileSource) resolve() ([]byte, error) {
	path := strings.TrimSpace(string(s))
	if path == "" {
		return nil, invalidInput("empty file path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrInvalidInput, path, err)
	}
	return data, nil
}

type readerSource struct {
	r io.Reader
}

// Reader drains r when the call is made. The reader is not closed.
func Reader(r io.Reader) Source { return readerSource{r: r} }

func (s readerSource) resolve() ([]byte, error) {
	if s.r == nil {
		return nil, invalidInput("nil reader")
	}
	data, err := io.ReadAll(s.r)
	if err != nil {
		return nil, fmt.Errorf("%w: read stream: %w", ErrInvalidInput, err)
	}
	return data, nil
}

func resolveSource(src Source) ([]byte, error) {
	if src == nil {
		return nil, invalidInput("nil source")
	}
	return src.resolve()
}
