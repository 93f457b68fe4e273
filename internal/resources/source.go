package resources

import (
	"context"
	"os"
)

// Source supplies the raw bytes for one load operation.
type Source interface {
	Name() string
	Read(ctx context.Context) ([]byte, error)
}

// FileSource reads from a path on disk.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return s.Path }

func (s FileSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(s.Path)
}

// BytesSource wraps already-retrieved bytes, e.g. an HTTP upload.
type BytesSource struct {
	name string
	data []byte
}

func NewBytesSource(name string, data []byte) BytesSource {
	return BytesSource{name: name, data: data}
}

func (s BytesSource) Name() string { return s.name }

func (s BytesSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.data, nil
}
