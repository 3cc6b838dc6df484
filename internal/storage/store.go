package storage

import (
	"context"
	"io"
)

// PutOptions describes upload options for object storage.
type PutOptions struct {
	ContentType string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Path string
	Size int64
}

// Store abstracts byte storage addressed by path. Chunks live under a
// per-session temp prefix, reassembled files and their variants under the
// permanent upload prefix.
type Store interface {
	Put(ctx context.Context, path string, reader io.Reader, size int64, opts PutOptions) error
	Get(ctx context.Context, path string) (io.ReadCloser, ObjectInfo, error)
	Exists(ctx context.Context, path string) (bool, error)
	Remove(ctx context.Context, path string) error
	RemoveDirectory(ctx context.Context, prefix string) error
}

// Default is the main object store instance.
var Default Store
