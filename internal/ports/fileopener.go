package ports

import (
	"context"
	"io"
)

// Meta describes where an opened report file came from. Bucket and Key are
// set only for S3-backed files; Size is -1 when the backend cannot tell.
type Meta struct {
	Source      string
	ContentType string
	Size        int64
	Bucket      string
	Key         string
}

// FileOpener resolves a report reference (s3://bucket/key, http(s) URL or a
// local path) into a readable stream. Callers own closing the reader.
type FileOpener interface {
	Open(ctx context.Context, filePath string) (io.ReadCloser, Meta, error)
}
