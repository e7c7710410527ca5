package ports

import (
	"context"
	"io"
)

// ObjectStorage uploads report photos to external storage and returns a public URL.
type ObjectStorage interface {
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)
}

// FileStore keeps event images on local disk.
type FileStore interface {
	Save(filename string, content io.Reader) (string, error)
	Remove(publicPath string) error
}

type Mailer interface {
	Enabled() bool
	SendPasswordReset(ctx context.Context, to, resetLink string) error
}
