package contracts

import (
	"context"
	"io"
	"time"
)

type StoredObject struct {
	Name         string
	Size         int64
	ContentType  string
	LastModified time.Time
}

type StorageRepository interface {
	UploadFile(ctx context.Context, objectName, contentType string, content io.Reader, size int64) error
	ListObjects(ctx context.Context, prefix string) ([]StoredObject, error)
	PresignedGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
	RemoveObject(ctx context.Context, objectName string) error
}
