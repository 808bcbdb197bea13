package storage

import (
	"clinic-admin-service/internal/app/contracts"
	"clinic-admin-service/internal/pkg/exceptions"
	"context"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
)

type minioStorage struct {
	MinioClient *minio.Client
	BucketName  string
}

func NewMinioStorage(minioClient *minio.Client, bucketName string) contracts.StorageRepository {
	return &minioStorage{
		MinioClient: minioClient,
		BucketName:  bucketName,
	}
}

func (m *minioStorage) UploadFile(ctx context.Context, objectName, contentType string, content io.Reader, size int64) error {
	_, err := m.MinioClient.PutObject(ctx, m.BucketName, objectName, content, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return exceptions.ErrMinioCreateObject(err, m.BucketName)
	}
	return nil
}

func (m *minioStorage) ListObjects(ctx context.Context, prefix string) ([]contracts.StoredObject, error) {
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	var objects []contracts.StoredObject
	for object := range m.MinioClient.ListObjects(ctx, m.BucketName, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if object.Err != nil {
			return nil, exceptions.ErrMinioListObjects(object.Err, m.BucketName)
		}
		objects = append(objects, contracts.StoredObject{
			Name:         object.Key,
			Size:         object.Size,
			ContentType:  object.ContentType,
			LastModified: object.LastModified,
		})
	}
	return objects, nil
}

func (m *minioStorage) PresignedGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	presignedURL, err := m.MinioClient.PresignedGetObject(ctx, m.BucketName, objectName, expiry, nil)
	if err != nil {
		return "", exceptions.ErrMinioFindObjectPresignedURL(err, m.BucketName)
	}
	return presignedURL.String(), nil
}

func (m *minioStorage) RemoveObject(ctx context.Context, objectName string) error {
	err := m.MinioClient.RemoveObject(ctx, m.BucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return exceptions.ErrMinioRemoveObject(err, m.BucketName)
	}
	return nil
}
