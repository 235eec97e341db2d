package client

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
)

// MockS3Client implements S3ClientInterface for testing without AWS credentials
type MockS3Client struct {
	Bucket string

	// Optional function overrides for custom test behavior
	GenerateFileKeyFunc func(category, fileName string) (string, error)
	UploadFileFunc      func(ctx context.Context, key string, file io.Reader, contentType string) (string, error)
	DeleteFileFunc      func(ctx context.Context, key string) error
	GetFileURLFunc      func(key string) string

	// Uploaded records the keys passed to UploadFile
	Uploaded []string
}

// NewMockS3Client creates a new mock S3 client for testing
func NewMockS3Client() *MockS3Client {
	return &MockS3Client{Bucket: "test-bucket"}
}

// GenerateFileKey generates a unique object key
func (m *MockS3Client) GenerateFileKey(category, fileName string) (string, error) {
	if m.GenerateFileKeyFunc != nil {
		return m.GenerateFileKeyFunc(category, fileName)
	}
	if category == "" {
		return "", fmt.Errorf("storage category cannot be empty")
	}
	return fmt.Sprintf("%s/%s/%d%s", category, uuid.New().String(), time.Now().UnixNano(), path.Ext(fileName)), nil
}

// UploadFile records the upload and returns a fake URL
func (m *MockS3Client) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error) {
	if m.UploadFileFunc != nil {
		return m.UploadFileFunc(ctx, key, file, contentType)
	}
	m.Uploaded = append(m.Uploaded, key)
	return m.GetFileURL(key), nil
}

// DeleteFile pretends to delete the object
func (m *MockS3Client) DeleteFile(ctx context.Context, key string) error {
	if m.DeleteFileFunc != nil {
		return m.DeleteFileFunc(ctx, key)
	}
	return nil
}

// GetFileURL returns a fake public URL
func (m *MockS3Client) GetFileURL(key string) string {
	if m.GetFileURLFunc != nil {
		return m.GetFileURLFunc(key)
	}
	if key == "" {
		return ""
	}
	return fmt.Sprintf("https://%s.s3.test.amazonaws.com/%s", m.Bucket, key)
}
