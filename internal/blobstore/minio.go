package blobstore

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"periciapi/internal/config"
	"periciapi/internal/model"
)

const objectPrefix = "files/"

// minioStore implements FileStore on an S3-compatible backend (MinIO, AWS S3,
// etc.). It is safe for concurrent use by multiple goroutines.
type minioStore struct {
	client *minio.Client
	bucket string

	initOnce sync.Once
	initErr  error
}

// NewMinIO creates a blob store backed by MinIO. The constructor only
// validates configuration and builds the client; the bucket check runs inside
// the memoized Init, triggered lazily by the first operation.
func NewMinIO(cfg config.MinIOConfig) (FileStore, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &minioStore{client: cli, bucket: cfg.Bucket}, nil
}

// Init ensures the bucket exists. Concurrent callers before first completion
// all resolve against the same single attempt.
func (m *minioStore) Init(ctx context.Context) error {
	m.initOnce.Do(func() {
		exists, err := m.client.BucketExists(ctx, m.bucket)
		if err != nil {
			m.initErr = fmt.Errorf("blobstore %s: check bucket: %w", m.bucket, err)
			return
		}
		if !exists {
			if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
				m.initErr = fmt.Errorf("blobstore %s: create bucket: %w", m.bucket, err)
			}
		}
	})
	return m.initErr
}

// SaveFile stores the serialized content under the given id and echoes the id
// back on success.
func (m *minioStore) SaveFile(ctx context.Context, id model.FlexID, content string) (model.FlexID, error) {
	if id == "" {
		return "", ErrIDRequired
	}
	if content == "" {
		return "", ErrContentRequired
	}
	if err := m.Init(ctx); err != nil {
		return "", err
	}

	r := strings.NewReader(content)
	_, err := m.client.PutObject(ctx, m.bucket, objectKey(id), r, int64(r.Len()), minio.PutObjectOptions{
		ContentType: "text/plain; charset=utf-8",
	})
	if err != nil {
		return "", fmt.Errorf("blobstore %s: save %s: %w", m.bucket, id, err)
	}
	return id, nil
}

// GetFile returns the stored content, or ErrNotFound for an absent id.
func (m *minioStore) GetFile(ctx context.Context, id model.FlexID) (string, error) {
	if err := m.Init(ctx); err != nil {
		return "", err
	}

	obj, err := m.client.GetObject(ctx, m.bucket, objectKey(id), minio.GetObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("blobstore %s: get %s: %w", m.bucket, id, err)
	}
	defer obj.Close()

	content, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("blobstore %s: get %s: %w", m.bucket, id, err)
	}
	return string(content), nil
}

// DeleteFile removes a blob. Removing an absent id is a no-op.
func (m *minioStore) DeleteFile(ctx context.Context, id model.FlexID) error {
	if err := m.Init(ctx); err != nil {
		return err
	}
	if err := m.client.RemoveObject(ctx, m.bucket, objectKey(id), minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("blobstore %s: delete %s: %w", m.bucket, id, err)
	}
	return nil
}

// GetAllFiles dumps every blob, used by the backup exporter.
func (m *minioStore) GetAllFiles(ctx context.Context) ([]model.Arquivo, error) {
	if err := m.Init(ctx); err != nil {
		return nil, err
	}

	files := make([]model.Arquivo, 0)
	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    objectPrefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("blobstore %s: list: %w", m.bucket, obj.Err)
		}
		id := model.FlexID(strings.TrimPrefix(obj.Key, objectPrefix))
		content, err := m.GetFile(ctx, id)
		if err != nil {
			return nil, err
		}
		files = append(files, model.Arquivo{ID: id, Content: content})
	}
	return files, nil
}

// Clear removes every blob, used before a full restore repopulates the store.
func (m *minioStore) Clear(ctx context.Context) error {
	if err := m.Init(ctx); err != nil {
		return err
	}
	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    objectPrefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return fmt.Errorf("blobstore %s: clear: %w", m.bucket, obj.Err)
		}
		if err := m.client.RemoveObject(ctx, m.bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("blobstore %s: clear %s: %w", m.bucket, obj.Key, err)
		}
	}
	return nil
}

func objectKey(id model.FlexID) string {
	return objectPrefix + string(id)
}
