package proofs

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/acerto/acerto/internal/config"
	"github.com/acerto/acerto/internal/ids"
)

var _ Store = (*MinIO)(nil)

// presignExpiry is the longest lifetime S3 accepts for a presigned URL.
const presignExpiry = 7 * 24 * time.Hour

// MinIO keeps receipts in an S3-compatible bucket.
type MinIO struct {
	client    *minio.Client
	bucket    string
	publicURL string
	maxBytes  int64
}

func NewMinIO(cfg config.MinIOConfig, maxBytes int64) (*MinIO, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &MinIO{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: cfg.PublicURL,
		maxBytes:  maxBytes,
	}, nil
}

// EnsureBucket creates the bucket if it does not exist yet.
func (m *MinIO) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed checking bucket %s: %w", m.bucket, err)
	}
	if exists {
		return nil
	}

	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed creating bucket %s: %w", m.bucket, err)
	}
	return nil
}

func (m *MinIO) Put(ctx context.Context, expenseID, contentType string, data []byte) (string, error) {
	ct, err := Check(contentType, data, m.maxBytes)
	if err != nil {
		return "", err
	}

	name := objectName(expenseID, ids.New(), ct)
	_, err = m.client.PutObject(ctx, m.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: ct,
	})
	if err != nil {
		slog.Error("Proof upload failed",
			"object_name", name,
			"bucket", m.bucket,
			"size", len(data),
			"error", err,
		)
		return "", fmt.Errorf("failed to upload proof: %w", err)
	}
	slog.Info("Proof uploaded",
		"object_name", name,
		"bucket", m.bucket,
		"size", len(data),
		"content_type", ct,
	)

	if m.publicURL != "" {
		return m.publicURL + "/" + m.bucket + "/" + name, nil
	}
	u, err := m.client.PresignedGetObject(ctx, m.bucket, name, presignExpiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to presign proof: %w", err)
	}
	return u.String(), nil
}

// objectName places receipts under the expense they confirm.
func objectName(expenseID, unique, contentType string) string {
	return "proofs/" + expenseID + "/" + unique + allowedTypes[contentType]
}
